package dfamin

import (
	"github.com/bits-and-blooms/bitset"
)

// IntPair An unordered pair of states, stored with n1 <= n2 so that equal pairs compare equal.
type IntPair struct {
	n1 int
	n2 int
}

func NewIntPair(p, q int) IntPair {
	if p > q {
		p, q = q, p
	}
	return IntPair{n1: p, n2: q}
}

func (p IntPair) First() int {
	return p.n1
}

func (p IntPair) Second() int {
	return p.n2
}

// DistinguishabilityTable The symmetric, irreflexive "marked" relation over states: a marked pair is provably
// distinguishable. Unmarked pairs of reachable states are language-equivalent.
type DistinguishabilityTable struct {
	numStates int
	marked    *bitset.BitSet
	numMarked int
}

func newDistinguishabilityTable(numStates int) *DistinguishabilityTable {
	return &DistinguishabilityTable{
		numStates: numStates,
		marked:    bitset.New(uint(numStates) * uint(numStates)),
	}
}

// IsMarked Returns true if p and q are distinguishable.
func (d *DistinguishabilityTable) IsMarked(p, q int) bool {
	return d.marked.Test(d.bit(p, q))
}

// NumMarked How many unordered pairs are marked.
func (d *DistinguishabilityTable) NumMarked() int {
	return d.numMarked
}

// NumStates How many states the table covers, including the virtual sink if there is one.
func (d *DistinguishabilityTable) NumStates() int {
	return d.numStates
}

func (d *DistinguishabilityTable) bit(p, q int) uint {
	return uint(p)*uint(d.numStates) + uint(q)
}

// Marks the pair; returns false if it was already marked.
func (d *DistinguishabilityTable) mark(pair IntPair) bool {
	i := d.bit(pair.n1, pair.n2)
	if d.marked.Test(i) {
		return false
	}
	d.marked.Set(i)
	d.marked.Set(d.bit(pair.n2, pair.n1))
	d.numMarked++
	return true
}

// MarkDistinguishable
// Computes the distinguishable pairs among the reachable states by reverse breadth-first table filling.
//
// Pairs that differ in acceptance are marked first. Then each marked pair (a, b) marks every pair (p, q) of
// reachable states with transition(p, c) = a and transition(q, c) = b for some symbol c. Only transitions
// defined on both sides propagate marks.
//
// If the index was built by NewInverseIndex, undefined transitions are not completed, so two states whose
// sets of defined symbols differ are also marked in the first step. If it was built by
// NewCompletedInverseIndex, undefined transitions go to the virtual sink, which is treated as a reachable
// non-accepting state, and the marked relation is exactly language distinguishability.
//
// Each pair is enqueued at most once: O(n² · |alphabet|) time, O(n²) space.
func MarkDistinguishable(a *Automaton, reachable *bitset.BitSet, index *InverseIndex) *DistinguishabilityTable {
	numStates := index.NumStates()
	table := newDistinguishabilityTable(numStates)

	live := reachable
	sink := index.Sink()
	if sink >= 0 {
		live = reachable.Clone()
		live.Set(uint(sink))
	}

	accept := func(s int) bool {
		return s < a.GetNumStates() && a.IsAccept(s)
	}

	var signatures []*bitset.BitSet
	if sink < 0 {
		signatures = symbolSignatures(a, index.symbolIndex)
	}

	queue := make([]IntPair, 0)
	for i, ok := live.NextSet(0); ok && int(i) < numStates; i, ok = live.NextSet(i + 1) {
		for j, ok := live.NextSet(i + 1); ok && int(j) < numStates; j, ok = live.NextSet(j + 1) {
			p, q := int(i), int(j)
			if accept(p) != accept(q) || (signatures != nil && !signatures[p].Equal(signatures[q])) {
				pair := NewIntPair(p, q)
				table.mark(pair)
				queue = append(queue, pair)
			}
		}
	}

	for head := 0; head < len(queue); head++ {
		current := queue[head]

		for _, label := range index.Symbols() {
			firstSources := index.Sources(label, current.n1)
			if len(firstSources) == 0 {
				continue
			}
			secondSources := index.Sources(label, current.n2)
			if len(secondSources) == 0 {
				continue
			}

			for _, p := range firstSources {
				if !live.Test(uint(p)) {
					continue
				}
				for _, q := range secondSources {
					if p == q || !live.Test(uint(q)) {
						continue
					}
					pair := NewIntPair(p, q)
					if table.mark(pair) {
						queue = append(queue, pair)
					}
				}
			}
		}
	}

	return table
}
