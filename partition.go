package dfamin

import (
	"github.com/bits-and-blooms/bitset"
)

// Partition The equivalence classes of the reachable states. Classes are numbered in order of their smallest
// member and each class lists its members ascending.
type Partition struct {
	Classes [][]int

	// ClassOf maps a state to its class, -1 for unreachable states.
	ClassOf []int
}

// Len How many classes there are.
func (p *Partition) Len() int {
	return len(p.Classes)
}

// Class Returns the class of state, -1 if the state is unreachable.
func (p *Partition) Class(state int) int {
	if state < 0 || state >= len(p.ClassOf) {
		return -1
	}
	return p.ClassOf[state]
}

// BuildEquivalenceClasses
// Groups the reachable states into classes of mutually unmarked states. States are visited in ascending
// order; each state not yet assigned opens a class that takes every later unassigned state it is not marked
// against. A single pass suffices because the unmarked relation among reachable states is already an
// equivalence relation.
func BuildEquivalenceClasses(reachable *bitset.BitSet, table *DistinguishabilityTable) *Partition {
	numStates := table.NumStates()
	partition := &Partition{
		Classes: make([][]int, 0),
		ClassOf: make([]int, numStates),
	}
	for s := range partition.ClassOf {
		partition.ClassOf[s] = -1
	}

	for i, ok := reachable.NextSet(0); ok && int(i) < numStates; i, ok = reachable.NextSet(i + 1) {
		if partition.ClassOf[i] != -1 {
			continue
		}
		id := len(partition.Classes)
		class := []int{int(i)}
		partition.ClassOf[i] = id

		for j, ok := reachable.NextSet(i + 1); ok && int(j) < numStates; j, ok = reachable.NextSet(j + 1) {
			if partition.ClassOf[j] == -1 && !table.IsMarked(int(i), int(j)) {
				partition.ClassOf[j] = id
				class = append(class, int(j))
			}
		}
		partition.Classes = append(partition.Classes, class)
	}

	return partition
}
