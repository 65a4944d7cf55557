package dfamin

import (
	"slices"
	"sort"

	"github.com/bits-and-blooms/bitset"
)

// Automaton Represents a deterministic automaton with a partial transition function. States are integers in
// [0, GetNumStates()). An Automaton is immutable; it is created by Builder.Finish, which guarantees that the
// start state, every accept state and every transition target lie in range.
//
// Transitions leaving a state are sorted by label, so Step can binary search them.
type Automaton struct {
	start int

	// Index in the transitions array where this states leaving transitions are stored, followed by number
	// of transitions.
	states []int

	// Holds dest, label for each transition.
	transitions []int

	isAccept *bitset.BitSet

	// Sorted ascending.
	alphabet []rune
}

// Transition A single (Source, Label) -> Dest edge. TransitionUpto is the iteration cursor used by
// InitTransition and GetNextTransition.
type Transition struct {
	Source         int
	Dest           int
	Label          rune
	TransitionUpto int
}

func NewTransition() *Transition {
	return &Transition{}
}

// GetNumStates How many states this automaton has.
func (a *Automaton) GetNumStates() int {
	return len(a.states) / 2
}

// GetStart Returns the start state.
func (a *Automaton) GetStart() int {
	return a.start
}

// IsAccept Returns true if this state is an accept state.
func (a *Automaton) IsAccept(state int) bool {
	return a.isAccept.Test(uint(state))
}

// GetAcceptStates Returns the accept states in ascending order.
func (a *Automaton) GetAcceptStates() []int {
	accept := make([]int, 0, a.isAccept.Count())
	for s, ok := a.isAccept.NextSet(0); ok; s, ok = a.isAccept.NextSet(s + 1) {
		accept = append(accept, int(s))
	}
	return accept
}

// GetNumAccept How many accept states this automaton has.
func (a *Automaton) GetNumAccept() int {
	return int(a.isAccept.Count())
}

// GetAlphabet Returns the alphabet sorted ascending. The caller must not modify it.
func (a *Automaton) GetAlphabet() []rune {
	return a.alphabet
}

// GetNumTransitions How many transitions this automaton has.
func (a *Automaton) GetNumTransitions() int {
	return len(a.transitions) / 2
}

// GetNumTransitionsWithState How many transitions this state has.
func (a *Automaton) GetNumTransitionsWithState(state int) int {
	return a.states[2*state+1]
}

// InitTransition Initialize the provided Transition to iterate through all transitions leaving the specified
// state. You must call GetNextTransition to get each transition. Returns the number of transitions leaving
// this state.
func (a *Automaton) InitTransition(state int, t *Transition) int {
	t.Source = state
	t.TransitionUpto = a.states[2*state]
	return a.GetNumTransitionsWithState(state)
}

// GetNextTransition Iterate to the next transition after the provided one
func (a *Automaton) GetNextTransition(t *Transition) {
	t.Dest = a.transitions[t.TransitionUpto]
	t.TransitionUpto++
	t.Label = rune(a.transitions[t.TransitionUpto])
	t.TransitionUpto++
}

// Fill the provided Transition with the index'th transition leaving the specified state.
func (a *Automaton) getTransition(state, index int, t *Transition) {
	i := a.states[2*state] + 2*index
	t.Source = state
	t.Dest = a.transitions[i]
	t.Label = rune(a.transitions[i+1])
}

// GetSortedTransitions Sugar to get all transitions leaving a state, sorted by label.
func (a *Automaton) GetSortedTransitions(state int) []Transition {
	numTransitions := a.GetNumTransitionsWithState(state)
	transitions := make([]Transition, numTransitions)
	for i := 0; i < numTransitions; i++ {
		a.getTransition(state, i, &transitions[i])
	}
	return transitions
}

// Step Performs lookup in transitions.
// Returns: destination state, -1 if no matching outgoing transition
func (a *Automaton) Step(state int, label rune) int {
	first := a.states[2*state]
	numTransitions := a.states[2*state+1]

	// Since transitions are sorted, binary search the transition carrying label.
	low, high := 0, numTransitions-1
	for low <= high {
		mid := (low + high) >> 1
		i := first + 2*mid
		l := rune(a.transitions[i+1])
		switch {
		case l > label:
			high = mid - 1
		case l < label:
			low = mid + 1
		default:
			return a.transitions[i]
		}
	}
	return -1
}

// WithStart Returns a copy of this automaton that starts at the specified state. The copy shares the
// (immutable) states and transitions.
func (a *Automaton) WithStart(state int) (*Automaton, error) {
	if err := checkRange("start state", state, a.GetNumStates()); err != nil {
		return nil, err
	}
	c := *a
	c.start = state
	return &c, nil
}

// MaxStates Largest number of states a Builder accepts. Minimization keeps a table of n² pairs, so the
// bound keeps that table addressable.
const MaxStates = 1 << 20

// Builder Records states and transitions in any order and produces an immutable Automaton. Adding a
// transition for a (source, label) pair that already has one replaces it: the last declaration wins.
type Builder struct {
	numStates int
	start     int

	// Holds source, label, dest for each added transition, in insertion order.
	transitions []int

	isAccept *bitset.BitSet
	symbols  map[rune]struct{}

	// Negative accept states, reported by Finish.
	negativeAccept []int
}

func NewBuilder() *Builder {
	return NewBuilderV1(2, 2)
}

func NewBuilderV1(numStates, numTransitions int) *Builder {
	return &Builder{
		transitions: make([]int, 0, numTransitions*3),
		isAccept:    bitset.New(uint(numStates)),
		symbols:     make(map[rune]struct{}),
	}
}

// CreateState Create a new state.
func (b *Builder) CreateState() int {
	state := b.numStates
	b.numStates++
	return state
}

// CreateStates Create count new states and return the first one.
func (b *Builder) CreateStates(count int) int {
	first := b.numStates
	b.numStates += count
	return first
}

// GetNumStates How many states have been created so far.
func (b *Builder) GetNumStates() int {
	return b.numStates
}

// SetStart Set the start state; defaults to 0.
func (b *Builder) SetStart(state int) {
	b.start = state
}

// SetAccept Set or clear this state as an accept state.
func (b *Builder) SetAccept(state int, accept bool) {
	if state < 0 {
		if accept {
			b.negativeAccept = append(b.negativeAccept, state)
		}
		return
	}
	b.isAccept.SetTo(uint(state), accept)
}

func (b *Builder) IsAccept(state int) bool {
	return state >= 0 && b.isAccept.Test(uint(state))
}

// AddTransition Add a new transition. A later transition for the same source and label replaces the earlier.
func (b *Builder) AddTransition(source int, label rune, dest int) {
	b.transitions = append(b.transitions, source, int(label), dest)
	b.symbols[label] = struct{}{}
}

// AddSymbol Add a symbol to the alphabet without a transition.
func (b *Builder) AddSymbol(label rune) {
	b.symbols[label] = struct{}{}
}

// Finish Validates and freezes the automaton. Returns a *RangeError if more than MaxStates states were
// created, or if the start state, an accept state, a transition source or a transition target is outside
// [0, GetNumStates()).
func (b *Builder) Finish() (*Automaton, error) {
	numStates := b.numStates
	if numStates > MaxStates {
		return nil, &RangeError{What: "state count", Value: numStates, Size: MaxStates + 1}
	}
	if err := checkRange("start state", b.start, numStates); err != nil {
		return nil, err
	}
	if len(b.negativeAccept) > 0 {
		return nil, &RangeError{What: "finish state", Value: b.negativeAccept[0], Size: numStates}
	}
	if last, ok := b.lastAccept(); ok && int(last) >= numStates {
		return nil, &RangeError{What: "finish state", Value: int(last), Size: numStates}
	}

	numAdded := len(b.transitions) / 3
	for i := 0; i < numAdded; i++ {
		if err := checkRange("transition source", b.transitions[3*i], numStates); err != nil {
			return nil, err
		}
		if err := checkRange("transition target", b.transitions[3*i+2], numStates); err != nil {
			return nil, err
		}
	}

	return b.freeze(), nil
}

// Packs the recorded transitions. The caller has validated every index.
func (b *Builder) freeze() *Automaton {
	numStates := b.numStates
	numAdded := len(b.transitions) / 3

	triples := slices.Clone(b.transitions)
	// Stable, so duplicates of a (source, label) pair stay in insertion order.
	sort.Stable(&builderSorter{values: triples})

	a := &Automaton{
		start:       b.start,
		states:      make([]int, 2*numStates),
		transitions: make([]int, 0, 2*numAdded),
		isAccept:    b.isAccept.Clone(),
	}

	prev := -1
	for i := 0; i < numAdded; i++ {
		source, label, dest := triples[3*i], triples[3*i+1], triples[3*i+2]
		if i+1 < numAdded && triples[3*(i+1)] == source && triples[3*(i+1)+1] == label {
			// Superseded by a later declaration.
			continue
		}
		if source != prev {
			for s := prev + 1; s <= source; s++ {
				a.states[2*s] = len(a.transitions)
			}
			prev = source
		}
		a.transitions = append(a.transitions, dest, label)
		a.states[2*source+1]++
	}
	for s := prev + 1; s < numStates; s++ {
		a.states[2*s] = len(a.transitions)
	}

	a.alphabet = make([]rune, 0, len(b.symbols))
	for label := range b.symbols {
		a.alphabet = append(a.alphabet, label)
	}
	slices.Sort(a.alphabet)

	return a
}

func (b *Builder) lastAccept() (uint, bool) {
	if b.isAccept.Count() == 0 {
		return 0, false
	}
	var last uint
	for s, ok := b.isAccept.NextSet(0); ok; s, ok = b.isAccept.NextSet(s + 1) {
		last = s
	}
	return last, true
}

var _ sort.Interface = &builderSorter{}

// Sorts source, label, dest triples by source, then label.
type builderSorter struct {
	values []int
}

func (r *builderSorter) Len() int {
	return len(r.values) / 3
}

func (r *builderSorter) Less(i, j int) bool {
	i *= 3
	j *= 3

	if r.values[i] != r.values[j] {
		return r.values[i] < r.values[j]
	}
	return r.values[i+1] < r.values[j+1]
}

func (r *builderSorter) Swap(i, j int) {
	i *= 3
	j *= 3

	r.values[i], r.values[j] = r.values[j], r.values[i]
	r.values[i+1], r.values[j+1] = r.values[j+1], r.values[i+1]
	r.values[i+2], r.values[j+2] = r.values[j+2], r.values[i+2]
}
