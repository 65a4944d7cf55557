package dfamin

import (
	"github.com/bits-and-blooms/bitset"
)

// ReachableStates Returns the states reachable from the start state by zero or more transitions. If the bit
// is set then that state is reachable.
func ReachableStates(a *Automaton) *bitset.BitSet {
	numStates := a.GetNumStates()
	live := bitset.New(uint(numStates))
	if numStates == 0 {
		return live
	}

	workList := make([]int, 0, numStates)
	live.Set(uint(a.GetStart()))
	workList = append(workList, a.GetStart())

	t := NewTransition()
	for len(workList) > 0 {
		s := workList[len(workList)-1]
		workList = workList[:len(workList)-1]

		count := a.InitTransition(s, t)
		for i := 0; i < count; i++ {
			a.GetNextTransition(t)
			if live.Test(uint(t.Dest)) == false {
				live.Set(uint(t.Dest))
				workList = append(workList, t.Dest)
			}
		}
	}

	return live
}

// IsEmptyAutomaton
// Returns true if the given automaton accepts no strings.
func IsEmptyAutomaton(a *Automaton) bool {
	if a.GetNumAccept() == 0 {
		// Common case: no accept states at all
		return true
	}
	if a.IsAccept(a.GetStart()) {
		// Apparently common case: it accepts the empty string
		return false
	}

	reachable := ReachableStates(a)
	for _, s := range a.GetAcceptStates() {
		if reachable.Test(uint(s)) {
			return false
		}
	}
	return true
}

// symbolSignatures Returns, per state, the set of alphabet indices the state defines a transition for.
func symbolSignatures(a *Automaton, symbolIndex map[rune]int) []*bitset.BitSet {
	numStates := a.GetNumStates()
	signatures := make([]*bitset.BitSet, numStates)

	t := NewTransition()
	for s := 0; s < numStates; s++ {
		signature := bitset.New(uint(len(symbolIndex)))
		count := a.InitTransition(s, t)
		for i := 0; i < count; i++ {
			a.GetNextTransition(t)
			signature.Set(uint(symbolIndex[t.Label]))
		}
		signatures[s] = signature
	}
	return signatures
}
