package dfamin

import (
	"slices"

	"github.com/bits-and-blooms/bitset"
)

// Equivalent
// Returns true if a and b are equivalent under a synchronized traversal from their start states: every
// visited pair of states agrees on acceptance, and for every symbol either both states define a transition
// or neither does.
func Equivalent(a, b *Automaton) bool {
	return synchronize(a, b, false)
}

// LanguageEquivalent
// Returns true if a and b accept the same language. Undefined transitions lead to a non-accepting sink, so
// a transition into a dead state is the same as no transition at all.
func LanguageEquivalent(a, b *Automaton) bool {
	return synchronize(a, b, true)
}

func synchronize(a, b *Automaton, completed bool) bool {
	symbols := mergeAlphabets(a.GetAlphabet(), b.GetAlphabet())

	// With completion, index GetNumStates() of each side stands for its sink.
	widthA, widthB := a.GetNumStates(), b.GetNumStates()
	if completed {
		widthA++
		widthB++
	}
	sinkA, sinkB := a.GetNumStates(), b.GetNumStates()

	step := func(x *Automaton, sink, state int, label rune) int {
		if state == sink {
			return sink
		}
		return x.Step(state, label)
	}
	accept := func(x *Automaton, sink, state int) bool {
		return state != sink && x.IsAccept(state)
	}

	seen := bitset.New(uint(widthA * widthB))
	workList := []statePair{{a.GetStart(), b.GetStart()}}
	seen.Set(uint(a.GetStart()*widthB + b.GetStart()))

	for len(workList) > 0 {
		current := workList[0]
		workList = workList[1:]

		if accept(a, sinkA, current.first) != accept(b, sinkB, current.second) {
			return false
		}

		for _, label := range symbols {
			nextA := step(a, sinkA, current.first, label)
			nextB := step(b, sinkB, current.second, label)
			if completed {
				if nextA == -1 {
					nextA = sinkA
				}
				if nextB == -1 {
					nextB = sinkB
				}
			} else if (nextA == -1) != (nextB == -1) {
				return false
			} else if nextA == -1 {
				continue
			}

			key := uint(nextA*widthB + nextB)
			if !seen.Test(key) {
				seen.Set(key)
				workList = append(workList, statePair{nextA, nextB})
			}
		}
	}
	return true
}

// A pair of states taken from two different automata.
type statePair struct {
	first  int
	second int
}

func mergeAlphabets(x, y []rune) []rune {
	merged := make([]rune, 0, len(x)+len(y))
	merged = append(merged, x...)
	merged = append(merged, y...)
	slices.Sort(merged)
	return slices.Compact(merged)
}
