package dfamin

// InverseIndex Reverse transition lookup: for a (symbol, target) pair, the ascending list of source states s
// with transition(s, symbol) = target. The index is a per-call value and is never shared between
// minimizations.
type InverseIndex struct {
	numStates int
	sink      int

	symbols     []rune
	symbolIndex map[rune]int

	// sources[k][target] lists the sources of target on symbols[k].
	sources [][][]int
}

// NewInverseIndex Builds the inverse index of the transition function by scanning every defined transition
// exactly once.
func NewInverseIndex(a *Automaton) *InverseIndex {
	index := newInverseIndex(a, a.GetNumStates(), -1)

	t := NewTransition()
	for s := 0; s < a.GetNumStates(); s++ {
		count := a.InitTransition(s, t)
		for i := 0; i < count; i++ {
			a.GetNextTransition(t)
			index.add(index.symbolIndex[t.Label], s, t.Dest)
		}
	}
	return index
}

// NewCompletedInverseIndex Builds the inverse index of the completed transition function. State
// a.GetNumStates() is a virtual non-accepting sink: every undefined (state, symbol) pair goes to it, and it
// loops to itself on every symbol.
func NewCompletedInverseIndex(a *Automaton) *InverseIndex {
	numStates := a.GetNumStates()
	sink := numStates
	index := newInverseIndex(a, numStates+1, sink)

	for s := 0; s < numStates; s++ {
		for k, label := range index.symbols {
			dest := a.Step(s, label)
			if dest == -1 {
				dest = sink
			}
			index.add(k, s, dest)
		}
	}
	for k := range index.symbols {
		index.add(k, sink, sink)
	}
	return index
}

func newInverseIndex(a *Automaton, numStates, sink int) *InverseIndex {
	symbols := a.GetAlphabet()
	index := &InverseIndex{
		numStates:   numStates,
		sink:        sink,
		symbols:     symbols,
		symbolIndex: make(map[rune]int, len(symbols)),
		sources:     make([][][]int, len(symbols)),
	}
	for k, label := range symbols {
		index.symbolIndex[label] = k
		index.sources[k] = make([][]int, numStates)
	}
	return index
}

func (x *InverseIndex) add(k, source, dest int) {
	x.sources[k][dest] = append(x.sources[k][dest], source)
}

// Sources Returns the states that transition to target on label, ascending. The caller must not modify the
// returned slice.
func (x *InverseIndex) Sources(label rune, target int) []int {
	k, ok := x.symbolIndex[label]
	if !ok || target < 0 || target >= x.numStates {
		return nil
	}
	return x.sources[k][target]
}

// Symbols Returns the indexed alphabet, ascending.
func (x *InverseIndex) Symbols() []rune {
	return x.symbols
}

// NumStates How many states the index covers, including the sink if there is one.
func (x *InverseIndex) NumStates() int {
	return x.numStates
}

// Sink Returns the virtual sink state, or -1 if the index was built from the partial transition function.
func (x *InverseIndex) Sink() int {
	return x.sink
}
