package dfamin

// Automata Factory for small deterministic automata.
type Automata struct {
}

var defaultAutomata = &Automata{}

// MakeEmpty
// Returns a new (deterministic) automaton with the empty language.
func (*Automata) MakeEmpty() *Automaton {
	b := NewBuilder()
	b.CreateState()
	return b.freeze()
}

// MakeEmptyString
// Returns a new (deterministic) automaton that accepts only the empty string.
func (*Automata) MakeEmptyString() *Automaton {
	b := NewBuilder()
	s := b.CreateState()
	b.SetAccept(s, true)
	return b.freeze()
}

// MakeAnyString
// Returns a new (deterministic) automaton that accepts all strings over alphabet.
func (*Automata) MakeAnyString(alphabet ...rune) *Automaton {
	b := NewBuilder()
	s := b.CreateState()
	b.SetAccept(s, true)
	for _, label := range alphabet {
		b.AddTransition(s, label, s)
	}
	return b.freeze()
}

// MakeString
// Returns a new (deterministic) automaton that accepts the single given string.
func (*Automata) MakeString(s string) *Automaton {
	b := NewBuilder()
	state := b.CreateState()
	for _, label := range s {
		next := b.CreateState()
		b.AddTransition(state, label, next)
		state = next
	}
	b.SetAccept(state, true)
	return b.freeze()
}

// MakeStrings
// Returns a new (deterministic) automaton that accepts exactly the given strings, built as a prefix tree.
// The tree is not minimal: equal suffixes are not shared.
func (*Automata) MakeStrings(strs ...string) *Automaton {
	b := NewBuilder()
	root := b.CreateState()
	type edge struct {
		state int
		label rune
	}
	children := make(map[edge]int)
	for _, s := range strs {
		state := root
		for _, label := range s {
			key := edge{state: state, label: label}
			next, ok := children[key]
			if !ok {
				next = b.CreateState()
				children[key] = next
				b.AddTransition(state, label, next)
			}
			state = next
		}
		b.SetAccept(state, true)
	}
	return b.freeze()
}
