package dfamin

// Run Returns true if the automaton accepts s. Every rune of s is one symbol.
func Run(a *Automaton, s string) bool {
	state := a.GetStart()
	for _, v := range s {
		nextState := a.Step(state, v)
		if nextState == -1 {
			return false
		}
		state = nextState
	}
	return a.IsAccept(state)
}
