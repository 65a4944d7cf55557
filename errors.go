package dfamin

import "fmt"

// FormatError Reports malformed or truncated automaton text: a missing token, a line with the wrong number of
// fields, a non-numeric token where a number is expected, a symbol that is not a single character, or input
// left over after the finish states.
type FormatError struct {
	Line  int    // 1-based line of the offending token, 0 at end of input
	Token string // offending token, empty if input ended early
	Msg   string
}

func (e *FormatError) Error() string {
	if e.Token == "" {
		return fmt.Sprintf("format error at line %d: %s", e.Line, e.Msg)
	}
	return fmt.Sprintf("format error at line %d near %q: %s", e.Line, e.Token, e.Msg)
}

// RangeError Reports a state index (start state, finish state or transition target) outside [0, Size).
type RangeError struct {
	What  string
	Value int
	Size  int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%s %d out of range [0, %d)", e.What, e.Value, e.Size)
}

func checkRange(what string, value, size int) error {
	if value < 0 || value >= size {
		return &RangeError{What: what, Value: value, Size: size}
	}
	return nil
}
