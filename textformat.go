package dfamin

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Decode Reads an automaton in the text format:
//
//	<size> <startState> <finishCount> <alphabetSize>
//	<symbol> <targetState>      alphabetSize lines for state 0
//	...                         and for every following state
//	<finish> <finish> ...       finishCount state indices
//
// The header and every transition sit on their own line; the finish indices may span lines. Fields are
// separated by any whitespace and blank lines are ignored. A state that declares the same symbol more than
// once keeps the last declaration. Malformed or truncated input, a line with the wrong number of fields and
// anything after the last finish index yield a *FormatError; an index outside [0, size) or a size above
// MaxStates yields a *RangeError.
func Decode(r io.Reader) (*Automaton, error) {
	tokens := newTokenReader(r)

	header, err := tokens.nextLine("header", 4)
	if err != nil {
		return nil, err
	}
	size, err := tokens.parseCount(header[0], "size")
	if err != nil {
		return nil, err
	}
	if size > MaxStates {
		return nil, &RangeError{What: "size", Value: size, Size: MaxStates + 1}
	}
	start, err := tokens.parseInt(header[1], "start state")
	if err != nil {
		return nil, err
	}
	finishCount, err := tokens.parseCount(header[2], "finish count")
	if err != nil {
		return nil, err
	}
	alphabetSize, err := tokens.parseCount(header[3], "alphabet size")
	if err != nil {
		return nil, err
	}

	numTransitions := maxPrealloc
	if alphabetSize == 0 || size <= maxPrealloc/alphabetSize {
		numTransitions = size * alphabetSize
	}
	b := NewBuilderV1(min(size, maxPrealloc), numTransitions)
	b.CreateStates(size)
	b.SetStart(start)

	for s := 0; s < size; s++ {
		for i := 0; i < alphabetSize; i++ {
			fields, err := tokens.nextLine("transition", 2)
			if err != nil {
				return nil, err
			}
			label, err := tokens.parseSymbol(fields[0])
			if err != nil {
				return nil, err
			}
			dest, err := tokens.parseInt(fields[1], "target state")
			if err != nil {
				return nil, err
			}
			b.AddTransition(s, label, dest)
		}
	}

	for i := 0; i < finishCount; i++ {
		finish, err := tokens.nextInt("finish state")
		if err != nil {
			return nil, err
		}
		if err := checkRange("finish state", finish, size); err != nil {
			return nil, err
		}
		b.SetAccept(finish, true)
	}
	if err := tokens.end(); err != nil {
		return nil, err
	}

	return b.Finish()
}

// ReadFile Decodes the automaton stored at path.
func ReadFile(path string) (*Automaton, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	a, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return a, nil
}

// Encode Writes an automaton in the output text format: the header line, then for every state a blank line
// followed by its "<symbol> <targetState>" lines in symbol order, then every finish state followed by a
// single space. There is no trailing newline.
func Encode(w io.Writer, a *Automaton) error {
	bw := bufio.NewWriter(w)

	if _, err := fmt.Fprintf(bw, "%d %d %d %d\n",
		a.GetNumStates(), a.GetStart(), a.GetNumAccept(), len(a.GetAlphabet())); err != nil {
		return err
	}

	t := NewTransition()
	for s := 0; s < a.GetNumStates(); s++ {
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
		count := a.InitTransition(s, t)
		for i := 0; i < count; i++ {
			a.GetNextTransition(t)
			if _, err := fmt.Fprintf(bw, "%c %d\n", t.Label, t.Dest); err != nil {
				return err
			}
		}
	}

	for _, finish := range a.GetAcceptStates() {
		if _, err := fmt.Fprintf(bw, "%d ", finish); err != nil {
			return err
		}
	}

	return bw.Flush()
}

// WriteFile Encodes the automaton to path, replacing any existing file.
func WriteFile(path string, a *Automaton) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := f.Close(); err == nil {
			err = closeErr
		}
	}()
	return Encode(f, a)
}

// Upper bound on capacity reserved from header counts before the body has been read.
const maxPrealloc = 1 << 16

// Longest line the decoder accepts; a finish list for MaxStates states fits.
const maxLineLength = 16 << 20

type tokenReader struct {
	scanner *bufio.Scanner
	line    int
	fields  []string
}

func newTokenReader(r io.Reader) *tokenReader {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineLength)
	return &tokenReader{scanner: scanner}
}

// Loads the next non-blank line into fields if none are left; returns false at end of input.
func (r *tokenReader) fill() (bool, error) {
	for len(r.fields) == 0 {
		if !r.scanner.Scan() {
			return false, r.scanner.Err()
		}
		r.line++
		r.fields = strings.Fields(r.scanner.Text())
	}
	return true, nil
}

func (r *tokenReader) eof(what string) error {
	return &FormatError{Line: r.line, Msg: "unexpected end of input, expected " + what}
}

// Returns the next token; what names the expected token if the input ends.
func (r *tokenReader) next(what string) (string, error) {
	ok, err := r.fill()
	if err != nil {
		return "", err
	}
	if !ok {
		return "", r.eof(what)
	}
	token := r.fields[0]
	r.fields = r.fields[1:]
	return token, nil
}

// Returns the fields of the next non-blank line, which must hold exactly n of them.
func (r *tokenReader) nextLine(what string, n int) ([]string, error) {
	ok, err := r.fill()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, r.eof(what)
	}
	fields := r.fields
	r.fields = nil
	if len(fields) != n {
		return nil, &FormatError{
			Line:  r.line,
			Token: strings.Join(fields, " "),
			Msg:   fmt.Sprintf("%s line has %d fields, expected %d", what, len(fields), n),
		}
	}
	return fields, nil
}

// Fails if any token is left.
func (r *tokenReader) end() error {
	ok, err := r.fill()
	if err != nil {
		return err
	}
	if ok {
		return &FormatError{Line: r.line, Token: r.fields[0], Msg: "unexpected token after finish states"}
	}
	return nil
}

func (r *tokenReader) nextInt(what string) (int, error) {
	token, err := r.next(what)
	if err != nil {
		return 0, err
	}
	return r.parseInt(token, what)
}

func (r *tokenReader) parseInt(token, what string) (int, error) {
	v, err := strconv.Atoi(token)
	if err != nil {
		var numErr *strconv.NumError
		if errors.As(err, &numErr) && errors.Is(numErr.Err, strconv.ErrRange) {
			return 0, &FormatError{Line: r.line, Token: token, Msg: what + " overflows int"}
		}
		return 0, &FormatError{Line: r.line, Token: token, Msg: what + " is not a number"}
	}
	return v, nil
}

func (r *tokenReader) parseCount(token, what string) (int, error) {
	v, err := r.parseInt(token, what)
	if err != nil {
		return 0, err
	}
	if v < 0 {
		return 0, &FormatError{Line: r.line, Token: token, Msg: what + " is negative"}
	}
	return v, nil
}

func (r *tokenReader) parseSymbol(token string) (rune, error) {
	label, width := utf8.DecodeRuneInString(token)
	if label == utf8.RuneError && width <= 1 {
		return 0, &FormatError{Line: r.line, Token: token, Msg: "symbol is not valid UTF-8"}
	}
	if width != len(token) {
		return 0, &FormatError{Line: r.line, Token: token, Msg: "symbol must be a single character"}
	}
	return label, nil
}
