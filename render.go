package dfamin

import (
	"bytes"
	"fmt"
	"io"
	"os/exec"
	"strings"
)

// StateDescriptor What a renderer needs to know about a state.
type StateDescriptor struct {
	ID     int
	Accept bool
}

// Diagram A rendering-neutral view of an automaton.
type Diagram struct {
	Start       int
	States      []StateDescriptor
	Transitions []Transition
}

// NewDiagram Describes a for a Renderer: every state in index order and every transition in (source, label)
// order.
func NewDiagram(a *Automaton) Diagram {
	d := Diagram{
		Start:       a.GetStart(),
		States:      make([]StateDescriptor, a.GetNumStates()),
		Transitions: make([]Transition, 0, a.GetNumTransitions()),
	}
	for s := 0; s < a.GetNumStates(); s++ {
		d.States[s] = StateDescriptor{ID: s, Accept: a.IsAccept(s)}
		d.Transitions = append(d.Transitions, a.GetSortedTransitions(s)...)
	}
	return d
}

// Renderer Produces a picture of a diagram.
type Renderer interface {
	Render(w io.Writer, d Diagram) error
}

// NopRenderer Writes nothing.
type NopRenderer struct{}

func (NopRenderer) Render(io.Writer, Diagram) error {
	return nil
}

// DotRenderer Writes a Graphviz DOT graph: left to right, unlabeled circles, double circles for accept
// states, and an invisible node pointing at the start state.
type DotRenderer struct{}

func (DotRenderer) Render(w io.Writer, d Diagram) error {
	_, err := io.WriteString(w, GenerateGraphviz(d))
	return err
}

// GenerateGraphviz Returns the DOT source written by DotRenderer.
func GenerateGraphviz(d Diagram) string {
	var sb strings.Builder

	sb.WriteString("digraph automaton {\n")
	sb.WriteString("  rankdir=LR;\n")
	sb.WriteString("  node [shape=circle, label=\"\"];\n")
	sb.WriteString("\n")

	for _, state := range d.States {
		if state.Accept {
			sb.WriteString(fmt.Sprintf("  \"%d\" [shape=doublecircle];\n", state.ID))
		} else {
			sb.WriteString(fmt.Sprintf("  \"%d\";\n", state.ID))
		}
	}
	sb.WriteString("\n")

	for _, t := range d.Transitions {
		sb.WriteString(fmt.Sprintf("  \"%d\" -> \"%d\" [label=%s];\n", t.Source, t.Dest, quoteLabel(t.Label)))
	}
	sb.WriteString("\n")

	// Fictive start node
	sb.WriteString("  start [style=invis];\n")
	sb.WriteString(fmt.Sprintf("  start -> \"%d\";\n", d.Start))

	sb.WriteString("}\n")
	return sb.String()
}

func quoteLabel(label rune) string {
	switch label {
	case '"', '\\':
		return fmt.Sprintf("\"\\%c\"", label)
	default:
		return fmt.Sprintf("\"%c\"", label)
	}
}

// GraphvizRenderer Pipes the DOT graph through the Graphviz dot binary, producing Format (png, svg, ...).
type GraphvizRenderer struct {
	// Binary defaults to "dot".
	Binary string
	Format string
	// Width in pixels, 0 for the Graphviz default.
	Width int
}

func (g GraphvizRenderer) Render(w io.Writer, d Diagram) error {
	binary := g.Binary
	if binary == "" {
		binary = "dot"
	}
	format := g.Format
	if format == "" {
		format = "png"
	}

	args := []string{"-T" + format}
	if g.Width > 0 {
		// Graphviz sizes in inches at 96 dpi for raster output.
		args = append(args, fmt.Sprintf("-Gsize=%g", float64(g.Width)/96), "-Gdpi=96")
	}

	var stderr bytes.Buffer
	cmd := exec.Command(binary, args...)
	cmd.Stdin = strings.NewReader(GenerateGraphviz(d))
	cmd.Stdout = w
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("graphviz %s: %w: %s", binary, err, strings.TrimSpace(stderr.String()))
	}
	return nil
}
