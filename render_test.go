package dfamin

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDiagram(t *testing.T) {
	a := newTestAutomaton(t, 2, 1, []int{0}, edge{1, 'b', 0}, edge{1, 'a', 1}, edge{0, 'a', 0})
	d := NewDiagram(a)

	assert.Equal(t, 1, d.Start)
	assert.Equal(t, []StateDescriptor{{ID: 0, Accept: true}, {ID: 1, Accept: false}}, d.States)
	assert.Equal(t, []Transition{
		{Source: 0, Dest: 0, Label: 'a'},
		{Source: 1, Dest: 1, Label: 'a'},
		{Source: 1, Dest: 0, Label: 'b'},
	}, d.Transitions)
}

func TestDotRenderer(t *testing.T) {
	a := newTestAutomaton(t, 2, 0, []int{1}, edge{0, 'a', 1}, edge{1, '"', 1})

	var buf bytes.Buffer
	require.NoError(t, DotRenderer{}.Render(&buf, NewDiagram(a)))

	want := `digraph automaton {
  rankdir=LR;
  node [shape=circle, label=""];

  "0";
  "1" [shape=doublecircle];

  "0" -> "1" [label="a"];
  "1" -> "1" [label="\""];

  start [style=invis];
  start -> "0";
}
`
	assert.Equal(t, want, buf.String())
}

func TestNopRenderer(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NopRenderer{}.Render(&buf, NewDiagram(defaultAutomata.MakeString("ab"))))
	assert.Zero(t, buf.Len())
}

func TestGraphvizRendererMissingBinary(t *testing.T) {
	r := GraphvizRenderer{Binary: filepath.Join(t.TempDir(), "no-such-dot"), Format: "png"}

	var buf bytes.Buffer
	err := r.Render(&buf, NewDiagram(defaultAutomata.MakeEmptyString()))
	assert.Error(t, err)
	assert.Zero(t, buf.Len())
}
