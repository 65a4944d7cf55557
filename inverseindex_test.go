package dfamin

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInverseIndex(t *testing.T) {
	a := newTestAutomaton(t, 3, 0, []int{2},
		edge{0, 'a', 1}, edge{0, 'b', 2}, edge{1, 'a', 1}, edge{2, 'a', 1}, edge{2, 'b', 2})

	index := NewInverseIndex(a)
	assert.Equal(t, 3, index.NumStates())
	assert.Equal(t, -1, index.Sink())
	assert.Equal(t, []rune{'a', 'b'}, index.Symbols())

	assert.Equal(t, []int{0, 1, 2}, index.Sources('a', 1))
	assert.Equal(t, []int{0, 2}, index.Sources('b', 2))
	assert.Empty(t, index.Sources('a', 0))
	assert.Empty(t, index.Sources('b', 1))
	assert.Empty(t, index.Sources('z', 1))
	assert.Empty(t, index.Sources('a', 3))
}

func TestCompletedInverseIndex(t *testing.T) {
	a := newTestAutomaton(t, 2, 0, []int{1}, edge{0, 'a', 1}, edge{1, 'b', 1})

	index := NewCompletedInverseIndex(a)
	sink := index.Sink()
	assert.Equal(t, 2, sink)
	assert.Equal(t, 3, index.NumStates())

	assert.Equal(t, []int{0}, index.Sources('a', 1))
	assert.Equal(t, []int{1, sink}, index.Sources('a', sink))
	assert.Equal(t, []int{1}, index.Sources('b', 1))
	assert.Equal(t, []int{0, sink}, index.Sources('b', sink))
}
