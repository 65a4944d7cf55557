package dfamin

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReachableStates(t *testing.T) {
	t.Run("disconnected", func(t *testing.T) {
		a := newTestAutomaton(t, 5, 1, []int{4},
			edge{1, 'a', 2}, edge{2, 'a', 1}, edge{0, 'a', 1}, edge{3, 'a', 4}, edge{4, 'b', 3})

		live := ReachableStates(a)
		assert.Equal(t, uint(2), live.Count())
		assert.True(t, live.Test(1))
		assert.True(t, live.Test(2))
		assert.False(t, live.Test(0))
		assert.False(t, live.Test(3))
		assert.False(t, live.Test(4))
	})

	t.Run("start only", func(t *testing.T) {
		a := newTestAutomaton(t, 3, 2, nil, edge{0, 'a', 1})
		live := ReachableStates(a)
		assert.Equal(t, uint(1), live.Count())
		assert.True(t, live.Test(2))
	})

	t.Run("long chain", func(t *testing.T) {
		// Deep enough to overflow a recursive traversal with a small stack.
		const size = 200000
		b := NewBuilderV1(size, size)
		b.CreateStates(size)
		for s := 0; s+1 < size; s++ {
			b.AddTransition(s, 'a', s+1)
		}
		b.SetAccept(size-1, true)
		a, err := b.Finish()
		assert.NoError(t, err)

		assert.Equal(t, uint(size), ReachableStates(a).Count())
	})
}

func TestIsEmptyAutomaton(t *testing.T) {
	assert.True(t, IsEmptyAutomaton(defaultAutomata.MakeEmpty()))
	assert.False(t, IsEmptyAutomaton(defaultAutomata.MakeEmptyString()))
	assert.False(t, IsEmptyAutomaton(defaultAutomata.MakeString("abc")))

	unreachableAccept := newTestAutomaton(t, 3, 0, []int{2}, edge{0, 'a', 1}, edge{1, 'a', 0})
	assert.True(t, IsEmptyAutomaton(unreachableAccept))
}
