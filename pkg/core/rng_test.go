package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"picobot/pkg/grid"
)

func TestRNGDeterministic(t *testing.T) {
	g, err := grid.Empty(6, 6)
	require.NoError(t, err)
	cells := g.OpenCells()

	a, b := NewRNG(42), NewRNG(42)
	for i := 0; i < 20; i++ {
		ca, okA := a.Pick(cells)
		cb, okB := b.Pick(cells)
		require.True(t, okA)
		require.True(t, okB)
		assert.Equal(t, ca, cb)
		assert.True(t, g.IsOpen(ca.Row, ca.Col))
	}
}

func TestPickEmpty(t *testing.T) {
	_, ok := NewRNG(1).Pick(nil)
	assert.False(t, ok)
	assert.Equal(t, 0, NewRNG(1).IntN(0))
}

func TestSample(t *testing.T) {
	g, err := grid.Empty(5, 5)
	require.NoError(t, err)
	cells := g.OpenCells()

	got := NewRNG(7).Sample(cells, 4)
	require.Len(t, got, 4)
	seen := map[grid.Cell]bool{}
	for _, c := range got {
		assert.False(t, seen[c], "duplicate %v", c)
		seen[c] = true
		assert.Contains(t, cells, c)
	}

	all := NewRNG(7).Sample(cells, 100)
	assert.ElementsMatch(t, cells, all)
	assert.Equal(t, g.OpenCells(), cells, "input must not be reordered")
}
