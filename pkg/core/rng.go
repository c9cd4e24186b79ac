package core

import (
	"math/rand/v2"

	"picobot/pkg/grid"
)

// RNG is a thin convenience wrapper around math/rand/v2 for deterministic seeding.
type RNG struct {
	r *rand.Rand
}

// NewRNG creates a deterministic RNG using the provided seed.
func NewRNG(seed int64) *RNG {
	return &RNG{r: rand.New(rand.NewPCG(uint64(seed), 0))}
}

// IntN returns a random int in [0, n). It returns 0 when n <= 0.
func (r *RNG) IntN(n int) int {
	if n <= 0 {
		return 0
	}
	return r.r.IntN(n)
}

// Pick returns one of cells at random. ok is false when cells is empty.
func (r *RNG) Pick(cells []grid.Cell) (c grid.Cell, ok bool) {
	if len(cells) == 0 {
		return grid.Cell{}, false
	}
	return cells[r.IntN(len(cells))], true
}

// Sample returns k distinct cells in random order without modifying cells.
// When k >= len(cells) every cell is returned, shuffled.
func (r *RNG) Sample(cells []grid.Cell, k int) []grid.Cell {
	out := append([]grid.Cell(nil), cells...)
	r.r.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	if k >= 0 && k < len(out) {
		out = out[:k]
	}
	return out
}
