package sim

import (
	"errors"
	"fmt"

	"picobot/pkg/grid"
	"picobot/pkg/rules"
)

// Grid is the geometry the engine needs. Out-of-bounds coordinates must
// report as walls.
type Grid interface {
	IsWall(row, col int) bool
	CountOpen() int
	OpenCells() []grid.Cell
}

// StartState is the state every run begins in.
const StartState = 0

// ErrIllegalStart is matched by every IllegalStartError via errors.Is.
var ErrIllegalStart = errors.New("illegal start position")

// IllegalStartError reports a start cell that is a wall or out of bounds, or
// a grid without any open cell.
type IllegalStartError struct {
	Cell   grid.Cell
	NoOpen bool
}

func (e *IllegalStartError) Error() string {
	if e.NoOpen {
		return "illegal start position: grid has no open cells"
	}
	return fmt.Sprintf("illegal start position %s: wall or out of bounds", e.Cell)
}

// Is lets errors.Is(err, ErrIllegalStart) match.
func (e *IllegalStartError) Is(target error) bool { return target == ErrIllegalStart }

// Agent is the mutable state of a single run. It is never shared between
// runs.
type Agent struct {
	pos     grid.Cell
	state   int
	visited map[grid.Cell]struct{}
	trace   []TraceRecord

	halted     bool
	haltReason string
	haltedBy   Outcome
}

// NewAgent places an agent on g in StartState. A nil start selects the first
// open cell in row-major order.
func NewAgent(g Grid, start *grid.Cell) (*Agent, error) {
	a := &Agent{}
	if err := a.Reset(g, start); err != nil {
		return nil, err
	}
	return a, nil
}

// Reset discards all run state and restarts at start (or the first open
// cell when start is nil).
func (a *Agent) Reset(g Grid, start *grid.Cell) error {
	var pos grid.Cell
	if start == nil {
		cells := g.OpenCells()
		if len(cells) == 0 {
			return &IllegalStartError{NoOpen: true}
		}
		pos = cells[0]
	} else {
		pos = *start
		if g.IsWall(pos.Row, pos.Col) {
			return &IllegalStartError{Cell: pos}
		}
	}
	a.pos = pos
	a.state = StartState
	a.visited = map[grid.Cell]struct{}{pos: {}}
	a.trace = nil
	a.halted = false
	a.haltReason = ""
	a.haltedBy = Advanced
	return nil
}

// Position returns the current cell.
func (a *Agent) Position() grid.Cell { return a.pos }

// State returns the current state id.
func (a *Agent) State() int { return a.state }

// VisitedCount returns how many distinct cells the agent has occupied.
func (a *Agent) VisitedCount() int { return len(a.visited) }

// HasVisited reports whether c has been occupied during this run.
func (a *Agent) HasVisited(c grid.Cell) bool {
	_, ok := a.visited[c]
	return ok
}

// Visited returns the visited set as a fresh map.
func (a *Agent) Visited() map[grid.Cell]bool {
	out := make(map[grid.Cell]bool, len(a.visited))
	for c := range a.visited {
		out[c] = true
	}
	return out
}

// Trace exposes the append-only step log. Callers must not modify it.
func (a *Agent) Trace() []TraceRecord { return a.trace }

// Halted reports whether the run has stopped and why.
func (a *Agent) Halted() (bool, string) { return a.halted, a.haltReason }

// Surroundings observes the four NEWS neighbours: the direction letter for a
// wall, rules.OpenMark otherwise.
func (a *Agent) Surroundings(g Grid) rules.Pattern {
	var p rules.Pattern
	for i, d := range rules.NEWS {
		dr, dc := d.Delta()
		if g.IsWall(a.pos.Row+dr, a.pos.Col+dc) {
			p[i] = byte(d)
		} else {
			p[i] = rules.OpenMark
		}
	}
	return p
}

// Coverage returns the visited fraction of g's open cells. A grid without
// open cells counts as fully covered.
func (a *Agent) Coverage(g Grid) float64 {
	return coverage(len(a.visited), g.CountOpen())
}

// IsComplete reports whether every open cell of g has been visited.
func (a *Agent) IsComplete(g Grid) bool {
	return len(a.visited) >= g.CountOpen()
}

func coverage(visited, total int) float64 {
	if total == 0 {
		return 1
	}
	return float64(visited) / float64(total)
}
