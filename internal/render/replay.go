package render

import (
	"picobot/pkg/grid"
	"picobot/pkg/sim"
)

// Frame is the board after a number of steps.
type Frame struct {
	Step     int
	Position grid.Cell
	State    int
	Rule     string // rule that produced this frame, empty for the start
	Coverage float64
	Outcome  sim.Outcome
	Cells    []uint8
}

// Replay rebuilds one frame per trace record, preceded by the start frame.
// A halting record yields a frame with the agent where it stopped.
func Replay(g *grid.Grid, start grid.Cell, trace []sim.TraceRecord) []Frame {
	total := g.CountOpen()
	visited := map[grid.Cell]bool{start: true}
	cov := func() float64 {
		if total == 0 {
			return 1
		}
		return float64(len(visited)) / float64(total)
	}

	frames := make([]Frame, 0, len(trace)+1)
	pos := start
	frames = append(frames, Frame{
		Position: pos,
		Coverage: cov(),
		Cells:    Cells(g, visited, &pos),
	})
	for _, rec := range trace {
		pos = rec.To
		visited[pos] = true
		f := Frame{
			Step:     rec.Step + 1,
			Position: pos,
			State:    rec.NewState,
			Coverage: cov(),
			Outcome:  rec.Outcome,
			Cells:    Cells(g, visited, &pos),
		}
		if rec.Rule != nil {
			f.Rule = rec.Rule.String()
		}
		frames = append(frames, f)
	}
	return frames
}
