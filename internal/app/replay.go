package app

import (
	"fmt"
	"strconv"
	"strings"

	"picobot/internal/core"
	"picobot/internal/render"
	"picobot/internal/rooms"
	"picobot/internal/solutions"
	pcore "picobot/pkg/core"
	"picobot/pkg/grid"
	"picobot/pkg/sim"
)

// Replay is a finished run ready for playback.
type Replay struct {
	Room   string
	Rules  string
	Grid   *grid.Grid
	Start  grid.Cell
	Frames []render.Frame
	Result sim.RunResult
}

// Prepare runs the configured program to completion and records its frames.
func Prepare(cfg *Config) (*Replay, error) {
	params, err := rooms.ParseParams(cfg.RoomOpt)
	if err != nil {
		return nil, err
	}
	g, challenge, err := rooms.Resolve(cfg.Room, params)
	if err != nil {
		return nil, err
	}
	set, source, err := solutions.Resolve(cfg.Rules, challenge.Solution)
	if err != nil {
		return nil, err
	}
	start, err := startCell(cfg, g)
	if err != nil {
		return nil, err
	}
	a, err := sim.NewAgent(g, &start)
	if err != nil {
		return nil, err
	}
	res := sim.Run(a, g, set, cfg.MaxSteps, true)
	return &Replay{
		Room:   cfg.Room,
		Rules:  source,
		Grid:   g,
		Start:  start,
		Frames: render.Replay(g, start, a.Trace()),
		Result: res,
	}, nil
}

// Title is the window caption for r.
func (r *Replay) Title() string {
	return fmt.Sprintf("picobot: %s with %s from %s", r.Room, r.Rules, r.Start)
}

// Size returns the board dimensions.
func (r *Replay) Size() core.Size { return core.SizeOf(r.Grid) }

func startCell(cfg *Config, g *grid.Grid) (grid.Cell, error) {
	if cfg.Start != "" {
		row, col, ok := strings.Cut(cfg.Start, ",")
		if !ok {
			return grid.Cell{}, fmt.Errorf("start %q: want row,col", cfg.Start)
		}
		r, err := strconv.Atoi(strings.TrimSpace(row))
		if err != nil {
			return grid.Cell{}, fmt.Errorf("start %q: %w", cfg.Start, err)
		}
		c, err := strconv.Atoi(strings.TrimSpace(col))
		if err != nil {
			return grid.Cell{}, fmt.Errorf("start %q: %w", cfg.Start, err)
		}
		return grid.Cell{Row: r, Col: c}, nil
	}
	cells := g.OpenCells()
	if cfg.Seed >= 0 {
		if c, ok := pcore.NewRNG(cfg.Seed).Pick(cells); ok {
			return c, nil
		}
	}
	if len(cells) == 0 {
		return grid.Cell{}, &sim.IllegalStartError{NoOpen: true}
	}
	return cells[0], nil
}
