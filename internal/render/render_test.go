package render

import (
	"bytes"
	"image/gif"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"picobot/pkg/grid"
	"picobot/pkg/rules"
	"picobot/pkg/sim"
)

func runEmpty(t *testing.T) (*grid.Grid, grid.Cell, []sim.TraceRecord) {
	t.Helper()
	g, err := grid.Empty(5, 5)
	require.NoError(t, err)
	set := rules.MustParse(`
0 x*** -> N 0
0 N*** -> X 1
1 *x** -> E 1
1 *E** -> W 2
2 **x* -> W 2
2 **W* -> S 1
`)
	start := grid.Cell{Row: 2, Col: 2}
	a, err := sim.NewAgent(g, &start)
	require.NoError(t, err)
	res := sim.Run(a, g, set, 100, true)
	require.True(t, res.Success)
	return g, start, a.Trace()
}

func TestCells(t *testing.T) {
	g, err := grid.Empty(3, 4)
	require.NoError(t, err)
	agent := grid.Cell{Row: 1, Col: 2}
	cells := Cells(g, map[grid.Cell]bool{{Row: 1, Col: 1}: true}, &agent)
	assert.Equal(t, []uint8{
		CellWall, CellWall, CellWall, CellWall,
		CellWall, CellVisited, CellAgent, CellWall,
		CellWall, CellWall, CellWall, CellWall,
	}, cells)
}

func TestFillPaletteRGBA(t *testing.T) {
	buf := make([]byte, 8)
	fillPaletteRGBA(buf, []uint8{CellWall, 200}, DefaultPalette)
	w, a := DefaultPalette[CellWall], DefaultPalette[CellAgent]
	assert.Equal(t, []byte{w.R, w.G, w.B, w.A, a.R, a.G, a.B, a.A}, buf)

	fillPaletteRGBA(buf, []uint8{1, 2}, nil)
	assert.Equal(t, make([]byte, 8), buf)
}

func TestReplay(t *testing.T) {
	g, start, trace := runEmpty(t)
	frames := Replay(g, start, trace)
	require.Len(t, frames, len(trace)+1)

	first := frames[0]
	assert.Equal(t, 0, first.Step)
	assert.Equal(t, start, first.Position)
	assert.Empty(t, first.Rule)
	assert.InDelta(t, 1.0/9, first.Coverage, 1e-9)

	last := frames[len(frames)-1]
	assert.Equal(t, len(trace), last.Step)
	assert.Equal(t, 1.0, last.Coverage)
	assert.Equal(t, trace[len(trace)-1].To, last.Position)
	assert.NotEmpty(t, last.Rule)
	for _, c := range last.Cells {
		assert.NotEqual(t, CellUnvisited, c)
	}
}

func TestReplayIncludesHalt(t *testing.T) {
	g, err := grid.Empty(5, 5)
	require.NoError(t, err)
	start := grid.Cell{Row: 1, Col: 1}
	a, err := sim.NewAgent(g, &start)
	require.NoError(t, err)
	res := sim.Run(a, g, rules.MustParse("0 ***x -> S 0"), 50, true)
	require.True(t, res.Halted)

	frames := Replay(g, start, a.Trace())
	last := frames[len(frames)-1]
	assert.Equal(t, sim.HaltedNoRule, last.Outcome)
	assert.Equal(t, grid.Cell{Row: 3, Col: 1}, last.Position)
	assert.Contains(t, Caption(last), "halted: no rule")
}

func TestWriteGIF(t *testing.T) {
	g, start, trace := runEmpty(t)
	frames := Replay(g, start, trace)

	opts := DefaultGIFOptions()
	opts.Scale = 4
	opts.Every = 3
	opts.Loop = false

	var buf bytes.Buffer
	require.NoError(t, WriteGIF(&buf, g.Width(), g.Height(), frames, opts))

	decoded, err := gif.DecodeAll(&buf)
	require.NoError(t, err)
	want := (len(frames)-1)/3 + 1
	if (len(frames)-1)%3 != 0 {
		want++
	}
	assert.Len(t, decoded.Image, want)
	assert.Equal(t, -1, decoded.LoopCount)
	b := decoded.Image[0].Bounds()
	assert.Equal(t, 20, b.Dx())
	assert.Equal(t, 20+captionHeight, b.Dy())
	assert.Equal(t, 8, decoded.Delay[0])
}

func TestWriteGIFRejectsBadFrames(t *testing.T) {
	var buf bytes.Buffer
	require.Error(t, WriteGIF(&buf, 3, 3, nil, DefaultGIFOptions()))
	require.Error(t, WriteGIF(&buf, 3, 3, []Frame{{Cells: []uint8{0}}}, DefaultGIFOptions()))
}

func TestCaption(t *testing.T) {
	assert.Equal(t, "step 3  state 1  50.0%", Caption(Frame{Step: 3, State: 1, Coverage: 0.5}))
}
