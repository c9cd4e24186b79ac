package render

import (
	"image/color"

	"picobot/pkg/grid"
)

// Cell codes index into a Palette.
const (
	CellUnvisited uint8 = iota
	CellWall
	CellVisited
	CellAgent
)

// Palette holds one colour per cell code.
type Palette []color.RGBA

// DefaultPalette is dark walls, pale floor, blue trail and an orange robot.
var DefaultPalette = Palette{
	CellUnvisited: {R: 236, G: 236, B: 228, A: 255},
	CellWall:      {R: 40, G: 44, B: 52, A: 255},
	CellVisited:   {R: 120, G: 170, B: 220, A: 255},
	CellAgent:     {R: 240, G: 120, B: 40, A: 255},
}

// Cells encodes g row-major into cell codes. visited and agent may be nil.
func Cells(g *grid.Grid, visited map[grid.Cell]bool, agent *grid.Cell) []uint8 {
	w := g.Width()
	out := make([]uint8, g.Height()*w)
	for r := 0; r < g.Height(); r++ {
		for c := 0; c < w; c++ {
			code := CellUnvisited
			switch {
			case g.IsWall(r, c):
				code = CellWall
			case visited[grid.Cell{Row: r, Col: c}]:
				code = CellVisited
			}
			out[r*w+c] = code
		}
	}
	if agent != nil && g.InBounds(agent.Row, agent.Col) {
		out[agent.Row*w+agent.Col] = CellAgent
	}
	return out
}

// fillPaletteRGBA converts cell codes into RGBA pixels using a palette. When
// the palette is empty the buffer is cleared to transparent black.
func fillPaletteRGBA(buf []byte, cells []uint8, palette Palette) {
	if len(palette) == 0 {
		for i := range cells {
			base := i * 4
			buf[base+0] = 0
			buf[base+1] = 0
			buf[base+2] = 0
			buf[base+3] = 0
		}
		return
	}

	last := len(palette) - 1
	for i, c := range cells {
		idx := int(c)
		if idx > last {
			idx = last
		}
		base := i * 4
		col := palette[idx]
		buf[base+0] = col.R
		buf[base+1] = col.G
		buf[base+2] = col.B
		buf[base+3] = col.A
	}
}
