package rooms

import "picobot/pkg/grid"

var neighbours = [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}

// MazeReport lists the properties that make wall following complete.
type MazeReport struct {
	Valid bool

	// IsolatedWalls are wall cells not connected to the boundary.
	IsolatedWalls []grid.Cell
	// IsolatedCells are open cells with no adjacent wall.
	IsolatedCells []grid.Cell
}

// AllWallsConnected reports whether every wall touches the boundary through
// other walls.
func (r MazeReport) AllWallsConnected() bool { return len(r.IsolatedWalls) == 0 }

// AllCellsHaveWall reports whether every open cell is next to a wall.
func (r MazeReport) AllCellsHaveWall() bool { return len(r.IsolatedCells) == 0 }

// ValidateMaze checks whether a right- or left-hand wall follower is
// guaranteed to visit every open cell of g.
func ValidateMaze(g *grid.Grid) MazeReport {
	h, w := g.Height(), g.Width()
	connected := make([]bool, h*w)
	var stack []grid.Cell
	for r := 0; r < h; r++ {
		for c := 0; c < w; c++ {
			boundary := r == 0 || r == h-1 || c == 0 || c == w-1
			if boundary && g.IsWall(r, c) {
				connected[r*w+c] = true
				stack = append(stack, grid.Cell{Row: r, Col: c})
			}
		}
	}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, d := range neighbours {
			nr, nc := cur.Row+d[0], cur.Col+d[1]
			if !g.InBounds(nr, nc) || !g.IsWall(nr, nc) || connected[nr*w+nc] {
				continue
			}
			connected[nr*w+nc] = true
			stack = append(stack, grid.Cell{Row: nr, Col: nc})
		}
	}

	var report MazeReport
	for r := 0; r < h; r++ {
		for c := 0; c < w; c++ {
			cell := grid.Cell{Row: r, Col: c}
			if g.IsWall(r, c) {
				if !connected[r*w+c] {
					report.IsolatedWalls = append(report.IsolatedWalls, cell)
				}
				continue
			}
			if !touchesWall(g, cell) {
				report.IsolatedCells = append(report.IsolatedCells, cell)
			}
		}
	}
	report.Valid = report.AllWallsConnected() && report.AllCellsHaveWall()
	return report
}

func touchesWall(g *grid.Grid, c grid.Cell) bool {
	for _, d := range neighbours {
		if g.IsWall(c.Row+d[0], c.Col+d[1]) {
			return true
		}
	}
	return false
}

// Stats summarizes a room's composition.
type Stats struct {
	Height      int
	Width       int
	Total       int
	Open        int
	Walls       int
	OpenPercent float64
}

// StatsOf computes room statistics for g.
func StatsOf(g *grid.Grid) Stats {
	total := g.Height() * g.Width()
	open := g.CountOpen()
	s := Stats{
		Height: g.Height(),
		Width:  g.Width(),
		Total:  total,
		Open:   open,
		Walls:  total - open,
	}
	if total > 0 {
		s.OpenPercent = 100 * float64(open) / float64(total)
	}
	return s
}
