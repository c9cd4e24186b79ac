package grid

import "strings"

// Parse builds a grid from one line per row. '#' and 'W' are walls, '.' and
// ' ' are open. Blank lines are skipped.
func Parse(text string) (*Grid, error) {
	var lines []string
	for _, line := range strings.Split(strings.Trim(text, "\r\n"), "\n") {
		line = strings.TrimRight(line, "\r")
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	if len(lines) == 0 {
		return nil, invalid("room text cannot be empty")
	}
	width := len(lines[0])
	rows := make([][]Kind, len(lines))
	for r, line := range lines {
		if len(line) != width {
			return nil, invalid("inconsistent row width: row 0 has %d chars, but row %d has %d", width, r, len(line))
		}
		rows[r] = make([]Kind, width)
		for c := 0; c < len(line); c++ {
			switch line[c] {
			case '#', 'W':
				rows[r][c] = Wall
			case '.', ' ':
				rows[r][c] = Open
			default:
				return nil, invalid("invalid character %q at row %d, col %d", line[c], r, c)
			}
		}
	}
	return New(rows)
}

// Render draws the grid as text: '#' wall, '.' unvisited, 'o' visited and
// 'P' for the agent. visited and agent may be nil.
func (g *Grid) Render(visited map[Cell]bool, agent *Cell) string {
	var b strings.Builder
	b.Grow(g.h * (g.w + 1))
	for r := 0; r < g.h; r++ {
		if r > 0 {
			b.WriteByte('\n')
		}
		for c := 0; c < g.w; c++ {
			cell := Cell{Row: r, Col: c}
			switch {
			case agent != nil && *agent == cell:
				b.WriteByte('P')
			case g.data[r*g.w+c] == Wall:
				b.WriteByte('#')
			case visited[cell]:
				b.WriteByte('o')
			default:
				b.WriteByte('.')
			}
		}
	}
	return b.String()
}

// String renders the bare grid.
func (g *Grid) String() string { return g.Render(nil, nil) }
