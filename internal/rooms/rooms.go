package rooms

import (
	"picobot/internal/core"
	"picobot/pkg/grid"
)

// StandardSize is the side length of the classic empty room and maze.
const StandardSize = 25

// Room layouts, one line per row. In both mazes every wall touches the
// boundary and every open cell touches a wall, so wall following covers them.
const (
	standardMaze = `#########################
#.......................#
#######################.#
#.......................#
#.#######################
#.......................#
#######################.#
#.......................#
#.#######################
#.......................#
#######################.#
#.......................#
#.#######################
#.......................#
#######################.#
#.......................#
#.#######################
#.......................#
#######################.#
#.......................#
#.#######################
#.......................#
#######################.#
#.......................#
#########################`

	smallMaze = `#########
#.......#
#######.#
#.......#
#.#######
#.......#
#######.#
#.......#
#########`

	diamondRoom = `#############
######.######
#####...#####
####.....####
###.......###
##.........##
#...........#
##.........##
###.......###
####.....####
#####...#####
######.######
#############`

	stalactiteRoom = `#######
#.....#
###...#
#.....#
#...###
#.....#
#######`
)

// Empty builds an empty room from cfg ("h" and "w" keys).
func Empty(cfg map[string]string) (*grid.Grid, error) {
	c := FromMap(cfg)
	return grid.Empty(c.Height, c.Width)
}

// StandardMaze returns the 25x25 serpentine maze.
func StandardMaze() *grid.Grid { return mustParse(standardMaze) }

// SmallMaze returns a 9x9 maze that is small enough to trace by hand.
func SmallMaze() *grid.Grid { return mustParse(smallMaze) }

// Diamond returns the diamond-shaped room.
func Diamond() *grid.Grid { return mustParse(diamondRoom) }

// Stalactite returns a room with protrusions hanging into the open space.
func Stalactite() *grid.Grid { return mustParse(stalactiteRoom) }

func mustParse(text string) *grid.Grid {
	g, err := grid.Parse(text)
	if err != nil {
		panic(err)
	}
	return g
}

func fixed(build func() *grid.Grid) core.Factory {
	return func(map[string]string) (*grid.Grid, error) { return build(), nil }
}

func init() {
	core.Register(core.Challenge{
		Name:     "empty",
		Summary:  "walled rectangle with an open interior (h, w; default 25x25)",
		Solution: "empty-optimized",
		Build:    Empty,
	})
	core.Register(core.Challenge{
		Name:     "maze",
		Summary:  "standard 25x25 maze with one-cell corridors",
		Solution: "maze-optimized",
		Build:    fixed(StandardMaze),
	})
	core.Register(core.Challenge{
		Name:     "small-maze",
		Summary:  "9x9 maze for tracing by hand",
		Solution: "maze-optimized",
		Build:    fixed(SmallMaze),
	})
	core.Register(core.Challenge{
		Name:    "diamond",
		Summary: "diamond-shaped open space",
		Build:   fixed(Diamond),
	})
	core.Register(core.Challenge{
		Name:    "stalactite",
		Summary: "room with protrusions that trap naive sweeps",
		Build:   fixed(Stalactite),
	})
}
