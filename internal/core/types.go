package core

import (
	"sort"

	"picobot/pkg/grid"
)

// Size describes the dimensions of a room.
type Size struct {
	W int
	H int
}

// SizeOf returns the dimensions of g.
func SizeOf(g *grid.Grid) Size { return Size{W: g.Width(), H: g.Height()} }

// Factory builds a room using an optional configuration map.
type Factory func(cfg map[string]string) (*grid.Grid, error)

// Challenge is a named room together with the bundled rule set meant for it.
type Challenge struct {
	Name     string
	Summary  string
	Solution string
	Build    Factory
}

var challenges = map[string]Challenge{}

// Register adds a challenge under its name.
func Register(c Challenge) {
	if c.Name == "" || c.Build == nil {
		return
	}
	challenges[c.Name] = c
}

// Challenges exposes the registry of available challenges.
func Challenges() map[string]Challenge {
	return challenges
}

// ChallengeNames lists registered challenges in lexical order.
func ChallengeNames() []string {
	names := make([]string, 0, len(challenges))
	for name := range challenges {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
