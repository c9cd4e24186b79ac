package rooms

import (
	"fmt"
	"os"
	"strings"

	"picobot/internal/core"
	"picobot/pkg/grid"
)

// Resolve builds the registered room called name with params. A name that is
// not registered is read as a room file; the returned challenge then carries
// only the name.
func Resolve(name string, params map[string]string) (*grid.Grid, core.Challenge, error) {
	if c, ok := core.Challenges()[name]; ok {
		g, err := c.Build(params)
		if err != nil {
			return nil, core.Challenge{}, fmt.Errorf("building room %s: %w", name, err)
		}
		return g, c, nil
	}
	data, err := os.ReadFile(name)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, core.Challenge{}, fmt.Errorf("unknown room %q (registered: %s)", name, strings.Join(core.ChallengeNames(), ", "))
		}
		return nil, core.Challenge{}, fmt.Errorf("reading room file: %w", err)
	}
	g, err := grid.Parse(string(data))
	if err != nil {
		return nil, core.Challenge{}, fmt.Errorf("room file %s: %w", name, err)
	}
	return g, core.Challenge{Name: name}, nil
}

// ParseParams reads "k=v,k=v" into a parameter map for Resolve.
func ParseParams(s string) (map[string]string, error) {
	out := map[string]string{}
	if strings.TrimSpace(s) == "" {
		return out, nil
	}
	for _, part := range strings.Split(s, ",") {
		k, v, ok := strings.Cut(part, "=")
		k = strings.TrimSpace(k)
		if !ok || k == "" {
			return nil, fmt.Errorf("room option %q: want key=value", part)
		}
		out[k] = strings.TrimSpace(v)
	}
	return out, nil
}
