package rooms

import "strconv"

// EmptyConfig controls the empty room dimensions, walls included.
type EmptyConfig struct {
	Height int
	Width  int
}

// DefaultEmptyConfig returns the classic 25x25 room.
func DefaultEmptyConfig() EmptyConfig {
	return EmptyConfig{Height: StandardSize, Width: StandardSize}
}

// FromMap populates the config from a string map (flag-style key/value pairs).
// Unparseable values keep their defaults; range checks happen at build time.
func FromMap(cfg map[string]string) EmptyConfig {
	c := DefaultEmptyConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["h"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil {
			c.Height = parsed
		}
	}
	if v, ok := cfg["w"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil {
			c.Width = parsed
		}
	}
	return c
}
