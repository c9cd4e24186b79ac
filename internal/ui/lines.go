package ui

import (
	"fmt"

	"picobot/internal/core"
)

// PanelWidth is the HUD width in pixels, to the right of the board.
const PanelWidth = 200

// Lines lays a snapshot out as panel text: a heading per group, then one
// indented "label value" line per entry, with a blank line between groups.
func Lines(s core.Snapshot) []string {
	var out []string
	for i, g := range s.Groups {
		if i > 0 {
			out = append(out, "")
		}
		out = append(out, g.Name)
		for _, e := range g.Entries {
			out = append(out, fmt.Sprintf(" %-9s %s", e.Label, e.Value))
		}
	}
	return out
}

// Help lists the viewer key bindings.
var Help = []string{
	"space  pause",
	"n      step",
	"r      restart",
	"+/-    speed",
	"q      quit",
}
