package core

import (
	"fmt"
	"io"
	"strconv"

	"picobot/pkg/sim"
)

// Entry is a single labelled value in a report.
type Entry struct {
	Key   string
	Label string
	Value string
}

// Group clusters related entries for presentation purposes.
type Group struct {
	Name    string
	Entries []Entry
}

// Snapshot is a presentation-ready summary shared by the CLI and the HUD.
type Snapshot struct {
	Groups []Group
}

// WriteText prints the snapshot as indented "label: value" lines.
func (s Snapshot) WriteText(w io.Writer) error {
	for i, g := range s.Groups {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "%s\n", g.Name); err != nil {
			return err
		}
		for _, e := range g.Entries {
			if _, err := fmt.Fprintf(w, "  %-14s %s\n", e.Label+":", e.Value); err != nil {
				return err
			}
		}
	}
	return nil
}

// Map flattens the snapshot into key/value pairs, for JSON output.
func (s Snapshot) Map() map[string]string {
	out := map[string]string{}
	for _, g := range s.Groups {
		for _, e := range g.Entries {
			out[e.Key] = e.Value
		}
	}
	return out
}

// RunSnapshot summarizes a finished (or in-progress) run.
func RunSnapshot(res sim.RunResult) Snapshot {
	groups := []Group{{
		Name: "Run",
		Entries: []Entry{
			boolEntry("success", "Success", res.Success),
			intEntry("steps", "Steps", res.StepsTaken),
			percentEntry("coverage", "Coverage", res.CoveragePercent()),
			intEntry("visited", "Visited", res.Visited),
			intEntry("total", "Open cells", res.TotalOpen),
		},
	}}
	if res.Halted {
		groups = append(groups, Group{
			Name:    "Halt",
			Entries: []Entry{{Key: "halt_reason", Label: "Reason", Value: res.HaltReason}},
		})
	}
	return Snapshot{Groups: groups}
}

// VerifySnapshot summarizes an exhaustive verification.
func VerifySnapshot(res sim.VerifyResult) Snapshot {
	return Snapshot{Groups: []Group{{
		Name: "Verify",
		Entries: []Entry{
			boolEntry("success", "Success", res.Success),
			intEntry("tested", "Tested", res.Tested),
			intEntry("passed", "Passed", res.Passed),
			intEntry("failed", "Failed", len(res.Failures)),
			intEntry("max_steps", "Max steps", res.MaxStepsUsed),
			floatEntry("avg_steps", "Avg steps", res.AvgSteps),
		},
	}}}
}

// StepSnapshot describes the agent after a replayed step, for the HUD.
func StepSnapshot(step, state int, rule string, coverage float64) Snapshot {
	if rule == "" {
		rule = "-"
	}
	return Snapshot{Groups: []Group{{
		Name: "Agent",
		Entries: []Entry{
			intEntry("step", "Step", step),
			intEntry("state", "State", state),
			{Key: "rule", Label: "Rule", Value: rule},
			percentEntry("coverage", "Coverage", 100*coverage),
		},
	}}}
}

func intEntry(key, label string, value int) Entry {
	return Entry{Key: key, Label: label, Value: strconv.Itoa(value)}
}

func boolEntry(key, label string, value bool) Entry {
	return Entry{Key: key, Label: label, Value: strconv.FormatBool(value)}
}

func floatEntry(key, label string, value float64) Entry {
	return Entry{Key: key, Label: label, Value: strconv.FormatFloat(value, 'f', 1, 64)}
}

func percentEntry(key, label string, value float64) Entry {
	return Entry{Key: key, Label: label, Value: strconv.FormatFloat(value, 'f', 1, 64) + "%"}
}
