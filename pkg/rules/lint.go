package rules

import "fmt"

// FindingKind classifies an advisory lint finding.
type FindingKind string

const (
	// FindingShadowed marks a rule that can never fire because earlier rules
	// match every surroundings it matches.
	FindingShadowed FindingKind = "shadowed"
	// FindingMoveIntoWall marks a rule whose own pattern requires a wall in
	// the direction it moves.
	FindingMoveIntoWall FindingKind = "move-into-wall"
	// FindingUnhandledState marks a new state that no rule handles.
	FindingUnhandledState FindingKind = "unhandled-state"
	// FindingNoStartRule marks a set with no rule for the start state 0.
	FindingNoStartRule FindingKind = "no-start-rule"
)

// Finding is a non-fatal observation about a rule set.
type Finding struct {
	Kind    FindingKind
	Index   int // position in the set, -1 for set-wide findings
	Line    int
	Message string
}

func (f Finding) String() string {
	if f.Line > 0 {
		return fmt.Sprintf("line %d: %s: %s", f.Line, f.Kind, f.Message)
	}
	return fmt.Sprintf("%s: %s", f.Kind, f.Message)
}

// Lint reports rules that cannot fire or that are bound to halt a run.
// Findings are ordered by rule position.
func Lint(s Set) []Finding {
	var findings []Finding
	handled := map[int]bool{}
	for _, r := range s {
		handled[r.State] = true
	}
	if len(s) > 0 && !handled[0] {
		findings = append(findings, Finding{
			Kind:    FindingNoStartRule,
			Index:   -1,
			Message: "no rule handles the start state 0",
		})
	}

	reported := map[int]bool{}
	for i, r := range s {
		if shadowed(s[:i], r) {
			findings = append(findings, Finding{
				Kind:    FindingShadowed,
				Index:   i,
				Line:    r.Line,
				Message: fmt.Sprintf("%q never fires: earlier rules for state %d match all of %s", r.String(), r.State, r.Pattern),
			})
		}
		if r.Move != Stay && r.Pattern.WallAt(r.Move) {
			findings = append(findings, Finding{
				Kind:    FindingMoveIntoWall,
				Index:   i,
				Line:    r.Line,
				Message: fmt.Sprintf("%q moves %s although its pattern requires a wall there", r.String(), r.Move),
			})
		}
		if !handled[r.NewState] && !reported[r.NewState] {
			reported[r.NewState] = true
			findings = append(findings, Finding{
				Kind:    FindingUnhandledState,
				Index:   i,
				Line:    r.Line,
				Message: fmt.Sprintf("%q enters state %d, which no rule handles", r.String(), r.NewState),
			})
		}
	}
	return findings
}

func shadowed(earlier Set, r Rule) bool {
	for _, observed := range r.Pattern.Expand() {
		if _, ok := earlier.Match(r.State, observed); !ok {
			return false
		}
	}
	return true
}
