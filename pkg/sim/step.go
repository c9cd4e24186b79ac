package sim

import (
	"fmt"

	"picobot/pkg/grid"
	"picobot/pkg/rules"
)

// Outcome is the result of a single step.
type Outcome int

const (
	Advanced Outcome = iota
	HaltedNoRule
	HaltedIllegalMove
)

func (o Outcome) String() string {
	switch o {
	case Advanced:
		return "advanced"
	case HaltedNoRule:
		return "halted: no rule"
	case HaltedIllegalMove:
		return "halted: illegal move"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// Halted reports whether o stopped the run.
func (o Outcome) Halted() bool { return o != Advanced }

// TraceRecord describes one step. On a halt To and NewState repeat From and
// State.
type TraceRecord struct {
	Step         int
	From         grid.Cell
	State        int
	Surroundings rules.Pattern
	Rule         *rules.Rule
	To           grid.Cell
	NewState     int
	Outcome      Outcome
}

// Step fires at most one rule. Grid and rule set are read-only; only a is
// mutated. Stepping an already halted agent returns the halting outcome
// again without recording anything.
func Step(a *Agent, g Grid, set rules.Set) Outcome {
	if a.halted {
		return a.haltedBy
	}
	from, state := a.pos, a.state
	observed := a.Surroundings(g)
	rec := TraceRecord{
		Step:         len(a.trace),
		From:         from,
		State:        state,
		Surroundings: observed,
		To:           from,
		NewState:     state,
	}

	rule, ok := set.Match(state, observed)
	if !ok {
		rec.Outcome = HaltedNoRule
		a.halt(rec, fmt.Sprintf("no rule matches state %d with pattern %s", state, observed))
		return HaltedNoRule
	}
	rec.Rule = &rule

	dr, dc := rule.Move.Delta()
	to := grid.Cell{Row: from.Row + dr, Col: from.Col + dc}
	if g.IsWall(to.Row, to.Col) {
		rec.Outcome = HaltedIllegalMove
		a.halt(rec, fmt.Sprintf("rule %q tried to move into wall at %s", rule.String(), to))
		return HaltedIllegalMove
	}

	a.pos = to
	a.state = rule.NewState
	a.visited[to] = struct{}{}
	rec.To = to
	rec.NewState = rule.NewState
	rec.Outcome = Advanced
	a.trace = append(a.trace, rec)
	return Advanced
}

func (a *Agent) halt(rec TraceRecord, reason string) {
	a.trace = append(a.trace, rec)
	a.halted = true
	a.haltReason = reason
	a.haltedBy = rec.Outcome
}
