package sim

import "picobot/pkg/rules"

// DefaultMaxSteps bounds runs when the caller has no better budget.
const DefaultMaxSteps = 10000

// RunResult summarizes a run. Success depends on coverage alone: a run that
// halts after covering every open cell still succeeds.
type RunResult struct {
	Success    bool
	StepsTaken int
	Coverage   float64
	Visited    int
	TotalOpen  int
	Halted     bool
	HaltReason string
}

// CoveragePercent returns Coverage scaled to 0-100.
func (r RunResult) CoveragePercent() float64 { return 100 * r.Coverage }

// Run steps a until full coverage (when stopOnFullCoverage is set), a halt,
// or maxSteps steps. Exhausting the budget is not an error.
func Run(a *Agent, g Grid, set rules.Set, maxSteps int, stopOnFullCoverage bool) RunResult {
	total := g.CountOpen()
	steps := 0
	for steps < maxSteps {
		if stopOnFullCoverage && len(a.visited) >= total {
			break
		}
		if a.halted {
			break
		}
		outcome := Step(a, g, set)
		steps++
		if outcome.Halted() {
			break
		}
	}
	return RunResult{
		Success:    len(a.visited) >= total,
		StepsTaken: steps,
		Coverage:   coverage(len(a.visited), total),
		Visited:    len(a.visited),
		TotalOpen:  total,
		Halted:     a.halted,
		HaltReason: a.haltReason,
	}
}
