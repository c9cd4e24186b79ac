package sim

import (
	"picobot/pkg/grid"
	"picobot/pkg/rules"
)

// Failure pairs a failing start cell with its run.
type Failure struct {
	Start  grid.Cell
	Result RunResult
}

// VerifyResult aggregates runs from many start cells. Success holds only if
// every tested start succeeded.
type VerifyResult struct {
	Success  bool
	Tested   int
	Passed   int
	Failures []Failure

	// MaxStepsUsed and AvgSteps cover passing runs only.
	MaxStepsUsed int
	AvgSteps     float64

	passedSteps int
}

// VerifyAllPositions runs set from every open cell of g in row-major order,
// each with a fresh agent in StartState, stopping runs at full coverage.
// A rule set is correct for g exactly when the result succeeds.
func VerifyAllPositions(g Grid, set rules.Set, maxSteps int) VerifyResult {
	res, err := VerifyFrom(g, set, maxSteps, g.OpenCells())
	if err != nil {
		// unreachable for a consistent Grid: OpenCells yields open cells only
		panic(err)
	}
	return res
}

// VerifyFrom is VerifyAllPositions restricted to starts, in the given order.
// It fails before running anything if any start is illegal.
func VerifyFrom(g Grid, set rules.Set, maxSteps int, starts []grid.Cell) (VerifyResult, error) {
	for _, s := range starts {
		if g.IsWall(s.Row, s.Col) {
			return VerifyResult{}, &IllegalStartError{Cell: s}
		}
	}
	var res VerifyResult
	for _, s := range starts {
		start := s
		a, err := NewAgent(g, &start)
		if err != nil {
			return VerifyResult{}, err
		}
		res.add(start, Run(a, g, set, maxSteps, true))
	}
	res.finish()
	return res, nil
}

// MergeVerify combines partial results, keeping failures in argument order.
func MergeVerify(parts ...VerifyResult) VerifyResult {
	var res VerifyResult
	for _, p := range parts {
		res.Tested += p.Tested
		res.Passed += p.Passed
		res.passedSteps += p.passedSteps
		res.Failures = append(res.Failures, p.Failures...)
		if p.MaxStepsUsed > res.MaxStepsUsed {
			res.MaxStepsUsed = p.MaxStepsUsed
		}
	}
	res.finish()
	return res
}

func (v *VerifyResult) add(start grid.Cell, r RunResult) {
	v.Tested++
	if !r.Success {
		v.Failures = append(v.Failures, Failure{Start: start, Result: r})
		return
	}
	v.Passed++
	v.passedSteps += r.StepsTaken
	if r.StepsTaken > v.MaxStepsUsed {
		v.MaxStepsUsed = r.StepsTaken
	}
}

func (v *VerifyResult) finish() {
	v.Success = v.Passed == v.Tested
	v.AvgSteps = 0
	if v.Passed > 0 {
		v.AvgSteps = float64(v.passedSteps) / float64(v.Passed)
	}
}
