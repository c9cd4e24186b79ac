package main

import (
	"fmt"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"picobot/internal/core"
	"picobot/internal/solutions"
	"picobot/pkg/sim"
)

type matrixJob struct {
	room     string
	solution string
}

type matrixCell struct {
	Room     string  `json:"room"`
	Solution string  `json:"solution"`
	Success  bool    `json:"success"`
	Tested   int     `json:"tested"`
	Passed   int     `json:"passed"`
	MaxSteps int     `json:"max_steps"`
	AvgSteps float64 `json:"avg_steps"`
	Err      string  `json:"error,omitempty"`
}

func newMatrixCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "matrix",
		Short: "Verify every bundled program on every registered room",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			workers, _ := cmd.Flags().GetInt("workers")
			if workers < 1 {
				workers = 1
			}
			maxSteps := e.cfg.Sim.MaxSteps
			if cmd.Flags().Changed("max-steps") {
				maxSteps, _ = cmd.Flags().GetInt("max-steps")
			}

			var jobs []matrixJob
			for _, room := range core.ChallengeNames() {
				for _, name := range solutions.Names() {
					jobs = append(jobs, matrixJob{room: room, solution: name})
				}
			}
			e.log.Info("matrix started", "pairs", len(jobs), "workers", workers)

			start := time.Now()
			cells := runMatrix(jobs, workers, maxSteps)
			e.log.Info("matrix finished", "pairs", len(cells), "elapsed", time.Since(start).Round(time.Millisecond).String())

			out := cmd.OutOrStdout()
			if e.jsonOut {
				return writeJSON(out, cells)
			}
			for _, c := range cells {
				switch {
				case c.Err != "":
					fmt.Fprintf(out, "%-12s %-18s error: %s\n", c.Room, c.Solution, c.Err)
				case c.Success:
					fmt.Fprintf(out, "%-12s %-18s pass  %4d/%-4d max %d avg %.1f\n", c.Room, c.Solution, c.Passed, c.Tested, c.MaxSteps, c.AvgSteps)
				default:
					fmt.Fprintf(out, "%-12s %-18s fail  %4d/%-4d\n", c.Room, c.Solution, c.Passed, c.Tested)
				}
			}
			return nil
		},
	}
	cmd.Flags().Int("workers", runtime.NumCPU(), "Number of worker goroutines")
	cmd.Flags().Int("max-steps", 0, "Step budget per start cell (default from config)")
	return cmd
}

// runMatrix verifies each pair on a pool of workers and returns the cells
// sorted by room, then solution.
func runMatrix(jobs []matrixJob, workers, maxSteps int) []matrixCell {
	jobCh := make(chan matrixJob)
	results := make(chan matrixCell)
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobCh {
				results <- verifyPair(j, maxSteps)
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	go func() {
		for _, j := range jobs {
			jobCh <- j
		}
		close(jobCh)
	}()

	var all []matrixCell
	for c := range results {
		all = append(all, c)
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].Room != all[j].Room {
			return all[i].Room < all[j].Room
		}
		return all[i].Solution < all[j].Solution
	})
	return all
}

func verifyPair(j matrixJob, maxSteps int) matrixCell {
	cell := matrixCell{Room: j.room, Solution: j.solution}
	g, err := core.Challenges()[j.room].Build(nil)
	if err != nil {
		cell.Err = err.Error()
		return cell
	}
	set, err := solutions.Load(j.solution)
	if err != nil {
		cell.Err = err.Error()
		return cell
	}
	res := sim.VerifyAllPositions(g, set, maxSteps)
	cell.Success = res.Success
	cell.Tested = res.Tested
	cell.Passed = res.Passed
	cell.MaxSteps = res.MaxStepsUsed
	cell.AvgSteps = res.AvgSteps
	return cell
}
