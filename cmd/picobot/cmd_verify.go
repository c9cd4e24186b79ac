package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"picobot/internal/core"
	pcore "picobot/pkg/core"
	"picobot/pkg/grid"
	"picobot/pkg/rules"
	"picobot/pkg/sim"
)

// maxListedFailures caps the failures printed in text mode.
const maxListedFailures = 10

type failureOutput struct {
	Start    grid.Cell `json:"start"`
	Steps    int       `json:"steps"`
	Coverage float64   `json:"coverage"`
	Halt     string    `json:"halt,omitempty"`
}

type verifyOutput struct {
	RunID    string            `json:"run_id"`
	Room     string            `json:"room"`
	Rules    string            `json:"rules"`
	Result   map[string]string `json:"result"`
	Failures []failureOutput   `json:"failures,omitempty"`
}

func newVerifyCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Check that a rule program covers the room from every start cell",
		Example: `  picobot verify --room maze
  picobot verify --room empty --rules builtin:empty-initial --workers 4
  picobot verify --room maze --rules my.txt --sample 20 --seed 3`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			roomName, _ := cmd.Flags().GetString("room")
			roomOpts, _ := cmd.Flags().GetString("room-opt")
			ref, _ := cmd.Flags().GetString("rules")
			sample, _ := cmd.Flags().GetInt("sample")
			seed, _ := cmd.Flags().GetInt64("seed")

			maxSteps := e.cfg.Sim.MaxSteps
			if cmd.Flags().Changed("max-steps") {
				maxSteps, _ = cmd.Flags().GetInt("max-steps")
			}
			workers := e.cfg.Verify.Workers
			if cmd.Flags().Changed("workers") {
				workers, _ = cmd.Flags().GetInt("workers")
			}

			g, challenge, err := resolveRoom(roomName, roomOpts)
			if err != nil {
				return err
			}
			set, source, err := resolveRules(ref, challenge)
			if err != nil {
				return err
			}

			starts := g.OpenCells()
			if sample > 0 {
				starts = pcore.NewRNG(seed).Sample(starts, sample)
			}
			res, err := verifyParallel(cmd.Context(), g, set, maxSteps, starts, workers)
			if err != nil {
				return err
			}
			logVerify(e.log, roomName, source, res)

			if err := writeVerify(cmd.OutOrStdout(), e, roomName, source, res); err != nil {
				return err
			}
			if !res.Success {
				return fmt.Errorf("%w: %d of %d start cells fell short of full coverage", errVerifyFailed, len(res.Failures), res.Tested)
			}
			return nil
		},
	}
	addRoomFlags(cmd)
	cmd.Flags().Int("max-steps", 0, "Step budget per start cell (default from config)")
	cmd.Flags().Int("workers", 1, "Goroutines to spread start cells over (default from config)")
	cmd.Flags().Int("sample", 0, "Verify only this many randomly chosen start cells")
	cmd.Flags().Int64("seed", 1, "Seed for --sample")
	return cmd
}

// verifyParallel splits starts into contiguous chunks, one per worker, and
// merges the chunk results in order so failures stay in start order.
func verifyParallel(ctx context.Context, g *grid.Grid, set rules.Set, maxSteps int, starts []grid.Cell, workers int) (sim.VerifyResult, error) {
	if workers < 1 {
		workers = 1
	}
	if workers > len(starts) {
		workers = len(starts)
	}
	if workers <= 1 {
		return sim.VerifyFrom(g, set, maxSteps, starts)
	}

	parts := make([]sim.VerifyResult, workers)
	eg, ctx := errgroup.WithContext(ctx)
	chunk := (len(starts) + workers - 1) / workers
	for i := 0; i < workers; i++ {
		lo := i * chunk
		hi := min(lo+chunk, len(starts))
		if lo >= hi {
			continue
		}
		i, cells := i, starts[lo:hi]
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := sim.VerifyFrom(g, set, maxSteps, cells)
			if err != nil {
				return err
			}
			parts[i] = res
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return sim.VerifyResult{}, err
	}
	return sim.MergeVerify(parts...), nil
}

func logVerify(log *slog.Logger, room, source string, res sim.VerifyResult) {
	log.Info("verification finished",
		"room", room, "rules", source,
		"tested", res.Tested, "passed", res.Passed, "success", res.Success)
	for _, f := range res.Failures {
		log.Debug("start failed",
			"start", f.Start.String(), "steps", f.Result.StepsTaken,
			"coverage", f.Result.Coverage, "halt", f.Result.HaltReason)
	}
}

func writeVerify(out io.Writer, e *env, room, source string, res sim.VerifyResult) error {
	if e.jsonOut {
		o := verifyOutput{
			RunID:  e.runID,
			Room:   room,
			Rules:  source,
			Result: core.VerifySnapshot(res).Map(),
		}
		for _, f := range res.Failures {
			o.Failures = append(o.Failures, failureOutput{
				Start:    f.Start,
				Steps:    f.Result.StepsTaken,
				Coverage: f.Result.Coverage,
				Halt:     f.Result.HaltReason,
			})
		}
		return writeJSON(out, o)
	}

	fmt.Fprintf(out, "room %s, rules %s\n\n", room, source)
	if err := core.VerifySnapshot(res).WriteText(out); err != nil {
		return err
	}
	if len(res.Failures) == 0 {
		return nil
	}
	fmt.Fprintln(out, "\nFailures")
	for i, f := range res.Failures {
		if i == maxListedFailures {
			fmt.Fprintf(out, "  ... and %d more\n", len(res.Failures)-i)
			break
		}
		line := fmt.Sprintf("  %-10s %5.1f%% after %d steps", f.Start, f.Result.CoveragePercent(), f.Result.StepsTaken)
		if f.Result.Halted {
			line += ": " + f.Result.HaltReason
		}
		fmt.Fprintln(out, line)
	}
	return nil
}
