package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"picobot/internal/render"
	"picobot/pkg/sim"
)

func newAnimateCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "animate",
		Short: "Render a run as an animated GIF",
		Example: `  picobot animate --room maze --out maze.gif
  picobot animate --room empty --rules builtin:empty-initial --start 5,7 --every 4 --out empty.gif`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			roomName, _ := cmd.Flags().GetString("room")
			roomOpts, _ := cmd.Flags().GetString("room-opt")
			ref, _ := cmd.Flags().GetString("rules")
			startFlag, _ := cmd.Flags().GetString("start")
			outPath, _ := cmd.Flags().GetString("out")
			noCaption, _ := cmd.Flags().GetBool("no-caption")

			opts := render.DefaultGIFOptions()
			opts.Scale = e.cfg.Animate.Scale
			opts.Delay = e.cfg.Animate.Delay
			opts.Every = e.cfg.Animate.Every
			opts.Loop = e.cfg.Animate.Loop
			opts.Caption = !noCaption
			if cmd.Flags().Changed("scale") {
				opts.Scale, _ = cmd.Flags().GetInt("scale")
			}
			if cmd.Flags().Changed("delay") {
				opts.Delay, _ = cmd.Flags().GetInt("delay")
			}
			if cmd.Flags().Changed("every") {
				opts.Every, _ = cmd.Flags().GetInt("every")
			}
			maxSteps := e.cfg.Sim.MaxSteps
			if cmd.Flags().Changed("max-steps") {
				maxSteps, _ = cmd.Flags().GetInt("max-steps")
			}

			g, challenge, err := resolveRoom(roomName, roomOpts)
			if err != nil {
				return err
			}
			set, source, err := resolveRules(ref, challenge)
			if err != nil {
				return err
			}
			start, err := chooseStart(cmd, g, startFlag)
			if err != nil {
				return err
			}
			a, err := sim.NewAgent(g, &start)
			if err != nil {
				return err
			}
			res := sim.Run(a, g, set, maxSteps, e.cfg.Sim.StopOnFullCoverage)
			frames := render.Replay(g, start, a.Trace())

			f, err := os.Create(outPath)
			if err != nil {
				return fmt.Errorf("creating %s: %w", outPath, err)
			}
			bw := bufio.NewWriter(f)
			if err := render.WriteGIF(bw, g.Width(), g.Height(), frames, opts); err != nil {
				f.Close()
				return fmt.Errorf("encoding %s: %w", outPath, err)
			}
			if err := bw.Flush(); err != nil {
				f.Close()
				return fmt.Errorf("writing %s: %w", outPath, err)
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("closing %s: %w", outPath, err)
			}

			e.log.Info("animation written",
				"path", outPath, "room", roomName, "rules", source,
				"frames", len(frames), "steps", res.StepsTaken, "coverage", res.Coverage)
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s: %d steps, %.1f%% coverage\n", outPath, res.StepsTaken, res.CoveragePercent())
			return nil
		},
	}
	addRoomFlags(cmd)
	cmd.Flags().String("start", "", "Start cell as row,col (default: first open cell)")
	cmd.Flags().Int64("seed", 0, "Pick a random open start cell with this seed")
	cmd.Flags().Int("max-steps", 0, "Step budget (default from config)")
	cmd.Flags().String("out", "picobot.gif", "Output GIF path")
	cmd.Flags().Int("scale", 0, "Pixels per cell (default from config)")
	cmd.Flags().Int("delay", 0, "Frame delay in 1/100 s (default from config)")
	cmd.Flags().Int("every", 0, "Keep every n-th step (default from config)")
	cmd.Flags().Bool("no-caption", false, "Omit the status line")
	cmd.MarkFlagsMutuallyExclusive("start", "seed")
	return cmd
}
