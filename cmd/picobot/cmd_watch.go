package main

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"picobot/internal/core"
	"picobot/internal/watch"
)

func newWatchCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch FILE",
		Short: "Re-verify a rule file every time it is saved",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			roomName, _ := cmd.Flags().GetString("room")
			roomOpts, _ := cmd.Flags().GetString("room-opt")
			workers := e.cfg.Verify.Workers
			if cmd.Flags().Changed("workers") {
				workers, _ = cmd.Flags().GetInt("workers")
			}

			g, _, err := resolveRoom(roomName, roomOpts)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			check := func(ctx context.Context, path string) {
				set, source, err := resolveRules(path, core.Challenge{})
				if err != nil {
					e.log.Warn("rules did not parse", "path", path, "error", err)
					fmt.Fprintf(out, "%v\n\n", err)
					return
				}
				res, err := verifyParallel(ctx, g, set, e.cfg.Sim.MaxSteps, g.OpenCells(), workers)
				if err != nil {
					e.log.Warn("verification aborted", "path", path, "error", err)
					return
				}
				logVerify(e.log, roomName, source, res)
				if err := writeVerify(out, e, roomName, source, res); err != nil {
					e.log.Warn("writing report", "error", err)
				}
				fmt.Fprintln(out)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			w, err := watch.New(args[0], check, watch.DefaultDebounce, e.log)
			if err != nil {
				return err
			}
			defer w.Close()

			e.log.Info("watching rules", "path", w.Path(), "room", roomName)
			check(ctx, w.Path())
			if err := w.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		},
	}
	cmd.Flags().String("room", "empty", "Registered room name or room file")
	cmd.Flags().String("room-opt", "", "Room parameters as key=value,key=value")
	cmd.Flags().Int("workers", 1, "Goroutines to spread start cells over (default from config)")
	return cmd
}
