package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"picobot/internal/core"
	pcore "picobot/pkg/core"
	"picobot/pkg/grid"
	"picobot/pkg/sim"
)

type runOutput struct {
	RunID  string            `json:"run_id"`
	Room   string            `json:"room"`
	Rules  string            `json:"rules"`
	Start  grid.Cell         `json:"start"`
	Result map[string]string `json:"result"`
	Trace  []string          `json:"trace,omitempty"`
	Board  string            `json:"board,omitempty"`
}

func newRunCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a rule program once from one start cell",
		Example: `  picobot run --room maze
  picobot run --room empty --room-opt h=9,w=9 --rules builtin:empty-initial --start 3,4
  picobot run --room maze --rules my.txt --seed 7 --trace`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			roomName, _ := cmd.Flags().GetString("room")
			roomOpts, _ := cmd.Flags().GetString("room-opt")
			ref, _ := cmd.Flags().GetString("rules")
			startFlag, _ := cmd.Flags().GetString("start")
			showTrace, _ := cmd.Flags().GetBool("trace")
			showBoard, _ := cmd.Flags().GetBool("show")

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
			e.log.Info("run finished",
				"room", roomName, "rules", source, "start", start.String(),
				"steps", res.StepsTaken, "coverage", res.Coverage, "halted", res.Halted)

			out := cmd.OutOrStdout()
			if e.jsonOut {
				o := runOutput{
					RunID:  e.runID,
					Room:   roomName,
					Rules:  source,
					Start:  start,
					Result: core.RunSnapshot(res).Map(),
				}
				if showTrace {
					o.Trace = formatTrace(a.Trace())
				}
				if showBoard {
					pos := a.Position()
					o.Board = g.Render(a.Visited(), &pos)
				}
				return writeJSON(out, o)
			}

			if showTrace {
				for _, line := range formatTrace(a.Trace()) {
					fmt.Fprintln(out, line)
				}
				fmt.Fprintln(out)
			}
			fmt.Fprintf(out, "room %s, rules %s, start %s\n\n", roomName, source, start)
			if err := core.RunSnapshot(res).WriteText(out); err != nil {
				return err
			}
			if showBoard {
				pos := a.Position()
				fmt.Fprintf(out, "\n%s\n", g.Render(a.Visited(), &pos))
			}
			return nil
		},
	}
	addRoomFlags(cmd)
	cmd.Flags().String("start", "", "Start cell as row,col (default: first open cell)")
	cmd.Flags().Int64("seed", 0, "Pick a random open start cell with this seed")
	cmd.Flags().Int("max-steps", 0, "Step budget (default from config)")
	cmd.Flags().Bool("trace", false, "Print every step")
	cmd.Flags().Bool("show", false, "Print the board after the run")
	cmd.MarkFlagsMutuallyExclusive("start", "seed")
	return cmd
}

func addRoomFlags(cmd *cobra.Command) {
	cmd.Flags().String("room", "empty", "Registered room name or room file")
	cmd.Flags().String("room-opt", "", "Room parameters as key=value,key=value")
	cmd.Flags().String("rules", "", "Rule file or builtin:NAME (default: the room's bundled solution)")
}

func chooseStart(cmd *cobra.Command, g *grid.Grid, startFlag string) (grid.Cell, error) {
	if startFlag != "" {
		return parseCell(startFlag)
	}
	if cmd.Flags().Changed("seed") {
		seed, _ := cmd.Flags().GetInt64("seed")
		c, ok := pcore.NewRNG(seed).Pick(g.OpenCells())
		if !ok {
			return grid.Cell{}, &sim.IllegalStartError{NoOpen: true}
		}
		return c, nil
	}
	cells := g.OpenCells()
	if len(cells) == 0 {
		return grid.Cell{}, &sim.IllegalStartError{NoOpen: true}
	}
	return cells[0], nil
}

func formatTrace(trace []sim.TraceRecord) []string {
	lines := make([]string, 0, len(trace))
	for _, rec := range trace {
		rule := "-"
		if rec.Rule != nil {
			rule = rec.Rule.String()
		}
		lines = append(lines, fmt.Sprintf("%5d  %s state %d sees %s  [%s]  -> %s state %d  %s",
			rec.Step+1, rec.From, rec.State, rec.Surroundings, rule, rec.To, rec.NewState, rec.Outcome))
	}
	return lines
}
