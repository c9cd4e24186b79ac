package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"picobot/internal/core"
	"picobot/internal/rooms"
	"picobot/internal/solutions"
)

type roomEntry struct {
	Name        string  `json:"name"`
	Summary     string  `json:"summary"`
	Solution    string  `json:"solution,omitempty"`
	Height      int     `json:"height"`
	Width       int     `json:"width"`
	Open        int     `json:"open"`
	OpenPercent float64 `json:"open_percent"`
	Maze        *bool   `json:"maze,omitempty"`
}

func newRoomsCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rooms [NAME]",
		Short: "List registered rooms, or print one",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			validate, _ := cmd.Flags().GetBool("validate")
			out := cmd.OutOrStdout()

			if len(args) == 1 {
				roomOpts, _ := cmd.Flags().GetString("room-opt")
				g, _, err := resolveRoom(args[0], roomOpts)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, g.String())
				if validate {
					report := rooms.ValidateMaze(g)
					fmt.Fprintf(out, "\nwall follower complete: %t\n", report.Valid)
					for _, c := range report.IsolatedWalls {
						fmt.Fprintf(out, "  wall %s not connected to the boundary\n", c)
					}
					for _, c := range report.IsolatedCells {
						fmt.Fprintf(out, "  cell %s has no adjacent wall\n", c)
					}
				}
				return nil
			}

			var entries []roomEntry
			for _, name := range core.ChallengeNames() {
				c := core.Challenges()[name]
				g, err := c.Build(nil)
				if err != nil {
					return fmt.Errorf("building room %s: %w", name, err)
				}
				st := rooms.StatsOf(g)
				en := roomEntry{
					Name:        name,
					Summary:     c.Summary,
					Solution:    c.Solution,
					Height:      st.Height,
					Width:       st.Width,
					Open:        st.Open,
					OpenPercent: st.OpenPercent,
				}
				if validate {
					valid := rooms.ValidateMaze(g).Valid
					en.Maze = &valid
				}
				entries = append(entries, en)
			}
			if e.jsonOut {
				return writeJSON(out, entries)
			}
			for _, en := range entries {
				line := fmt.Sprintf("%-12s %2dx%-2d %4d open (%4.1f%%)", en.Name, en.Height, en.Width, en.Open, en.OpenPercent)
				if en.Solution != "" {
					line += "  solution " + solutions.BuiltinPrefix + en.Solution
				}
				if en.Maze != nil {
					line += fmt.Sprintf("  wall-follower complete: %t", *en.Maze)
				}
				fmt.Fprintln(out, line)
				fmt.Fprintf(out, "             %s\n", en.Summary)
			}
			return nil
		},
	}
	cmd.Flags().Bool("validate", false, "Check whether a wall follower is guaranteed to cover each room")
	cmd.Flags().String("room-opt", "", "Room parameters as key=value,key=value")
	return cmd
}
