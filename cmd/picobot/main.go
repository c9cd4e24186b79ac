package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "0.1.0-dev"

// errVerifyFailed marks a verification that ran to completion but found a
// start cell without full coverage.
var errVerifyFailed = errors.New("verification failed")

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		if errors.Is(err, errVerifyFailed) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	e := &env{}
	rootCmd := &cobra.Command{
		Use:   "picobot",
		Short: "Picobot rule simulator and verifier",
		Long: `picobot runs rule programs for a robot that only senses its four
neighbours, and verifies that a program covers a room from every start cell.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return e.setup(cmd)
		},
	}

	rootCmd.PersistentFlags().String("config", "", "YAML config file")
	rootCmd.PersistentFlags().String("log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().Bool("json", false, "Output as JSON")

	rootCmd.AddCommand(
		newVersionCmd(),
		newRunCmd(e),
		newVerifyCmd(e),
		newRulesCmd(e),
		newRoomsCmd(e),
		newAnimateCmd(e),
		newWatchCmd(e),
		newMatrixCmd(e),
	)
	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")
			if jsonOut {
				return writeJSON(cmd.OutOrStdout(), map[string]string{"version": version})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "picobot version %s\n", version)
			return nil
		},
	}
}
