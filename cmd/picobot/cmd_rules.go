package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"picobot/internal/core"
	"picobot/internal/solutions"
	"picobot/pkg/rules"
)

func newRulesCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Inspect rule programs",
	}
	cmd.AddCommand(
		newRulesFmtCmd(e),
		newRulesLintCmd(e),
		newRulesListCmd(e),
	)
	return cmd
}

func newRulesFmtCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fmt FILE",
		Short: "Print rules in canonical form, dropping comments",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			write, _ := cmd.Flags().GetBool("write")
			set, _, err := resolveRules(args[0], core.Challenge{})
			if err != nil {
				return err
			}
			formatted := set.Format()
			if !write {
				fmt.Fprint(cmd.OutOrStdout(), formatted)
				return nil
			}
			if err := os.WriteFile(args[0], []byte(formatted), 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", args[0], err)
			}
			e.log.Info("formatted rules", "path", args[0], "rules", len(set))
			return nil
		},
	}
	cmd.Flags().BoolP("write", "w", false, "Rewrite FILE in place")
	return cmd
}

type lintOutput struct {
	Rules    int            `json:"rules"`
	States   int            `json:"states"`
	Findings []findingEntry `json:"findings"`
}

type findingEntry struct {
	Kind    string `json:"kind"`
	Line    int    `json:"line,omitempty"`
	Message string `json:"message"`
}

func newRulesLintCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "lint FILE",
		Short: "Report rules that can never fire or are bound to halt",
		Long: `lint parses FILE (or builtin:NAME) and reports advisory findings.
Findings never make the command fail; a parse error does.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			set, _, err := resolveRules(args[0], core.Challenge{})
			if err != nil {
				return err
			}
			findings := rules.Lint(set)
			e.log.Debug("linted rules", "path", args[0], "findings", len(findings))

			out := cmd.OutOrStdout()
			if e.jsonOut {
				o := lintOutput{Rules: len(set), States: set.CountStates(), Findings: []findingEntry{}}
				for _, f := range findings {
					o.Findings = append(o.Findings, findingEntry{Kind: string(f.Kind), Line: f.Line, Message: f.Message})
				}
				return writeJSON(out, o)
			}
			fmt.Fprintf(out, "%d rules, %d states\n", len(set), set.CountStates())
			if len(findings) == 0 {
				fmt.Fprintln(out, "no findings")
				return nil
			}
			for _, f := range findings {
				fmt.Fprintln(out, f.String())
			}
			return nil
		},
	}
}

func newRulesListCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List bundled rule programs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			type entry struct {
				Name   string `json:"name"`
				Rules  int    `json:"rules"`
				States int    `json:"states"`
			}
			var entries []entry
			for _, name := range solutions.Names() {
				set, err := solutions.Load(name)
				if err != nil {
					return fmt.Errorf("bundled program %s: %w", name, err)
				}
				entries = append(entries, entry{Name: name, Rules: len(set), States: set.CountStates()})
			}
			out := cmd.OutOrStdout()
			if e.jsonOut {
				return writeJSON(out, entries)
			}
			for _, en := range entries {
				fmt.Fprintf(out, "%s%-18s %2d rules, %d states\n", solutions.BuiltinPrefix, en.Name, en.Rules, en.States)
			}
			return nil
		},
	}
}
