package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"picobot/internal/config"
	"picobot/internal/core"
	"picobot/internal/logging"
	"picobot/internal/rooms"
	"picobot/internal/solutions"
	"picobot/pkg/grid"
	"picobot/pkg/rules"
)

// env carries what every subcommand needs once flags are parsed.
type env struct {
	cfg     *config.Config
	log     *slog.Logger
	runID   string
	jsonOut bool
}

func (e *env) setup(cmd *cobra.Command) error {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
		cfg.Logging.Level = lvl
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	e.cfg = cfg
	e.jsonOut, _ = cmd.Flags().GetBool("json")
	e.log, e.runID = logging.WithRunID(logging.NewLogger(cfg.Logging.Level, cfg.Logging.Format, cmd.ErrOrStderr()))
	return nil
}

func resolveRoom(name, opts string) (*grid.Grid, core.Challenge, error) {
	params, err := rooms.ParseParams(opts)
	if err != nil {
		return nil, core.Challenge{}, err
	}
	return rooms.Resolve(name, params)
}

func resolveRules(ref string, c core.Challenge) (rules.Set, string, error) {
	if ref == "" && c.Solution == "" {
		return nil, "", fmt.Errorf("room %s has no bundled solution; pass --rules", c.Name)
	}
	return solutions.Resolve(ref, c.Solution)
}

// parseCell reads "row,col".
func parseCell(s string) (grid.Cell, error) {
	r, c, ok := strings.Cut(s, ",")
	if !ok {
		return grid.Cell{}, fmt.Errorf("cell %q: want row,col", s)
	}
	row, err := strconv.Atoi(strings.TrimSpace(r))
	if err != nil {
		return grid.Cell{}, fmt.Errorf("cell %q: %w", s, err)
	}
	col, err := strconv.Atoi(strings.TrimSpace(c))
	if err != nil {
		return grid.Cell{}, fmt.Errorf("cell %q: %w", s, err)
	}
	return grid.Cell{Row: row, Col: col}, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
