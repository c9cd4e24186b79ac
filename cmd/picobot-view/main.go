//go:build ebiten

package main

import (
	"errors"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/pflag"

	"picobot/internal/app"
	"picobot/internal/logging"
	"picobot/internal/ui"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(pflag.CommandLine)
	level := pflag.String("log-level", "info", "log level (debug, info, warn, error)")
	pflag.Parse()

	log := logging.NewLogger(*level, "text", os.Stderr)

	replay, err := app.Prepare(cfg)
	if err != nil {
		log.Error("preparing run", "error", err)
		os.Exit(1)
	}
	log.Info("run recorded",
		"room", replay.Room, "rules", replay.Rules, "start", replay.Start.String(),
		"steps", replay.Result.StepsTaken, "coverage", replay.Result.Coverage)

	game := app.New(replay, cfg.Scale, cfg.TPS)
	size := replay.Size()

	ebiten.SetWindowTitle(replay.Title())
	ebiten.SetWindowSize(size.W*cfg.Scale+ui.PanelWidth, size.H*cfg.Scale)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Error("viewer stopped", "error", err)
		os.Exit(1)
	}
}
