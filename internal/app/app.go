//go:build ebiten

package app

import (
	"picobot/internal/render"
	"picobot/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Game adapts a recorded run to the ebiten.Game interface.
type Game struct {
	replay   *Replay
	playback *Playback
	painter  *render.GridPainter
	hud      *ui.HUD
	scale    int
}

// New constructs a Game that plays r.
func New(r *Replay, scale, tps int) *Game {
	if scale <= 0 {
		scale = 1
	}
	size := r.Size()
	return &Game{
		replay:   r,
		playback: NewPlayback(r.Frames, tps),
		painter:  render.NewGridPainter(size.W, size.H, render.DefaultPalette),
		hud:      ui.NewHUD(ui.PanelWidth),
		scale:    scale,
	}
}

// Update handles input and advances playback.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.playback.TogglePause()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.playback.StepOnce()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.playback.Restart()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEqual) || inpututil.IsKeyJustPressed(ebiten.KeyNumpadAdd) {
		g.playback.Faster()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyMinus) || inpututil.IsKeyJustPressed(ebiten.KeyNumpadSubtract) {
		g.playback.Slower()
	}
	g.playback.Tick()
	return nil
}

// Draw renders the board and the HUD panel.
func (g *Game) Draw(screen *ebiten.Image) {
	g.painter.Blit(screen, g.playback.Current().Cells, g.scale)
	size := g.replay.Size()
	g.hud.Draw(screen, size.W*g.scale, size.H*g.scale, g.playback.Snapshot())
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	s := g.replay.Size()
	return s.W*g.scale + ui.PanelWidth, s.H * g.scale
}
