package app

import (
	"strconv"

	"picobot/internal/core"
	"picobot/internal/render"
)

// Playback speed bounds in steps per second.
const (
	MinTPS = 1
	MaxTPS = 960
)

// Playback walks a recorded frame list. It holds no ebiten state so the
// controls can be exercised headless.
type Playback struct {
	frames   []render.Frame
	idx      int
	paused   bool
	stepOnce bool
	timer    *core.FixedStep
}

// NewPlayback starts at the first frame, playing at tps.
func NewPlayback(frames []render.Frame, tps int) *Playback {
	return &Playback{frames: frames, timer: core.NewFixedStep(clampTPS(tps))}
}

// Tick advances one frame when the timer says so, or when a single step was
// requested while paused.
func (p *Playback) Tick() { p.update(p.timer.ShouldStep()) }

func (p *Playback) update(due bool) {
	switch {
	case p.stepOnce:
		p.stepOnce = false
		p.advance()
	case !p.paused && due:
		p.advance()
	}
}

func (p *Playback) advance() {
	if p.idx < len(p.frames)-1 {
		p.idx++
	}
}

// TogglePause flips between playing and paused.
func (p *Playback) TogglePause() { p.paused = !p.paused }

// Paused reports whether playback is paused.
func (p *Playback) Paused() bool { return p.paused }

// StepOnce queues a single frame advance for the next tick.
func (p *Playback) StepOnce() { p.stepOnce = true }

// Restart jumps back to the start frame.
func (p *Playback) Restart() {
	p.idx = 0
	p.stepOnce = false
}

// Faster doubles the playback rate.
func (p *Playback) Faster() { p.timer.SetTPS(clampTPS(p.timer.TPS() * 2)) }

// Slower halves the playback rate.
func (p *Playback) Slower() { p.timer.SetTPS(clampTPS(p.timer.TPS() / 2)) }

// TPS is the current playback rate.
func (p *Playback) TPS() int { return p.timer.TPS() }

// Index is the position of the current frame.
func (p *Playback) Index() int { return p.idx }

// Done reports whether the last frame is showing.
func (p *Playback) Done() bool { return p.idx >= len(p.frames)-1 }

// Current returns the frame on screen.
func (p *Playback) Current() render.Frame {
	if len(p.frames) == 0 {
		return render.Frame{}
	}
	return p.frames[p.idx]
}

// Snapshot describes the current frame and playback state for the HUD.
func (p *Playback) Snapshot() core.Snapshot {
	f := p.Current()
	snap := core.StepSnapshot(f.Step, f.State, f.Rule, f.Coverage)
	status := "playing"
	switch {
	case p.Done() && f.Outcome.Halted():
		status = f.Outcome.String()
	case p.Done():
		status = "finished"
	case p.paused:
		status = "paused"
	}
	snap.Groups = append(snap.Groups, core.Group{
		Name: "Playback",
		Entries: []core.Entry{
			{Key: "status", Label: "Status", Value: status},
			{Key: "speed", Label: "Speed", Value: strconv.Itoa(p.TPS()) + "/s"},
			{Key: "frame", Label: "Frame", Value: strconv.Itoa(p.idx+1) + "/" + strconv.Itoa(len(p.frames))},
		},
	})
	return snap
}

func clampTPS(tps int) int {
	if tps < MinTPS {
		return MinTPS
	}
	if tps > MaxTPS {
		return MaxTPS
	}
	return tps
}
