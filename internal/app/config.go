package app

import "github.com/spf13/pflag"

// Config represents the command-line parameters for the viewer.
type Config struct {
	Room     string
	RoomOpt  string
	Rules    string
	Start    string
	Seed     int64
	Scale    int
	TPS      int
	MaxSteps int
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{Room: "maze", Scale: 24, TPS: 20, MaxSteps: 10000, Seed: -1}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *pflag.FlagSet) {
	fs.StringVar(&c.Room, "room", c.Room, "registered room name or room file")
	fs.StringVar(&c.RoomOpt, "room-opt", c.RoomOpt, "room parameters as key=value,key=value")
	fs.StringVar(&c.Rules, "rules", c.Rules, "rule file or builtin:NAME (default: the room's bundled solution)")
	fs.StringVar(&c.Start, "start", c.Start, "start cell as row,col (default: first open cell)")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "pick a random open start cell with this seed (negative: off)")
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixels per cell")
	fs.IntVar(&c.TPS, "tps", c.TPS, "playback steps per second")
	fs.IntVar(&c.MaxSteps, "max-steps", c.MaxSteps, "step budget for the run")
}
