// Package config loads the board configuration from a TOML file.
package config

import (
	"fmt"
	"image/color"

	"github.com/BurntSushi/toml"

	"PaintBoard/internal/render"
	"PaintBoard/internal/state"
)

type Config struct {
	Canvas   Canvas   `toml:"canvas"`
	Defaults Defaults `toml:"defaults"`
	Server   Server   `toml:"server"`
}

type Canvas struct {
	Width      int    `toml:"width"`
	Height     int    `toml:"height"`
	Background string `toml:"background"`
}

// Defaults is the style and tool a new board starts with.
type Defaults struct {
	Tool   string  `toml:"tool"`
	Color  string  `toml:"color"`
	Filled bool    `toml:"filled"`
	Width  float64 `toml:"width"`
	Font   string  `toml:"font"`
}

type Server struct {
	Port int  `toml:"port"`
	MDNS bool `toml:"mdns"`
}

func Default() Config {
	snap := state.DefaultSnapshot()
	return Config{
		Canvas: Canvas{Width: 1024, Height: 768, Background: "#FFFFFF"},
		Defaults: Defaults{
			Tool:   string(state.ToolLineList),
			Color:  snap.Color,
			Filled: snap.Filled,
			Width:  snap.Width,
			Font:   snap.Font,
		},
		Server: Server{Port: 8888, MDNS: true},
	}
}

// Load reads path over the defaults. An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("reading config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("config %s: unknown keys %v", path, undecoded)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.Canvas.Width <= 0 || c.Canvas.Height <= 0 {
		return fmt.Errorf("canvas size %dx%d must be positive", c.Canvas.Width, c.Canvas.Height)
	}
	if !state.IsHexColor(c.Canvas.Background) {
		return fmt.Errorf("canvas background: %w: %q", state.ErrInvalidColor, c.Canvas.Background)
	}
	if _, err := state.ParseTool(c.Defaults.Tool); err != nil {
		return fmt.Errorf("default tool: %w", err)
	}
	if err := c.Snapshot().Validate(); err != nil {
		return fmt.Errorf("defaults: %w", err)
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server port %d out of range", c.Server.Port)
	}
	return nil
}

func (c Config) Snapshot() state.Snapshot {
	return state.Snapshot{
		Color:  c.Defaults.Color,
		Filled: c.Defaults.Filled,
		Width:  c.Defaults.Width,
		Font:   c.Defaults.Font,
	}
}

func (c Config) Tool() state.Tool { return state.Tool(c.Defaults.Tool) }

func (c Config) Background() color.Color {
	return render.ParseColor(c.Canvas.Background)
}

// RenderOptions is the frame policy for this configuration.
func (c Config) RenderOptions() render.Options {
	return render.Options{Background: c.Background()}
}

// NewBoard builds a board with the configured defaults.
func (c Config) NewBoard() *state.Board {
	return state.NewBoard(c.Tool(), state.NewSettings(c.Snapshot()))
}
