package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Window  WindowConfig  `toml:"window" yaml:"window"`
	World   WorldConfig   `toml:"world" yaml:"world"`
	Logging LoggingConfig `toml:"logging" yaml:"logging"`
	Stress  StressConfig  `toml:"stress" yaml:"stress"`
}

type WindowConfig struct {
	Width  int    `toml:"width" yaml:"width"`
	Height int    `toml:"height" yaml:"height"`
	Title  string `toml:"title" yaml:"title"`
}

type WorldConfig struct {
	CellSize     int     `toml:"cell_size" yaml:"cell_size"`     // pixels per grid cell of local systems
	Gravity      float64 `toml:"gravity" yaml:"gravity"`         // pixels per second squared
	Restitution  float64 `toml:"restitution" yaml:"restitution"` // speed kept after a bounce (0.0-1.0)
	InitialBalls int     `toml:"initial_balls" yaml:"initial_balls"`
	MaxBalls     int     `toml:"max_balls" yaml:"max_balls"`
	BallRadius   float64 `toml:"ball_radius" yaml:"ball_radius"`
}

type LoggingConfig struct {
	Level  string `toml:"level" yaml:"level"`
	Format string `toml:"format" yaml:"format"` // "console" or "json"
}

type StressConfig struct {
	Entities       int   `toml:"entities" yaml:"entities"`
	ComponentTypes int   `toml:"component_types" yaml:"component_types"`
	Systems        int   `toml:"systems" yaml:"systems"`
	Churn          int   `toml:"churn" yaml:"churn"`   // entities retired and created per frame
	Frames         int   `toml:"frames" yaml:"frames"` // update cap, 0 runs until the duration elapses
	Seed           int64 `toml:"seed" yaml:"seed"`
}

// Load reads a TOML or YAML file, chosen by extension, on top of the
// defaults. An empty path returns the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		err = toml.Unmarshal(data, cfg)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, cfg)
	default:
		return nil, fmt.Errorf("config %s: unsupported format %q", path, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Width:  800,
			Height: 600,
			Title:  "libes balls",
		},
		World: WorldConfig{
			CellSize:     100,
			Gravity:      400,
			Restitution:  0.8,
			InitialBalls: 20,
			MaxBalls:     500,
			BallRadius:   8,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Stress: StressConfig{
			Entities:       10000,
			ComponentTypes: 8,
			Systems:        16,
			Churn:          100,
			Frames:         0,
			Seed:           1,
		},
	}
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window: size %dx%d must be positive", c.Window.Width, c.Window.Height))
	}
	if c.World.CellSize <= 0 {
		errs = append(errs, fmt.Errorf("world: cell_size %d must be positive", c.World.CellSize))
	}
	if c.World.Restitution < 0 || c.World.Restitution > 1 {
		errs = append(errs, fmt.Errorf("world: restitution %g must be within [0, 1]", c.World.Restitution))
	}
	if c.World.MaxBalls < c.World.InitialBalls {
		errs = append(errs, fmt.Errorf("world: max_balls %d is below initial_balls %d", c.World.MaxBalls, c.World.InitialBalls))
	}
	if c.Stress.ComponentTypes <= 0 {
		errs = append(errs, fmt.Errorf("stress: component_types %d must be positive", c.Stress.ComponentTypes))
	}
	if c.Stress.Entities < 0 || c.Stress.Systems < 0 || c.Stress.Churn < 0 || c.Stress.Frames < 0 {
		errs = append(errs, errors.New("stress: counts must not be negative"))
	}
	return errors.Join(errs...)
}
