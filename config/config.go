// Package config loads the game settings from YAML, .env and JIGSAW_* variables
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/Avelinimus/PuzzleTemplate/core"
	"github.com/Avelinimus/PuzzleTemplate/parameter"
	"github.com/Avelinimus/PuzzleTemplate/partition"
)

// Environment variable names
const (
	EnvRows      = "JIGSAW_ROWS"
	EnvColumns   = "JIGSAW_COLUMNS"
	EnvJointSize = "JIGSAW_JOINT_SIZE"
	EnvJoint     = "JIGSAW_JOINT"
	EnvSeed      = "JIGSAW_SEED"
	EnvImage     = "JIGSAW_IMAGE"
	EnvDarken    = "JIGSAW_DARKEN"
)

// Config is the full setup surface of the game
type Config struct {
	// Image is the source picture; empty draws a generated pattern of Width x Height
	Image  string `yaml:"image"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`

	Rows      int            `yaml:"rows"`
	Columns   int            `yaml:"columns"`
	JointSize int            `yaml:"joint_size"`
	Joint     core.JointType `yaml:"joint"`
	Seed      uint64         `yaml:"seed"` // 0 picks a seed from the clock

	BackgroundDarken float64 `yaml:"background_darken"`
	DragSpeed        float64 `yaml:"drag_speed"`
	Sound            bool    `yaml:"sound"`

	Gesture Gesture           `yaml:"gesture"`
	Keys    map[string]string `yaml:"keys"` // action -> key overrides
}

// Gesture holds the group-drag thresholds
type Gesture struct {
	TimeToDragGroup     time.Duration `yaml:"time_to_drag_group"`
	DistanceToDragGroup float64       `yaml:"distance_to_drag_group"`
	SettleTicks         int           `yaml:"settle_ticks"`
}

// Default returns the built-in settings
func Default() *Config {
	return &Config{
		Width:            parameter.DefaultPatternWidth,
		Height:           parameter.DefaultPatternHeight,
		Rows:             parameter.DefaultRows,
		Columns:          parameter.DefaultColumns,
		JointSize:        parameter.DefaultJointSize,
		Joint:            core.JointCircle,
		BackgroundDarken: parameter.DefaultBackgroundDarken,
		DragSpeed:        parameter.DefaultDragSpeed,
		Sound:            true,
		Gesture: Gesture{
			TimeToDragGroup:     parameter.TimeToDragGroup,
			DistanceToDragGroup: parameter.DistanceToDragGroup,
			SettleTicks:         parameter.SettleTicks,
		},
	}
}

// Load reads path over the defaults, then applies environment overrides
// A missing file is not an error
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}

	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadDotEnv loads .env files into the process environment
// Missing files are skipped; existing variables are kept
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", p, err)
		}
	}
	return nil
}

// ApplyEnv overrides fields from JIGSAW_* variables found through lookup
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	ints := []struct {
		key string
		dst *int
	}{
		{EnvRows, &c.Rows},
		{EnvColumns, &c.Columns},
		{EnvJointSize, &c.JointSize},
	}
	for _, e := range ints {
		v, ok := lookup(e.key)
		if !ok || v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", e.key, err)
		}
		*e.dst = n
	}

	if v, ok := lookup(EnvSeed); ok && v != "" {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvSeed, err)
		}
		c.Seed = n
	}
	if v, ok := lookup(EnvJoint); ok && v != "" {
		j, err := core.ParseJointType(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvJoint, err)
		}
		c.Joint = j
	}
	if v, ok := lookup(EnvDarken); ok && v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvDarken, err)
		}
		c.BackgroundDarken = f
	}
	if v, ok := lookup(EnvImage); ok && v != "" {
		c.Image = v
	}
	return nil
}

// Validate checks everything that does not depend on the picture size
func (c *Config) Validate() error {
	switch {
	case c.Rows <= 0:
		return &partition.ConfigError{Field: "rows", Reason: fmt.Sprintf("must be positive, got %d", c.Rows)}
	case c.Columns <= 0:
		return &partition.ConfigError{Field: "columns", Reason: fmt.Sprintf("must be positive, got %d", c.Columns)}
	case c.JointSize < 0:
		return &partition.ConfigError{Field: "joint_size", Reason: "must not be negative"}
	case c.BackgroundDarken < 0 || c.BackgroundDarken > 1:
		return &partition.ConfigError{Field: "background_darken", Reason: "must be within [0,1]"}
	case c.DragSpeed < 0:
		return &partition.ConfigError{Field: "drag_speed", Reason: "must not be negative"}
	case c.Gesture.TimeToDragGroup < 0 || c.Gesture.DistanceToDragGroup < 0 || c.Gesture.SettleTicks < 0:
		return &partition.ConfigError{Field: "gesture", Reason: "thresholds must not be negative"}
	case c.Image == "" && (c.Width <= 0 || c.Height <= 0):
		return &partition.ConfigError{Field: "image", Reason: "pattern size must be positive"}
	}
	return nil
}

// Spec builds the partition spec for a picture of the given size
func (c *Config) Spec(width, height int) partition.Spec {
	return partition.Spec{
		ImageWidth:  width,
		ImageHeight: height,
		Rows:        c.Rows,
		Cols:        c.Columns,
		JointSize:   c.JointSize,
		Joint:       c.Joint,
	}
}

// Marshal renders the effective settings as YAML
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}
