// Package config provides YAML-based game configuration loading and
// difficulty presets for the blocks games.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/tui-blocks/internal/core"
)

// Validation errors returned by BlocksConfig.Validate.
var (
	ErrInvalidArena    = errors.New("config: arena must be at least 4x4")
	ErrInvalidInterval = errors.New("config: drop interval must be positive")
	ErrInvalidPoints   = errors.New("config: line points must be positive")
	ErrEmptyPalette    = errors.New("config: palette needs 7 piece colors")
	ErrUnknownColor    = errors.New("config: unknown color")
)

// PieceColors is the number of palette entries a config must provide,
// one per piece kind.
const PieceColors = 7

// BlocksConfig contains all configuration for a blocks game.
type BlocksConfig struct {
	Arena      BlocksArena      `yaml:"arena"`
	Timing     BlocksTiming     `yaml:"timing"`
	Scoring    BlocksScoring    `yaml:"scoring"`
	Palette    BlocksPalette    `yaml:"palette"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// BlocksArena defines the board size.
type BlocksArena struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// BlocksTiming defines the automatic drop timer.
type BlocksTiming struct {
	DropIntervalMS int `yaml:"drop_interval_ms"`
}

// BlocksScoring defines line-clear awards.
type BlocksScoring struct {
	LinePoints int `yaml:"line_points"` // Award for the first row of a sweep; doubles per extra row
}

// BlocksPalette names the colors used to draw pieces.
type BlocksPalette struct {
	Pieces []string `yaml:"pieces"` // Indexed by cell value 1..7
	Shadow string   `yaml:"shadow"`
}

// DropInterval returns the configured drop interval as a duration.
func (c BlocksConfig) DropInterval() time.Duration {
	return time.Duration(c.Timing.DropIntervalMS) * time.Millisecond
}

// Validate checks that the config describes a playable game.
func (c BlocksConfig) Validate() error {
	if c.Arena.Width < 4 || c.Arena.Height < 4 {
		return fmt.Errorf("%w: got %dx%d", ErrInvalidArena, c.Arena.Width, c.Arena.Height)
	}
	if c.Timing.DropIntervalMS <= 0 {
		return fmt.Errorf("%w: got %dms", ErrInvalidInterval, c.Timing.DropIntervalMS)
	}
	if c.Scoring.LinePoints <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidPoints, c.Scoring.LinePoints)
	}
	if len(c.Palette.Pieces) < PieceColors {
		return fmt.Errorf("%w: got %d", ErrEmptyPalette, len(c.Palette.Pieces))
	}
	if _, err := c.Colors(); err != nil {
		return err
	}
	return nil
}

// Colors resolves the palette names. The returned slice is indexed by cell
// value, so entry 0 is unused and entry 8 is the shadow color.
func (c BlocksConfig) Colors() ([]core.Color, error) {
	out := make([]core.Color, PieceColors+2)
	for i := 0; i < PieceColors && i < len(c.Palette.Pieces); i++ {
		col, ok := core.ParseColor(c.Palette.Pieces[i])
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownColor, c.Palette.Pieces[i])
		}
		out[i+1] = col
	}
	shadow := core.ColorGray
	if c.Palette.Shadow != "" {
		col, ok := core.ParseColor(c.Palette.Shadow)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownColor, c.Palette.Shadow)
		}
		shadow = col
	}
	out[PieceColors+1] = shadow
	return out, nil
}

// DifficultyConfig defines how a preset scales the drop speed.
// The level is fixed when a session starts.
type DifficultyConfig struct {
	Enabled      bool          `yaml:"enabled"`
	InitialLevel float64       `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Scaling      ScalingConfig `yaml:"scaling"`
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // Speed added at level 1.0 (1.0 = twice as fast)
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset maps a CLI name to a preset. Unknown names return "" (use the
// config's own difficulty section).
func ParsePreset(name string) DifficultyPreset {
	switch DifficultyPreset(name) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return DifficultyPreset(name)
	default:
		return ""
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables speed scaling.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
