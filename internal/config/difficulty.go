package config

import (
	"math"
	"time"
)

// DifficultyManager derives game parameters from a difficulty level.
type DifficultyManager struct {
	cfg          DifficultyConfig
	initialLevel float64
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:          cfg,
		initialLevel: clampF(cfg.InitialLevel, 0.0, 1.0),
	}
}

// SetInitialLevel overrides the initial difficulty level (0.0 to 1.0).
func (d *DifficultyManager) SetInitialLevel(level float64) {
	d.initialLevel = clampF(level, 0.0, 1.0)
}

// SetEnabled enables or disables difficulty scaling.
func (d *DifficultyManager) SetEnabled(enabled bool) {
	d.cfg.Enabled = enabled
}

// ApplyPreset switches scaling on at the preset's level, or off for the
// fixed preset. An empty preset keeps the configured values.
func (d *DifficultyManager) ApplyPreset(preset DifficultyPreset) {
	if preset == "" {
		return
	}
	if IsFixedPreset(preset) {
		d.SetEnabled(false)
		return
	}
	d.SetEnabled(true)
	d.SetInitialLevel(InitialLevelForPreset(preset))
}

// IsEnabled returns whether difficulty scaling is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled
}

// Level returns the difficulty level (0.0 to 1.0). Disabled managers report 0.
func (d *DifficultyManager) Level() float64 {
	if !d.cfg.Enabled {
		return 0
	}
	return d.initialLevel
}

// Speed returns the speed multiplier for the current level.
func (d *DifficultyManager) Speed() float64 {
	return 1.0 + d.Level()*math.Max(0, d.cfg.Scaling.SpeedMultiplier)
}

// DropInterval scales a base drop interval by the current speed.
// The result never drops below one millisecond.
func (d *DifficultyManager) DropInterval(base time.Duration) time.Duration {
	scaled := time.Duration(float64(base) / d.Speed())
	if scaled < time.Millisecond {
		scaled = time.Millisecond
	}
	return scaled
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
