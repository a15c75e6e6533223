package config

import (
	"math"
	"time"
)

// DifficultyManager calculates the live-play scroll pace from distance or time.
type DifficultyManager struct {
	cfg          DifficultyConfig
	initialLevel float64
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:          cfg,
		initialLevel: cfg.InitialLevel,
	}
}

// SetInitialLevel overrides the initial difficulty level (0.0 to 1.0).
func (d *DifficultyManager) SetInitialLevel(level float64) {
	d.initialLevel = clampF(level, 0.0, 1.0)
}

// SetEnabled enables or disables difficulty progression.
func (d *DifficultyManager) SetEnabled(enabled bool) {
	d.cfg.Enabled = enabled
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != "none"
}

// Level returns the current difficulty level (0.0 to 1.0) based on distance/ticks.
// A disabled manager always reports level 0, so the pace stays at its base.
func (d *DifficultyManager) Level(distance int, ticks int) float64 {
	if !d.cfg.Enabled {
		return 0
	}
	if d.cfg.Progression.Type == "none" {
		return d.initialLevel
	}

	var progress float64
	maxAt := float64(d.cfg.Progression.MaxAt)
	if maxAt <= 0 {
		maxAt = 1 // Prevent division by zero
	}

	switch d.cfg.Progression.Type {
	case "distance":
		progress = float64(distance) / maxAt
	case "time":
		progress = float64(ticks) / maxAt
	default:
		return d.initialLevel
	}

	progress = clampF(progress, 0.0, 1.0)

	// Interpolate from initial level to 1.0
	return d.initialLevel + progress*(1.0-d.initialLevel)
}

// Speed returns the scroll speed multiplier for the current level.
// It grows from 1 to 1 + speed_multiplier.
func (d *DifficultyManager) Speed(distance int, ticks int) float64 {
	level := d.Level(distance, ticks)
	return 1.0 + level*d.cfg.Scaling.SpeedMultiplier
}

// ScrollDelay shortens base by the current speed multiplier.
func (d *DifficultyManager) ScrollDelay(base time.Duration, distance int, ticks int) time.Duration {
	speed := d.Speed(distance, ticks)
	if speed <= 0 {
		return base
	}
	return time.Duration(float64(base) / speed)
}

// BaseScrollDelay returns the configured scroll delay, never below one millisecond.
func (c PlayConfig) BaseScrollDelay() time.Duration {
	if c.ScrollDelayMs < 1 {
		return time.Millisecond
	}
	return time.Duration(c.ScrollDelayMs) * time.Millisecond
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
