// Package config provides YAML-based configuration loading and difficulty
// management for training and live play.
package config

import "fmt"

// Config is the full TextDrive configuration file.
type Config struct {
	Training TrainingConfig `yaml:"training"`
	Play     PlayConfig     `yaml:"play"`
}

// TrainingConfig holds the offline training schedule.
type TrainingConfig struct {
	Episodes    int    `yaml:"episodes"`
	MaxSteps    int    `yaml:"max_steps"`    // Per-episode step cap
	ReportEvery int    `yaml:"report_every"` // Episodes between progress reports
	WindowSize  int    `yaml:"window_size"`  // Rolling average window
	TablePath   string `yaml:"table_path"`
	Seed        int64  `yaml:"seed"` // 0 seeds from the clock
}

// PlayConfig holds live play pacing.
type PlayConfig struct {
	ScrollDelayMs int              `yaml:"scroll_delay_ms"` // Delay between course scrolls
	TickRate      int              `yaml:"tick_rate"`       // UI ticks per second
	Difficulty    DifficultyConfig `yaml:"difficulty"`
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over a game.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "distance", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Distance/ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // Multiplier added to scroll speed at max difficulty
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() Config {
	return Config{
		Training: TrainingConfig{
			Episodes:    50000,
			MaxSteps:    10000,
			ReportEvery: 500,
			WindowSize:  500,
			TablePath:   "qtable.bin",
		},
		Play: PlayConfig{
			ScrollDelayMs: 150,
			TickRate:      60,
			Difficulty: DifficultyConfig{
				Enabled:      false,
				InitialLevel: 0.0,
				Progression: ProgressionConfig{
					Type:  "distance",
					MaxAt: 1000,
				},
				Scaling: ScalingConfig{
					SpeedMultiplier: 1.5,
				},
			},
		},
	}
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset validates a preset name. The empty string means fixed.
func ParsePreset(name string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(name); p {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	case "":
		return DifficultyFixed, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or fixed)", name)
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

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

// ApplyPreset modifies the play difficulty for a preset.
func ApplyPreset(cfg *Config, preset DifficultyPreset) {
	if IsFixedPreset(preset) {
		cfg.Play.Difficulty.Enabled = false
		return
	}
	cfg.Play.Difficulty.Enabled = true
	cfg.Play.Difficulty.InitialLevel = InitialLevelForPreset(preset)
}
