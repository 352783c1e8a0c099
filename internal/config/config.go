// Package config provides YAML-based game configuration loading and
// difficulty management for Styx.
package config

import (
	"errors"
	"fmt"
)

// StyxConfig contains all tuning for the Styx arena.
type StyxConfig struct {
	Arena      ArenaConfig      `yaml:"arena"`
	Player     PlayerConfig     `yaml:"player"`
	Adversary  AdversaryConfig  `yaml:"adversary"`
	Tracer     TracerConfig     `yaml:"tracer"`
	Scoring    ScoringConfig    `yaml:"scoring"`
	Death      DeathConfig      `yaml:"death"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// ArenaConfig defines the playing field and level goal.
type ArenaConfig struct {
	Width          int     `yaml:"width"`
	Height         int     `yaml:"height"`
	LevelThreshold float64 `yaml:"level_threshold"` // captured percent that clears a level
	Levels         int     `yaml:"levels"`          // campaign length
}

// PlayerConfig defines the marker's start, speeds and lives.
type PlayerConfig struct {
	StartX      int `yaml:"start_x"`
	StartY      int `yaml:"start_y"`
	SlowSpeed   int `yaml:"slow_speed"`
	NormalSpeed int `yaml:"normal_speed"`
	FastSpeed   int `yaml:"fast_speed"`
	MinTurnRun  int `yaml:"min_turn_run"`
	Lives       int `yaml:"lives"`
	InputHz     int `yaml:"input_hz"`
}

// AdversaryConfig defines the bouncing adversary.
type AdversaryConfig struct {
	SegmentLength   float64 `yaml:"segment_length"`
	TrailLength     int     `yaml:"trail_length"`
	StepLength      float64 `yaml:"step_length"`
	TickMS          int     `yaml:"tick_ms"`
	MaxTurnDeg      float64 `yaml:"max_turn_deg"`
	BounceJitterDeg float64 `yaml:"bounce_jitter_deg"`
}

// TracerConfig bounds the wall-follow closure.
type TracerConfig struct {
	MaxVertices int `yaml:"max_vertices"`
}

// ScoringConfig defines how captures turn into points.
type ScoringConfig struct {
	AreaPerPoint   int `yaml:"area_per_point"`
	SlowMultiplier int `yaml:"slow_multiplier"`
	LevelBonus     int `yaml:"level_bonus"`
}

// DeathConfig defines the pause between a caught path and the reset.
type DeathConfig struct {
	DelayMS int `yaml:"delay_ms"`
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases across levels.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "level" or "none"
	MaxAt int    `yaml:"max_at"` // Level at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // Multiplier added to adversary speed at max difficulty
}

// Validate reports the first setting the arena cannot run with.
func (c StyxConfig) Validate() error {
	var errs []error
	if c.Arena.Width < 3 || c.Arena.Height < 3 {
		errs = append(errs, fmt.Errorf("arena size %dx%d is too small", c.Arena.Width, c.Arena.Height))
	}
	if c.Arena.LevelThreshold <= 0 || c.Arena.LevelThreshold > 100 {
		errs = append(errs, fmt.Errorf("level_threshold %v outside (0, 100]", c.Arena.LevelThreshold))
	}
	if c.Arena.Levels < 0 {
		errs = append(errs, fmt.Errorf("levels %d is negative", c.Arena.Levels))
	}
	if !c.inArena(c.Player.StartX, c.Player.StartY) {
		errs = append(errs, fmt.Errorf("player start (%d,%d) is off the arena", c.Player.StartX, c.Player.StartY))
	}
	if c.Player.SlowSpeed <= 0 || c.Player.NormalSpeed <= 0 || c.Player.FastSpeed <= 0 {
		errs = append(errs, errors.New("player speeds must be positive"))
	}
	if c.Player.Lives < 1 {
		errs = append(errs, fmt.Errorf("lives %d must be at least 1", c.Player.Lives))
	}
	if c.Adversary.TrailLength < 1 {
		errs = append(errs, fmt.Errorf("trail_length %d must be at least 1", c.Adversary.TrailLength))
	}
	if c.Adversary.SegmentLength <= 0 || c.Adversary.StepLength <= 0 {
		errs = append(errs, errors.New("adversary segment and step lengths must be positive"))
	}
	if c.Tracer.MaxVertices < 1 {
		errs = append(errs, fmt.Errorf("max_vertices %d must be at least 1", c.Tracer.MaxVertices))
	}
	if c.Scoring.AreaPerPoint < 1 {
		errs = append(errs, fmt.Errorf("area_per_point %d must be at least 1", c.Scoring.AreaPerPoint))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: invalid styx config: %w", err)
	}
	return nil
}

func (c StyxConfig) inArena(x, y int) bool {
	return x >= 0 && y >= 0 && x < c.Arena.Width && y < c.Arena.Height
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset validates a preset name. An empty name means normal.
func ParsePreset(name string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(name); p {
	case "":
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	}
	return "", fmt.Errorf("config: unknown difficulty %q (easy, normal, hard, fixed)", name)
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
