package config

import (
	_ "embed"
)

//go:embed defaults/styx.yaml
var defaultStyxYAML []byte

// DefaultStyxConfig returns the default Styx configuration. It mirrors
// the embedded defaults/styx.yaml.
func DefaultStyxConfig() StyxConfig {
	return StyxConfig{
		Arena: ArenaConfig{
			Width:          1000,
			Height:         1000,
			LevelThreshold: 80,
			Levels:         10,
		},
		Player: PlayerConfig{
			StartX:      500,
			StartY:      0,
			SlowSpeed:   3,
			NormalSpeed: 5,
			FastSpeed:   10,
			MinTurnRun:  30,
			Lives:       3,
			InputHz:     50,
		},
		Adversary: AdversaryConfig{
			SegmentLength:   250,
			TrailLength:     10,
			StepLength:      5,
			TickMS:          20,
			MaxTurnDeg:      30,
			BounceJitterDeg: 2.5,
		},
		Tracer: TracerConfig{
			MaxVertices: 100,
		},
		Scoring: ScoringConfig{
			AreaPerPoint:   100,
			SlowMultiplier: 2,
			LevelBonus:     1000,
		},
		Death: DeathConfig{
			DelayMS: 2000,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "level",
				MaxAt: 10,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 1.0,
			},
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "styx", "styx_endless":
		return defaultStyxYAML
	default:
		return nil
	}
}
