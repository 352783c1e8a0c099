package config

import (
	"time"

	"github.com/vovakirdan/tui-styx/internal/games/styx/arena"
)

// ToArena converts the YAML schema into the arena's tuning. Endless mode
// plays levels until the last life is lost.
func (c StyxConfig) ToArena(endless bool) arena.Config {
	levels := c.Arena.Levels
	if endless {
		levels = 0
	}
	return arena.Config{
		Width:             c.Arena.Width,
		Height:            c.Arena.Height,
		LevelThreshold:    c.Arena.LevelThreshold,
		Levels:            levels,
		Lives:             c.Player.Lives,
		MaxTraceVertices:  c.Tracer.MaxVertices,
		AreaPerPoint:      c.Scoring.AreaPerPoint,
		SlowMultiplier:    c.Scoring.SlowMultiplier,
		LevelBonus:        c.Scoring.LevelBonus,
		DeathDelay:        time.Duration(c.Death.DelayMS) * time.Millisecond,
		InputInterval:     hzInterval(c.Player.InputHz),
		AdversaryInterval: time.Duration(c.Adversary.TickMS) * time.Millisecond,
		Player: arena.PlayerConfig{
			Start:       arena.Pt(c.Player.StartX, c.Player.StartY),
			SlowSpeed:   c.Player.SlowSpeed,
			NormalSpeed: c.Player.NormalSpeed,
			FastSpeed:   c.Player.FastSpeed,
			MinTurnRun:  c.Player.MinTurnRun,
		},
		Adversary: arena.AdversaryConfig{
			SegmentLength: c.Adversary.SegmentLength,
			StepLength:    c.Adversary.StepLength,
			TrailLength:   c.Adversary.TrailLength,
			MaxTurnDeg:    c.Adversary.MaxTurnDeg,
			JitterDeg:     c.Adversary.BounceJitterDeg,
		},
	}
}

func hzInterval(hz int) time.Duration {
	if hz <= 0 {
		return 0
	}
	return time.Second / time.Duration(hz)
}
