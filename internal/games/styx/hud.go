package styx

import "sync/atomic"

// hud receives the arena's status readouts. The arena calls it from its
// loops while the renderer reads it from the platform goroutine.
type hud struct {
	percent atomic.Int64
	score   atomic.Int64
	lives   atomic.Int64
	level   atomic.Int64
	drawing atomic.Bool
}

func (h *hud) ShowPercent(percent int)  { h.percent.Store(int64(percent)) }
func (h *hud) ShowScore(score int)      { h.score.Store(int64(score)) }
func (h *hud) ShowLives(lives int)      { h.lives.Store(int64(lives)) }
func (h *hud) ShowLevel(level int)      { h.level.Store(int64(level)) }
func (h *hud) ShowDrawMode(active bool) { h.drawing.Store(active) }

// hudValues is a copy of the readouts for one frame.
type hudValues struct {
	Percent, Score, Lives, Level int
	Drawing                      bool
}

func (h *hud) values() hudValues {
	return hudValues{
		Percent: int(h.percent.Load()),
		Score:   int(h.score.Load()),
		Lives:   int(h.lives.Load()),
		Level:   int(h.level.Load()),
		Drawing: h.drawing.Load(),
	}
}
