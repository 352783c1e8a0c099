package styx

import (
	"sync"
	"time"

	"github.com/vovakirdan/tui-styx/internal/core"
	"github.com/vovakirdan/tui-styx/internal/games/styx/arena"
)

// heldInput turns key presses into the continuous controls the arena
// polls. Directions and the slow modifier expire holdFor after their last
// press; the draw key toggles.
type heldInput struct {
	mu      sync.Mutex
	holdFor time.Duration
	now     func() time.Time

	dir    arena.Direction
	dirAt  time.Time
	slowAt time.Time
	draw   bool
}

func newHeldInput(holdFor time.Duration, now func() time.Time) *heldInput {
	return &heldInput{holdFor: holdFor, now: now}
}

// Update records the presses in one platform frame.
func (h *heldInput) Update(in core.InputFrame) {
	h.mu.Lock()
	defer h.mu.Unlock()

	t := h.now()
	if d := toDirection(in.Direction()); d != arena.DirNone {
		h.dir = d
		h.dirAt = t
	}
	if in.Has(core.ActionSlow) {
		h.slowAt = t
	}
	if in.Has(core.ActionDraw) {
		h.draw = !h.draw
	}
}

// Poll implements arena.InputSource.
func (h *heldInput) Poll() arena.Input {
	h.mu.Lock()
	defer h.mu.Unlock()

	t := h.now()
	in := arena.Input{Draw: h.draw}
	if h.dir != arena.DirNone && t.Sub(h.dirAt) < h.holdFor {
		in.Dir = h.dir
	}
	in.Slow = !h.slowAt.IsZero() && t.Sub(h.slowAt) < h.holdFor
	return in
}

// Drawing reports whether the draw toggle is on.
func (h *heldInput) Drawing() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.draw
}

func toDirection(a core.Action) arena.Direction {
	switch a {
	case core.ActionUp:
		return arena.DirUp
	case core.ActionRight:
		return arena.DirRight
	case core.ActionDown:
		return arena.DirDown
	case core.ActionLeft:
		return arena.DirLeft
	default:
		return arena.DirNone
	}
}
