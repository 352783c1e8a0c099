package arena

import "fmt"

// Input is one poll of the player's controls.
type Input struct {
	Dir  Direction
	Slow bool // slow modifier: slower while drawing, faster on the edge
	Draw bool
}

// InputSource is polled by the arena's input loop.
type InputSource interface {
	Poll() Input
}

// InputFunc adapts a function to InputSource.
type InputFunc func() Input

// Poll calls f.
func (f InputFunc) Poll() Input { return f() }

// PlayerConfig holds movement tuning.
type PlayerConfig struct {
	Start       Point
	SlowSpeed   int // while drawing with the modifier held
	NormalSpeed int
	FastSpeed   int // on the edge with the modifier held
	MinTurnRun  int // straight distance required before a drawing turn
}

// DefaultPlayerConfig returns the classic movement tuning.
func DefaultPlayerConfig() PlayerConfig {
	return PlayerConfig{
		Start:       Pt(500, 0),
		SlowSpeed:   3,
		NormalSpeed: 5,
		FastSpeed:   10,
		MinTurnRun:  30,
	}
}

// MoveEvent reports what a single Apply did.
type MoveEvent int

const (
	MoveNone MoveEvent = iota
	MoveEdge
	MoveDrawStart
	MoveDraw
	MoveTurnDropped
	MoveClosed
	MoveFalseStart
)

func (e MoveEvent) String() string {
	switch e {
	case MoveEdge:
		return "edge"
	case MoveDrawStart:
		return "draw-start"
	case MoveDraw:
		return "draw"
	case MoveTurnDropped:
		return "turn-dropped"
	case MoveClosed:
		return "closed"
	case MoveFalseStart:
		return "false-start"
	default:
		return "none"
	}
}

// Player turns input into validated moves and drives the tracer.
type Player struct {
	cfg     PlayerConfig
	pos     Point
	drawing bool
}

// NewPlayer creates a player at cfg.Start.
func NewPlayer(cfg PlayerConfig) *Player {
	return &Player{cfg: cfg, pos: cfg.Start}
}

// Reset returns the player to its start and ends any drawing.
func (pl *Player) Reset() {
	pl.pos = pl.cfg.Start
	pl.drawing = false
}

// Position returns the current cell.
func (pl *Player) Position() Point { return pl.pos }

// Drawing reports whether a path is open.
func (pl *Player) Drawing() bool { return pl.drawing }

// Speed returns the step length for in given the drawing state.
func (pl *Player) Speed(in Input) int {
	switch {
	case pl.drawing && in.Slow:
		return pl.cfg.SlowSpeed
	case !pl.drawing && in.Slow:
		return pl.cfg.FastSpeed
	default:
		return pl.cfg.NormalSpeed
	}
}

func (pl *Player) beginDraw(t *Tracer, dir Direction) error {
	if pl.drawing {
		return fmt.Errorf("begin drawing at %s while drawing: %w", pl.pos, ErrInvariant)
	}
	t.Clear()
	t.AddWaypoint(pl.pos, dir)
	pl.drawing = true
	return nil
}

func (pl *Player) endDraw() error {
	if !pl.drawing {
		return fmt.Errorf("end drawing at %s while not drawing: %w", pl.pos, ErrInvariant)
	}
	pl.drawing = false
	return nil
}

// Apply performs one input poll. MoveClosed means the path now ends on
// the wall with at least one leg before the closing one, and the caller
// must commit or erase it.
func (pl *Player) Apply(in Input, m *Mask, t *Tracer) (MoveEvent, error) {
	if in.Dir == DirNone {
		return MoveNone, nil
	}
	step := in.Dir.Delta()
	delta := step.Scale(pl.Speed(in))

	if !pl.drawing {
		if in.Draw && m.Get(pl.pos.Add(step)) == CellEmpty {
			d := m.ValidDraw(pl.pos, delta)
			if d.IsZero() {
				return MoveNone, nil
			}
			if err := pl.beginDraw(t, in.Dir); err != nil {
				return MoveNone, err
			}
			return pl.advance(d, in, m, t, MoveDrawStart)
		}

		d := m.ValidMove(pl.pos, delta)
		if d.IsZero() {
			return MoveNone, nil
		}
		pl.pos = pl.pos.Add(d)
		return MoveEdge, nil
	}

	d := m.ValidDraw(pl.pos, delta)
	if d.IsZero() {
		return MoveNone, nil
	}
	last, _ := t.Last()
	if in.Dir == last.Dir.Opposite() {
		return MoveNone, nil
	}
	if in.Dir != last.Dir {
		if pl.pos.Dist(last.Point) < float64(pl.cfg.MinTurnRun) {
			return MoveTurnDropped, nil
		}
		t.AddWaypoint(pl.pos, in.Dir)
	}
	return pl.advance(d, in, m, t, MoveDraw)
}

func (pl *Player) advance(d Point, in Input, m *Mask, t *Tracer, ev MoveEvent) (MoveEvent, error) {
	next := pl.pos.Add(d)
	m.Overlay(pl.pos, next, CellLine, CellEmpty)
	t.NoteMove(in.Slow)
	pl.pos = next
	if m.Get(next) != CellWall {
		return ev, nil
	}

	if err := pl.endDraw(); err != nil {
		return ev, err
	}
	if t.Legs() < 1 {
		t.Erase(next)
		return MoveFalseStart, nil
	}
	t.AddWaypoint(next, in.Dir)
	return MoveClosed, nil
}
