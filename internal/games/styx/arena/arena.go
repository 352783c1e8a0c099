// Package arena is the simulation core of Styx: the cell mask, the path
// tracer and its wall-following closure, the territory ledger, the
// bouncing adversary and the player controller. It has no terminal or
// storage dependencies; displays consume Frame snapshots and score
// widgets implement StatusSink.
package arena

import (
	"io"
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// Config holds arena-wide tuning.
type Config struct {
	Width, Height     int
	LevelThreshold    float64 // captured percent that completes a level
	Levels            int     // levels to win; 0 plays forever
	Lives             int
	MaxTraceVertices  int
	AreaPerPoint      int
	SlowMultiplier    int
	LevelBonus        int
	DeathDelay        time.Duration
	InputInterval     time.Duration
	AdversaryInterval time.Duration
	Player            PlayerConfig
	Adversary         AdversaryConfig
}

// DefaultConfig returns the classic 1000×1000 arena.
func DefaultConfig() Config {
	return Config{
		Width:             1000,
		Height:            1000,
		LevelThreshold:    80,
		Levels:            10,
		Lives:             3,
		MaxTraceVertices:  DefaultMaxVertices,
		AreaPerPoint:      100,
		SlowMultiplier:    2,
		LevelBonus:        1000,
		DeathDelay:        2 * time.Second,
		InputInterval:     20 * time.Millisecond,
		AdversaryInterval: 20 * time.Millisecond,
		Player:            DefaultPlayerConfig(),
		Adversary:         DefaultAdversaryConfig(),
	}
}

// Options configures New. Zero values fall back to defaults.
type Options struct {
	Config Config
	Rand   *rand.Rand
	Logger *log.Logger
	Status StatusSink
	Pacer  Pacer
	Strict bool // panic on invariant violations
	Now    func() time.Time
}

// Arena owns the shared simulation state. One lock serializes the mask,
// path, territory and session counters; the adversary guards its own
// trail. Lock order is arena before adversary.
type Arena struct {
	mu sync.RWMutex

	cfg    Config
	logger *log.Logger
	status StatusSink
	pacer  Pacer
	strict bool
	now    func() time.Time

	mask      *Mask
	tracer    *Tracer
	territory *Territory
	player    *Player
	adv       *Adversary

	percent  float64
	score    int
	lives    int
	level    int
	captures int
	paused   bool
	over     bool
	won      bool

	dying    bool
	hitPoint Point
	hitAt    time.Time
}

// New creates an arena and starts a new game.
func New(opts Options) *Arena {
	cfg := opts.Config
	if cfg.Width == 0 || cfg.Height == 0 {
		cfg = DefaultConfig()
	}
	a := &Arena{
		cfg:    cfg,
		logger: opts.Logger,
		status: opts.Status,
		pacer:  opts.Pacer,
		strict: opts.Strict,
		now:    opts.Now,
	}
	if a.logger == nil {
		a.logger = log.New(io.Discard)
	}
	if a.status == nil {
		a.status = nopStatus{}
	}
	if a.now == nil {
		a.now = time.Now
	}
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	a.mask = NewMask(cfg.Width, cfg.Height)
	a.tracer = NewTracer(a.mask, cfg.MaxTraceVertices)
	a.territory = &Territory{}
	a.player = NewPlayer(cfg.Player)
	a.adv = NewAdversary(cfg.Adversary, rng, a.center())

	a.NewGame()
	return a
}

func (a *Arena) center() Point {
	return Pt(a.cfg.Width/2, a.cfg.Height/2)
}

// Config returns the arena's tuning.
func (a *Arena) Config() Config {
	return a.cfg
}

// Adversary exposes the adversary for inspection.
func (a *Arena) Adversary() *Adversary {
	return a.adv
}

// NewGame resets the field along with score, lives and level.
func (a *Arena) NewGame() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.score = 0
	a.captures = 0
	a.lives = a.cfg.Lives
	a.level = 1
	a.over = false
	a.won = false
	a.resetLocked()
}

// Reset clears the field: mask, path, territory, percentage, player and
// adversary. Score, lives and level are kept.
func (a *Arena) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.resetLocked()
}

func (a *Arena) resetLocked() {
	a.mask.Reset()
	a.tracer.Clear()
	a.territory.Reset()
	a.player.Reset()
	a.adv.Reset(a.center(), 0)
	a.adv.SetStepLength(a.stepLength())
	a.percent = 0
	a.dying = false
	a.publishLocked()
}

func (a *Arena) stepLength() float64 {
	base := a.cfg.Adversary.StepLength
	if a.pacer == nil {
		return base
	}
	return a.pacer.LevelSpeed(base, a.level)
}

func (a *Arena) publishLocked() {
	a.status.ShowPercent(int(math.Round(a.percent)))
	a.status.ShowScore(a.score)
	a.status.ShowLives(a.lives)
	a.status.ShowLevel(a.level)
	a.status.ShowDrawMode(a.player.Drawing())
}

// AddWaypoint appends a vertex to the open path.
func (a *Arena) AddWaypoint(p Point, dir Direction) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.tracer.AddWaypoint(p, dir)
}

// MkArea closes the open path into a capture and commits it. With no
// open path it does nothing. A failed closure leaves the path in place.
func (a *Arena) MkArea() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.mkAreaLocked()
}

func (a *Arena) mkAreaLocked() error {
	if a.tracer.Len() < 2 {
		return nil
	}

	avoid := a.adv.Position()
	capture, err := a.tracer.Finalize(&avoid)
	if err != nil {
		a.logger.Warn("capture abandoned", "err", err)
		return err
	}
	if err := a.mask.FillPolygon(capture.Polygon); err != nil {
		a.logger.Error("capture fill rejected", "err", err)
		return err
	}
	a.mask.DrawOutline(capture.Polygon)

	slow := a.tracer.Slow()
	entry := a.territory.Add(capture.Polygon, slow)
	a.tracer.Clear()

	points := entry.Area() / max(a.cfg.AreaPerPoint, 1)
	if slow {
		points *= max(a.cfg.SlowMultiplier, 1)
	}
	a.score += points
	a.captures++
	a.percent = a.mask.CapturedPercent()

	a.logger.Info("capture committed",
		"area", entry.Area(),
		"slow", slow,
		"rule", capture.Rule,
		"points", points,
		"percent", math.Round(a.percent*10)/10,
	)
	a.publishLocked()

	if a.percent >= a.cfg.LevelThreshold {
		a.completeLevelLocked()
	}
	return nil
}

func (a *Arena) completeLevelLocked() {
	done := a.level
	a.score += a.cfg.LevelBonus * done
	a.logger.Info("level complete", "level", done, "percent", math.Round(a.percent), "score", a.score)

	if a.cfg.Levels > 0 && done >= a.cfg.Levels {
		a.won = true
		a.over = true
		a.logger.Info("game won", "score", a.score)
		a.publishLocked()
		return
	}
	a.level++
	a.resetLocked()
}

// Move applies one input poll. Input is ignored while paused, dying or
// after the game is over.
func (a *Arena) Move(in Input) (MoveEvent, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.paused || a.dying || a.over {
		return MoveNone, nil
	}

	wasDrawing := a.player.Drawing()
	ev, err := a.player.Apply(in, a.mask, a.tracer)
	if err != nil {
		return ev, a.invariant(err)
	}
	if a.player.Drawing() != wasDrawing {
		a.status.ShowDrawMode(a.player.Drawing())
	}

	switch ev {
	case MoveClosed:
		if err := a.mkAreaLocked(); err != nil {
			a.tracer.Erase(a.player.Position())
			return ev, err
		}
	case MoveFalseStart:
		a.logger.Debug("false start", "at", a.player.Position())
	}
	return ev, nil
}

func (a *Arena) invariant(err error) error {
	a.logger.Error("invariant violation", "err", err)
	if a.strict {
		panic(err)
	}
	return err
}

// StepAdversary advances the adversary one tick. A line hit starts the
// death sequence.
func (a *Arena) StepAdversary() Hit {
	a.mu.RLock()
	if a.paused || a.dying || a.over {
		a.mu.RUnlock()
		return Hit{}
	}
	hit := a.adv.Step(a.mask)
	a.mu.RUnlock()

	if hit.Kind == HitLine {
		a.mu.Lock()
		if a.mask.Get(hit.At) == CellLine {
			a.showHitLocked(hit.At)
		}
		a.mu.Unlock()
	}
	return hit
}

// ShowHit reports that the adversary caught the open path at p.
func (a *Arena) ShowHit(p Point) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.showHitLocked(p)
}

func (a *Arena) showHitLocked(p Point) {
	if a.dying || a.over {
		return
	}
	a.dying = true
	a.hitPoint = p
	a.hitAt = a.now()
	a.logger.Info("path caught", "at", p, "lives", a.lives)
}

// WeLost reports whether the death sequence is running.
func (a *Arena) WeLost() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.dying
}

// Tick advances timers. Once the death delay has passed a life is
// deducted and the field is reset, or the game ends.
func (a *Arena) Tick(now time.Time) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.dying || now.Sub(a.hitAt) < a.cfg.DeathDelay {
		return
	}

	a.lives--
	if a.lives <= 0 {
		a.lives = 0
		a.dying = false
		a.over = true
		a.logger.Info("game over", "score", a.score, "level", a.level)
		a.publishLocked()
		return
	}
	a.logger.Info("life lost", "lives", a.lives)
	a.resetLocked()
}

// PointType returns the mask cell at p.
func (a *Arena) PointType(p Point) Cell {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.mask.Get(p)
}

// IsPosAvailable reports whether the player may occupy p.
func (a *Arena) IsPosAvailable(p Point) bool {
	c := a.PointType(p)
	return c == CellEmpty || c == CellWall
}

// IsOnEdge reports whether p lies on a wall.
func (a *Arena) IsOnEdge(p Point) bool {
	return a.PointType(p) == CellWall
}

// SetPaused freezes or resumes both loops.
func (a *Arena) SetPaused(paused bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.paused = paused
}

// Status returns the current readout.
func (a *Arena) Status() Status {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.statusLocked()
}

func (a *Arena) statusLocked() Status {
	return Status{
		Percent:  a.percent,
		Score:    a.score,
		Lives:    a.lives,
		Level:    a.level,
		Captures: a.captures,
		Drawing:  a.player.Drawing(),
		Dying:    a.dying,
		Paused:   a.paused,
		Over:     a.over,
		Won:      a.won,
	}
}

// Frame snapshots the geometry for one display frame.
func (a *Arena) Frame() Frame {
	a.mu.RLock()
	defer a.mu.RUnlock()

	f := Frame{
		Width:  a.cfg.Width,
		Height: a.cfg.Height,
		Player: a.player.Position(),
		Trail:  a.adv.Trail(),
		Status: a.statusLocked(),
	}
	a.territory.Each(func(e *Entry) bool {
		f.Territories = append(f.Territories, TerritoryView{Polygon: e.Polygon.Clone(), Slow: e.Slow})
		return true
	})
	f.Path = a.tracer.Points()
	if a.player.Drawing() {
		f.Path = append(f.Path, a.player.Position())
	}
	if a.dying {
		progress := 1.0
		if a.cfg.DeathDelay > 0 {
			progress = math.Min(float64(a.now().Sub(a.hitAt))/float64(a.cfg.DeathDelay), 1)
		}
		f.Hit = &HitView{At: a.hitPoint, Progress: progress}
	}
	return f
}
