// Package styx adapts the arena simulation to the platform's Game
// interface. The arena runs its own input and adversary loops; Step only
// hands over key presses and reads back status, and Render draws the
// latest frame snapshot.
package styx

import (
	"context"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-styx/internal/config"
	"github.com/vovakirdan/tui-styx/internal/core"
	"github.com/vovakirdan/tui-styx/internal/games/styx/arena"
	"github.com/vovakirdan/tui-styx/internal/registry"
)

// Mode represents the game mode.
type Mode int

const (
	ModeCampaign Mode = iota // Clear a fixed number of levels to win
	ModeEndless              // Play until the last life is lost
)

// Terminals report presses but not releases. A direction stays held this
// long after its last press, which bridges the usual key-repeat delay.
const keyHold = 300 * time.Millisecond

var (
	configPath       string
	difficultyPreset config.DifficultyPreset
	logger           = log.New(io.Discard)
	strict           bool
)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names clear it.
func SetDifficultyPreset(preset string) {
	p, err := config.ParsePreset(preset)
	if err != nil || preset == "" {
		difficultyPreset = ""
		return
	}
	difficultyPreset = p
}

// SetLogger routes arena events to l.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	logger = l
}

// SetStrict makes invariant violations panic.
func SetStrict(on bool) {
	strict = on
}

// LoadConfig returns the configuration a new game would use.
func LoadConfig() config.StyxConfig {
	cfg, err := config.LoadStyx(configPath)
	if err != nil {
		logger.Warn("config rejected, using defaults", "path", configPath, "err", err)
		cfg = config.DefaultStyxConfig()
	}
	if difficultyPreset != "" {
		config.ApplyStyxPreset(&cfg, difficultyPreset)
	}
	return cfg
}

// Game implements registry.Game for Styx.
type Game struct {
	mode    Mode
	runtime core.RuntimeConfig
	cfg     config.StyxConfig
	rng     *rand.Rand

	arena *arena.Arena
	hud   *hud
	input *heldInput

	cancel context.CancelFunc
	done   chan struct{}
}

// New creates a campaign game.
func New() *Game {
	return &Game{mode: ModeCampaign}
}

// NewEndless creates an endless game.
func NewEndless() *Game {
	return &Game{mode: ModeEndless}
}

func init() {
	registry.Register("styx", func() registry.Game {
		return New()
	})
	registry.Register("styx_endless", func() registry.Game {
		return NewEndless()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	if g.mode == ModeEndless {
		return "styx_endless"
	}
	return "styx"
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.mode == ModeEndless {
		return "Styx (Endless)"
	}
	return "Styx"
}

// Reset stops any running session and starts a new one.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.Stop()

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	g.runtime = cfg
	g.rng = rand.New(rand.NewSource(seed))
	g.cfg = LoadConfig()
	g.hud = &hud{}
	g.input = newHeldInput(keyHold, time.Now)

	dm := config.NewDifficultyManager(g.cfg.Difficulty)
	g.arena = arena.New(arena.Options{
		Config: g.cfg.ToArena(g.mode == ModeEndless),
		Rand:   rand.New(rand.NewSource(g.rng.Int63())),
		Logger: logger.With("game", g.ID()),
		Status: g.hud,
		Pacer:  dm,
		Strict: strict,
	})

	ctx, cancel := context.WithCancel(context.Background())
	g.cancel = cancel
	g.done = make(chan struct{})
	go func(a *arena.Arena, src arena.InputSource, done chan struct{}) {
		defer close(done)
		if err := a.Run(ctx, src); err != nil {
			logger.Error("arena stopped", "err", err)
		}
	}(g.arena, g.input, g.done)

	logger.Info("game started", "game", g.ID(), "seed", seed, "difficulty", string(difficultyPreset))
}

// Stop cancels the arena loops and waits for them to exit.
func (g *Game) Stop() {
	if g.cancel == nil {
		return
	}
	g.cancel()
	<-g.done
	g.cancel = nil
}

// Step passes the frame's key presses to the arena.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.arena == nil {
		return core.StepResult{}
	}

	st := g.arena.Status()
	if in.Has(core.ActionRestart) && st.Over {
		g.Reset(core.RuntimeConfig{
			ScreenW:  g.runtime.ScreenW,
			ScreenH:  g.runtime.ScreenH,
			TickRate: g.runtime.TickRate,
			Seed:     g.rng.Int63(),
		})
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) && !st.Over {
		g.arena.SetPaused(!st.Paused)
	}

	g.input.Update(in)
	return core.StepResult{State: g.State()}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.arena == nil {
		return core.GameState{}
	}
	st := g.arena.Status()
	return core.GameState{
		Score:    st.Score,
		Level:    st.Level,
		Lives:    st.Lives,
		Percent:  st.Percent,
		Captures: st.Captures,
		GameOver: st.Over,
		Won:      st.Won,
		Paused:   st.Paused,
	}
}

// Arena exposes the running simulation.
func (g *Game) Arena() *arena.Arena {
	return g.arena
}
