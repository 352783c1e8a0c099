// Package registry maps game mode IDs ("styx", "styx_endless") to the
// factories that build them, so the menu, the SSH server and the CLI can
// list and start modes without importing them.
//
// A Styx game simulates on its own goroutines: the arena's adversary
// loop and death timer keep running between platform ticks, so Step only
// trades input for status. Games like that implement Stopper. Whoever
// obtains a game from Create owns it and must hand it to Close when the
// player leaves it, quits, or disconnects; Close blocks until the game's
// goroutines have exited and is a no-op for games that never started or
// own no background work. Register follows the same rule for the
// instance it builds to read the mode title.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/tui-styx/internal/core"
)

// Game is the interface every playable mode implements.
// Games contain no Bubble Tea code; the platform handles key mapping,
// render timing and terminal output.
type Game interface {
	// ID returns a unique identifier for this game (e.g., "styx").
	// Used for CLI commands and score storage.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Reset initializes or resets the game state.
	// Called once at start and again when restarting after game over.
	// The RuntimeConfig provides screen dimensions and RNG seed.
	Reset(cfg core.RuntimeConfig)

	// Step hands the game the input collected since the previous platform
	// tick and returns the current game state. Games that simulate on
	// their own goroutines treat it as an input and status exchange.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current game state into the provided screen buffer.
	// The screen is pre-cleared before this call.
	Render(dst *core.Screen)

	// State returns the current game state (score, game over, paused).
	State() core.GameState
}

// Stopper is implemented by games that own background goroutines.
// Stop must be safe to call more than once and before Reset.
type Stopper interface {
	Stop()
}

// Close stops g if it is a Stopper. A nil g is ignored.
func Close(g Game) {
	if g == nil {
		return
	}
	if s, ok := g.(Stopper); ok {
		s.Stop()
	}
}

// GameInfo is what the menu and the scoreboard tabs show for a mode.
type GameInfo struct {
	ID    string
	Title string
}

// Factory builds a fresh, unstarted game.
type Factory func() Game

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a mode, normally from the mode's init function. It panics
// on a duplicate ID.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}

	factories[id] = f

	g := f()
	titles[id] = g.Title()
	Close(g)
}

// List returns every registered mode sorted by ID, so "styx" precedes
// "styx_endless" in the menu.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	modes := make([]GameInfo, 0, len(factories))
	for id := range factories {
		modes = append(modes, GameInfo{ID: id, Title: titles[id]})
	}
	sort.Slice(modes, func(i, j int) bool { return modes[i].ID < modes[j].ID })
	return modes
}

// Create builds a new game for the mode id. The caller owns the result
// and must Close it.
func Create(id string) (Game, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}

	return f(), nil
}

// Exists reports whether id names a registered mode.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
