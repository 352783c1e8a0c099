package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-styx/internal/core"
	"github.com/vovakirdan/tui-styx/internal/platform/tui"
	"github.com/vovakirdan/tui-styx/internal/registry"
	"github.com/vovakirdan/tui-styx/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Play a game",
	Long: `Start playing Styx. The mode defaults to the ten-level campaign;
use styx_endless to play until the last life is lost.

Controls:
  Arrows/WASD      - Move
  Shift+direction  - Slow draw (double score) / fast run along the edge
  Space            - Toggle drawing
  P                - Pause
  R                - Restart (after game over)
  Esc/B            - Back (while paused or after game over)
  Ctrl+S           - Save a screenshot to ~/.styx/screenshots
  Q/Ctrl+C         - Quit

Difficulty options:
  easy   - Adversary starts slow, speeds up with the level
  normal - Default pacing
  hard   - Faster adversary, fewer lives
  fixed  - No speed progression across levels

Examples:
  styx play
  styx play styx_endless
  styx play --difficulty hard
  styx play --config ./my-styx.yaml --log-file styx.log`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func runPlay(_ *cobra.Command, args []string) {
	gameID := "styx"
	if len(args) > 0 {
		gameID = args[0]
	}

	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'styx list' to see available modes.")
		os.Exit(1)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}

	runErr := tui.Run(game, store, terminalConfig())

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}

// terminalConfig sizes the runtime config to the controlling terminal.
func terminalConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}
