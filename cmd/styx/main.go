// styx is a terminal rendition of the territory-capture arcade game.
//
// Usage:
//
//	styx list              - List available game modes
//	styx play [mode]       - Play a game (default: styx)
//	styx menu              - Start menu to pick a mode interactively
//	styx serve             - Start SSH server for remote play
//	styx scores [mode]     - Show high scores and recent runs
//	styx sim               - Run headless games with random input
//	styx config            - Print the effective game configuration
//
// Global flags:
//
//	--fps <rate>          - Set render rate (default: 30)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--db <path>           - Set database path (default: ~/.styx/scores.db)
//	--config <path>       - Load a custom styx.yaml
//	--difficulty <name>   - Difficulty preset: easy, normal, hard, fixed
//	--log-file <path>     - Write game events to a file
//	--log-level <level>   - debug, info, warn or error
//	--strict              - Panic on simulation invariant violations
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-styx/internal/games/styx"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogFile    string
	flagLogLevel   string
	flagStrict     bool
)

// logFile is the open --log-file, closed when the command finishes.
var logFile *os.File

func main() {
	err := rootCmd.Execute()
	if logFile != nil {
		logFile.Close()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "styx",
	Short: "Styx - claim the field in your terminal",
	Long: `Styx is a territory-capture game for the terminal. Cut the field
with your trace, close it against the wall, and keep the Styx from
touching the line while you draw.

Available commands:
  list     - Show the game modes
  play     - Play a mode directly
  menu     - Interactive mode picker
  serve    - Start SSH server for remote play
  scores   - View high scores and recent runs
  sim      - Run headless games with random input
  config   - Print the effective configuration

Examples:
  styx play
  styx play styx_endless --difficulty hard
  styx menu
  styx serve --ssh :2222
  styx sim --runs 4 --duration 20s`,
	SilenceUsage:      true,
	PersistentPreRunE: setupGame,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.IntVar(&flagFPS, "fps", 30, "Render rate (frames per second)")
	pf.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	pf.StringVar(&flagDBPath, "db", "~/.styx/scores.db", "Path to scores database")
	pf.StringVar(&flagConfig, "config", "", "Path to custom styx.yaml")
	pf.StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	pf.StringVar(&flagLogFile, "log-file", "", "Write game events to this file")
	pf.StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	pf.BoolVar(&flagStrict, "strict", false, "Panic on simulation invariant violations")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(configCmd)
}

// setupGame applies the global flags to the styx package before any
// game is created.
func setupGame(_ *cobra.Command, _ []string) error {
	styx.SetConfigPath(flagConfig)
	styx.SetDifficultyPreset(flagDifficulty)
	styx.SetStrict(flagStrict)

	if flagLogFile == "" {
		return nil
	}
	f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	logFile = f

	l, err := newLogger(f)
	if err != nil {
		return err
	}
	styx.SetLogger(l)
	return nil
}

// newLogger builds a logger at --log-level writing to w.
func newLogger(w io.Writer) (*log.Logger, error) {
	lvl, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Level:           lvl,
		Prefix:          "styx",
	}), nil
}
