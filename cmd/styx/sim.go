package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/tui-styx/internal/config"
	"github.com/vovakirdan/tui-styx/internal/games/styx"
	"github.com/vovakirdan/tui-styx/internal/games/styx/arena"
	"github.com/vovakirdan/tui-styx/internal/registry"
	"github.com/vovakirdan/tui-styx/internal/storage"
)

var (
	flagSimRuns     int
	flagSimDuration time.Duration
	flagSimMode     string
	flagSimSave     bool
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Run headless games with random input",
	Long: `Run one or more arenas without a terminal, steered by a random
walker that draws most of the time. Each run stops when its game is
over or when --duration elapses. Runs execute concurrently.

Useful for soak-testing the simulation; combine with --strict to
panic on the first invariant violation.

Examples:
  styx sim
  styx sim --runs 8 --duration 1m --strict
  styx sim --seed 42 --log-level debug
  styx sim --mode styx_endless --save`,
	RunE: runSim,
}

func init() {
	simCmd.Flags().IntVar(&flagSimRuns, "runs", 1, "Number of concurrent runs")
	simCmd.Flags().DurationVar(&flagSimDuration, "duration", 30*time.Second, "Wall-clock limit per run")
	simCmd.Flags().StringVar(&flagSimMode, "mode", "styx", "Game mode: styx or styx_endless")
	simCmd.Flags().BoolVar(&flagSimSave, "save", false, "Record finished runs in the scores database")
}

func runSim(_ *cobra.Command, _ []string) error {
	if !registry.Exists(flagSimMode) {
		return fmt.Errorf("unknown mode %q", flagSimMode)
	}
	if flagSimRuns < 1 {
		return fmt.Errorf("--runs must be at least 1")
	}

	logger, err := newLogger(os.Stderr)
	if err != nil {
		return err
	}
	if flagLogFile != "" {
		logger.SetOutput(logFile)
	}

	cfg := styx.LoadConfig()
	endless := flagSimMode == "styx_endless"

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	master := rand.New(rand.NewSource(seed))
	seeds := make([]int64, flagSimRuns)
	for i := range seeds {
		seeds[i] = master.Int63()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	results := make([]storage.Run, flagSimRuns)
	g, ctx := errgroup.WithContext(ctx)
	for i := range flagSimRuns {
		g.Go(func() error {
			run, err := simulate(ctx, cfg, endless, seeds[i], logger.With("run", i+1))
			results[i] = run
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	printSimResults(seed, results)

	if !flagSimSave {
		return nil
	}
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()
	for _, r := range results {
		if r.Score > 0 {
			if _, err := store.SaveScore(r.GameID, r.Score); err != nil {
				return err
			}
		}
		if _, err := store.SaveRun(r); err != nil {
			return err
		}
	}
	return nil
}

// simulate plays one arena until it is over or the duration runs out.
func simulate(ctx context.Context, cfg config.StyxConfig, endless bool, seed int64, l *log.Logger) (storage.Run, error) {
	a := arena.New(arena.Options{
		Config: cfg.ToArena(endless),
		Rand:   rand.New(rand.NewSource(seed)),
		Logger: l,
		Pacer:  config.NewDifficultyManager(cfg.Difficulty),
		Strict: flagStrict,
	})

	ctx, cancel := context.WithTimeout(ctx, flagSimDuration)
	defer cancel()

	w := &wanderer{rng: rand.New(rand.NewSource(^seed))}
	start := time.Now()
	l.Debug("sim started", "seed", seed)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return a.Run(gctx, arena.InputFunc(w.next))
	})
	g.Go(func() error {
		t := time.NewTicker(100 * time.Millisecond)
		defer t.Stop()
		for {
			select {
			case <-gctx.Done():
				return nil
			case <-t.C:
				if a.Status().Over {
					cancel()
					return nil
				}
			}
		}
	})
	err := g.Wait()

	st := a.Status()
	run := storage.Run{
		GameID:    flagSimMode,
		Source:    "sim",
		Score:     st.Score,
		Level:     st.Level,
		Percent:   st.Percent,
		LivesLeft: st.Lives,
		Captures:  st.Captures,
		Won:       st.Won,
		Duration:  time.Since(start).Round(time.Millisecond),
	}
	l.Info("sim finished", "score", run.Score, "level", run.Level, "captures", run.Captures, "over", st.Over)
	return run, err
}

// wanderer holds a random direction for a random number of polls. It is
// polled from the arena's input loop only.
type wanderer struct {
	rng  *rand.Rand
	in   arena.Input
	left int
}

func (w *wanderer) next() arena.Input {
	if w.left <= 0 {
		w.in = arena.Input{
			Dir:  arena.Direction(1 + w.rng.Intn(4)),
			Slow: w.rng.Intn(4) == 0,
			Draw: w.rng.Intn(3) != 0,
		}
		w.left = 10 + w.rng.Intn(40)
	}
	w.left--
	return w.in
}

func printSimResults(seed int64, runs []storage.Run) {
	fmt.Printf("Seed %d, %d run(s)\n\n", seed, len(runs))
	fmt.Printf("  %-3s  %-8s  %-5s  %-8s  %-8s  %-5s  %s\n",
		"Run", "Score", "Level", "Captured", "Captures", "Lives", "Duration")
	for i, r := range runs {
		fmt.Printf("  %-3d  %-8d  %-5d  %7.1f%%  %-8d  %-5d  %s\n",
			i+1, r.Score, r.Level, r.Percent, r.Captures, r.LivesLeft, r.Duration)
	}
}
