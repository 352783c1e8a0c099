package arena

import (
	"context"
	"errors"
	"time"

	"golang.org/x/sync/errgroup"
)

// Run drives the input and adversary loops until ctx is cancelled. The
// display polls Frame on its own schedule. Capture failures are logged
// and play continues; Run returns nil on cancellation.
func (a *Arena) Run(ctx context.Context, src InputSource) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return a.inputLoop(ctx, src)
	})
	g.Go(func() error {
		return a.adversaryLoop(ctx)
	})

	err := g.Wait()
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil
	}
	return err
}

func (a *Arena) inputLoop(ctx context.Context, src InputSource) error {
	ticker := time.NewTicker(interval(a.cfg.InputInterval))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			//nolint:errcheck // failures are logged by the arena
			a.Move(src.Poll())
		}
	}
}

func (a *Arena) adversaryLoop(ctx context.Context) error {
	ticker := time.NewTicker(interval(a.cfg.AdversaryInterval))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			a.Tick(a.now())
			a.StepAdversary()
		}
	}
}

func interval(d time.Duration) time.Duration {
	if d <= 0 {
		return 20 * time.Millisecond
	}
	return d
}
