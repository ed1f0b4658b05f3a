package lifecycle

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"
)

// Run sweeps every cfg.Interval until ctx is done. Each tick starts its sweep
// in the background; a tick that arrives while the previous sweep is still
// running is skipped. Run returns after the in-flight sweep has stopped.
func (r *Reconciler) Run(ctx context.Context) error {
	interval := r.cfg.Interval
	if interval <= 0 {
		interval = time.Hour
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	var wg sync.WaitGroup
	defer wg.Wait()

	r.log.InfoContext(ctx, "reconciler started", slog.Duration("interval", interval))

	for {
		select {
		case <-ctx.Done():
			r.log.InfoContext(ctx, "reconciler stopping")
			return nil
		case <-ticker.C:
			if r.running.Load() {
				r.log.WarnContext(ctx, "sweep skipped, previous sweep still running")
				continue
			}
			wg.Add(1)
			go func() {
				defer wg.Done()
				r.sweepLogged(ctx)
			}()
		}
	}
}

func (r *Reconciler) sweepLogged(ctx context.Context) {
	_, err := r.Sweep(ctx)
	switch {
	case err == nil:
	case errors.Is(err, ErrSweepInProgress):
		r.log.WarnContext(ctx, "sweep skipped, previous sweep still running")
	case errors.Is(err, context.Canceled):
		r.log.InfoContext(ctx, "sweep interrupted by shutdown")
	default:
		r.log.ErrorContext(ctx, "sweep failed", slog.String("error", err.Error()))
	}
}
