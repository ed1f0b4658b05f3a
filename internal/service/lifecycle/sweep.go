package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/heartmarshall/formcraft-backend/internal/domain"
)

// Sweep runs one reconciliation pass. A failure on one record is logged and
// the pass continues with the next. The returned error is reserved for
// failures that stop the pass: a listing query, the context, or an overlap.
func (r *Reconciler) Sweep(ctx context.Context) (SweepResult, error) {
	if !r.running.CompareAndSwap(false, true) {
		return SweepResult{}, ErrSweepInProgress
	}
	defer r.running.Store(false)

	if r.cfg.SweepTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.cfg.SweepTimeout)
		defer cancel()
	}

	start := r.now()
	sessions := newSessionCache(r)
	defer sessions.flush(ctx)

	var res SweepResult
	if err := r.closeExpired(ctx, start, sessions, &res); err != nil {
		return res, err
	}
	if r.cfg.EnforceMaxResponses {
		if err := r.enforceLimits(ctx, sessions, &res); err != nil {
			return res, err
		}
	}
	if err := r.removeStalePending(ctx, start, &res); err != nil {
		return res, err
	}

	r.log.InfoContext(ctx, "sweep finished",
		slog.Int("expired", res.Expired),
		slog.Int("deactivated", res.Deactivated),
		slog.Int("close_failed", res.CloseFailed),
		slog.Int("limit_reached", res.LimitReached),
		slog.Int("pending_removed", res.PendingRemoved),
		slog.Int("failed", res.Failed),
		slog.Duration("took", r.now().Sub(start)))

	return res, nil
}

// closeExpired deactivates every active form whose expiry has passed. The
// remote close is attempted first but its outcome does not gate the local flip.
func (r *Reconciler) closeExpired(ctx context.Context, now time.Time, sessions *sessionCache, res *SweepResult) error {
	expired, err := r.forms.ListExpiredActive(ctx, now)
	if err != nil {
		return fmt.Errorf("list expired forms: %w", err)
	}
	res.Expired = len(expired)

	for i := range expired {
		if err := ctx.Err(); err != nil {
			return err
		}
		r.retire(ctx, sessions, &expired[i], "expired", res)
	}
	return nil
}

// enforceLimits refreshes response counts of limited forms and retires those
// at or past their limit.
func (r *Reconciler) enforceLimits(ctx context.Context, sessions *sessionCache, res *SweepResult) error {
	limited, err := r.forms.ListActiveWithMaxResponses(ctx)
	if err != nil {
		return fmt.Errorf("list limited forms: %w", err)
	}

	for i := range limited {
		if err := ctx.Err(); err != nil {
			return err
		}
		rec := &limited[i]

		sess, err := sessions.get(ctx, rec.OwnerID)
		if err != nil {
			r.log.WarnContext(ctx, "skip response count",
				slog.String("form_id", rec.ID.String()),
				slog.String("error", err.Error()))
			continue
		}

		count, err := sess.CountResponses(ctx, rec.ProviderFormID)
		if err != nil {
			r.log.WarnContext(ctx, "count responses",
				slog.String("form_id", rec.ID.String()),
				slog.String("provider_form_id", rec.ProviderFormID),
				slog.String("error", err.Error()))
			res.Failed++
			continue
		}

		if count != rec.ResponseCount {
			if err := r.forms.UpdateResponseCount(ctx, rec.ID, count); err != nil && !errors.Is(err, domain.ErrNotFound) {
				r.log.ErrorContext(ctx, "store response count",
					slog.String("form_id", rec.ID.String()),
					slog.String("error", err.Error()))
			}
			rec.ResponseCount = count
		}

		if rec.ReachedMaxResponses() {
			res.LimitReached++
			r.retire(ctx, sessions, rec, "response limit reached", res)
		}
	}
	return nil
}

// retire closes the remote form best-effort and flips the record inactive.
func (r *Reconciler) retire(ctx context.Context, sessions *sessionCache, rec *domain.FormRecord, reason string, res *SweepResult) {
	attrs := []any{
		slog.String("form_id", rec.ID.String()),
		slog.String("provider_form_id", rec.ProviderFormID),
		slog.String("reason", reason),
	}

	sess, err := sessions.get(ctx, rec.OwnerID)
	if err == nil {
		err = sess.CloseResponses(ctx, rec.ProviderFormID)
	}
	if err != nil {
		res.CloseFailed++
		r.log.WarnContext(ctx, "close remote form", append(attrs, slog.String("error", err.Error()))...)
	}

	if err := r.forms.Deactivate(ctx, rec.ID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return
		}
		res.Failed++
		r.log.ErrorContext(ctx, "deactivate form", append(attrs, slog.String("error", err.Error()))...)
		return
	}

	res.Deactivated++
	r.log.InfoContext(ctx, "form deactivated", attrs...)
}

// removeStalePending deletes placeholders older than the pending TTL. Their
// remote form, if one was created, has no local record and is left in place.
func (r *Reconciler) removeStalePending(ctx context.Context, now time.Time, res *SweepResult) error {
	if r.cfg.PendingTTL <= 0 {
		return nil
	}

	stale, err := r.forms.ListStalePending(ctx, now.Add(-r.cfg.PendingTTL))
	if err != nil {
		return fmt.Errorf("list stale pending forms: %w", err)
	}

	for _, rec := range stale {
		if err := ctx.Err(); err != nil {
			return err
		}

		if err := r.forms.DeletePending(ctx, rec.ID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				continue
			}
			res.Failed++
			r.log.ErrorContext(ctx, "remove stale pending form",
				slog.String("form_id", rec.ID.String()),
				slog.String("error", err.Error()))
			continue
		}

		res.PendingRemoved++
		r.log.WarnContext(ctx, "stale pending form removed, remote form may be orphaned",
			slog.String("form_id", rec.ID.String()),
			slog.String("owner_id", rec.OwnerID.String()),
			slog.String("title", rec.Title),
			slog.Time("created_at", rec.CreatedAt))
	}
	return nil
}
