// Package lifecycle keeps local form records consistent with the passage of
// time: expired forms are closed, limited forms are counted and abandoned
// placeholders are removed.
package lifecycle

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/formcraft-backend/internal/config"
	"github.com/heartmarshall/formcraft-backend/internal/domain"
)

// ErrSweepInProgress is returned by Sweep when another sweep has not finished.
var ErrSweepInProgress = errors.New("sweep already in progress")

type formRepo interface {
	ListExpiredActive(ctx context.Context, now time.Time) ([]domain.FormRecord, error)
	ListActiveWithMaxResponses(ctx context.Context) ([]domain.FormRecord, error)
	ListStalePending(ctx context.Context, cutoff time.Time) ([]domain.FormRecord, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
	UpdateResponseCount(ctx context.Context, id uuid.UUID, count int) error
	DeletePending(ctx context.Context, id uuid.UUID) error
}

type credentialStore interface {
	Load(ctx context.Context, userID uuid.UUID) (domain.Credential, error)
	Save(ctx context.Context, cred domain.Credential) error
}

// Session is the subset of provider calls a sweep makes for one owner.
type Session interface {
	CloseResponses(ctx context.Context, formID string) error
	CountResponses(ctx context.Context, formID string) (int, error)
	Rotated() (domain.Credential, bool)
}

// SessionOpener binds a provider session to a credential.
type SessionOpener func(cred domain.Credential) Session

// SweepResult summarizes one sweep.
type SweepResult struct {
	Expired        int
	Deactivated    int
	CloseFailed    int
	LimitReached   int
	PendingRemoved int
	Failed         int
}

// Reconciler runs lifecycle sweeps over the persisted form records.
type Reconciler struct {
	log   *slog.Logger
	forms formRepo
	creds credentialStore
	open  SessionOpener
	cfg   config.ReconcilerConfig
	now   func() time.Time

	running atomic.Bool
}

// NewReconciler creates a new lifecycle reconciler.
func NewReconciler(
	logger *slog.Logger,
	forms formRepo,
	creds credentialStore,
	open SessionOpener,
	cfg config.ReconcilerConfig,
) *Reconciler {
	return &Reconciler{
		log:   logger.With("job", "lifecycle"),
		forms: forms,
		creds: creds,
		open:  open,
		cfg:   cfg,
		now:   time.Now,
	}
}
