// Package credential loads and stores the Google tokens that provider calls
// are made with.
package credential

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/heartmarshall/formcraft-backend/internal/domain"
)

// stripes is the number of per-user write locks. Users hash onto a stripe.
const stripes = 64

// userRepo defines the credential storage needed by the credential service.
type userRepo interface {
	GetCredential(ctx context.Context, userID uuid.UUID) (domain.Credential, error)
	UpdateCredential(ctx context.Context, cred domain.Credential) (bool, error)
}

// Service reads credentials and serializes refreshed-token writes per user.
type Service struct {
	log   *slog.Logger
	users userRepo
	locks [stripes]sync.Mutex
}

// NewService creates a new credential service.
func NewService(logger *slog.Logger, users userRepo) *Service {
	return &Service{
		log:   logger.With("service", "credential"),
		users: users,
	}
}

// Load returns the owner's credential. An unknown owner yields domain.ErrNotFound,
// a credential without an access token domain.ErrCredentialMissing.
func (s *Service) Load(ctx context.Context, userID uuid.UUID) (domain.Credential, error) {
	cred, err := s.users.GetCredential(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Credential{}, domain.NewNotFoundError(domain.EntityUser, userID)
		}
		return domain.Credential{}, fmt.Errorf("load credential: %w", err)
	}
	if !cred.HasAccessToken() {
		return domain.Credential{}, fmt.Errorf("user %s: %w", userID, domain.ErrCredentialMissing)
	}
	return cred, nil
}

// Save stores refreshed tokens. Writes for one user never interleave, and a
// token older than the stored one is skipped.
func (s *Service) Save(ctx context.Context, cred domain.Credential) error {
	mu := s.lockFor(cred.UserID)
	mu.Lock()
	defer mu.Unlock()

	updated, err := s.users.UpdateCredential(ctx, cred)
	if err != nil {
		return &domain.PersistenceError{Op: "credential", Err: err}
	}
	if !updated {
		s.log.DebugContext(ctx, "stale credential not stored", slog.String("user_id", cred.UserID.String()))
		return nil
	}

	s.log.InfoContext(ctx, "refreshed credential stored", slog.String("user_id", cred.UserID.String()))
	return nil
}

func (s *Service) lockFor(userID uuid.UUID) *sync.Mutex {
	var h uint32
	for _, b := range userID {
		h = h*31 + uint32(b)
	}
	return &s.locks[h%stripes]
}
