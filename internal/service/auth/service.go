package auth

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/formcraft-backend/internal/auth"
	"github.com/heartmarshall/formcraft-backend/internal/domain"
)

// userRepo defines the user repository interface needed by auth service.
type userRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	UpsertGoogle(ctx context.Context, u *domain.User, cred domain.Credential) (*domain.User, error)
}

// oauthVerifier defines the Google OAuth interface needed by auth service.
type oauthVerifier interface {
	AuthCodeURL(state string) string
	VerifyCode(ctx context.Context, code string) (*auth.OAuthIdentity, error)
}

// jwtManager defines the session token interface needed by auth service.
type jwtManager interface {
	GenerateToken(userID uuid.UUID) (string, error)
	ValidateToken(token string) (uuid.UUID, error)
	TTL() time.Duration
}

// Service implements Google sign-in and session token operations.
type Service struct {
	log   *slog.Logger
	users userRepo
	oauth oauthVerifier
	jwt   jwtManager
	now   func() time.Time
}

// NewService creates a new auth service instance.
func NewService(
	logger *slog.Logger,
	users userRepo,
	oauth oauthVerifier,
	jwt jwtManager,
) *Service {
	return &Service{
		log:   logger.With("service", "auth"),
		users: users,
		oauth: oauth,
		jwt:   jwt,
		now:   time.Now,
	}
}

// AuthURL returns the Google consent page URL carrying state.
func (s *Service) AuthURL(state string) string {
	return s.oauth.AuthCodeURL(state)
}
