package auth

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/heartmarshall/formcraft-backend/internal/domain"
	"github.com/heartmarshall/formcraft-backend/pkg/ctxutil"
)

// Profile returns the authenticated user.
func (s *Service) Profile(ctx context.Context) (*domain.User, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("auth.Profile: %w", err)
	}
	return user, nil
}

// ValidateToken checks a session token and returns its user id.
func (s *Service) ValidateToken(_ context.Context, token string) (uuid.UUID, error) {
	userID, err := s.jwt.ValidateToken(token)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %v", domain.ErrUnauthorized, err)
	}
	return userID, nil
}
