package auth

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/formcraft-backend/internal/domain"
)

// Login exchanges a Google authorization code, creates or refreshes the user
// keyed by Google account id and issues a session token. The stored refresh
// token is replaced only when Google returned a new one.
func (s *Service) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	identity, err := s.oauth.VerifyCode(ctx, input.Code)
	if err != nil {
		return nil, fmt.Errorf("auth.Login oauth verification: %w", err)
	}
	if identity.Tokens.AccessToken == "" {
		return nil, fmt.Errorf("auth.Login: %w", domain.ErrCredentialMissing)
	}

	candidate := &domain.User{
		ID:        uuid.New(),
		GoogleID:  identity.GoogleID,
		Email:     strings.ToLower(strings.TrimSpace(identity.Email)),
		Name:      identity.Name,
		AvatarURL: identity.AvatarURL,
	}
	cred := domain.Credential{
		UserID:       candidate.ID,
		AccessToken:  identity.Tokens.AccessToken,
		RefreshToken: identity.Tokens.RefreshToken,
		Expiry:       identity.Tokens.Expiry,
	}

	user, err := s.users.UpsertGoogle(ctx, candidate, cred)
	if err != nil {
		return nil, fmt.Errorf("auth.Login upsert user: %w", err)
	}

	token, err := s.jwt.GenerateToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("auth.Login issue token: %w", err)
	}

	s.log.InfoContext(ctx, "user signed in",
		slog.String("user_id", user.ID.String()),
		slog.Bool("new_user", user.ID == candidate.ID),
		slog.Bool("refresh_token_granted", identity.Tokens.RefreshToken != ""))

	return &LoginResult{
		Token:     token,
		ExpiresAt: s.now().Add(s.jwt.TTL()),
		User:      user,
	}, nil
}
