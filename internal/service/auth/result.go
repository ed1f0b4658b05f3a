package auth

import (
	"time"

	"github.com/heartmarshall/formcraft-backend/internal/domain"
)

// LoginResult is returned by Login.
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	User      *domain.User
}
