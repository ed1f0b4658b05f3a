package domain

import (
	"time"

	"github.com/google/uuid"
)

// User represents a Google-authenticated application user.
type User struct {
	ID        uuid.UUID
	GoogleID  string
	Email     string
	Name      string
	AvatarURL *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Credential is the Google OAuth token pair stored for a user.
// A zero Expiry means the expiry is unknown.
type Credential struct {
	UserID       uuid.UUID
	AccessToken  string
	RefreshToken string
	Expiry       time.Time
}

// HasAccessToken reports whether the credential can be used for a provider call.
func (c Credential) HasAccessToken() bool {
	return c.AccessToken != ""
}

// Expired reports whether the access token is known to be expired at now.
// leeway is subtracted from Expiry so tokens about to expire count as expired.
func (c Credential) Expired(now time.Time, leeway time.Duration) bool {
	if c.Expiry.IsZero() {
		return false
	}
	return !now.Before(c.Expiry.Add(-leeway))
}
