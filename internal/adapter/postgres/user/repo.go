// Package user implements the User and Google credential repository using PostgreSQL.
package user

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	postgres "github.com/heartmarshall/formcraft-backend/internal/adapter/postgres"
	"github.com/heartmarshall/formcraft-backend/internal/domain"
)

// Repo provides user and credential persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new user repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

const userColumns = `id, google_id, email, name, avatar_url, created_at, updated_at`

const getUserByIDSQL = `SELECT ` + userColumns + ` FROM users WHERE id = $1`

const getUserByGoogleIDSQL = `SELECT ` + userColumns + ` FROM users WHERE google_id = $1`

// The access token is always replaced; the refresh token only when Google sent one.
const upsertGoogleUserSQL = `
INSERT INTO users (id, google_id, email, name, avatar_url, access_token, refresh_token, token_expiry, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now(), now())
ON CONFLICT (google_id) DO UPDATE SET
    email         = EXCLUDED.email,
    name          = EXCLUDED.name,
    avatar_url    = EXCLUDED.avatar_url,
    access_token  = EXCLUDED.access_token,
    refresh_token = CASE WHEN EXCLUDED.refresh_token <> '' THEN EXCLUDED.refresh_token ELSE users.refresh_token END,
    token_expiry  = EXCLUDED.token_expiry,
    updated_at    = now()
RETURNING ` + userColumns

const getCredentialSQL = `SELECT access_token, refresh_token, token_expiry FROM users WHERE id = $1`

// A write whose expiry is older than the stored one is dropped.
const updateCredentialSQL = `
UPDATE users SET
    access_token  = $2,
    refresh_token = CASE WHEN $3::text <> '' THEN $3::text ELSE refresh_token END,
    token_expiry  = $4,
    updated_at    = now()
WHERE id = $1
  AND (token_expiry IS NULL OR $4::timestamptz IS NULL OR token_expiry <= $4::timestamptz)`

// ---------------------------------------------------------------------------
// User operations
// ---------------------------------------------------------------------------

// GetByID returns a user by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	row := r.db.QueryRow(ctx, getUserByIDSQL, id)

	u, err := scanUser(row)
	if err != nil {
		return nil, postgres.MapError(err, domain.EntityUser, id)
	}
	return u, nil
}

// GetByGoogleID returns a user by Google account id.
func (r *Repo) GetByGoogleID(ctx context.Context, googleID string) (*domain.User, error) {
	row := r.db.QueryRow(ctx, getUserByGoogleIDSQL, googleID)

	u, err := scanUser(row)
	if err != nil {
		return nil, postgres.MapError(err, domain.EntityUser, uuid.Nil)
	}
	return u, nil
}

// UpsertGoogle creates the user identified by u.GoogleID or refreshes its
// profile and credential. u.ID is used only when the user is new.
func (r *Repo) UpsertGoogle(ctx context.Context, u *domain.User, cred domain.Credential) (*domain.User, error) {
	row := r.db.QueryRow(ctx, upsertGoogleUserSQL,
		u.ID,
		u.GoogleID,
		u.Email,
		u.Name,
		ptrStringToPgText(u.AvatarURL),
		cred.AccessToken,
		cred.RefreshToken,
		timeToPgTimestamptz(cred.Expiry),
	)

	result, err := scanUser(row)
	if err != nil {
		return nil, postgres.MapError(err, domain.EntityUser, u.ID)
	}
	return result, nil
}

// ---------------------------------------------------------------------------
// Credential operations
// ---------------------------------------------------------------------------

// GetCredential returns the stored Google tokens of a user.
func (r *Repo) GetCredential(ctx context.Context, userID uuid.UUID) (domain.Credential, error) {
	var (
		cred   = domain.Credential{UserID: userID}
		expiry pgtype.Timestamptz
	)

	err := r.db.
		QueryRow(ctx, getCredentialSQL, userID).
		Scan(&cred.AccessToken, &cred.RefreshToken, &expiry)
	if err != nil {
		return domain.Credential{}, postgres.MapError(err, domain.EntityCredential, userID)
	}

	cred.Expiry = pgTimestamptzToTime(expiry)
	return cred, nil
}

// UpdateCredential stores refreshed tokens. It reports false, without error,
// when the stored token is newer than cred or the user no longer exists.
func (r *Repo) UpdateCredential(ctx context.Context, cred domain.Credential) (bool, error) {
	tag, err := r.db.Exec(ctx, updateCredentialSQL,
		cred.UserID,
		cred.AccessToken,
		cred.RefreshToken,
		timeToPgTimestamptz(cred.Expiry),
	)
	if err != nil {
		return false, postgres.MapError(err, domain.EntityCredential, cred.UserID)
	}
	return tag.RowsAffected() > 0, nil
}

// ---------------------------------------------------------------------------
// Mapping helpers
// ---------------------------------------------------------------------------

func scanUser(row pgx.Row) (*domain.User, error) {
	var (
		u      domain.User
		avatar pgtype.Text
	)
	if err := row.Scan(&u.ID, &u.GoogleID, &u.Email, &u.Name, &avatar, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, fmt.Errorf("scan user: %w", err)
	}
	u.AvatarURL = pgTextToPtr(avatar)
	return &u, nil
}

// ---------------------------------------------------------------------------
// pgtype helpers
// ---------------------------------------------------------------------------

// pgTextToPtr returns a *string (nil when NULL).
func pgTextToPtr(t pgtype.Text) *string {
	if t.Valid {
		return &t.String
	}
	return nil
}

// ptrStringToPgText converts a *string to pgtype.Text (nil → NULL).
func ptrStringToPgText(s *string) pgtype.Text {
	if s == nil {
		return pgtype.Text{}
	}
	return pgtype.Text{String: *s, Valid: true}
}

// timeToPgTimestamptz maps the zero time to NULL.
func timeToPgTimestamptz(t time.Time) pgtype.Timestamptz {
	if t.IsZero() {
		return pgtype.Timestamptz{}
	}
	return pgtype.Timestamptz{Time: t, Valid: true}
}

func pgTimestamptzToTime(t pgtype.Timestamptz) time.Time {
	if t.Valid {
		return t.Time
	}
	return time.Time{}
}
