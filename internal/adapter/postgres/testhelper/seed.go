package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/formcraft-backend/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeedUser creates a Google-authenticated user with a stored credential.
// Returns a filled domain.User.
func SeedUser(t *testing.T, pool *pgxpool.Pool) domain.User {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	now := time.Now().UTC().Truncate(time.Microsecond)
	user := domain.User{
		ID:        uuid.New(),
		GoogleID:  "google-" + suffix,
		Email:     "testuser-" + suffix + "@example.com",
		Name:      "Test User " + suffix,
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO users (id, google_id, email, name, access_token, refresh_token, token_expiry, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		user.ID, user.GoogleID, user.Email, user.Name,
		"access-"+suffix, "refresh-"+suffix, now.Add(time.Hour), user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedUser insert user: %v", err)
	}

	return user
}

// FormOption customizes a seeded form record.
type FormOption func(f *domain.FormRecord)

// WithExpiry sets the record's expiry date.
func WithExpiry(at time.Time) FormOption {
	return func(f *domain.FormRecord) { f.ExpiryDate = &at }
}

// WithMaxResponses sets the record's response limit and current count.
func WithMaxResponses(limit, count int) FormOption {
	return func(f *domain.FormRecord) {
		f.MaxResponses = &limit
		f.ResponseCount = count
	}
}

// Inactive marks the record as no longer accepting responses.
func Inactive() FormOption {
	return func(f *domain.FormRecord) { f.IsActive = false }
}

// Pending makes the record an unbound placeholder.
func Pending() FormOption {
	return func(f *domain.FormRecord) {
		f.State = domain.FormStatePending
		f.ProviderFormID = ""
		f.PublicURL = ""
		f.EditURL = ""
	}
}

// CreatedAt overrides the record's creation time.
func CreatedAt(at time.Time) FormOption {
	return func(f *domain.FormRecord) { f.CreatedAt = at }
}

// SeedForm creates a committed, active form record owned by ownerID.
func SeedForm(t *testing.T, pool *pgxpool.Pool, ownerID uuid.UUID, opts ...FormOption) domain.FormRecord {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	providerID := "gform-" + suffix
	form := domain.FormRecord{
		ID:             uuid.New(),
		OwnerID:        ownerID,
		ProviderFormID: providerID,
		Title:          "Form " + suffix,
		PublicURL:      "https://docs.google.com/forms/d/e/" + providerID + "/viewform",
		EditURL:        domain.EditURL(providerID),
		IsActive:       true,
		State:          domain.FormStateCommitted,
		CreatedAt:      time.Now().UTC().Truncate(time.Microsecond),
	}
	for _, opt := range opts {
		opt(&form)
	}

	var providerFormID *string
	if form.ProviderFormID != "" {
		providerFormID = &form.ProviderFormID
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO forms (id, owner_id, provider_form_id, title, public_url, edit_url,
		                    expiry_date, max_responses, response_count, is_active, state, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		form.ID, form.OwnerID, providerFormID, form.Title, form.PublicURL, form.EditURL,
		form.ExpiryDate, form.MaxResponses, form.ResponseCount, form.IsActive, string(form.State), form.CreatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedForm insert form: %v", err)
	}

	return form
}
