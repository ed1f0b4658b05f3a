// Package form implements the FormRecord repository using PostgreSQL.
package form

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"

	postgres "github.com/heartmarshall/formcraft-backend/internal/adapter/postgres"
	"github.com/heartmarshall/formcraft-backend/internal/domain"
)

const table = "forms"

var columns = []string{
	"id", "owner_id", "provider_form_id", "title", "public_url", "edit_url",
	"expiry_date", "max_responses", "response_count", "is_active", "state", "created_at",
}

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// Repo provides form record persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new form repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

type row struct {
	ID             uuid.UUID  `db:"id"`
	OwnerID        uuid.UUID  `db:"owner_id"`
	ProviderFormID *string    `db:"provider_form_id"`
	Title          string     `db:"title"`
	PublicURL      string     `db:"public_url"`
	EditURL        string     `db:"edit_url"`
	ExpiryDate     *time.Time `db:"expiry_date"`
	MaxResponses   *int       `db:"max_responses"`
	ResponseCount  int        `db:"response_count"`
	IsActive       bool       `db:"is_active"`
	State          string     `db:"state"`
	CreatedAt      time.Time  `db:"created_at"`
}

func (r row) toDomain() domain.FormRecord {
	f := domain.FormRecord{
		ID:            r.ID,
		OwnerID:       r.OwnerID,
		Title:         r.Title,
		PublicURL:     r.PublicURL,
		EditURL:       r.EditURL,
		ExpiryDate:    r.ExpiryDate,
		MaxResponses:  r.MaxResponses,
		ResponseCount: r.ResponseCount,
		IsActive:      r.IsActive,
		State:         domain.FormState(r.State),
		CreatedAt:     r.CreatedAt,
	}
	if r.ProviderFormID != nil {
		f.ProviderFormID = *r.ProviderFormID
	}
	return f
}

func toDomainList(rows []row) []domain.FormRecord {
	out := make([]domain.FormRecord, len(rows))
	for i, r := range rows {
		out[i] = r.toDomain()
	}
	return out
}

func committed() squirrel.Eq {
	return squirrel.Eq{"state": string(domain.FormStateCommitted)}
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// CreatePending inserts a placeholder record for a form whose remote
// counterpart has not been created yet.
func (r *Repo) CreatePending(ctx context.Context, f *domain.FormRecord) (*domain.FormRecord, error) {
	query := psql.Insert(table).
		Columns("id", "owner_id", "title", "expiry_date", "max_responses", "is_active", "state", "created_at").
		Values(f.ID, f.OwnerID, f.Title, f.ExpiryDate, f.MaxResponses, true, string(domain.FormStatePending), f.CreatedAt).
		Suffix("RETURNING " + strings.Join(columns, ", "))

	return r.getOne(ctx, query, f.ID)
}

// Commit binds a pending record to its remote form. Returns domain.ErrNotFound
// if the record is gone or already committed.
func (r *Repo) Commit(ctx context.Context, id uuid.UUID, providerFormID, publicURL, editURL string) (*domain.FormRecord, error) {
	query := psql.Update(table).
		Set("provider_form_id", providerFormID).
		Set("public_url", publicURL).
		Set("edit_url", editURL).
		Set("state", string(domain.FormStateCommitted)).
		Where(squirrel.Eq{"id": id, "state": string(domain.FormStatePending)}).
		Suffix("RETURNING " + strings.Join(columns, ", "))

	return r.getOne(ctx, query, id)
}

// DeletePending removes a placeholder that was never committed.
func (r *Repo) DeletePending(ctx context.Context, id uuid.UUID) error {
	query := psql.Delete(table).
		Where(squirrel.Eq{"id": id, "state": string(domain.FormStatePending)})

	n, err := r.exec(ctx, query, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.NewNotFoundError(domain.EntityForm, id)
	}
	return nil
}

// Delete removes a committed record owned by ownerID. The remote form is left untouched.
func (r *Repo) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	query := psql.Delete(table).
		Where(squirrel.Eq{"id": id, "owner_id": ownerID}).
		Where(committed())

	n, err := r.exec(ctx, query, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.NewNotFoundError(domain.EntityForm, id)
	}
	return nil
}

// BulkDelete removes the committed records in ids owned by ownerID and
// returns how many were removed. Unknown ids are ignored.
func (r *Repo) BulkDelete(ctx context.Context, ownerID uuid.UUID, ids []uuid.UUID) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	query := psql.Delete(table).
		Where(squirrel.Eq{"id": ids, "owner_id": ownerID}).
		Where(committed())

	n, err := r.exec(ctx, query, ownerID)
	return int(n), err
}

// Deactivate sets is_active to false. The transition is one-way: an
// already inactive record is reported as domain.ErrNotFound.
func (r *Repo) Deactivate(ctx context.Context, id uuid.UUID) error {
	query := psql.Update(table).
		Set("is_active", false).
		Where(squirrel.Eq{"id": id, "is_active": true})

	n, err := r.exec(ctx, query, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.NewNotFoundError(domain.EntityForm, id)
	}
	return nil
}

// UpdateResponseCount stores the latest response count read from the provider.
func (r *Repo) UpdateResponseCount(ctx context.Context, id uuid.UUID, count int) error {
	query := psql.Update(table).
		Set("response_count", count).
		Where(squirrel.Eq{"id": id})

	n, err := r.exec(ctx, query, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.NewNotFoundError(domain.EntityForm, id)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByID returns a committed record by primary key.
// Returns domain.ErrNotFound if the record does not exist or belongs to another user.
func (r *Repo) GetByID(ctx context.Context, ownerID, id uuid.UUID) (*domain.FormRecord, error) {
	query := psql.Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id, "owner_id": ownerID}).
		Where(committed())

	return r.getOne(ctx, query, id)
}

// ListByOwner returns the committed records of ownerID, newest first.
func (r *Repo) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.FormRecord, error) {
	query := psql.Select(columns...).
		From(table).
		Where(squirrel.Eq{"owner_id": ownerID}).
		Where(committed()).
		OrderBy("created_at DESC", "id DESC")

	return r.list(ctx, query, "list forms")
}

// ListExpiredActive returns active committed records whose expiry is at or before now.
func (r *Repo) ListExpiredActive(ctx context.Context, now time.Time) ([]domain.FormRecord, error) {
	query := psql.Select(columns...).
		From(table).
		Where(squirrel.Eq{"is_active": true}).
		Where(committed()).
		Where(squirrel.LtOrEq{"expiry_date": now}).
		OrderBy("expiry_date ASC")

	return r.list(ctx, query, "list expired forms")
}

// ListStalePending returns placeholders created before cutoff.
func (r *Repo) ListStalePending(ctx context.Context, cutoff time.Time) ([]domain.FormRecord, error) {
	query := psql.Select(columns...).
		From(table).
		Where(squirrel.Eq{"state": string(domain.FormStatePending)}).
		Where(squirrel.Lt{"created_at": cutoff}).
		OrderBy("created_at ASC")

	return r.list(ctx, query, "list stale pending forms")
}

// ListActiveWithMaxResponses returns active committed records that carry a response limit.
func (r *Repo) ListActiveWithMaxResponses(ctx context.Context) ([]domain.FormRecord, error) {
	query := psql.Select(columns...).
		From(table).
		Where(squirrel.Eq{"is_active": true}).
		Where(committed()).
		Where(squirrel.NotEq{"max_responses": nil})

	return r.list(ctx, query, "list limited forms")
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func (r *Repo) getOne(ctx context.Context, query squirrel.Sqlizer, id uuid.UUID) (*domain.FormRecord, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build form query: %w", err)
	}

	var dst row
	if err := pgxscan.Get(ctx, r.db, &dst, sql, args...); err != nil {
		return nil, postgres.MapError(err, domain.EntityForm, id)
	}

	f := dst.toDomain()
	return &f, nil
}

func (r *Repo) list(ctx context.Context, query squirrel.Sqlizer, op string) ([]domain.FormRecord, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build form query: %w", err)
	}

	var rows []row
	if err := pgxscan.Select(ctx, r.db, &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return toDomainList(rows), nil
}

func (r *Repo) exec(ctx context.Context, query squirrel.Sqlizer, id uuid.UUID) (int64, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build form query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return 0, postgres.MapError(err, domain.EntityForm, id)
	}
	return tag.RowsAffected(), nil
}
