package form

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/formcraft-backend/internal/config"
	"github.com/heartmarshall/formcraft-backend/internal/domain"
	"github.com/heartmarshall/formcraft-backend/internal/gforms"
	"github.com/heartmarshall/formcraft-backend/internal/service/structure"
)

// CopyTitlePrefix is prepended to the title of a duplicated form.
const CopyTitlePrefix = "Copy of "

type formRepo interface {
	CreatePending(ctx context.Context, f *domain.FormRecord) (*domain.FormRecord, error)
	Commit(ctx context.Context, id uuid.UUID, providerFormID, publicURL, editURL string) (*domain.FormRecord, error)
	DeletePending(ctx context.Context, id uuid.UUID) error
	GetByID(ctx context.Context, ownerID, id uuid.UUID) (*domain.FormRecord, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.FormRecord, error)
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
	BulkDelete(ctx context.Context, ownerID uuid.UUID, ids []uuid.UUID) (int, error)
}

type credentialStore interface {
	Load(ctx context.Context, userID uuid.UUID) (domain.Credential, error)
	Save(ctx context.Context, cred domain.Credential) error
}

type questionGenerator interface {
	Expand(ctx context.Context, input structure.ExpandInput) ([]gforms.Request, error)
}

// Session is a sequence of provider calls made with one user's credential.
type Session interface {
	Create(ctx context.Context, title string) (*gforms.Form, error)
	BatchUpdate(ctx context.Context, formID string, reqs []gforms.Request) error
	Get(ctx context.Context, formID string) (*gforms.Form, error)
	Rotated() (domain.Credential, bool)
}

// SessionOpener binds a provider session to a credential.
type SessionOpener func(cred domain.Credential) Session

// Service provisions provider forms and keeps their local records.
type Service struct {
	log       *slog.Logger
	forms     formRepo
	creds     credentialStore
	open      SessionOpener
	questions questionGenerator
	cfg       config.FormsConfig
	now       func() time.Time
}

// NewService creates a new form service.
func NewService(
	logger *slog.Logger,
	forms formRepo,
	creds credentialStore,
	open SessionOpener,
	questions questionGenerator,
	cfg config.FormsConfig,
) *Service {
	return &Service{
		log:       logger.With("service", "form"),
		forms:     forms,
		creds:     creds,
		open:      open,
		questions: questions,
		cfg:       cfg,
		now:       time.Now,
	}
}

// session loads the owner's credential and opens a provider session with it.
func (s *Service) session(ctx context.Context, ownerID uuid.UUID) (Session, error) {
	cred, err := s.creds.Load(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return s.open(cred), nil
}

// syncCredential stores tokens the session refreshed. A failed write is
// logged and does not change the operation's result.
func (s *Service) syncCredential(ctx context.Context, sess Session) {
	cred, rotated := sess.Rotated()
	if !rotated {
		return
	}
	if err := s.creds.Save(context.WithoutCancel(ctx), cred); err != nil {
		s.log.ErrorContext(ctx, "store refreshed credential",
			slog.String("user_id", cred.UserID.String()),
			slog.String("error", err.Error()))
	}
}

// discardPending removes a placeholder after a failed remote step.
func (s *Service) discardPending(ctx context.Context, id uuid.UUID) {
	if err := s.forms.DeletePending(context.WithoutCancel(ctx), id); err != nil {
		s.log.ErrorContext(ctx, "remove pending form",
			slog.String("form_id", id.String()),
			slog.String("error", err.Error()))
	}
}

// provision creates the remote form, applies reqs and promotes the pending
// record. The placeholder is removed if any remote step fails. An empty batch
// is not submitted.
func (s *Service) provision(ctx context.Context, sess Session, pending *domain.FormRecord, reqs []gforms.Request) (*domain.FormRecord, error) {
	remote, err := sess.Create(ctx, pending.Title)
	if err != nil {
		s.discardPending(ctx, pending.ID)
		return nil, err
	}

	if len(reqs) > 0 {
		if err := sess.BatchUpdate(ctx, remote.FormID, reqs); err != nil {
			s.discardPending(ctx, pending.ID)
			s.log.WarnContext(ctx, "remote form left without local record",
				slog.String("provider_form_id", remote.FormID),
				slog.String("error", err.Error()))
			return nil, err
		}
	}

	rec, err := s.forms.Commit(ctx, pending.ID, remote.FormID, remote.ResponderURI, domain.EditURL(remote.FormID))
	if err != nil {
		s.log.ErrorContext(ctx, "commit form record",
			slog.String("form_id", pending.ID.String()),
			slog.String("provider_form_id", remote.FormID),
			slog.String("error", err.Error()))
		return nil, &domain.PersistenceError{Op: "commit form", Err: err}
	}
	return rec, nil
}

func (s *Service) newPending(ownerID uuid.UUID, title string, expiry *time.Time, maxResponses *int) *domain.FormRecord {
	return &domain.FormRecord{
		ID:           uuid.New(),
		OwnerID:      ownerID,
		Title:        title,
		ExpiryDate:   expiry,
		MaxResponses: maxResponses,
		IsActive:     true,
		State:        domain.FormStatePending,
		CreatedAt:    s.now(),
	}
}
