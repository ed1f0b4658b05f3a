package form

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/heartmarshall/formcraft-backend/internal/domain"
	"github.com/heartmarshall/formcraft-backend/internal/gforms"
	"github.com/heartmarshall/formcraft-backend/pkg/ctxutil"
)

// CreateForm creates a provider form with the given questions and records it
// for the authenticated owner.
func (s *Service) CreateForm(ctx context.Context, input CreateInput) (*domain.FormRecord, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	expiry, err := parseExpiry(input.Config.ExpiryDate, s.location())
	if err != nil {
		return nil, domain.NewValidationError("config.expiryDate", "must be YYYY-MM-DD or RFC3339")
	}

	title := strings.TrimSpace(input.Title)
	if title == "" {
		title = s.cfg.DefaultTitle
	}

	sess, err := s.session(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("create form: %w", err)
	}
	defer s.syncCredential(ctx, sess)

	pending, err := s.forms.CreatePending(ctx, s.newPending(userID, title, expiry, input.Config.MaxResponses))
	if err != nil {
		return nil, &domain.PersistenceError{Op: "create form", Err: err}
	}

	rec, err := s.provision(ctx, sess, pending, createBatch(input.Description, input.Requests))
	if err != nil {
		return nil, fmt.Errorf("create form: %w", err)
	}

	s.log.InfoContext(ctx, "form created",
		slog.String("user_id", userID.String()),
		slog.String("form_id", rec.ID.String()),
		slog.String("provider_form_id", rec.ProviderFormID),
		slog.Int("questions", gforms.CountCreateItems(input.Requests)))

	return rec, nil
}

// createBatch puts the description first and renumbers the questions from 0,
// since the description takes no position.
func createBatch(description string, questions []gforms.Request) []gforms.Request {
	reqs := make([]gforms.Request, 0, len(questions)+1)
	if d := strings.TrimSpace(description); d != "" {
		reqs = append(reqs, gforms.NewSetDescription(d))
	}
	return append(reqs, gforms.Renumber(questions, 0)...)
}

func (s *Service) location() *time.Location {
	if s.cfg.ExpiryLocation != nil {
		return s.cfg.ExpiryLocation
	}
	return time.UTC
}
