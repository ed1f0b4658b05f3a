package form

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/formcraft-backend/internal/domain"
	"github.com/heartmarshall/formcraft-backend/internal/gforms"
	"github.com/heartmarshall/formcraft-backend/pkg/ctxutil"
)

// DuplicateForm copies a form's description and every item into a new provider
// form and records it. The copy keeps the source's expiry date and response limit.
func (s *Service) DuplicateForm(ctx context.Context, input DuplicateInput) (*domain.FormRecord, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	src, err := s.forms.GetByID(ctx, userID, input.FormID)
	if err != nil {
		return nil, fmt.Errorf("duplicate form: %w", err)
	}

	sess, err := s.session(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("duplicate form: %w", err)
	}
	defer s.syncCredential(ctx, sess)

	remote, err := sess.Get(ctx, src.ProviderFormID)
	if err != nil {
		return nil, fmt.Errorf("duplicate form: %w", err)
	}

	pending, err := s.forms.CreatePending(ctx, s.newPending(userID, CopyTitlePrefix+src.Title, src.ExpiryDate, src.MaxResponses))
	if err != nil {
		return nil, &domain.PersistenceError{Op: "duplicate form", Err: err}
	}

	rec, err := s.provision(ctx, sess, pending, copyBatch(remote))
	if err != nil {
		return nil, fmt.Errorf("duplicate form: %w", err)
	}

	s.log.InfoContext(ctx, "form duplicated",
		slog.String("user_id", userID.String()),
		slog.String("source_form_id", src.ID.String()),
		slog.String("form_id", rec.ID.String()),
		slog.Int("items", len(remote.Items)))

	return rec, nil
}

// copyBatch recreates the source description and items in their original order.
func copyBatch(src *gforms.Form) []gforms.Request {
	reqs := make([]gforms.Request, 0, len(src.Items)+1)
	if src.Info.Description != "" {
		reqs = append(reqs, gforms.NewSetDescription(src.Info.Description))
	}

	index := 0
	for _, it := range src.Items {
		if it.Payload.IsZero() {
			continue
		}
		reqs = append(reqs, gforms.Request{CreateItem: &gforms.CreateItem{
			Item:     it.CopyForCreate(),
			Location: gforms.Location{Index: index},
		}})
		index++
	}
	return reqs
}
