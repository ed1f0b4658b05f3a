package form

import (
	"context"
	"fmt"

	"github.com/heartmarshall/formcraft-backend/internal/domain"
	"github.com/heartmarshall/formcraft-backend/pkg/ctxutil"
)

// ListForms returns the owner's forms, newest first, with expiry applied to
// the active flag at read time.
func (s *Service) ListForms(ctx context.Context) ([]FormView, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	records, err := s.forms.ListByOwner(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list forms: %w", err)
	}

	now := s.now()
	views := make([]FormView, 0, len(records))
	for _, rec := range records {
		views = append(views, newFormView(rec, now))
	}
	return views, nil
}
