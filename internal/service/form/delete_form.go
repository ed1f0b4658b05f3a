package form

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/formcraft-backend/internal/domain"
	"github.com/heartmarshall/formcraft-backend/pkg/ctxutil"
)

// DeleteForm removes the local record only. Deleting an absent record
// returns domain.ErrNotFound.
func (s *Service) DeleteForm(ctx context.Context, input DeleteInput) error {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return err
	}

	if err := s.forms.Delete(ctx, userID, input.FormID); err != nil {
		return fmt.Errorf("delete form: %w", err)
	}

	s.log.InfoContext(ctx, "form deleted",
		slog.String("user_id", userID.String()),
		slog.String("form_id", input.FormID.String()))

	return nil
}

// BulkDeleteForms removes the owner's records among the given ids and
// returns how many were removed. Unknown ids are ignored.
func (s *Service) BulkDeleteForms(ctx context.Context, input BulkDeleteInput) (int, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return 0, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return 0, err
	}

	n, err := s.forms.BulkDelete(ctx, userID, uniqueIDs(input.IDs))
	if err != nil {
		return 0, fmt.Errorf("bulk delete forms: %w", err)
	}

	s.log.InfoContext(ctx, "forms bulk deleted",
		slog.String("user_id", userID.String()),
		slog.Int("requested", len(input.IDs)),
		slog.Int("deleted", n))

	return n, nil
}
