package form

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/heartmarshall/formcraft-backend/internal/domain"
	"github.com/heartmarshall/formcraft-backend/internal/gforms"
	"github.com/heartmarshall/formcraft-backend/internal/service/structure"
	"github.com/heartmarshall/formcraft-backend/pkg/ctxutil"
)

// ExpandForm appends AI-generated questions after the form's current items.
// Existing items are never changed.
func (s *Service) ExpandForm(ctx context.Context, input ExpandInput) (*ExpandResult, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	rec, err := s.forms.GetByID(ctx, userID, input.FormID)
	if err != nil {
		return nil, fmt.Errorf("expand form: %w", err)
	}

	sess, err := s.session(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("expand form: %w", err)
	}
	defer s.syncCredential(ctx, sess)

	// The record does not track item count; read it live.
	live, err := sess.Get(ctx, rec.ProviderFormID)
	if err != nil {
		return nil, fmt.Errorf("expand form: %w", err)
	}

	title := live.Info.Title
	if strings.TrimSpace(title) == "" {
		title = rec.Title
	}

	generated, err := s.questions.Expand(ctx, structure.ExpandInput{FormTitle: title, Prompt: input.Prompt})
	if err != nil {
		return nil, fmt.Errorf("expand form: %w", err)
	}

	reqs := gforms.Renumber(generated, len(live.Items))
	if err := sess.BatchUpdate(ctx, rec.ProviderFormID, reqs); err != nil {
		return nil, fmt.Errorf("expand form: %w", err)
	}

	result := &ExpandResult{
		QuestionsAdded: gforms.CountCreateItems(reqs),
		Questions:      gforms.DraftsFromRequests(reqs),
	}

	s.log.InfoContext(ctx, "form expanded",
		slog.String("user_id", userID.String()),
		slog.String("form_id", rec.ID.String()),
		slog.Int("existing_items", len(live.Items)),
		slog.Int("questions_added", result.QuestionsAdded))

	return result, nil
}
