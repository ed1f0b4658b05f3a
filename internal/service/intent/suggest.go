package intent

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/heartmarshall/formcraft-backend/internal/domain"
	"github.com/heartmarshall/formcraft-backend/internal/llmjson"
)

// Suggest asks the model for form sections matching the prompt.
// The result keeps the model's order. Section ids are unique.
func (s *Service) Suggest(ctx context.Context, input SuggestInput) ([]domain.SectionSuggestion, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	req := domain.GenerationRequest{
		Model: s.cfg.Model,
		Messages: []domain.ChatMessage{
			{Role: domain.RoleSystem, Content: systemPrompt},
			{Role: domain.RoleUser, Content: strings.TrimSpace(input.Prompt)},
		},
		Temperature: s.cfg.AnalyzeTemperature,
		MaxTokens:   s.cfg.AnalyzeMaxTokens,
	}

	raw, err := s.gen.Generate(ctx, req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		s.log.ErrorContext(ctx, "section suggestion failed",
			slog.String("backend", s.gen.Name()),
			slog.String("error", err.Error()))
		return nil, &domain.UpstreamError{Provider: s.gen.Name(), Err: err}
	}

	sections, err := llmjson.Parse(stage, raw, validateSections)
	if err != nil {
		var malformed *domain.MalformedOutputError
		if errors.As(err, &malformed) {
			s.log.WarnContext(ctx, "malformed section suggestions",
				slog.String("reason", malformed.Reason),
				slog.String("raw", malformed.Raw))
		}
		return nil, fmt.Errorf("suggest sections: %w", err)
	}

	for i := range sections {
		sections[i].ID = strings.TrimSpace(sections[i].ID)
		sections[i].Title = strings.TrimSpace(sections[i].Title)
		sections[i].Description = strings.TrimSpace(sections[i].Description)
	}

	s.log.InfoContext(ctx, "sections suggested", slog.Int("count", len(sections)))
	return sections, nil
}

func validateSections(sections []domain.SectionSuggestion) error {
	if len(sections) == 0 {
		return errors.New("empty section list")
	}
	seen := make(map[string]struct{}, len(sections))
	for i, sec := range sections {
		id := strings.TrimSpace(sec.ID)
		if id == "" {
			return fmt.Errorf("section %d: missing id", i)
		}
		if strings.TrimSpace(sec.Title) == "" {
			return fmt.Errorf("section %q: missing title", id)
		}
		if _, dup := seen[id]; dup {
			return fmt.Errorf("duplicate section id %q", id)
		}
		seen[id] = struct{}{}
	}
	return nil
}
