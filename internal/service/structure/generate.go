package structure

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/heartmarshall/formcraft-backend/internal/domain"
	"github.com/heartmarshall/formcraft-backend/internal/gforms"
	"github.com/heartmarshall/formcraft-backend/internal/llmjson"
)

// Generate asks the model for questions covering the selected sections and
// returns one create-item operation per question, indexed from 0 in output order.
func (s *Service) Generate(ctx context.Context, input GenerateInput) ([]gforms.Request, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	titles, err := json.Marshal(input.titles())
	if err != nil {
		return nil, fmt.Errorf("encode section titles: %w", err)
	}
	user := fmt.Sprintf("Form topic: %q\nSections: %s\nGenerate 2-3 questions per section.",
		strings.TrimSpace(input.Prompt), titles)

	drafts, err := s.draft(ctx, stageGenerate, user)
	if err != nil {
		return nil, fmt.Errorf("generate questions: %w", err)
	}

	s.log.InfoContext(ctx, "questions generated",
		slog.Int("sections", len(input.Sections)),
		slog.Int("questions", len(drafts)))

	return toRequests(drafts, s.forms.GeneratedRequired), nil
}

// Expand asks the model for new questions extending a form titled FormTitle.
// Indices start at 0; the caller renumbers them against the live item count.
func (s *Service) Expand(ctx context.Context, input ExpandInput) ([]gforms.Request, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	topic := strings.TrimSpace(input.FormTitle)
	if topic == "" {
		topic = s.forms.DefaultTitle
	}
	user := fmt.Sprintf("Form topic: %q\nSections: [%q]\nGenerate 2-3 new questions for this existing form.",
		topic, strings.TrimSpace(input.Prompt))

	drafts, err := s.draft(ctx, stageExpand, user)
	if err != nil {
		return nil, fmt.Errorf("expand questions: %w", err)
	}

	s.log.InfoContext(ctx, "expansion questions generated", slog.Int("questions", len(drafts)))

	return toRequests(drafts, s.forms.ExpandRequired), nil
}

// draft performs one generation call and parses the question list.
func (s *Service) draft(ctx context.Context, stage, user string) ([]domain.QuestionDraft, error) {
	req := domain.GenerationRequest{
		Model: s.llm.Model,
		Messages: []domain.ChatMessage{
			{Role: domain.RoleSystem, Content: systemPrompt},
			{Role: domain.RoleUser, Content: user},
		},
		Temperature: s.llm.GenerateTemperature,
		MaxTokens:   s.llm.GenerateMaxTokens,
	}

	raw, err := s.gen.Generate(ctx, req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		s.log.ErrorContext(ctx, "question generation failed",
			slog.String("stage", stage),
			slog.String("backend", s.gen.Name()),
			slog.String("error", err.Error()))
		return nil, &domain.UpstreamError{Provider: s.gen.Name(), Err: err}
	}

	drafts, err := llmjson.Parse(stage, raw, func(ds []domain.QuestionDraft) error {
		if len(ds) == 0 {
			return errors.New("empty question list")
		}
		return nil
	})
	if err != nil {
		var malformed *domain.MalformedOutputError
		if errors.As(err, &malformed) {
			s.log.WarnContext(ctx, "malformed question list",
				slog.String("stage", stage),
				slog.String("reason", malformed.Reason),
				slog.String("raw", malformed.Raw))
		}
		return nil, err
	}

	for i := range drafts {
		drafts[i] = normalize(drafts[i])
	}
	return drafts, nil
}

// normalize trims text, drops blank options and settles the kind. Unknown kinds
// become short_answer. A choice question left without options does too, since
// the provider rejects an empty option list.
func normalize(d domain.QuestionDraft) domain.QuestionDraft {
	d.Title = strings.TrimSpace(d.Title)

	if !d.Kind.IsValid() {
		d.Kind = domain.QuestionKindShortAnswer
	}
	if !d.Kind.IsChoice() {
		d.Options = nil
		return d
	}

	opts := make([]string, 0, len(d.Options))
	seen := make(map[string]struct{}, len(d.Options))
	for _, o := range d.Options {
		o = strings.TrimSpace(o)
		if o == "" {
			continue
		}
		if _, dup := seen[o]; dup {
			continue
		}
		seen[o] = struct{}{}
		opts = append(opts, o)
		if len(opts) == maxOptions {
			break
		}
	}
	if len(opts) == 0 {
		d.Kind = domain.QuestionKindShortAnswer
		opts = nil
	}
	d.Options = opts
	return d
}

func toRequests(drafts []domain.QuestionDraft, required bool) []gforms.Request {
	reqs := make([]gforms.Request, 0, len(drafts))
	for i, d := range drafts {
		reqs = append(reqs, gforms.NewCreateQuestion(d, i, required))
	}
	return reqs
}
