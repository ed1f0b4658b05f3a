package intent

import (
	"context"
	"log/slog"

	"github.com/heartmarshall/formcraft-backend/internal/config"
	"github.com/heartmarshall/formcraft-backend/internal/domain"
)

// stage names this step in malformed-output errors.
const stage = "analyze"

const systemPrompt = `You are an expert Google Forms designer.
Analyze the user's request and suggest 4-6 relevant sections for a form.
Each suggestion must have: id (snake_case), title, description, and suggestedFields (array of 2-3 strings).
Return ONLY a valid JSON array. No markdown, no explanation.`

// textGenerator defines the text-generation backend needed by the intent service.
type textGenerator interface {
	Name() string
	Generate(ctx context.Context, req domain.GenerationRequest) (string, error)
}

// Service turns a free-text form request into section suggestions.
type Service struct {
	log *slog.Logger
	gen textGenerator
	cfg config.LLMConfig
}

// NewService creates a new intent service.
func NewService(logger *slog.Logger, gen textGenerator, cfg config.LLMConfig) *Service {
	return &Service{
		log: logger.With("service", "intent"),
		gen: gen,
		cfg: cfg,
	}
}
