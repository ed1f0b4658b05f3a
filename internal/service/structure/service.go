package structure

import (
	"context"
	"log/slog"

	"github.com/heartmarshall/formcraft-backend/internal/config"
	"github.com/heartmarshall/formcraft-backend/internal/domain"
)

const (
	stageGenerate = "generate"
	stageExpand   = "expand"
)

const systemPrompt = `You are a form designer. Return a compact JSON array of questions.
Each question: {"title":"...", "type":"short_answer|paragraph|multiple_choice|checkbox|dropdown|scale", "options":["opt1","opt2"]}
- Use "options" only for multiple_choice, checkbox, dropdown (2-4 options each).
- Generate exactly 2-3 questions per section.
- Return ONLY the raw JSON array, no markdown, no explanation.`

// maxOptions caps the options kept per choice question.
const maxOptions = 4

// textGenerator defines the text-generation backend needed by the structure service.
type textGenerator interface {
	Name() string
	Generate(ctx context.Context, req domain.GenerationRequest) (string, error)
}

// Service turns curated sections into provider question-creation operations.
type Service struct {
	log   *slog.Logger
	gen   textGenerator
	llm   config.LLMConfig
	forms config.FormsConfig
}

// NewService creates a new structure service.
func NewService(logger *slog.Logger, gen textGenerator, llm config.LLMConfig, forms config.FormsConfig) *Service {
	return &Service{
		log:   logger.With("service", "structure"),
		gen:   gen,
		llm:   llm,
		forms: forms,
	}
}
