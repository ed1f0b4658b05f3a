package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/formcraft-backend/internal/domain"
	"github.com/heartmarshall/formcraft-backend/internal/gforms"
	"github.com/heartmarshall/formcraft-backend/internal/service/intent"
	"github.com/heartmarshall/formcraft-backend/internal/service/structure"
)

type intentService interface {
	Suggest(ctx context.Context, input intent.SuggestInput) ([]domain.SectionSuggestion, error)
}

type structureService interface {
	Generate(ctx context.Context, input structure.GenerateInput) ([]gforms.Request, error)
}

// AIHandler serves the prompt analysis and question generation endpoints.
type AIHandler struct {
	intent    intentService
	structure structureService
	log       *slog.Logger
}

// NewAIHandler creates an AIHandler.
func NewAIHandler(intent intentService, structure structureService, logger *slog.Logger) *AIHandler {
	return &AIHandler{
		intent:    intent,
		structure: structure,
		log:       logger.With("handler", "ai"),
	}
}

type analyzeRequest struct {
	Prompt string `json:"prompt"`
}

type generateRequest struct {
	Prompt   string              `json:"prompt"`
	Sections []domain.SectionRef `json:"sections"`
}

type generateResponse struct {
	Requests []gforms.Request `json:"requests"`
}

// Analyze handles POST /api/ai/analyze and returns the suggested sections.
func (h *AIHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION", err.Error())
		return
	}

	sections, err := h.intent.Suggest(r.Context(), intent.SuggestInput{Prompt: req.Prompt})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, sections)
}

// Generate handles POST /api/ai/generate and returns provider create requests.
func (h *AIHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION", err.Error())
		return
	}

	reqs, err := h.structure.Generate(r.Context(), structure.GenerateInput{
		Prompt:   req.Prompt,
		Sections: req.Sections,
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, generateResponse{Requests: reqs})
}
