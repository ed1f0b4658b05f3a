package llm

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	genai "google.golang.org/genai"

	"github.com/heartmarshall/formcraft-backend/internal/domain"
)

// DefaultGeminiModel is used when no model is configured.
const DefaultGeminiModel = "gemini-2.0-flash"

// GeminiClient is a thin wrapper around the genai client.
type GeminiClient struct {
	cli   *genai.Client
	model string
	log   *slog.Logger
}

// NewGeminiClient creates a Gemini API client. baseURL is optional.
func NewGeminiClient(ctx context.Context, apiKey, model, baseURL string, logger *slog.Logger) (*GeminiClient, error) {
	if model == "" {
		model = DefaultGeminiModel
	}

	cfg := &genai.ClientConfig{APIKey: apiKey, Backend: genai.BackendGeminiAPI}
	if baseURL != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: baseURL}
	}

	cli, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("gemini: create client: %w", err)
	}
	return &GeminiClient{cli: cli, model: model, log: logger.With("adapter", "gemini")}, nil
}

func (g *GeminiClient) Name() string { return "gemini:" + g.model }

// Generate maps system messages to the system instruction and the rest to contents.
func (g *GeminiClient) Generate(ctx context.Context, req domain.GenerationRequest) (string, error) {
	model := req.Model
	if model == "" {
		model = g.model
	}

	contents := make([]*genai.Content, 0, len(req.Messages))
	for _, m := range req.Conversation() {
		role := genai.Role(genai.RoleUser)
		if m.Role == "assistant" {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(m.Content, role))
	}

	cfg := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(float32(req.Temperature)),
		MaxOutputTokens: int32(req.MaxTokens),
	}
	if sys := req.SystemPrompt(); sys != "" {
		cfg.SystemInstruction = genai.NewContentFromText(sys, genai.RoleUser)
	}

	resp, err := g.cli.Models.GenerateContent(ctx, model, contents, cfg)
	if err != nil {
		return "", fmt.Errorf("gemini: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini: %w", errEmptyCompletion)
	}

	var sb strings.Builder
	for _, p := range resp.Candidates[0].Content.Parts {
		sb.WriteString(p.Text)
	}
	return sb.String(), nil
}
