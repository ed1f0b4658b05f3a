package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/heartmarshall/formcraft-backend/internal/domain"
)

// DefaultGroqURL is the OpenAI-compatible chat completions endpoint.
const DefaultGroqURL = "https://api.groq.com/openai/v1/chat/completions"

// DefaultGroqModel is used when no model is configured.
const DefaultGroqModel = "llama-3.3-70b-versatile"

// maxErrorBody caps how much of a failed response body is kept in the error.
const maxErrorBody = 2048

var errEmptyCompletion = errors.New("empty completion")

// GroqClient calls the Groq chat completions API.
type GroqClient struct {
	http    *http.Client
	apiKey  string
	model   string
	baseURL string
	log     *slog.Logger
}

// NewGroqClient creates a Groq client. Empty model and baseURL fall back to defaults.
func NewGroqClient(apiKey, model, baseURL string, timeout time.Duration, logger *slog.Logger) *GroqClient {
	if model == "" {
		model = DefaultGroqModel
	}
	if baseURL == "" {
		baseURL = DefaultGroqURL
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &GroqClient{
		http:    &http.Client{Timeout: timeout},
		apiKey:  apiKey,
		model:   model,
		baseURL: baseURL,
		log:     logger.With("adapter", "groq"),
	}
}

func (g *GroqClient) Name() string { return "groq:" + g.model }

type groqChatReq struct {
	Model       string               `json:"model"`
	Messages    []domain.ChatMessage `json:"messages"`
	Temperature float64              `json:"temperature"`
	MaxTokens   int                  `json:"max_tokens,omitempty"`
}

type groqChatResp struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Generate sends the messages as-is and returns the first choice's content.
func (g *GroqClient) Generate(ctx context.Context, req domain.GenerationRequest) (string, error) {
	model := req.Model
	if model == "" {
		model = g.model
	}

	b, err := json.Marshal(groqChatReq{
		Model:       model,
		Messages:    req.Messages,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	})
	if err != nil {
		return "", NewPermanentError(fmt.Errorf("groq: marshal request: %w", err))
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL, bytes.NewReader(b))
	if err != nil {
		return "", NewPermanentError(fmt.Errorf("groq: build request: %w", err))
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if g.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+g.apiKey)
	}

	start := time.Now()
	resp, err := g.http.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("groq: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		err := fmt.Errorf("groq: unexpected status %s: %s", resp.Status, string(body))
		// 429 and 5xx may clear up; other client errors will not.
		if resp.StatusCode >= 400 && resp.StatusCode < 500 && resp.StatusCode != http.StatusTooManyRequests {
			return "", NewPermanentError(err)
		}
		return "", err
	}

	var out groqChatResp
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("groq: decode response: %w", err)
	}
	if len(out.Choices) == 0 || out.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("groq: %w", errEmptyCompletion)
	}

	g.log.DebugContext(ctx, "groq completion",
		slog.String("model", model),
		slog.Duration("took", time.Since(start)),
	)

	return out.Choices[0].Message.Content, nil
}
