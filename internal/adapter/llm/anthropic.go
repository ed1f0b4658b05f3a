package llm

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/heartmarshall/formcraft-backend/internal/domain"
)

// DefaultAnthropicModel is used when no model is configured.
const DefaultAnthropicModel = "claude-3-5-haiku-latest"

// AnthropicClient calls the Messages API.
type AnthropicClient struct {
	cli   anthropic.Client
	model string
	log   *slog.Logger
}

// NewAnthropicClient creates a client from an API key. baseURL is optional.
func NewAnthropicClient(apiKey, model, baseURL string, logger *slog.Logger) *AnthropicClient {
	if model == "" {
		model = DefaultAnthropicModel
	}
	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	return &AnthropicClient{
		cli:   anthropic.NewClient(opts...),
		model: model,
		log:   logger.With("adapter", "anthropic"),
	}
}

func (a *AnthropicClient) Name() string { return "anthropic:" + a.model }

// Generate sends system messages as the system prompt and returns the text blocks joined.
func (a *AnthropicClient) Generate(ctx context.Context, req domain.GenerationRequest) (string, error) {
	model := req.Model
	if model == "" {
		model = a.model
	}

	msgs := make([]anthropic.MessageParam, 0, len(req.Messages))
	for _, m := range req.Conversation() {
		block := anthropic.NewTextBlock(m.Content)
		if m.Role == "assistant" {
			msgs = append(msgs, anthropic.NewAssistantMessage(block))
			continue
		}
		msgs = append(msgs, anthropic.NewUserMessage(block))
	}

	params := anthropic.MessageNewParams{
		Model:       anthropic.Model(model),
		MaxTokens:   int64(req.MaxTokens),
		Messages:    msgs,
		Temperature: anthropic.Float(req.Temperature),
	}
	if sys := req.SystemPrompt(); sys != "" {
		params.System = []anthropic.TextBlockParam{{Text: sys}}
	}

	msg, err := a.cli.Messages.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("anthropic: %w", err)
	}
	if len(msg.Content) == 0 {
		return "", fmt.Errorf("anthropic: %w", errEmptyCompletion)
	}

	var sb strings.Builder
	for _, block := range msg.Content {
		sb.WriteString(block.Text)
	}
	return sb.String(), nil
}
