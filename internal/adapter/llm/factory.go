package llm

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Supported backend names.
const (
	ProviderGroq      = "groq"
	ProviderGemini    = "gemini"
	ProviderAnthropic = "anthropic"
)

// Options selects and configures a backend.
type Options struct {
	Provider       string
	APIKey         string
	Model          string
	BaseURL        string
	RequestTimeout time.Duration
	RetryAttempts  int
	RetryBaseDelay time.Duration
	CacheSize      int
}

// New builds the configured backend and applies the cache and retry decorators.
// Call order is cache, retry, backend.
func New(ctx context.Context, opts Options, logger *slog.Logger) (Client, error) {
	var base Client
	switch opts.Provider {
	case ProviderGroq, "":
		base = NewGroqClient(opts.APIKey, opts.Model, opts.BaseURL, opts.RequestTimeout, logger)
	case ProviderGemini:
		c, err := NewGeminiClient(ctx, opts.APIKey, opts.Model, opts.BaseURL, logger)
		if err != nil {
			return nil, err
		}
		base = c
	case ProviderAnthropic:
		base = NewAnthropicClient(opts.APIKey, opts.Model, opts.BaseURL, logger)
	default:
		return nil, fmt.Errorf("llm: unknown provider %q", opts.Provider)
	}

	return Wrap(base, Cached(opts.CacheSize), Retry(opts.RetryAttempts, opts.RetryBaseDelay)), nil
}
