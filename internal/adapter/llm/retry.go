package llm

import (
	"context"
	"errors"
	"time"

	"github.com/heartmarshall/formcraft-backend/internal/domain"
)

// Retry retries Generate up to maxAttempts with exponential backoff starting
// at baseDelay. Permanent errors and context cancellation stop immediately.
func Retry(maxAttempts int, baseDelay time.Duration) Middleware {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	if baseDelay <= 0 {
		baseDelay = 300 * time.Millisecond
	}
	return func(next Client) Client {
		return &retrying{next: next, max: maxAttempts, base: baseDelay}
	}
}

type retrying struct {
	next Client
	max  int
	base time.Duration
}

func (r *retrying) Name() string { return r.next.Name() }

func (r *retrying) Generate(ctx context.Context, req domain.GenerationRequest) (string, error) {
	var last error
	for i := 0; i < r.max; i++ {
		out, err := r.next.Generate(ctx, req)
		if err == nil {
			return out, nil
		}
		var pErr *PermanentError
		if errors.As(err, &pErr) {
			return "", err
		}
		last = err

		if i == r.max-1 {
			break
		}
		select {
		case <-time.After(r.base * time.Duration(1<<i)):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return "", last
}
