// Package llm contains the text-generation backends and the decorators
// applied around them. Backends only perform the call; retries and caching
// are layered on with Wrap.
package llm

import (
	"context"

	"github.com/heartmarshall/formcraft-backend/internal/domain"
)

// Client generates text for a request.
type Client interface {
	Name() string
	Generate(ctx context.Context, req domain.GenerationRequest) (string, error)
}

// Middleware decorates a Client.
type Middleware func(Client) Client

// Wrap applies middlewares in left-to-right order: Wrap(c, A, B) is A(B(c)).
func Wrap(inner Client, mws ...Middleware) Client {
	out := inner
	for i := len(mws) - 1; i >= 0; i-- {
		out = mws[i](out)
	}
	return out
}

// PermanentError marks a failure that a retry cannot fix.
type PermanentError struct {
	Err error
}

func (e *PermanentError) Error() string { return e.Err.Error() }
func (e *PermanentError) Unwrap() error { return e.Err }

// NewPermanentError wraps err as non-retryable.
func NewPermanentError(err error) error {
	return &PermanentError{Err: err}
}
