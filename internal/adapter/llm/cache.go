package llm

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/heartmarshall/formcraft-backend/internal/domain"
)

// Cached memoizes successful completions keyed by the full request.
// size <= 0 disables caching.
func Cached(size int) Middleware {
	return func(next Client) Client {
		if size <= 0 {
			return next
		}
		cache, err := lru.New[string, string](size)
		if err != nil {
			return next
		}
		return &cached{next: next, cache: cache}
	}
}

type cached struct {
	next  Client
	cache *lru.Cache[string, string]
}

func (c *cached) Name() string { return c.next.Name() }

func (c *cached) Generate(ctx context.Context, req domain.GenerationRequest) (string, error) {
	key, err := cacheKey(c.next.Name(), req)
	if err != nil {
		return c.next.Generate(ctx, req)
	}
	if out, ok := c.cache.Get(key); ok {
		return out, nil
	}

	out, err := c.next.Generate(ctx, req)
	if err != nil {
		return "", err
	}
	c.cache.Add(key, out)
	return out, nil
}

func cacheKey(backend string, req domain.GenerationRequest) (string, error) {
	b, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("cache key: %w", err)
	}
	sum := sha256.Sum256(append([]byte(backend+"\x00"), b...))
	return hex.EncodeToString(sum[:]), nil
}
