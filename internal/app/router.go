package app

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/heartmarshall/formcraft-backend/internal/config"
	"github.com/heartmarshall/formcraft-backend/internal/transport/middleware"
	"github.com/heartmarshall/formcraft-backend/internal/transport/rest"
)

// Handlers groups the REST handlers mounted by NewRouter.
type Handlers struct {
	Health *rest.HealthHandler
	Auth   *rest.AuthHandler
	AI     *rest.AIHandler
	Forms  *rest.FormHandler
}

type tokenValidator interface {
	ValidateToken(ctx context.Context, token string) (uuid.UUID, error)
}

// NewRouter mounts every route and wraps the mux in the global middleware
// chain. Text-generating routes share the "ai" rate limit scope.
func NewRouter(h Handlers, validator tokenValidator, limiter *middleware.RateLimiter, cfg *config.Config, logger *slog.Logger) http.Handler {
	aiLimit := limiter.Limit("ai", cfg.RateLimit.AIPerMinute, cfg.RateLimit.AIBurst)
	limited := func(fn http.HandlerFunc) http.Handler { return aiLimit(fn) }

	mux := http.NewServeMux()

	mux.HandleFunc("GET /live", h.Health.Live)
	mux.HandleFunc("GET /ready", h.Health.Ready)
	mux.HandleFunc("GET /health", h.Health.Health)
	mux.HandleFunc("GET /api/health", h.Health.API)

	mux.HandleFunc("GET /api/auth/google", h.Auth.GoogleLogin)
	mux.HandleFunc("GET /api/auth/google/callback", h.Auth.GoogleCallback)
	mux.HandleFunc("GET /api/auth/profile", h.Auth.Profile)
	mux.HandleFunc("GET /api/auth/logout", h.Auth.Logout)
	mux.HandleFunc("POST /api/auth/logout", h.Auth.Logout)

	mux.Handle("POST /api/ai/analyze", limited(h.AI.Analyze))
	mux.Handle("POST /api/ai/generate", limited(h.AI.Generate))

	mux.HandleFunc("POST /api/form/create", h.Forms.Create)
	mux.HandleFunc("GET /api/forms", h.Forms.List)
	mux.HandleFunc("GET /api/form/user/{userId}", h.Forms.List)
	mux.HandleFunc("POST /api/form/bulk-delete", h.Forms.BulkDelete)
	mux.HandleFunc("DELETE /api/form/{id}", h.Forms.Delete)
	mux.Handle("POST /api/form/{id}/expand", limited(h.Forms.Expand))
	mux.HandleFunc("POST /api/form/{id}/duplicate", h.Forms.Duplicate)

	var cors middleware.Middleware
	if cfg.CORS.AllowedOrigins != "" {
		cors = middleware.CORS(cfg.CORS)
	}

	chain := middleware.Chain(
		middleware.Recovery(logger),
		middleware.RequestID(),
		cors,
		middleware.Auth(validator, cfg.Auth.CookieName),
		middleware.Logger(logger),
	)
	return chain(mux)
}
