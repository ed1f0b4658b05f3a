package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/heartmarshall/formcraft-backend/internal/config"
)

// exposedHeaders are readable by the browser client on cross-origin responses.
var exposedHeaders = RequestIDHeader + ", Retry-After"

// CORS returns middleware that answers preflight requests and marks
// responses to allowed origins. AllowedOrigins is a comma-separated list
// where "*" admits any origin. Preflights never reach next.
func CORS(cfg config.CORSConfig) Middleware {
	allowAny := false
	origins := make(map[string]struct{})
	for _, o := range strings.Split(cfg.AllowedOrigins, ",") {
		switch o = strings.TrimSpace(o); o {
		case "":
		case "*":
			allowAny = true
		default:
			origins[o] = struct{}{}
		}
	}
	allowed := func(origin string) bool {
		if origin == "" {
			return false
		}
		_, ok := origins[origin]
		return ok || allowAny
	}
	maxAge := strconv.Itoa(cfg.MaxAge)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Add("Vary", "Origin")

			origin := r.Header.Get("Origin")
			ok := allowed(origin)
			if ok {
				// Credentialed requests need the concrete origin echoed, never "*".
				h.Set("Access-Control-Allow-Origin", origin)
				h.Set("Access-Control-Expose-Headers", exposedHeaders)
				if cfg.AllowCredentials {
					h.Set("Access-Control-Allow-Credentials", "true")
				}
			}

			if r.Method != http.MethodOptions || r.Header.Get("Access-Control-Request-Method") == "" {
				next.ServeHTTP(w, r)
				return
			}

			if ok {
				h.Set("Access-Control-Allow-Methods", cfg.AllowedMethods)
				h.Set("Access-Control-Allow-Headers", cfg.AllowedHeaders)
				h.Set("Access-Control-Max-Age", maxAge)
			}
			w.WriteHeader(http.StatusNoContent)
		})
	}
}
