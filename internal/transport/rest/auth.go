package rest

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"log/slog"
	"net/http"
	"time"

	"github.com/heartmarshall/formcraft-backend/internal/config"
	"github.com/heartmarshall/formcraft-backend/internal/domain"
	"github.com/heartmarshall/formcraft-backend/internal/service/auth"
)

const (
	stateCookieName = "oauth_state"
	stateTTL        = 10 * time.Minute
)

// authService defines the minimal interface needed by AuthHandler.
type authService interface {
	AuthURL(state string) string
	Login(ctx context.Context, input auth.LoginInput) (*auth.LoginResult, error)
	Profile(ctx context.Context) (*domain.User, error)
}

// AuthHandler serves the Google sign-in endpoints.
type AuthHandler struct {
	svc authService
	log *slog.Logger
	cfg config.AuthConfig
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(svc authService, cfg config.AuthConfig, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{svc: svc, cfg: cfg, log: logger.With("handler", "auth")}
}

type userResponse struct {
	ID        string    `json:"id"`
	GoogleID  string    `json:"googleId"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	AvatarURL *string   `json:"avatarUrl,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// GoogleLogin handles GET /api/auth/google by redirecting to the consent page.
func (h *AuthHandler) GoogleLogin(w http.ResponseWriter, r *http.Request) {
	state, err := newState()
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     stateCookieName,
		Value:    state,
		Path:     "/api/auth",
		MaxAge:   int(stateTTL.Seconds()),
		HttpOnly: true,
		Secure:   h.cfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, h.svc.AuthURL(state), http.StatusFound)
}

// GoogleCallback handles GET /api/auth/google/callback. Both outcomes
// redirect to the client application.
func (h *AuthHandler) GoogleCallback(w http.ResponseWriter, r *http.Request) {
	clearCookie(w, stateCookieName, "/api/auth", h.cfg.CookieSecure)

	if !validState(r) {
		h.log.WarnContext(r.Context(), "oauth state mismatch")
		http.Redirect(w, r, h.cfg.ClientURL+"/login?error=auth_failed", http.StatusFound)
		return
	}

	result, err := h.svc.Login(r.Context(), auth.LoginInput{Code: r.URL.Query().Get("code")})
	if err != nil {
		h.log.ErrorContext(r.Context(), "google sign-in failed", slog.String("error", err.Error()))
		http.Redirect(w, r, h.cfg.ClientURL+"/login?error=auth_failed", http.StatusFound)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     h.cfg.CookieName,
		Value:    result.Token,
		Path:     "/",
		Expires:  result.ExpiresAt,
		MaxAge:   int(time.Until(result.ExpiresAt).Seconds()),
		HttpOnly: true,
		Secure:   h.cfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, h.cfg.ClientURL+"/dashboard", http.StatusFound)
}

// Profile handles GET /api/auth/profile.
func (h *AuthHandler) Profile(w http.ResponseWriter, r *http.Request) {
	user, err := h.svc.Profile(r.Context())
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, userResponse{
		ID:        user.ID.String(),
		GoogleID:  user.GoogleID,
		Email:     user.Email,
		Name:      user.Name,
		AvatarURL: user.AvatarURL,
		CreatedAt: user.CreatedAt,
	})
}

// Logout handles GET /api/auth/logout by clearing the session cookie.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	clearCookie(w, h.cfg.CookieName, "/", h.cfg.CookieSecure)
	writeJSON(w, http.StatusOK, messageResponse{Message: "Logged out"})
}

func newState() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

func validState(r *http.Request) bool {
	c, err := r.Cookie(stateCookieName)
	if err != nil || c.Value == "" {
		return false
	}
	got := r.URL.Query().Get("state")
	return subtle.ConstantTimeCompare([]byte(c.Value), []byte(got)) == 1
}

func clearCookie(w http.ResponseWriter, name, path string, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     path,
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}
