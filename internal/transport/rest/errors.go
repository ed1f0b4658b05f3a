package rest

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/heartmarshall/formcraft-backend/internal/domain"
)

// Client-facing messages. Diagnostic detail stays in the server log.
const (
	msgUnauthorized      = "Not authenticated"
	msgCredentialExpired = "Google session expired. Please log out and log in again to reconnect your Google account."
	msgCredentialMissing = "No Google access token. Please log in again."
	msgForbidden         = "Access denied"
	msgModelUnavailable  = "The AI service is unavailable. Please try again."
	msgModelOutput       = "The AI returned an unusable response. Please try again."
	msgProvider          = "Google Forms rejected the request. Please try again."
	msgInternal          = "Internal server error"
)

// handleError maps a service error to a status, code and message.
func handleError(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error) {
	ctx := r.Context()

	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		writeError(w, http.StatusBadRequest, "VALIDATION", validationMessage(ve))
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusBadRequest, "VALIDATION", err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", msgUnauthorized)
	case errors.Is(err, domain.ErrCredentialExpired):
		log.WarnContext(ctx, "google credential expired", slog.String("error", err.Error()))
		writeError(w, http.StatusUnauthorized, "AUTH_EXPIRED", msgCredentialExpired)
	case errors.Is(err, domain.ErrCredentialMissing):
		writeError(w, http.StatusUnauthorized, "NO_CREDENTIAL", msgCredentialMissing)
	case errors.Is(err, domain.ErrForbidden):
		writeError(w, http.StatusForbidden, "FORBIDDEN", msgForbidden)
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "NOT_FOUND", notFoundMessage(err))
	case errors.Is(err, domain.ErrConflict), errors.Is(err, domain.ErrAlreadyExists):
		writeError(w, http.StatusConflict, "CONFLICT", "Conflict")
	case errors.Is(err, domain.ErrMalformedModelOutput):
		attrs := []any{slog.String("error", err.Error())}
		var mo *domain.MalformedOutputError
		if errors.As(err, &mo) {
			attrs = append(attrs, slog.String("stage", mo.Stage), slog.String("raw", mo.Raw))
		}
		log.ErrorContext(ctx, "malformed model output", attrs...)
		writeError(w, http.StatusInternalServerError, "MODEL_OUTPUT_INVALID", msgModelOutput)
	case errors.Is(err, domain.ErrUpstreamModel):
		log.ErrorContext(ctx, "text generation failed", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "MODEL_UNAVAILABLE", msgModelUnavailable)
	case errors.Is(err, domain.ErrProviderAPI):
		attrs := []any{slog.String("error", err.Error())}
		var pe *domain.ProviderAPIError
		if errors.As(err, &pe) {
			attrs = append(attrs, slog.String("op", pe.Op), slog.Int("status", pe.Status), slog.String("provider_code", pe.Code))
		}
		log.ErrorContext(ctx, "form provider error", attrs...)
		writeError(w, http.StatusInternalServerError, "PROVIDER_ERROR", msgProvider)
	case errors.Is(err, context.Canceled):
		log.InfoContext(ctx, "request canceled", slog.String("error", err.Error()))
		writeError(w, http.StatusServiceUnavailable, "INTERNAL", msgInternal)
	default:
		log.ErrorContext(ctx, "internal error", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "INTERNAL", msgInternal)
	}
}

func validationMessage(ve *domain.ValidationError) string {
	parts := make([]string, 0, len(ve.Errors))
	for _, fe := range ve.Errors {
		if fe.Field == "prompt" && fe.Message == "required" {
			parts = append(parts, "Prompt is required")
			continue
		}
		parts = append(parts, fe.Field+": "+fe.Message)
	}
	return strings.Join(parts, "; ")
}

// notFoundMessage names the missing entity when the error carries one.
func notFoundMessage(err error) string {
	var nf *domain.NotFoundError
	if !errors.As(err, &nf) {
		return "Not found"
	}
	switch nf.Entity {
	case domain.EntityUser, domain.EntityCredential:
		return "User not found"
	case domain.EntityForm:
		return "Form not found"
	default:
		return "Not found"
	}
}
