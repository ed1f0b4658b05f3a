package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/formcraft-backend/internal/domain"
	"github.com/heartmarshall/formcraft-backend/internal/gforms"
	"github.com/heartmarshall/formcraft-backend/internal/service/form"
	"github.com/heartmarshall/formcraft-backend/pkg/ctxutil"
)

type formService interface {
	CreateForm(ctx context.Context, input form.CreateInput) (*domain.FormRecord, error)
	ListForms(ctx context.Context) ([]form.FormView, error)
	DeleteForm(ctx context.Context, input form.DeleteInput) error
	BulkDeleteForms(ctx context.Context, input form.BulkDeleteInput) (int, error)
	ExpandForm(ctx context.Context, input form.ExpandInput) (*form.ExpandResult, error)
	DuplicateForm(ctx context.Context, input form.DuplicateInput) (*domain.FormRecord, error)
}

// FormHandler serves the form provisioning endpoints.
type FormHandler struct {
	svc formService
	log *slog.Logger
	now func() time.Time
}

// NewFormHandler creates a FormHandler.
func NewFormHandler(svc formService, logger *slog.Logger) *FormHandler {
	return &FormHandler{svc: svc, log: logger.With("handler", "form"), now: time.Now}
}

type createConfig struct {
	ExpiryDate   string      `json:"expiryDate"`
	MaxResponses optionalInt `json:"maxResponses"`
}

type createFormRequest struct {
	UserID      string           `json:"userId"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Requests    []gforms.Request `json:"requests"`
	Config      createConfig     `json:"config"`
}

type expandFormRequest struct {
	UserID string `json:"userId"`
	Prompt string `json:"prompt"`
}

type ownerRequest struct {
	UserID string `json:"userId"`
}

type bulkDeleteRequest struct {
	UserID string   `json:"userId"`
	IDs    []string `json:"ids"`
}

// FormResponse is the JSON shape of a form record.
type FormResponse struct {
	ID            string     `json:"id"`
	UserID        string     `json:"userId"`
	FormID        string     `json:"formId"`
	Title         string     `json:"title"`
	PublicURL     string     `json:"publicUrl"`
	EditURL       string     `json:"editUrl"`
	ExpiryDate    *time.Time `json:"expiryDate"`
	MaxResponses  *int       `json:"maxResponses"`
	ResponseCount int        `json:"responseCount"`
	IsActive      bool       `json:"isActive"`
	IsExpired     bool       `json:"isExpired"`
	CreatedAt     time.Time  `json:"createdAt"`
}

type expandFormResponse struct {
	QuestionsAdded int                    `json:"questionsAdded"`
	Questions      []domain.QuestionDraft `json:"questions"`
}

type bulkDeleteResponse struct {
	DeletedCount int `json:"deletedCount"`
}

// Create handles POST /api/form/create.
func (h *FormHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createFormRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION", err.Error())
		return
	}
	if err := checkPrincipal(r.Context(), req.UserID); err != nil {
		handleError(w, r, h.log, err)
		return
	}

	rec, err := h.svc.CreateForm(r.Context(), form.CreateInput{
		Title:       req.Title,
		Description: req.Description,
		Requests:    req.Requests,
		Config: form.CreateConfig{
			ExpiryDate:   req.Config.ExpiryDate,
			MaxResponses: req.Config.MaxResponses.Value,
		},
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, h.toResponse(*rec))
}

// List handles GET /api/forms and GET /api/form/user/{userId}.
func (h *FormHandler) List(w http.ResponseWriter, r *http.Request) {
	if err := checkPrincipal(r.Context(), r.PathValue("userId")); err != nil {
		handleError(w, r, h.log, err)
		return
	}

	views, err := h.svc.ListForms(r.Context())
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	out := make([]FormResponse, 0, len(views))
	for _, v := range views {
		out = append(out, viewResponse(v))
	}
	writeJSON(w, http.StatusOK, out)
}

// Delete handles DELETE /api/form/{id}.
func (h *FormHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.formID(w, r)
	if !ok {
		return
	}

	if err := h.svc.DeleteForm(r.Context(), form.DeleteInput{FormID: id}); err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: "Form deleted successfully"})
}

// BulkDelete handles POST /api/form/bulk-delete.
func (h *FormHandler) BulkDelete(w http.ResponseWriter, r *http.Request) {
	var req bulkDeleteRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION", err.Error())
		return
	}
	if err := checkPrincipal(r.Context(), req.UserID); err != nil {
		handleError(w, r, h.log, err)
		return
	}

	ids := make([]uuid.UUID, 0, len(req.IDs))
	for _, raw := range req.IDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "VALIDATION", "ids: invalid id "+raw)
			return
		}
		ids = append(ids, id)
	}

	n, err := h.svc.BulkDeleteForms(r.Context(), form.BulkDeleteInput{IDs: ids})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, bulkDeleteResponse{DeletedCount: n})
}

// Expand handles POST /api/form/{id}/expand.
func (h *FormHandler) Expand(w http.ResponseWriter, r *http.Request) {
	id, ok := h.formID(w, r)
	if !ok {
		return
	}

	var req expandFormRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION", err.Error())
		return
	}
	if err := checkPrincipal(r.Context(), req.UserID); err != nil {
		handleError(w, r, h.log, err)
		return
	}

	res, err := h.svc.ExpandForm(r.Context(), form.ExpandInput{FormID: id, Prompt: req.Prompt})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	questions := res.Questions
	if questions == nil {
		questions = []domain.QuestionDraft{}
	}
	writeJSON(w, http.StatusOK, expandFormResponse{QuestionsAdded: res.QuestionsAdded, Questions: questions})
}

// Duplicate handles POST /api/form/{id}/duplicate.
func (h *FormHandler) Duplicate(w http.ResponseWriter, r *http.Request) {
	id, ok := h.formID(w, r)
	if !ok {
		return
	}

	var req ownerRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION", err.Error())
		return
	}
	if err := checkPrincipal(r.Context(), req.UserID); err != nil {
		handleError(w, r, h.log, err)
		return
	}

	rec, err := h.svc.DuplicateForm(r.Context(), form.DuplicateInput{FormID: id})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, h.toResponse(*rec))
}

func (h *FormHandler) formID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION", "id: invalid form id")
		return uuid.Nil, false
	}
	return id, true
}

func (h *FormHandler) toResponse(rec domain.FormRecord) FormResponse {
	now := h.now()
	v := form.FormView{FormRecord: rec, IsExpired: rec.IsExpired(now)}
	v.IsActive = rec.EffectiveActive(now)
	return viewResponse(v)
}

func viewResponse(v form.FormView) FormResponse {
	return FormResponse{
		ID:            v.ID.String(),
		UserID:        v.OwnerID.String(),
		FormID:        v.ProviderFormID,
		Title:         v.Title,
		PublicURL:     v.PublicURL,
		EditURL:       v.EditURL,
		ExpiryDate:    v.ExpiryDate,
		MaxResponses:  v.MaxResponses,
		ResponseCount: v.ResponseCount,
		IsActive:      v.IsActive,
		IsExpired:     v.IsExpired,
		CreatedAt:     v.CreatedAt,
	}
}

// checkPrincipal rejects a client-supplied owner id that differs from the
// authenticated user. An empty id defers to the principal.
func checkPrincipal(ctx context.Context, claimed string) error {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}
	if claimed == "" {
		return nil
	}
	id, err := uuid.Parse(claimed)
	if err != nil || id != userID {
		return domain.ErrForbidden
	}
	return nil
}
