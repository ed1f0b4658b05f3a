package form

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/formcraft-backend/internal/domain"
	"github.com/heartmarshall/formcraft-backend/internal/gforms"
)

const (
	MaxTitleLength       = 300
	MaxDescriptionLength = 4096
	MaxRequests          = 200
	MaxBulkDelete        = 100
)

// dateLayout is the calendar-date form of an expiry date.
const dateLayout = "2006-01-02"

// CreateConfig holds the optional lifecycle settings of a new form.
type CreateConfig struct {
	// ExpiryDate is YYYY-MM-DD or RFC3339. Empty means no expiry.
	ExpiryDate   string
	MaxResponses *int
}

// CreateInput holds the parameters for creating a form.
type CreateInput struct {
	Title       string
	Description string
	Requests    []gforms.Request
	Config      CreateConfig
}

// Validate checks all fields and collects all errors.
func (i CreateInput) Validate() error {
	var errs []domain.FieldError

	if len(strings.TrimSpace(i.Title)) > MaxTitleLength {
		errs = append(errs, domain.FieldError{Field: "title", Message: fmt.Sprintf("max %d characters", MaxTitleLength)})
	}
	if len(i.Description) > MaxDescriptionLength {
		errs = append(errs, domain.FieldError{Field: "description", Message: fmt.Sprintf("max %d characters", MaxDescriptionLength)})
	}
	if len(i.Requests) > MaxRequests {
		errs = append(errs, domain.FieldError{Field: "requests", Message: fmt.Sprintf("max %d requests", MaxRequests)})
	}
	for idx, r := range i.Requests {
		if r.CreateItem == nil {
			errs = append(errs, domain.FieldError{Field: fmt.Sprintf("requests[%d]", idx), Message: "must be a createItem request"})
			continue
		}
		if r.CreateItem.Item.Payload.IsZero() {
			errs = append(errs, domain.FieldError{Field: fmt.Sprintf("requests[%d].createItem.item", idx), Message: "item payload required"})
		}
	}
	if _, err := parseExpiry(i.Config.ExpiryDate, time.UTC); err != nil {
		errs = append(errs, domain.FieldError{Field: "config.expiryDate", Message: "must be YYYY-MM-DD or RFC3339"})
	}
	if i.Config.MaxResponses != nil && *i.Config.MaxResponses <= 0 {
		errs = append(errs, domain.FieldError{Field: "config.maxResponses", Message: "must be positive"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// ExpandInput holds the parameters for adding AI questions to a form.
type ExpandInput struct {
	FormID uuid.UUID
	Prompt string
}

// Validate checks all fields and collects all errors.
func (i ExpandInput) Validate() error {
	var errs []domain.FieldError
	if i.FormID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "form_id", Message: "required"})
	}
	if strings.TrimSpace(i.Prompt) == "" {
		errs = append(errs, domain.FieldError{Field: "prompt", Message: "required"})
	}
	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// DuplicateInput holds the parameters for duplicating a form.
type DuplicateInput struct {
	FormID uuid.UUID
}

// Validate checks all fields and collects all errors.
func (i DuplicateInput) Validate() error {
	if i.FormID == uuid.Nil {
		return domain.NewValidationError("form_id", "required")
	}
	return nil
}

// DeleteInput holds the parameters for deleting a form record.
type DeleteInput struct {
	FormID uuid.UUID
}

// Validate checks all fields and collects all errors.
func (i DeleteInput) Validate() error {
	if i.FormID == uuid.Nil {
		return domain.NewValidationError("form_id", "required")
	}
	return nil
}

// BulkDeleteInput holds the parameters for deleting several form records.
type BulkDeleteInput struct {
	IDs []uuid.UUID
}

// Validate checks all fields and collects all errors.
func (i BulkDeleteInput) Validate() error {
	var errs []domain.FieldError
	if len(i.IDs) == 0 {
		errs = append(errs, domain.FieldError{Field: "ids", Message: "required"})
	}
	if len(i.IDs) > MaxBulkDelete {
		errs = append(errs, domain.FieldError{Field: "ids", Message: fmt.Sprintf("max %d ids", MaxBulkDelete)})
	}
	for idx, id := range i.IDs {
		if id == uuid.Nil {
			errs = append(errs, domain.FieldError{Field: fmt.Sprintf("ids[%d]", idx), Message: "invalid id"})
		}
	}
	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// uniqueIDs returns ids without repeats, first occurrence kept.
func uniqueIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// parseExpiry reads a YYYY-MM-DD or RFC3339 value and returns the end of its
// calendar day in loc. For RFC3339 the day is the date as written, whatever
// the offset. An empty value yields nil.
func parseExpiry(value string, loc *time.Location) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}

	t, err := time.ParseInLocation(dateLayout, value, loc)
	if err != nil {
		stamp, perr := time.Parse(time.RFC3339, value)
		if perr != nil {
			return nil, fmt.Errorf("parse expiry date %q: %w", value, perr)
		}
		y, m, d := stamp.Date()
		t = time.Date(y, m, d, 0, 0, 0, 0, loc)
	}

	end := domain.EndOfDay(t, loc)
	return &end, nil
}
