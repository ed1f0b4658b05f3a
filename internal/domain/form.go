package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

const editURLTemplate = "https://docs.google.com/forms/d/%s/edit"

// EditURL derives the owner-facing URL from the provider form id.
func EditURL(providerFormID string) string {
	return fmt.Sprintf(editURLTemplate, providerFormID)
}

// FormRecord is the locally persisted metadata of a provider-hosted form.
type FormRecord struct {
	ID             uuid.UUID
	OwnerID        uuid.UUID
	ProviderFormID string
	Title          string
	PublicURL      string
	EditURL        string
	ExpiryDate     *time.Time
	MaxResponses   *int
	ResponseCount  int
	IsActive       bool
	State          FormState
	CreatedAt      time.Time
}

// IsExpired reports whether the record's expiry date has passed at now.
func (f *FormRecord) IsExpired(now time.Time) bool {
	return f.ExpiryDate != nil && !f.ExpiryDate.After(now)
}

// EffectiveActive is IsActive forced to false once the record has expired.
func (f *FormRecord) EffectiveActive(now time.Time) bool {
	return f.IsActive && !f.IsExpired(now)
}

// ReachedMaxResponses reports whether the response limit, if any, has been hit.
func (f *FormRecord) ReachedMaxResponses() bool {
	return f.MaxResponses != nil && *f.MaxResponses > 0 && f.ResponseCount >= *f.MaxResponses
}

// EndOfDay returns 23:59:59.999 of t's calendar date in loc.
func EndOfDay(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 23, 59, 59, int(999*time.Millisecond), loc)
}

// SectionSuggestion is one AI-proposed form section.
type SectionSuggestion struct {
	ID              string   `json:"id"`
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	SuggestedFields []string `json:"suggestedFields"`
}

// SectionRef is the part of a selected section used to scope question generation.
type SectionRef struct {
	Title string `json:"title"`
}

// QuestionDraft is a question parsed from model output.
type QuestionDraft struct {
	Title   string       `json:"title"`
	Kind    QuestionKind `json:"type"`
	Options []string     `json:"options,omitempty"`
}
