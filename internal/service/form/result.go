package form

import (
	"time"

	"github.com/heartmarshall/formcraft-backend/internal/domain"
)

// ExpandResult reports the questions appended to a form.
type ExpandResult struct {
	QuestionsAdded int
	Questions      []domain.QuestionDraft
}

// FormView is a record annotated for display. IsActive is already false when
// IsExpired is set; the stored record may still say otherwise.
type FormView struct {
	domain.FormRecord
	IsExpired bool
}

func newFormView(rec domain.FormRecord, now time.Time) FormView {
	v := FormView{FormRecord: rec, IsExpired: rec.IsExpired(now)}
	v.IsActive = rec.EffectiveActive(now)
	return v
}
