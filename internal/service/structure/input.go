package structure

import (
	"fmt"
	"strings"

	"github.com/heartmarshall/formcraft-backend/internal/domain"
)

// MaxSections limits how many sections one generation call may cover.
const MaxSections = 20

// GenerateInput holds the parameters for generating questions from sections.
type GenerateInput struct {
	Prompt   string
	Sections []domain.SectionRef
}

// Validate checks all fields and collects all errors.
func (i GenerateInput) Validate() error {
	var errs []domain.FieldError

	if strings.TrimSpace(i.Prompt) == "" {
		errs = append(errs, domain.FieldError{Field: "prompt", Message: "required"})
	}
	if len(i.Sections) == 0 {
		errs = append(errs, domain.FieldError{Field: "sections", Message: "required"})
	}
	if len(i.Sections) > MaxSections {
		errs = append(errs, domain.FieldError{Field: "sections", Message: fmt.Sprintf("max %d sections", MaxSections)})
	}
	for idx, s := range i.Sections {
		if strings.TrimSpace(s.Title) == "" {
			errs = append(errs, domain.FieldError{Field: fmt.Sprintf("sections[%d].title", idx), Message: "required"})
		}
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

func (i GenerateInput) titles() []string {
	out := make([]string, 0, len(i.Sections))
	for _, s := range i.Sections {
		out = append(out, strings.TrimSpace(s.Title))
	}
	return out
}

// ExpandInput holds the parameters for generating additional questions for an existing form.
type ExpandInput struct {
	FormTitle string
	Prompt    string
}

// Validate checks all fields and collects all errors.
func (i ExpandInput) Validate() error {
	if strings.TrimSpace(i.Prompt) == "" {
		return domain.NewEmptyPromptError()
	}
	return nil
}
