package intent

import (
	"strings"

	"github.com/heartmarshall/formcraft-backend/internal/domain"
)

// SuggestInput holds the parameters for suggesting form sections.
type SuggestInput struct {
	Prompt string
}

// Validate rejects a blank prompt.
func (i SuggestInput) Validate() error {
	if strings.TrimSpace(i.Prompt) == "" {
		return domain.NewEmptyPromptError()
	}
	return nil
}
