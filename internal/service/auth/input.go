package auth

import "github.com/heartmarshall/formcraft-backend/internal/domain"

const maxCodeLength = 4096

// LoginInput holds the authorization code returned to the OAuth callback.
type LoginInput struct {
	Code string
}

// Validate validates the login input.
func (i LoginInput) Validate() error {
	var errs []domain.FieldError

	if i.Code == "" {
		errs = append(errs, domain.FieldError{Field: "code", Message: "required"})
	} else if len(i.Code) > maxCodeLength {
		errs = append(errs, domain.FieldError{Field: "code", Message: "too long"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}
