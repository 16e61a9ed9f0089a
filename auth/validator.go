package auth

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"

	"message-board/domain"
	errs "message-board/errors"
)

var validate = validator.New()

type registerRequest struct {
	Username string `validate:"required"`
	Password string `validate:"required,min=4"`
}

// ValidateRegistration checks the credential shape before an account is
// created. Values are trimmed first, so a whitespace-only field counts as
// blank. Checks surface in a fixed order: blank username, blank password,
// short password.
func ValidateRegistration(creds domain.Credentials) error {
	req := registerRequest{
		Username: strings.TrimSpace(creds.Username),
		Password: strings.TrimSpace(creds.Password),
	}

	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return err
	}

	// Struct fields are validated in declaration order and tags in tag order,
	// which gives the deterministic surfacing the callers rely on.
	first := fieldErrs[0]
	switch {
	case first.Field() == "Username":
		return errs.ErrBlankUsername
	case first.Tag() == "required":
		return errs.ErrBlankPassword
	default:
		return errs.ErrShortPassword
	}
}
