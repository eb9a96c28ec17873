package dto

import (
	"fmt"
	"strings"

	apperrors "github.com/joselazo21/todo-list/internal/errors"
)

type VerifyEmailRequestInput struct {
	Email string `json:"email"`
}

func (in VerifyEmailRequestInput) Validate() error {
	if !strings.Contains(in.Email, "@") {
		return fmt.Errorf("%w: a valid email address is required", apperrors.ErrValidation)
	}
	return nil
}

type VerifyEmailConfirmInput struct {
	Token string `json:"token"`
}

func (in VerifyEmailConfirmInput) Validate() error {
	if in.Token == "" {
		return fmt.Errorf("%w: token is required", apperrors.ErrValidation)
	}
	return nil
}
