package dto

import (
	"fmt"
	"strings"

	apperrors "github.com/joselazo21/todo-list/internal/errors"
	"github.com/joselazo21/todo-list/pkg/constant"
)

type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (in RegisterInput) Validate() error {
	if len(strings.TrimSpace(in.Name)) < constant.MinNameLength {
		return fmt.Errorf("%w: name must be at least %d characters", apperrors.ErrValidation, constant.MinNameLength)
	}
	if !strings.Contains(in.Email, "@") {
		return fmt.Errorf("%w: a valid email address is required", apperrors.ErrValidation)
	}
	if len(in.Password) < constant.MinPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters", apperrors.ErrValidation, constant.MinPasswordLength)
	}
	return nil
}

type RegisterOutput struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}
