package dto

import (
	"fmt"

	apperrors "github.com/joselazo21/todo-list/internal/errors"
	"github.com/joselazo21/todo-list/pkg/constant"
)

type ChangePasswordInput struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

func (in ChangePasswordInput) Validate() error {
	if in.CurrentPassword == "" {
		return fmt.Errorf("%w: current password is required", apperrors.ErrValidation)
	}
	if len(in.NewPassword) < constant.MinPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters", apperrors.ErrValidation, constant.MinPasswordLength)
	}
	return nil
}
