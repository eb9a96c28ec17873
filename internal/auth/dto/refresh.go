package dto

import (
	"fmt"

	apperrors "github.com/joselazo21/todo-list/internal/errors"
)

type RefreshInput struct {
	RefreshToken string `json:"refresh_token"`
}

func (in RefreshInput) Validate() error {
	if in.RefreshToken == "" {
		return fmt.Errorf("%w: refresh_token is required", apperrors.ErrValidation)
	}
	return nil
}

type RefreshResponse struct {
	AccessToken string `json:"access_token"`
	// RefreshToken is only set when rotation is enabled.
	RefreshToken string `json:"refresh_token,omitempty"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
}
