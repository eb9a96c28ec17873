package dto

import (
	"fmt"

	apperrors "github.com/joselazo21/todo-list/internal/errors"
)

type LoginInput struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	IPAddress string `json:"-"`
	UserAgent string `json:"-"`
}

func (in LoginInput) Validate() error {
	if in.Email == "" {
		return fmt.Errorf("%w: email is required", apperrors.ErrValidation)
	}
	if in.Password == "" {
		return fmt.Errorf("%w: password is required", apperrors.ErrValidation)
	}
	return nil
}

type TokenResponse struct {
	AccessToken  string        `json:"access_token"`
	RefreshToken string        `json:"refresh_token"`
	TokenType    string        `json:"token_type"`
	ExpiresIn    int           `json:"expires_in"`
	User         AccountOutput `json:"user"`
}
