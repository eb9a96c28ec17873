package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"

	"github.com/joselazo21/todo-list/internal/auth/dto"
	"github.com/joselazo21/todo-list/internal/auth/service"
	apperrors "github.com/joselazo21/todo-list/internal/errors"
)

type AuthHandler struct {
	userService  *service.UserService
	tokenService service.TokenGenerator
}

func NewAuthHandler(userService *service.UserService, tokenService service.TokenGenerator) *AuthHandler {
	return &AuthHandler{userService: userService, tokenService: tokenService}
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var input dto.RegisterInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid input",
		})
	}

	if err := input.Validate(); err != nil {
		return WriteError(c, err)
	}

	account, err := h.userService.Register(c.Context(), input)
	if err != nil {
		return WriteError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(dto.RegisterOutput{
		ID:    account.ID,
		Name:  account.Name,
		Email: account.Email,
	})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var input dto.LoginInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid input",
		})
	}

	if err := input.Validate(); err != nil {
		return WriteError(c, err)
	}

	// Capture request metadata
	input.IPAddress = c.IP()
	input.UserAgent = string(c.Request().Header.UserAgent())

	tokenPair, err := h.userService.Login(c.Context(), input)
	if err != nil {
		return WriteError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(tokenPair)
}

func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	var input dto.RefreshInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid input"})
	}

	if err := input.Validate(); err != nil {
		return WriteError(c, err)
	}

	tokens, err := h.userService.Refresh(c.Context(), input)
	if err != nil {
		return WriteError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(tokens)
}

// Logout is stateless: tokens are signed and carry their own expiry, and
// there is no server-side revocation list. The client discards the pair.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "logged out",
	})
}

// VerifyEmailRequest issues a verification token for an unverified account.
// The response is the same whether or not the email is registered.
func (h *AuthHandler) VerifyEmailRequest(c *fiber.Ctx) error {
	var input dto.VerifyEmailRequestInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid input"})
	}

	if err := input.Validate(); err != nil {
		return WriteError(c, err)
	}

	token, err := h.userService.RequestEmailVerification(c.Context(), input.Email)
	if err != nil {
		return WriteError(c, err)
	}

	if token != "" {
		// TODO: hand the token to a mail sender once one is wired up.
		log.WithField("token", token).Info("verification token issued")
	}

	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
		"message": "if the account exists, a verification email has been sent",
	})
}

func (h *AuthHandler) VerifyEmailConfirm(c *fiber.Ctx) error {
	var input dto.VerifyEmailConfirmInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid input"})
	}

	if err := input.Validate(); err != nil {
		return WriteError(c, err)
	}

	account, err := h.userService.ConfirmEmailVerification(c.Context(), input.Token)
	if err != nil {
		return WriteError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(dto.NewAccountOutput(account))
}

func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	var input dto.ChangePasswordInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid input"})
	}

	if err := input.Validate(); err != nil {
		return WriteError(c, err)
	}

	if err := h.userService.ChangePassword(c.Context(), AccountID(c), input); err != nil {
		return WriteError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "password changed",
	})
}

func (h *AuthHandler) Me(c *fiber.Ctx) error {
	accountID := AccountID(c)
	if accountID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": apperrors.ErrInvalidToken.Error()})
	}

	account, err := h.userService.GetAccount(c.Context(), accountID)
	if err != nil {
		return WriteError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(dto.NewAccountOutput(account))
}

// WriteError maps the error taxonomy onto HTTP statuses in one place. The
// task handlers reuse it so both surfaces answer with the same shapes.
func WriteError(c *fiber.Ctx, err error) error {
	status := statusForError(err)
	if status == fiber.StatusInternalServerError {
		log.WithError(err).Error("unhandled error")
		return c.Status(status).JSON(fiber.Map{"error": "internal server error"})
	}

	return c.Status(status).JSON(fiber.Map{"error": messageForError(err)})
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		return fiber.StatusBadRequest
	case errors.Is(err, apperrors.ErrInvalidCredentials),
		errors.Is(err, apperrors.ErrInvalidToken),
		errors.Is(err, apperrors.ErrExpiredToken):
		return fiber.StatusUnauthorized
	case errors.Is(err, apperrors.ErrInactiveAccount),
		errors.Is(err, apperrors.ErrUnverifiedEmail),
		errors.Is(err, apperrors.ErrAccountUnavailable):
		return fiber.StatusForbidden
	case errors.Is(err, apperrors.ErrTaskNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, apperrors.ErrDuplicateEmail),
		errors.Is(err, apperrors.ErrAlreadyVerified),
		errors.Is(err, apperrors.ErrTaskCompleted),
		errors.Is(err, apperrors.ErrTaskPending):
		return fiber.StatusConflict
	case errors.Is(err, apperrors.ErrAccountLocked):
		return fiber.StatusLocked
	case errors.Is(err, apperrors.ErrRateLimited):
		return fiber.StatusTooManyRequests
	case errors.Is(err, apperrors.ErrTransientStore):
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusInternalServerError
	}
}

// messageForError keeps lockout responses generic: no unlock time leaks to
// the caller, only a cooldown notice.
func messageForError(err error) string {
	if errors.Is(err, apperrors.ErrAccountLocked) {
		return "account temporarily locked, try again later"
	}
	if errors.Is(err, apperrors.ErrTransientStore) {
		return apperrors.ErrTransientStore.Error()
	}
	return err.Error()
}
