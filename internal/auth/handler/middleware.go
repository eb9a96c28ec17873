package handler

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"

	"github.com/joselazo21/todo-list/internal/auth/domain"
	"github.com/joselazo21/todo-list/internal/auth/ratelimit"
	apperrors "github.com/joselazo21/todo-list/internal/errors"
	"github.com/joselazo21/todo-list/pkg/constant"
)

// RateLimit gates an endpoint by IP and, when the body carries one, by email,
// before the login flow is ever invoked. A limiter fault is logged and the
// request admitted; blocking all logins on a counter outage is worse than
// briefly losing the gate.
func RateLimit(limiter ratelimit.Limiter, endpoint string, limit int, window time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		keys := []string{ratelimit.Key(endpoint, "ip", c.IP())}

		var body struct {
			Email string `json:"email"`
		}
		if err := c.BodyParser(&body); err == nil && body.Email != "" {
			keys = append(keys, ratelimit.Key(endpoint, "email", domain.NormalizeEmail(body.Email)))
		}

		for _, key := range keys {
			ok, err := limiter.Allow(c.Context(), key, limit, window)
			if err != nil {
				log.WithError(err).WithField("key", key).Warn("rate limiter unavailable, admitting request")
				continue
			}
			if !ok {
				return WriteError(c, apperrors.ErrRateLimited)
			}
		}

		return c.Next()
	}
}

// RequireAuth verifies the bearer access token once at the boundary and
// stores the resolved account id in the request locals. Handlers never
// re-derive it.
func (h *AuthHandler) RequireAuth(c *fiber.Ctx) error {
	token, err := extractBearer(c.Get(fiber.HeaderAuthorization))
	if err != nil {
		return WriteError(c, err)
	}

	claims, err := h.tokenService.VerifyAccess(token)
	if err != nil {
		return WriteError(c, err)
	}

	c.Locals(constant.AccountIDLocal, claims.UserID)

	return c.Next()
}

// AccountID returns the account id resolved by RequireAuth, or "" when the
// request was not authenticated.
func AccountID(c *fiber.Ctx) string {
	id, _ := c.Locals(constant.AccountIDLocal).(string)
	return id
}

func extractBearer(header string) (string, error) {
	if header == "" {
		return "", apperrors.ErrInvalidToken
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", apperrors.ErrInvalidToken
	}

	return parts[1], nil
}
