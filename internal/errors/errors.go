package errors

import (
	"errors"
)

// Authentication and account-security errors
var (
	ErrDuplicateEmail     = errors.New("email already in use")       // 409
	ErrInvalidCredentials = errors.New("invalid email or password")  // 401, unknown email and wrong password share this message
	ErrAccountLocked      = errors.New("account temporarily locked") // 423
	ErrInactiveAccount    = errors.New("account is not active")      // 403
	ErrUnverifiedEmail    = errors.New("email is not verified")      // 403
	ErrAlreadyVerified    = errors.New("email already verified")     // 409
	ErrRateLimited        = errors.New("too many requests")          // 429
)

// Token errors
var (
	ErrInvalidToken       = errors.New("invalid token")       // 401, force re-login
	ErrExpiredToken       = errors.New("token expired")       // 401, prompt refresh
	ErrAccountUnavailable = errors.New("account unavailable") // 403
)

// Store errors
var (
	// ErrTransientStore marks failures where the store was unreachable or
	// faulted mid-operation. Safe to retry at a higher layer.
	ErrTransientStore = errors.New("store temporarily unavailable") // 503
)

// Task errors
var (
	ErrTaskNotFound  = errors.New("task not found")          // 404
	ErrTaskCompleted = errors.New("task already completed")  // 409
	ErrTaskPending   = errors.New("task is already pending") // 409
)

// Validation
var (
	ErrValidation = errors.New("validation failed") // 400
)
