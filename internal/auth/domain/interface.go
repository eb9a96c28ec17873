package domain

import (
	"context"
	"time"
)

type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (*Account, error)
	GetByID(ctx context.Context, id string) (*Account, error)
	Create(ctx context.Context, account *Account) error
	// RecordFailedAttempt increments the failure counter in a single
	// conditional update. When the counter reaches threshold the account is
	// locked for lockFor and the counter is reset to zero.
	RecordFailedAttempt(ctx context.Context, id string, threshold int, lockFor time.Duration) (*Account, error)
	// RecordSuccessfulLogin zeroes the failure counter, clears any lockout
	// and stamps the last-login metadata.
	RecordSuccessfulLogin(ctx context.Context, id, ip string) (*Account, error)
	// MarkEmailVerified flips is_email_verified; nil account means no such row.
	MarkEmailVerified(ctx context.Context, id string) (*Account, error)
	UpdatePassword(ctx context.Context, id, passwordHash string) error
}
