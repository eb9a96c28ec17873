package domain

import (
	"strings"
	"time"
)

type Account struct {
	ID                  string
	Name                string
	Email               string
	PasswordHash        string
	IsActive            bool
	IsEmailVerified     bool
	FailedLoginAttempts int
	LockedUntil         *time.Time
	LastLoginIP         *string
	LastLoginAt         *time.Time
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// Locked reports whether the account lockout is still in effect.
// An attempt exactly at the lockout timestamp is no longer locked.
func (a *Account) Locked(now time.Time) bool {
	if a.LockedUntil == nil {
		return false
	}
	return now.Before(*a.LockedUntil)
}

// NormalizeEmail lowercases and trims an email so lookups and the unique
// index agree on the login identifier.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
