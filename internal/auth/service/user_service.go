package service

//go:generate mockgen -destination=../../mocks/mock_user_repository.go -package=mocks github.com/joselazo21/todo-list/internal/auth/domain UserRepository

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/joselazo21/todo-list/config"
	"github.com/joselazo21/todo-list/internal/auth/domain"
	"github.com/joselazo21/todo-list/internal/auth/dto"
	apperrors "github.com/joselazo21/todo-list/internal/errors"
	"github.com/joselazo21/todo-list/pkg/constant"
)

type UserService struct {
	repo         domain.UserRepository
	tokenService TokenGenerator
	cfg          *config.Config
}

func NewUserService(repo domain.UserRepository, tokenService TokenGenerator, cfg *config.Config) *UserService {
	return &UserService{
		repo:         repo,
		tokenService: tokenService,
		cfg:          cfg,
	}
}

func (s *UserService) Register(ctx context.Context, input dto.RegisterInput) (*domain.Account, error) {
	email := domain.NormalizeEmail(input.Email)

	existing, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.ErrDuplicateEmail
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()

	account := &domain.Account{
		ID:              uuid.NewString(),
		Name:            strings.TrimSpace(input.Name),
		Email:           email,
		PasswordHash:    string(hashedPassword),
		IsActive:        true,
		IsEmailVerified: !s.cfg.RequireVerifiedEmail,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	// Create maps a concurrent duplicate insert to ErrDuplicateEmail, so the
	// GetByEmail pre-check above is not a race window.
	if err := s.repo.Create(ctx, account); err != nil {
		return nil, err
	}

	return account, nil
}

// Login evaluates a single authentication attempt. Each check short-circuits
// to a terminal outcome; only a wrong password touches the failure counter,
// so probing a locked or inactive account cannot extend its lock.
func (s *UserService) Login(ctx context.Context, input dto.LoginInput) (*dto.TokenResponse, error) {
	account, err := s.repo.GetByEmail(ctx, domain.NormalizeEmail(input.Email))
	if err != nil {
		return nil, err
	}
	if account == nil {
		// Same outcome as a wrong password, so responses do not reveal
		// which emails are registered.
		return nil, apperrors.ErrInvalidCredentials
	}

	now := time.Now()

	if account.Locked(now) {
		return nil, apperrors.ErrAccountLocked
	}
	if !account.IsActive {
		return nil, apperrors.ErrInactiveAccount
	}
	if s.cfg.RequireVerifiedEmail && !account.IsEmailVerified {
		return nil, apperrors.ErrUnverifiedEmail
	}

	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(input.Password)) != nil {
		updated, recordErr := s.repo.RecordFailedAttempt(ctx, account.ID, s.cfg.LoginMaxAttempts, s.cfg.LockoutDuration)
		if recordErr != nil {
			return nil, recordErr
		}
		if updated != nil && updated.Locked(now) {
			log.WithFields(log.Fields{
				"account_id": account.ID,
				"ip":         input.IPAddress,
			}).Warn("account locked after repeated failed logins")
		}
		return nil, apperrors.ErrInvalidCredentials
	}

	updated, err := s.repo.RecordSuccessfulLogin(ctx, account.ID, input.IPAddress)
	if err != nil {
		return nil, err
	}

	accessToken, refreshToken, _, err := s.tokenService.GeneratePair(account.ID)
	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"account_id": account.ID,
		"ip":         input.IPAddress,
	}).Info("login succeeded")

	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    constant.DefaultTokenType,
		ExpiresIn:    int(s.tokenService.GetAccessTokenExpiry().Seconds()),
		User:         dto.NewAccountOutput(updated),
	}, nil
}

// Refresh exchanges a valid refresh token for a new access token. The
// refresh token is only rotated when rotation is enabled; otherwise the
// caller keeps using the old one until it expires.
func (s *UserService) Refresh(ctx context.Context, input dto.RefreshInput) (*dto.RefreshResponse, error) {
	claims, err := s.tokenService.VerifyRefresh(input.RefreshToken)
	if err != nil {
		return nil, err
	}

	account, err := s.repo.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	if account == nil || !account.IsActive {
		return nil, apperrors.ErrAccountUnavailable
	}

	accessToken, _, err := s.tokenService.GenerateAccess(account.ID)
	if err != nil {
		return nil, err
	}

	resp := &dto.RefreshResponse{
		AccessToken: accessToken,
		TokenType:   constant.DefaultTokenType,
		ExpiresIn:   int(s.tokenService.GetAccessTokenExpiry().Seconds()),
	}

	if s.cfg.RotateRefreshTokens {
		rotated, err := s.tokenService.GenerateRefresh(account.ID)
		if err != nil {
			return nil, err
		}
		resp.RefreshToken = rotated
	}

	return resp, nil
}

// RequestEmailVerification issues a verification token for the given email.
// The empty-token outcomes are deliberately indistinguishable to the caller:
// an unknown email and an already-verified one both yield ("", nil), so the
// endpoint does not reveal which addresses are registered.
func (s *UserService) RequestEmailVerification(ctx context.Context, email string) (string, error) {
	account, err := s.repo.GetByEmail(ctx, domain.NormalizeEmail(email))
	if err != nil {
		return "", err
	}
	if account == nil || account.IsEmailVerified {
		return "", nil
	}

	return s.tokenService.GenerateVerification(account.ID)
}

// ConfirmEmailVerification validates a verification token and flips the
// account's verified flag.
func (s *UserService) ConfirmEmailVerification(ctx context.Context, token string) (*domain.Account, error) {
	claims, err := s.tokenService.VerifyVerification(token)
	if err != nil {
		return nil, err
	}

	account, err := s.repo.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, apperrors.ErrAccountUnavailable
	}
	if account.IsEmailVerified {
		return nil, apperrors.ErrAlreadyVerified
	}

	updated, err := s.repo.MarkEmailVerified(ctx, account.ID)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, apperrors.ErrAccountUnavailable
	}

	log.WithField("account_id", updated.ID).Info("email verified")

	return updated, nil
}

// ChangePassword verifies the current password before accepting a new one.
func (s *UserService) ChangePassword(ctx context.Context, id string, input dto.ChangePasswordInput) error {
	account, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if account == nil {
		return apperrors.ErrAccountUnavailable
	}

	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(input.CurrentPassword)) != nil {
		return apperrors.ErrInvalidCredentials
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	if err := s.repo.UpdatePassword(ctx, id, string(hashed)); err != nil {
		return err
	}

	log.WithField("account_id", id).Info("password changed")

	return nil
}

// GetAccount resolves an account summary for the authenticated caller.
func (s *UserService) GetAccount(ctx context.Context, id string) (*domain.Account, error) {
	account, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, apperrors.ErrAccountUnavailable
	}
	return account, nil
}
