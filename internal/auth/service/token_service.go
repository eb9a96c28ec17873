package service

//go:generate mockgen -destination=../../mocks/mock_token_generator.go -package=mocks github.com/joselazo21/todo-list/internal/auth/service TokenGenerator

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	apperrors "github.com/joselazo21/todo-list/internal/errors"
	"github.com/joselazo21/todo-list/pkg/constant"
)

type TokenGenerator interface {
	GeneratePair(accountID string) (access string, refresh string, accessExpiresAt time.Time, err error)
	GenerateAccess(accountID string) (string, time.Time, error)
	GenerateRefresh(accountID string) (string, error)
	GenerateVerification(accountID string) (string, error)
	VerifyAccess(tokenString string) (*JWTCustomClaims, error)
	VerifyRefresh(tokenString string) (*JWTCustomClaims, error)
	VerifyVerification(tokenString string) (*JWTCustomClaims, error)
	GetAccessTokenExpiry() time.Duration
	GetRefreshTokenExpiry() time.Duration
}

type TokenService struct {
	AccessTokenSecret  string
	RefreshTokenSecret string
	AccessTokenExpiry  time.Duration
	RefreshTokenExpiry time.Duration
	VerifyTokenExpiry  time.Duration
}

type JWTCustomClaims struct {
	jwt.RegisteredClaims
	UserID    string `json:"user_id"`
	TokenType string `json:"token_type"`
}

func NewTokenService(accessSecret, refreshSecret string, accessMinutes, refreshMinutes, verifyMinutes int) *TokenService {
	return &TokenService{
		AccessTokenSecret:  accessSecret,
		RefreshTokenSecret: refreshSecret,
		AccessTokenExpiry:  time.Duration(accessMinutes) * time.Minute,
		RefreshTokenExpiry: time.Duration(refreshMinutes) * time.Minute,
		VerifyTokenExpiry:  time.Duration(verifyMinutes) * time.Minute,
	}
}

func (ts *TokenService) GeneratePair(accountID string) (string, string, time.Time, error) {
	access, expiresAt, err := ts.GenerateAccess(accountID)
	if err != nil {
		return "", "", time.Time{}, err
	}

	refresh, err := ts.GenerateRefresh(accountID)
	if err != nil {
		return "", "", time.Time{}, err
	}

	return access, refresh, expiresAt, nil
}

func (ts *TokenService) GenerateAccess(accountID string) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(ts.AccessTokenExpiry)

	token, err := ts.sign(accountID, constant.TokenKindAccess, now, expiresAt, ts.AccessTokenSecret)
	if err != nil {
		return "", time.Time{}, err
	}

	return token, expiresAt, nil
}

func (ts *TokenService) GenerateRefresh(accountID string) (string, error) {
	now := time.Now()
	return ts.sign(accountID, constant.TokenKindRefresh, now, now.Add(ts.RefreshTokenExpiry), ts.RefreshTokenSecret)
}

// GenerateVerification issues a single-purpose email-verification token. The
// token_type claim keeps it from ever passing as an access or refresh token.
func (ts *TokenService) GenerateVerification(accountID string) (string, error) {
	now := time.Now()
	return ts.sign(accountID, constant.TokenKindVerify, now, now.Add(ts.VerifyTokenExpiry), ts.AccessTokenSecret)
}

func (ts *TokenService) sign(accountID, kind string, issuedAt, expiresAt time.Time, secret string) (string, error) {
	claims := JWTCustomClaims{
		UserID:    accountID,
		TokenType: kind,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// VerifyAccess parses and validates an access token string.
func (ts *TokenService) VerifyAccess(tokenString string) (*JWTCustomClaims, error) {
	return ts.verify(tokenString, constant.TokenKindAccess, ts.AccessTokenSecret)
}

// VerifyRefresh parses and validates a refresh token string.
func (ts *TokenService) VerifyRefresh(tokenString string) (*JWTCustomClaims, error) {
	return ts.verify(tokenString, constant.TokenKindRefresh, ts.RefreshTokenSecret)
}

// VerifyVerification parses and validates an email-verification token string.
func (ts *TokenService) VerifyVerification(tokenString string) (*JWTCustomClaims, error) {
	return ts.verify(tokenString, constant.TokenKindVerify, ts.AccessTokenSecret)
}

func (ts *TokenService) verify(tokenString, kind, secret string) (*JWTCustomClaims, error) {
	claims := &JWTCustomClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		// Ensure the token's signing method is HMAC.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})

	if err != nil {
		// Expiry and signature mismatch are distinct outcomes: expired tokens
		// prompt a refresh, anything else forces a re-login.
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperrors.ErrExpiredToken
		}
		return nil, apperrors.ErrInvalidToken
	}

	if !token.Valid || claims.TokenType != kind {
		return nil, apperrors.ErrInvalidToken
	}

	return claims, nil
}

func (ts *TokenService) GetAccessTokenExpiry() time.Duration {
	return ts.AccessTokenExpiry
}

func (ts *TokenService) GetRefreshTokenExpiry() time.Duration {
	return ts.RefreshTokenExpiry
}
