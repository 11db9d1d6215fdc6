package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"transactions-dashboard/internal/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ServiceTokenSubject identifies tokens minted by the dashboard
const ServiceTokenSubject = "transactions-dashboard"

var (
	ErrInvalidToken      = errors.New("invalid token")
	ErrExpiredToken      = errors.New("token is expired")
	ErrInvalidIssuer     = errors.New("invalid issuer")
	ErrEmptyToken        = errors.New("empty token")
	ErrInvalidAuthHeader = errors.New("invalid authorization header format")
	ErrMissingSecret     = errors.New("token secret is not configured")
)

// TokenService issues and checks the short-lived HS256 tokens the dashboard
// presents to the transactions API
type TokenService struct {
	config.AuthConfig
}

// NewTokenService creates a new token service from the auth configuration
func NewTokenService(authConfig *config.AuthConfig) TokenServiceInterface {
	return &TokenService{
		AuthConfig: *authConfig,
	}
}

// GenerateServiceToken signs a token valid for TokenTTL
func (ts *TokenService) GenerateServiceToken() (string, time.Time, error) {
	if ts.TokenSecret == "" {
		return "", time.Time{}, ErrMissingSecret
	}

	now := time.Now()
	expiresAt := now.Add(ts.TokenTTL)

	claims := jwt.RegisteredClaims{
		Issuer:    ts.TokenIssuer,
		Subject:   ServiceTokenSubject,
		ID:        uuid.New().String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
		NotBefore: jwt.NewNumericDate(now),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(ts.TokenSecret))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign service token: %w", err)
	}

	return tokenString, expiresAt, nil
}

// ValidateServiceToken verifies signature, expiry and issuer
func (ts *TokenService) ValidateServiceToken(tokenString string) (*jwt.RegisteredClaims, error) {
	if tokenString == "" {
		return nil, ErrEmptyToken
	}

	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, ts.keyFunc)
	if err != nil {
		return nil, ts.mapTokenError(err)
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	if claims.Issuer != ts.TokenIssuer {
		return nil, ErrInvalidIssuer
	}

	return claims, nil
}

// ExtractTokenFromHeader extracts the JWT token from the Authorization header
func (ts *TokenService) ExtractTokenFromHeader(authHeader string) (string, error) {
	if authHeader == "" {
		return "", ErrInvalidAuthHeader
	}

	const bearerPrefix = "bearer "
	if !strings.HasPrefix(strings.ToLower(authHeader), bearerPrefix) {
		return "", ErrInvalidAuthHeader
	}

	token := strings.TrimSpace(authHeader[len(bearerPrefix):])
	if token == "" {
		return "", ErrInvalidAuthHeader
	}

	return token, nil
}

func (ts *TokenService) keyFunc(token *jwt.Token) (interface{}, error) {
	if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
	}
	return []byte(ts.TokenSecret), nil
}

func (ts *TokenService) mapTokenError(err error) error {
	if errors.Is(err, jwt.ErrTokenExpired) {
		return ErrExpiredToken
	}
	return fmt.Errorf("%w: %v", ErrInvalidToken, err)
}
