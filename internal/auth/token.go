package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Anurag-Zel/User-Registration/internal/config"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
)

// TokenClaims is the identity assertion carried by a token.
type TokenClaims struct {
	AccountID string    `json:"account_id"` // UUID stored as string in token
	Email     string    `json:"email"`
	IssuedAt  time.Time `json:"iat"`
	ExpiresAt time.Time `json:"exp"`
}

// TokenService mints and validates signed, time-bounded identity assertions.
// Implementations include JWTService (HS256) and PasetoService (PASETO
// v4.local). Verification is stateless: signature plus expiry, no store
// lookup.
type TokenService interface {
	CreateToken(accountID uuid.UUID, email string, duration time.Duration) (string, error)
	VerifyToken(tokenStr string) (*TokenClaims, error)
}

// NewTokenService builds the configured token backend.
func NewTokenService(cfg config.AuthConfig) (TokenService, error) {
	switch cfg.TokenBackend {
	case config.TokenBackendJWT:
		return NewJWTService(cfg.JWTSecret)
	case config.TokenBackendPaseto:
		return NewPasetoService(cfg.PasetoKey)
	default:
		return nil, fmt.Errorf("unknown token backend %q", cfg.TokenBackend)
	}
}
