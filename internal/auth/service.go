package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Anurag-Zel/User-Registration/internal/account"
	"github.com/Anurag-Zel/User-Registration/internal/logging"
	"github.com/Anurag-Zel/User-Registration/internal/validate"
)

// ErrInvalidCredentials covers every login failure mode so the response
// never reveals whether the email exists.
var ErrInvalidCredentials = errors.New("invalid email or password")

// Service orchestrates the credential side of the account lifecycle:
// registration and authentication.
type Service struct {
	accounts      account.Repository
	tokens        TokenService
	logger        *logging.Logger
	tokenDuration time.Duration
}

func NewService(accounts account.Repository, tokens TokenService, logger *logging.Logger, tokenDuration time.Duration) *Service {
	return &Service{
		accounts:      accounts,
		tokens:        tokens,
		logger:        logger,
		tokenDuration: tokenDuration,
	}
}

// RegisterInput is the validated payload for account creation.
type RegisterInput struct {
	Email    string
	Password string
	Profile  account.Profile
}

// Register validates the input, hashes the password, persists the account,
// and issues an identity token. The plaintext is discarded as soon as the
// hash exists; nothing is persisted when any step fails.
func (s *Service) Register(ctx context.Context, input RegisterInput) (*account.Account, string, error) {
	input.Email = NormalizeEmail(input.Email)
	account.TrimProfile(&input.Profile)

	v := validate.New()
	v.Field("email", input.Email,
		validate.Required("Email is required"),
		validate.Email())
	v.Field("password", input.Password,
		validate.Required("Password is required"),
		validate.Password())
	account.ValidateProfile(v, input.Profile, true)
	if err := v.Errors().AsError(); err != nil {
		return nil, "", err
	}

	passwordHash, err := HashPassword(input.Password)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	acc, err := s.accounts.Create(ctx, input.Email, passwordHash, input.Profile)
	if err != nil {
		if errors.Is(err, account.ErrDuplicateEmail) {
			return nil, "", account.ErrDuplicateEmail
		}
		return nil, "", fmt.Errorf("failed to create account: %w", err)
	}

	token, err := s.tokens.CreateToken(acc.ID, acc.Email, s.tokenDuration)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create token: %w", err)
	}

	return acc, token, nil
}

// Login verifies the credentials, refreshes lastLogin, and issues a token.
// A missing account, a wrong password, and a deactivated account all
// surface as ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, email, password string) (*account.Account, string, error) {
	email = NormalizeEmail(email)

	v := validate.New()
	v.Field("email", email,
		validate.Required("Email is required"),
		validate.Email())
	v.Field("password", password,
		validate.Required("Password is required"))
	if err := v.Errors().AsError(); err != nil {
		return nil, "", err
	}

	acc, err := s.accounts.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, account.ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("failed to get account: %w", err)
	}

	if !CheckPassword(password, acc.PasswordHash) {
		return nil, "", ErrInvalidCredentials
	}

	if !acc.IsActive {
		return nil, "", ErrInvalidCredentials
	}

	if err := s.accounts.UpdateLastLogin(ctx, acc.ID); err != nil {
		return nil, "", fmt.Errorf("failed to update last login: %w", err)
	}
	now := time.Now()
	acc.LastLogin = &now

	token, err := s.tokens.CreateToken(acc.ID, acc.Email, s.tokenDuration)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create token: %w", err)
	}

	return acc, token, nil
}

// NormalizeEmail lower-cases and trims the login handle. The same
// normalization applies at registration and login so lookups agree.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
