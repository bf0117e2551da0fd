package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/Anurag-Zel/User-Registration/internal/account"
	"github.com/Anurag-Zel/User-Registration/internal/auth"
	"github.com/Anurag-Zel/User-Registration/internal/logging"
	"github.com/Anurag-Zel/User-Registration/internal/validate"
)

// ErrInvalidPassword means the re-verification password supplied for account
// deletion did not match the stored credential hash.
var ErrInvalidPassword = errors.New("invalid password")

// Service handles the profile operations of the account lifecycle.
type Service struct {
	accounts account.Repository
	logger   *logging.Logger
}

func NewService(accounts account.Repository, logger *logging.Logger) *Service {
	return &Service{accounts: accounts, logger: logger}
}

// GetProfile returns the live account record for the given id.
func (s *Service) GetProfile(ctx context.Context, id uuid.UUID) (*account.Account, error) {
	acc, err := s.accounts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, account.ErrNotFound) {
			return nil, account.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return acc, nil
}

// ProfilePatch carries the fields present in an update request. Nil means
// the field was absent and stays untouched; a present field replaces the
// stored value wholesale, including the location sub-object and the
// experience and education lists.
type ProfilePatch struct {
	FirstName  *string               `json:"firstName"`
	LastName   *string               `json:"lastName"`
	Phone      *string               `json:"phone"`
	Location   *account.Location     `json:"location"`
	Bio        *string               `json:"bio"`
	Skills     *[]string             `json:"skills"`
	Experience *[]account.Experience `json:"experience"`
	Education  *[]account.Education  `json:"education"`
}

func (p ProfilePatch) apply(profile *account.Profile) {
	if p.FirstName != nil {
		profile.FirstName = *p.FirstName
	}
	if p.LastName != nil {
		profile.LastName = *p.LastName
	}
	if p.Phone != nil {
		profile.Phone = *p.Phone
	}
	if p.Location != nil {
		profile.Location = p.Location
	}
	if p.Bio != nil {
		profile.Bio = *p.Bio
	}
	if p.Skills != nil {
		profile.Skills = *p.Skills
	}
	if p.Experience != nil {
		profile.Experience = *p.Experience
	}
	if p.Education != nil {
		profile.Education = *p.Education
	}
}

// UpdateProfile merges the patch into the stored profile, validates the
// result against the registration constraints, and persists only the
// profile subdocument.
func (s *Service) UpdateProfile(ctx context.Context, id uuid.UUID, patch ProfilePatch) (*account.Account, error) {
	acc, err := s.accounts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, account.ErrNotFound) {
			return nil, account.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	merged := acc.Profile
	patch.apply(&merged)
	account.TrimProfile(&merged)

	v := validate.New()
	account.ValidateProfile(v, merged, true)
	if err := v.Errors().AsError(); err != nil {
		return nil, err
	}

	updated, err := s.accounts.UpdateProfile(ctx, id, merged)
	if err != nil {
		if errors.Is(err, account.ErrNotFound) {
			return nil, account.ErrNotFound
		}
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	return updated, nil
}

// DeleteAccount removes the account after re-verifying a freshly supplied
// plaintext password against the stored hash. A valid token alone is not
// enough to destroy an account; verification always happens before the
// delete is issued to the store.
func (s *Service) DeleteAccount(ctx context.Context, id uuid.UUID, password string) error {
	acc, err := s.accounts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, account.ErrNotFound) {
			return account.ErrNotFound
		}
		return fmt.Errorf("failed to get account: %w", err)
	}

	if !auth.CheckPassword(password, acc.PasswordHash) {
		return ErrInvalidPassword
	}

	if err := s.accounts.Delete(ctx, id); err != nil {
		if errors.Is(err, account.ErrNotFound) {
			return account.ErrNotFound
		}
		return fmt.Errorf("failed to delete account: %w", err)
	}

	s.logger.Info("account deleted", "account_id", id)

	return nil
}
