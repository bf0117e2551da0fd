package account

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryRepository is an in-process Repository used by tests and local
// development. It enforces the same email uniqueness guarantee as the
// Postgres store, including under concurrent registration.
type MemoryRepository struct {
	mu       sync.Mutex
	accounts map[uuid.UUID]*Account
	byEmail  map[string]uuid.UUID
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		accounts: make(map[uuid.UUID]*Account),
		byEmail:  make(map[string]uuid.UUID),
	}
}

func (r *MemoryRepository) Create(ctx context.Context, email, passwordHash string, profile Profile) (*Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byEmail[email]; exists {
		return nil, ErrDuplicateEmail
	}

	now := time.Now()
	acc := &Account{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: passwordHash,
		Profile:      profile,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	r.accounts[acc.ID] = acc
	r.byEmail[email] = acc.ID

	copied := *acc
	return &copied, nil
}

func (r *MemoryRepository) GetByEmail(ctx context.Context, email string) (*Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id, ok := r.byEmail[email]
	if !ok {
		return nil, ErrNotFound
	}

	copied := *r.accounts[id]
	return &copied, nil
}

func (r *MemoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	acc, ok := r.accounts[id]
	if !ok {
		return nil, ErrNotFound
	}

	copied := *acc
	return &copied, nil
}

func (r *MemoryRepository) UpdateProfile(ctx context.Context, id uuid.UUID, profile Profile) (*Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	acc, ok := r.accounts[id]
	if !ok {
		return nil, ErrNotFound
	}

	acc.Profile = profile
	acc.UpdatedAt = time.Now()

	copied := *acc
	return &copied, nil
}

func (r *MemoryRepository) UpdateLastLogin(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	acc, ok := r.accounts[id]
	if !ok {
		return ErrNotFound
	}

	now := time.Now()
	acc.LastLogin = &now
	acc.UpdatedAt = now

	return nil
}

func (r *MemoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	acc, ok := r.accounts[id]
	if !ok {
		return ErrNotFound
	}

	delete(r.byEmail, acc.Email)
	delete(r.accounts, id)

	return nil
}

// SetActive toggles the isActive flag, for exercising the deactivated-account path.
func (r *MemoryRepository) SetActive(id uuid.UUID, active bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if acc, ok := r.accounts[id]; ok {
		acc.IsActive = active
	}
}
