package account

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// dbAccount is the bun model backing the accounts table. The profile lives
// in a single jsonb column so every write touches exactly one row.
type dbAccount struct {
	bun.BaseModel `bun:"table:accounts,alias:a"`

	ID           uuid.UUID  `bun:"id,pk,type:uuid,default:gen_random_uuid()"`
	Email        string     `bun:"email,notnull,unique"`
	PasswordHash string     `bun:"password_hash,notnull"`
	Profile      Profile    `bun:"profile,type:jsonb,notnull"`
	IsActive     bool       `bun:"is_active,notnull,default:true"`
	LastLogin    *time.Time `bun:"last_login"`
	CreatedAt    time.Time  `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt    time.Time  `bun:"updated_at,notnull,default:current_timestamp"`
}

// BunRepository is the Postgres implementation of Repository.
type BunRepository struct {
	db *bun.DB
}

func NewBunRepository(db *bun.DB) *BunRepository {
	return &BunRepository{db: db}
}

func (r *BunRepository) Create(ctx context.Context, email, passwordHash string, profile Profile) (*Account, error) {
	dbAcc := &dbAccount{
		Email:        email,
		PasswordHash: passwordHash,
		Profile:      profile,
		IsActive:     true,
	}

	_, err := r.db.NewInsert().
		Model(dbAcc).
		Returning("*").
		Exec(ctx)

	if err != nil {
		if strings.Contains(err.Error(), "duplicate key value violates unique constraint") {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	return mapDBAccountToModel(dbAcc), nil
}

func (r *BunRepository) GetByEmail(ctx context.Context, email string) (*Account, error) {
	dbAcc := new(dbAccount)
	err := r.db.NewSelect().
		Model(dbAcc).
		Where("email = ?", email).
		Scan(ctx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get account by email: %w", err)
	}

	return mapDBAccountToModel(dbAcc), nil
}

func (r *BunRepository) GetByID(ctx context.Context, id uuid.UUID) (*Account, error) {
	dbAcc := new(dbAccount)
	err := r.db.NewSelect().
		Model(dbAcc).
		Where("id = ?", id).
		Scan(ctx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get account by id: %w", err)
	}

	return mapDBAccountToModel(dbAcc), nil
}

func (r *BunRepository) UpdateProfile(ctx context.Context, id uuid.UUID, profile Profile) (*Account, error) {
	dbAcc := new(dbAccount)
	err := r.db.NewUpdate().
		Model(dbAcc).
		Set("profile = ?", profile).
		Set("updated_at = NOW()").
		Where("id = ?", id).
		Returning("*").
		Scan(ctx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	return mapDBAccountToModel(dbAcc), nil
}

func (r *BunRepository) UpdateLastLogin(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.NewUpdate().
		Model((*dbAccount)(nil)).
		Set("last_login = NOW()").
		Set("updated_at = NOW()").
		Where("id = ?", id).
		Exec(ctx)

	if err != nil {
		return fmt.Errorf("failed to update last login: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *BunRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.NewDelete().
		Model((*dbAccount)(nil)).
		Where("id = ?", id).
		Exec(ctx)

	if err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

// mapDBAccountToModel converts the database model to the domain model.
func mapDBAccountToModel(dbAcc *dbAccount) *Account {
	return &Account{
		ID:           dbAcc.ID,
		Email:        dbAcc.Email,
		PasswordHash: dbAcc.PasswordHash,
		Profile:      dbAcc.Profile,
		IsActive:     dbAcc.IsActive,
		LastLogin:    dbAcc.LastLogin,
		CreatedAt:    dbAcc.CreatedAt,
		UpdatedAt:    dbAcc.UpdatedAt,
	}
}
