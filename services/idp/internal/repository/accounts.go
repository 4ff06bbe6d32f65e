// Package repository holds the IdP's sqlx-backed data access, one file
// per table. Grounded on the teacher's BaseRepository (raw SQL constants,
// sqlx named-exec, context-scoped calls) but written directly against
// this service's own schema rather than through a shared generic base,
// since the teacher's BaseRepository is itself scoped to its unrelated
// habits/goals/articles tables.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/zeromicro/go-zero/core/trace"

	"github.com/shopfabric/backend/services/idp/internal/models"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("repository: not found")

const (
	insertAccountQuery = `
		INSERT INTO accounts (username, email, password_hash, active, token_version, is_admin, created_at)
		VALUES ($1, $2, $3, true, 0, $4, now())
		RETURNING id, created_at`

	getAccountByIDQuery       = `SELECT * FROM accounts WHERE id = $1`
	getAccountByUsernameQuery = `SELECT * FROM accounts WHERE username = $1`
	getAccountByEmailQuery    = `SELECT * FROM accounts WHERE email = $1`
	bumpTokenVersionQuery     = `UPDATE accounts SET token_version = token_version + 1 WHERE id = $1`
	setAccountActiveQuery     = `UPDATE accounts SET active = $2 WHERE id = $1`
)

// AccountRepository persists Account rows.
type AccountRepository struct {
	db *sqlx.DB
}

// NewAccountRepository builds an AccountRepository over db.
func NewAccountRepository(db *sqlx.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

// Create inserts a new account and fills in its generated id/created_at.
func (r *AccountRepository) Create(ctx context.Context, a *models.Account) error {
	ctx, span := trace.TracerFromContext(ctx).Start(ctx, "AccountRepository.Create")
	defer span.End()

	return r.db.QueryRowxContext(ctx, insertAccountQuery, a.Username, a.Email, a.PasswordHash, a.IsAdmin).
		Scan(&a.ID, &a.CreatedAt)
}

// GetByID returns the account with the given id.
func (r *AccountRepository) GetByID(ctx context.Context, id int64) (*models.Account, error) {
	ctx, span := trace.TracerFromContext(ctx).Start(ctx, "AccountRepository.GetByID")
	defer span.End()

	var a models.Account
	if err := r.db.GetContext(ctx, &a, getAccountByIDQuery, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

// GetByUsername returns the account with the given username.
func (r *AccountRepository) GetByUsername(ctx context.Context, username string) (*models.Account, error) {
	ctx, span := trace.TracerFromContext(ctx).Start(ctx, "AccountRepository.GetByUsername")
	defer span.End()

	var a models.Account
	if err := r.db.GetContext(ctx, &a, getAccountByUsernameQuery, username); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

// GetByEmail returns the account with the given email.
func (r *AccountRepository) GetByEmail(ctx context.Context, email string) (*models.Account, error) {
	ctx, span := trace.TracerFromContext(ctx).Start(ctx, "AccountRepository.GetByEmail")
	defer span.End()

	var a models.Account
	if err := r.db.GetContext(ctx, &a, getAccountByEmailQuery, email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

// BumpTokenVersion increments the account's token version, invalidating
// every access/refresh token issued against the previous version.
func (r *AccountRepository) BumpTokenVersion(ctx context.Context, id int64) error {
	ctx, span := trace.TracerFromContext(ctx).Start(ctx, "AccountRepository.BumpTokenVersion")
	defer span.End()

	_, err := r.db.ExecContext(ctx, bumpTokenVersionQuery, id)
	return err
}

// SetActive flips an account's active flag.
func (r *AccountRepository) SetActive(ctx context.Context, id int64, active bool) error {
	ctx, span := trace.TracerFromContext(ctx).Start(ctx, "AccountRepository.SetActive")
	defer span.End()

	_, err := r.db.ExecContext(ctx, setAccountActiveQuery, id, active)
	return err
}
