package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/shopfabric/backend/services/idp/internal/models"
)

const (
	insertSecondFactorQuery = `
		INSERT INTO second_factors (account_id, secret, confirmed, last_verified_counter, created_at)
		VALUES ($1, $2, false, 0, now())
		ON CONFLICT (account_id) DO UPDATE SET secret = EXCLUDED.secret, confirmed = false, last_verified_counter = 0
		RETURNING id, created_at`

	getSecondFactorByAccountQuery = `SELECT * FROM second_factors WHERE account_id = $1`
	confirmSecondFactorQuery      = `UPDATE second_factors SET confirmed = true WHERE account_id = $1`
	advanceVerifiedCounterQuery   = `UPDATE second_factors SET last_verified_counter = $2 WHERE account_id = $1 AND last_verified_counter < $2`
	deleteSecondFactorQuery       = `DELETE FROM second_factors WHERE account_id = $1`
)

// SecondFactorRepository persists SecondFactor rows.
type SecondFactorRepository struct {
	db *sqlx.DB
}

// NewSecondFactorRepository builds a SecondFactorRepository over db.
func NewSecondFactorRepository(db *sqlx.DB) *SecondFactorRepository {
	return &SecondFactorRepository{db: db}
}

// Upsert creates or replaces the pending (unconfirmed) secret for an
// account, per the setup flow's allow-re-setup-before-confirm semantics.
func (r *SecondFactorRepository) Upsert(ctx context.Context, sf *models.SecondFactor) error {
	return r.db.QueryRowxContext(ctx, insertSecondFactorQuery, sf.AccountID, sf.Secret).
		Scan(&sf.ID, &sf.CreatedAt)
}

// GetByAccountID returns the second factor row for an account, if any.
func (r *SecondFactorRepository) GetByAccountID(ctx context.Context, accountID int64) (*models.SecondFactor, error) {
	var sf models.SecondFactor
	if err := r.db.GetContext(ctx, &sf, getSecondFactorByAccountQuery, accountID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &sf, nil
}

// Confirm marks a second factor confirmed, activating enforcement.
func (r *SecondFactorRepository) Confirm(ctx context.Context, accountID int64) error {
	_, err := r.db.ExecContext(ctx, confirmSecondFactorQuery, accountID)
	return err
}

// AdvanceVerifiedCounter atomically accepts counter as the new
// last-verified step, but only if it is strictly greater than the
// currently recorded one. It reports ok=false when another concurrent
// verification already advanced past counter first, so the caller can
// treat this attempt as a replay — this is what keeps two parallel
// logins presenting the same TOTP value from both succeeding.
func (r *SecondFactorRepository) AdvanceVerifiedCounter(ctx context.Context, accountID int64, counter uint64) (ok bool, err error) {
	res, err := r.db.ExecContext(ctx, advanceVerifiedCounterQuery, accountID, counter)
	if err != nil {
		return false, err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows == 1, nil
}

// Delete removes the second factor for an account (2FA disable).
func (r *SecondFactorRepository) Delete(ctx context.Context, accountID int64) error {
	_, err := r.db.ExecContext(ctx, deleteSecondFactorQuery, accountID)
	return err
}
