package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/shopfabric/backend/services/idp/internal/models"
)

const (
	insertRecoveryCodeQuery      = `INSERT INTO recovery_codes (account_id, code_hash, used, created_at) VALUES ($1, $2, false, now())`
	listRecoveryCodesQuery       = `SELECT * FROM recovery_codes WHERE account_id = $1`
	listUnusedRecoveryCodesQuery = `SELECT * FROM recovery_codes WHERE account_id = $1 AND used = false`
	markRecoveryCodeUsedQuery    = `UPDATE recovery_codes SET used = true WHERE id = $1 AND used = false`
	deleteRecoveryCodesQuery     = `DELETE FROM recovery_codes WHERE account_id = $1`
)

// RecoveryCodeRepository persists RecoveryCode rows.
type RecoveryCodeRepository struct {
	db *sqlx.DB
}

// NewRecoveryCodeRepository builds a RecoveryCodeRepository over db.
func NewRecoveryCodeRepository(db *sqlx.DB) *RecoveryCodeRepository {
	return &RecoveryCodeRepository{db: db}
}

// ReplaceAll deletes any existing codes for an account and inserts a
// fresh batch, used both at initial 2FA setup and on regeneration.
func (r *RecoveryCodeRepository) ReplaceAll(ctx context.Context, accountID int64, hashes []string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, deleteRecoveryCodesQuery, accountID); err != nil {
		return err
	}
	for _, h := range hashes {
		if _, err := tx.ExecContext(ctx, insertRecoveryCodeQuery, accountID, h); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// ListUnused returns the not-yet-consumed recovery codes for an account.
func (r *RecoveryCodeRepository) ListUnused(ctx context.Context, accountID int64) ([]models.RecoveryCode, error) {
	var codes []models.RecoveryCode
	if err := r.db.SelectContext(ctx, &codes, listUnusedRecoveryCodesQuery, accountID); err != nil {
		return nil, err
	}
	return codes, nil
}

// MarkUsed atomically consumes a recovery code, but only if it has not
// already been consumed. It reports ok=false when another concurrent
// verification already marked it used first, so the caller can reject
// this attempt as a replay instead of issuing a second token for the
// same code — the same compare-and-set shape as
// SecondFactorRepository.AdvanceVerifiedCounter.
func (r *RecoveryCodeRepository) MarkUsed(ctx context.Context, id int64) (ok bool, err error) {
	res, err := r.db.ExecContext(ctx, markRecoveryCodeUsedQuery, id)
	if err != nil {
		return false, err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows == 1, nil
}
