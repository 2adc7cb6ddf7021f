package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"evently/internal/domain"
)

type passwordResetRepository struct {
	DB *sql.DB
}

// NewPasswordResetRepository returns a domain.PasswordResetRepository implemented with Postgres.
func NewPasswordResetRepository(db *sql.DB) domain.PasswordResetRepository {
	return &passwordResetRepository{DB: db}
}

// Create stores a new code and drops any earlier code for the same email.
func (r *passwordResetRepository) Create(ctx context.Context, email, codeHash string, expiresAt time.Time) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM password_reset_codes WHERE email = $1`, email); err != nil {
		return err
	}
	query := `
		INSERT INTO password_reset_codes (email, code_hash, expires_at)
		VALUES ($1, $2, $3)
	`
	if _, err := tx.ExecContext(ctx, query, email, codeHash, expiresAt); err != nil {
		return err
	}
	return tx.Commit()
}

// Consume deletes a matching unexpired code in one statement, so a code can be used once.
func (r *passwordResetRepository) Consume(ctx context.Context, email, codeHash string) (bool, error) {
	query := `
		DELETE FROM password_reset_codes
		WHERE email = $1 AND code_hash = $2 AND expires_at > NOW()
		RETURNING id
	`
	var id string
	err := r.DB.QueryRowContext(ctx, query, email, codeHash).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
