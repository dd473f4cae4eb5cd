// Package repository implements revocation persistence for PostgreSQL.
// The mysql subpackage holds the MySQL variant.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	authDomain "github.com/onionboard/backend/internal/auth/domain"
	"github.com/onionboard/backend/internal/database"
	apperrors "github.com/onionboard/backend/internal/errors"
)

// PostgreSQLRevocationRepository implements RevocationEntry persistence for PostgreSQL.
// Uses native UUID types with transaction support via database.GetTx().
type PostgreSQLRevocationRepository struct {
	db *sql.DB
}

// Create records a revocation. A second entry for the same token hash is
// silently ignored so revoking twice has no effect.
func (p *PostgreSQLRevocationRepository) Create(ctx context.Context, entry *authDomain.RevocationEntry) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO token_revocations (id, token_hash, username, token_expires_at, created_at)
			  VALUES ($1, $2, $3, $4, $5)
			  ON CONFLICT (token_hash) DO NOTHING`

	_, err := querier.ExecContext(
		ctx,
		query,
		entry.ID,
		entry.TokenHash,
		entry.Username,
		entry.TokenExpiresAt,
		entry.CreatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create revocation")
	}
	return nil
}

// GetLatestByUsername returns the entry with the furthest token expiry for
// username, ignoring entries whose token expired before notBefore. Returns
// ErrRevocationNotFound when none is left.
func (p *PostgreSQLRevocationRepository) GetLatestByUsername(
	ctx context.Context,
	username string,
	notBefore time.Time,
) (*authDomain.RevocationEntry, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, token_hash, username, token_expires_at, created_at
			  FROM token_revocations
			  WHERE username = $1 AND token_expires_at >= $2
			  ORDER BY token_expires_at DESC, created_at DESC
			  LIMIT 1`

	var entry authDomain.RevocationEntry

	err := querier.QueryRowContext(ctx, query, username, notBefore).Scan(
		&entry.ID,
		&entry.TokenHash,
		&entry.Username,
		&entry.TokenExpiresAt,
		&entry.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, authDomain.ErrRevocationNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get latest revocation")
	}

	return &entry, nil
}

// CountInert counts entries whose token expired before cutoff.
func (p *PostgreSQLRevocationRepository) CountInert(ctx context.Context, cutoff time.Time) (int64, error) {
	querier := database.GetTx(ctx, p.db)

	var count int64
	err := querier.QueryRowContext(
		ctx,
		`SELECT COUNT(*) FROM token_revocations WHERE token_expires_at < $1`,
		cutoff,
	).Scan(&count)
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to count inert revocations")
	}
	return count, nil
}

// DeleteInert removes entries whose token expired before cutoff and returns how many were removed.
func (p *PostgreSQLRevocationRepository) DeleteInert(ctx context.Context, cutoff time.Time) (int64, error) {
	querier := database.GetTx(ctx, p.db)

	result, err := querier.ExecContext(
		ctx,
		`DELETE FROM token_revocations WHERE token_expires_at < $1`,
		cutoff,
	)
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to delete inert revocations")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to read deleted revocation count")
	}
	return affected, nil
}

// NewPostgreSQLRevocationRepository creates a new PostgreSQL revocation repository.
func NewPostgreSQLRevocationRepository(db *sql.DB) *PostgreSQLRevocationRepository {
	return &PostgreSQLRevocationRepository{db: db}
}
