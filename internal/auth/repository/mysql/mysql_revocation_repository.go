// Package mysql implements revocation persistence for MySQL.
package mysql

import (
	"context"
	"database/sql"
	"errors"
	"time"

	authDomain "github.com/onionboard/backend/internal/auth/domain"
	"github.com/onionboard/backend/internal/database"
	apperrors "github.com/onionboard/backend/internal/errors"
)

// MySQLRevocationRepository implements RevocationEntry persistence for MySQL.
// Uses BINARY(16) for UUIDs with transaction support via database.GetTx().
type MySQLRevocationRepository struct {
	db *sql.DB
}

// Create records a revocation using BINARY(16) for the ID. INSERT IGNORE
// makes a second revoke of the same token hash a no-op.
func (m *MySQLRevocationRepository) Create(ctx context.Context, entry *authDomain.RevocationEntry) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT IGNORE INTO token_revocations (id, token_hash, username, token_expires_at, created_at)
			  VALUES (?, ?, ?, ?, ?)`

	id, err := entry.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal revocation id")
	}

	_, err = querier.ExecContext(
		ctx,
		query,
		id,
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
// username, ignoring entries whose token expired before notBefore.
func (m *MySQLRevocationRepository) GetLatestByUsername(
	ctx context.Context,
	username string,
	notBefore time.Time,
) (*authDomain.RevocationEntry, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, token_hash, username, token_expires_at, created_at
			  FROM token_revocations
			  WHERE username = ? AND token_expires_at >= ?
			  ORDER BY token_expires_at DESC, created_at DESC
			  LIMIT 1`

	var entry authDomain.RevocationEntry
	var id []byte

	err := querier.QueryRowContext(ctx, query, username, notBefore).Scan(
		&id,
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

	if err := entry.ID.UnmarshalBinary(id); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal revocation id")
	}

	return &entry, nil
}

// CountInert counts entries whose token expired before cutoff.
func (m *MySQLRevocationRepository) CountInert(ctx context.Context, cutoff time.Time) (int64, error) {
	querier := database.GetTx(ctx, m.db)

	var count int64
	err := querier.QueryRowContext(
		ctx,
		`SELECT COUNT(*) FROM token_revocations WHERE token_expires_at < ?`,
		cutoff,
	).Scan(&count)
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to count inert revocations")
	}
	return count, nil
}

// DeleteInert removes entries whose token expired before cutoff and returns how many were removed.
func (m *MySQLRevocationRepository) DeleteInert(ctx context.Context, cutoff time.Time) (int64, error) {
	querier := database.GetTx(ctx, m.db)

	result, err := querier.ExecContext(
		ctx,
		`DELETE FROM token_revocations WHERE token_expires_at < ?`,
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

// NewMySQLRevocationRepository creates a new MySQL revocation repository.
func NewMySQLRevocationRepository(db *sql.DB) *MySQLRevocationRepository {
	return &MySQLRevocationRepository{db: db}
}
