package repository

import (
	"context"
	"database/sql"
	"time"

	authDomain "github.com/onionboard/backend/internal/auth/domain"
	"github.com/onionboard/backend/internal/database"
	apperrors "github.com/onionboard/backend/internal/errors"
)

// MySQLActivityRepository reports the latest write of a user from the board tables.
type MySQLActivityRepository struct {
	db *sql.DB
}

// LatestActionAt returns the time of username's latest action of kind, or nil if there is none.
func (m *MySQLActivityRepository) LatestActionAt(
	ctx context.Context,
	username string,
	kind authDomain.ActionKind,
) (*time.Time, error) {
	query, err := latestActionQuery(kind, "?")
	if err != nil {
		return nil, err
	}

	querier := database.GetTx(ctx, m.db)

	var latest sql.NullTime
	if err := querier.QueryRowContext(ctx, query, username).Scan(&latest); err != nil {
		return nil, apperrors.Wrap(err, "failed to get latest action")
	}
	if !latest.Valid {
		return nil, nil
	}

	at := latest.Time.UTC()
	return &at, nil
}

// NewMySQLActivityRepository creates a new MySQL activity repository.
func NewMySQLActivityRepository(db *sql.DB) *MySQLActivityRepository {
	return &MySQLActivityRepository{db: db}
}
