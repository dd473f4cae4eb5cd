// Package repository implements article, comment and write activity persistence
// for PostgreSQL and MySQL.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	boardDomain "github.com/onionboard/backend/internal/board/domain"
	"github.com/onionboard/backend/internal/database"
	apperrors "github.com/onionboard/backend/internal/errors"
)

// PostgreSQLArticleRepository implements Article persistence for PostgreSQL.
type PostgreSQLArticleRepository struct {
	db *sql.DB
}

// Create inserts a new article.
func (p *PostgreSQLArticleRepository) Create(ctx context.Context, article *boardDomain.Article) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO articles (id, board_id, author, title, content, created_at, updated_at, edited_at, deleted_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := querier.ExecContext(
		ctx,
		query,
		article.ID,
		article.BoardID,
		article.Author,
		article.Title,
		article.Content,
		article.CreatedAt,
		article.UpdatedAt,
		article.EditedAt,
		article.DeletedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create article")
	}
	return nil
}

// GetByID retrieves a non-deleted article.
func (p *PostgreSQLArticleRepository) GetByID(ctx context.Context, articleID uuid.UUID) (*boardDomain.Article, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, board_id, author, title, content, created_at, updated_at, edited_at, deleted_at
			  FROM articles
			  WHERE id = $1 AND deleted_at IS NULL`

	var article boardDomain.Article
	err := querier.QueryRowContext(ctx, query, articleID).Scan(
		&article.ID,
		&article.BoardID,
		&article.Author,
		&article.Title,
		&article.Content,
		&article.CreatedAt,
		&article.UpdatedAt,
		&article.EditedAt,
		&article.DeletedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, boardDomain.ErrArticleNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get article")
	}

	return &article, nil
}

// Update persists title, content and the edit and delete timestamps.
func (p *PostgreSQLArticleRepository) Update(ctx context.Context, article *boardDomain.Article) error {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE articles
			  SET title = $1, content = $2, updated_at = $3, edited_at = $4, deleted_at = $5
			  WHERE id = $6`

	result, err := querier.ExecContext(
		ctx,
		query,
		article.Title,
		article.Content,
		article.UpdatedAt,
		article.EditedAt,
		article.DeletedAt,
		article.ID,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to update article")
	}

	return requireAffected(result, boardDomain.ErrArticleNotFound)
}

// ListByBoard retrieves non-deleted articles of a board, newest first.
func (p *PostgreSQLArticleRepository) ListByBoard(
	ctx context.Context,
	boardID int64,
	offset, limit int,
) ([]*boardDomain.Article, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, board_id, author, title, content, created_at, updated_at, edited_at, deleted_at
			  FROM articles
			  WHERE board_id = $1 AND deleted_at IS NULL
			  ORDER BY created_at DESC, id DESC
			  LIMIT $2 OFFSET $3`

	rows, err := querier.QueryContext(ctx, query, boardID, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list articles")
	}
	defer func() {
		_ = rows.Close()
	}()

	articles := make([]*boardDomain.Article, 0)
	for rows.Next() {
		var article boardDomain.Article
		if err := rows.Scan(
			&article.ID,
			&article.BoardID,
			&article.Author,
			&article.Title,
			&article.Content,
			&article.CreatedAt,
			&article.UpdatedAt,
			&article.EditedAt,
			&article.DeletedAt,
		); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan article")
		}
		articles = append(articles, &article)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate articles")
	}

	return articles, nil
}

// NewPostgreSQLArticleRepository creates a new PostgreSQL article repository.
func NewPostgreSQLArticleRepository(db *sql.DB) *PostgreSQLArticleRepository {
	return &PostgreSQLArticleRepository{db: db}
}

// requireAffected returns notFound when an update touched no row.
func requireAffected(result sql.Result, notFound error) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to read affected rows")
	}
	if affected == 0 {
		return notFound
	}
	return nil
}
