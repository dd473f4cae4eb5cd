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

// MySQLArticleRepository implements Article persistence for MySQL.
// UUIDs are stored as BINARY(16).
type MySQLArticleRepository struct {
	db *sql.DB
}

// articleScanner is satisfied by *sql.Row and *sql.Rows.
type articleScanner interface {
	Scan(dest ...any) error
}

func scanMySQLArticle(row articleScanner) (*boardDomain.Article, error) {
	var article boardDomain.Article
	var id []byte

	if err := row.Scan(
		&id,
		&article.BoardID,
		&article.Author,
		&article.Title,
		&article.Content,
		&article.CreatedAt,
		&article.UpdatedAt,
		&article.EditedAt,
		&article.DeletedAt,
	); err != nil {
		return nil, err
	}

	if err := article.ID.UnmarshalBinary(id); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal article id")
	}
	return &article, nil
}

// Create inserts a new article.
func (m *MySQLArticleRepository) Create(ctx context.Context, article *boardDomain.Article) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO articles (id, board_id, author, title, content, created_at, updated_at, edited_at, deleted_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	id, err := article.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal article id")
	}

	_, err = querier.ExecContext(
		ctx,
		query,
		id,
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
func (m *MySQLArticleRepository) GetByID(ctx context.Context, articleID uuid.UUID) (*boardDomain.Article, error) {
	querier := database.GetTx(ctx, m.db)

	id, err := articleID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal article id")
	}

	query := `SELECT id, board_id, author, title, content, created_at, updated_at, edited_at, deleted_at
			  FROM articles
			  WHERE id = ? AND deleted_at IS NULL`

	article, err := scanMySQLArticle(querier.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, boardDomain.ErrArticleNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get article")
	}

	return article, nil
}

// Update persists title, content and the edit and delete timestamps.
func (m *MySQLArticleRepository) Update(ctx context.Context, article *boardDomain.Article) error {
	querier := database.GetTx(ctx, m.db)

	id, err := article.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal article id")
	}

	query := `UPDATE articles
			  SET title = ?, content = ?, updated_at = ?, edited_at = ?, deleted_at = ?
			  WHERE id = ?`

	result, err := querier.ExecContext(
		ctx,
		query,
		article.Title,
		article.Content,
		article.UpdatedAt,
		article.EditedAt,
		article.DeletedAt,
		id,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to update article")
	}

	return requireAffected(result, boardDomain.ErrArticleNotFound)
}

// ListByBoard retrieves non-deleted articles of a board, newest first.
func (m *MySQLArticleRepository) ListByBoard(
	ctx context.Context,
	boardID int64,
	offset, limit int,
) ([]*boardDomain.Article, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, board_id, author, title, content, created_at, updated_at, edited_at, deleted_at
			  FROM articles
			  WHERE board_id = ? AND deleted_at IS NULL
			  ORDER BY created_at DESC, id DESC
			  LIMIT ? OFFSET ?`

	rows, err := querier.QueryContext(ctx, query, boardID, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list articles")
	}
	defer func() {
		_ = rows.Close()
	}()

	articles := make([]*boardDomain.Article, 0)
	for rows.Next() {
		article, err := scanMySQLArticle(rows)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan article")
		}
		articles = append(articles, article)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate articles")
	}

	return articles, nil
}

// NewMySQLArticleRepository creates a new MySQL article repository.
func NewMySQLArticleRepository(db *sql.DB) *MySQLArticleRepository {
	return &MySQLArticleRepository{db: db}
}
