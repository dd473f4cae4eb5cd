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

// PostgreSQLCommentRepository implements Comment persistence for PostgreSQL.
type PostgreSQLCommentRepository struct {
	db *sql.DB
}

// Create inserts a new comment.
func (p *PostgreSQLCommentRepository) Create(ctx context.Context, comment *boardDomain.Comment) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO comments (id, article_id, author, content, created_at, updated_at, edited_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := querier.ExecContext(
		ctx,
		query,
		comment.ID,
		comment.ArticleID,
		comment.Author,
		comment.Content,
		comment.CreatedAt,
		comment.UpdatedAt,
		comment.EditedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create comment")
	}
	return nil
}

// GetByID retrieves a comment.
func (p *PostgreSQLCommentRepository) GetByID(ctx context.Context, commentID uuid.UUID) (*boardDomain.Comment, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, article_id, author, content, created_at, updated_at, edited_at
			  FROM comments
			  WHERE id = $1`

	var comment boardDomain.Comment
	err := querier.QueryRowContext(ctx, query, commentID).Scan(
		&comment.ID,
		&comment.ArticleID,
		&comment.Author,
		&comment.Content,
		&comment.CreatedAt,
		&comment.UpdatedAt,
		&comment.EditedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, boardDomain.ErrCommentNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get comment")
	}

	return &comment, nil
}

// Update persists content and the edit timestamp.
func (p *PostgreSQLCommentRepository) Update(ctx context.Context, comment *boardDomain.Comment) error {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE comments
			  SET content = $1, updated_at = $2, edited_at = $3
			  WHERE id = $4`

	result, err := querier.ExecContext(ctx, query, comment.Content, comment.UpdatedAt, comment.EditedAt, comment.ID)
	if err != nil {
		return apperrors.Wrap(err, "failed to update comment")
	}

	return requireAffected(result, boardDomain.ErrCommentNotFound)
}

// ListByArticle retrieves the comments of an article, oldest first.
func (p *PostgreSQLCommentRepository) ListByArticle(
	ctx context.Context,
	articleID uuid.UUID,
	offset, limit int,
) ([]*boardDomain.Comment, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, article_id, author, content, created_at, updated_at, edited_at
			  FROM comments
			  WHERE article_id = $1
			  ORDER BY created_at ASC, id ASC
			  LIMIT $2 OFFSET $3`

	rows, err := querier.QueryContext(ctx, query, articleID, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list comments")
	}
	defer func() {
		_ = rows.Close()
	}()

	comments := make([]*boardDomain.Comment, 0)
	for rows.Next() {
		var comment boardDomain.Comment
		if err := rows.Scan(
			&comment.ID,
			&comment.ArticleID,
			&comment.Author,
			&comment.Content,
			&comment.CreatedAt,
			&comment.UpdatedAt,
			&comment.EditedAt,
		); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan comment")
		}
		comments = append(comments, &comment)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate comments")
	}

	return comments, nil
}

// NewPostgreSQLCommentRepository creates a new PostgreSQL comment repository.
func NewPostgreSQLCommentRepository(db *sql.DB) *PostgreSQLCommentRepository {
	return &PostgreSQLCommentRepository{db: db}
}
