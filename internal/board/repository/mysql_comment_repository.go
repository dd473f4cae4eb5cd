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

// MySQLCommentRepository implements Comment persistence for MySQL.
// UUIDs are stored as BINARY(16).
type MySQLCommentRepository struct {
	db *sql.DB
}

func scanMySQLComment(row articleScanner) (*boardDomain.Comment, error) {
	var comment boardDomain.Comment
	var id, articleID []byte

	if err := row.Scan(
		&id,
		&articleID,
		&comment.Author,
		&comment.Content,
		&comment.CreatedAt,
		&comment.UpdatedAt,
		&comment.EditedAt,
	); err != nil {
		return nil, err
	}

	if err := comment.ID.UnmarshalBinary(id); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal comment id")
	}
	if err := comment.ArticleID.UnmarshalBinary(articleID); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal article id")
	}
	return &comment, nil
}

// Create inserts a new comment.
func (m *MySQLCommentRepository) Create(ctx context.Context, comment *boardDomain.Comment) error {
	querier := database.GetTx(ctx, m.db)

	id, err := comment.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal comment id")
	}
	articleID, err := comment.ArticleID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal article id")
	}

	query := `INSERT INTO comments (id, article_id, author, content, created_at, updated_at, edited_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?)`

	_, err = querier.ExecContext(
		ctx,
		query,
		id,
		articleID,
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
func (m *MySQLCommentRepository) GetByID(ctx context.Context, commentID uuid.UUID) (*boardDomain.Comment, error) {
	querier := database.GetTx(ctx, m.db)

	id, err := commentID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal comment id")
	}

	query := `SELECT id, article_id, author, content, created_at, updated_at, edited_at
			  FROM comments
			  WHERE id = ?`

	comment, err := scanMySQLComment(querier.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, boardDomain.ErrCommentNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get comment")
	}

	return comment, nil
}

// Update persists content and the edit timestamp.
func (m *MySQLCommentRepository) Update(ctx context.Context, comment *boardDomain.Comment) error {
	querier := database.GetTx(ctx, m.db)

	id, err := comment.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal comment id")
	}

	query := `UPDATE comments
			  SET content = ?, updated_at = ?, edited_at = ?
			  WHERE id = ?`

	result, err := querier.ExecContext(ctx, query, comment.Content, comment.UpdatedAt, comment.EditedAt, id)
	if err != nil {
		return apperrors.Wrap(err, "failed to update comment")
	}

	return requireAffected(result, boardDomain.ErrCommentNotFound)
}

// ListByArticle retrieves the comments of an article, oldest first.
func (m *MySQLCommentRepository) ListByArticle(
	ctx context.Context,
	articleID uuid.UUID,
	offset, limit int,
) ([]*boardDomain.Comment, error) {
	querier := database.GetTx(ctx, m.db)

	id, err := articleID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal article id")
	}

	query := `SELECT id, article_id, author, content, created_at, updated_at, edited_at
			  FROM comments
			  WHERE article_id = ?
			  ORDER BY created_at ASC, id ASC
			  LIMIT ? OFFSET ?`

	rows, err := querier.QueryContext(ctx, query, id, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list comments")
	}
	defer func() {
		_ = rows.Close()
	}()

	comments := make([]*boardDomain.Comment, 0)
	for rows.Next() {
		comment, err := scanMySQLComment(rows)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan comment")
		}
		comments = append(comments, comment)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate comments")
	}

	return comments, nil
}

// NewMySQLCommentRepository creates a new MySQL comment repository.
func NewMySQLCommentRepository(db *sql.DB) *MySQLCommentRepository {
	return &MySQLCommentRepository{db: db}
}
