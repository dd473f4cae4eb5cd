// Package usecase implements article and comment writes behind the per-user
// minimum-interval write guard.
package usecase

import (
	"context"

	"github.com/google/uuid"

	authDomain "github.com/onionboard/backend/internal/auth/domain"
	boardDomain "github.com/onionboard/backend/internal/board/domain"
)

// ArticleRepository defines persistence operations for articles.
type ArticleRepository interface {
	// Create stores a new article.
	Create(ctx context.Context, article *boardDomain.Article) error

	// GetByID returns a non-deleted article or ErrArticleNotFound.
	GetByID(ctx context.Context, articleID uuid.UUID) (*boardDomain.Article, error)

	// Update persists title, content, edit and delete timestamps.
	Update(ctx context.Context, article *boardDomain.Article) error

	// ListByBoard returns non-deleted articles of a board, newest first.
	ListByBoard(ctx context.Context, boardID int64, offset, limit int) ([]*boardDomain.Article, error)
}

// CommentRepository defines persistence operations for comments.
type CommentRepository interface {
	// Create stores a new comment.
	Create(ctx context.Context, comment *boardDomain.Comment) error

	// GetByID returns a comment or ErrCommentNotFound.
	GetByID(ctx context.Context, commentID uuid.UUID) (*boardDomain.Comment, error)

	// Update persists content and edit timestamp.
	Update(ctx context.Context, comment *boardDomain.Comment) error

	// ListByArticle returns the comments of an article, oldest first.
	ListByArticle(ctx context.Context, articleID uuid.UUID, offset, limit int) ([]*boardDomain.Comment, error)
}

// WriteGuard admits or rejects a write by the minimum interval of its kind.
type WriteGuard interface {
	Admit(ctx context.Context, identity authDomain.Identity, kind authDomain.ActionKind) error
}

// CreateArticleInput contains the data of a new article.
type CreateArticleInput struct {
	BoardID int64
	Title   string
	Content string
}

// UpdateArticleInput contains the new title and content of an article.
type UpdateArticleInput struct {
	BoardID   int64
	ArticleID uuid.UUID
	Title     string
	Content   string
}

// CreateCommentInput contains the data of a new comment.
type CreateCommentInput struct {
	BoardID   int64
	ArticleID uuid.UUID
	Content   string
}

// UpdateCommentInput contains the new content of a comment.
type UpdateCommentInput struct {
	BoardID   int64
	ArticleID uuid.UUID
	CommentID uuid.UUID
	Content   string
}

// ArticleUseCase defines article operations.
type ArticleUseCase interface {
	// List returns the latest non-deleted articles of a board.
	List(ctx context.Context, boardID int64, offset, limit int) ([]*boardDomain.Article, error)

	// Create writes a new article, guarded by article_write.
	Create(ctx context.Context, identity authDomain.Identity, input CreateArticleInput) (*boardDomain.Article, error)

	// Update edits an article of the caller, guarded by article_edit.
	Update(ctx context.Context, identity authDomain.Identity, input UpdateArticleInput) (*boardDomain.Article, error)

	// Delete soft deletes an article of the caller, guarded by article_edit.
	Delete(ctx context.Context, identity authDomain.Identity, boardID int64, articleID uuid.UUID) error
}

// CommentUseCase defines comment operations.
type CommentUseCase interface {
	// List returns the comments of a non-deleted article.
	List(ctx context.Context, boardID int64, articleID uuid.UUID, offset, limit int) ([]*boardDomain.Comment, error)

	// Create writes a comment on a non-deleted article, guarded by comment_write.
	Create(ctx context.Context, identity authDomain.Identity, input CreateCommentInput) (*boardDomain.Comment, error)

	// Update edits a comment of the caller, guarded by comment_edit.
	Update(ctx context.Context, identity authDomain.Identity, input UpdateCommentInput) (*boardDomain.Comment, error)
}
