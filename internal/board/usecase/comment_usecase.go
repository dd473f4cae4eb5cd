package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	authDomain "github.com/onionboard/backend/internal/auth/domain"
	boardDomain "github.com/onionboard/backend/internal/board/domain"
	apperrors "github.com/onionboard/backend/internal/errors"
)

type commentUseCase struct {
	articleRepo ArticleRepository
	commentRepo CommentRepository
	guard       WriteGuard
	now         func() time.Time
	logger      *slog.Logger
}

// NewCommentUseCase creates a new CommentUseCase. A nil now uses time.Now.
func NewCommentUseCase(
	articleRepo ArticleRepository,
	commentRepo CommentRepository,
	guard WriteGuard,
	now func() time.Time,
	logger *slog.Logger,
) CommentUseCase {
	if now == nil {
		now = time.Now
	}
	return &commentUseCase{
		articleRepo: articleRepo,
		commentRepo: commentRepo,
		guard:       guard,
		now:         now,
		logger:      logger,
	}
}

// List returns the comments of a non-deleted article of boardID.
func (c *commentUseCase) List(
	ctx context.Context,
	boardID int64,
	articleID uuid.UUID,
	offset, limit int,
) ([]*boardDomain.Comment, error) {
	if _, err := loadOnBoard(ctx, c.articleRepo, boardID, articleID); err != nil {
		return nil, err
	}
	return c.commentRepo.ListByArticle(ctx, articleID, offset, limit)
}

// Create writes a comment on a non-deleted article.
func (c *commentUseCase) Create(
	ctx context.Context,
	identity authDomain.Identity,
	input CreateCommentInput,
) (*boardDomain.Comment, error) {
	if identity == nil {
		return nil, apperrors.ErrUnauthorized
	}
	if err := validateComment(input.Content); err != nil {
		return nil, err
	}

	if _, err := loadOnBoard(ctx, c.articleRepo, input.BoardID, input.ArticleID); err != nil {
		return nil, err
	}

	if err := c.guard.Admit(ctx, identity, authDomain.CommentWrite); err != nil {
		return nil, err
	}

	now := c.now().UTC()
	comment := &boardDomain.Comment{
		ID:        uuid.Must(uuid.NewV7()),
		ArticleID: input.ArticleID,
		Author:    identity.IdentityName(),
		Content:   input.Content,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := c.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	c.logger.Debug("comment created",
		slog.String("comment_id", comment.ID.String()),
		slog.String("article_id", comment.ArticleID.String()),
		slog.String("author", comment.Author),
	)
	return comment, nil
}

// Update edits a comment owned by identity.
func (c *commentUseCase) Update(
	ctx context.Context,
	identity authDomain.Identity,
	input UpdateCommentInput,
) (*boardDomain.Comment, error) {
	if identity == nil {
		return nil, apperrors.ErrUnauthorized
	}
	if err := validateComment(input.Content); err != nil {
		return nil, err
	}

	if _, err := loadOnBoard(ctx, c.articleRepo, input.BoardID, input.ArticleID); err != nil {
		return nil, err
	}

	comment, err := c.commentRepo.GetByID(ctx, input.CommentID)
	if err != nil {
		return nil, err
	}
	if comment.ArticleID != input.ArticleID {
		return nil, boardDomain.ErrCommentNotFound
	}
	if !comment.IsAuthoredBy(identity.IdentityName()) {
		return nil, boardDomain.ErrNotAuthor
	}

	if err := c.guard.Admit(ctx, identity, authDomain.CommentEdit); err != nil {
		return nil, err
	}

	comment.Edit(input.Content, c.now().UTC())
	if err := c.commentRepo.Update(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}
