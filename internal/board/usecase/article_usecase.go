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

type articleUseCase struct {
	articleRepo ArticleRepository
	guard       WriteGuard
	now         func() time.Time
	logger      *slog.Logger
}

// NewArticleUseCase creates a new ArticleUseCase. A nil now uses time.Now.
func NewArticleUseCase(
	articleRepo ArticleRepository,
	guard WriteGuard,
	now func() time.Time,
	logger *slog.Logger,
) ArticleUseCase {
	if now == nil {
		now = time.Now
	}
	return &articleUseCase{
		articleRepo: articleRepo,
		guard:       guard,
		now:         now,
		logger:      logger,
	}
}

// List returns the latest non-deleted articles of a board.
func (a *articleUseCase) List(ctx context.Context, boardID int64, offset, limit int) ([]*boardDomain.Article, error) {
	return a.articleRepo.ListByBoard(ctx, boardID, offset, limit)
}

// Create validates the input, asks the write guard and stores the article.
func (a *articleUseCase) Create(
	ctx context.Context,
	identity authDomain.Identity,
	input CreateArticleInput,
) (*boardDomain.Article, error) {
	if identity == nil {
		return nil, apperrors.ErrUnauthorized
	}
	if err := validateArticle(input.Title, input.Content); err != nil {
		return nil, err
	}

	if err := a.guard.Admit(ctx, identity, authDomain.ArticleWrite); err != nil {
		return nil, err
	}

	now := a.now().UTC()
	article := &boardDomain.Article{
		ID:        uuid.Must(uuid.NewV7()),
		BoardID:   input.BoardID,
		Author:    identity.IdentityName(),
		Title:     input.Title,
		Content:   input.Content,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := a.articleRepo.Create(ctx, article); err != nil {
		return nil, err
	}

	a.logger.Info("article created",
		slog.String("article_id", article.ID.String()),
		slog.Int64("board_id", article.BoardID),
		slog.String("author", article.Author),
	)
	return article, nil
}

// Update edits an article owned by identity.
func (a *articleUseCase) Update(
	ctx context.Context,
	identity authDomain.Identity,
	input UpdateArticleInput,
) (*boardDomain.Article, error) {
	if identity == nil {
		return nil, apperrors.ErrUnauthorized
	}
	if err := validateArticle(input.Title, input.Content); err != nil {
		return nil, err
	}

	article, err := a.loadOwned(ctx, identity, input.BoardID, input.ArticleID)
	if err != nil {
		return nil, err
	}

	if err := a.guard.Admit(ctx, identity, authDomain.ArticleEdit); err != nil {
		return nil, err
	}

	article.Edit(input.Title, input.Content, a.now().UTC())
	if err := a.articleRepo.Update(ctx, article); err != nil {
		return nil, err
	}
	return article, nil
}

// Delete soft deletes an article owned by identity.
func (a *articleUseCase) Delete(
	ctx context.Context,
	identity authDomain.Identity,
	boardID int64,
	articleID uuid.UUID,
) error {
	if identity == nil {
		return apperrors.ErrUnauthorized
	}

	article, err := a.loadOwned(ctx, identity, boardID, articleID)
	if err != nil {
		return err
	}

	if err := a.guard.Admit(ctx, identity, authDomain.ArticleEdit); err != nil {
		return err
	}

	article.MarkDeleted(a.now().UTC())
	if err := a.articleRepo.Update(ctx, article); err != nil {
		return err
	}

	a.logger.Info("article deleted",
		slog.String("article_id", article.ID.String()),
		slog.String("author", article.Author),
	)
	return nil
}

// loadOwned returns the article when it lives on boardID and identity wrote it.
// The author check runs before the write guard so strangers never consume an interval.
func (a *articleUseCase) loadOwned(
	ctx context.Context,
	identity authDomain.Identity,
	boardID int64,
	articleID uuid.UUID,
) (*boardDomain.Article, error) {
	article, err := loadOnBoard(ctx, a.articleRepo, boardID, articleID)
	if err != nil {
		return nil, err
	}
	if !article.IsAuthoredBy(identity.IdentityName()) {
		return nil, boardDomain.ErrNotAuthor
	}
	return article, nil
}

// loadOnBoard returns a non-deleted article of boardID.
func loadOnBoard(
	ctx context.Context,
	repo ArticleRepository,
	boardID int64,
	articleID uuid.UUID,
) (*boardDomain.Article, error) {
	article, err := repo.GetByID(ctx, articleID)
	if err != nil {
		return nil, err
	}
	if article.BoardID != boardID || article.IsDeleted() {
		return nil, boardDomain.ErrArticleNotFound
	}
	return article, nil
}
