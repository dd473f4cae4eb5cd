package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	authDomain "github.com/onionboard/backend/internal/auth/domain"
	boardDomain "github.com/onionboard/backend/internal/board/domain"
	"github.com/onionboard/backend/internal/metrics"
)

// articleUseCaseWithMetrics decorates ArticleUseCase with metrics instrumentation.
type articleUseCaseWithMetrics struct {
	next    ArticleUseCase
	metrics metrics.BusinessMetrics
}

// NewArticleUseCaseWithMetrics wraps an ArticleUseCase with metrics recording.
func NewArticleUseCaseWithMetrics(useCase ArticleUseCase, m metrics.BusinessMetrics) ArticleUseCase {
	return &articleUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (a *articleUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	a.metrics.RecordOperation(ctx, "board", operation, status)
	a.metrics.RecordDuration(ctx, "board", operation, time.Since(start), status)
}

// List records metrics for article listing.
func (a *articleUseCaseWithMetrics) List(
	ctx context.Context,
	boardID int64,
	offset, limit int,
) ([]*boardDomain.Article, error) {
	start := time.Now()
	articles, err := a.next.List(ctx, boardID, offset, limit)
	a.record(ctx, "article_list", start, err)
	return articles, err
}

// Create records metrics for article creation.
func (a *articleUseCaseWithMetrics) Create(
	ctx context.Context,
	identity authDomain.Identity,
	input CreateArticleInput,
) (*boardDomain.Article, error) {
	start := time.Now()
	article, err := a.next.Create(ctx, identity, input)
	a.record(ctx, "article_create", start, err)
	return article, err
}

// Update records metrics for article edits.
func (a *articleUseCaseWithMetrics) Update(
	ctx context.Context,
	identity authDomain.Identity,
	input UpdateArticleInput,
) (*boardDomain.Article, error) {
	start := time.Now()
	article, err := a.next.Update(ctx, identity, input)
	a.record(ctx, "article_update", start, err)
	return article, err
}

// Delete records metrics for article deletion.
func (a *articleUseCaseWithMetrics) Delete(
	ctx context.Context,
	identity authDomain.Identity,
	boardID int64,
	articleID uuid.UUID,
) error {
	start := time.Now()
	err := a.next.Delete(ctx, identity, boardID, articleID)
	a.record(ctx, "article_delete", start, err)
	return err
}

// commentUseCaseWithMetrics decorates CommentUseCase with metrics instrumentation.
type commentUseCaseWithMetrics struct {
	next    CommentUseCase
	metrics metrics.BusinessMetrics
}

// NewCommentUseCaseWithMetrics wraps a CommentUseCase with metrics recording.
func NewCommentUseCaseWithMetrics(useCase CommentUseCase, m metrics.BusinessMetrics) CommentUseCase {
	return &commentUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (c *commentUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	c.metrics.RecordOperation(ctx, "board", operation, status)
	c.metrics.RecordDuration(ctx, "board", operation, time.Since(start), status)
}

// List records metrics for comment listing.
func (c *commentUseCaseWithMetrics) List(
	ctx context.Context,
	boardID int64,
	articleID uuid.UUID,
	offset, limit int,
) ([]*boardDomain.Comment, error) {
	start := time.Now()
	comments, err := c.next.List(ctx, boardID, articleID, offset, limit)
	c.record(ctx, "comment_list", start, err)
	return comments, err
}

// Create records metrics for comment creation.
func (c *commentUseCaseWithMetrics) Create(
	ctx context.Context,
	identity authDomain.Identity,
	input CreateCommentInput,
) (*boardDomain.Comment, error) {
	start := time.Now()
	comment, err := c.next.Create(ctx, identity, input)
	c.record(ctx, "comment_create", start, err)
	return comment, err
}

// Update records metrics for comment edits.
func (c *commentUseCaseWithMetrics) Update(
	ctx context.Context,
	identity authDomain.Identity,
	input UpdateCommentInput,
) (*boardDomain.Comment, error) {
	start := time.Now()
	comment, err := c.next.Update(ctx, identity, input)
	c.record(ctx, "comment_update", start, err)
	return comment, err
}
