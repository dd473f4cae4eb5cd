package usecase

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	authDomain "github.com/onionboard/backend/internal/auth/domain"
	boardDomain "github.com/onionboard/backend/internal/board/domain"
)

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

var (
	alice = authDomain.Principal{Username: "alice"}
	bob   = authDomain.Principal{Username: "bob"}
)

var fixedNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

// mockArticleRepository is a mock implementation of ArticleRepository.
type mockArticleRepository struct {
	mock.Mock
}

func (m *mockArticleRepository) Create(ctx context.Context, article *boardDomain.Article) error {
	args := m.Called(ctx, article)
	return args.Error(0)
}

func (m *mockArticleRepository) GetByID(ctx context.Context, articleID uuid.UUID) (*boardDomain.Article, error) {
	args := m.Called(ctx, articleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*boardDomain.Article), args.Error(1)
}

func (m *mockArticleRepository) Update(ctx context.Context, article *boardDomain.Article) error {
	args := m.Called(ctx, article)
	return args.Error(0)
}

func (m *mockArticleRepository) ListByBoard(
	ctx context.Context,
	boardID int64,
	offset, limit int,
) ([]*boardDomain.Article, error) {
	args := m.Called(ctx, boardID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*boardDomain.Article), args.Error(1)
}

// mockCommentRepository is a mock implementation of CommentRepository.
type mockCommentRepository struct {
	mock.Mock
}

func (m *mockCommentRepository) Create(ctx context.Context, comment *boardDomain.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *mockCommentRepository) GetByID(ctx context.Context, commentID uuid.UUID) (*boardDomain.Comment, error) {
	args := m.Called(ctx, commentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*boardDomain.Comment), args.Error(1)
}

func (m *mockCommentRepository) Update(ctx context.Context, comment *boardDomain.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *mockCommentRepository) ListByArticle(
	ctx context.Context,
	articleID uuid.UUID,
	offset, limit int,
) ([]*boardDomain.Comment, error) {
	args := m.Called(ctx, articleID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*boardDomain.Comment), args.Error(1)
}

// mockWriteGuard is a mock implementation of WriteGuard.
type mockWriteGuard struct {
	mock.Mock
}

func (m *mockWriteGuard) Admit(ctx context.Context, identity authDomain.Identity, kind authDomain.ActionKind) error {
	args := m.Called(ctx, identity, kind)
	return args.Error(0)
}

func newArticle(boardID int64, author string) *boardDomain.Article {
	created := fixedNow.Add(-time.Hour)
	return &boardDomain.Article{
		ID:        uuid.Must(uuid.NewV7()),
		BoardID:   boardID,
		Author:    author,
		Title:     "title",
		Content:   "content",
		CreatedAt: created,
		UpdatedAt: created,
	}
}
