package http

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	authDomain "github.com/onionboard/backend/internal/auth/domain"
	authHTTP "github.com/onionboard/backend/internal/auth/http"
	authUseCase "github.com/onionboard/backend/internal/auth/usecase"
	boardDomain "github.com/onionboard/backend/internal/board/domain"
	boardUseCase "github.com/onionboard/backend/internal/board/usecase"
)

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func init() {
	gin.SetMode(gin.TestMode)
}

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// memoryBoard stores articles and comments and answers last-action lookups
// the way the SQL repositories do.
type memoryBoard struct {
	mu       sync.Mutex
	articles map[uuid.UUID]boardDomain.Article
	comments map[uuid.UUID]boardDomain.Comment
}

func newMemoryBoard() *memoryBoard {
	return &memoryBoard{
		articles: make(map[uuid.UUID]boardDomain.Article),
		comments: make(map[uuid.UUID]boardDomain.Comment),
	}
}

type memoryArticles struct{ *memoryBoard }

func (m memoryArticles) Create(_ context.Context, article *boardDomain.Article) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.articles[article.ID] = *article
	return nil
}

func (m memoryArticles) GetByID(_ context.Context, articleID uuid.UUID) (*boardDomain.Article, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	article, ok := m.articles[articleID]
	if !ok || article.IsDeleted() {
		return nil, boardDomain.ErrArticleNotFound
	}
	return &article, nil
}

func (m memoryArticles) Update(_ context.Context, article *boardDomain.Article) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.articles[article.ID]; !ok {
		return boardDomain.ErrArticleNotFound
	}
	m.articles[article.ID] = *article
	return nil
}

func (m memoryArticles) ListByBoard(_ context.Context, boardID int64, offset, limit int) ([]*boardDomain.Article, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	articles := make([]*boardDomain.Article, 0)
	for _, article := range m.articles {
		if article.BoardID == boardID && !article.IsDeleted() {
			copied := article
			articles = append(articles, &copied)
		}
	}
	sort.Slice(articles, func(i, j int) bool { return articles[i].CreatedAt.After(articles[j].CreatedAt) })
	if offset >= len(articles) {
		return []*boardDomain.Article{}, nil
	}
	end := min(offset+limit, len(articles))
	return articles[offset:end], nil
}

type memoryComments struct{ *memoryBoard }

func (m memoryComments) Create(_ context.Context, comment *boardDomain.Comment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.comments[comment.ID] = *comment
	return nil
}

func (m memoryComments) GetByID(_ context.Context, commentID uuid.UUID) (*boardDomain.Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	comment, ok := m.comments[commentID]
	if !ok {
		return nil, boardDomain.ErrCommentNotFound
	}
	return &comment, nil
}

func (m memoryComments) Update(_ context.Context, comment *boardDomain.Comment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.comments[comment.ID] = *comment
	return nil
}

func (m memoryComments) ListByArticle(_ context.Context, articleID uuid.UUID, _, _ int) ([]*boardDomain.Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	comments := make([]*boardDomain.Comment, 0)
	for _, comment := range m.comments {
		if comment.ArticleID == articleID {
			copied := comment
			comments = append(comments, &copied)
		}
	}
	return comments, nil
}

func (m *memoryBoard) LatestActionAt(_ context.Context, username string, kind authDomain.ActionKind) (*time.Time, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var latest *time.Time
	consider := func(at *time.Time) {
		if at != nil && (latest == nil || at.After(*latest)) {
			copied := *at
			latest = &copied
		}
	}

	switch kind {
	case authDomain.ArticleWrite, authDomain.ArticleEdit:
		for _, article := range m.articles {
			if article.Author != username {
				continue
			}
			if kind == authDomain.ArticleWrite {
				consider(&article.CreatedAt)
			} else {
				consider(article.EditedAt)
			}
		}
	case authDomain.CommentWrite, authDomain.CommentEdit:
		for _, comment := range m.comments {
			if comment.Author != username {
				continue
			}
			if kind == authDomain.CommentWrite {
				consider(&comment.CreatedAt)
			} else {
				consider(comment.EditedAt)
			}
		}
	default:
		return nil, authDomain.ErrUnknownActionKind
	}
	return latest, nil
}

// testBoard wires real use cases and the write guard to the in-memory store.
type testBoard struct {
	clock  *testClock
	store  *memoryBoard
	router *gin.Engine
}

func newTestBoard() *testBoard {
	clock := &testClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	store := newMemoryBoard()

	guard := authUseCase.NewWriteGuardUseCase(store, authDomain.DefaultWritePolicy(), nil, clock.Now, discardLogger)
	articles := boardUseCase.NewArticleUseCase(memoryArticles{store}, guard, clock.Now, discardLogger)
	comments := boardUseCase.NewCommentUseCase(memoryArticles{store}, memoryComments{store}, guard, clock.Now, discardLogger)

	router := gin.New()
	RegisterRoutes(router.Group("/v1", fakeAuthentication()),
		NewArticleHandler(articles, discardLogger),
		NewCommentHandler(comments, discardLogger))

	return &testBoard{clock: clock, store: store, router: router}
}

// fakeAuthentication trusts the X-Test-User header in place of a bearer token.
func fakeAuthentication() gin.HandlerFunc {
	return func(c *gin.Context) {
		if username := c.GetHeader("X-Test-User"); username != "" {
			ctx := authHTTP.WithIdentity(c.Request.Context(), authDomain.Principal{Username: username})
			c.Request = c.Request.WithContext(ctx)
		}
		c.Next()
	}
}

func (b *testBoard) do(method, path, username, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	if username != "" {
		req.Header.Set("X-Test-User", username)
	}
	w := httptest.NewRecorder()
	b.router.ServeHTTP(w, req)
	return w
}
