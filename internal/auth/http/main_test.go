package http

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sort"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"

	authDomain "github.com/onionboard/backend/internal/auth/domain"
)

const testCookieName = "onion_token"

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func init() {
	gin.SetMode(gin.TestMode)
}

// mockAuthUseCase is a mock implementation of usecase.AuthUseCase for testing.
type mockAuthUseCase struct {
	mock.Mock
}

func (m *mockAuthUseCase) Login(ctx context.Context, username string, password string) (*authDomain.IssuedToken, error) {
	args := m.Called(ctx, username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.IssuedToken), args.Error(1)
}

func (m *mockAuthUseCase) IssueToken(ctx context.Context, username string) (*authDomain.IssuedToken, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.IssuedToken), args.Error(1)
}

func (m *mockAuthUseCase) Authenticate(ctx context.Context, token string) (authDomain.Identity, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(authDomain.Identity), args.Error(1)
}

func (m *mockAuthUseCase) Validate(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *mockAuthUseCase) LogoutAll(
	ctx context.Context,
	identity authDomain.Identity,
	token string,
) (*authDomain.RevocationEntry, error) {
	args := m.Called(ctx, identity, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.RevocationEntry), args.Error(1)
}

// fakeTxManager runs fn inline.
type fakeTxManager struct{}

func (fakeTxManager) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// memoryRevocationRepository keeps revocation entries in memory with the same
// filter and ordering as the SQL repositories.
type memoryRevocationRepository struct {
	mu      sync.Mutex
	entries map[string]*authDomain.RevocationEntry
}

func newMemoryRevocationRepository() *memoryRevocationRepository {
	return &memoryRevocationRepository{entries: make(map[string]*authDomain.RevocationEntry)}
}

func (r *memoryRevocationRepository) Create(_ context.Context, entry *authDomain.RevocationEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.entries[entry.TokenHash]; !ok {
		copied := *entry
		r.entries[entry.TokenHash] = &copied
	}
	return nil
}

func (r *memoryRevocationRepository) GetLatestByUsername(
	_ context.Context,
	username string,
	notBefore time.Time,
) (*authDomain.RevocationEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var matches []*authDomain.RevocationEntry
	for _, entry := range r.entries {
		if entry.Username == username && !entry.TokenExpiresAt.Before(notBefore) {
			matches = append(matches, entry)
		}
	}
	if len(matches) == 0 {
		return nil, authDomain.ErrRevocationNotFound
	}
	sort.Slice(matches, func(i, j int) bool {
		if !matches[i].TokenExpiresAt.Equal(matches[j].TokenExpiresAt) {
			return matches[i].TokenExpiresAt.After(matches[j].TokenExpiresAt)
		}
		return matches[i].CreatedAt.After(matches[j].CreatedAt)
	})
	copied := *matches[0]
	return &copied, nil
}

func (r *memoryRevocationRepository) CountInert(_ context.Context, cutoff time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, entry := range r.entries {
		if entry.TokenExpiresAt.Before(cutoff) {
			count++
		}
	}
	return count, nil
}

func (r *memoryRevocationRepository) DeleteInert(ctx context.Context, cutoff time.Time) (int64, error) {
	count, _ := r.CountInert(ctx, cutoff)
	r.mu.Lock()
	defer r.mu.Unlock()
	for hash, entry := range r.entries {
		if entry.TokenExpiresAt.Before(cutoff) {
			delete(r.entries, hash)
		}
	}
	return count, nil
}

func serve(router http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func findCookie(w *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == name {
			return cookie
		}
	}
	return nil
}
