package http

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authDomain "github.com/onionboard/backend/internal/auth/domain"
	authService "github.com/onionboard/backend/internal/auth/service"
	authUseCase "github.com/onionboard/backend/internal/auth/usecase"
)

type flowClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *flowClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *flowClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type revocationFlow struct {
	clock  *flowClock
	codec  authService.TokenCodec
	router *gin.Engine
}

func newRevocationFlow(t *testing.T) *revocationFlow {
	t.Helper()

	clock := &flowClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	key, err := authService.DeriveSigningKey([]byte("http-flow-signing-secret-0123456789-abcdef"))
	require.NoError(t, err)
	codec := authService.NewTokenCodec(key, time.Hour, authService.WithClock(clock.Now))

	revocations := authUseCase.NewRevocationUseCase(
		fakeTxManager{},
		newMemoryRevocationRepository(),
		nil,
		codec,
		authService.NewTokenHasher(),
		authUseCase.RevocationOptions{
			TrustWindow:          authDomain.DefaultTrustWindow,
			LookupTimeout:        time.Second,
			RetryInitialInterval: time.Millisecond,
			Now:                  clock.Now,
		},
		discardLogger,
	)
	auth := authUseCase.NewAuthUseCase(nil, nil, codec, revocations, false, discardLogger)

	handler := NewAuthHandler(auth, CookieConfig{Name: testCookieName}, discardLogger)
	router := gin.New()
	users := router.Group("/v1/users")
	users.POST("/token/validation", handler.ValidateTokenHandler)
	protected := users.Group("", AuthenticationMiddleware(auth, testCookieName, discardLogger))
	protected.GET("/me", handler.MeHandler)
	protected.POST("/logout/all", handler.LogoutAllHandler)

	return &revocationFlow{clock: clock, codec: codec, router: router}
}

func (f *revocationFlow) issue(t *testing.T, subject string) string {
	t.Helper()
	issued, err := f.codec.Issue(subject)
	require.NoError(t, err)
	return issued.Token
}

func (f *revocationFlow) do(method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	req.Header.Set("Authorization", "Bearer "+token)
	return serve(f.router, req)
}

func TestRevocationFlow(t *testing.T) {
	flow := newRevocationFlow(t)

	first := flow.issue(t, "alice")
	bob := flow.issue(t, "bob")
	require.Equal(t, http.StatusOK, flow.do(http.MethodGet, "/v1/users/me", first).Code)

	w := flow.do(http.MethodPost, "/v1/users/logout/all", first)
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, http.StatusUnauthorized, flow.do(http.MethodGet, "/v1/users/me", first).Code)
	assert.Equal(t, http.StatusForbidden, flow.do(http.MethodPost, "/v1/users/token/validation", first).Code)
	assert.Equal(t, http.StatusOK, flow.do(http.MethodGet, "/v1/users/me", bob).Code)

	// Issued later but still expiring inside the horizon plus trust window.
	flow.clock.Advance(30 * time.Minute)
	withinWindow := flow.issue(t, "alice")
	assert.Equal(t, http.StatusUnauthorized, flow.do(http.MethodGet, "/v1/users/me", withinWindow).Code)

	// Expires past horizon plus trust window.
	flow.clock.Advance(31 * time.Minute)
	fresh := flow.issue(t, "alice")
	assert.Equal(t, http.StatusOK, flow.do(http.MethodGet, "/v1/users/me", fresh).Code)
	assert.Equal(t, http.StatusOK, flow.do(http.MethodPost, "/v1/users/token/validation", fresh).Code)
}

func TestRevocationFlow_RevokeTwiceIsIdempotent(t *testing.T) {
	flow := newRevocationFlow(t)

	token := flow.issue(t, "alice")
	require.Equal(t, http.StatusOK, flow.do(http.MethodPost, "/v1/users/logout/all", token).Code)

	// A revoked token can no longer reach the logout endpoint at all.
	assert.Equal(t, http.StatusUnauthorized, flow.do(http.MethodPost, "/v1/users/logout/all", token).Code)
}

func TestRevocationFlow_TamperedTokenRejected(t *testing.T) {
	flow := newRevocationFlow(t)

	token := flow.issue(t, "alice")
	tampered := []byte(token)
	tampered[10] ^= 0x01

	assert.Equal(t, http.StatusUnauthorized, flow.do(http.MethodGet, "/v1/users/me", string(tampered)).Code)
}
