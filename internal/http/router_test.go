package http

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	authHTTP "github.com/onionboard/backend/internal/auth/http"
	boardHTTP "github.com/onionboard/backend/internal/board/http"
	"github.com/onionboard/backend/internal/config"
	userHTTP "github.com/onionboard/backend/internal/user/http"
)

// newRoutedServer builds the full router. Authentication is replaced by a
// header check and use cases are left nil, so only paths that never reach a
// use case are exercised.
func newRoutedServer(t *testing.T) (*Server, *int) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	server := NewServer(nil, "localhost", 8080, logger)

	authenticate := func(c *gin.Context) {
		if c.GetHeader("X-Test-Auth") != "ok" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		c.Next()
	}
	loginHits := 0
	loginLimiter := func(c *gin.Context) {
		loginHits++
		c.Next()
	}

	server.SetupRouter(
		&config.Config{LogLevel: "debug"},
		authHTTP.NewAuthHandler(nil, authHTTP.CookieConfig{Name: "onion_token"}, logger),
		userHTTP.NewUserHandler(nil, logger),
		boardHTTP.NewArticleHandler(nil, logger),
		boardHTTP.NewCommentHandler(nil, logger),
		authenticate,
		loginLimiter,
		nil,
	)
	gin.SetMode(gin.TestMode)
	return server, &loginHits
}

func TestSetupRouter_Routes(t *testing.T) {
	server, loginHits := newRoutedServer(t)

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		authed bool
		want   int
	}{
		{"health", http.MethodGet, "/health", "", false, http.StatusOK},
		{"signup malformed", http.MethodPost, "/v1/users/signup", "{", false, http.StatusBadRequest},
		{"login malformed", http.MethodPost, "/v1/users/login", "{", false, http.StatusBadRequest},
		{"logout requires auth", http.MethodPost, "/v1/users/logout", "", false, http.StatusUnauthorized},
		{"logout", http.MethodPost, "/v1/users/logout", "", true, http.StatusNoContent},
		{"logout all requires auth", http.MethodPost, "/v1/users/logout/all", "", false, http.StatusUnauthorized},
		{"me requires auth", http.MethodGet, "/v1/users/me", "", false, http.StatusUnauthorized},
		{"list articles requires auth", http.MethodGet, "/v1/boards/1/articles", "", false, http.StatusUnauthorized},
		{"create article requires auth", http.MethodPost, "/v1/boards/1/articles", "{}", false, http.StatusUnauthorized},
		{
			"edit comment requires auth", http.MethodPut,
			"/v1/boards/1/articles/0190a0b0-0000-7000-8000-000000000001/comments/0190a0b0-0000-7000-8000-000000000002",
			"{}", false, http.StatusUnauthorized,
		},
		{"metrics not on api router", http.MethodGet, "/metrics", "", false, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			if tt.authed {
				req.Header.Set("X-Test-Auth", "ok")
			}
			w := httptest.NewRecorder()

			server.GetHandler().ServeHTTP(w, req)

			assert.Equal(t, tt.want, w.Code)
		})
	}

	assert.Equal(t, 1, *loginHits)
}

func TestSetupRouter_LogoutClearsCookie(t *testing.T) {
	server, _ := newRoutedServer(t)

	req := httptest.NewRequest(http.MethodPost, "/v1/users/logout", nil)
	req.Header.Set("X-Test-Auth", "ok")
	w := httptest.NewRecorder()
	server.GetHandler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Contains(t, w.Header().Get("Set-Cookie"), "onion_token=")
	assert.Contains(t, w.Header().Get("Set-Cookie"), "Max-Age=0")
}
