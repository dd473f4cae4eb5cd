package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	authDomain "github.com/onionboard/backend/internal/auth/domain"
	"github.com/onionboard/backend/internal/errors"
)

func extractFrom(req *http.Request) string {
	var got string
	router := gin.New()
	router.Any("/whoami", func(c *gin.Context) {
		got = ExtractToken(c, testCookieName)
	})
	serve(router, req)
	return got
}

func TestExtractToken(t *testing.T) {
	t.Run("QueryParameterFirst", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/whoami?token=from-query", nil)
		req.AddCookie(&http.Cookie{Name: testCookieName, Value: "from-cookie"})
		req.Header.Set("Authorization", "Bearer from-header")

		assert.Equal(t, "from-query", extractFrom(req))
	})

	t.Run("FormParameter", func(t *testing.T) {
		form := url.Values{"token": {"from-form"}}
		req := httptest.NewRequest(http.MethodPost, "/whoami", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		req.Header.Set("Authorization", "Bearer from-header")

		assert.Equal(t, "from-form", extractFrom(req))
	})

	t.Run("CookieBeforeHeader", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.AddCookie(&http.Cookie{Name: testCookieName, Value: "from-cookie"})
		req.Header.Set("Authorization", "Bearer from-header")

		assert.Equal(t, "from-cookie", extractFrom(req))
	})

	t.Run("OtherCookieIgnored", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.AddCookie(&http.Cookie{Name: "session", Value: "nope"})
		req.Header.Set("Authorization", "Bearer from-header")

		assert.Equal(t, "from-header", extractFrom(req))
	})

	t.Run("BearerSchemeCaseInsensitive", func(t *testing.T) {
		for _, header := range []string{"Bearer abc", "bearer abc", "BEARER abc"} {
			req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
			req.Header.Set("Authorization", header)

			assert.Equal(t, "abc", extractFrom(req), header)
		}
	})

	t.Run("NoToken", func(t *testing.T) {
		for _, header := range []string{"", "Basic abc", "Bearer ", "Bearer"} {
			req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
			if header != "" {
				req.Header.Set("Authorization", header)
			}

			assert.Empty(t, extractFrom(req), header)
		}
	})
}

func setupProtectedRouter(uc *mockAuthUseCase) *gin.Engine {
	router := gin.New()
	router.Use(AuthenticationMiddleware(uc, testCookieName, discardLogger))
	router.GET("/protected", func(c *gin.Context) {
		identity, ok := GetIdentity(c.Request.Context())
		token, _ := GetToken(c.Request.Context())
		if !ok {
			c.Status(http.StatusTeapot)
			return
		}
		c.JSON(http.StatusOK, gin.H{"username": identity.IdentityName(), "token": token})
	})
	return router
}

func TestAuthenticationMiddleware(t *testing.T) {
	t.Run("Success_StoresIdentity", func(t *testing.T) {
		uc := &mockAuthUseCase{}
		uc.On("Authenticate", mock.Anything, "good-token").
			Return(authDomain.Principal{Username: "alice"}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer good-token")
		w := serve(setupProtectedRouter(uc), req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"username":"alice","token":"good-token"}`, w.Body.String())
		uc.AssertExpectations(t)
	})

	t.Run("Error_MissingToken", func(t *testing.T) {
		uc := &mockAuthUseCase{}

		w := serve(setupProtectedRouter(uc), httptest.NewRequest(http.MethodGet, "/protected", nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		uc.AssertNotCalled(t, "Authenticate", mock.Anything, mock.Anything)
	})

	var bodies []string
	for _, err := range []error{
		authDomain.ErrMalformedToken,
		authDomain.ErrTokenExpired,
		authDomain.ErrTokenRevoked,
		authDomain.ErrStoreUnavailable,
	} {
		t.Run("Error_"+err.Error(), func(t *testing.T) {
			uc := &mockAuthUseCase{}
			uc.On("Authenticate", mock.Anything, "tok").Return(nil, err).Once()

			req := httptest.NewRequest(http.MethodGet, "/protected?token=tok", nil)
			w := serve(setupProtectedRouter(uc), req)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			bodies = append(bodies, w.Body.String())
		})
	}

	t.Run("SameBodyForEveryFailure", func(t *testing.T) {
		for _, body := range bodies {
			assert.Equal(t, bodies[0], body)
		}
	})
}

func TestRequireIdentity(t *testing.T) {
	router := gin.New()
	router.GET("/unguarded", func(c *gin.Context) {
		if _, ok := RequireIdentity(c, discardLogger); ok {
			c.Status(http.StatusOK)
		}
	})

	w := serve(router, httptest.NewRequest(http.MethodGet, "/unguarded", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestContextHelpers(t *testing.T) {
	ctx := context.Background()

	_, ok := GetIdentity(ctx)
	assert.False(t, ok)
	_, ok = GetToken(ctx)
	assert.False(t, ok)

	ctx = WithIdentity(ctx, authDomain.Principal{Username: "bob"})
	ctx = WithToken(ctx, "tok")

	identity, ok := GetIdentity(ctx)
	assert.True(t, ok)
	assert.Equal(t, "bob", identity.IdentityName())
	token, ok := GetToken(ctx)
	assert.True(t, ok)
	assert.Equal(t, "tok", token)

	assert.ErrorIs(t, authDomain.ErrMissingToken, errors.ErrUnauthorized)
}
