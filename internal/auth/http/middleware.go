package http

import (
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"

	authDomain "github.com/onionboard/backend/internal/auth/domain"
	authUseCase "github.com/onionboard/backend/internal/auth/usecase"
	apperrors "github.com/onionboard/backend/internal/errors"
	"github.com/onionboard/backend/internal/httputil"
)

// TokenParam is the query or form parameter that may carry the bearer token.
const TokenParam = "token"

// ExtractToken returns the bearer token of a request. Sources are tried in order:
// the "token" query or form parameter, the cookieName cookie, then the
// Authorization header with a case-insensitive "Bearer" scheme.
// Returns "" when no source carries a token.
func ExtractToken(c *gin.Context, cookieName string) string {
	if token := c.Query(TokenParam); token != "" {
		return token
	}
	if isFormRequest(c) {
		if token := c.PostForm(TokenParam); token != "" {
			return token
		}
	}

	if cookieName != "" {
		if token, err := c.Cookie(cookieName); err == nil && token != "" {
			return token
		}
	}

	const bearerPrefix = "bearer "
	authHeader := c.GetHeader("Authorization")
	if len(authHeader) > len(bearerPrefix) && strings.EqualFold(authHeader[:len(bearerPrefix)], bearerPrefix) {
		return strings.TrimSpace(authHeader[len(bearerPrefix):])
	}

	return ""
}

// isFormRequest avoids parsing JSON bodies while looking for a form token.
func isFormRequest(c *gin.Context) bool {
	contentType := c.ContentType()
	return contentType == gin.MIMEPOSTForm || contentType == gin.MIMEMultipartPOSTForm
}

// AuthenticationMiddleware resolves the request identity from its bearer token.
//
// The middleware:
// 1. Extracts the token with ExtractToken
// 2. Verifies signature and expiry, then checks the revocation store via AuthUseCase.Authenticate
// 3. Stores the identity and the token in the request context (GetIdentity, GetToken)
//
// Every failure is answered with the same 401 body, including an unreachable
// revocation store, which is logged at error level.
//
// Usage:
//
//	router.Use(AuthenticationMiddleware(authUseCase, cfg.AuthCookieName, logger))
//	router.GET("/v1/users/me", func(c *gin.Context) {
//	    identity, _ := GetIdentity(c.Request.Context())
//	    c.JSON(200, gin.H{"username": identity.IdentityName()})
//	})
func AuthenticationMiddleware(
	authUseCase authUseCase.AuthUseCase,
	cookieName string,
	logger *slog.Logger,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := ExtractToken(c, cookieName)
		if token == "" {
			logger.Debug("authentication failed: missing token")
			httputil.HandleErrorGin(c, authDomain.ErrMissingToken, logger)
			return
		}

		identity, err := authUseCase.Authenticate(c.Request.Context(), token)
		if err != nil {
			if apperrors.Is(err, authDomain.ErrStoreUnavailable) {
				logger.Error("authentication failed: revocation store unavailable",
					slog.Any("error", err))
				httputil.HandleErrorGin(c, apperrors.Wrap(apperrors.ErrUnauthorized, err.Error()), nil)
				return
			}
			logger.Debug("authentication failed", slog.Any("error", err))
			httputil.HandleErrorGin(c, err, logger)
			return
		}

		ctx := WithIdentity(c.Request.Context(), identity)
		ctx = WithToken(ctx, token)
		c.Request = c.Request.WithContext(ctx)

		logger.Debug("authentication successful", slog.String("username", identity.IdentityName()))

		c.Next()
	}
}

// RequireIdentity returns the identity stored by AuthenticationMiddleware, or
// answers 401 and returns false when the route was mounted without it.
func RequireIdentity(c *gin.Context, logger *slog.Logger) (authDomain.Identity, bool) {
	identity, ok := GetIdentity(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
		return nil, false
	}
	return identity, true
}
