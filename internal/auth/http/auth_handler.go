package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	authDomain "github.com/onionboard/backend/internal/auth/domain"
	"github.com/onionboard/backend/internal/auth/http/dto"
	authUseCase "github.com/onionboard/backend/internal/auth/usecase"
	apperrors "github.com/onionboard/backend/internal/errors"
	"github.com/onionboard/backend/internal/httputil"
	customValidation "github.com/onionboard/backend/internal/validation"
)

// CookieConfig describes the cookie that carries the bearer token.
type CookieConfig struct {
	Name   string
	Secure bool
}

// AuthHandler handles login, logout and token validation requests.
type AuthHandler struct {
	authUseCase authUseCase.AuthUseCase
	cookie      CookieConfig
	logger      *slog.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authUseCase authUseCase.AuthUseCase, cookie CookieConfig, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		authUseCase: authUseCase,
		cookie:      cookie,
		logger:      logger,
	}
}

// LoginHandler checks credentials, sets the token cookie and returns the token.
// POST /v1/users/login - Returns 200 OK with {token, expires_at}, 401 on bad credentials.
func (h *AuthHandler) LoginHandler(c *gin.Context) {
	var req dto.LoginRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	issued, err := h.authUseCase.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	h.setTokenCookie(c, issued.Token, int(issued.Lifetime().Seconds()))

	c.JSON(http.StatusOK, dto.MapIssuedTokenToResponse(issued))
}

// LogoutHandler clears the token cookie. The token itself stays valid until it expires.
// POST /v1/users/logout - Returns 204 No Content.
func (h *AuthHandler) LogoutHandler(c *gin.Context) {
	h.clearTokenCookie(c)
	c.Status(http.StatusNoContent)
}

// LogoutAllHandler revokes the request token and every earlier token of the caller.
// POST /v1/users/logout/all - Returns 200 OK with the revoked horizon, 503 if the
// revocation could not be recorded.
func (h *AuthHandler) LogoutAllHandler(c *gin.Context) {
	identity, ok := RequireIdentity(c, h.logger)
	if !ok {
		return
	}

	token, ok := GetToken(c.Request.Context())
	if !ok {
		token = ExtractToken(c, h.cookie.Name)
	}

	entry, err := h.authUseCase.LogoutAll(c.Request.Context(), identity, token)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	h.clearTokenCookie(c)

	c.JSON(http.StatusOK, dto.MapRevocationToResponse(entry))
}

// ValidateTokenHandler reports whether a token would currently be accepted.
// The token comes from a JSON body, or otherwise from the query, form, cookie or
// bearer header like any authenticated call.
// POST /v1/users/token/validation - Returns 200 OK {valid:true} or 403 Forbidden {valid:false}.
func (h *AuthHandler) ValidateTokenHandler(c *gin.Context) {
	var req dto.ValidateTokenRequest

	if c.ContentType() == gin.MIMEJSON && c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			httputil.HandleBadRequestGin(c, err, h.logger)
			return
		}
		if err := req.Validate(); err != nil {
			httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
			return
		}
	}

	token := req.Token
	if token == "" {
		token = ExtractToken(c, h.cookie.Name)
	}

	err := h.authUseCase.Validate(c.Request.Context(), token)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, dto.ValidateTokenResponse{Valid: true})
	case apperrors.Is(err, authDomain.ErrStoreUnavailable):
		httputil.HandleErrorGin(c, err, h.logger)
	default:
		h.logger.Debug("token validation failed", slog.Any("error", err))
		c.AbortWithStatusJSON(http.StatusForbidden, dto.ValidateTokenResponse{Valid: false})
	}
}

// MeHandler returns the authenticated identity.
// GET /v1/users/me - Returns 200 OK with {username}.
func (h *AuthHandler) MeHandler(c *gin.Context) {
	identity, ok := RequireIdentity(c, h.logger)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, dto.MapIdentityToResponse(identity))
}

func (h *AuthHandler) setTokenCookie(c *gin.Context, token string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookie.Name, token, maxAge, "/", "", h.cookie.Secure, true)
}

func (h *AuthHandler) clearTokenCookie(c *gin.Context) {
	h.setTokenCookie(c, "", -1)
}
