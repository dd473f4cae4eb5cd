// Package http provides HTTP handlers for board articles and comments.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	authHTTP "github.com/onionboard/backend/internal/auth/http"
	"github.com/onionboard/backend/internal/board/http/dto"
	boardUseCase "github.com/onionboard/backend/internal/board/usecase"
	"github.com/onionboard/backend/internal/httputil"
	customValidation "github.com/onionboard/backend/internal/validation"
)

// ArticleHandler handles article requests. Every route requires AuthenticationMiddleware.
type ArticleHandler struct {
	articleUseCase boardUseCase.ArticleUseCase
	logger         *slog.Logger
}

// NewArticleHandler creates a new ArticleHandler.
func NewArticleHandler(articleUseCase boardUseCase.ArticleUseCase, logger *slog.Logger) *ArticleHandler {
	return &ArticleHandler{
		articleUseCase: articleUseCase,
		logger:         logger,
	}
}

// ListHandler lists the latest articles of a board.
// GET /v1/boards/:boardId/articles?offset=0&limit=50 - Returns 200 OK.
func (h *ArticleHandler) ListHandler(c *gin.Context) {
	boardID, err := parseBoardID(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	articles, err := h.articleUseCase.List(c.Request.Context(), boardID, offset, limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapArticlesToListResponse(articles))
}

// CreateHandler writes a new article.
// POST /v1/boards/:boardId/articles - Returns 201 Created, 429 with Retry-After when
// the caller wrote an article too recently.
func (h *ArticleHandler) CreateHandler(c *gin.Context) {
	identity, ok := authHTTP.RequireIdentity(c, h.logger)
	if !ok {
		return
	}

	boardID, err := parseBoardID(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	var req dto.ArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	article, err := h.articleUseCase.Create(c.Request.Context(), identity, boardUseCase.CreateArticleInput{
		BoardID: boardID,
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapArticleToResponse(article))
}

// UpdateHandler edits an article of the caller.
// PUT /v1/boards/:boardId/articles/:articleId - Returns 200 OK, 403 for other authors.
func (h *ArticleHandler) UpdateHandler(c *gin.Context) {
	identity, ok := authHTTP.RequireIdentity(c, h.logger)
	if !ok {
		return
	}

	boardID, err := parseBoardID(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}
	articleID, err := parseUUIDParam(c, "articleId")
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	var req dto.ArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	article, err := h.articleUseCase.Update(c.Request.Context(), identity, boardUseCase.UpdateArticleInput{
		BoardID:   boardID,
		ArticleID: articleID,
		Title:     req.Title,
		Content:   req.Content,
	})
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapArticleToResponse(article))
}

// DeleteHandler soft deletes an article of the caller.
// DELETE /v1/boards/:boardId/articles/:articleId - Returns 204 No Content.
func (h *ArticleHandler) DeleteHandler(c *gin.Context) {
	identity, ok := authHTTP.RequireIdentity(c, h.logger)
	if !ok {
		return
	}

	boardID, err := parseBoardID(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}
	articleID, err := parseUUIDParam(c, "articleId")
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := h.articleUseCase.Delete(c.Request.Context(), identity, boardID, articleID); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Data(http.StatusNoContent, "application/json", nil)
}
