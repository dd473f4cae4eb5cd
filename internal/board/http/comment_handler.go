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

// CommentHandler handles comment requests. Every route requires AuthenticationMiddleware.
type CommentHandler struct {
	commentUseCase boardUseCase.CommentUseCase
	logger         *slog.Logger
}

// NewCommentHandler creates a new CommentHandler.
func NewCommentHandler(commentUseCase boardUseCase.CommentUseCase, logger *slog.Logger) *CommentHandler {
	return &CommentHandler{
		commentUseCase: commentUseCase,
		logger:         logger,
	}
}

// ListHandler lists the comments of an article, oldest first.
// GET /v1/boards/:boardId/articles/:articleId/comments?offset=0&limit=50 - Returns 200 OK.
func (h *CommentHandler) ListHandler(c *gin.Context) {
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
	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	comments, err := h.commentUseCase.List(c.Request.Context(), boardID, articleID, offset, limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapCommentsToListResponse(comments))
}

// CreateHandler writes a comment on an article.
// POST /v1/boards/:boardId/articles/:articleId/comments - Returns 201 Created, 404 when
// the article is gone, 429 with Retry-After when the caller commented too recently.
func (h *CommentHandler) CreateHandler(c *gin.Context) {
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

	var req dto.CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	comment, err := h.commentUseCase.Create(c.Request.Context(), identity, boardUseCase.CreateCommentInput{
		BoardID:   boardID,
		ArticleID: articleID,
		Content:   req.Content,
	})
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapCommentToResponse(comment))
}

// UpdateHandler edits a comment of the caller.
// PUT /v1/boards/:boardId/articles/:articleId/comments/:commentId - Returns 200 OK.
func (h *CommentHandler) UpdateHandler(c *gin.Context) {
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
	commentID, err := parseUUIDParam(c, "commentId")
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	var req dto.CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	comment, err := h.commentUseCase.Update(c.Request.Context(), identity, boardUseCase.UpdateCommentInput{
		BoardID:   boardID,
		ArticleID: articleID,
		CommentID: commentID,
		Content:   req.Content,
	})
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapCommentToResponse(comment))
}
