package http

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts the board routes on an authenticated group.
func RegisterRoutes(group *gin.RouterGroup, articles *ArticleHandler, comments *CommentHandler) {
	boards := group.Group("/boards/:boardId/articles")
	{
		boards.GET("", articles.ListHandler)
		boards.POST("", articles.CreateHandler)
		boards.PUT("/:articleId", articles.UpdateHandler)
		boards.DELETE("/:articleId", articles.DeleteHandler)

		boards.GET("/:articleId/comments", comments.ListHandler)
		boards.POST("/:articleId/comments", comments.CreateHandler)
		boards.PUT("/:articleId/comments/:commentId", comments.UpdateHandler)
	}
}
