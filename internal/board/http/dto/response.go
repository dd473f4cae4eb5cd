package dto

import (
	"time"

	boardDomain "github.com/onionboard/backend/internal/board/domain"
)

// ArticleResponse represents an article in API responses.
type ArticleResponse struct {
	ID        string     `json:"id"`
	BoardID   int64      `json:"board_id"`
	Author    string     `json:"author"`
	Title     string     `json:"title"`
	Content   string     `json:"content"`
	CreatedAt time.Time  `json:"created_at"`
	EditedAt  *time.Time `json:"edited_at,omitempty"`
}

// MapArticleToResponse converts a domain article to an API response.
func MapArticleToResponse(article *boardDomain.Article) ArticleResponse {
	return ArticleResponse{
		ID:        article.ID.String(),
		BoardID:   article.BoardID,
		Author:    article.Author,
		Title:     article.Title,
		Content:   article.Content,
		CreatedAt: article.CreatedAt,
		EditedAt:  article.EditedAt,
	}
}

// ListArticlesResponse represents a page of articles.
type ListArticlesResponse struct {
	Data []ArticleResponse `json:"data"`
}

// MapArticlesToListResponse converts domain articles to a list response.
func MapArticlesToListResponse(articles []*boardDomain.Article) ListArticlesResponse {
	data := make([]ArticleResponse, 0, len(articles))
	for _, article := range articles {
		data = append(data, MapArticleToResponse(article))
	}
	return ListArticlesResponse{Data: data}
}

// CommentResponse represents a comment in API responses.
type CommentResponse struct {
	ID        string     `json:"id"`
	ArticleID string     `json:"article_id"`
	Author    string     `json:"author"`
	Content   string     `json:"content"`
	CreatedAt time.Time  `json:"created_at"`
	EditedAt  *time.Time `json:"edited_at,omitempty"`
}

// MapCommentToResponse converts a domain comment to an API response.
func MapCommentToResponse(comment *boardDomain.Comment) CommentResponse {
	return CommentResponse{
		ID:        comment.ID.String(),
		ArticleID: comment.ArticleID.String(),
		Author:    comment.Author,
		Content:   comment.Content,
		CreatedAt: comment.CreatedAt,
		EditedAt:  comment.EditedAt,
	}
}

// ListCommentsResponse represents a page of comments.
type ListCommentsResponse struct {
	Data []CommentResponse `json:"data"`
}

// MapCommentsToListResponse converts domain comments to a list response.
func MapCommentsToListResponse(comments []*boardDomain.Comment) ListCommentsResponse {
	data := make([]CommentResponse, 0, len(comments))
	for _, comment := range comments {
		data = append(data, MapCommentToResponse(comment))
	}
	return ListCommentsResponse{Data: data}
}
