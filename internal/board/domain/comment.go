package domain

import (
	"time"

	"github.com/google/uuid"
)

// Comment is a reply to an article.
type Comment struct {
	ID        uuid.UUID
	ArticleID uuid.UUID
	Author    string
	Content   string
	CreatedAt time.Time
	UpdatedAt time.Time
	EditedAt  *time.Time
}

// IsAuthoredBy reports whether username wrote the comment.
func (c *Comment) IsAuthoredBy(username string) bool {
	return c.Author == username
}

// Edit replaces the content and stamps the edit time.
func (c *Comment) Edit(content string, at time.Time) {
	c.Content = content
	c.UpdatedAt = at
	c.EditedAt = &at
}
