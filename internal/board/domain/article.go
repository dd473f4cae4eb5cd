// Package domain defines board articles and comments.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Article is a post on a board. Deleted articles are kept with DeletedAt set.
type Article struct {
	ID        uuid.UUID
	BoardID   int64
	Author    string
	Title     string
	Content   string
	CreatedAt time.Time
	UpdatedAt time.Time
	// EditedAt is the time of the last edit or soft delete by the author.
	EditedAt  *time.Time
	DeletedAt *time.Time
}

// IsDeleted reports whether the article was soft deleted.
func (a *Article) IsDeleted() bool {
	return a.DeletedAt != nil
}

// IsAuthoredBy reports whether username wrote the article.
func (a *Article) IsAuthoredBy(username string) bool {
	return a.Author == username
}

// Edit replaces title and content and stamps the edit time.
func (a *Article) Edit(title, content string, at time.Time) {
	a.Title = title
	a.Content = content
	a.UpdatedAt = at
	a.EditedAt = &at
}

// MarkDeleted soft deletes the article. It counts as an edit.
func (a *Article) MarkDeleted(at time.Time) {
	a.UpdatedAt = at
	a.EditedAt = &at
	a.DeletedAt = &at
}
