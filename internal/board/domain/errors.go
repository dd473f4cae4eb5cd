package domain

import (
	"github.com/onionboard/backend/internal/errors"
)

// Board errors.
var (
	// ErrArticleNotFound indicates the article does not exist, was deleted or belongs to another board.
	ErrArticleNotFound = errors.Wrap(errors.ErrNotFound, "article not found")

	// ErrCommentNotFound indicates the comment does not exist or belongs to another article.
	ErrCommentNotFound = errors.Wrap(errors.ErrNotFound, "comment not found")

	// ErrNotAuthor indicates an attempt to change content written by someone else.
	ErrNotAuthor = errors.Wrap(errors.ErrForbidden, "only the author may change this content")
)
