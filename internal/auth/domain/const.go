// Package domain defines the authentication and abuse-control domain models:
// verified identities, issued bearer tokens, revocation horizons and the
// minimum-interval write policies.
package domain

import "time"

// ActionKind names a write action subject to a minimum interval per user.
type ActionKind string

const (
	// ArticleWrite is the creation of a new article.
	ArticleWrite ActionKind = "article_write"

	// ArticleEdit is the modification or soft deletion of an existing article.
	ArticleEdit ActionKind = "article_edit"

	// CommentWrite is the creation of a new comment.
	CommentWrite ActionKind = "comment_write"

	// CommentEdit is the modification of an existing comment.
	CommentEdit ActionKind = "comment_edit"
)

// Default minimum intervals between two actions of the same kind by one user.
const (
	DefaultArticleWriteInterval = 5 * time.Minute
	DefaultArticleEditInterval  = 5 * time.Minute
	DefaultCommentWriteInterval = time.Minute
	DefaultCommentEditInterval  = time.Minute
)

// DefaultTrustWindow is the clock-skew margin added to a revocation horizon.
const DefaultTrustWindow = 60 * time.Minute

// MinSigningSecretLength is the minimum accepted length of the signing secret in bytes.
const MinSigningSecretLength = 32
