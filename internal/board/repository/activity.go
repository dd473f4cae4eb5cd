package repository

import (
	authDomain "github.com/onionboard/backend/internal/auth/domain"
)

// activityColumns maps each write kind to the table and timestamp column that record it.
// Edits are read from edited_at so an edit right after creation is still governed
// by the edit interval alone.
var activityColumns = map[authDomain.ActionKind]struct {
	table  string
	column string
}{
	authDomain.ArticleWrite: {"articles", "created_at"},
	authDomain.ArticleEdit:  {"articles", "edited_at"},
	authDomain.CommentWrite: {"comments", "created_at"},
	authDomain.CommentEdit:  {"comments", "edited_at"},
}

// latestActionQuery builds the MAX lookup for kind with the given placeholder.
func latestActionQuery(kind authDomain.ActionKind, placeholder string) (string, error) {
	source, ok := activityColumns[kind]
	if !ok {
		return "", authDomain.ErrUnknownActionKind
	}
	return "SELECT MAX(" + source.column + ") FROM " + source.table + " WHERE author = " + placeholder, nil
}
