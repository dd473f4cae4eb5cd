package http

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onionboard/backend/internal/board/http/dto"
)

func createArticle(t *testing.T, b *testBoard, username string) dto.ArticleResponse {
	t.Helper()
	w := b.do(http.MethodPost, "/v1/boards/1/articles", username, `{"title":"Hello","content":"World"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp dto.ArticleResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestArticleWrite_MinimumInterval(t *testing.T) {
	b := newTestBoard()

	first := createArticle(t, b, "alice")
	assert.Equal(t, "alice", first.Author)

	w := b.do(http.MethodPost, "/v1/boards/1/articles", "alice", `{"title":"Again","content":"Too soon"}`)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "301", w.Header().Get("Retry-After"))

	// Another user is not affected.
	createArticle(t, b, "bob")

	// Exactly the interval is still too soon.
	b.clock.Advance(5 * time.Minute)
	w = b.do(http.MethodPost, "/v1/boards/1/articles", "alice", `{"title":"Again","content":"Boundary"}`)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "1", w.Header().Get("Retry-After"))

	b.clock.Advance(time.Second)
	createArticle(t, b, "alice")
}

func TestArticleEdit_GuardedIndependentlyOfCreate(t *testing.T) {
	b := newTestBoard()
	article := createArticle(t, b, "alice")
	path := "/v1/boards/1/articles/" + article.ID

	// Editing right after writing is governed by the edit interval only.
	w := b.do(http.MethodPut, path, "alice", `{"title":"Edited","content":"Once"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var edited dto.ArticleResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &edited))
	assert.Equal(t, "Edited", edited.Title)
	assert.NotNil(t, edited.EditedAt)

	w = b.do(http.MethodPut, path, "alice", `{"title":"Edited","content":"Twice"}`)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)

	// Deleting is an edit too.
	w = b.do(http.MethodDelete, path, "alice", "")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)

	b.clock.Advance(5*time.Minute + time.Second)
	w = b.do(http.MethodDelete, path, "alice", "")
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = b.do(http.MethodGet, "/v1/boards/1/articles", "alice", "")
	require.Equal(t, http.StatusOK, w.Code)
	var list dto.ListArticlesResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Empty(t, list.Data)
}

func TestArticleHandler_Errors(t *testing.T) {
	b := newTestBoard()
	article := createArticle(t, b, "alice")
	path := "/v1/boards/1/articles/" + article.ID

	tests := []struct {
		name     string
		method   string
		path     string
		username string
		body     string
		status   int
	}{
		{"unauthenticated", http.MethodPost, "/v1/boards/1/articles", "", `{"title":"a","content":"b"}`, http.StatusUnauthorized},
		{"invalid board id", http.MethodPost, "/v1/boards/zero/articles", "bob", `{"title":"a","content":"b"}`, http.StatusUnprocessableEntity},
		{"missing title", http.MethodPost, "/v1/boards/1/articles", "bob", `{"content":"b"}`, http.StatusUnprocessableEntity},
		{"malformed json", http.MethodPost, "/v1/boards/1/articles", "bob", `{`, http.StatusBadRequest},
		{"invalid article id", http.MethodPut, "/v1/boards/1/articles/nope", "alice", `{"title":"a","content":"b"}`, http.StatusUnprocessableEntity},
		{"not the author", http.MethodPut, path, "bob", `{"title":"a","content":"b"}`, http.StatusForbidden},
		{"other board", http.MethodPut, "/v1/boards/2/articles/" + article.ID, "alice", `{"title":"a","content":"b"}`, http.StatusNotFound},
		{"delete by stranger", http.MethodDelete, path, "bob", "", http.StatusForbidden},
		{"invalid pagination", http.MethodGet, "/v1/boards/1/articles?limit=1000", "alice", "", http.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := b.do(tt.method, tt.path, tt.username, tt.body)
			assert.Equal(t, tt.status, w.Code, w.Body.String())
		})
	}
}

func TestCommentWrite_MinimumInterval(t *testing.T) {
	b := newTestBoard()
	article := createArticle(t, b, "alice")
	path := "/v1/boards/1/articles/" + article.ID + "/comments"

	w := b.do(http.MethodPost, path, "bob", `{"content":"First"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var comment dto.CommentResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &comment))

	w = b.do(http.MethodPost, path, "bob", `{"content":"Second"}`)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "61", w.Header().Get("Retry-After"))

	// Editing the fresh comment is a different action kind.
	w = b.do(http.MethodPut, path+"/"+comment.ID, "bob", `{"content":"Fixed typo"}`)
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = b.do(http.MethodPut, path+"/"+comment.ID, "alice", `{"content":"Hijack"}`)
	assert.Equal(t, http.StatusForbidden, w.Code)

	b.clock.Advance(time.Minute + time.Second)
	w = b.do(http.MethodPost, path, "bob", `{"content":"Second"}`)
	assert.Equal(t, http.StatusCreated, w.Code)

	w = b.do(http.MethodGet, path, "alice", "")
	require.Equal(t, http.StatusOK, w.Code)
	var list dto.ListCommentsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Len(t, list.Data, 2)
}

func TestCommentWrite_DeletedArticle(t *testing.T) {
	b := newTestBoard()
	article := createArticle(t, b, "alice")

	w := b.do(http.MethodDelete, "/v1/boards/1/articles/"+article.ID, "alice", "")
	require.Equal(t, http.StatusNoContent, w.Code)

	w = b.do(http.MethodPost, "/v1/boards/1/articles/"+article.ID+"/comments", "bob", `{"content":"Late"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
