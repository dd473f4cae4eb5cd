// Package dto provides data transfer objects for the board HTTP layer.
package dto

import (
	validation "github.com/jellydator/validation"

	appValidation "github.com/onionboard/backend/internal/validation"
)

// ArticleRequest is the body of article create and update requests.
type ArticleRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Validate checks that title and content are present.
func (r *ArticleRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Title,
			validation.Required,
			appValidation.NotBlank,
		),
		validation.Field(&r.Content,
			validation.Required,
			appValidation.NotBlank,
		),
	)
}

// CommentRequest is the body of comment create and update requests.
type CommentRequest struct {
	Content string `json:"content"`
}

// Validate checks that content is present.
func (r *CommentRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Content,
			validation.Required,
			appValidation.NotBlank,
		),
	)
}
