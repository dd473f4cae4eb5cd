package usecase

import (
	validation "github.com/jellydator/validation"

	appValidation "github.com/onionboard/backend/internal/validation"
)

const (
	maxTitleLength          = 200
	maxArticleContentLength = 20000
	maxCommentContentLength = 2000
)

func validateArticle(title, content string) error {
	err := validation.Errors{
		"title": validation.Validate(title,
			validation.Required.Error("title is required"),
			appValidation.NotBlank,
			validation.RuneLength(1, maxTitleLength),
		),
		"content": validation.Validate(content,
			validation.Required.Error("content is required"),
			appValidation.NotBlank,
			validation.RuneLength(1, maxArticleContentLength),
		),
	}.Filter()
	return appValidation.WrapValidationError(err)
}

func validateComment(content string) error {
	err := validation.Errors{
		"content": validation.Validate(content,
			validation.Required.Error("content is required"),
			appValidation.NotBlank,
			validation.RuneLength(1, maxCommentContentLength),
		),
	}.Filter()
	return appValidation.WrapValidationError(err)
}
