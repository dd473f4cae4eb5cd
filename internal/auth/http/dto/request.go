// Package dto provides data transfer objects for the authentication HTTP layer.
package dto

import (
	validation "github.com/jellydator/validation"

	appValidation "github.com/onionboard/backend/internal/validation"
)

// LoginRequest contains the credentials for POST /v1/users/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"` //nolint:gosec // request credential
}

// Validate checks that both credentials are present.
func (r *LoginRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Username,
			validation.Required,
			appValidation.NotBlank,
		),
		validation.Field(&r.Password,
			validation.Required,
		),
	)
}

// ValidateTokenRequest contains the token to check. When Token is empty the
// token is taken from the request like any authenticated call.
type ValidateTokenRequest struct {
	Token string `json:"token"`
}

// Validate checks the token does not carry stray whitespace.
func (r *ValidateTokenRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Token,
			appValidation.NoWhitespace,
		),
	)
}
