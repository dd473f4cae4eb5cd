// Package dto provides data transfer objects for the user HTTP layer.
package dto

import (
	validation "github.com/jellydator/validation"

	appValidation "github.com/onionboard/backend/internal/validation"
)

// SignupRequest represents the API request for user registration
type SignupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate checks the request shape. Format and password strength rules are
// enforced by the use case.
func (r *SignupRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Username,
			validation.Required,
			appValidation.NotBlank,
		),
		validation.Field(&r.Email,
			validation.Required,
			appValidation.NotBlank,
		),
		validation.Field(&r.Password,
			validation.Required,
		),
	)
}
