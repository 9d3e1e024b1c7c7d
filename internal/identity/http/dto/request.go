// Package dto provides request and response types for identity HTTP endpoints.
package dto

import (
	validation "github.com/jellydator/validation"

	customValidation "github.com/tehnczon/projectecho/internal/validation"
)

// SubmitIdentityRequest is the phone number submission payload.
type SubmitIdentityRequest struct {
	PhoneNumber string `json:"phoneNumber"`
}

// Validate checks the request structure. Presence is enforced downstream
// with the exact contract error; here we only cap the length so the gateway
// never sees unbounded input.
func (r SubmitIdentityRequest) Validate() error {
	return customValidation.WrapValidationError(validation.ValidateStruct(&r,
		validation.Field(&r.PhoneNumber, validation.Length(0, 64)),
	))
}
