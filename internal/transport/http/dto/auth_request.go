package dto

import (
	"github.com/go-playground/validator/v10"

	"github.com/flowdeck/workflow-service/internal/domain"
)

var validate = validator.New()

// -------- Core auth --------

// The contract only requires presence checks; anything stricter (format,
// length) would change observable behavior.

type RegisterRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (r *RegisterRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return domain.ErrMissingCredentials()
	}
	return nil
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (r *LoginRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return domain.ErrMissingCredentials()
	}
	return nil
}
