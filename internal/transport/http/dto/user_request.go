package dto

import (
	"strings"

	"github.com/baechuer/real-time-ressys/services/user-service/internal/domain"
)

// -------- Registration / login --------

type RegisterRequest struct {
	FirstName string `json:"first_name" validate:"required,max=150"`
	LastName  string `json:"last_name" validate:"required,max=150"`
	Email     string `json:"email" validate:"required,email,max=254"`
	Password  string `json:"password" validate:"required"`
}

// Validate checks presence and format only. Password strength is the
// account service's concern.
func (r *RegisterRequest) Validate() error {
	r.FirstName = strings.TrimSpace(r.FirstName)
	r.LastName = strings.TrimSpace(r.LastName)
	r.Email = normalizeEmail(r.Email)
	return validateStruct(r)
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (r *LoginRequest) Validate() error {
	r.Email = normalizeEmail(r.Email)
	return validateStruct(r)
}

// -------- Self-service update --------

// UpdateMeRequest carries partial updates. Absent name fields leave the
// stored value untouched; email is never accepted here.
type UpdateMeRequest struct {
	FirstName   *string `json:"first_name,omitempty" validate:"omitempty,max=150"`
	LastName    *string `json:"last_name,omitempty" validate:"omitempty,max=150"`
	Password    string  `json:"password,omitempty"`
	OldPassword string  `json:"old_password,omitempty"`
}

func (r *UpdateMeRequest) Validate() error {
	if r.FirstName != nil {
		v := strings.TrimSpace(*r.FirstName)
		r.FirstName = &v
	}
	if r.LastName != nil {
		v := strings.TrimSpace(*r.LastName)
		r.LastName = &v
	}
	return validateStruct(r)
}

// -------- Email verification --------

type VerifyEmailConfirmRequest struct {
	Token string `json:"token"`
}

func (r *VerifyEmailConfirmRequest) Validate() error {
	if strings.TrimSpace(r.Token) == "" {
		return domain.ErrMissingField("token")
	}
	return nil
}
