package auth

import (
	"fmt"

	"shipment-tracking/constants"
)

// LoginRequest is the payload for username/password login.
type LoginRequest struct {
	Username string `json:"username" validate:"required,max=255"`
	Password string `json:"password" validate:"required,min=6"`
}

// RegisterRequest is the payload for creating a login. CourierCode must be
// set when (and only when) the role is courier.
type RegisterRequest struct {
	Username    string  `json:"username" validate:"required,min=3,max=255"`
	Password    string  `json:"password" validate:"required,min=6,max=72"`
	FullName    string  `json:"full_name" validate:"required,max=255"`
	Role        string  `json:"role" validate:"required,max=20"`
	CourierCode *string `json:"courier_code" validate:"omitempty,max=10"`
}

// Validate checks the register payload field by field.
func (r RegisterRequest) Validate() error {
	if r.Username == "" {
		return fmt.Errorf("username is required")
	}
	if len(r.Username) < 3 {
		return fmt.Errorf("username must be at least 3 characters")
	}
	if r.Password == "" {
		return fmt.Errorf("password is required")
	}
	if len(r.Password) < 6 {
		return fmt.Errorf("password must be at least 6 characters")
	}
	if len(r.Password) > 72 {
		return fmt.Errorf("password must be at most 72 characters")
	}
	if r.FullName == "" {
		return fmt.Errorf("full_name is required")
	}
	if !constants.IsValidRole(r.Role) {
		return fmt.Errorf("role must be one of admin, finance, warehouse or courier")
	}
	return nil
}
