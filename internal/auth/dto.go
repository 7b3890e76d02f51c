package auth

import (
	"github.com/tilevista/tilevista-backend/internal/users"
)

// LoginRequest captures the user credentials sent to the login endpoint.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse contains the token pair and user produced by a successful login.
type LoginResponse struct {
	AccessToken  string         `json:"access_token"`
	RefreshToken string         `json:"refresh_token"`
	User         *users.UserDTO `json:"user"`
}

// RefreshRequest carries the expired access token plus the refresh token to rotate.
type RefreshRequest struct {
	AccessToken  string `json:"access_token" validate:"required"`
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// RefreshResponse returns the rotated token pair.
type RefreshResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// RegisterCustomerRequest is the payload for creating a customer account.
type RegisterCustomerRequest struct {
	FullName string  `json:"full_name" validate:"required"`
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required,min=8"`
	Phone    *string `json:"phone,omitempty"`
}

// RegisterSellerRequest onboards a seller account together with its showroom.
type RegisterSellerRequest struct {
	FullName        string  `json:"full_name" validate:"required"`
	Email           string  `json:"email" validate:"required,email"`
	Password        string  `json:"password" validate:"required,min=8"`
	Phone           *string `json:"phone,omitempty"`
	BusinessName    string  `json:"business_name" validate:"required"`
	BusinessAddress *string `json:"business_address,omitempty"`
	Website         *string `json:"website,omitempty"`
	ShowroomName    string  `json:"showroom_name,omitempty"`
}
