package dto

import "time"

// RegisterRequest is the registration input. Role defaults to student when
// empty; matric_number and vendor_name are optional role-oriented
// identifiers, each globally unique when provided.
type RegisterRequest struct {
	Username     string `json:"username" validate:"required,min=3,max=50"`
	Email        string `json:"email" validate:"required,email"`
	Password     string `json:"password" validate:"required,min=8"`
	FirstName    string `json:"first_name" validate:"required"`
	LastName     string `json:"last_name" validate:"required"`
	Role         string `json:"role"`
	PhoneNumber  string `json:"phone_number"`
	Address      string `json:"address"`
	MatricNumber string `json:"matric_number"`
	VendorName   string `json:"vendor_name"`
}

// LoginRequest authenticates by email + password.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UpdateProfileRequest carries the mutable profile fields. Role is not
// mutable after registration and is deliberately absent.
type UpdateProfileRequest struct {
	FirstName   *string `json:"first_name"`
	LastName    *string `json:"last_name"`
	PhoneNumber *string `json:"phone_number"`
	Address     *string `json:"address"`
}

// UserResponse is the public view of a profile.
type UserResponse struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Role         string    `json:"role"`
	IsAdmin      bool      `json:"is_admin"`
	PhoneNumber  string    `json:"phone_number,omitempty"`
	Address      string    `json:"address,omitempty"`
	MatricNumber string    `json:"matric_number,omitempty"`
	VendorName   string    `json:"vendor_name,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// LoginResponse returns the signed token plus the authenticated profile.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
