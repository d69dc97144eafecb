package entity

import "time"

// Role is the closed set of actor roles. Stored as text in the DB but never
// compared as a raw string outside this package's constants.
type Role string

const (
	RoleStudent Role = "student"
	RoleVendor  Role = "vendor"
	RoleAdmin   Role = "admin"
)

// Valid reports whether r is one of the three known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleVendor, RoleAdmin:
		return true
	}
	return false
}

// UserProfile represents an actor of the system. Username, Email and — when
// set — MatricNumber and VendorName are globally unique. Role is fixed at
// registration.
type UserProfile struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string // bcrypt hash, never plaintext past registration
	FirstName    string
	LastName     string
	Role         Role
	Superuser    bool // explicit override, grants admin regardless of role
	PhoneNumber  string
	Address      string
	MatricNumber string // student identifier, unique when non-empty
	VendorName   string // vendor display name, unique when non-empty
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsAdmin reports whether the user has admin privileges (admin role or the
// superuser flag).
func (u *UserProfile) IsAdmin() bool {
	return u.Role == RoleAdmin || u.Superuser
}

func (u *UserProfile) IsVendor() bool  { return u.Role == RoleVendor }
func (u *UserProfile) IsStudent() bool { return u.Role == RoleStudent }
