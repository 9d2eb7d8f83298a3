package models

import (
	"assent/internal/identity"
)

// User is the owning identity of a consumer profile. User rows are never
// deleted by this service: the user name is the stable value ledger entries
// reference, and it must stay resolvable after the profile is erased.
type User struct {
	ID           int64
	UserName     string
	Role         identity.Role
	PasswordHash string
}

// Profile holds a consumer's personal data. It is deleted in its entirety
// when the consumer withdraws consent. Personal fields pass through the
// field codec at the persistence boundary; this struct always carries
// plaintext.
type Profile struct {
	ID     int64
	UserID int64

	FullName string
	Email    string
	Phone    string
	Address  string
}

// SignupRequest is the caller-supplied input for consumer registration.
type SignupRequest struct {
	UserName string `validate:"required,notblank,max=100"`
	Password string `validate:"required,min=6,max=72"`
	FullName string `validate:"max=255"`
	Email    string `validate:"omitempty,email,max=255"`
	Phone    string `validate:"max=50"`
	Address  string `validate:"max=500"`
}
