package domain

import (
	"errors"
	"time"
)

var ErrMissingField = errors.New("all fields are required")
var ErrInvalidEmail = errors.New("invalid email format")
var ErrInvalidPhone = errors.New("invalid phone number format")
var ErrUserExists = errors.New("user already exists")
var ErrUserNotFound = errors.New("user not found")
var ErrOTPDispatch = errors.New("failed to send verification code")
var ErrInvalidOTP = errors.New("invalid otp")
var ErrOTPCheck = errors.New("verification check failed")
var ErrUnauthorized = errors.New("unauthorized")

// User is a registered identity. Email and phone are globally unique;
// the storage layer enforces both constraints atomically on insert.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"created_at"`
}

// Profile is the read-only projection returned to an authenticated caller.
// It never exposes the internal identifier.
type Profile struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// Profile returns the public projection of the user.
func (u *User) Profile() Profile {
	return Profile{Name: u.Name, Email: u.Email, Phone: u.Phone}
}
