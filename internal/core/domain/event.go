package domain

import "time"

// AuthEventType classifies entries in the authentication audit trail.
type AuthEventType string

const (
	EventUserRegistered AuthEventType = "user_registered"
	EventOTPSent        AuthEventType = "otp_sent"
	EventOTPVerified    AuthEventType = "otp_verified"
)

// AuthEvent records one authentication-flow occurrence for a phone number.
type AuthEvent struct {
	Phone string
	Type  AuthEventType
	At    time.Time
}
