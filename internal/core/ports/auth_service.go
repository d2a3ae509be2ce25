package ports

import (
	"context"

	"github.com/dialkey/identity-service/internal/core/domain"
)

// RegisterInput carries the contact details for a new identity.
type RegisterInput struct {
	Name  string
	Email string
	Phone string
}

// AuthService defines the authentication use cases: registration, the
// two-step OTP login, and the token-protected profile lookup.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	SendOTP(ctx context.Context, phone string) error
	// VerifyOTP checks the code with the provider and, on approval, returns a
	// signed session token bound to the phone's owner.
	VerifyOTP(ctx context.Context, phone, code string) (string, error)
	Profile(ctx context.Context, userID string) (domain.Profile, error)
}
