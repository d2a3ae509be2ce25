package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/dialkey/identity-service/internal/core/domain"
	"github.com/dialkey/identity-service/internal/core/ports"
	"github.com/dialkey/identity-service/internal/core/token"
)

// AuthService implements the registration and OTP login flows. It holds no
// state between requests; the OTP challenge lives with the provider and the
// session lives in the signed token.
type AuthService struct {
	users  ports.UserRepository
	otp    ports.OTPProvider
	tokens *token.Codec
	audit  ports.AuditRecorder
	log    zerolog.Logger
}

func NewAuthService(
	users ports.UserRepository,
	otp ports.OTPProvider,
	tokens *token.Codec,
	audit ports.AuditRecorder,
	log zerolog.Logger,
) *AuthService {
	return &AuthService{users: users, otp: otp, tokens: tokens, audit: audit, log: log}
}

// Register validates the contact details and inserts a new user. No token is
// issued and no OTP is triggered; registration and authentication are separate.
func (s *AuthService) Register(ctx context.Context, input ports.RegisterInput) (*domain.User, error) {
	if input.Name == "" || input.Email == "" || input.Phone == "" {
		return nil, domain.ErrMissingField
	}
	if !domain.IsValidEmail(input.Email) {
		return nil, domain.ErrInvalidEmail
	}
	if !domain.IsValidPhone(input.Phone) {
		return nil, domain.ErrInvalidPhone
	}

	existing, err := s.users.FindByEmailOrPhone(ctx, input.Email, input.Phone)
	if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("register: %w", err)
	}
	if existing != nil {
		return nil, domain.ErrUserExists
	}

	user := &domain.User{
		Name:      input.Name,
		Email:     input.Email,
		Phone:     input.Phone,
		CreatedAt: time.Now().UTC(),
	}

	// The repository's unique indexes close the race between the lookup above
	// and this insert: a concurrent duplicate still surfaces as ErrUserExists.
	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.audit.Enqueue(domain.AuthEvent{Phone: created.Phone, Type: domain.EventUserRegistered, At: created.CreatedAt})
	s.log.Info().Str("phone", created.Phone).Msg("user registered")

	return created, nil
}

// SendOTP asks the provider to deliver a one-time code to phone. Only phones
// that already own a registered profile may receive a code.
func (s *AuthService) SendOTP(ctx context.Context, phone string) error {
	if !domain.IsValidPhone(phone) {
		return domain.ErrInvalidPhone
	}

	if _, err := s.users.FindByPhone(ctx, phone); err != nil {
		return err
	}

	if err := s.otp.RequestCode(ctx, phone); err != nil {
		s.log.Error().Err(err).Str("phone", phone).Msg("otp dispatch failed")
		return fmt.Errorf("%w: %v", domain.ErrOTPDispatch, err)
	}

	s.audit.Enqueue(domain.AuthEvent{Phone: phone, Type: domain.EventOTPSent, At: time.Now().UTC()})
	s.log.Info().Str("phone", phone).Msg("otp sent")

	return nil
}

// VerifyOTP checks the code with the provider and mints a session token on
// approval. This is the only path that produces a token.
func (s *AuthService) VerifyOTP(ctx context.Context, phone, code string) (string, error) {
	if phone == "" || code == "" {
		return "", domain.ErrMissingField
	}

	approved, err := s.otp.CheckCode(ctx, phone, code)
	if err != nil {
		s.log.Error().Err(err).Str("phone", phone).Msg("otp check failed")
		return "", fmt.Errorf("%w: %v", domain.ErrOTPCheck, err)
	}
	if !approved {
		return "", domain.ErrInvalidOTP
	}

	// Initiation required an existing user, so absence here means the record
	// was removed between the two calls.
	user, err := s.users.FindByPhone(ctx, phone)
	if err != nil {
		return "", err
	}

	signed, err := s.tokens.Mint(user.ID, time.Now().UTC())
	if err != nil {
		return "", fmt.Errorf("verify otp: mint token: %w", err)
	}

	s.audit.Enqueue(domain.AuthEvent{Phone: phone, Type: domain.EventOTPVerified, At: time.Now().UTC()})
	s.log.Info().Str("phone", phone).Msg("otp verified, session issued")

	return signed, nil
}

// Profile resolves the token subject to its public projection.
func (s *AuthService) Profile(ctx context.Context, userID string) (domain.Profile, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return domain.Profile{}, err
	}
	return user.Profile(), nil
}
