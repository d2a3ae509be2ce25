package otp

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

const (
	codeTTL    = 10 * time.Minute
	codeDigits = 1000000 // 6-digit codes
)

// CodeStore abstracts the pending-challenge store (Redis).
type CodeStore interface {
	Put(ctx context.Context, phone, value string, ttl time.Duration) error
	Get(ctx context.Context, phone string) (string, error)
	Delete(ctx context.Context, phone string) error
}

// LocalProvider implements the verification capability without an external
// messaging service. Codes are minted locally and "delivered" through the
// log; the store only ever holds a bcrypt hash, so pending codes are not
// readable at rest. A code is consumed on its first successful check.
type LocalProvider struct {
	store CodeStore
	log   zerolog.Logger
}

// NewLocalProvider creates a LocalProvider backed by store.
func NewLocalProvider(store CodeStore, log zerolog.Logger) *LocalProvider {
	return &LocalProvider{store: store, log: log}
}

// RequestCode mints a 6-digit code, stores its hash with a 10-minute TTL, and
// logs the plaintext in place of SMS delivery.
func (p *LocalProvider) RequestCode(ctx context.Context, phone string) error {
	code, err := generateCode()
	if err != nil {
		return fmt.Errorf("generate code: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash code: %w", err)
	}

	if err := p.store.Put(ctx, phone, string(hash), codeTTL); err != nil {
		return err
	}

	p.log.Info().Str("phone", phone).Str("code", code).Msg("local otp issued")
	return nil
}

// CheckCode compares code against the pending challenge. A match consumes the
// challenge; a mismatch leaves it in place for another attempt until expiry.
func (p *LocalProvider) CheckCode(ctx context.Context, phone, code string) (bool, error) {
	hash, err := p.store.Get(ctx, phone)
	if err != nil {
		return false, err
	}
	if hash == "" {
		return false, nil
	}

	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(code)) != nil {
		return false, nil
	}

	if err := p.store.Delete(ctx, phone); err != nil {
		p.log.Warn().Err(err).Str("phone", phone).Msg("failed to consume otp challenge")
	}
	return true, nil
}

func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(codeDigits))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
