package otp

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

type memCodeStore struct {
	values map[string]string
}

func newMemCodeStore() *memCodeStore {
	return &memCodeStore{values: make(map[string]string)}
}

func (s *memCodeStore) Put(_ context.Context, phone, value string, _ time.Duration) error {
	s.values[phone] = value
	return nil
}

func (s *memCodeStore) Get(_ context.Context, phone string) (string, error) {
	return s.values[phone], nil
}

func (s *memCodeStore) Delete(_ context.Context, phone string) error {
	delete(s.values, phone)
	return nil
}

func issueCode(t *testing.T) (*LocalProvider, *memCodeStore, string) {
	t.Helper()
	store := newMemCodeStore()

	var buf strings.Builder
	log := zerolog.New(&buf)
	p := NewLocalProvider(store, log)

	if err := p.RequestCode(context.Background(), "+14085551234"); err != nil {
		t.Fatalf("RequestCode: %v", err)
	}

	// The plaintext code only exists in the delivery log.
	marker := `"code":"`
	i := strings.Index(buf.String(), marker)
	if i < 0 {
		t.Fatalf("expected code in delivery log, got %s", buf.String())
	}
	code := buf.String()[i+len(marker) : i+len(marker)+6]
	return p, store, code
}

func TestLocalProvider_StoresHashNotPlaintext(t *testing.T) {
	_, store, code := issueCode(t)

	stored := store.values["+14085551234"]
	if stored == code {
		t.Fatalf("code stored in plaintext")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored), []byte(code)); err != nil {
		t.Fatalf("stored value is not a hash of the code: %v", err)
	}
}

func TestLocalProvider_CheckCode_ApprovesOnceThenConsumes(t *testing.T) {
	p, _, code := issueCode(t)

	approved, err := p.CheckCode(context.Background(), "+14085551234", code)
	if err != nil || !approved {
		t.Fatalf("expected approval, got %v %v", approved, err)
	}

	// Single use: a replay of the same code is denied.
	approved, err = p.CheckCode(context.Background(), "+14085551234", code)
	if err != nil || approved {
		t.Fatalf("expected replay to be denied, got %v %v", approved, err)
	}
}

func TestLocalProvider_CheckCode_WrongCode(t *testing.T) {
	p, store, code := issueCode(t)

	wrong := "000000"
	if wrong == code {
		wrong = "000001"
	}

	approved, err := p.CheckCode(context.Background(), "+14085551234", wrong)
	if err != nil || approved {
		t.Fatalf("expected denial, got %v %v", approved, err)
	}

	// A failed attempt does not consume the challenge.
	if _, ok := store.values["+14085551234"]; !ok {
		t.Fatalf("challenge consumed by failed attempt")
	}
}

func TestLocalProvider_CheckCode_NoPendingChallenge(t *testing.T) {
	p := NewLocalProvider(newMemCodeStore(), zerolog.Nop())

	approved, err := p.CheckCode(context.Background(), "+14085551234", "123456")
	if err != nil || approved {
		t.Fatalf("expected denial with no pending challenge, got %v %v", approved, err)
	}
}
