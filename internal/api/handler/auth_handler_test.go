package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/dialkey/identity-service/internal/core/domain"
	"github.com/dialkey/identity-service/internal/core/ports"
)

type stubAuthService struct {
	registerFn  func(ctx context.Context, input ports.RegisterInput) (*domain.User, error)
	sendOTPFn   func(ctx context.Context, phone string) error
	verifyOTPFn func(ctx context.Context, phone, code string) (string, error)
	profileFn   func(ctx context.Context, userID string) (domain.Profile, error)
}

func (s *stubAuthService) Register(ctx context.Context, input ports.RegisterInput) (*domain.User, error) {
	return s.registerFn(ctx, input)
}

func (s *stubAuthService) SendOTP(ctx context.Context, phone string) error {
	return s.sendOTPFn(ctx, phone)
}

func (s *stubAuthService) VerifyOTP(ctx context.Context, phone, code string) (string, error) {
	return s.verifyOTPFn(ctx, phone, code)
}

func (s *stubAuthService) Profile(ctx context.Context, userID string) (domain.Profile, error) {
	return s.profileFn(ctx, userID)
}

func newTestContext(t *testing.T, method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthHandler_Register_Success(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, input ports.RegisterInput) (*domain.User, error) {
			if input.Name != "A" || input.Email != "a@x.com" || input.Phone != "+14085551234" {
				t.Fatalf("unexpected input: %+v", input)
			}
			return &domain.User{ID: "id-1", Name: input.Name, Email: input.Email, Phone: input.Phone}, nil
		},
	}
	h := NewAuthHandler(stub)

	c, rec := newTestContext(t, http.MethodPost, "/api/register",
		`{"name":"A","email":"a@x.com","phone":"+14085551234"}`)

	if err := h.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
}

func TestAuthHandler_Register_ValidationFailures(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, input ports.RegisterInput) (*domain.User, error) {
			t.Fatalf("service should not be called")
			return nil, nil
		},
	}
	h := NewAuthHandler(stub)

	bodies := []string{
		`{"email":"a@x.com","phone":"+14085551234"}`,        // missing name
		`{"name":"A","email":"bad","phone":"+14085551234"}`, // bad email
		`{"name":"A","email":"a@x.com","phone":"555-1234"}`, // bad phone
		"not-json",
	}
	for _, body := range bodies {
		c, _ := newTestContext(t, http.MethodPost, "/api/register", body)
		err := h.Register(c)

		var he *echo.HTTPError
		if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
			t.Fatalf("body %q: expected 400 HTTPError, got %v", body, err)
		}
	}
}

func TestAuthHandler_Register_Duplicate(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, input ports.RegisterInput) (*domain.User, error) {
			return nil, domain.ErrUserExists
		},
	}
	h := NewAuthHandler(stub)

	c, _ := newTestContext(t, http.MethodPost, "/api/register",
		`{"name":"B","email":"b@x.com","phone":"+14085551234"}`)

	if err := h.Register(c); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists to propagate, got %v", err)
	}
}

func TestAuthHandler_SendOTP_Success(t *testing.T) {
	stub := &stubAuthService{
		sendOTPFn: func(ctx context.Context, phone string) error {
			if phone != "+14085551234" {
				t.Fatalf("unexpected phone: %s", phone)
			}
			return nil
		},
	}
	h := NewAuthHandler(stub)

	c, rec := newTestContext(t, http.MethodPost, "/api/login/send-otp", `{"phone":"+14085551234"}`)
	if err := h.SendOTP(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthHandler_SendOTP_InvalidPhone(t *testing.T) {
	stub := &stubAuthService{
		sendOTPFn: func(ctx context.Context, phone string) error {
			t.Fatalf("service should not be called")
			return nil
		},
	}
	h := NewAuthHandler(stub)

	c, _ := newTestContext(t, http.MethodPost, "/api/login/send-otp", `{"phone":"555-1234"}`)
	err := h.SendOTP(c)

	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
}

func TestAuthHandler_SendOTP_UnknownUser(t *testing.T) {
	stub := &stubAuthService{
		sendOTPFn: func(ctx context.Context, phone string) error {
			return domain.ErrUserNotFound
		},
	}
	h := NewAuthHandler(stub)

	c, _ := newTestContext(t, http.MethodPost, "/api/login/send-otp", `{"phone":"+14085551234"}`)
	if err := h.SendOTP(c); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound to propagate, got %v", err)
	}
}

func TestAuthHandler_VerifyOTP_Success(t *testing.T) {
	stub := &stubAuthService{
		verifyOTPFn: func(ctx context.Context, phone, code string) (string, error) {
			if phone != "+14085551234" || code != "123456" {
				t.Fatalf("unexpected args: %s %s", phone, code)
			}
			return "token123", nil
		},
	}
	h := NewAuthHandler(stub)

	c, rec := newTestContext(t, http.MethodPost, "/api/login/verify-otp",
		`{"phone":"+14085551234","otp":"123456"}`)

	if err := h.VerifyOTP(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["token"] != "token123" {
		t.Fatalf("expected token, got %v", resp["token"])
	}
}

func TestAuthHandler_VerifyOTP_MissingFields(t *testing.T) {
	stub := &stubAuthService{
		verifyOTPFn: func(ctx context.Context, phone, code string) (string, error) {
			t.Fatalf("service should not be called")
			return "", nil
		},
	}
	h := NewAuthHandler(stub)

	for _, body := range []string{`{"phone":"+14085551234"}`, `{"otp":"123456"}`, `{}`} {
		c, _ := newTestContext(t, http.MethodPost, "/api/login/verify-otp", body)
		err := h.VerifyOTP(c)

		var he *echo.HTTPError
		if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
			t.Fatalf("body %q: expected 400 HTTPError, got %v", body, err)
		}
	}
}

func TestAuthHandler_VerifyOTP_Denied(t *testing.T) {
	stub := &stubAuthService{
		verifyOTPFn: func(ctx context.Context, phone, code string) (string, error) {
			return "", domain.ErrInvalidOTP
		},
	}
	h := NewAuthHandler(stub)

	c, _ := newTestContext(t, http.MethodPost, "/api/login/verify-otp",
		`{"phone":"+14085551234","otp":"000000"}`)

	if err := h.VerifyOTP(c); !errors.Is(err, domain.ErrInvalidOTP) {
		t.Fatalf("expected ErrInvalidOTP to propagate, got %v", err)
	}
}

func TestUserHandler_Get_Success(t *testing.T) {
	stub := &stubAuthService{
		profileFn: func(ctx context.Context, userID string) (domain.Profile, error) {
			if userID != "id-1" {
				t.Fatalf("unexpected subject: %s", userID)
			}
			return domain.Profile{Name: "A", Email: "a@x.com", Phone: "+14085551234"}, nil
		},
	}
	h := NewUserHandler(stub)

	c, rec := newTestContext(t, http.MethodGet, "/api/user", "")
	c.Set("user_id", "id-1")

	if err := h.Get(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["name"] != "A" || resp["email"] != "a@x.com" || resp["phone"] != "+14085551234" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
	if _, leaked := resp["id"]; leaked {
		t.Fatalf("profile must not expose the user id")
	}
}

func TestUserHandler_Get_NoSubject(t *testing.T) {
	stub := &stubAuthService{
		profileFn: func(ctx context.Context, userID string) (domain.Profile, error) {
			t.Fatalf("service should not be called")
			return domain.Profile{}, nil
		},
	}
	h := NewUserHandler(stub)

	c, _ := newTestContext(t, http.MethodGet, "/api/user", "")
	err := h.Get(c)

	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}
}

func TestUserHandler_Get_DeletedUser(t *testing.T) {
	stub := &stubAuthService{
		profileFn: func(ctx context.Context, userID string) (domain.Profile, error) {
			return domain.Profile{}, domain.ErrUserNotFound
		},
	}
	h := NewUserHandler(stub)

	c, _ := newTestContext(t, http.MethodGet, "/api/user", "")
	c.Set("user_id", "id-gone")
	err := h.Get(c)

	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected opaque 401, got %v", err)
	}
}
