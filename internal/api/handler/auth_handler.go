package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dialkey/identity-service/internal/api/metrics"
	"github.com/dialkey/identity-service/internal/core/domain"
	"github.com/dialkey/identity-service/internal/core/ports"
)

// AuthHandler exposes the registration and OTP login endpoints.
type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register creates a new user account. No token is issued here; the caller
// must complete the OTP login to obtain one.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Contact details"
// @Success      201   {object}  messageResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /api/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		metrics.RegistrationsTotal.WithLabelValues("invalid").Inc()
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	input := ports.RegisterInput{Name: req.Name, Email: req.Email, Phone: req.Phone}
	if _, err := h.authService.Register(c.Request().Context(), input); err != nil {
		switch {
		case errors.Is(err, domain.ErrUserExists):
			metrics.RegistrationsTotal.WithLabelValues("duplicate").Inc()
		default:
			metrics.RegistrationsTotal.WithLabelValues("invalid").Inc()
		}
		return err
	}

	metrics.RegistrationsTotal.WithLabelValues("created").Inc()
	return c.JSON(http.StatusCreated, messageResponse{Message: "user registered successfully"})
}

// SendOTP triggers one-time code delivery for a registered phone.
//
// @Summary      Send a login OTP via SMS
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      sendOTPRequest  true  "Registered phone number"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /api/login/send-otp [post]
func (h *AuthHandler) SendOTP(c echo.Context) error {
	var req sendOTPRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		metrics.OTPSentTotal.WithLabelValues("invalid").Inc()
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.authService.SendOTP(c.Request().Context(), req.Phone); err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			metrics.OTPSentTotal.WithLabelValues("not_found").Inc()
		case errors.Is(err, domain.ErrInvalidPhone):
			metrics.OTPSentTotal.WithLabelValues("invalid").Inc()
		default:
			metrics.OTPSentTotal.WithLabelValues("error").Inc()
		}
		return err
	}

	metrics.OTPSentTotal.WithLabelValues("sent").Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: "otp sent successfully"})
}

// VerifyOTP checks the code with the provider and returns a session token.
//
// @Summary      Verify an OTP and obtain a session token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      verifyOTPRequest  true  "Phone and received code"
// @Success      200   {object}  tokenResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /api/login/verify-otp [post]
func (h *AuthHandler) VerifyOTP(c echo.Context) error {
	var req verifyOTPRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	signed, err := h.authService.VerifyOTP(c.Request().Context(), req.Phone, req.OTP)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidOTP):
			metrics.OTPChecksTotal.WithLabelValues("denied").Inc()
		default:
			metrics.OTPChecksTotal.WithLabelValues("error").Inc()
		}
		return err
	}

	metrics.OTPChecksTotal.WithLabelValues("approved").Inc()
	return c.JSON(http.StatusOK, tokenResponse{Token: signed})
}
