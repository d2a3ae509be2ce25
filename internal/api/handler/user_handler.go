package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dialkey/identity-service/internal/core/ports"
)

// UserHandler exposes the token-protected profile endpoint.
type UserHandler struct {
	authService ports.AuthService
}

func NewUserHandler(authService ports.AuthService) *UserHandler {
	return &UserHandler{authService: authService}
}

// Get returns the profile of the token's subject.
//
// @Summary      Get the authenticated user's profile
// @Tags         user
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  profileResponse
// @Failure      401  {object}  errorResponse
// @Router       /api/user [get]
func (h *UserHandler) Get(c echo.Context) error {
	subject, err := ctxSubject(c)
	if err != nil {
		return err
	}

	// A subject with no backing record (deleted after issuance) gets the same
	// opaque 401 as a bad token.
	profile, err := h.authService.Profile(c.Request().Context(), subject)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	return c.JSON(http.StatusOK, profileResponse{
		Name:  profile.Name,
		Email: profile.Email,
		Phone: profile.Phone,
	})
}
