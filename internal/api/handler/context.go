package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ctxSubject extracts the token subject injected by the Auth middleware.
// An empty subject means the middleware did not run (or ran and failed);
// either way the request is not authenticated.
func ctxSubject(c echo.Context) (string, error) {
	subject, _ := c.Get("user_id").(string)
	if subject == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	return subject, nil
}
