package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/foodsales/dashboard/internal/api/middleware"
	"github.com/foodsales/dashboard/internal/core/domain"
)

// ctxIdentity extracts the session id and identity admitted by the Gate
// middleware. Both must be present; a missing identity means the route was
// registered outside the gated group.
func ctxIdentity(c echo.Context) (string, *domain.Identity, error) {
	identity := middleware.Identity(c)
	sid := middleware.SessionID(c)
	if identity == nil || sid == "" {
		return "", nil, echo.NewHTTPError(http.StatusUnauthorized, "missing session identity")
	}
	return sid, identity, nil
}
