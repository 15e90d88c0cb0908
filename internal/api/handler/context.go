package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/signalist/signalist-api/internal/api/middleware"
	"github.com/signalist/signalist-api/internal/core/domain"
	"github.com/signalist/signalist-api/internal/core/ports"
)

// ctxIdentity extracts the identity resolved by the Identity middleware and
// fast-fails before any service call: a mutation handler must never run
// without an authenticated caller, even if route wiring forgot a guard.
func ctxIdentity(c echo.Context) (domain.Identity, error) {
	identity := middleware.IdentityFrom(c)
	if !identity.IsAuthenticated() {
		return domain.Identity{}, echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}
	return identity, nil
}

// requestMetadata captures best-effort audit context from the request.
// Missing headers are tolerated; values stay empty rather than failing.
func requestMetadata(c echo.Context) ports.RequestMetadata {
	ip := c.Request().Header.Get("X-Forwarded-For")
	if ip == "" {
		ip = c.Request().Header.Get("X-Real-Ip")
	}
	if ip == "" {
		ip = c.RealIP()
	}
	return ports.RequestMetadata{
		IPAddress: ip,
		UserAgent: c.Request().UserAgent(),
	}
}
