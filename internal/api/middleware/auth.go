package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/signalist/signalist-api/internal/api/metrics"
	"github.com/signalist/signalist-api/internal/core/domain"
	"github.com/signalist/signalist-api/internal/core/ports"
)

// IdentityKey is the echo context key under which the resolved identity is
// stored for the remainder of the request.
const IdentityKey = "identity"

// IdentityConfig wires the identity resolution middleware.
type IdentityConfig struct {
	Verifier      ports.SessionVerifier
	SessionCookie string
	GuestCookie   string
}

// Identity resolves the request's tri-state identity exactly once, before
// any guard or handler runs. The session credential is taken from the
// Authorization header or the session cookie; the guest marker from its
// cookie. All downstream consumers read the single resolved value.
func Identity(cfg IdentityConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := sessionToken(c, cfg.SessionCookie)
			guestMarker := hasGuestMarker(c, cfg.GuestCookie)

			status := domain.SessionAbsent
			var claims *domain.SessionClaims
			if token != "" {
				verified, err := cfg.Verifier.Verify(c.Request().Context(), token)
				if err != nil {
					status = domain.SessionInvalid
				} else {
					status = domain.SessionValid
					claims = verified
				}
			}

			identity := domain.ResolveIdentity(status, claims, guestMarker)
			metrics.IdentityResolutionsTotal.WithLabelValues(string(identity.Kind)).Inc()

			c.Set(IdentityKey, identity)
			return next(c)
		}
	}
}

// IdentityFrom returns the identity resolved by the Identity middleware.
// Absent middleware yields Anonymous, failing closed.
func IdentityFrom(c echo.Context) domain.Identity {
	if identity, ok := c.Get(IdentityKey).(domain.Identity); ok {
		return identity
	}
	return domain.Anonymous()
}

// RequireAuth rejects mutation-path requests that lack an authenticated
// identity. A guest marker never substitutes for a session here.
func RequireAuth() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !IdentityFrom(c).IsAuthenticated() {
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
			}
			return next(c)
		}
	}
}

func sessionToken(c echo.Context, cookieName string) string {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			return parts[1]
		}
	}
	if cookieName == "" {
		return ""
	}
	cookie, err := c.Cookie(cookieName)
	if err != nil || cookie.Value == "" {
		return ""
	}
	return cookie.Value
}

func hasGuestMarker(c echo.Context, cookieName string) bool {
	if cookieName == "" {
		return false
	}
	cookie, err := c.Cookie(cookieName)
	return err == nil && cookie.Value != ""
}
