package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/signalist/signalist-api/internal/api/metrics"
	"github.com/signalist/signalist-api/internal/core/domain"
)

// RouteGuardConfig wires the page-level route guard.
type RouteGuardConfig struct {
	// SignInPath receives anonymous visitors and unauthenticated admin-page
	// hits. Defaults to /sign-in.
	SignInPath string
	// HomePath receives authenticated non-admins bounced off admin pages.
	// Defaults to /.
	HomePath string
	// AdminPrefix marks the admin-scoped page tree. Defaults to /admin.
	AdminPrefix string
	// GuestCookie is the guest marker cookie stripped once a visitor is
	// authenticated.
	GuestCookie string
	// ExemptPrefixes bypass the guard entirely (sign-in, assets, API,
	// health, metrics).
	ExemptPrefixes []string
}

func (cfg *RouteGuardConfig) applyDefaults() {
	if cfg.SignInPath == "" {
		cfg.SignInPath = "/sign-in"
	}
	if cfg.HomePath == "" {
		cfg.HomePath = "/"
	}
	if cfg.AdminPrefix == "" {
		cfg.AdminPrefix = "/admin"
	}
}

// RouteGuard gates server-rendered pages ahead of handler dispatch. It runs
// synchronously after Identity and terminates in either "continue" or a
// redirect:
//
//   - admin-scoped path without an authenticated admin: redirect, never
//     render admin content. Anonymous goes to sign-in, everyone else home.
//   - any non-exempt path as Anonymous: redirect to sign-in.
//   - authenticated with a leftover guest cookie: expire the cookie on the
//     response. Cosmetic cleanup, not a security boundary; identity
//     resolution already ignored the stale marker.
func RouteGuard(cfg RouteGuardConfig) echo.MiddlewareFunc {
	cfg.applyDefaults()

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			path := c.Request().URL.Path
			for _, prefix := range cfg.ExemptPrefixes {
				if strings.HasPrefix(path, prefix) {
					return next(c)
				}
			}

			identity := IdentityFrom(c)

			if strings.HasPrefix(path, cfg.AdminPrefix) && !identity.IsAdmin() {
				if identity.IsAuthenticated() || identity.Kind == domain.IdentityGuest {
					metrics.RouteGuardRedirectsTotal.WithLabelValues("not_admin").Inc()
					return c.Redirect(http.StatusFound, cfg.HomePath)
				}
				metrics.RouteGuardRedirectsTotal.WithLabelValues("anonymous").Inc()
				return c.Redirect(http.StatusFound, cfg.SignInPath)
			}

			if !identity.IsAuthenticated() && identity.Kind != domain.IdentityGuest {
				metrics.RouteGuardRedirectsTotal.WithLabelValues("anonymous").Inc()
				return c.Redirect(http.StatusFound, cfg.SignInPath)
			}

			if identity.IsAuthenticated() && cfg.GuestCookie != "" {
				if _, err := c.Cookie(cfg.GuestCookie); err == nil {
					c.SetCookie(&http.Cookie{
						Name:    cfg.GuestCookie,
						Value:   "",
						Path:    "/",
						Expires: time.Unix(0, 0),
						MaxAge:  -1,
					})
				}
			}

			return next(c)
		}
	}
}
