package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/signalist/signalist-api/internal/core/domain"
)

func runGuard(t *testing.T, identity domain.Identity, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(IdentityKey, identity)

	guard := RouteGuard(RouteGuardConfig{
		GuestCookie:    "signalist_guest_session",
		ExemptPrefixes: []string{"/api", "/sign-in", "/assets"},
	})
	handler := guard(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		t.Fatalf("guard chain: %v", err)
	}
	return rec
}

func TestRouteGuard_AdminPageNonAdminGoesHome(t *testing.T) {
	for _, identity := range []domain.Identity{
		domain.Authenticated(domain.SessionClaims{UserID: "u1", Role: domain.RoleUser}),
		domain.Guest(),
	} {
		req := httptest.NewRequest(http.MethodGet, "/admin/users", nil)
		rec := runGuard(t, identity, req)
		if rec.Code != http.StatusFound {
			t.Fatalf("%s: code = %d", identity.Kind, rec.Code)
		}
		if loc := rec.Header().Get("Location"); loc != "/" {
			t.Fatalf("%s: redirect to %q, want /", identity.Kind, loc)
		}
	}
}

func TestRouteGuard_AdminPageAnonymousGoesToSignIn(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil)
	rec := runGuard(t, domain.Anonymous(), req)
	if rec.Code != http.StatusFound {
		t.Fatalf("code = %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/sign-in" {
		t.Fatalf("redirect to %q", loc)
	}
}

func TestRouteGuard_AdminPassesThrough(t *testing.T) {
	admin := domain.Authenticated(domain.SessionClaims{UserID: "a1", Role: domain.RoleAdmin})
	req := httptest.NewRequest(http.MethodGet, "/admin/audit-logs", nil)
	rec := runGuard(t, admin, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("code = %d", rec.Code)
	}
}

func TestRouteGuard_AnonymousPageGoesToSignIn(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/watchlist", nil)
	rec := runGuard(t, domain.Anonymous(), req)
	if rec.Code != http.StatusFound || rec.Header().Get("Location") != "/sign-in" {
		t.Fatalf("code = %d location = %q", rec.Code, rec.Header().Get("Location"))
	}
}

func TestRouteGuard_GuestBrowsesNonAdminPages(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/watchlist", nil)
	rec := runGuard(t, domain.Guest(), req)
	if rec.Code != http.StatusOK {
		t.Fatalf("code = %d", rec.Code)
	}
}

func TestRouteGuard_ExemptPrefixSkipsGuard(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/watchlist", nil)
	rec := runGuard(t, domain.Anonymous(), req)
	if rec.Code != http.StatusOK {
		t.Fatalf("exempt path redirected: %d", rec.Code)
	}
}

func TestRouteGuard_StaleGuestCookieExpired(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/watchlist", nil)
	req.AddCookie(&http.Cookie{Name: "signalist_guest_session", Value: "guest_123"})

	identity := domain.Authenticated(domain.SessionClaims{UserID: "u1", Role: domain.RoleUser})
	rec := runGuard(t, identity, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("code = %d", rec.Code)
	}

	var expired bool
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == "signalist_guest_session" && cookie.MaxAge < 0 {
			expired = true
		}
	}
	if !expired {
		t.Fatal("guest cookie not expired on response")
	}
}
