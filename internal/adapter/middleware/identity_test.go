package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"chama-backend/internal/domain/access"

	"github.com/labstack/echo/v4"
)

func setupIdentityEcho(handler echo.HandlerFunc) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Use(Identity())
	e.GET("/whoami", handler)
	return e
}

func Test_Identity_MissingHeader(t *testing.T) {
	e := setupIdentityEcho(func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("missing X-User-Id => want 401, got %d", rec.Code)
	}
}

func Test_Identity_InvalidUserID(t *testing.T) {
	e := setupIdentityEcho(func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("X-User-Id", "not-a-hex-id")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("invalid X-User-Id => want 401, got %d", rec.Code)
	}
}

func Test_Identity_SetsCaller(t *testing.T) {
	userID := strings.Repeat("a", 32)

	var got access.Caller
	e := setupIdentityEcho(func(c echo.Context) error {
		got = CallerFrom(c)
		return c.NoContent(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("X-User-Id", userID)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("want 200, got %d", rec.Code)
	}
	if got.UserID != userID {
		t.Fatalf("caller user mismatch: got %q want %q", got.UserID, userID)
	}
	if got.Role != access.RoleMember {
		t.Fatalf("default role must be member, got %q", got.Role)
	}
}

func Test_Identity_AdminRole(t *testing.T) {
	var got access.Caller
	e := setupIdentityEcho(func(c echo.Context) error {
		got = CallerFrom(c)
		return c.NoContent(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("X-User-Id", strings.Repeat("b", 32))
	req.Header.Set("X-User-Role", "ADMIN") // case-insensitive
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if got.Role != access.RoleAdmin {
		t.Fatalf("want admin role, got %q", got.Role)
	}
}

func Test_CallerFrom_ZeroWithoutMiddleware(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	c := e.NewContext(req, httptest.NewRecorder())

	if got := CallerFrom(c); got != (access.Caller{}) {
		t.Fatalf("expected zero caller, got %+v", got)
	}
}
