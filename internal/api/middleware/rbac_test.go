package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/arquifreelas/marketplace-api/internal/core/domain"
)

type stubProfileLookup struct {
	profiles map[string]*domain.Profile
}

func (s *stubProfileLookup) ProfileByID(_ context.Context, id string) (*domain.Profile, error) {
	if p, ok := s.profiles[id]; ok {
		return p, nil
	}
	return nil, domain.ErrProfileNotFound
}

func TestCheckAdmin(t *testing.T) {
	lookup := &stubProfileLookup{profiles: map[string]*domain.Profile{
		"admin_1": {ID: "admin_1", Role: domain.RoleAdmin},
		"user_1":  {ID: "user_1", Role: domain.RoleUser},
	}}

	cases := []struct {
		name      string
		profileID string
		want      Decision
	}{
		{"admin", "admin_1", Authorized},
		{"regular user", "user_1", Forbidden},
		{"unknown profile", "ghost", Unauthenticated},
		{"empty id", "", Unauthenticated},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := CheckAdmin(context.Background(), lookup, tc.profileID); got != tc.want {
				t.Fatalf("CheckAdmin(%q) = %v, want %v", tc.profileID, got, tc.want)
			}
		})
	}
}

func runRequireAdmin(t *testing.T, lookup ProfileLookup, profileID string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/admin/overview", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if profileID != "" {
		c.Set(CtxProfileID, profileID)
	}

	mw := RequireAdmin(lookup)
	handler := mw(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec
}

func TestRequireAdmin(t *testing.T) {
	lookup := &stubProfileLookup{profiles: map[string]*domain.Profile{
		"admin_1": {ID: "admin_1", Role: domain.RoleAdmin},
		"user_1":  {ID: "user_1", Role: domain.RoleUser},
	}}

	if rec := runRequireAdmin(t, lookup, "admin_1"); rec.Code != http.StatusOK {
		t.Fatalf("admin expected 200, got %d", rec.Code)
	}
	if rec := runRequireAdmin(t, lookup, "user_1"); rec.Code != http.StatusForbidden {
		t.Fatalf("user expected 403, got %d", rec.Code)
	}
	if rec := runRequireAdmin(t, lookup, ""); rec.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous expected 401, got %d", rec.Code)
	}
}

// Role comes from the profile row, not the token, so a demotion takes
// effect on the next request without re-login.
func TestRequireAdmin_RoleChange(t *testing.T) {
	lookup := &stubProfileLookup{profiles: map[string]*domain.Profile{
		"p1": {ID: "p1", Role: domain.RoleAdmin},
	}}

	if rec := runRequireAdmin(t, lookup, "p1"); rec.Code != http.StatusOK {
		t.Fatalf("expected 200 before demotion, got %d", rec.Code)
	}

	lookup.profiles["p1"].Role = domain.RoleUser
	if rec := runRequireAdmin(t, lookup, "p1"); rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 after demotion, got %d", rec.Code)
	}
}

func TestRequireSession(t *testing.T) {
	e := echo.New()

	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := RequireSession()
	handler := mw(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous expected 401, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/me", nil)
	rec = httptest.NewRecorder()
	c = e.NewContext(req, rec)
	c.Set(CtxProfileID, "p1")
	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("authenticated expected 200, got %d", rec.Code)
	}
}
