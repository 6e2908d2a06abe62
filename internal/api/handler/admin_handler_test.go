package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/arquifreelas/marketplace-api/internal/core/domain"
	"github.com/arquifreelas/marketplace-api/internal/core/ports"
)

type stubOverviewService struct {
	overview *ports.Overview
}

func (s *stubOverviewService) Overview(_ context.Context) (*ports.Overview, error) {
	return s.overview, nil
}

type stubProfileRepo struct {
	roleUpdates int64
	seededRole  string
}

func (s *stubProfileRepo) FindByID(context.Context, string) (*domain.Profile, error) {
	return nil, domain.ErrProfileNotFound
}
func (s *stubProfileRepo) FindByEmail(context.Context, string) (*domain.Profile, error) {
	return nil, domain.ErrProfileNotFound
}
func (s *stubProfileRepo) FindByStripeCustomerID(context.Context, string) (*domain.Profile, error) {
	return nil, domain.ErrProfileNotFound
}
func (s *stubProfileRepo) Create(_ context.Context, p *domain.Profile) (*domain.Profile, error) {
	return p, nil
}
func (s *stubProfileRepo) Upsert(_ context.Context, p *domain.Profile) (*domain.Profile, error) {
	return p, nil
}
func (s *stubProfileRepo) Count(context.Context) (int64, error) { return 0, nil }
func (s *stubProfileRepo) SetStripeCustomer(context.Context, string, string) error {
	return nil
}
func (s *stubProfileRepo) SetSubscription(context.Context, string, string, string) error {
	return nil
}
func (s *stubProfileRepo) SetRoleByEmails(_ context.Context, emails []string, role string) (int64, error) {
	s.seededRole = role
	s.roleUpdates = int64(len(emails))
	return s.roleUpdates, nil
}

func seedRequest(t *testing.T, h *AdminHandler, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()

	req := httptest.NewRequest(http.MethodPost, "/api/admin/seed-admins", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(seedTokenHeader, token)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.SeedAdmins(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec
}

func TestAdminHandler_SeedAdmins(t *testing.T) {
	repo := &stubProfileRepo{}
	h := NewAdminHandler(&stubOverviewService{}, repo, true, "seed-secret", false, zerolog.Nop())

	rec := seedRequest(t, h, "seed-secret", `{"emails":["root@example.com","ops@example.com"]}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if repo.seededRole != domain.RoleAdmin {
		t.Fatalf("expected admin role, got %s", repo.seededRole)
	}
	if repo.roleUpdates != 2 {
		t.Fatalf("expected 2 updates, got %d", repo.roleUpdates)
	}
}

func TestAdminHandler_SeedAdmins_WrongToken(t *testing.T) {
	h := NewAdminHandler(&stubOverviewService{}, &stubProfileRepo{}, true, "seed-secret", false, zerolog.Nop())

	rec := seedRequest(t, h, "guess", `{"emails":["root@example.com"]}`)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestAdminHandler_SeedAdmins_Disabled(t *testing.T) {
	h := NewAdminHandler(&stubOverviewService{}, &stubProfileRepo{}, false, "seed-secret", false, zerolog.Nop())

	rec := seedRequest(t, h, "seed-secret", `{"emails":["root@example.com"]}`)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 when seeding disabled, got %d", rec.Code)
	}
}

func TestAdminHandler_Overview(t *testing.T) {
	h := NewAdminHandler(&stubOverviewService{overview: &ports.Overview{
		TotalUsers:      3,
		TotalPaid:       100,
		AdminCommission: 12,
		PayoutsDue:      88,
		TopUsers:        []ports.UserInvoiceTotal{},
	}}, &stubProfileRepo{}, false, "", false, zerolog.Nop())

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/admin/overview", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Overview(c); err != nil {
		t.Fatalf("Overview returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	for _, key := range []string{"totalUsers", "adminCommission", "payoutsDue", "topUsers"} {
		if !strings.Contains(rec.Body.String(), key) {
			t.Fatalf("missing %s in response: %s", key, rec.Body.String())
		}
	}
}

func TestAdminHandler_DebugEnv_Gated(t *testing.T) {
	h := NewAdminHandler(&stubOverviewService{}, &stubProfileRepo{}, false, "", false, zerolog.Nop())

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/debug/env", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.DebugEnv(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusForbidden {
		t.Fatalf("expected 403 when debug disabled, got %v", err)
	}
}

func TestMaskValue(t *testing.T) {
	cases := []struct{ in, want string }{
		{"", "(empty)"},
		{"abc", "****"},
		{"secret-value", "secr" + strings.Repeat("*", 8)},
	}
	for _, tc := range cases {
		if got := maskValue(tc.in); got != tc.want {
			t.Fatalf("maskValue(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
