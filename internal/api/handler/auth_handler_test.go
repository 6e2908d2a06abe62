package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/arquifreelas/marketplace-api/internal/api/middleware"
	"github.com/arquifreelas/marketplace-api/internal/core/domain"
	"github.com/arquifreelas/marketplace-api/internal/core/ports"
)

type stubAuthService struct {
	token       string
	profile     *domain.Profile
	exchangeErr error
}

func (s *stubAuthService) Register(_ context.Context, email, password, fullName string) (string, *domain.Profile, error) {
	return s.token, s.profile, nil
}

func (s *stubAuthService) Login(_ context.Context, email, password string) (string, *domain.Profile, error) {
	return s.token, s.profile, nil
}

func (s *stubAuthService) ExchangeCode(_ context.Context, code string) (string, *domain.Profile, error) {
	if s.exchangeErr != nil {
		return "", nil, s.exchangeErr
	}
	return s.token, s.profile, nil
}

func (s *stubAuthService) Refresh(claims ports.SessionClaims) (string, error) {
	return s.token, nil
}

func (s *stubAuthService) ProfileByID(_ context.Context, id string) (*domain.Profile, error) {
	if s.profile != nil && s.profile.ID == id {
		return s.profile, nil
	}
	return nil, domain.ErrProfileNotFound
}

type stubIDP struct{}

func (stubIDP) AuthURL(state string) string {
	return "https://idp.example/authorize?state=" + state
}

func (stubIDP) Exchange(context.Context, string) (*ports.IdentityUser, error) {
	return nil, ports.ErrInvalidCode
}

func sessionCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == middleware.SessionCookie {
			return ck
		}
	}
	return nil
}

func TestAuthHandler_Register(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()
	svc := &stubAuthService{token: "tok", profile: &domain.Profile{ID: "p1", Email: "a@example.com"}}
	h := NewAuthHandler(svc, stubIDP{}, time.Hour)

	body := `{"email":"a@example.com","password":"pass123","full_name":"Alice"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Register(c); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	ck := sessionCookie(rec)
	if ck == nil || ck.Value != "tok" {
		t.Fatalf("session cookie not set: %+v", ck)
	}
}

func TestAuthHandler_Register_InvalidBody(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()
	h := NewAuthHandler(&stubAuthService{}, stubIDP{}, time.Hour)

	body := `{"email":"not-an-email","password":"x"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.Register(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func callbackRecorder(t *testing.T, svc *stubAuthService, target string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	h := NewAuthHandler(svc, stubIDP{}, time.Hour)

	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Callback(c); err != nil {
		t.Fatalf("Callback returned error: %v", err)
	}
	return rec
}

func TestAuthHandler_Callback_Success(t *testing.T) {
	svc := &stubAuthService{token: "tok", profile: &domain.Profile{ID: "p1"}}
	rec := callbackRecorder(t, svc, "/auth/callback?code=good")

	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", rec.Code)
	}
	if rec.Header().Get(echo.HeaderLocation) != "/dashboard" {
		t.Fatalf("expected /dashboard, got %s", rec.Header().Get(echo.HeaderLocation))
	}
	if ck := sessionCookie(rec); ck == nil || ck.Value != "tok" {
		t.Fatalf("session cookie not set")
	}
}

func TestAuthHandler_Callback_Failures(t *testing.T) {
	cases := []struct {
		name   string
		target string
		svc    *stubAuthService
		want   string
	}{
		{"missing code", "/auth/callback", &stubAuthService{}, "/login?error=no_code"},
		{"bad code", "/auth/callback?code=bad", &stubAuthService{exchangeErr: ports.ErrInvalidCode}, "/login?error=exchange_failed"},
		{"provider down", "/auth/callback?code=x", &stubAuthService{exchangeErr: errors.New("boom")}, "/login?error=exception"},
		{"no session issued", "/auth/callback?code=x", &stubAuthService{token: ""}, "/login?error=no_session"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := callbackRecorder(t, tc.svc, tc.target)
			if rec.Code != http.StatusFound {
				t.Fatalf("expected 302, got %d", rec.Code)
			}
			if got := rec.Header().Get(echo.HeaderLocation); got != tc.want {
				t.Fatalf("expected %s, got %s", tc.want, got)
			}
		})
	}
}

func TestAuthHandler_StartOAuth(t *testing.T) {
	e := echo.New()
	h := NewAuthHandler(&stubAuthService{}, stubIDP{}, time.Hour)

	req := httptest.NewRequest(http.MethodGet, "/auth/oauth", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.StartOAuth(c); err != nil {
		t.Fatalf("StartOAuth returned error: %v", err)
	}
	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", rec.Code)
	}
	loc := rec.Header().Get(echo.HeaderLocation)
	if !strings.Contains(loc, "state=/dashboard") {
		t.Fatalf("default state missing: %s", loc)
	}
}

func TestAuthHandler_Logout_ClearsCookie(t *testing.T) {
	e := echo.New()
	h := NewAuthHandler(&stubAuthService{}, stubIDP{}, time.Hour)

	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Logout(c); err != nil {
		t.Fatalf("Logout returned error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	ck := sessionCookie(rec)
	if ck == nil || ck.MaxAge != -1 {
		t.Fatalf("cookie not invalidated: %+v", ck)
	}
}

func TestAuthHandler_Me(t *testing.T) {
	e := echo.New()
	svc := &stubAuthService{profile: &domain.Profile{ID: "p1", Email: "a@example.com"}}
	h := NewAuthHandler(svc, stubIDP{}, time.Hour)

	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(middleware.CtxProfileID, "p1")

	if err := h.Me(c); err != nil {
		t.Fatalf("Me returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "a@example.com") {
		t.Fatalf("profile not in response: %s", rec.Body.String())
	}
}

func TestAuthHandler_Me_NoSession(t *testing.T) {
	e := echo.New()
	h := NewAuthHandler(&stubAuthService{}, stubIDP{}, time.Hour)

	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.Me(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}
