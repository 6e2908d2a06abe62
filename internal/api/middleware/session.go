package middleware

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/arquifreelas/marketplace-api/internal/core/ports"
)

// SessionCookie is the name of the session cookie.
const SessionCookie = "mk_session"

// Context keys set by the session middleware.
const (
	CtxProfileID = "profile_id"
	CtxEmail     = "email"
	CtxRole      = "role"
)

// Route classes for the redirect gate. API paths are never redirected;
// handlers answer 401/403 JSON instead.
var protectedPrefixes = []string{"/dashboard", "/projects/new", "/admin"}
var authOnlyPaths = map[string]struct{}{"/login": {}, "/signup": {}}

// SessionConfig carries the session middleware settings.
type SessionConfig struct {
	Secret string
	TTL    time.Duration
}

// Session runs on every request. It validates the session cookie, injects
// the claims into context, re-issues the cookie with extended expiry (the
// refresh side effect that keeps sessions alive across navigations), and
// enforces the redirect gate:
//
//	no session + protected page  → 302 /login?redirect=<original path>
//	session     + auth-only page → 302 /dashboard
//	anything else                → pass through
func Session(cfg SessionConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := sessionFromRequest(c, cfg.Secret)
			if ok {
				c.Set(CtxProfileID, claims.ProfileID)
				c.Set(CtxEmail, claims.Email)
				c.Set(CtxRole, claims.Role)
				refreshCookie(c, claims, cfg)
			}

			path := c.Request().URL.Path
			if !ok && isProtectedPath(path) {
				q := url.Values{"redirect": {path}}
				return c.Redirect(http.StatusFound, "/login?"+q.Encode())
			}
			if ok {
				if _, authOnly := authOnlyPaths[path]; authOnly {
					return c.Redirect(http.StatusFound, "/dashboard")
				}
			}

			return next(c)
		}
	}
}

func isProtectedPath(path string) bool {
	for _, prefix := range protectedPrefixes {
		if path == prefix || strings.HasPrefix(path, prefix+"/") {
			return true
		}
	}
	return false
}

// sessionFromRequest parses and validates the session cookie.
func sessionFromRequest(c echo.Context, secret string) (ports.SessionClaims, bool) {
	cookie, err := c.Cookie(SessionCookie)
	if err != nil || cookie.Value == "" {
		return ports.SessionClaims{}, false
	}
	return ParseSessionToken(cookie.Value, secret)
}

// ParseSessionToken validates an HS256 session token and extracts its claims.
func ParseSessionToken(token, secret string) (ports.SessionClaims, bool) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil || !tkn.Valid {
		return ports.SessionClaims{}, false
	}

	sub, _ := claims["sub"].(string)
	if sub == "" {
		return ports.SessionClaims{}, false
	}
	email, _ := claims["email"].(string)
	role, _ := claims["role"].(string)
	return ports.SessionClaims{ProfileID: sub, Email: email, Role: role}, true
}

// refreshCookie re-signs the session with a fresh expiry so cookies
// propagated to the client stay valid across navigations.
func refreshCookie(c echo.Context, claims ports.SessionClaims, cfg SessionConfig) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   claims.ProfileID,
		"email": claims.Email,
		"role":  claims.Role,
		"exp":   time.Now().Add(cfg.TTL).Unix(),
	})
	signed, err := token.SignedString([]byte(cfg.Secret))
	if err != nil {
		return
	}
	SetSessionCookie(c, signed, cfg.TTL)
}

// SetSessionCookie writes the session cookie onto the response.
func SetSessionCookie(c echo.Context, token string, ttl time.Duration) {
	c.SetCookie(&http.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(ttl),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearSessionCookie invalidates the session cookie on the client.
func ClearSessionCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
