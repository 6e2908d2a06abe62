package middleware

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/arquifreelas/marketplace-api/internal/core/domain"
)

// Decision is the result of a capability check. Every privileged handler
// consumes the same tagged result instead of comparing role strings inline.
type Decision int

const (
	Authorized Decision = iota
	Unauthenticated
	Forbidden
)

// ProfileLookup resolves a session subject to its profile row.
type ProfileLookup interface {
	ProfileByID(ctx context.Context, id string) (*domain.Profile, error)
}

// CheckAdmin is the single capability-check function for admin operations.
// The role is read from the profile row, not from the session token, so a
// role change takes effect without re-login.
func CheckAdmin(ctx context.Context, lookup ProfileLookup, profileID string) Decision {
	if profileID == "" {
		return Unauthenticated
	}
	profile, err := lookup.ProfileByID(ctx, profileID)
	if err != nil {
		return Unauthenticated
	}
	if !profile.IsAdmin() {
		return Forbidden
	}
	return Authorized
}

// RequireSession rejects requests without a validated session.
func RequireSession() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id, _ := c.Get(CtxProfileID).(string)
			if id == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
			}
			return next(c)
		}
	}
}

// RequireAdmin enforces the admin capability check before the handler runs.
func RequireAdmin(lookup ProfileLookup) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id, _ := c.Get(CtxProfileID).(string)
			switch CheckAdmin(c.Request().Context(), lookup, id) {
			case Authorized:
				return next(c)
			case Forbidden:
				return echo.NewHTTPError(http.StatusForbidden, "forbidden")
			default:
				return echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
			}
		}
	}
}
