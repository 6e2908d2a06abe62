package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/arquifreelas/marketplace-api/internal/api/metrics"
	"github.com/arquifreelas/marketplace-api/internal/api/middleware"
	"github.com/arquifreelas/marketplace-api/internal/core/domain"
	"github.com/arquifreelas/marketplace-api/internal/core/ports"
)

// AuthHandler handles registration, login, the OAuth flow and sign-out.
type AuthHandler struct {
	authService ports.AuthService
	idp         ports.IdentityProvider
	sessionTTL  time.Duration
}

func NewAuthHandler(authService ports.AuthService, idp ports.IdentityProvider, sessionTTL time.Duration) *AuthHandler {
	return &AuthHandler{authService: authService, idp: idp, sessionTTL: sessionTTL}
}

// StartOAuth redirects the browser to the identity provider's authorization
// page. The optional redirect query rides along as the CSRF state.
//
// @Summary      Start the OAuth flow
// @Tags         auth
// @Param        redirect  query  string  false  "Post-login destination"
// @Success      302
// @Router       /auth/oauth [get]
func (h *AuthHandler) StartOAuth(c echo.Context) error {
	state := c.QueryParam("redirect")
	if state == "" {
		state = "/dashboard"
	}
	return c.Redirect(http.StatusFound, h.idp.AuthURL(state))
}

// Register creates a local email+password account and starts a session.
//
// @Summary      Register a new account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration details"
// @Success      201   {object}  authResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	token, profile, err := h.authService.Register(c.Request().Context(), req.Email, req.Password, req.FullName)
	if err != nil {
		return err
	}

	middleware.SetSessionCookie(c, token, h.sessionTTL)
	metrics.SignInsTotal.WithLabelValues("register").Inc()
	return c.JSON(http.StatusCreated, authResponse{Profile: profile})
}

// Login authenticates a local account and starts a session.
//
// @Summary      Login with email and password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  authResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	token, profile, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	middleware.SetSessionCookie(c, token, h.sessionTTL)
	metrics.SignInsTotal.WithLabelValues("password").Inc()
	return c.JSON(http.StatusOK, authResponse{Profile: profile})
}

// Callback handles the OAuth redirect: exchanges the authorization code,
// upserts the profile and redirects to the dashboard with the session
// cookie set. All failure branches redirect back to the login page with a
// short diagnostic code.
//
// @Summary      OAuth callback
// @Tags         auth
// @Param        code  query  string  true  "Authorization code"
// @Success      302
// @Router       /auth/callback [get]
func (h *AuthHandler) Callback(c echo.Context) error {
	code := c.QueryParam("code")
	if code == "" {
		return c.Redirect(http.StatusFound, "/login?error=no_code")
	}

	token, _, err := h.authService.ExchangeCode(c.Request().Context(), code)
	if err != nil {
		reason := "exception"
		if errors.Is(err, ports.ErrInvalidCode) {
			reason = "exchange_failed"
		}
		return c.Redirect(http.StatusFound, "/login?error="+reason)
	}
	if token == "" {
		return c.Redirect(http.StatusFound, "/login?error=no_session")
	}

	middleware.SetSessionCookie(c, token, h.sessionTTL)
	metrics.SignInsTotal.WithLabelValues("oauth").Inc()
	return c.Redirect(http.StatusFound, "/dashboard")
}

// Logout invalidates the session cookie.
//
// @Summary      Sign out
// @Tags         auth
// @Success      204
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	middleware.ClearSessionCookie(c)
	return c.NoContent(http.StatusNoContent)
}

// Me returns the profile behind the current session.
//
// @Summary      Current profile
// @Tags         auth
// @Produce      json
// @Success      200  {object}  meResponse
// @Failure      401  {object}  errorResponse
// @Router       /api/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	profileID, err := ctxProfileID(c)
	if err != nil {
		return err
	}

	profile, err := h.authService.ProfileByID(c.Request().Context(), profileID)
	if err != nil {
		if errors.Is(err, domain.ErrProfileNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "profile not found")
		}
		return err
	}
	return c.JSON(http.StatusOK, meResponse{Profile: profile})
}
