package handler

import (
	"crypto/subtle"
	"net/http"
	"os"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/arquifreelas/marketplace-api/internal/core/domain"
	"github.com/arquifreelas/marketplace-api/internal/core/ports"
)

const seedTokenHeader = "x-seed-token"

// AdminHandler exposes the admin dashboard aggregate plus a pair of
// operational endpoints: role seeding and env inspection.
type AdminHandler struct {
	overviewService ports.OverviewService
	profiles        ports.ProfileRepository
	enableSeed      bool
	seedToken       string
	allowDebug      bool
	log             zerolog.Logger
}

func NewAdminHandler(
	overviewService ports.OverviewService,
	profiles ports.ProfileRepository,
	enableSeed bool,
	seedToken string,
	allowDebug bool,
	log zerolog.Logger,
) *AdminHandler {
	return &AdminHandler{
		overviewService: overviewService,
		profiles:        profiles,
		enableSeed:      enableSeed,
		seedToken:       seedToken,
		allowDebug:      allowDebug,
		log:             log,
	}
}

// Overview returns the admin dashboard aggregate: platform counts, invoiced
// and settled totals, commission and payout figures, and top payers.
//
// @Summary      Admin dashboard overview
// @Tags         admin
// @Produce      json
// @Success      200  {object}  ports.Overview
// @Failure      403  {object}  errorResponse
// @Router       /api/admin/overview [get]
func (h *AdminHandler) Overview(c echo.Context) error {
	overview, err := h.overviewService.Overview(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, overview)
}

type seedAdminsRequest struct {
	Emails []string `json:"emails" validate:"required,min=1,dive,email"`
}

type seedAdminsResponse struct {
	Updated int64 `json:"updated"`
}

// SeedAdmins promotes the given emails to the admin role. The endpoint is
// inert unless seeding is enabled and the caller presents the seed token.
//
// @Summary      Seed admin roles
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        x-seed-token  header    string            true  "Seed token"
// @Param        body          body      seedAdminsRequest  true  "Admin emails"
// @Success      200           {object}  seedAdminsResponse
// @Failure      403           {object}  errorResponse
// @Router       /api/admin/seed-admins [post]
func (h *AdminHandler) SeedAdmins(c echo.Context) error {
	if !h.enableSeed || h.seedToken == "" {
		return echo.NewHTTPError(http.StatusForbidden, "seeding disabled")
	}

	token := c.Request().Header.Get(seedTokenHeader)
	if subtle.ConstantTimeCompare([]byte(token), []byte(h.seedToken)) != 1 {
		return echo.NewHTTPError(http.StatusForbidden, "invalid seed token")
	}

	var req seedAdminsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	updated, err := h.profiles.SetRoleByEmails(c.Request().Context(), req.Emails, domain.RoleAdmin)
	if err != nil {
		return err
	}

	h.log.Info().Int64("updated", updated).Msg("admin roles seeded")
	return c.JSON(http.StatusOK, seedAdminsResponse{Updated: updated})
}

// DebugEnv lists environment variable names with masked values, for
// diagnosing deployment configuration. Disabled unless debug output is
// explicitly allowed.
//
// @Summary      Inspect environment (masked)
// @Tags         admin
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      403  {object}  errorResponse
// @Router       /api/debug/env [get]
func (h *AdminHandler) DebugEnv(c echo.Context) error {
	if !h.allowDebug {
		return echo.NewHTTPError(http.StatusForbidden, "debug output disabled")
	}

	masked := make(map[string]string)
	for _, kv := range os.Environ() {
		name, value, ok := strings.Cut(kv, "=")
		if !ok {
			continue
		}
		masked[name] = maskValue(value)
	}
	return c.JSON(http.StatusOK, masked)
}

// maskValue keeps only a short prefix so values can be recognized without
// being disclosed.
func maskValue(v string) string {
	if v == "" {
		return "(empty)"
	}
	if len(v) <= 4 {
		return "****"
	}
	return v[:4] + strings.Repeat("*", len(v)-4)
}
