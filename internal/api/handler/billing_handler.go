package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/arquifreelas/marketplace-api/internal/api/metrics"
	"github.com/arquifreelas/marketplace-api/internal/core/ports"
)

// maxWebhookBytes bounds the raw payload read from the processor.
const maxWebhookBytes = 1 << 20

// BillingHandler exposes checkout creation and the payment webhook.
type BillingHandler struct {
	billingService ports.BillingService
	billing        ports.BillingProvider
	log            zerolog.Logger
}

func NewBillingHandler(billingService ports.BillingService, billing ports.BillingProvider, log zerolog.Logger) *BillingHandler {
	return &BillingHandler{billingService: billingService, billing: billing, log: log}
}

type createCheckoutRequest struct {
	PriceID string `json:"priceId" validate:"required"`
	UserID  string `json:"userId"`
}

type createCheckoutResponse struct {
	URL string `json:"url"`
}

// CreateCheckout starts a hosted subscription checkout for the session user.
//
// @Summary      Create a checkout session
// @Tags         billing
// @Accept       json
// @Produce      json
// @Param        body  body      createCheckoutRequest  true  "Checkout details"
// @Success      200   {object}  createCheckoutResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /api/stripe/create-checkout [post]
func (h *BillingHandler) CreateCheckout(c echo.Context) error {
	sessionID, err := ctxProfileID(c)
	if err != nil {
		return err
	}

	var req createCheckoutRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	// The body may carry a userId, but the session always wins.
	userID := sessionID
	if userID == "" {
		userID = req.UserID
	}

	url, err := h.billingService.CreateCheckout(c.Request().Context(), ports.CheckoutInput{
		PriceID: req.PriceID,
		UserID:  userID,
		Origin:  c.Request().Header.Get("Origin"),
	})
	if err != nil {
		return err
	}

	metrics.CheckoutSessionsTotal.Inc()
	return c.JSON(http.StatusOK, createCheckoutResponse{URL: url})
}

type webhookAck struct {
	Received bool `json:"received"`
}

// Webhook receives payment processor notifications. The signature is
// verified over the raw body before anything is decoded; processing
// failures return a non-2xx status so the processor retries delivery.
//
// @Summary      Payment webhook
// @Tags         billing
// @Accept       json
// @Produce      json
// @Success      200  {object}  webhookAck
// @Failure      400  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /api/stripe/webhook [post]
func (h *BillingHandler) Webhook(c echo.Context) error {
	payload, err := io.ReadAll(io.LimitReader(c.Request().Body, maxWebhookBytes))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "unreadable payload")
	}

	event, err := h.billing.VerifyWebhook(payload, c.Request().Header.Get("Stripe-Signature"))
	if err != nil {
		if errors.Is(err, ports.ErrInvalidSignature) {
			metrics.WebhookEventsTotal.WithLabelValues("unknown", "invalid_signature").Inc()
			return echo.NewHTTPError(http.StatusBadRequest, "invalid signature")
		}
		return err
	}

	if err := h.billingService.ApplyEvent(c.Request().Context(), event); err != nil {
		metrics.WebhookEventsTotal.WithLabelValues(event.Type, "error").Inc()
		h.log.Error().Err(err).Str("event_id", event.ID).Str("type", event.Type).Msg("webhook processing failed")
		return echo.NewHTTPError(http.StatusInternalServerError, "event processing failed")
	}

	metrics.WebhookEventsTotal.WithLabelValues(event.Type, "ok").Inc()
	return c.JSON(http.StatusOK, webhookAck{Received: true})
}
