package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/arquifreelas/marketplace-api/internal/api/metrics"
	"github.com/arquifreelas/marketplace-api/internal/core/ports"
)

const qrImageSize = 300

// InvoiceHandler exposes invoice endpoints: the admin issuing/settlement
// surface plus the public invoice view and its QR code.
type InvoiceHandler struct {
	invoiceService ports.InvoiceService
	siteURL        string
}

func NewInvoiceHandler(invoiceService ports.InvoiceService, siteURL string) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: invoiceService, siteURL: siteURL}
}

// Create issues a new invoice against a user.
//
// @Summary      Create an invoice
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        body  body      createInvoiceRequest  true  "Invoice details"
// @Success      201   {object}  invoiceResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /api/admin/invoices [post]
func (h *InvoiceHandler) Create(c echo.Context) error {
	var req createInvoiceRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	invoice, err := h.invoiceService.Create(c.Request().Context(), req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, invoiceResponse{Invoice: invoice})
}

// List returns the most recent invoices, newest first.
//
// @Summary      List invoices
// @Tags         invoices
// @Produce      json
// @Success      200  {object}  invoiceListResponse
// @Failure      403  {object}  errorResponse
// @Router       /api/admin/invoices/list [get]
func (h *InvoiceHandler) List(c echo.Context) error {
	invoices, err := h.invoiceService.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, invoiceListResponse{Invoices: invoices})
}

// MarkPaid settles an invoice manually and records the transaction.
//
// @Summary      Mark an invoice paid
// @Tags         invoices
// @Produce      json
// @Param        id   path      string  true  "Invoice id"
// @Success      200  {object}  markPaidResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/admin/invoices/{id}/pay [post]
func (h *InvoiceHandler) MarkPaid(c echo.Context) error {
	adminID, err := ctxProfileID(c)
	if err != nil {
		return err
	}

	result, err := h.invoiceService.MarkPaid(c.Request().Context(), c.Param("id"), adminID)
	if err != nil {
		return err
	}

	metrics.InvoicesPaidTotal.Inc()
	return c.JSON(http.StatusOK, markPaidResponse{
		Invoice:     result.Invoice,
		Transaction: result.Transaction,
	})
}

// Get returns a single invoice by id.
//
// @Summary      Get an invoice
// @Tags         invoices
// @Produce      json
// @Param        id   path      string  true  "Invoice id"
// @Success      200  {object}  invoiceResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/invoices/{id} [get]
func (h *InvoiceHandler) Get(c echo.Context) error {
	invoice, err := h.invoiceService.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, invoiceResponse{Invoice: invoice})
}

// QR renders a PNG QR code pointing at the public invoice page. The id is
// not checked against the store, so the image always renders.
//
// @Summary      Invoice QR code
// @Tags         invoices
// @Produce      png
// @Param        id   path  string  true  "Invoice id"
// @Success      200
// @Failure      500  {object}  errorResponse
// @Router       /api/invoices/{id}/qr [get]
func (h *InvoiceHandler) QR(c echo.Context) error {
	target := h.siteURL + "/invoices/" + c.Param("id")

	png, err := qrcode.Encode(target, qrcode.Medium, qrImageSize)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "qr generation failed")
	}

	c.Response().Header().Set("Cache-Control", "public, max-age=3600")
	return c.Blob(http.StatusOK, "image/png", png)
}
