package handler

import (
	"github.com/arquifreelas/marketplace-api/internal/core/domain"
	"github.com/arquifreelas/marketplace-api/internal/core/ports"
)

type createInvoiceRequest struct {
	UserID      string  `json:"user_id"    validate:"required"`
	ProjectID   string  `json:"project_id"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"     validate:"required,gt=0"`
	DueDate     string  `json:"due_date"`
}

func (r createInvoiceRequest) toInput() ports.CreateInvoiceInput {
	return ports.CreateInvoiceInput{
		UserID:      r.UserID,
		ProjectID:   r.ProjectID,
		Description: r.Description,
		Amount:      r.Amount,
		DueDate:     r.DueDate,
	}
}

type invoiceResponse struct {
	Invoice *domain.Invoice `json:"invoice"`
}

type invoiceListResponse struct {
	Invoices []*domain.Invoice `json:"invoices"`
}

type markPaidResponse struct {
	Invoice     *domain.Invoice     `json:"invoice"`
	Transaction *domain.Transaction `json:"transaction"`
}
