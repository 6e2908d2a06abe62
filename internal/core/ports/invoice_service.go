package ports

import (
	"context"

	"github.com/arquifreelas/marketplace-api/internal/core/domain"
)

// CreateInvoiceInput carries the data for an admin-issued invoice.
type CreateInvoiceInput struct {
	UserID      string
	ProjectID   string
	Description string
	Amount      float64
	DueDate     string
}

// MarkPaidResult is returned after marking an invoice paid. The settlement
// is a two-step write (invoice update, then transaction insert) with no
// rollback of the first step if the second fails.
type MarkPaidResult struct {
	Invoice     *domain.Invoice
	Transaction *domain.Transaction
}

// InvoiceService defines use-case operations for invoices.
type InvoiceService interface {
	Create(ctx context.Context, input CreateInvoiceInput) (*domain.Invoice, error)
	Get(ctx context.Context, id string) (*domain.Invoice, error)
	List(ctx context.Context) ([]*domain.Invoice, error)
	// MarkPaid flips the invoice to paid and records a manual transaction.
	// markedBy identifies the admin performing the action.
	MarkPaid(ctx context.Context, id, markedBy string) (*MarkPaidResult, error)
}

// Overview is the admin dashboard aggregate.
type Overview struct {
	TotalUsers      int64              `json:"totalUsers"`
	TotalProjects   int64              `json:"totalProjects"`
	TotalInvoices   int                `json:"totalInvoices"`
	TotalInvoiced   float64            `json:"totalInvoiced"`
	TotalPaid       float64            `json:"totalPaid"`
	AdminCommission float64            `json:"adminCommission"`
	PayoutsDue      float64            `json:"payoutsDue"`
	TopUsers        []UserInvoiceTotal `json:"topUsers"`
}

// OverviewService computes the admin dashboard aggregate.
type OverviewService interface {
	Overview(ctx context.Context) (*Overview, error)
}
