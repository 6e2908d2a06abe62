package ports

import (
	"context"
	"time"

	"github.com/arquifreelas/marketplace-api/internal/core/domain"
)

// UserInvoiceTotal is one row of the per-user paid aggregate.
type UserInvoiceTotal struct {
	UserID string  `json:"user_id"`
	Total  float64 `json:"total"`
}

// InvoiceRepository defines persistence operations for invoices and their
// settlement transactions.
type InvoiceRepository interface {
	Create(ctx context.Context, inv *domain.Invoice) (*domain.Invoice, error)
	FindByID(ctx context.Context, id string) (*domain.Invoice, error)
	// List returns invoices newest-first, capped at limit.
	List(ctx context.Context, limit int64) ([]*domain.Invoice, error)
	// All returns every invoice; used by the admin overview aggregation.
	All(ctx context.Context) ([]*domain.Invoice, error)
	// MarkPaid sets status=paid and paid_at on the invoice and returns the
	// updated row. It does NOT guard against the invoice already being paid.
	MarkPaid(ctx context.Context, id string, paidAt time.Time) (*domain.Invoice, error)
	InsertTransaction(ctx context.Context, tx *domain.Transaction) (*domain.Transaction, error)
	// TotalsByUser returns per-user paid totals, highest first, capped at
	// limit. Implementations may not support it; callers treat an error as
	// a soft failure and fall back to an empty list.
	TotalsByUser(ctx context.Context, limit int64) ([]UserInvoiceTotal, error)
}
