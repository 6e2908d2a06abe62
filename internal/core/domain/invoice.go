package domain

import (
	"errors"
	"time"
)

// InvoiceStatus represents the payment state of an invoice.
// The only transition is pending → paid.
type InvoiceStatus string

const (
	InvoicePending InvoiceStatus = "pending"
	InvoicePaid    InvoiceStatus = "paid"
)

var ErrInvoiceNotFound = errors.New("invoice not found")

// Invoice is a platform charge issued by an admin against a user,
// optionally tied to a project.
type Invoice struct {
	ID          string         `json:"id" bson:"_id,omitempty"`
	UserID      string         `json:"user_id" bson:"user_id"`
	ProjectID   string         `json:"project_id,omitempty" bson:"project_id,omitempty"`
	Description string         `json:"description,omitempty" bson:"description,omitempty"`
	Amount      float64        `json:"amount" bson:"amount"`
	Status      InvoiceStatus  `json:"status" bson:"status"`
	DueDate     string         `json:"due_date,omitempty" bson:"due_date,omitempty"`
	PaidAt      *time.Time     `json:"paid_at,omitempty" bson:"paid_at,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty" bson:"metadata,omitempty"`
	CreatedAt   time.Time      `json:"created_at" bson:"created_at"`
}

// Transaction records a settlement against an invoice. Transactions are
// immutable once created.
type Transaction struct {
	ID              string         `json:"id" bson:"_id,omitempty"`
	InvoiceID       string         `json:"invoice_id" bson:"invoice_id"`
	Amount          float64        `json:"amount" bson:"amount"`
	Provider        string         `json:"provider" bson:"provider"`
	Status          string         `json:"status" bson:"status"`
	ProviderPayload map[string]any `json:"provider_payload,omitempty" bson:"provider_payload,omitempty"`
	CreatedAt       time.Time      `json:"created_at" bson:"created_at"`
}
