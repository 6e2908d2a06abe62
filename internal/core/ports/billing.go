package ports

import (
	"context"
	"errors"
)

var ErrInvalidSignature = errors.New("invalid webhook signature")

// Billing event types, normalized from the payment processor's notation.
const (
	BillingCheckoutCompleted   = "checkout.session.completed"
	BillingSubscriptionUpdated = "customer.subscription.updated"
	BillingSubscriptionDeleted = "customer.subscription.deleted"
	BillingPaymentSucceeded    = "invoice.payment_succeeded"
	BillingPaymentFailed       = "invoice.payment_failed"
)

// BillingEvent is a verified webhook notification from the payment processor.
type BillingEvent struct {
	ID   string
	Type string
	// UserID is the application user id embedded in checkout metadata.
	UserID string
	// CustomerID is the processor's billing-customer reference.
	CustomerID string
	// SubscriptionID is the processor's subscription reference, when present.
	SubscriptionID string
	// SubscriptionStatus is the processor-reported status on subscription events.
	SubscriptionStatus string
}

// BillingProvider wraps the third-party payment processor.
type BillingProvider interface {
	// EnsureCustomer returns the billing-customer id for the user, creating
	// one on the processor when none exists yet.
	EnsureCustomer(ctx context.Context, email, name, userID string) (string, error)
	// CreateCheckoutSession creates a subscription-mode checkout session and
	// returns its hosted redirect URL.
	CreateCheckoutSession(ctx context.Context, customerID, priceID, userID string) (string, error)
	// VerifyWebhook checks the signature over the raw payload and decodes the
	// event. Returns ErrInvalidSignature when verification fails.
	VerifyWebhook(payload []byte, signature string) (*BillingEvent, error)
}
