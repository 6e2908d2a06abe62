package ports

import "context"

// CheckoutInput carries the data for creating a hosted checkout session.
type CheckoutInput struct {
	PriceID string
	UserID  string
	// Origin is the caller's site origin, used to build success/cancel URLs.
	Origin string
}

// BillingService drives checkout creation and webhook event application.
type BillingService interface {
	// CreateCheckout returns the hosted checkout redirect URL.
	CreateCheckout(ctx context.Context, input CheckoutInput) (string, error)
	// ApplyEvent mutates profile subscription state for a verified event.
	// Unrecognized event types are acknowledged without mutation.
	ApplyEvent(ctx context.Context, event *BillingEvent) error
}
