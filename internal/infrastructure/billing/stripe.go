// Package billing wraps the Stripe API behind ports.BillingProvider.
package billing

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
	"github.com/stripe/stripe-go/v76/webhook"

	"github.com/arquifreelas/marketplace-api/internal/core/ports"
)

// Config carries the Stripe credentials.
type Config struct {
	SecretKey     string
	WebhookSecret string
	// SiteURL is the fallback origin for checkout success/cancel URLs.
	SiteURL string
}

// StripeProvider implements ports.BillingProvider with an explicit client
// instance; no package-global key is set.
type StripeProvider struct {
	api           *client.API
	webhookSecret string
	siteURL       string
}

func NewStripeProvider(cfg Config) *StripeProvider {
	api := &client.API{}
	api.Init(cfg.SecretKey, nil)
	return &StripeProvider{api: api, webhookSecret: cfg.WebhookSecret, siteURL: cfg.SiteURL}
}

// EnsureCustomer creates a Stripe customer carrying the application user id
// in its metadata and returns its id.
func (p *StripeProvider) EnsureCustomer(ctx context.Context, email, name, userID string) (string, error) {
	params := &stripe.CustomerParams{
		Email: stripe.String(email),
		Name:  stripe.String(name),
	}
	params.Context = ctx
	params.AddMetadata("user_id", userID)

	cust, err := p.api.Customers.New(params)
	if err != nil {
		return "", fmt.Errorf("stripe customer create: %w", err)
	}
	return cust.ID, nil
}

// CreateCheckoutSession creates a subscription-mode hosted checkout session
// and returns its redirect URL.
func (p *StripeProvider) CreateCheckoutSession(ctx context.Context, customerID, priceID, userID string) (string, error) {
	params := &stripe.CheckoutSessionParams{
		Customer: stripe.String(customerID),
		Mode:     stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Price:    stripe.String(priceID),
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL: stripe.String(p.siteURL + "/dashboard?success=true"),
		CancelURL:  stripe.String(p.siteURL + "/plans?canceled=true"),
	}
	params.Context = ctx
	params.AddMetadata("user_id", userID)

	sess, err := p.api.CheckoutSessions.New(params)
	if err != nil {
		return "", fmt.Errorf("stripe checkout session: %w", err)
	}
	return sess.URL, nil
}

// Raw event payloads are decoded into minimal local shapes rather than the
// SDK's full types; only the linkage fields matter here.
type checkoutSessionPayload struct {
	Customer     string            `json:"customer"`
	Subscription string            `json:"subscription"`
	Metadata     map[string]string `json:"metadata"`
}

type subscriptionPayload struct {
	ID       string `json:"id"`
	Customer string `json:"customer"`
	Status   string `json:"status"`
}

// VerifyWebhook checks the signature over the raw payload and normalizes the
// event into a ports.BillingEvent.
func (p *StripeProvider) VerifyWebhook(payload []byte, signature string) (*ports.BillingEvent, error) {
	event, err := webhook.ConstructEvent(payload, signature, p.webhookSecret)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ports.ErrInvalidSignature, err)
	}

	out := &ports.BillingEvent{ID: event.ID, Type: string(event.Type)}

	switch out.Type {
	case ports.BillingCheckoutCompleted:
		var sess checkoutSessionPayload
		if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
			return nil, fmt.Errorf("decode checkout session: %w", err)
		}
		out.UserID = sess.Metadata["user_id"]
		out.CustomerID = sess.Customer
		out.SubscriptionID = sess.Subscription

	case ports.BillingSubscriptionUpdated, ports.BillingSubscriptionDeleted:
		var sub subscriptionPayload
		if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
			return nil, fmt.Errorf("decode subscription: %w", err)
		}
		out.CustomerID = sub.Customer
		out.SubscriptionID = sub.ID
		out.SubscriptionStatus = sub.Status
	}

	return out, nil
}
