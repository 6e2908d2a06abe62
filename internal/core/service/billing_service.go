package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/arquifreelas/marketplace-api/internal/core/domain"
	"github.com/arquifreelas/marketplace-api/internal/core/ports"
)

// EventDedup abstracts the webhook replay store (Redis). The payment
// processor retries deliveries on its own schedule, so replayed event IDs
// must be recognized and skipped.
type EventDedup interface {
	IsDuplicate(ctx context.Context, eventID string) (bool, error)
	Mark(ctx context.Context, eventID string) error
}

type billingService struct {
	profiles ports.ProfileRepository
	provider ports.BillingProvider
	dedup    EventDedup
	log      zerolog.Logger
}

// NewBillingService returns a BillingService implementation.
func NewBillingService(
	profiles ports.ProfileRepository,
	provider ports.BillingProvider,
	dedup EventDedup,
	log zerolog.Logger,
) ports.BillingService {
	return &billingService{profiles: profiles, provider: provider, dedup: dedup, log: log}
}

// CreateCheckout looks up the caller's profile, ensures a billing customer
// exists on the processor, persists its reference, and creates a
// subscription-mode checkout session.
func (s *billingService) CreateCheckout(ctx context.Context, input ports.CheckoutInput) (string, error) {
	if input.PriceID == "" || input.UserID == "" {
		return "", domain.ErrMissingFields
	}

	profile, err := s.profiles.FindByID(ctx, input.UserID)
	if err != nil {
		return "", err
	}

	customerID := profile.StripeCustomerID
	if customerID == "" {
		customerID, err = s.provider.EnsureCustomer(ctx, profile.Email, profile.FullName, profile.ID)
		if err != nil {
			return "", fmt.Errorf("create billing customer: %w", err)
		}
		if err := s.profiles.SetStripeCustomer(ctx, profile.ID, customerID); err != nil {
			return "", fmt.Errorf("persist customer id: %w", err)
		}
	}

	url, err := s.provider.CreateCheckoutSession(ctx, customerID, input.PriceID, input.UserID)
	if err != nil {
		return "", fmt.Errorf("create checkout session: %w", err)
	}

	s.log.Info().Str("user_id", input.UserID).Str("customer_id", customerID).Str("price_id", input.PriceID).Msg("checkout session created")
	return url, nil
}

// ApplyEvent mutates subscription state for a verified webhook event.
func (s *billingService) ApplyEvent(ctx context.Context, event *ports.BillingEvent) error {
	// 1. Replay check — the processor re-delivers until acknowledged.
	isDup, err := s.dedup.IsDuplicate(ctx, event.ID)
	if err != nil {
		s.log.Warn().Err(err).Str("event_id", event.ID).Msg("dedup check failed, processing anyway")
	} else if isDup {
		s.log.Debug().Str("event_id", event.ID).Str("type", event.Type).Msg("duplicate webhook event skipped")
		return nil
	}

	switch event.Type {
	case ports.BillingCheckoutCompleted:
		if event.UserID == "" || event.SubscriptionID == "" {
			s.log.Warn().Str("event_id", event.ID).Msg("checkout completed without user linkage, ignoring")
			break
		}
		if err := s.profiles.SetSubscription(ctx, event.UserID, event.SubscriptionID, domain.SubscriptionActive); err != nil {
			return fmt.Errorf("activate subscription: %w", err)
		}

	case ports.BillingSubscriptionUpdated:
		profile, err := s.profiles.FindByStripeCustomerID(ctx, event.CustomerID)
		if err != nil {
			return fmt.Errorf("lookup by customer id: %w", err)
		}
		if err := s.profiles.SetSubscription(ctx, profile.ID, profile.SubscriptionID, event.SubscriptionStatus); err != nil {
			return fmt.Errorf("update subscription status: %w", err)
		}

	case ports.BillingSubscriptionDeleted:
		profile, err := s.profiles.FindByStripeCustomerID(ctx, event.CustomerID)
		if err != nil {
			return fmt.Errorf("lookup by customer id: %w", err)
		}
		if err := s.profiles.SetSubscription(ctx, profile.ID, "", domain.SubscriptionCanceled); err != nil {
			return fmt.Errorf("cancel subscription: %w", err)
		}

	case ports.BillingPaymentSucceeded:
		s.log.Info().Str("event_id", event.ID).Msg("payment succeeded")

	case ports.BillingPaymentFailed:
		s.log.Warn().Str("event_id", event.ID).Msg("payment failed")

	default:
		s.log.Info().Str("event_id", event.ID).Str("type", event.Type).Msg("unhandled webhook event type")
	}

	if markErr := s.dedup.Mark(ctx, event.ID); markErr != nil {
		s.log.Warn().Err(markErr).Str("event_id", event.ID).Msg("failed to set dedup key")
	}

	s.log.Info().Str("event_id", event.ID).Str("type", event.Type).Msg("webhook event processed")
	return nil
}
