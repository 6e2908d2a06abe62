package ports

import (
	"context"

	"github.com/arquifreelas/marketplace-api/internal/core/domain"
)

// ProfileRepository defines persistence operations for profiles.
type ProfileRepository interface {
	FindByID(ctx context.Context, id string) (*domain.Profile, error)
	FindByEmail(ctx context.Context, email string) (*domain.Profile, error)
	FindByStripeCustomerID(ctx context.Context, customerID string) (*domain.Profile, error)
	Create(ctx context.Context, p *domain.Profile) (*domain.Profile, error)
	// Upsert creates or refreshes the profile keyed by its identity id.
	// Role, billing fields and created_at are preserved on existing rows.
	Upsert(ctx context.Context, p *domain.Profile) (*domain.Profile, error)
	Count(ctx context.Context) (int64, error)
	// SetStripeCustomer persists the billing-customer reference on a profile.
	SetStripeCustomer(ctx context.Context, id, customerID string) error
	// SetSubscription updates subscription id/status. An empty subscriptionID
	// clears the stored id.
	SetSubscription(ctx context.Context, id, subscriptionID, status string) error
	// SetRoleByEmails bulk-assigns a role; returns how many rows matched.
	SetRoleByEmails(ctx context.Context, emails []string, role string) (int64, error)
}
