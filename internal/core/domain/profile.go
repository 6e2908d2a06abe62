package domain

import (
	"errors"
	"time"
)

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// Subscription statuses mirrored from the payment processor.
const (
	SubscriptionNone     = "none"
	SubscriptionActive   = "active"
	SubscriptionCanceled = "canceled"
)

var ErrUnauthenticated = errors.New("not authenticated")
var ErrForbidden = errors.New("access forbidden")
var ErrProfileNotFound = errors.New("profile not found")
var ErrProfileExists = errors.New("profile already exists")
var ErrInvalidCredentials = errors.New("invalid credentials")

// Profile is the application-owned record mirroring an identity-provider
// user, augmented with role and billing fields. Its ID equals the identity
// provider's user id (1:1).
type Profile struct {
	ID                 string    `json:"id" bson:"_id"`
	Email              string    `json:"email" bson:"email"`
	FullName           string    `json:"full_name,omitempty" bson:"full_name,omitempty"`
	AvatarURL          string    `json:"avatar_url,omitempty" bson:"avatar_url,omitempty"`
	Provider           string    `json:"provider,omitempty" bson:"provider,omitempty"`
	PasswordHash       string    `json:"-" bson:"password_hash,omitempty"`
	StripeCustomerID   string    `json:"stripe_customer_id,omitempty" bson:"stripe_customer_id,omitempty"`
	SubscriptionID     string    `json:"subscription_id,omitempty" bson:"subscription_id,omitempty"`
	SubscriptionStatus string    `json:"subscription_status" bson:"subscription_status"`
	Role               string    `json:"role" bson:"role"`
	CreatedAt          time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt          time.Time `json:"updated_at" bson:"updated_at"`
}

// IsAdmin reports whether the profile may perform privileged operations.
func (p *Profile) IsAdmin() bool {
	return p != nil && p.Role == RoleAdmin
}
