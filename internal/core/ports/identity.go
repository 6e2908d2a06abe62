package ports

import (
	"context"
	"errors"
)

var ErrInvalidCode = errors.New("invalid authorization code")

// IdentityUser is the user record returned by the identity provider after a
// successful code exchange.
type IdentityUser struct {
	ID        string
	Email     string
	FullName  string
	AvatarURL string
	Provider  string
}

// IdentityProvider wraps the third-party OAuth identity service.
type IdentityProvider interface {
	// AuthURL builds the provider authorization URL for the given CSRF state.
	AuthURL(state string) string
	// Exchange trades an authorization code for the provider's user record.
	Exchange(ctx context.Context, code string) (*IdentityUser, error)
}
