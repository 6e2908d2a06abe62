package ports

import (
	"context"

	"github.com/arquifreelas/marketplace-api/internal/core/domain"
)

// AuthService implements registration, login, the OAuth code exchange, and
// session token minting. All three entry points end in the same place: a
// profile row and a signed session token.
type AuthService interface {
	Register(ctx context.Context, email, password, fullName string) (string, *domain.Profile, error)
	Login(ctx context.Context, email, password string) (string, *domain.Profile, error)
	// ExchangeCode runs the OAuth callback flow: code → provider user →
	// profile upsert → session token.
	ExchangeCode(ctx context.Context, code string) (string, *domain.Profile, error)
	// Refresh re-issues a session token with extended expiry for the same
	// subject.
	Refresh(claims SessionClaims) (string, error)
	// ProfileByID returns the profile behind a session subject.
	ProfileByID(ctx context.Context, id string) (*domain.Profile, error)
}

// SessionClaims is the decoded content of a session cookie.
type SessionClaims struct {
	ProfileID string
	Email     string
	Role      string
}
