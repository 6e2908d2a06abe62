package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/arquifreelas/marketplace-api/internal/core/domain"
	"github.com/arquifreelas/marketplace-api/internal/core/ports"
)

const minPasswordLen = 6

// AuthService implements registration, login and the OAuth code exchange.
// Every successful path ends with a profile row and a signed session token.
type AuthService struct {
	profiles  ports.ProfileRepository
	idp       ports.IdentityProvider
	jwtSecret string
	tokenTTL  time.Duration
}

func NewAuthService(profiles ports.ProfileRepository, idp ports.IdentityProvider, jwtSecret string, tokenTTL time.Duration) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{profiles: profiles, idp: idp, jwtSecret: jwtSecret, tokenTTL: tokenTTL}
}

// Register creates a local (email+password) account.
func (s *AuthService) Register(ctx context.Context, email, password, fullName string) (string, *domain.Profile, error) {
	if email == "" || len(password) < minPasswordLen {
		return "", nil, domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", nil, err
	}

	now := time.Now().UTC()
	profile := &domain.Profile{
		Email:              email,
		FullName:           fullName,
		Provider:           "email",
		PasswordHash:       string(hash),
		SubscriptionStatus: domain.SubscriptionNone,
		Role:               domain.RoleUser,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	created, err := s.profiles.Create(ctx, profile)
	if err != nil {
		return "", nil, err
	}

	token, err := s.generateToken(created)
	if err != nil {
		return "", nil, err
	}
	return token, created, nil
}

// Login authenticates a local account by email and password.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.Profile, error) {
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	profile, err := s.profiles.FindByEmail(ctx, email)
	if err != nil {
		return "", nil, err
	}
	if profile.PasswordHash == "" {
		// OAuth-only account; no password to compare against.
		return "", nil, domain.ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(profile.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.generateToken(profile)
	if err != nil {
		return "", nil, err
	}
	return token, profile, nil
}

// ExchangeCode trades an OAuth authorization code for a session. On a fresh
// sign-in the profile is upserted from the provider's user record; role and
// billing fields survive the upsert on existing rows.
func (s *AuthService) ExchangeCode(ctx context.Context, code string) (string, *domain.Profile, error) {
	if code == "" {
		return "", nil, ports.ErrInvalidCode
	}

	user, err := s.idp.Exchange(ctx, code)
	if err != nil {
		return "", nil, fmt.Errorf("exchange code: %w", err)
	}

	now := time.Now().UTC()
	profile, err := s.profiles.Upsert(ctx, &domain.Profile{
		ID:                 user.ID,
		Email:              user.Email,
		FullName:           user.FullName,
		AvatarURL:          user.AvatarURL,
		Provider:           user.Provider,
		SubscriptionStatus: domain.SubscriptionNone,
		Role:               domain.RoleUser,
		CreatedAt:          now,
		UpdatedAt:          now,
	})
	if err != nil {
		return "", nil, fmt.Errorf("upsert profile: %w", err)
	}

	token, err := s.generateToken(profile)
	if err != nil {
		return "", nil, err
	}
	return token, profile, nil
}

// Refresh re-issues a session token with extended expiry for the same subject.
func (s *AuthService) Refresh(claims ports.SessionClaims) (string, error) {
	if claims.ProfileID == "" {
		return "", domain.ErrUnauthenticated
	}
	return s.signClaims(claims.ProfileID, claims.Email, claims.Role)
}

// ProfileByID returns the profile behind a session subject.
func (s *AuthService) ProfileByID(ctx context.Context, id string) (*domain.Profile, error) {
	if id == "" {
		return nil, domain.ErrUnauthenticated
	}
	return s.profiles.FindByID(ctx, id)
}

func (s *AuthService) generateToken(p *domain.Profile) (string, error) {
	if p == nil {
		return "", errors.New("nil profile")
	}
	return s.signClaims(p.ID, p.Email, p.Role)
}

func (s *AuthService) signClaims(id, email, role string) (string, error) {
	claims := jwt.MapClaims{
		"sub":   id,
		"email": email,
		"role":  role,
		"exp":   time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
