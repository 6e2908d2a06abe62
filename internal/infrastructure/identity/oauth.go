// Package identity wraps the third-party OAuth identity provider behind
// ports.IdentityProvider. The provider endpoints are configured, not
// hard-coded, so Google or any OIDC-style provider works unchanged.
package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"

	"github.com/arquifreelas/marketplace-api/internal/core/ports"
)

// Config carries the OAuth client settings for one provider.
type Config struct {
	ProviderName string
	ClientID     string
	ClientSecret string
	AuthURL      string
	TokenURL     string
	UserInfoURL  string
	RedirectURL  string
	Scopes       []string
}

// Provider implements ports.IdentityProvider on golang.org/x/oauth2.
type Provider struct {
	name        string
	conf        *oauth2.Config
	userInfoURL string
	client      *http.Client
}

func NewProvider(cfg Config) *Provider {
	scopes := cfg.Scopes
	if len(scopes) == 0 {
		scopes = []string{"openid", "email", "profile"}
	}
	return &Provider{
		name: cfg.ProviderName,
		conf: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       scopes,
			Endpoint: oauth2.Endpoint{
				AuthURL:  cfg.AuthURL,
				TokenURL: cfg.TokenURL,
			},
		},
		userInfoURL: cfg.UserInfoURL,
		client:      http.DefaultClient,
	}
}

// AuthURL builds the provider authorization URL for the given CSRF state.
func (p *Provider) AuthURL(state string) string {
	return p.conf.AuthCodeURL(state, oauth2.AccessTypeOffline)
}

// userInfo is the OIDC-style userinfo payload. Providers disagree on field
// names for the display name and avatar; both variants are accepted.
type userInfo struct {
	Sub     string `json:"sub"`
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Full    string `json:"full_name"`
	Picture string `json:"picture"`
	Avatar  string `json:"avatar_url"`
}

// Exchange trades an authorization code for the provider's user record.
func (p *Provider) Exchange(ctx context.Context, code string) (*ports.IdentityUser, error) {
	token, err := p.conf.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ports.ErrInvalidCode, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.userInfoURL, nil)
	if err != nil {
		return nil, err
	}
	token.SetAuthHeader(req)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch userinfo: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch userinfo: unexpected status %d", resp.StatusCode)
	}

	var info userInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("decode userinfo: %w", err)
	}

	user := &ports.IdentityUser{
		ID:        info.Sub,
		Email:     info.Email,
		FullName:  info.Name,
		AvatarURL: info.Picture,
		Provider:  p.name,
	}
	if user.ID == "" {
		user.ID = info.ID
	}
	if user.FullName == "" {
		user.FullName = info.Full
	}
	if user.AvatarURL == "" {
		user.AvatarURL = info.Avatar
	}
	if user.ID == "" || user.Email == "" {
		return nil, fmt.Errorf("userinfo missing id or email")
	}
	return user, nil
}
