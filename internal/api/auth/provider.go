package auth

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/markbates/goth"
	"github.com/markbates/goth/providers/google"

	"github.com/globalcounseling/counseling-api/config"
	"github.com/globalcounseling/counseling-api/internal/api"
)

// Profile is the verified identity tuple returned by a provider after a
// successful authorization-code exchange.
type Profile struct {
	ExternalID  string
	Email       string
	DisplayName string
	AvatarURL   string
}

// IdentityProvider abstracts the external OAuth provider. BeginAuth returns
// the URL the client must be redirected to; CompleteAuth finishes the
// authorization-code exchange using the callback query parameters.
type IdentityProvider interface {
	BeginAuth(state string) (string, error)
	CompleteAuth(ctx context.Context, params url.Values) (*Profile, error)
}

var _ IdentityProvider = (*GoogleIdentityProvider)(nil)

// GoogleIdentityProvider implements IdentityProvider on top of goth's
// Google provider.
type GoogleIdentityProvider struct {
	provider goth.Provider
	logger   *slog.Logger
}

// NewGoogleIdentityProvider builds the provider from configuration. Missing
// client credentials return api.ErrNotConfigured: the caller keeps the
// /auth/google surface disabled instead of crashing or attempting an
// exchange with empty credentials.
func NewGoogleIdentityProvider(cfg config.GoogleOAuthConfig, logger *slog.Logger) (*GoogleIdentityProvider, error) {
	if cfg.ClientID == "" || cfg.ClientSecret == "" {
		return nil, fmt.Errorf("google oauth credentials missing: %w", api.ErrNotConfigured)
	}
	return &GoogleIdentityProvider{
		provider: google.New(cfg.ClientID, cfg.ClientSecret, cfg.CallbackURL, "email", "profile"),
		logger:   logger,
	}, nil
}

// BeginAuth starts the authorization-code flow and returns the provider's
// consent-screen URL.
func (p *GoogleIdentityProvider) BeginAuth(state string) (string, error) {
	sess, err := p.provider.BeginAuth(state)
	if err != nil {
		return "", fmt.Errorf("failed to begin provider auth: %w", err)
	}
	authURL, err := sess.GetAuthURL()
	if err != nil {
		return "", fmt.Errorf("failed to get provider auth URL: %w", err)
	}
	return authURL, nil
}

// CompleteAuth exchanges the callback's authorization code for a verified
// profile. The flow is stateless on our side: a fresh provider session is
// authorized directly with the callback parameters.
func (p *GoogleIdentityProvider) CompleteAuth(ctx context.Context, params url.Values) (*Profile, error) {
	sess, err := p.provider.BeginAuth(params.Get("state"))
	if err != nil {
		return nil, fmt.Errorf("failed to create provider session: %w", err)
	}

	if _, err = sess.Authorize(p.provider, params); err != nil {
		p.logger.WarnContext(ctx, "Provider code exchange failed", slog.Any("error", err))
		return nil, fmt.Errorf("provider code exchange failed: %w", api.ErrUnauthenticated)
	}

	gothUser, err := p.provider.FetchUser(sess)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch provider user: %w", err)
	}

	return &Profile{
		ExternalID:  gothUser.UserID,
		Email:       gothUser.Email,
		DisplayName: gothUser.Name,
		AvatarURL:   gothUser.AvatarURL,
	}, nil
}
