package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/globalcounseling/counseling-api/config"
	"github.com/globalcounseling/counseling-api/internal/api"
	"github.com/globalcounseling/counseling-api/internal/types"
)

var _ AuthService = (*AuthServiceImpl)(nil)

// AuthService covers credential issuance and identity resolution.
type AuthService interface {
	// GetOrCreateUserFromProvider resolves a verified provider profile to an
	// internal account: by external id first, then by email (linking the
	// external identity to the matched account), else by creating a new
	// account with role "user".
	GetOrCreateUserFromProvider(ctx context.Context, profile *Profile) (*types.UserAccount, error)

	// GenerateAccessToken mints a signed bearer token for the account.
	// Fails closed with api.ErrNotConfigured when no signing secret is set.
	GenerateAccessToken(user *types.UserAccount) (string, error)

	// GetUserByID fetches the account backing a verified identity.
	GetUserByID(ctx context.Context, userID string) (*types.UserAccount, error)

	// GetOrCreateUserByEmail finds or creates an account for the test-token
	// flow. The account has no external identity.
	GetOrCreateUserByEmail(ctx context.Context, name, email string) (*types.UserAccount, error)
}

type AuthServiceImpl struct {
	logger *slog.Logger
	repo   AuthRepo
	cfg    *config.Config
}

func NewAuthService(repo AuthRepo, cfg *config.Config, logger *slog.Logger) *AuthServiceImpl {
	return &AuthServiceImpl{
		logger: logger,
		repo:   repo,
		cfg:    cfg,
	}
}

// GetOrCreateUserFromProvider implements the directory resolution order.
// The external id match always wins: an email mismatch on the incoming
// profile does not touch the stored account.
func (s *AuthServiceImpl) GetOrCreateUserFromProvider(ctx context.Context, profile *Profile) (*types.UserAccount, error) {
	l := s.logger.With(slog.String("method", "GetOrCreateUserFromProvider"))

	user, err := s.repo.GetUserByProviderID(ctx, profile.ExternalID)
	if err == nil {
		l.DebugContext(ctx, "Resolved account by external identity", slog.String("userID", user.ID))
		return user, nil
	}
	if !errors.Is(err, api.ErrNotFound) {
		return nil, fmt.Errorf("directory lookup failed: %w", err)
	}

	user, err = s.repo.GetUserByEmail(ctx, profile.Email)
	if err == nil {
		// Email match: attach the external identity to the existing account.
		// The provider's email claim is trusted here without re-verifying
		// possession; flagged as a security review item in DESIGN.md.
		linked, linkErr := s.repo.LinkProviderIdentity(ctx, user.ID, profile.ExternalID, profile.AvatarURL)
		if linkErr != nil {
			return nil, fmt.Errorf("identity linking failed: %w", linkErr)
		}
		l.InfoContext(ctx, "Linked external identity to account matched by email", slog.String("userID", linked.ID))
		return linked, nil
	}
	if !errors.Is(err, api.ErrNotFound) {
		return nil, fmt.Errorf("directory lookup failed: %w", err)
	}

	created, err := s.repo.CreateUserFromProfile(ctx, profile)
	if err != nil {
		return nil, fmt.Errorf("account creation failed: %w", err)
	}
	l.InfoContext(ctx, "Created new account from provider profile", slog.String("userID", created.ID))
	return created, nil
}

// GenerateAccessToken mints the HS256 bearer token carrying the account id,
// email and role. Expiry is issuance time plus the configured TTL (7 days);
// there is no refresh mechanism, re-authentication is required after expiry.
func (s *AuthServiceImpl) GenerateAccessToken(user *types.UserAccount) (string, error) {
	if s.cfg.JWT.SecretKey == "" {
		return "", fmt.Errorf("jwt signing secret missing: %w", api.ErrNotConfigured)
	}

	now := time.Now()
	claims := &types.Claims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.cfg.JWT.Issuer,
			Audience:  jwt.ClaimStrings{s.cfg.JWT.Audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.JWT.TokenTTL)),
			Subject:   user.ID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.JWT.SecretKey))
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}
	return signed, nil
}

func (s *AuthServiceImpl) GetUserByID(ctx context.Context, userID string) (*types.UserAccount, error) {
	return s.repo.GetUserByID(ctx, userID)
}

func (s *AuthServiceImpl) GetOrCreateUserByEmail(ctx context.Context, name, email string) (*types.UserAccount, error) {
	user, err := s.repo.GetUserByEmail(ctx, email)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, api.ErrNotFound) {
		return nil, fmt.Errorf("directory lookup failed: %w", err)
	}
	return s.repo.CreateUserByEmail(ctx, name, email)
}
