package auth

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/globalcounseling/counseling-api/config"
	"github.com/globalcounseling/counseling-api/internal/api"
	"github.com/globalcounseling/counseling-api/internal/types"
)

// MockAuthRepo is a mock implementation of the AuthRepo interface
type MockAuthRepo struct {
	mock.Mock
}

func (m *MockAuthRepo) GetUserByProviderID(ctx context.Context, providerID string) (*types.UserAccount, error) {
	args := m.Called(ctx, providerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.UserAccount), args.Error(1)
}

func (m *MockAuthRepo) GetUserByEmail(ctx context.Context, email string) (*types.UserAccount, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.UserAccount), args.Error(1)
}

func (m *MockAuthRepo) GetUserByID(ctx context.Context, userID string) (*types.UserAccount, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.UserAccount), args.Error(1)
}

func (m *MockAuthRepo) LinkProviderIdentity(ctx context.Context, userID, providerID, avatar string) (*types.UserAccount, error) {
	args := m.Called(ctx, userID, providerID, avatar)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.UserAccount), args.Error(1)
}

func (m *MockAuthRepo) CreateUserFromProfile(ctx context.Context, profile *Profile) (*types.UserAccount, error) {
	args := m.Called(ctx, profile)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.UserAccount), args.Error(1)
}

func (m *MockAuthRepo) CreateUserByEmail(ctx context.Context, name, email string) (*types.UserAccount, error) {
	args := m.Called(ctx, name, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.UserAccount), args.Error(1)
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.JWT = config.JWTConfig{
		SecretKey: "test-access-secret",
		TokenTTL:  7 * 24 * time.Hour,
		Issuer:    "test-issuer",
		Audience:  "test-audience",
	}
	return cfg
}

func TestGetOrCreateUserFromProvider(t *testing.T) {
	logger := slog.Default()
	ctx := context.Background()

	profile := &Profile{
		ExternalID:  "google-123",
		Email:       "jane@example.com",
		DisplayName: "Jane Doe",
		AvatarURL:   "https://example.com/avatar.jpg",
	}

	t.Run("ExternalIDMatchReturnsAccountUnchanged", func(t *testing.T) {
		mockRepo := new(MockAuthRepo)
		service := NewAuthService(mockRepo, testConfig(), logger)

		googleID := "google-123"
		existing := &types.UserAccount{ID: "user-1", GoogleID: &googleID, Email: "other@example.com", Role: "user"}

		// Even with a mismatched email in the profile, the external id
		// match wins and the stored account is returned untouched.
		mockRepo.On("GetUserByProviderID", ctx, "google-123").Return(existing, nil).Once()

		user, err := service.GetOrCreateUserFromProvider(ctx, profile)

		assert.NoError(t, err)
		assert.Equal(t, existing, user)
		mockRepo.AssertExpectations(t)
		mockRepo.AssertNotCalled(t, "GetUserByEmail", mock.Anything, mock.Anything)
		mockRepo.AssertNotCalled(t, "LinkProviderIdentity", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("EmailMatchLinksIdentity", func(t *testing.T) {
		mockRepo := new(MockAuthRepo)
		service := NewAuthService(mockRepo, testConfig(), logger)

		existing := &types.UserAccount{ID: "user-2", Email: "jane@example.com", Role: "user"}
		googleID := "google-123"
		linked := &types.UserAccount{ID: "user-2", GoogleID: &googleID, Email: "jane@example.com", Role: "user"}

		mockRepo.On("GetUserByProviderID", ctx, "google-123").Return(nil, api.ErrNotFound).Once()
		mockRepo.On("GetUserByEmail", ctx, "jane@example.com").Return(existing, nil).Once()
		mockRepo.On("LinkProviderIdentity", ctx, "user-2", "google-123", "https://example.com/avatar.jpg").Return(linked, nil).Once()

		user, err := service.GetOrCreateUserFromProvider(ctx, profile)

		assert.NoError(t, err)
		assert.Equal(t, linked, user)
		mockRepo.AssertExpectations(t)
	})

	t.Run("NoMatchCreatesAccount", func(t *testing.T) {
		mockRepo := new(MockAuthRepo)
		service := NewAuthService(mockRepo, testConfig(), logger)

		googleID := "google-123"
		created := &types.UserAccount{ID: "user-3", GoogleID: &googleID, Email: "jane@example.com", Role: "user"}

		mockRepo.On("GetUserByProviderID", ctx, "google-123").Return(nil, api.ErrNotFound).Once()
		mockRepo.On("GetUserByEmail", ctx, "jane@example.com").Return(nil, api.ErrNotFound).Once()
		mockRepo.On("CreateUserFromProfile", ctx, profile).Return(created, nil).Once()

		user, err := service.GetOrCreateUserFromProvider(ctx, profile)

		assert.NoError(t, err)
		assert.Equal(t, "user", user.Role)
		assert.Equal(t, created, user)
		mockRepo.AssertExpectations(t)
	})

	t.Run("DuplicateEmailSurfacesConflict", func(t *testing.T) {
		mockRepo := new(MockAuthRepo)
		service := NewAuthService(mockRepo, testConfig(), logger)

		mockRepo.On("GetUserByProviderID", ctx, "google-123").Return(nil, api.ErrNotFound).Once()
		mockRepo.On("GetUserByEmail", ctx, "jane@example.com").Return(nil, api.ErrNotFound).Once()
		mockRepo.On("CreateUserFromProfile", ctx, profile).Return(nil, api.ErrConflict).Once()

		user, err := service.GetOrCreateUserFromProvider(ctx, profile)

		assert.Nil(t, user)
		assert.True(t, errors.Is(err, api.ErrConflict))
		mockRepo.AssertExpectations(t)
	})
}

func TestGenerateAccessToken(t *testing.T) {
	logger := slog.Default()

	user := &types.UserAccount{ID: "user-1", Email: "jane@example.com", Role: "user"}

	t.Run("RoundTrip", func(t *testing.T) {
		cfg := testConfig()
		service := NewAuthService(new(MockAuthRepo), cfg, logger)

		tokenString, err := service.GenerateAccessToken(user)
		assert.NoError(t, err)
		assert.NotEmpty(t, tokenString)

		claims := &types.Claims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			return []byte(cfg.JWT.SecretKey), nil
		})
		assert.NoError(t, err)
		assert.True(t, token.Valid)
		assert.Equal(t, "user-1", claims.UserID)
		assert.Equal(t, "test-issuer", claims.Issuer)

		// Expiry is issuance plus the configured 7-day TTL.
		ttl := time.Until(claims.ExpiresAt.Time)
		assert.InDelta(t, (7 * 24 * time.Hour).Seconds(), ttl.Seconds(), 60)
	})

	t.Run("MissingSecretFailsClosed", func(t *testing.T) {
		cfg := testConfig()
		cfg.JWT.SecretKey = ""
		service := NewAuthService(new(MockAuthRepo), cfg, logger)

		tokenString, err := service.GenerateAccessToken(user)
		assert.Empty(t, tokenString)
		assert.True(t, errors.Is(err, api.ErrNotConfigured))
	})
}
