package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/globalcounseling/counseling-api/config"
	"github.com/globalcounseling/counseling-api/internal/types"
)

// MockAuthService is a mock implementation of the AuthService interface
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) GetOrCreateUserFromProvider(ctx context.Context, profile *Profile) (*types.UserAccount, error) {
	args := m.Called(ctx, profile)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.UserAccount), args.Error(1)
}

func (m *MockAuthService) GenerateAccessToken(user *types.UserAccount) (string, error) {
	args := m.Called(user)
	return args.String(0), args.Error(1)
}

func (m *MockAuthService) GetUserByID(ctx context.Context, userID string) (*types.UserAccount, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.UserAccount), args.Error(1)
}

func (m *MockAuthService) GetOrCreateUserByEmail(ctx context.Context, name, email string) (*types.UserAccount, error) {
	args := m.Called(ctx, name, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.UserAccount), args.Error(1)
}

// stubProvider satisfies IdentityProvider without reaching Google.
type stubProvider struct {
	redirectURL string
	profile     *Profile
	err         error
}

func (s *stubProvider) BeginAuth(state string) (string, error) {
	return s.redirectURL + "?state=" + state, s.err
}

func (s *stubProvider) CompleteAuth(ctx context.Context, params url.Values) (*Profile, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.profile, nil
}

func devConfig() *config.Config {
	cfg := testConfig()
	cfg.Mode = "development"
	return cfg
}

func TestBeginGoogleAuth(t *testing.T) {
	t.Run("NotConfiguredReturns503", func(t *testing.T) {
		handler := NewAuthHandlerImpl(new(MockAuthService), nil, devConfig(), quietLogger())

		req := httptest.NewRequest(http.MethodGet, "/auth/google", nil)
		rr := httptest.NewRecorder()
		handler.BeginGoogleAuth(rr, req)

		assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
		assert.Contains(t, rr.Body.String(), "GOOGLE_CLIENT_ID")
	})

	t.Run("RedirectsToConsentScreen", func(t *testing.T) {
		provider := &stubProvider{redirectURL: "https://accounts.google.com/o/oauth2/auth"}
		handler := NewAuthHandlerImpl(new(MockAuthService), provider, devConfig(), quietLogger())

		req := httptest.NewRequest(http.MethodGet, "/auth/google", nil)
		rr := httptest.NewRecorder()
		handler.BeginGoogleAuth(rr, req)

		assert.Equal(t, http.StatusFound, rr.Code)
		assert.Contains(t, rr.Header().Get("Location"), "accounts.google.com")
	})
}

func TestGoogleCallback(t *testing.T) {
	profile := &Profile{ExternalID: "google-123", Email: "jane@example.com", DisplayName: "Jane"}
	user := &types.UserAccount{ID: "user-1", Email: "jane@example.com", Role: "user"}

	t.Run("IssuesToken", func(t *testing.T) {
		mockService := new(MockAuthService)
		mockService.On("GetOrCreateUserFromProvider", mock.Anything, profile).Return(user, nil).Once()
		mockService.On("GenerateAccessToken", user).Return("signed-token", nil).Once()

		provider := &stubProvider{profile: profile}
		handler := NewAuthHandlerImpl(mockService, provider, devConfig(), quietLogger())

		req := httptest.NewRequest(http.MethodGet, "/auth/google/callback?code=abc&state=xyz", nil)
		rr := httptest.NewRecorder()
		handler.GoogleCallback(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var resp TokenResponse
		assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, "signed-token", resp.AccessToken)
		assert.Equal(t, "Bearer", resp.TokenType)
		assert.Equal(t, "user-1", resp.User.ID)
		mockService.AssertExpectations(t)
	})

	t.Run("ExchangeFailureReturns401", func(t *testing.T) {
		provider := &stubProvider{err: assert.AnError}
		handler := NewAuthHandlerImpl(new(MockAuthService), provider, devConfig(), quietLogger())

		req := httptest.NewRequest(http.MethodGet, "/auth/google/callback?code=bad", nil)
		rr := httptest.NewRecorder()
		handler.GoogleCallback(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("NotConfiguredReturns503", func(t *testing.T) {
		handler := NewAuthHandlerImpl(new(MockAuthService), nil, devConfig(), quietLogger())

		req := httptest.NewRequest(http.MethodGet, "/auth/google/callback", nil)
		rr := httptest.NewRecorder()
		handler.GoogleCallback(rr, req)

		assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
	})
}

func TestTestToken(t *testing.T) {
	t.Run("HiddenOutsideDevelopment", func(t *testing.T) {
		cfg := testConfig()
		cfg.Mode = "production"
		handler := NewAuthHandlerImpl(new(MockAuthService), nil, cfg, quietLogger())

		body := bytes.NewBufferString(`{"email":"jane@example.com"}`)
		req := httptest.NewRequest(http.MethodPost, "/auth/test-token", body)
		rr := httptest.NewRecorder()
		handler.TestToken(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
		assert.Contains(t, rr.Body.String(), "Route not found")
	})

	t.Run("InvalidEmailReturns400", func(t *testing.T) {
		handler := NewAuthHandlerImpl(new(MockAuthService), nil, devConfig(), quietLogger())

		body := bytes.NewBufferString(`{"email":"not-an-email"}`)
		req := httptest.NewRequest(http.MethodPost, "/auth/test-token", body)
		rr := httptest.NewRecorder()
		handler.TestToken(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("FindsOrCreatesAndMints", func(t *testing.T) {
		user := &types.UserAccount{ID: "user-9", Email: "jane@example.com", Role: "user"}
		mockService := new(MockAuthService)
		mockService.On("GetOrCreateUserByEmail", mock.Anything, "Jane", "jane@example.com").Return(user, nil).Once()
		mockService.On("GenerateAccessToken", user).Return("signed-token", nil).Once()

		handler := NewAuthHandlerImpl(mockService, nil, devConfig(), quietLogger())

		body := bytes.NewBufferString(`{"email":"jane@example.com","name":"Jane"}`)
		req := httptest.NewRequest(http.MethodPost, "/auth/test-token", body)
		rr := httptest.NewRecorder()
		handler.TestToken(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var resp TokenResponse
		assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, "signed-token", resp.AccessToken)
		mockService.AssertExpectations(t)
	})
}

func TestMe(t *testing.T) {
	t.Run("ReturnsAccount", func(t *testing.T) {
		user := &types.UserAccount{ID: "user-1", Email: "jane@example.com", Role: "user"}
		mockService := new(MockAuthService)
		mockService.On("GetUserByID", mock.Anything, "user-1").Return(user, nil).Once()

		handler := NewAuthHandlerImpl(mockService, nil, devConfig(), quietLogger())

		req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
		req = req.WithContext(context.WithValue(req.Context(), UserIDKey, "user-1"))
		rr := httptest.NewRecorder()
		handler.Me(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "jane@example.com")
		mockService.AssertExpectations(t)
	})

	t.Run("MissingIdentityReturns401", func(t *testing.T) {
		handler := NewAuthHandlerImpl(new(MockAuthService), nil, devConfig(), quietLogger())

		req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
		rr := httptest.NewRecorder()
		handler.Me(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}
