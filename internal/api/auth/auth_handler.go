package auth

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/globalcounseling/counseling-api/app/observability/metrics"
	"github.com/globalcounseling/counseling-api/config"
	"github.com/globalcounseling/counseling-api/internal/api"
	"github.com/globalcounseling/counseling-api/internal/types"
	"github.com/globalcounseling/counseling-api/internal/validation"
)

const oauthNotConfiguredMsg = "Google OAuth is not configured. Please set GOOGLE_CLIENT_ID and GOOGLE_CLIENT_SECRET environment variables."

type AuthHandlerImpl struct {
	authService AuthService
	provider    IdentityProvider // nil when provider credentials are absent
	cfg         *config.Config
	logger      *slog.Logger
	metrics     *metrics.AppMetrics // optional
}

func NewAuthHandlerImpl(authService AuthService, provider IdentityProvider, cfg *config.Config, logger *slog.Logger) *AuthHandlerImpl {
	return &AuthHandlerImpl{
		authService: authService,
		provider:    provider,
		cfg:         cfg,
		logger:      logger,
	}
}

// WithMetrics attaches the application metric instruments.
func (h *AuthHandlerImpl) WithMetrics(m *metrics.AppMetrics) *AuthHandlerImpl {
	h.metrics = m
	return h
}

// BeginGoogleAuth godoc
// @Summary      Initiate Google OAuth login
// @Description  Redirects the client to the Google consent screen.
// @Tags         Auth
// @Success      302 {string} string "Redirect to Google"
// @Failure      503 {object} types.Response "OAuth not configured"
// @Router       /auth/google [get]
func (h *AuthHandlerImpl) BeginGoogleAuth(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := h.logger.With(slog.String("handler", "BeginGoogleAuth"))

	if h.provider == nil {
		l.WarnContext(ctx, "Google OAuth requested but not configured")
		api.ErrorResponse(w, r, http.StatusServiceUnavailable, oauthNotConfiguredMsg)
		return
	}

	redirectURL, err := h.provider.BeginAuth(uuid.NewString())
	if err != nil {
		l.ErrorContext(ctx, "Failed to begin provider auth", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to initiate Google login")
		return
	}

	http.Redirect(w, r, redirectURL, http.StatusFound)
}

// GoogleCallback godoc
// @Summary      Google OAuth callback
// @Description  Completes the code exchange, resolves the account and returns a bearer token.
// @Tags         Auth
// @Produce      json
// @Success      200 {object} TokenResponse "Access token and account"
// @Failure      401 {object} types.Response "Code exchange failed"
// @Failure      503 {object} types.Response "OAuth or signing key not configured"
// @Router       /auth/google/callback [get]
func (h *AuthHandlerImpl) GoogleCallback(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := h.logger.With(slog.String("handler", "GoogleCallback"))

	if h.provider == nil {
		api.ErrorResponse(w, r, http.StatusServiceUnavailable, oauthNotConfiguredMsg)
		return
	}

	profile, err := h.provider.CompleteAuth(ctx, r.URL.Query())
	if err != nil {
		l.WarnContext(ctx, "Provider auth completion failed", slog.Any("error", err))
		if h.metrics != nil {
			h.metrics.TokenVerifyFailuresTotal.Add(ctx, 1)
		}
		api.ErrorResponse(w, r, http.StatusUnauthorized, "Authentication failed")
		return
	}

	user, err := h.authService.GetOrCreateUserFromProvider(ctx, profile)
	if err != nil {
		l.ErrorContext(ctx, "Identity resolution failed", slog.Any("error", err))
		if errors.Is(err, api.ErrConflict) {
			api.ErrorResponse(w, r, http.StatusConflict, "An account with this email already exists")
			return
		}
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to resolve account")
		return
	}

	token, err := h.authService.GenerateAccessToken(user)
	if err != nil {
		l.ErrorContext(ctx, "Token issuance failed", slog.Any("error", err))
		if errors.Is(err, api.ErrNotConfigured) {
			api.ErrorResponse(w, r, http.StatusServiceUnavailable, "Token signing is not configured")
			return
		}
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to issue token")
		return
	}

	if h.metrics != nil {
		h.metrics.LoginsTotal.Add(ctx, 1)
	}
	l.InfoContext(ctx, "Provider login completed", slog.String("userID", user.ID))

	api.WriteJSONResponse(w, r, http.StatusOK, TokenResponse{
		Message:     "Login successful",
		AccessToken: token,
		TokenType:   "Bearer",
		User:        user,
	})
}

// TestToken godoc
// @Summary      Generate JWT token for testing (development mode only)
// @Description  Finds or creates an account by email and returns a bearer token.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request body TestTokenRequest true "Email and optional name"
// @Success      200 {object} TokenResponse "Access token and account"
// @Failure      400 {object} types.Response "Invalid input"
// @Failure      503 {object} types.Response "Signing key not configured"
// @Router       /auth/test-token [post]
func (h *AuthHandlerImpl) TestToken(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := h.logger.With(slog.String("handler", "TestToken"))

	if !h.cfg.IsDevelopment() {
		api.ErrorResponse(w, r, http.StatusNotFound, "Route not found")
		return
	}

	var req TestTokenRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if fieldErrors := validation.Struct(&req); fieldErrors != nil {
		api.ValidationErrorResponse(w, r, fieldErrors)
		return
	}

	name := req.Name
	if name == "" {
		name = req.Email
	}
	user, err := h.authService.GetOrCreateUserByEmail(ctx, name, req.Email)
	if err != nil {
		l.ErrorContext(ctx, "Failed to find or create test account", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to resolve account")
		return
	}

	token, err := h.authService.GenerateAccessToken(user)
	if err != nil {
		if errors.Is(err, api.ErrNotConfigured) {
			api.ErrorResponse(w, r, http.StatusServiceUnavailable, "Token signing is not configured")
			return
		}
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to issue token")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, TokenResponse{
		Message:     "Test token generated successfully",
		AccessToken: token,
		TokenType:   "Bearer",
		User:        user,
	})
}

// Logout godoc
// @Summary      Logout (stateless)
// @Description  Tokens are not tracked server-side; the client discards its token.
// @Tags         Auth
// @Produce      json
// @Success      200 {object} types.Response "Confirmation"
// @Router       /auth/logout [post]
func (h *AuthHandlerImpl) Logout(w http.ResponseWriter, r *http.Request) {
	api.WriteJSONResponse(w, r, http.StatusOK, types.Response{
		Success: true,
		Message: "Logout successful. Please discard your token on the client side.",
	})
}

// Me godoc
// @Summary      Current account
// @Description  Returns the account backing the verified bearer token.
// @Tags         Auth
// @Produce      json
// @Success      200 {object} types.UserAccount "Account"
// @Failure      401 {object} types.Response "Unauthorized"
// @Failure      404 {object} types.Response "Account no longer exists"
// @Security     BearerAuth
// @Router       /auth/me [get]
func (h *AuthHandlerImpl) Me(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := h.logger.With(slog.String("handler", "Me"))

	userID, ok := GetUserIDFromContext(ctx)
	if !ok || userID == "" {
		api.ErrorResponse(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	user, err := h.authService.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, api.ErrNotFound) {
			api.ErrorResponse(w, r, http.StatusNotFound, "Account not found")
			return
		}
		l.ErrorContext(ctx, "Failed to load account", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to load account")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, user)
}
