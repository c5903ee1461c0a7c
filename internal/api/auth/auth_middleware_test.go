package auth

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/globalcounseling/counseling-api/config"
	"github.com/globalcounseling/counseling-api/internal/types"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func signToken(t *testing.T, cfg config.JWTConfig, userID string, expiresAt time.Time) string {
	t.Helper()
	claims := types.Claims{
		UserID: userID,
		Email:  "jane@example.com",
		Role:   "user",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    cfg.Issuer,
			Audience:  jwt.ClaimStrings{cfg.Audience},
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(cfg.SecretKey))
	require.NoError(t, err)
	return signed
}

func TestAuthenticate(t *testing.T) {
	jwtCfg := config.JWTConfig{
		SecretKey: "test-access-secret",
		TokenTTL:  time.Hour,
		Issuer:    "test-issuer",
		Audience:  "test-audience",
	}

	var gotUserID string
	var gotRole string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID, _ = GetUserIDFromContext(r.Context())
		gotRole, _ = GetUserRoleFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	handler := Authenticate(quietLogger(), jwtCfg)(next)

	t.Run("ValidTokenInjectsIdentity", func(t *testing.T) {
		gotUserID, gotRole = "", ""
		req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, jwtCfg, "user-1", time.Now().Add(time.Hour)))
		rr := httptest.NewRecorder()

		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "user-1", gotUserID)
		assert.Equal(t, "user", gotRole)
	})

	t.Run("MissingHeader", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
		rr := httptest.NewRecorder()

		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.Contains(t, rr.Body.String(), "Authorization header required")
	})

	t.Run("MalformedHeader", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
		req.Header.Set("Authorization", "Token abc.def.ghi")
		rr := httptest.NewRecorder()

		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("WrongSignature", func(t *testing.T) {
		otherCfg := jwtCfg
		otherCfg.SecretKey = "some-other-secret"
		req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, otherCfg, "user-1", time.Now().Add(time.Hour)))
		rr := httptest.NewRecorder()

		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.Contains(t, rr.Body.String(), "Invalid token signature")
	})

	t.Run("ExpiredToken", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, jwtCfg, "user-1", time.Now().Add(-time.Minute)))
		rr := httptest.NewRecorder()

		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.Contains(t, rr.Body.String(), "Token has expired")
	})

	t.Run("WrongIssuer", func(t *testing.T) {
		otherCfg := jwtCfg
		otherCfg.Issuer = "someone-else"
		req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, otherCfg, "user-1", time.Now().Add(time.Hour)))
		rr := httptest.NewRecorder()

		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("EmptySecretFailsClosedWith503", func(t *testing.T) {
		disabled := Authenticate(quietLogger(), config.JWTConfig{})(next)

		// Even a token that would verify under the real config is refused:
		// nothing is ever checked against an empty secret.
		req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, jwtCfg, "user-1", time.Now().Add(time.Hour)))
		rr := httptest.NewRecorder()

		disabled.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
		assert.Contains(t, rr.Body.String(), "Authentication is not configured")
	})
}
