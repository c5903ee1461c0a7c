package auth

import "github.com/globalcounseling/counseling-api/internal/types"

// TokenResponse is returned after a successful login or test-token request.
type TokenResponse struct {
	Message     string             `json:"message,omitempty"`
	AccessToken string             `json:"access_token"`
	TokenType   string             `json:"token_type"`
	User        *types.UserAccount `json:"user,omitempty"`
}

// TestTokenRequest mints a token for an email, creating the account when it
// does not exist. Development-mode helper only.
type TestTokenRequest struct {
	Email string `json:"email" validate:"required,email"`
	Name  string `json:"name,omitempty"`
}
