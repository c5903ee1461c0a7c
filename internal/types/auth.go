package types

import "github.com/golang-jwt/jwt/v5"

// Claims embedded in issued access tokens. Claims are trusted as of issuance
// time; a role change or account deletion is not reflected until the token
// naturally expires.
type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// Response is the generic envelope for simple success/error messages.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}
