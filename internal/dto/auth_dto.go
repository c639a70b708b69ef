package dto

import "github.com/golang-jwt/jwt/v5"

// AuthClaims are the JWT claims this service verifies. Token issuance
// happens in the identity service; only bearer verification lives here.
type AuthClaims struct {
	UserID    string `json:"user_id"`
	Role      string `json:"role"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}
