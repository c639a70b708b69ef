package service

import (
	"context"
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"careerpath/internal/domain"
	"careerpath/internal/dto"
)

// AuthService verifies bearer tokens issued by the identity service.
// This service never issues tokens itself.
type AuthService interface {
	// ValidateToken parses and verifies an access token and resolves the
	// caller. The role comes from the user record, not the token, so a
	// role change takes effect without reissuing tokens.
	ValidateToken(ctx context.Context, tokenString string) (*dto.AuthClaims, error)
}

type authService struct {
	userRepo  domain.UserRepository
	secretKey string
}

// NewAuthService creates a new auth service.
func NewAuthService(userRepo domain.UserRepository, secretKey string) AuthService {
	return &authService{userRepo: userRepo, secretKey: secretKey}
}

// ValidateToken implements AuthService.
func (s *authService) ValidateToken(ctx context.Context, tokenString string) (*dto.AuthClaims, error) {
	claims := &dto.AuthClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.secretKey), nil
	})
	if err != nil || !token.Valid {
		return nil, domain.NewUnauthorizedError("Invalid or expired token")
	}
	if claims.TokenType != "" && claims.TokenType != "access" {
		return nil, domain.NewUnauthorizedError("Token is not an access token")
	}
	if claims.UserID == "" {
		return nil, domain.NewUnauthorizedError("Token carries no subject")
	}

	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.NewUnauthorizedError("Unknown user")
	}
	claims.Role = user.Role
	return claims, nil
}
