package auth

import (
	"context"

	"github.com/golang-jwt/jwt/v5"

	"go-skillhub-backend/pkg/apperror"
)

// Identity is what the identity collaborator asserts about a token.
type Identity struct {
	SubjectID string
	Email     string
}

// Verifier is the identity collaborator contract consumed by the engine.
type Verifier interface {
	VerifyToken(ctx context.Context, token string) (Identity, error)
}

// VerifyToken validates the JWT against the provider's published keys and
// extracts the subject identity.
func (p *Provider) VerifyToken(_ context.Context, tokenString string) (Identity, error) {
	token, err := jwt.Parse(tokenString, p.KeyFunc, jwt.WithValidMethods([]string{"RS256"}))
	if err != nil || !token.Valid {
		return Identity{}, apperror.Unauthenticated("Invalid or expired token, please log in again.")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Identity{}, apperror.Unauthenticated("Invalid or expired token, please log in again.")
	}

	sub, _ := claims["sub"].(string)
	if sub == "" {
		return Identity{}, apperror.Unauthenticated("Token is missing a subject.")
	}
	email, _ := claims["email"].(string)

	return Identity{SubjectID: sub, Email: email}, nil
}
