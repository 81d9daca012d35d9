package identity

import (
	"context"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"goflare.io/checkout/config"
)

// Identity is the verified caller of an authenticated checkout.
type Identity struct {
	UserID uuid.UUID
	Email  string
}

// Verifier checks a bearer token against the identity provider.
type Verifier interface {
	Verify(ctx context.Context, token string) (*Identity, error)
}

type jwtVerifier struct {
	secret []byte
	logger *zap.Logger
}

func NewJWTVerifier(cfg *config.Config, logger *zap.Logger) Verifier {
	return &jwtVerifier{
		secret: []byte(cfg.Auth.JWTSecret),
		logger: logger,
	}
}

func (v *jwtVerifier) Verify(_ context.Context, tokenString string) (*Identity, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return v.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("unexpected claims type %T", token.Claims)
	}

	sub, err := claims.GetSubject()
	if err != nil {
		return nil, fmt.Errorf("token has no subject: %w", err)
	}

	userID, err := uuid.Parse(sub)
	if err != nil {
		return nil, fmt.Errorf("token subject is not a user id: %w", err)
	}

	email, _ := claims["email"].(string)

	return &Identity{
		UserID: userID,
		Email:  email,
	}, nil
}
