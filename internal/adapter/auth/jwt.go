// Package auth verifies the bearer tokens issued by the identity service
// and turns them into a domain.Actor.
package auth

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"adserve/internal/core/domain"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token expired")
)

// Claims are the access token claims this service reads.
type Claims struct {
	Role  string `json:"role"`
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// Verifier validates HS256 tokens.
type Verifier struct {
	secret []byte
	issuer string
}

func NewVerifier(secret, issuer string) *Verifier {
	return &Verifier{secret: []byte(secret), issuer: issuer}
}

// Authenticate parses token and returns the caller it identifies.
func (v *Verifier) Authenticate(_ context.Context, token string) (domain.Actor, error) {
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}
	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(*jwt.Token) (any, error) {
		return v.secret, nil
	}, opts...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return domain.Actor{}, domain.NewAuthenticationError("token expired", ErrExpiredToken)
		}
		return domain.Actor{}, domain.NewAuthenticationError("invalid token", ErrInvalidToken)
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return domain.Actor{}, domain.NewAuthenticationError("invalid token", ErrInvalidToken)
	}
	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return domain.Actor{}, domain.NewAuthenticationError("invalid subject", ErrInvalidToken)
	}
	role := domain.Role(claims.Role)
	if role != domain.RoleAdvertiser && role != domain.RoleAdmin {
		return domain.Actor{}, domain.NewAuthenticationError("unknown role", ErrInvalidToken)
	}
	return domain.Actor{ID: id, Role: role, Email: claims.Email}, nil
}

// Issue signs a token for actor. The identity service is the real issuer;
// this exists for local tooling and tests.
func (v *Verifier) Issue(actor domain.Actor, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Role:  string(actor.Role),
		Email: actor.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   actor.ID.String(),
			Issuer:    v.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        uuid.NewString(),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(v.secret)
}
