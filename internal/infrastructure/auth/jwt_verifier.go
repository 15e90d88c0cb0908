// Package auth verifies session credentials issued by the external auth
// collaborator. This service never issues credentials; it only checks them
// and hands the embedded claims to identity resolution.
package auth

import (
	"context"
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"github.com/signalist/signalist-api/internal/core/domain"
)

// JWTVerifier validates HS256 session tokens signed with the shared secret.
type JWTVerifier struct {
	secret []byte
}

func NewJWTVerifier(secret string) *JWTVerifier {
	return &JWTVerifier{secret: []byte(secret)}
}

// Verify parses and validates the token. Any failure (bad signature, wrong
// algorithm, expiry, malformed claims) returns domain.ErrSessionInvalid so
// resolution fails closed to Anonymous.
func (v *JWTVerifier) Verify(_ context.Context, token string) (*domain.SessionClaims, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return v.secret, nil
	})
	if err != nil || !tkn.Valid {
		return nil, domain.ErrSessionInvalid
	}

	userID, _ := claims["user_id"].(string)
	email, _ := claims["email"].(string)
	role, _ := claims["role"].(string)
	if userID == "" || role == "" {
		return nil, fmt.Errorf("%w: missing identity claims", domain.ErrSessionInvalid)
	}

	return &domain.SessionClaims{
		UserID: userID,
		Email:  email,
		Role:   role,
	}, nil
}
