// internal/middleware/jwt.go
package middleware

import (
	"crypto/rsa"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenIssuer identifies the auth service that issues all access tokens.
const TokenIssuer = "Poof"

type contextKey string

const (
	ContextKeyUserID = contextKey("userID")
	ContextKeyRole   = contextKey("role")
)

// Role claims recognized by the middleware.
const (
	RoleWorker = "worker"
	RoleAdmin  = "admin"
)

/*
ValidateToken checks the token's signature, expiry, and issuer, and returns
the parsed claims. Attestation and client-binding checks live in the auth
service; this service only verifies what the signing key guarantees.
*/
func ValidateToken(tokenString string, publicKey *rsa.PublicKey) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return publicKey, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}

	exp, ok := claims["exp"].(float64)
	if !ok {
		return nil, errors.New("missing expiration claim")
	}
	if time.Unix(int64(exp), 0).Before(time.Now()) {
		return nil, jwt.ErrTokenExpired
	}

	iss, ok := claims["iss"].(string)
	if !ok {
		return nil, errors.New("missing issuer claim")
	}
	if iss != TokenIssuer {
		return nil, errors.New("invalid token issuer")
	}

	if sub, _ := claims["sub"].(string); sub == "" {
		return nil, errors.New("missing subject claim")
	}

	return claims, nil
}

func extractAccessToken(authHeader string) (string, error) {
	if authHeader == "" {
		return "", errors.New("missing Authorization header")
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", errors.New("malformed Authorization header")
	}
	return parts[1], nil
}
