// internal/middleware/auth_middleware.go
package middleware

import (
	"context"
	"crypto/rsa"
	"errors"
	"net/http"

	"github.com/golang-jwt/jwt/v5"

	"github.com/poofware/screening-service/internal/utils"
)

// AuthMiddleware – for worker-protected endpoints. If the token is missing
// or invalid, returns 401. The subject claim lands in the request context
// under ContextKeyUserID.
func AuthMiddleware(pub *rsa.PublicKey) func(http.Handler) http.Handler {
	return requireRole(pub, RoleWorker)
}

// AdminAuthMiddleware validates a JWT and ensures it carries the "admin"
// role. Intended for admin-only endpoints.
func AdminAuthMiddleware(pub *rsa.PublicKey) func(http.Handler) http.Handler {
	return requireRole(pub, RoleAdmin)
}

func requireRole(pub *rsa.PublicKey, requiredRole string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr, err := extractAccessToken(r.Header.Get("Authorization"))
			if err != nil {
				utils.RespondErrorWithCode(
					w, http.StatusUnauthorized, utils.ErrCodeUnauthorized, err.Error(), nil,
				)
				return
			}

			claims, vErr := ValidateToken(tokenStr, pub)
			if vErr != nil {
				if errors.Is(vErr, jwt.ErrTokenExpired) {
					utils.RespondErrorWithCode(
						w, http.StatusUnauthorized, utils.ErrCodeTokenExpired, "Token expired", nil, vErr,
					)
					return
				}
				utils.RespondErrorWithCode(
					w, http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Invalid token", nil, vErr,
				)
				return
			}

			role, _ := claims["role"].(string)
			if role != requiredRole {
				utils.RespondErrorWithCode(
					w, http.StatusForbidden, utils.ErrCodeForbidden, "Insufficient role", nil, nil,
				)
				return
			}

			userID, _ := claims["sub"].(string)
			ctx := context.WithValue(r.Context(), ContextKeyUserID, userID)
			ctx = context.WithValue(ctx, ContextKeyRole, role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
