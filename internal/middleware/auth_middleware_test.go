package middleware

import (
	"crypto/rand"
	"crypto/rsa"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func signToken(t *testing.T, key *rsa.PrivateKey, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	signed, err := token.SignedString(key)
	require.NoError(t, err)
	return signed
}

func workerClaims(sub string) jwt.MapClaims {
	return jwt.MapClaims{
		"sub":  sub,
		"iss":  TokenIssuer,
		"role": RoleWorker,
		"exp":  time.Now().Add(time.Hour).Unix(),
	}
}

func TestAuthMiddleware(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	var gotUserID string
	handler := AuthMiddleware(&key.PublicKey)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID, _ = r.Context().Value(ContextKeyUserID).(string)
		w.WriteHeader(http.StatusOK)
	}))

	do := func(authHeader string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/workers/me", nil)
		if authHeader != "" {
			req.Header.Set("Authorization", authHeader)
		}
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec
	}

	t.Run("valid token passes subject through", func(t *testing.T) {
		token := signToken(t, key, workerClaims("worker-123"))
		rec := do("Bearer " + token)
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "worker-123", gotUserID)
	})

	t.Run("missing header", func(t *testing.T) {
		require.Equal(t, http.StatusUnauthorized, do("").Code)
	})

	t.Run("malformed header", func(t *testing.T) {
		require.Equal(t, http.StatusUnauthorized, do("Token abc").Code)
	})

	t.Run("expired token", func(t *testing.T) {
		claims := workerClaims("worker-123")
		claims["exp"] = time.Now().Add(-time.Minute).Unix()
		rec := do("Bearer " + signToken(t, key, claims))
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		claims := workerClaims("worker-123")
		claims["iss"] = "someone-else"
		rec := do("Bearer " + signToken(t, key, claims))
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("wrong signing key", func(t *testing.T) {
		other, err := rsa.GenerateKey(rand.Reader, 2048)
		require.NoError(t, err)
		rec := do("Bearer " + signToken(t, other, workerClaims("worker-123")))
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("admin token rejected on worker route", func(t *testing.T) {
		claims := workerClaims("admin-1")
		claims["role"] = RoleAdmin
		rec := do("Bearer " + signToken(t, key, claims))
		require.Equal(t, http.StatusForbidden, rec.Code)
	})
}

func TestAdminAuthMiddleware_RequiresAdminRole(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	handler := AdminAuthMiddleware(&key.PublicKey)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	claims := workerClaims("admin-1")
	claims["role"] = RoleAdmin
	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/review-queue", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, key, claims))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/v1/admin/review-queue", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, key, workerClaims("worker-1")))
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusForbidden, rec.Code)
}
