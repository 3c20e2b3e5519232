package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signToken(t *testing.T, claims jwt.MapClaims, secret string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func validClaims() jwt.MapClaims {
	return jwt.MapClaims{
		"user_id": 42,
		"email":   "user@example.com",
		"exp":     time.Now().Add(time.Hour).Unix(),
	}
}

func TestJWTAuthMiddleware_ValidToken(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)

	var gotUserID int64
	var gotEmail string
	handler := JWTAuthMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID = r.Context().Value("user_id").(int64)
		gotEmail = r.Context().Value("email").(string)
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/expenses", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, validClaims(), testSecret))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(42), gotUserID)
	assert.Equal(t, "user@example.com", gotEmail)
}

func TestJWTAuthMiddleware_MissingToken(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)

	handler := JWTAuthMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run without a token")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/expenses", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuthMiddleware_WrongSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)

	handler := JWTAuthMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run with a forged token")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/expenses", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, validClaims(), "other-secret"))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuthMiddleware_ExpiredToken(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)

	handler := JWTAuthMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run with an expired token")
	}))

	claims := validClaims()
	claims["exp"] = time.Now().Add(-time.Minute).Unix()

	req := httptest.NewRequest(http.MethodGet, "/api/expenses", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, claims, testSecret))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuthMiddleware_MissingClaims(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)

	handler := JWTAuthMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run without identity claims")
	}))

	claims := jwt.MapClaims{"exp": time.Now().Add(time.Hour).Unix()}

	req := httptest.NewRequest(http.MethodGet, "/api/expenses", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, claims, testSecret))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
