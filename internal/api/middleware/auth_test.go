package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/logger"
)

const secret = "test-secret"

func sign(t *testing.T, method jwt.SigningMethod, key interface{}, claims Claims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return token
}

func validClaims() Claims {
	return Claims{
		UserID: 42,
		Role:   "professional",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			Issuer:    "identity",
		},
	}
}

func serveWithAuth(issuer, header string) (*httptest.ResponseRecorder, *domain.Requester) {
	var got *domain.Requester
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if requester, ok := GetRequester(r.Context()); ok {
			got = &requester
		}
		w.WriteHeader(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/appointments", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	Auth(secret, issuer, logger.NewNop())(next).ServeHTTP(rec, req)
	return rec, got
}

func TestAuth_ValidToken(t *testing.T) {
	token := sign(t, jwt.SigningMethodHS256, []byte(secret), validClaims())

	rec, requester := serveWithAuth("identity", "Bearer "+token)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	require.NotNil(t, requester)
	assert.Equal(t, domain.UserID(42), requester.UserID)
	assert.Equal(t, domain.RoleProfessional, requester.Role)
}

func TestAuth_Rejects(t *testing.T) {
	expired := validClaims()
	expired.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))

	badRole := validClaims()
	badRole.Role = "ROOT"

	noUser := validClaims()
	noUser.UserID = 0

	tests := []struct {
		name   string
		header string
	}{
		{name: "missing header", header: ""},
		{name: "not bearer", header: "Basic abc"},
		{name: "garbage", header: "Bearer not-a-jwt"},
		{name: "wrong secret", header: "Bearer " + sign(t, jwt.SigningMethodHS256, []byte("other"), validClaims())},
		{name: "wrong algorithm", header: "Bearer " + sign(t, jwt.SigningMethodHS512, []byte(secret), validClaims())},
		{name: "expired", header: "Bearer " + sign(t, jwt.SigningMethodHS256, []byte(secret), expired)},
		{name: "unknown role", header: "Bearer " + sign(t, jwt.SigningMethodHS256, []byte(secret), badRole)},
		{name: "no user", header: "Bearer " + sign(t, jwt.SigningMethodHS256, []byte(secret), noUser)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, requester := serveWithAuth("", tt.header)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Nil(t, requester)
			assert.Contains(t, rec.Body.String(), "UNAUTHORIZED")
		})
	}
}

func TestAuth_WrongIssuer(t *testing.T) {
	token := sign(t, jwt.SigningMethodHS256, []byte(secret), validClaims())

	rec, _ := serveWithAuth("someone-else", "Bearer "+token)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
