package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Agora/internal/core/identity"
)

const testSecret = "test-secret"

func newTestToken(t *testing.T, claims jwt.Claims, method jwt.SigningMethod, key any) string {
	t.Helper()
	token, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return token
}

// captureCaller records the caller seen by the wrapped handler
func captureCaller(got **identity.Caller, called *bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*called = true
		*got = GetCaller(r)
		w.WriteHeader(http.StatusOK)
	})
}

func TestRequireAuth_BearerToken(t *testing.T) {
	m := NewJWTAuthMiddleware(testSecret, nil)
	token, err := IssueToken(testSecret, &identity.Caller{ID: "u1", DisplayName: "Ann", Username: "ann"}, time.Hour)
	require.NoError(t, err)

	var got *identity.Caller
	var called bool
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()

	m.RequireAuth(captureCaller(&got, &called)).ServeHTTP(w, req)

	require.True(t, called)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, &identity.Caller{ID: "u1", DisplayName: "Ann", Username: "ann"}, got)
}

func TestRequireAuth_CookieTokenWithLegacyIDClaim(t *testing.T) {
	m := NewJWTAuthMiddleware(testSecret, nil)
	token := newTestToken(t, jwt.MapClaims{
		"id":  "legacy-user",
		"exp": time.Now().Add(time.Hour).Unix(),
	}, jwt.SigningMethodHS256, []byte(testSecret))

	var got *identity.Caller
	var called bool
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.AddCookie(&http.Cookie{Name: TokenCookieName, Value: token})
	w := httptest.NewRecorder()

	m.RequireAuth(captureCaller(&got, &called)).ServeHTTP(w, req)

	require.True(t, called)
	require.NotNil(t, got)
	assert.Equal(t, "legacy-user", got.ID)
}

func TestRequireAuth_Rejects(t *testing.T) {
	m := NewJWTAuthMiddleware(testSecret, nil)

	tests := []struct {
		name   string
		header string
	}{
		{name: "missing header", header: ""},
		{name: "not bearer", header: "Basic abc"},
		{name: "garbage token", header: "Bearer not.a.jwt"},
		{
			name: "wrong secret",
			header: "Bearer " + newTestToken(t, jwt.MapClaims{
				"sub": "u1", "exp": time.Now().Add(time.Hour).Unix(),
			}, jwt.SigningMethodHS256, []byte("other-secret")),
		},
		{
			name: "expired",
			header: "Bearer " + newTestToken(t, jwt.MapClaims{
				"sub": "u1", "exp": time.Now().Add(-time.Hour).Unix(),
			}, jwt.SigningMethodHS256, []byte(testSecret)),
		},
		{
			name: "unsigned",
			header: "Bearer " + newTestToken(t, jwt.MapClaims{
				"sub": "u1", "exp": time.Now().Add(time.Hour).Unix(),
			}, jwt.SigningMethodNone, jwt.UnsafeAllowNoneSignatureType),
		},
		{
			name: "no subject",
			header: "Bearer " + newTestToken(t, jwt.MapClaims{
				"exp": time.Now().Add(time.Hour).Unix(),
			}, jwt.SigningMethodHS256, []byte(testSecret)),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got *identity.Caller
			var called bool
			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()

			m.RequireAuth(captureCaller(&got, &called)).ServeHTTP(w, req)

			assert.False(t, called)
			assert.Equal(t, http.StatusUnauthorized, w.Code)

			var body map[string]string
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, "auth_required", body["error"])
		})
	}
}

func TestOptionalAuth(t *testing.T) {
	m := NewJWTAuthMiddleware(testSecret, nil)
	token, err := IssueToken(testSecret, &identity.Caller{ID: "u1"}, time.Hour)
	require.NoError(t, err)

	t.Run("valid token sets caller", func(t *testing.T) {
		var got *identity.Caller
		var called bool
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set("Authorization", "Bearer "+token)

		m.OptionalAuth(captureCaller(&got, &called)).ServeHTTP(httptest.NewRecorder(), req)

		require.True(t, called)
		require.NotNil(t, got)
		assert.Equal(t, "u1", got.ID)
	})

	t.Run("invalid token is ignored", func(t *testing.T) {
		var got *identity.Caller
		var called bool
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set("Authorization", "Bearer nope")

		m.OptionalAuth(captureCaller(&got, &called)).ServeHTTP(httptest.NewRecorder(), req)

		assert.True(t, called)
		assert.Nil(t, got)
	})

	t.Run("no token", func(t *testing.T) {
		var got *identity.Caller
		var called bool
		req := httptest.NewRequest(http.MethodGet, "/test", nil)

		m.OptionalAuth(captureCaller(&got, &called)).ServeHTTP(httptest.NewRecorder(), req)

		assert.True(t, called)
		assert.Nil(t, got)
	})
}

func TestSetTestCaller(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	assert.Nil(t, GetCaller(req))

	req = req.WithContext(SetTestCaller(req.Context(), &identity.Caller{ID: "u9"}))
	assert.Equal(t, "u9", GetCaller(req).ID)
}
