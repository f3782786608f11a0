package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"Agora/internal/core/identity"
)

// Context keys for storing caller information
type contextKey string

const (
	CallerKey contextKey = "caller"
)

// TokenCookieName is the cookie the web client stores its session token in
const TokenCookieName = "token"

// Claims is the identity token payload. The user id is read from sub, or
// from id for tokens minted by the legacy web client.
type Claims struct {
	UserID   string `json:"id,omitempty"`
	Name     string `json:"name,omitempty"`
	Username string `json:"username,omitempty"`
	jwt.RegisteredClaims
}

// Caller converts verified claims into a caller identity
func (c *Claims) Caller() *identity.Caller {
	id := c.Subject
	if id == "" {
		id = c.UserID
	}
	return &identity.Caller{
		ID:          strings.TrimSpace(id),
		DisplayName: strings.TrimSpace(c.Name),
		Username:    strings.TrimSpace(c.Username),
	}
}

var ErrMissingToken = errors.New("missing token")

// JWTAuthMiddleware verifies HS256 identity tokens
// Tokens are read from the Authorization header (Bearer) or the token cookie
type JWTAuthMiddleware struct {
	logger *slog.Logger
	secret []byte
}

// NewJWTAuthMiddleware creates a new auth middleware
func NewJWTAuthMiddleware(secret string, logger *slog.Logger) *JWTAuthMiddleware {
	if logger == nil {
		logger = slog.Default()
	}
	return &JWTAuthMiddleware{secret: []byte(secret), logger: logger}
}

// RequireAuth middleware ensures the request carries a valid token
// If not authenticated, returns 401
// If authenticated, injects the caller into context
func (m *JWTAuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, err := tokenFromRequest(r)
		if err != nil {
			writeAuthError(w, "Authentication required")
			return
		}

		caller, err := m.Verify(token)
		if err != nil {
			m.logger.Info("auth failure",
				"ip", r.RemoteAddr,
				"method", r.Method,
				"path", r.URL.Path,
				"error", err)
			writeAuthError(w, "Invalid or expired token")
			return
		}

		next.ServeHTTP(w, r.WithContext(SetCaller(r.Context(), caller)))
	})
}

// OptionalAuth middleware loads the caller if a valid token is present, but
// doesn't require it. Invalid tokens are ignored.
func (m *JWTAuthMiddleware) OptionalAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, err := tokenFromRequest(r)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		caller, err := m.Verify(token)
		if err != nil {
			m.logger.Debug("optional auth failed", "error", err)
			next.ServeHTTP(w, r)
			return
		}

		next.ServeHTTP(w, r.WithContext(SetCaller(r.Context(), caller)))
	})
}

// Verify checks the token signature and expiry and returns its caller
func (m *JWTAuthMiddleware) Verify(token string) (*identity.Caller, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return m.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, fmt.Errorf("failed to verify token: %w", err)
	}

	caller := claims.Caller()
	if !caller.Authenticated() {
		return nil, errors.New("token has no user id")
	}
	return caller, nil
}

// IssueToken mints an HS256 token for caller valid for ttl
func IssueToken(secret string, caller *identity.Caller, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Name:     caller.DisplayName,
		Username: caller.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   caller.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

func tokenFromRequest(r *http.Request) (string, error) {
	if authHeader := r.Header.Get("Authorization"); authHeader != "" {
		token, ok := strings.CutPrefix(authHeader, "Bearer ")
		if ok && strings.TrimSpace(token) != "" {
			return strings.TrimSpace(token), nil
		}
	}
	if cookie, err := r.Cookie(TokenCookieName); err == nil && cookie.Value != "" {
		return cookie.Value, nil
	}
	return "", ErrMissingToken
}

// GetCaller extracts the caller from the request context
// Returns nil if not authenticated
func GetCaller(r *http.Request) *identity.Caller {
	return CallerFromContext(r.Context())
}

// CallerFromContext extracts the caller from a context
func CallerFromContext(ctx context.Context) *identity.Caller {
	caller, _ := ctx.Value(CallerKey).(*identity.Caller)
	return caller
}

// SetCaller returns a context carrying caller
func SetCaller(ctx context.Context, caller *identity.Caller) context.Context {
	return context.WithValue(ctx, CallerKey, caller)
}

// SetTestCaller sets the caller in the context for testing purposes
// This function should ONLY be used in tests to mock authenticated users
func SetTestCaller(ctx context.Context, caller *identity.Caller) context.Context {
	return SetCaller(ctx, caller)
}

// writeAuthError writes a JSON error response for authentication failures
func writeAuthError(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	if err := json.NewEncoder(w).Encode(map[string]string{
		"error":   "auth_required",
		"message": message,
	}); err != nil {
		slog.Error("failed to write auth error response", "error", err)
	}
}
