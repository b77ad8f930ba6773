package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testTokenValidator is a test implementation of TokenValidator for unit tests.
type testTokenValidator struct {
	validTokens map[string]*testPrincipal
}

func newTestTokenValidator() *testTokenValidator {
	return &testTokenValidator{validTokens: make(map[string]*testPrincipal)}
}

func (v *testTokenValidator) addValidToken(token, username string, isAdmin bool) {
	v.validTokens[token] = &testPrincipal{username: username, isAdmin: isAdmin}
}

func (v *testTokenValidator) ValidateToken(tokenString string) (Principal, error) {
	p, ok := v.validTokens[tokenString]
	if !ok {
		return nil, fmt.Errorf("invalid token")
	}
	return p, nil
}

type testPrincipal struct {
	username string
	isAdmin  bool
}

func (p *testPrincipal) GetUsername() string { return p.username }
func (p *testPrincipal) GetIsAdmin() bool    { return p.isAdmin }

// echoHandler reports the caller name, or "anonymous".
var echoHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	if p, ok := GetPrincipal(r); ok {
		_, _ = w.Write([]byte(p.GetUsername()))
		return
	}
	_, _ = w.Write([]byte("anonymous"))
})

func TestAuthenticate(t *testing.T) {
	v := newTestTokenValidator()
	v.addValidToken("admin-token", "admin", true)

	tests := []struct {
		name   string
		header string
		want   string
	}{
		{"valid token", "Bearer admin-token", "admin"},
		{"lowercase bearer", "bearer admin-token", "admin"},
		{"no header", "", "anonymous"},
		{"invalid token", "Bearer nope", "anonymous"},
		{"malformed header", "Token admin-token", "anonymous"},
		{"extra parts", "Bearer admin-token extra", "anonymous"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/jobs", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()

			Authenticate(v)(echoHandler).ServeHTTP(w, req)

			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, tt.want, w.Body.String())
		})
	}
}

func TestRequireAdmin(t *testing.T) {
	v := newTestTokenValidator()
	v.addValidToken("admin-token", "admin", true)
	v.addValidToken("user-token", "u1", false)

	handler := Authenticate(v)(RequireAdmin(echoHandler))

	tests := []struct {
		name       string
		header     string
		wantStatus int
	}{
		{"admin allowed", "Bearer admin-token", http.StatusOK},
		{"non-admin rejected", "Bearer user-token", http.StatusUnauthorized},
		{"anonymous rejected", "", http.StatusUnauthorized},
		{"bad token rejected", "Bearer forged", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodDelete, "/jobs/1", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			require.Equal(t, tt.wantStatus, w.Code)
			if tt.wantStatus == http.StatusUnauthorized {
				assert.JSONEq(t, `{"error":"Unauthorized"}`, w.Body.String())
			}
		})
	}
}

func TestWithPrincipal(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	_, ok := GetPrincipal(req)
	assert.False(t, ok)

	req = req.WithContext(WithPrincipal(req.Context(), &testPrincipal{username: "x", isAdmin: true}))
	p, ok := GetPrincipal(req)
	require.True(t, ok)
	assert.Equal(t, "x", p.GetUsername())
}
