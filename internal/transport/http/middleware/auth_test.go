package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sent-robotics/robot-relay/internal/config"
	"github.com/sent-robotics/robot-relay/internal/domain"
	jwtinfra "github.com/sent-robotics/robot-relay/internal/infrastructure/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testProvider() *jwtinfra.Provider {
	return jwtinfra.NewProvider(&config.Config{SessionSecret: "test-secret", SessionTTL: time.Hour})
}

func claimsEcho(t *testing.T, wantUser, wantRole string) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := ClaimsFromContext(r.Context())
		require.True(t, ok)
		assert.Equal(t, wantUser, claims.Username)
		assert.Equal(t, wantRole, claims.Role)
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuth_CookieToken(t *testing.T) {
	p := testProvider()
	token, err := p.Sign("admin", domain.RoleAdmin)
	require.NoError(t, err)

	r := httptest.NewRequest(http.MethodPost, "/clear", nil)
	r.AddCookie(&http.Cookie{Name: SessionCookie, Value: token})
	w := httptest.NewRecorder()

	Auth(p)(claimsEcho(t, "admin", domain.RoleAdmin)).ServeHTTP(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuth_BearerToken(t *testing.T) {
	p := testProvider()
	token, err := p.Sign("user", domain.RoleUser)
	require.NoError(t, err)

	r := httptest.NewRequest(http.MethodPost, "/clear", nil)
	r.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()

	Auth(p)(claimsEcho(t, "user", domain.RoleUser)).ServeHTTP(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuth_MissingToken(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/clear", nil)
	w := httptest.NewRecorder()

	Auth(testProvider())(claimsEcho(t, "", "")).ServeHTTP(w, r)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"login required"}`, w.Body.String())
}

func TestAuth_InvalidToken(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/clear", nil)
	r.AddCookie(&http.Cookie{Name: SessionCookie, Value: "garbage"})
	w := httptest.NewRecorder()

	Auth(testProvider())(claimsEcho(t, "", "")).ServeHTTP(w, r)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
