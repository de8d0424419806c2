package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/midgard/midgard-core/internal/domain"
)

func TestAuthenticateMissingCredential(t *testing.T) {
	tokens := NewJWTService("guard-secret", time.Hour)
	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)

	_, err := Authenticate(req, tokens, BearerHeader, Cookie(TokenCookieName))

	domainErr, ok := domain.As(err)
	require.True(t, ok)
	assert.Equal(t, domain.KindUnauthorized, domainErr.Kind)
	assert.Equal(t, "Token não informado", domainErr.Message)
}

func TestAuthenticateBearerHeader(t *testing.T) {
	tokens := NewJWTService("guard-secret", time.Hour)
	signed, err := tokens.Sign(TokenPayload{Sub: "user-123", Email: "a@x.com"})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+signed)

	principal, err := Authenticate(req, tokens, BearerHeader)
	require.NoError(t, err)
	assert.Equal(t, "user-123", principal.UserID)
	assert.Equal(t, "a@x.com", principal.Email)
}

func TestAuthenticateCookieFallback(t *testing.T) {
	tokens := NewJWTService("guard-secret", time.Hour)
	signed, err := tokens.Sign(TokenPayload{Sub: "user-123", Email: "a@x.com"})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req.AddCookie(&http.Cookie{Name: TokenCookieName, Value: signed})

	principal, err := Authenticate(req, tokens, BearerHeader, Cookie(TokenCookieName))
	require.NoError(t, err)
	assert.Equal(t, "user-123", principal.UserID)
}

func TestAuthenticateInvalidToken(t *testing.T) {
	tokens := NewJWTService("guard-secret", time.Hour)
	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req.Header.Set("Authorization", "Bearer garbage")

	_, err := Authenticate(req, tokens, BearerHeader)

	domainErr, ok := domain.As(err)
	require.True(t, ok)
	assert.Equal(t, domain.KindUnauthorized, domainErr.Kind)
	assert.Equal(t, "Token inválido ou expirado", domainErr.Message)
}

func TestGuardNeverInvokesHandlerOnFailure(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tokens := NewJWTService("guard-secret", time.Hour)

	invoked := false
	router := gin.New()
	router.GET("/protected", Guard(tokens), func(c *gin.Context) {
		invoked = true
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.False(t, invoked)
}

func TestGuardExposesPrincipal(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tokens := NewJWTService("guard-secret", time.Hour)
	signed, err := tokens.Sign(TokenPayload{Sub: "user-123", Email: "a@x.com"})
	require.NoError(t, err)

	router := gin.New()
	router.GET("/protected", Guard(tokens), func(c *gin.Context) {
		principal, ok := CurrentPrincipal(c)
		require.True(t, ok)
		c.String(http.StatusOK, principal.UserID)
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "user-123", recorder.Body.String())
}
