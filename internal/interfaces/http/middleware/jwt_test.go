package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/KhaledMKhaled/FullTracker-sub002/internal/infrastructure/auth"
	"github.com/KhaledMKhaled/FullTracker-sub002/internal/infrastructure/config"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestJWTService(expiration time.Duration) *auth.JWTService {
	return auth.NewJWTService(config.JWTConfig{
		Secret:                "test-secret",
		AccessTokenExpiration: expiration,
		Issuer:                "fulltracker-test",
	})
}

// failingBlacklist simulates a blacklist store outage
type failingBlacklist struct{}

func (failingBlacklist) AddToBlacklist(context.Context, string, time.Duration) error {
	return assert.AnError
}

func (failingBlacklist) IsBlacklisted(context.Context, string) (bool, error) {
	return false, assert.AnError
}

func setupRouter(cfg JWTConfig) *gin.Engine {
	router := gin.New()
	router.Use(JWTAuth(cfg))
	router.GET("/protected", func(c *gin.Context) {
		claims, ok := GetClaims(c)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "no claims"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"username": claims.Username})
	})
	router.GET("/health", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return router
}

func doRequest(router *gin.Engine, path, authHeader string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	router.ServeHTTP(w, req)
	return w
}

func TestJWTAuthValidToken(t *testing.T) {
	svc := newTestJWTService(time.Hour)
	token, err := svc.Generate(uuid.New(), "khaled", auth.RoleAccountant)
	require.NoError(t, err)

	router := setupRouter(JWTConfig{JWTService: svc})
	w := doRequest(router, "/protected", "Bearer "+token.AccessToken)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "khaled")
}

func TestJWTAuthMissingHeader(t *testing.T) {
	router := setupRouter(JWTConfig{JWTService: newTestJWTService(time.Hour)})
	w := doRequest(router, "/protected", "")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuthMalformedHeader(t *testing.T) {
	svc := newTestJWTService(time.Hour)
	token, err := svc.Generate(uuid.New(), "khaled", auth.RoleAdmin)
	require.NoError(t, err)

	router := setupRouter(JWTConfig{JWTService: svc})

	tests := []struct {
		name   string
		header string
	}{
		{"no scheme", token.AccessToken},
		{"wrong scheme", "Basic " + token.AccessToken},
		{"empty token", "Bearer "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(router, "/protected", tt.header)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}

func TestJWTAuthExpiredToken(t *testing.T) {
	svc := newTestJWTService(-time.Hour)
	token, err := svc.Generate(uuid.New(), "khaled", auth.RoleAdmin)
	require.NoError(t, err)

	router := setupRouter(JWTConfig{JWTService: newTestJWTService(time.Hour)})
	w := doRequest(router, "/protected", "Bearer "+token.AccessToken)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "expired")
}

func TestJWTAuthWrongSecret(t *testing.T) {
	other := auth.NewJWTService(config.JWTConfig{
		Secret:                "different-secret",
		AccessTokenExpiration: time.Hour,
		Issuer:                "fulltracker-test",
	})
	token, err := other.Generate(uuid.New(), "khaled", auth.RoleAdmin)
	require.NoError(t, err)

	router := setupRouter(JWTConfig{JWTService: newTestJWTService(time.Hour)})
	w := doRequest(router, "/protected", "Bearer "+token.AccessToken)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuthSkipPaths(t *testing.T) {
	router := setupRouter(JWTConfig{
		JWTService: newTestJWTService(time.Hour),
		SkipPaths:  []string{"/health"},
	})

	w := doRequest(router, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = doRequest(router, "/protected", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuthSkipPathPrefixes(t *testing.T) {
	router := gin.New()
	router.Use(JWTAuth(JWTConfig{
		JWTService:       newTestJWTService(time.Hour),
		SkipPathPrefixes: []string{"/public/"},
	}))
	router.GET("/public/docs", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := doRequest(router, "/public/docs", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestJWTAuthBlacklistedToken(t *testing.T) {
	svc := newTestJWTService(time.Hour)
	token, err := svc.Generate(uuid.New(), "khaled", auth.RoleAdmin)
	require.NoError(t, err)

	claims, err := svc.Validate(token.AccessToken)
	require.NoError(t, err)

	blacklist := auth.NewInMemoryTokenBlacklist()
	require.NoError(t, blacklist.AddToBlacklist(context.Background(), claims.ID, time.Hour))

	router := setupRouter(JWTConfig{JWTService: svc, TokenBlacklist: blacklist})
	w := doRequest(router, "/protected", "Bearer "+token.AccessToken)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "revoked")
}

func TestJWTAuthBlacklistFailureDoesNotBlock(t *testing.T) {
	svc := newTestJWTService(time.Hour)
	token, err := svc.Generate(uuid.New(), "khaled", auth.RoleAdmin)
	require.NoError(t, err)

	router := setupRouter(JWTConfig{JWTService: svc, TokenBlacklist: failingBlacklist{}})
	w := doRequest(router, "/protected", "Bearer "+token.AccessToken)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireAdmin(t *testing.T) {
	svc := newTestJWTService(time.Hour)

	router := gin.New()
	router.Use(JWTAuth(JWTConfig{JWTService: svc}))
	router.GET("/admin-only", RequireAdmin(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	adminToken, err := svc.Generate(uuid.New(), "admin", auth.RoleAdmin)
	require.NoError(t, err)
	accountantToken, err := svc.Generate(uuid.New(), "accountant", auth.RoleAccountant)
	require.NoError(t, err)

	w := doRequest(router, "/admin-only", "Bearer "+adminToken.AccessToken)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doRequest(router, "/admin-only", "Bearer "+accountantToken.AccessToken)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireAdminWithoutAuth(t *testing.T) {
	router := gin.New()
	router.GET("/admin-only", RequireAdmin(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := doRequest(router, "/admin-only", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
