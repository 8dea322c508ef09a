package identity

import (
	"context"
	"testing"
	"time"

	"github.com/KhaledMKhaled/FullTracker-sub002/internal/domain/shared"
	"github.com/KhaledMKhaled/FullTracker-sub002/internal/infrastructure/auth"
	"github.com/KhaledMKhaled/FullTracker-sub002/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func testAuthService(t *testing.T) (*AuthService, *auth.JWTService, *auth.InMemoryTokenBlacklist) {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("correct horse"), bcrypt.MinCost)
	require.NoError(t, err)

	jwtSvc := auth.NewJWTService(config.JWTConfig{
		Secret:                "test-secret-test-secret-test-secret",
		AccessTokenExpiration: time.Hour,
		Issuer:                "fulltracker-test",
	})
	blacklist := auth.NewInMemoryTokenBlacklist()

	svc := NewAuthService(config.AuthConfig{
		Users: []config.AuthUser{
			{Username: "khaled", PasswordHash: string(hash), Role: "admin"},
		},
	}, jwtSvc, blacklist, nil)

	return svc, jwtSvc, blacklist
}

func TestAuthService_Login_Success(t *testing.T) {
	svc, jwtSvc, _ := testAuthService(t)

	resp, err := svc.Login(context.Background(), LoginRequest{
		Username: "khaled",
		Password: "correct horse",
	})

	require.NoError(t, err)
	assert.Equal(t, "khaled", resp.Username)
	assert.Equal(t, "admin", resp.Role)
	assert.Equal(t, "Bearer", resp.TokenType)

	claims, err := jwtSvc.Validate(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "khaled", claims.Username)
	assert.Equal(t, auth.RoleAdmin, claims.Role)
}

func TestAuthService_Login_StableUserID(t *testing.T) {
	svc, jwtSvc, _ := testAuthService(t)
	ctx := context.Background()

	first, err := svc.Login(ctx, LoginRequest{Username: "khaled", Password: "correct horse"})
	require.NoError(t, err)
	second, err := svc.Login(ctx, LoginRequest{Username: "khaled", Password: "correct horse"})
	require.NoError(t, err)

	firstClaims, err := jwtSvc.Validate(first.AccessToken)
	require.NoError(t, err)
	secondClaims, err := jwtSvc.Validate(second.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, firstClaims.UserID, secondClaims.UserID)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	svc, _, _ := testAuthService(t)

	_, err := svc.Login(context.Background(), LoginRequest{
		Username: "khaled",
		Password: "wrong",
	})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "UNAUTHORIZED", domainErr.Code)
}

func TestAuthService_Login_UnknownUser(t *testing.T) {
	svc, _, _ := testAuthService(t)

	_, err := svc.Login(context.Background(), LoginRequest{
		Username: "nobody",
		Password: "whatever",
	})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "UNAUTHORIZED", domainErr.Code)
}

func TestAuthService_Logout_BlacklistsToken(t *testing.T) {
	svc, jwtSvc, blacklist := testAuthService(t)
	ctx := context.Background()

	resp, err := svc.Login(ctx, LoginRequest{Username: "khaled", Password: "correct horse"})
	require.NoError(t, err)
	claims, err := jwtSvc.Validate(resp.AccessToken)
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, claims))

	revoked, err := blacklist.IsBlacklisted(ctx, claims.ID)
	require.NoError(t, err)
	assert.True(t, revoked)
}
