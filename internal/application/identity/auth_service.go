package identity

import (
	"context"
	"time"

	"github.com/KhaledMKhaled/FullTracker-sub002/internal/domain/shared"
	"github.com/KhaledMKhaled/FullTracker-sub002/internal/infrastructure/auth"
	"github.com/KhaledMKhaled/FullTracker-sub002/internal/infrastructure/config"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// userNamespace derives stable user IDs from usernames, since accounts are
// declared in configuration and carry no stored ID.
var userNamespace = uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")

// AuthService authenticates the accounts declared in configuration and issues
// JWTs. There is no user table; credentials live in config as bcrypt hashes.
type AuthService struct {
	users     []config.AuthUser
	tokens    *auth.JWTService
	blacklist auth.TokenBlacklist
	logger    *zap.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(cfg config.AuthConfig, tokens *auth.JWTService, blacklist auth.TokenBlacklist, logger *zap.Logger) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		users:     cfg.Users,
		tokens:    tokens,
		blacklist: blacklist,
		logger:    logger,
	}
}

// LoginRequest carries submitted credentials
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse bundles the issued token with the authenticated identity
type LoginResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
	Username    string    `json:"username"`
	Role        string    `json:"role"`
}

// Login verifies credentials against the configured accounts and issues a JWT
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	user, ok := s.findUser(req.Username)
	if !ok {
		// Burn a comparison anyway so unknown and wrong-password attempts
		// take the same time.
		_ = bcrypt.CompareHashAndPassword([]byte("$2a$10$invalidinvalidinvalidinvalidinvalidinvalid"), []byte(req.Password))
		return nil, shared.NewDomainError("UNAUTHORIZED", "Invalid username or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		s.logger.Warn("failed login attempt", zap.String("username", req.Username))
		return nil, shared.NewDomainError("UNAUTHORIZED", "Invalid username or password")
	}

	userID := uuid.NewSHA1(userNamespace, []byte(user.Username))
	token, err := s.tokens.Generate(userID, user.Username, auth.Role(user.Role))
	if err != nil {
		return nil, err
	}

	s.logger.Info("user logged in",
		zap.String("username", user.Username),
		zap.String("role", user.Role))

	return &LoginResponse{
		AccessToken: token.AccessToken,
		TokenType:   token.TokenType,
		ExpiresAt:   token.ExpiresAt,
		Username:    user.Username,
		Role:        user.Role,
	}, nil
}

// Logout revokes the presented token for its remaining lifetime
func (s *AuthService) Logout(ctx context.Context, claims *auth.Claims) error {
	ttl := claims.RemainingTTL()
	if ttl <= 0 {
		return nil
	}
	if err := s.blacklist.AddToBlacklist(ctx, claims.ID, ttl); err != nil {
		return err
	}

	s.logger.Info("user logged out", zap.String("username", claims.Username))
	return nil
}

func (s *AuthService) findUser(username string) (config.AuthUser, bool) {
	for _, u := range s.users {
		if u.Username == username {
			return u, true
		}
	}
	return config.AuthUser{}, false
}
