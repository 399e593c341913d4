package auth

import (
	"context"
	"crypto/subtle"
	"fmt"
	"strings"
	"time"

	"Backend-Celestia-Admin/src/utils"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// Service authenticates the single organizer account configured through the environment.
type Service struct {
	username     string
	passwordHash []byte
	jwt          *utils.JWTManager
	blacklist    *utils.TokenBlacklist
	limiter      *LoginLimiter
	log          *logrus.Logger
}

func NewService(username, passwordHash string, jwt *utils.JWTManager, blacklist *utils.TokenBlacklist, limiter *LoginLimiter, log *logrus.Logger) *Service {
	return &Service{
		username:     username,
		passwordHash: []byte(passwordHash),
		jwt:          jwt,
		blacklist:    blacklist,
		limiter:      limiter,
		log:          log,
	}
}

type LoginResult struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
}

func (s *Service) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, utils.ValidationError("Username and password are required")
	}

	wait, err := s.limiter.Remaining(ctx, username)
	if err != nil {
		s.log.WithError(err).Warn("⚠️ login limiter unavailable")
	}
	if wait > 0 {
		return nil, utils.RateLimitedError(fmt.Sprintf(
			"Too many login attempts. Please try again in %d minutes and %d seconds.",
			int(wait.Minutes()), int(wait.Seconds())%60))
	}

	if !s.checkCredentials(username, password) {
		if err := s.limiter.Fail(ctx, username); err != nil {
			s.log.WithError(err).Warn("⚠️ failed to record login attempt")
		}
		s.log.WithField("username", username).Warn("⚠️ invalid login")
		return nil, utils.UnauthorizedError("Invalid credentials")
	}
	if err := s.limiter.Reset(ctx, username); err != nil {
		s.log.WithError(err).Warn("⚠️ failed to reset login attempts")
	}

	token, expiresAt, err := s.jwt.Generate(username, utils.RoleOrganizer)
	if err != nil {
		return nil, utils.InternalError(err)
	}
	s.log.WithField("username", username).Info("✅ organizer logged in")
	return &LoginResult{Token: token, ExpiresAt: expiresAt, Username: username, Role: utils.RoleOrganizer}, nil
}

func (s *Service) checkCredentials(username, password string) bool {
	if s.username == "" || len(s.passwordHash) == 0 {
		return false
	}
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.username)) == 1
	passOK := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password)) == nil
	return userOK && passOK
}

// Logout blacklists the token for the rest of its lifetime.
func (s *Service) Logout(ctx context.Context, token string) error {
	claims, err := s.jwt.Parse(token)
	if err != nil {
		return utils.UnauthorizedError("Invalid or expired token")
	}
	ttl := time.Until(claims.ExpiresAt.Time)
	if err := s.blacklist.Add(ctx, token, ttl); err != nil {
		return utils.InternalError(err)
	}
	s.log.WithField("username", claims.Username).Info("organizer logged out")
	return nil
}

// Verify parses a bearer token and rejects blacklisted ones.
func (s *Service) Verify(ctx context.Context, token string) (*utils.JWTClaims, error) {
	claims, err := s.jwt.Parse(token)
	if err != nil {
		return nil, utils.UnauthorizedError("Invalid or expired token")
	}
	revoked, err := s.blacklist.Contains(ctx, token)
	if err != nil {
		return nil, utils.InternalError(err)
	}
	if revoked {
		return nil, utils.UnauthorizedError("Token has been revoked")
	}
	return claims, nil
}
