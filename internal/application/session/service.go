package session

import (
	"crypto/subtle"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sent-robotics/robot-relay/internal/config"
	"github.com/sent-robotics/robot-relay/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

// TokenSigner mints session tokens. Satisfied by the jwt provider.
type TokenSigner interface {
	Sign(username, role string) (string, error)
}

// Service is the Access Gate: it turns credentials into a role-carrying
// session token. The user table is injected so a real identity provider
// can replace the static env table without touching anything else.
type Service interface {
	Login(req domain.LoginRequest) (role, token string, err error)
}

type service struct {
	users  map[string]domain.User
	signer TokenSigner
}

func NewService(users map[string]domain.User, signer TokenSigner) Service {
	return &service{users: users, signer: signer}
}

// StaticUsers builds the fixed two-account table from configuration. An
// account whose password is unset stays in the table but can never log in.
func StaticUsers(cfg *config.Config) map[string]domain.User {
	return map[string]domain.User{
		cfg.AdminUser:  {Username: cfg.AdminUser, Secret: cfg.AdminPass, Role: domain.RoleAdmin},
		cfg.NormalUser: {Username: cfg.NormalUser, Secret: cfg.NormalPass, Role: domain.RoleUser},
	}
}

func (s *service) Login(req domain.LoginRequest) (string, string, error) {
	username := strings.TrimSpace(req.Username)
	password := strings.TrimSpace(req.Password)

	u, ok := s.users[username]
	if !ok || u.Secret == "" || !secretMatches(u.Secret, password) {
		slog.Info("login rejected", "username", username)
		return "", "", domain.ErrUnauthorized
	}

	token, err := s.signer.Sign(u.Username, u.Role)
	if err != nil {
		return "", "", fmt.Errorf("sign session token: %w", err)
	}
	slog.Info("login accepted", "username", username, "role", u.Role)
	return u.Role, token, nil
}

// secretMatches compares the presented password against the configured
// secret: bcrypt when the secret looks like a bcrypt hash, constant-time
// equality otherwise.
func secretMatches(secret, password string) bool {
	if strings.HasPrefix(secret, "$2a$") || strings.HasPrefix(secret, "$2b$") || strings.HasPrefix(secret, "$2y$") {
		return bcrypt.CompareHashAndPassword([]byte(secret), []byte(password)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(secret), []byte(password)) == 1
}
