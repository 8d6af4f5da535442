package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"gymbook/admin-app/internal/domain"
	"gymbook/admin-app/internal/identity"
	"gymbook/admin-app/internal/repository"

	"github.com/golang-jwt/jwt/v4"
)

// --- Error Definitions ---
var (
	ErrAuthenticationFailed = errors.New("authentication failed: invalid email or password")
	ErrAccountDisabled      = errors.New("account is disabled")
	ErrNotConsoleAdmin      = errors.New("account has no console access")
	ErrTokenGeneration      = errors.New("failed to generate authentication token")
)

// AuthService handles console login. Access requires the identity to be on
// the admins allow-list or the user profile to carry the admin role; the
// issued token's role claim is a convenience only — admin operations re-read
// the profile on every call.
type AuthService interface {
	Login(ctx context.Context, email, password string) (token string, profile *domain.UserProfile, err error)
	GetJWTSecret() string
}

type authService struct {
	idp           identity.Provider
	users         repository.UserProfileRepository
	admins        repository.AdminAllowlistRepository
	jwtSecret     string
	jwtExpiration time.Duration
}

// NewAuthService creates a new instance of authService.
func NewAuthService(
	idp identity.Provider,
	users repository.UserProfileRepository,
	admins repository.AdminAllowlistRepository,
	jwtSecret string,
	jwtExpiration time.Duration,
) AuthService {
	if jwtSecret == "" {
		panic("JWT secret cannot be empty") // Critical configuration
	}
	if jwtExpiration <= 0 {
		jwtExpiration = time.Hour * 1
	}
	return &authService{
		idp:           idp,
		users:         users,
		admins:        admins,
		jwtSecret:     jwtSecret,
		jwtExpiration: jwtExpiration,
	}
}

// Login authenticates an email+password pair and issues a JWT.
func (s *authService) Login(ctx context.Context, email, password string) (string, *domain.UserProfile, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return "", nil, ErrAuthenticationFailed
	}

	rec, err := s.idp.VerifyPassword(ctx, email, password)
	if err != nil {
		switch {
		case errors.Is(err, identity.ErrBadCredentials):
			return "", nil, ErrAuthenticationFailed
		case errors.Is(err, identity.ErrDisabled):
			return "", nil, ErrAccountDisabled
		default:
			return "", nil, err
		}
	}

	profile, err := s.users.GetByID(ctx, rec.UID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return "", nil, err
	}

	allowlisted, err := s.admins.IsAllowed(ctx, rec.UID)
	if err != nil {
		return "", nil, err
	}
	if !allowlisted && (profile == nil || !profile.IsAdmin()) {
		return "", nil, ErrNotConsoleAdmin
	}

	role := domain.RoleAdmin
	if profile != nil {
		role = profile.Role
	}

	token, err := s.generateJWT(rec.UID, role)
	if err != nil {
		return "", nil, ErrTokenGeneration
	}
	return token, profile, nil
}

// jwtClaims defines the structure of the JWT payload.
type jwtClaims struct {
	UserID string      `json:"uid"`
	Role   domain.Role `json:"role"`
	jwt.RegisteredClaims
}

// generateJWT creates a new signed token for the given uid.
func (s *authService) generateJWT(uid string, role domain.Role) (string, error) {
	expirationTime := time.Now().Add(s.jwtExpiration)
	claims := &jwtClaims{
		UserID: uid,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   uid,
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "gymbook-admin",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

// GetJWTSecret returns the JWT secret for middleware authentication
func (s *authService) GetJWTSecret() string {
	return s.jwtSecret
}
