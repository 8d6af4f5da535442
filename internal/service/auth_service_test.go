package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"gymbook/admin-app/internal/domain"
	"gymbook/admin-app/internal/identity"

	"github.com/golang-jwt/jwt/v4"
)

const testJWTSecret = "test-secret"

type authEnv struct {
	svc    AuthService
	idp    *fakeIdentity
	users  *fakeUserProfiles
	admins *fakeAllowlist
}

func newAuthEnv(t *testing.T) *authEnv {
	t.Helper()
	env := &authEnv{
		idp:    newFakeIdentity(),
		users:  newFakeUserProfiles(),
		admins: newFakeAllowlist(),
	}
	env.svc = NewAuthService(env.idp, env.users, env.admins, testJWTSecret, time.Hour)
	return env
}

func (e *authEnv) seedIdentity(t *testing.T, email, password string) string {
	t.Helper()
	rec, err := e.idp.Create(context.Background(), identity.CreateParams{Email: email, Password: password})
	if err != nil {
		t.Fatalf("seeding identity: %v", err)
	}
	return rec.UID
}

func parseToken(t *testing.T, token string) *jwtClaims {
	t.Helper()
	claims := &jwtClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(testJWTSecret), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token does not parse: %v", err)
	}
	return claims
}

func TestLoginWithAdminProfile(t *testing.T) {
	env := newAuthEnv(t)
	ctx := context.Background()

	uid := env.seedIdentity(t, "admin@example.com", "labai-slapta")
	if err := env.users.Set(ctx, &domain.UserProfile{ID: uid, Role: domain.RoleAdmin}); err != nil {
		t.Fatalf("seeding profile: %v", err)
	}

	token, profile, err := env.svc.Login(ctx, " Admin@Example.com ", "labai-slapta")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if profile == nil || profile.ID != uid {
		t.Fatalf("expected caller profile, got %+v", profile)
	}

	claims := parseToken(t, token)
	if claims.UserID != uid || claims.Role != domain.RoleAdmin {
		t.Fatalf("unexpected claims %+v", claims)
	}
	if claims.Issuer != "gymbook-admin" {
		t.Fatalf("unexpected issuer %q", claims.Issuer)
	}
}

func TestLoginAllowlistedWithoutProfile(t *testing.T) {
	env := newAuthEnv(t)
	ctx := context.Background()

	uid := env.seedIdentity(t, "root@example.com", "labai-slapta")
	if err := env.admins.Add(ctx, uid); err != nil {
		t.Fatalf("allow-listing: %v", err)
	}

	token, profile, err := env.svc.Login(ctx, "root@example.com", "labai-slapta")
	if err != nil {
		t.Fatalf("allow-listed login failed: %v", err)
	}
	if profile != nil {
		t.Fatalf("expected nil profile for allow-list-only admin, got %+v", profile)
	}
	if claims := parseToken(t, token); claims.Role != domain.RoleAdmin {
		t.Fatalf("allow-list-only admin gets the admin role claim, got %s", claims.Role)
	}
}

func TestLoginRejections(t *testing.T) {
	env := newAuthEnv(t)
	ctx := context.Background()

	adminID := env.seedIdentity(t, "admin@example.com", "labai-slapta")
	if err := env.users.Set(ctx, &domain.UserProfile{ID: adminID, Role: domain.RoleAdmin}); err != nil {
		t.Fatalf("seeding profile: %v", err)
	}

	trainerUID := env.seedIdentity(t, "trainer@example.com", "slaptas1")
	if err := env.users.Set(ctx, &domain.UserProfile{ID: trainerUID, Role: domain.RoleTrainer}); err != nil {
		t.Fatalf("seeding profile: %v", err)
	}

	disabledUID := env.seedIdentity(t, "off@example.com", "slaptas1")
	env.idp.records[disabledUID].Disabled = true

	cases := map[string]struct {
		email    string
		password string
		want     error
	}{
		"empty email":      {email: "", password: "x", want: ErrAuthenticationFailed},
		"empty password":   {email: "admin@example.com", password: "", want: ErrAuthenticationFailed},
		"unknown email":    {email: "nobody@example.com", password: "x", want: ErrAuthenticationFailed},
		"wrong password":   {email: "admin@example.com", password: "neteisinga", want: ErrAuthenticationFailed},
		"disabled account": {email: "off@example.com", password: "slaptas1", want: ErrAccountDisabled},
		"no console access": {
			email: "trainer@example.com", password: "slaptas1", want: ErrNotConsoleAdmin,
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, _, err := env.svc.Login(ctx, tc.email, tc.password)
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestLoginTrainerBecomesAdminViaAllowlist(t *testing.T) {
	env := newAuthEnv(t)
	ctx := context.Background()

	uid := env.seedIdentity(t, "trainer@example.com", "slaptas1")
	if err := env.users.Set(ctx, &domain.UserProfile{ID: uid, Role: domain.RoleTrainer}); err != nil {
		t.Fatalf("seeding profile: %v", err)
	}
	if err := env.admins.Add(ctx, uid); err != nil {
		t.Fatalf("allow-listing: %v", err)
	}

	token, _, err := env.svc.Login(ctx, "trainer@example.com", "slaptas1")
	if err != nil {
		t.Fatalf("allow-listed trainer must log in: %v", err)
	}
	// The token carries the stored role; authorization still re-reads the
	// profile per call, so this grants console entry only.
	if claims := parseToken(t, token); claims.Role != domain.RoleTrainer {
		t.Fatalf("expected trainer role claim, got %s", claims.Role)
	}
}
