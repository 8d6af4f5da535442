package service

import (
	"context"
	"errors"

	"gymbook/admin-app/internal/apperr"
	"gymbook/admin-app/internal/repository"
)

// AdminGuard is the authorization check every admin operation runs before any
// other processing. It reads the caller's profile fresh from the store on
// every call — no caching and no trust in token claims — so a role change
// takes effect on the very next call.
type AdminGuard struct {
	users repository.UserProfileRepository
}

func NewAdminGuard(users repository.UserProfileRepository) *AdminGuard {
	return &AdminGuard{users: users}
}

// RequireAdmin fails unless callerUID is non-empty and a profile with role
// "admin" exists for it. The check is a mandatory precondition: callers must
// stop before any mutation when it fails.
func (g *AdminGuard) RequireAdmin(ctx context.Context, callerUID string) error {
	if callerUID == "" {
		return apperr.Unauthenticated("sign-in required")
	}

	profile, err := g.users.GetByID(ctx, callerUID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.PermissionDenied("user profile not found")
		}
		return apperr.Internal(err)
	}

	if !profile.IsAdmin() {
		return apperr.PermissionDenied("only an admin may perform this action")
	}
	return nil
}
