package identity

import (
	"context"
	"errors"
)

// Errors returned by Provider implementations.
var (
	ErrEmailTaken       = errors.New("identity with this email already exists")
	ErrIdentityNotFound = errors.New("identity not found")
	ErrBadCredentials   = errors.New("invalid email or password")
	ErrDisabled         = errors.New("identity is disabled")
)

// Record is one authenticatable principal as the provider sees it. The
// password credential is write-only and never appears here.
type Record struct {
	UID         string
	Email       string
	DisplayName string
	Disabled    bool
	Claims      map[string]string
}

// CreateParams carries the attributes for a new principal.
type CreateParams struct {
	Email       string
	Password    string
	DisplayName string
	Disabled    bool
}

// Provider is the identity-provider collaborator: it owns authenticatable
// principals and their credentials. Everything else in the system references
// a principal only by its uid.
type Provider interface {
	// Create provisions a principal. Fails with ErrEmailTaken when an
	// identity with the same email already exists.
	Create(ctx context.Context, params CreateParams) (*Record, error)

	GetByUID(ctx context.Context, uid string) (*Record, error)
	GetByEmail(ctx context.Context, email string) (*Record, error)

	// VerifyPassword checks a credential for login. ErrBadCredentials on
	// unknown email or wrong password, ErrDisabled on a disabled identity.
	VerifyPassword(ctx context.Context, email, password string) (*Record, error)

	// SetClaims replaces the custom claims attached to the identity. Claims
	// are a convenience signal baked into future tokens, never the
	// authorization source of truth.
	SetClaims(ctx context.Context, uid string, claims map[string]string) error

	// Delete removes the principal. ErrIdentityNotFound when the uid is
	// already gone.
	Delete(ctx context.Context, uid string) error
}
