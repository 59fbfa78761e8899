// Package auth implements PIN-based authentication and JWT session tokens
// for platform users.
package auth

import (
	"context"

	"github.com/fredrickmpepo89-ctrl/vicoba-unified-platform/internal/models"
)

// Authenticator defines the interface for authentication implementations.
// This abstraction allows swapping between credential schemes (PIN, OTP, etc.)
// without changing the transport layer.
type Authenticator interface {
	// Register creates a new user keyed by phone with the given credential,
	// initial group, and role.
	Register(ctx context.Context, phone, credential, groupID string, role models.Role) (*models.User, error)

	// Authenticate verifies the phone/credential pair and returns the user
	// if valid.
	Authenticate(ctx context.Context, phone, credential string) (*models.User, error)

	// ValidateCredential checks if the credential meets the scheme's format.
	ValidateCredential(credential string) error
}
