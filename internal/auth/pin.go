package auth

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/fredrickmpepo89-ctrl/vicoba-unified-platform/internal/models"
	"github.com/fredrickmpepo89-ctrl/vicoba-unified-platform/internal/storage"
)

var (
	ErrInvalidCredentials = errors.New("invalid phone or PIN")
	ErrInvalidPIN         = errors.New("PIN must be 4 digits")
	ErrInvalidPhone       = errors.New("phone must be in format 255xxxxxxxxx")
	ErrInvalidGroupID     = errors.New("group id must be 3-20 alphanumeric characters")
	ErrInvalidRole        = errors.New("role must be ADMIN or MEMBER")
	ErrPhoneExists        = errors.New("phone already registered")
)

// UserStorage defines the interface for user persistence operations.
// This keeps the authenticator independent of the storage implementation.
type UserStorage interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUser(ctx context.Context, phone string) (*models.User, error)
}

// PINAuthenticator implements phone + 4-digit-PIN authentication with bcrypt
// hashing. The ROSCA's audience uses feature phones, so the credential is a
// short numeric PIN; bcrypt's work factor compensates for the small keyspace.
type PINAuthenticator struct {
	storage UserStorage
}

// NewPINAuthenticator creates a new PIN-based authenticator.
func NewPINAuthenticator(storage UserStorage) *PINAuthenticator {
	return &PINAuthenticator{storage: storage}
}

// ValidateCredential checks the PIN format.
func (a *PINAuthenticator) ValidateCredential(credential string) error {
	if !models.ValidPIN(credential) {
		return ErrInvalidPIN
	}
	return nil
}

// Register creates a new user with a hashed PIN.
func (a *PINAuthenticator) Register(ctx context.Context, phone, credential, groupID string, role models.Role) (*models.User, error) {
	if !models.ValidPhone(phone) {
		return nil, ErrInvalidPhone
	}
	if err := a.ValidateCredential(credential); err != nil {
		return nil, err
	}
	if !models.ValidGroupID(groupID) {
		return nil, ErrInvalidGroupID
	}
	if role == "" {
		role = models.RoleMember
	}
	if !models.ValidRole(role) {
		return nil, ErrInvalidRole
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(credential), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash PIN: %w", err)
	}

	user := &models.User{
		Phone:    phone,
		PINHash:  string(hash),
		Role:     role,
		GroupIDs: []string{groupID},
	}
	if err := a.storage.CreateUser(ctx, user); err != nil {
		if errors.Is(err, storage.ErrConflict) {
			return nil, ErrPhoneExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// Authenticate verifies the phone and PIN, returning the user if valid.
// Lookup failures and hash mismatches collapse into one error so callers
// cannot probe which phones are registered.
func (a *PINAuthenticator) Authenticate(ctx context.Context, phone, credential string) (*models.User, error) {
	user, err := a.storage.GetUser(ctx, phone)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PINHash), []byte(credential)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}
