// Package storage provides abstractions for persistent ledger storage.
package storage

import (
	"context"
	"errors"

	"github.com/fredrickmpepo89-ctrl/vicoba-unified-platform/internal/models"
)

var (
	// ErrNotFound is returned when a requested entity does not exist.
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned when an insert would violate a uniqueness
	// constraint (duplicate member, group, or phone).
	ErrConflict = errors.New("already exists")
)

// TransactionFilter narrows a ledger query. Zero values mean "no filter".
type TransactionFilter struct {
	// MemberName restricts results to one member.
	MemberName string
	// RoundID restricts results to one round when positive.
	RoundID int64
	// Limit bounds the result size. Defaults to 50 when zero.
	Limit int
}

// Store defines the interface for ledger storage operations.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the service layer.
//
// Every multi-step write method is atomic: either all of its effects persist
// or none do. The transaction log is append-only; member aggregates are kept
// consistent with it inside the same storage transaction.
type Store interface {
	// CreateGroup persists a new group. Returns ErrConflict if the group ID
	// is already taken.
	CreateGroup(ctx context.Context, group *models.Group) error

	// GetGroup retrieves a group by ID. Returns ErrNotFound if absent.
	GetGroup(ctx context.Context, groupID string) (*models.Group, error)

	// ListGroups retrieves all groups, ordered by ID.
	ListGroups(ctx context.Context) ([]*models.Group, error)

	// CreateUser persists a new authentication principal. Returns ErrConflict
	// if the phone is already registered.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUser retrieves a user by phone. Returns ErrNotFound if absent.
	GetUser(ctx context.Context, phone string) (*models.User, error)

	// AddUserGroup appends a group to the user's group list.
	AddUserGroup(ctx context.Context, phone, groupID string) error

	// CreateMember persists a new member with zero aggregates. Returns
	// ErrConflict if (name, group) already exists.
	CreateMember(ctx context.Context, member *models.Member) error

	// GetMember retrieves a member by (group, name). Returns ErrNotFound if absent.
	GetMember(ctx context.Context, groupID, name string) (*models.Member, error)

	// ListMembers retrieves all members of a group, ordered by name ascending.
	ListMembers(ctx context.Context, groupID string) ([]*models.Member, error)

	// ListTransactions retrieves ledger entries for a group, newest first.
	ListTransactions(ctx context.Context, groupID string, filter TransactionFilter) ([]*models.Transaction, error)

	// ListRounds retrieves all finalized rounds for a group, newest first.
	ListRounds(ctx context.Context, groupID string) ([]*models.Round, error)

	// LatestRoundID returns the highest round ID in the group, or 0 if the
	// group has no rounds yet.
	LatestRoundID(ctx context.Context, groupID string) (int64, error)

	// OpenContributions aggregates the open contribution window: the sum of
	// CONTRIBUTION amounts per member over entries whose round reference is
	// null or greater than the latest round ID. The window is always
	// recomputed from the log, never cached.
	OpenContributions(ctx context.Context, groupID string) (map[string]int64, error)

	// RecordContribution atomically credits the member's TotalContributions
	// and appends a CONTRIBUTION entry with no round reference.
	// Returns ErrNotFound if the member does not exist.
	RecordContribution(ctx context.Context, groupID, memberName string, amount int64) error

	// RecordPayment atomically credits the payer's TotalContributions and the
	// payee's TotalReceived, and appends a PAYMENT_SENT and a PAYMENT_RECEIVED
	// entry, both with no round reference.
	RecordPayment(ctx context.Context, groupID, payerName, payeeName string, amount int64) error

	// FinalizeRound atomically closes the open contribution window: it
	// creates a round record, credits the recipient's TotalReceived, appends
	// a ROUND_RECEIVED entry tagged with the new round, and re-tags every
	// open CONTRIBUTION entry with the new round ID. Returns the new round ID.
	FinalizeRound(ctx context.Context, groupID, recipient string, total int64) (int64, error)

	// Close releases any resources held by the store.
	Close() error
}
