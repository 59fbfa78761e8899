package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/fredrickmpepo89-ctrl/vicoba-unified-platform/internal/models"
	"github.com/fredrickmpepo89-ctrl/vicoba-unified-platform/internal/storage"
)

// CreateGroup persists a new group.
func (s *SQLiteStore) CreateGroup(ctx context.Context, group *models.Group) error {
	if group.CreatedAt == 0 {
		group.CreatedAt = time.Now().Unix()
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO groups (id, name, created_by, created_at) VALUES (?, ?, ?, ?)",
		group.ID, group.Name, group.CreatedBy, group.CreatedAt,
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("group %s: %w", group.ID, storage.ErrConflict)
	}
	if err != nil {
		return fmt.Errorf("failed to insert group: %w", err)
	}
	return nil
}

// GetGroup retrieves a group by ID.
func (s *SQLiteStore) GetGroup(ctx context.Context, groupID string) (*models.Group, error) {
	group := &models.Group{}
	var createdBy sql.NullString

	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, created_by, created_at FROM groups WHERE id = ?",
		groupID,
	).Scan(&group.ID, &group.Name, &createdBy, &group.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("group %s: %w", groupID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get group: %w", err)
	}

	group.CreatedBy = createdBy.String
	return group, nil
}

// ListGroups retrieves all groups, ordered by ID.
func (s *SQLiteStore) ListGroups(ctx context.Context) ([]*models.Group, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, created_by, created_at FROM groups ORDER BY id",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}
	defer rows.Close()

	var groups []*models.Group
	for rows.Next() {
		group := &models.Group{}
		var createdBy sql.NullString
		if err := rows.Scan(&group.ID, &group.Name, &createdBy, &group.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan group: %w", err)
		}
		group.CreatedBy = createdBy.String
		groups = append(groups, group)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate groups: %w", err)
	}

	return groups, nil
}

// CreateUser persists a new authentication principal.
func (s *SQLiteStore) CreateUser(ctx context.Context, user *models.User) error {
	if user.CreatedAt == 0 {
		user.CreatedAt = time.Now().Unix()
	}

	groupIDs, err := json.Marshal(user.GroupIDs)
	if err != nil {
		return fmt.Errorf("failed to encode group ids: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		"INSERT INTO users (phone, pin_hash, role, group_ids, created_at) VALUES (?, ?, ?, ?, ?)",
		user.Phone, user.PINHash, string(user.Role), string(groupIDs), user.CreatedAt,
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("user %s: %w", user.Phone, storage.ErrConflict)
	}
	if err != nil {
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

// GetUser retrieves a user by phone.
func (s *SQLiteStore) GetUser(ctx context.Context, phone string) (*models.User, error) {
	user := &models.User{}
	var role, groupIDs string

	err := s.db.QueryRowContext(ctx,
		"SELECT phone, pin_hash, role, group_ids, created_at FROM users WHERE phone = ?",
		phone,
	).Scan(&user.Phone, &user.PINHash, &role, &groupIDs, &user.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("user %s: %w", phone, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	user.Role = models.Role(role)
	if err := json.Unmarshal([]byte(groupIDs), &user.GroupIDs); err != nil {
		return nil, fmt.Errorf("failed to decode group ids: %w", err)
	}
	return user, nil
}

// AddUserGroup appends a group to the user's group list. The read and write
// happen in one transaction so concurrent updates cannot drop a group.
func (s *SQLiteStore) AddUserGroup(ctx context.Context, phone, groupID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var encoded string
	err = tx.QueryRowContext(ctx, "SELECT group_ids FROM users WHERE phone = ?", phone).Scan(&encoded)
	if err == sql.ErrNoRows {
		return fmt.Errorf("user %s: %w", phone, storage.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to get user groups: %w", err)
	}

	var groupIDs []string
	if err := json.Unmarshal([]byte(encoded), &groupIDs); err != nil {
		return fmt.Errorf("failed to decode group ids: %w", err)
	}
	for _, id := range groupIDs {
		if id == groupID {
			return tx.Commit() // already a member, nothing to do
		}
	}
	groupIDs = append(groupIDs, groupID)

	updated, err := json.Marshal(groupIDs)
	if err != nil {
		return fmt.Errorf("failed to encode group ids: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "UPDATE users SET group_ids = ? WHERE phone = ?", string(updated), phone); err != nil {
		return fmt.Errorf("failed to update user groups: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
