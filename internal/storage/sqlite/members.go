package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/fredrickmpepo89-ctrl/vicoba-unified-platform/internal/models"
	"github.com/fredrickmpepo89-ctrl/vicoba-unified-platform/internal/storage"
)

// CreateMember persists a new member with zero aggregates.
func (s *SQLiteStore) CreateMember(ctx context.Context, member *models.Member) error {
	var phone interface{}
	if member.Phone != "" {
		phone = member.Phone
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO members (name, phone, total_contributions, total_received, group_id)
		 VALUES (?, ?, ?, ?, ?)`,
		member.Name, phone, member.TotalContributions, member.TotalReceived, member.GroupID,
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("member %s in group %s: %w", member.Name, member.GroupID, storage.ErrConflict)
	}
	if err != nil {
		return fmt.Errorf("failed to insert member: %w", err)
	}
	return nil
}

// GetMember retrieves a member by (group, name).
func (s *SQLiteStore) GetMember(ctx context.Context, groupID, name string) (*models.Member, error) {
	member := &models.Member{}
	var phone sql.NullString

	err := s.db.QueryRowContext(ctx,
		`SELECT name, phone, total_contributions, total_received, group_id
		 FROM members WHERE group_id = ? AND name = ?`,
		groupID, name,
	).Scan(&member.Name, &phone, &member.TotalContributions, &member.TotalReceived, &member.GroupID)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("member %s in group %s: %w", name, groupID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get member: %w", err)
	}

	member.Phone = phone.String
	return member, nil
}

// ListMembers retrieves all members of a group, ordered by name ascending.
// The stable order matters to callers that present rotation state.
func (s *SQLiteStore) ListMembers(ctx context.Context, groupID string) ([]*models.Member, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name, phone, total_contributions, total_received, group_id
		 FROM members WHERE group_id = ? ORDER BY name`,
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	defer rows.Close()

	var members []*models.Member
	for rows.Next() {
		member := &models.Member{}
		var phone sql.NullString
		if err := rows.Scan(&member.Name, &phone, &member.TotalContributions, &member.TotalReceived, &member.GroupID); err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		member.Phone = phone.String
		members = append(members, member)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate members: %w", err)
	}

	return members, nil
}
