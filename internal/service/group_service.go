// Package service implements the core VICOBA operations on top of the ledger
// store: group and member management, contributions, peer payments, and round
// allocation. Services validate before mutating and return sentinel errors
// that the transport layer maps onto its own status codes.
package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/fredrickmpepo89-ctrl/vicoba-unified-platform/internal/models"
	"github.com/fredrickmpepo89-ctrl/vicoba-unified-platform/internal/storage"
)

// GroupService manages savings groups.
type GroupService struct {
	store storage.Store
}

// NewGroupService creates a new GroupService with the given storage backend.
func NewGroupService(store storage.Store) *GroupService {
	return &GroupService{store: store}
}

// CreateGroup registers a new group and links it to the creating user.
func (s *GroupService) CreateGroup(ctx context.Context, groupID, name, createdBy string) (*models.Group, error) {
	if !models.ValidGroupID(groupID) {
		return nil, ErrInvalidGroupID
	}
	if strings.TrimSpace(name) == "" {
		return nil, ErrNameRequired
	}

	group := &models.Group{ID: groupID, Name: strings.TrimSpace(name), CreatedBy: createdBy}
	if err := s.store.CreateGroup(ctx, group); err != nil {
		if errors.Is(err, storage.ErrConflict) {
			return nil, ErrGroupExists
		}
		return nil, err
	}

	if createdBy != "" {
		if err := s.store.AddUserGroup(ctx, createdBy, groupID); err != nil {
			// The group exists either way; losing the link is recoverable.
			slog.Warn("Failed to link group to creator", "group_id", groupID, "phone", createdBy, "error", err)
		}
	}

	slog.Info("Group created", "group_id", groupID, "name", group.Name)
	return group, nil
}

// GetGroup retrieves a group by ID.
func (s *GroupService) GetGroup(ctx context.Context, groupID string) (*models.Group, error) {
	group, err := s.store.GetGroup(ctx, groupID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrGroupNotFound
	}
	return group, err
}

// ListGroups retrieves all groups.
func (s *GroupService) ListGroups(ctx context.Context) ([]*models.Group, error) {
	return s.store.ListGroups(ctx)
}
