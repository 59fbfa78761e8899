package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/fredrickmpepo89-ctrl/vicoba-unified-platform/internal/models"
	"github.com/fredrickmpepo89-ctrl/vicoba-unified-platform/internal/storage"
)

// MemberService manages member registration and summaries within a group.
type MemberService struct {
	store storage.Store
}

// NewMemberService creates a new MemberService with the given storage backend.
func NewMemberService(store storage.Store) *MemberService {
	return &MemberService{store: store}
}

// AddMember registers a new member in the group with zero aggregates.
// The phone is optional; when present it must be a valid national number.
func (s *MemberService) AddMember(ctx context.Context, groupID, name, phone string) (*models.Member, error) {
	if !models.ValidMemberName(name) {
		return nil, ErrInvalidName
	}
	if phone != "" && !models.ValidPhone(phone) {
		return nil, ErrInvalidPhone
	}

	member := &models.Member{Name: name, Phone: phone, GroupID: groupID}
	if err := s.store.CreateMember(ctx, member); err != nil {
		if errors.Is(err, storage.ErrConflict) {
			return nil, ErrMemberExists
		}
		return nil, err
	}

	slog.Info("Member added", "group_id", groupID, "member", name)
	return member, nil
}

// GetMember retrieves one member by name.
func (s *MemberService) GetMember(ctx context.Context, groupID, name string) (*models.Member, error) {
	member, err := s.store.GetMember(ctx, groupID, name)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrMemberNotFound
	}
	return member, err
}

// ListMembers retrieves all members of a group, ordered by name.
func (s *MemberService) ListMembers(ctx context.Context, groupID string) ([]*models.Member, error) {
	return s.store.ListMembers(ctx, groupID)
}

// MemberSummary is one row of the per-member position report.
type MemberSummary struct {
	Name               string
	Phone              string
	TotalContributions int64
	TotalReceived      int64
	Balance            int64
}

// Summarize reports every member's contributions, receipts, and net balance.
func (s *MemberService) Summarize(ctx context.Context, groupID string) ([]MemberSummary, error) {
	members, err := s.store.ListMembers(ctx, groupID)
	if err != nil {
		return nil, err
	}

	summaries := make([]MemberSummary, len(members))
	for i, m := range members {
		summaries[i] = MemberSummary{
			Name:               m.Name,
			Phone:              m.Phone,
			TotalContributions: m.TotalContributions,
			TotalReceived:      m.TotalReceived,
			Balance:            m.Balance(),
		}
	}
	return summaries, nil
}
