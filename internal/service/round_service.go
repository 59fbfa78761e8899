package service

import (
	"context"
	"log/slog"
	"sync"

	"github.com/fredrickmpepo89-ctrl/vicoba-unified-platform/internal/allocator"
	"github.com/fredrickmpepo89-ctrl/vicoba-unified-platform/internal/metrics"
	"github.com/fredrickmpepo89-ctrl/vicoba-unified-platform/internal/models"
	"github.com/fredrickmpepo89-ctrl/vicoba-unified-platform/internal/storage"
)

// RoundService decides who receives the pool next, detects round completion,
// and finalizes rounds. The open contribution window is never materialized:
// it is recomputed from the transaction log on every call, so cached state
// can never drift from the ledger.
type RoundService struct {
	store storage.Store

	// Finalization is a read-aggregate-then-write sequence, so at most one
	// finalization may run per group at a time.
	mu     sync.Mutex
	groups map[string]*sync.Mutex
}

// NewRoundService creates a new RoundService with the given storage backend.
func NewRoundService(store storage.Store) *RoundService {
	return &RoundService{
		store:  store,
		groups: make(map[string]*sync.Mutex),
	}
}

func (s *RoundService) groupLock(groupID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	lock, ok := s.groups[groupID]
	if !ok {
		lock = &sync.Mutex{}
		s.groups[groupID] = lock
	}
	return lock
}

// WindowContributions returns the open contribution window: each member's
// summed CONTRIBUTION amounts not yet attributed to a finalized round.
func (s *RoundService) WindowContributions(ctx context.Context, groupID string) (map[string]int64, error) {
	return s.store.OpenContributions(ctx, groupID)
}

// NextRecipient returns the member due to receive the next pool payout, or
// ok=false if the group has no members.
func (s *RoundService) NextRecipient(ctx context.Context, groupID string) (string, bool, error) {
	members, err := s.store.ListMembers(ctx, groupID)
	if err != nil {
		return "", false, err
	}
	name, ok := allocator.NextRecipient(members)
	return name, ok, nil
}

// TryFinalizeRound closes the current round if and only if every registered
// member has a strictly positive open-window contribution. On success it
// atomically creates the round record, credits the recipient, appends the
// ROUND_RECEIVED entry, and re-tags the window's contributions.
//
// A false return is a normal outcome ("round not yet ready"), not an error,
// and leaves no trace: calling again with no new contributions is a no-op.
func (s *RoundService) TryFinalizeRound(ctx context.Context, groupID string) (bool, error) {
	lock := s.groupLock(groupID)
	lock.Lock()
	defer lock.Unlock()

	contribs, err := s.store.OpenContributions(ctx, groupID)
	if err != nil {
		return false, err
	}
	members, err := s.store.ListMembers(ctx, groupID)
	if err != nil {
		return false, err
	}

	if !allocator.RoundComplete(contribs, members) {
		return false, nil
	}

	total := allocator.WindowTotal(contribs)
	recipient, ok := allocator.NextRecipient(members)
	if !ok || total <= 0 {
		return false, nil
	}

	roundID, err := s.store.FinalizeRound(ctx, groupID, recipient, total)
	if err != nil {
		return false, err
	}

	metrics.RoundsFinalizedTotal.WithLabelValues(groupID).Inc()
	slog.Info("Round finalized",
		"group_id", groupID,
		"round_id", roundID,
		"recipient", recipient,
		"total", total,
	)
	return true, nil
}

// ListRounds returns the group's finalized rounds, newest first.
func (s *RoundService) ListRounds(ctx context.Context, groupID string) ([]*models.Round, error) {
	return s.store.ListRounds(ctx, groupID)
}

// TrackerEntry is one member's line in the round tracker view.
type TrackerEntry struct {
	Name        string
	Contributed int64
	Pending     bool
	IsNext      bool
}

// RoundTracker is a snapshot of the current round's progress.
type RoundTracker struct {
	TotalPot      int64
	NextRecipient string
	Entries       []TrackerEntry
	Pending       []string
}

// Tracker builds the round-progress view: the pot so far, who receives next,
// and which members have yet to contribute.
func (s *RoundService) Tracker(ctx context.Context, groupID string) (*RoundTracker, error) {
	contribs, err := s.store.OpenContributions(ctx, groupID)
	if err != nil {
		return nil, err
	}
	members, err := s.store.ListMembers(ctx, groupID)
	if err != nil {
		return nil, err
	}

	next, _ := allocator.NextRecipient(members)
	tracker := &RoundTracker{
		TotalPot:      allocator.WindowTotal(contribs),
		NextRecipient: next,
	}

	for _, m := range members {
		contributed := contribs[m.Name]
		entry := TrackerEntry{
			Name:        m.Name,
			Contributed: contributed,
			Pending:     contributed == 0,
			IsNext:      m.Name == next,
		}
		tracker.Entries = append(tracker.Entries, entry)
		if entry.Pending {
			tracker.Pending = append(tracker.Pending, m.Name)
		}
	}
	return tracker, nil
}
