package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/fredrickmpepo89-ctrl/vicoba-unified-platform/internal/metrics"
	"github.com/fredrickmpepo89-ctrl/vicoba-unified-platform/internal/models"
	"github.com/fredrickmpepo89-ctrl/vicoba-unified-platform/internal/notify"
	"github.com/fredrickmpepo89-ctrl/vicoba-unified-platform/internal/storage"
)

// Confirmation acknowledges a recorded contribution or payment.
type Confirmation struct {
	// Ref is a unique receipt reference for the operation.
	Ref string
	// RoundFinalized reports whether this contribution completed the round.
	RoundFinalized bool
}

// LedgerService exposes the two mutating entry points of the ledger: regular
// contributions and direct member-to-member payments.
type LedgerService struct {
	store    storage.Store
	rounds   *RoundService
	notifier notify.Notifier
	money    notify.MobileMoney
}

// NewLedgerService creates a new LedgerService. The notifier and mobile-money
// provider may be nil to disable those side effects.
func NewLedgerService(store storage.Store, rounds *RoundService, notifier notify.Notifier, money notify.MobileMoney) *LedgerService {
	return &LedgerService{store: store, rounds: rounds, notifier: notifier, money: money}
}

// Contribute records a pooled contribution for a member, then checks whether
// the round is now complete. The finalization outcome never affects the
// contribution's own success: the money is recorded either way.
func (s *LedgerService) Contribute(ctx context.Context, groupID, memberName string, amount int64) (*Confirmation, error) {
	if !models.ValidAmount(amount) {
		return nil, ErrInvalidAmount
	}
	if _, err := s.store.GetMember(ctx, groupID, memberName); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}

	if err := s.store.RecordContribution(ctx, groupID, memberName, amount); err != nil {
		return nil, err
	}

	metrics.ContributionsTotal.WithLabelValues(groupID).Inc()
	slog.Info("Contribution recorded", "group_id", groupID, "member", memberName, "amount", amount)

	conf := &Confirmation{Ref: uuid.New().String()}

	finalized, err := s.rounds.TryFinalizeRound(ctx, groupID)
	if err != nil {
		// The contribution itself succeeded; a failed finalization attempt
		// is retried implicitly on the next contribution.
		slog.Error("Round finalization failed", "group_id", groupID, "error", err)
		return conf, nil
	}
	conf.RoundFinalized = finalized

	if finalized {
		s.announceRound(ctx, groupID)
	}
	return conf, nil
}

// Pay records a direct transfer between two members. Payments are not pooled:
// they carry no round reference and never trigger finalization.
func (s *LedgerService) Pay(ctx context.Context, groupID, payerName, payeeName string, amount int64) (*Confirmation, error) {
	if payerName == payeeName {
		return nil, ErrSameParty
	}
	if !models.ValidAmount(amount) {
		return nil, ErrInvalidAmount
	}

	payee, err := s.store.GetMember(ctx, groupID, payeeName)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}
	if _, err := s.store.GetMember(ctx, groupID, payerName); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}

	if err := s.store.RecordPayment(ctx, groupID, payerName, payeeName, amount); err != nil {
		return nil, err
	}

	metrics.PaymentsTotal.WithLabelValues(groupID).Inc()
	slog.Info("Payment recorded",
		"group_id", groupID,
		"payer", payerName,
		"payee", payeeName,
		"amount", amount,
	)

	if s.notifier != nil {
		s.notifier.PaymentRecorded(ctx, payerName, payeeName, amount, payee.Phone)
	}
	return &Confirmation{Ref: uuid.New().String()}, nil
}

// Transactions returns the group's ledger entries, newest first.
func (s *LedgerService) Transactions(ctx context.Context, groupID string, filter storage.TransactionFilter) ([]*models.Transaction, error) {
	return s.store.ListTransactions(ctx, groupID, filter)
}

// announceRound notifies the group about the round that just closed and
// pushes the payout to the recipient's phone via the mobile-money provider.
func (s *LedgerService) announceRound(ctx context.Context, groupID string) {
	if s.notifier == nil && s.money == nil {
		return
	}

	rounds, err := s.store.ListRounds(ctx, groupID)
	if err != nil || len(rounds) == 0 {
		slog.Warn("Could not load round for notification", "group_id", groupID, "error", err)
		return
	}
	members, err := s.store.ListMembers(ctx, groupID)
	if err != nil {
		slog.Warn("Could not load members for notification", "group_id", groupID, "error", err)
		return
	}
	latest := rounds[0]

	if s.notifier != nil {
		s.notifier.RoundCompleted(ctx, latest.Recipient, latest.TotalAmount, members)
	}
	if s.money != nil {
		for _, m := range members {
			if m.Name == latest.Recipient && m.Phone != "" {
				s.money.Disburse(ctx, m.Phone, latest.TotalAmount, "round payout")
				break
			}
		}
	}
}
