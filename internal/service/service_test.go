package service

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/fredrickmpepo89-ctrl/vicoba-unified-platform/internal/models"
	"github.com/fredrickmpepo89-ctrl/vicoba-unified-platform/internal/storage"
	"github.com/fredrickmpepo89-ctrl/vicoba-unified-platform/internal/storage/sqlite"
)

type testEnv struct {
	store   storage.Store
	groups  *GroupService
	members *MemberService
	rounds  *RoundService
	ledger  *LedgerService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	rounds := NewRoundService(store)
	return &testEnv{
		store:   store,
		groups:  NewGroupService(store),
		members: NewMemberService(store),
		rounds:  rounds,
		ledger:  NewLedgerService(store, rounds, nil, nil),
	}
}

func (e *testEnv) seedGroup(t *testing.T, groupID string, memberNames ...string) {
	t.Helper()

	ctx := context.Background()
	if _, err := e.groups.CreateGroup(ctx, groupID, groupID+" savings", ""); err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}
	for _, name := range memberNames {
		if _, err := e.members.AddMember(ctx, groupID, name, ""); err != nil {
			t.Fatalf("AddMember(%s) failed: %v", name, err)
		}
	}
}

// assertLedgerConsistent checks the core invariant: member aggregates always
// equal the corresponding sums over the transaction log.
func (e *testEnv) assertLedgerConsistent(t *testing.T, groupID string) {
	t.Helper()

	ctx := context.Background()
	members, err := e.store.ListMembers(ctx, groupID)
	if err != nil {
		t.Fatalf("ListMembers failed: %v", err)
	}

	for _, m := range members {
		txns, err := e.store.ListTransactions(ctx, groupID, storage.TransactionFilter{
			MemberName: m.Name,
			Limit:      10000,
		})
		if err != nil {
			t.Fatalf("ListTransactions failed: %v", err)
		}

		var contributed, received int64
		for _, txn := range txns {
			switch txn.Action {
			case models.ActionContribution, models.ActionPaymentSent:
				contributed += txn.Amount
			case models.ActionRoundReceived, models.ActionPaymentReceived:
				received += txn.Amount
			}
		}

		if m.TotalContributions != contributed {
			t.Errorf("member %s: TotalContributions %d != log sum %d", m.Name, m.TotalContributions, contributed)
		}
		if m.TotalReceived != received {
			t.Errorf("member %s: TotalReceived %d != log sum %d", m.Name, m.TotalReceived, received)
		}
	}
}
