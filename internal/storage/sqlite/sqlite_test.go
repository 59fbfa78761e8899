package sqlite

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/fredrickmpepo89-ctrl/vicoba-unified-platform/internal/models"
	"github.com/fredrickmpepo89-ctrl/vicoba-unified-platform/internal/storage"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	store, err := New(dbPath)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
		os.Remove(dbPath)
	})
	return store
}

func seedGroup(t *testing.T, store *SQLiteStore, groupID string, members ...string) {
	t.Helper()

	ctx := context.Background()
	if err := store.CreateGroup(ctx, &models.Group{ID: groupID, Name: groupID + " savings"}); err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}
	for _, name := range members {
		if err := store.CreateMember(ctx, &models.Member{Name: name, GroupID: groupID}); err != nil {
			t.Fatalf("CreateMember(%s) failed: %v", name, err)
		}
	}
}

func TestSQLiteStore_Groups(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	t.Run("CreateGroup and GetGroup", func(t *testing.T) {
		group := &models.Group{ID: "KIJIJI", Name: "Kijiji Savings", CreatedBy: "255712345678"}
		if err := store.CreateGroup(ctx, group); err != nil {
			t.Fatalf("CreateGroup failed: %v", err)
		}
		if group.CreatedAt == 0 {
			t.Error("Expected CreatedAt to be set")
		}

		got, err := store.GetGroup(ctx, "KIJIJI")
		if err != nil {
			t.Fatalf("GetGroup failed: %v", err)
		}
		if got.Name != "Kijiji Savings" || got.CreatedBy != "255712345678" {
			t.Errorf("unexpected group: %+v", got)
		}
	})

	t.Run("duplicate group ID returns conflict", func(t *testing.T) {
		err := store.CreateGroup(ctx, &models.Group{ID: "KIJIJI", Name: "Other"})
		if !errors.Is(err, storage.ErrConflict) {
			t.Errorf("expected ErrConflict, got %v", err)
		}
	})

	t.Run("missing group returns not found", func(t *testing.T) {
		_, err := store.GetGroup(ctx, "NOPE1")
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestSQLiteStore_Users(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	user := &models.User{
		Phone:    "255712345678",
		PINHash:  "hash",
		Role:     models.RoleAdmin,
		GroupIDs: []string{"KIJIJI"},
	}
	if err := store.CreateUser(ctx, user); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	t.Run("GetUser round-trips group ids", func(t *testing.T) {
		got, err := store.GetUser(ctx, "255712345678")
		if err != nil {
			t.Fatalf("GetUser failed: %v", err)
		}
		if got.Role != models.RoleAdmin {
			t.Errorf("role: got %s, want ADMIN", got.Role)
		}
		if len(got.GroupIDs) != 1 || got.GroupIDs[0] != "KIJIJI" {
			t.Errorf("unexpected group ids: %v", got.GroupIDs)
		}
	})

	t.Run("duplicate phone returns conflict", func(t *testing.T) {
		err := store.CreateUser(ctx, &models.User{Phone: "255712345678", PINHash: "x", Role: models.RoleMember, GroupIDs: []string{}})
		if !errors.Is(err, storage.ErrConflict) {
			t.Errorf("expected ErrConflict, got %v", err)
		}
	})

	t.Run("AddUserGroup appends once", func(t *testing.T) {
		if err := store.AddUserGroup(ctx, "255712345678", "MJINI"); err != nil {
			t.Fatalf("AddUserGroup failed: %v", err)
		}
		if err := store.AddUserGroup(ctx, "255712345678", "MJINI"); err != nil {
			t.Fatalf("AddUserGroup (repeat) failed: %v", err)
		}

		got, err := store.GetUser(ctx, "255712345678")
		if err != nil {
			t.Fatalf("GetUser failed: %v", err)
		}
		if len(got.GroupIDs) != 2 {
			t.Errorf("expected 2 group ids, got %v", got.GroupIDs)
		}
	})
}

func TestSQLiteStore_Members(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	seedGroup(t, store, "KIJIJI")

	t.Run("CreateMember and GetMember", func(t *testing.T) {
		member := &models.Member{Name: "Asha", Phone: "255711111111", GroupID: "KIJIJI"}
		if err := store.CreateMember(ctx, member); err != nil {
			t.Fatalf("CreateMember failed: %v", err)
		}

		got, err := store.GetMember(ctx, "KIJIJI", "Asha")
		if err != nil {
			t.Fatalf("GetMember failed: %v", err)
		}
		if got.Phone != "255711111111" || got.TotalContributions != 0 || got.TotalReceived != 0 {
			t.Errorf("unexpected member: %+v", got)
		}
	})

	t.Run("duplicate member returns conflict", func(t *testing.T) {
		err := store.CreateMember(ctx, &models.Member{Name: "Asha", GroupID: "KIJIJI"})
		if !errors.Is(err, storage.ErrConflict) {
			t.Errorf("expected ErrConflict, got %v", err)
		}
	})

	t.Run("same name allowed in another group", func(t *testing.T) {
		seedGroup(t, store, "MJINI")
		if err := store.CreateMember(ctx, &models.Member{Name: "Asha", GroupID: "MJINI"}); err != nil {
			t.Errorf("expected cross-group insert to succeed, got %v", err)
		}
	})

	t.Run("ListMembers orders by name", func(t *testing.T) {
		for _, name := range []string{"Zuhura", "Bakari"} {
			if err := store.CreateMember(ctx, &models.Member{Name: name, GroupID: "KIJIJI"}); err != nil {
				t.Fatalf("CreateMember(%s) failed: %v", name, err)
			}
		}

		members, err := store.ListMembers(ctx, "KIJIJI")
		if err != nil {
			t.Fatalf("ListMembers failed: %v", err)
		}
		want := []string{"Asha", "Bakari", "Zuhura"}
		if len(members) != len(want) {
			t.Fatalf("expected %d members, got %d", len(want), len(members))
		}
		for i, name := range want {
			if members[i].Name != name {
				t.Errorf("member %d: got %s, want %s", i, members[i].Name, name)
			}
		}
	})
}

func TestSQLiteStore_RecordContribution(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	seedGroup(t, store, "KIJIJI", "Asha", "Bakari")

	t.Run("credits member and appends entry", func(t *testing.T) {
		if err := store.RecordContribution(ctx, "KIJIJI", "Asha", 1000); err != nil {
			t.Fatalf("RecordContribution failed: %v", err)
		}

		member, err := store.GetMember(ctx, "KIJIJI", "Asha")
		if err != nil {
			t.Fatalf("GetMember failed: %v", err)
		}
		if member.TotalContributions != 1000 {
			t.Errorf("TotalContributions: got %d, want 1000", member.TotalContributions)
		}

		txns, err := store.ListTransactions(ctx, "KIJIJI", storage.TransactionFilter{MemberName: "Asha"})
		if err != nil {
			t.Fatalf("ListTransactions failed: %v", err)
		}
		if len(txns) != 1 {
			t.Fatalf("expected 1 transaction, got %d", len(txns))
		}
		txn := txns[0]
		if txn.Action != models.ActionContribution || txn.Amount != 1000 || txn.RoundID != 0 {
			t.Errorf("unexpected transaction: %+v", txn)
		}
		if txn.Timestamp == 0 {
			t.Error("expected timestamp to be set")
		}
	})

	t.Run("unknown member fails atomically", func(t *testing.T) {
		err := store.RecordContribution(ctx, "KIJIJI", "Ghost", 500)
		if !errors.Is(err, storage.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}

		txns, err := store.ListTransactions(ctx, "KIJIJI", storage.TransactionFilter{MemberName: "Ghost"})
		if err != nil {
			t.Fatalf("ListTransactions failed: %v", err)
		}
		if len(txns) != 0 {
			t.Errorf("expected no transactions for unknown member, got %d", len(txns))
		}
	})
}

func TestSQLiteStore_RecordPayment(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	seedGroup(t, store, "KIJIJI", "Asha", "Bakari")

	if err := store.RecordPayment(ctx, "KIJIJI", "Asha", "Bakari", 500); err != nil {
		t.Fatalf("RecordPayment failed: %v", err)
	}

	payer, _ := store.GetMember(ctx, "KIJIJI", "Asha")
	payee, _ := store.GetMember(ctx, "KIJIJI", "Bakari")
	if payer.TotalContributions != 500 {
		t.Errorf("payer TotalContributions: got %d, want 500", payer.TotalContributions)
	}
	if payee.TotalReceived != 500 {
		t.Errorf("payee TotalReceived: got %d, want 500", payee.TotalReceived)
	}

	txns, err := store.ListTransactions(ctx, "KIJIJI", storage.TransactionFilter{})
	if err != nil {
		t.Fatalf("ListTransactions failed: %v", err)
	}
	if len(txns) != 2 {
		t.Fatalf("expected 2 transactions, got %d", len(txns))
	}

	actions := map[models.Action]bool{}
	for _, txn := range txns {
		actions[txn.Action] = true
		if txn.RoundID != 0 {
			t.Errorf("payment entry should have no round reference: %+v", txn)
		}
	}
	if !actions[models.ActionPaymentSent] || !actions[models.ActionPaymentReceived] {
		t.Errorf("expected PAYMENT_SENT and PAYMENT_RECEIVED, got %v", actions)
	}

	t.Run("payment to unknown payee rolls back payer credit", func(t *testing.T) {
		err := store.RecordPayment(ctx, "KIJIJI", "Asha", "Ghost", 250)
		if !errors.Is(err, storage.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}

		payer, _ := store.GetMember(ctx, "KIJIJI", "Asha")
		if payer.TotalContributions != 500 {
			t.Errorf("payer credit leaked on failed payment: got %d, want 500", payer.TotalContributions)
		}
	})
}

func TestSQLiteStore_OpenContributionsAndFinalize(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	seedGroup(t, store, "KIJIJI", "Asha", "Bakari", "Chiku")

	t.Run("latest round id starts at zero", func(t *testing.T) {
		latest, err := store.LatestRoundID(ctx, "KIJIJI")
		if err != nil {
			t.Fatalf("LatestRoundID failed: %v", err)
		}
		if latest != 0 {
			t.Errorf("expected 0, got %d", latest)
		}
	})

	for _, name := range []string{"Asha", "Bakari", "Chiku"} {
		if err := store.RecordContribution(ctx, "KIJIJI", name, 1000); err != nil {
			t.Fatalf("RecordContribution(%s) failed: %v", name, err)
		}
	}
	// A second contribution from the same member accumulates in the window.
	if err := store.RecordContribution(ctx, "KIJIJI", "Asha", 200); err != nil {
		t.Fatalf("RecordContribution failed: %v", err)
	}

	t.Run("window aggregates per member", func(t *testing.T) {
		contribs, err := store.OpenContributions(ctx, "KIJIJI")
		if err != nil {
			t.Fatalf("OpenContributions failed: %v", err)
		}
		if len(contribs) != 3 {
			t.Fatalf("expected 3 contributors, got %d", len(contribs))
		}
		if contribs["Asha"] != 1200 || contribs["Bakari"] != 1000 || contribs["Chiku"] != 1000 {
			t.Errorf("unexpected window: %v", contribs)
		}
	})

	t.Run("payments do not enter the window", func(t *testing.T) {
		if err := store.RecordPayment(ctx, "KIJIJI", "Asha", "Bakari", 999); err != nil {
			t.Fatalf("RecordPayment failed: %v", err)
		}
		contribs, err := store.OpenContributions(ctx, "KIJIJI")
		if err != nil {
			t.Fatalf("OpenContributions failed: %v", err)
		}
		if contribs["Asha"] != 1200 {
			t.Errorf("payment leaked into window: %v", contribs)
		}
	})

	t.Run("FinalizeRound closes the window", func(t *testing.T) {
		roundID, err := store.FinalizeRound(ctx, "KIJIJI", "Asha", 3200)
		if err != nil {
			t.Fatalf("FinalizeRound failed: %v", err)
		}
		if roundID == 0 {
			t.Fatal("expected non-zero round id")
		}

		latest, err := store.LatestRoundID(ctx, "KIJIJI")
		if err != nil {
			t.Fatalf("LatestRoundID failed: %v", err)
		}
		if latest != roundID {
			t.Errorf("latest round: got %d, want %d", latest, roundID)
		}

		recipient, _ := store.GetMember(ctx, "KIJIJI", "Asha")
		if recipient.TotalReceived != 3200+999 {
			t.Errorf("recipient TotalReceived: got %d, want %d", recipient.TotalReceived, 3200+999)
		}

		// Every window contribution now carries the round id.
		tagged, err := store.ListTransactions(ctx, "KIJIJI", storage.TransactionFilter{RoundID: roundID})
		if err != nil {
			t.Fatalf("ListTransactions failed: %v", err)
		}
		var contributions, receipts int
		for _, txn := range tagged {
			switch txn.Action {
			case models.ActionContribution:
				contributions++
			case models.ActionRoundReceived:
				receipts++
			}
		}
		if contributions != 4 {
			t.Errorf("expected 4 tagged contributions, got %d", contributions)
		}
		if receipts != 1 {
			t.Errorf("expected 1 ROUND_RECEIVED entry, got %d", receipts)
		}

		// The window is empty afterwards.
		contribs, err := store.OpenContributions(ctx, "KIJIJI")
		if err != nil {
			t.Fatalf("OpenContributions failed: %v", err)
		}
		if len(contribs) != 0 {
			t.Errorf("expected empty window after finalization, got %v", contribs)
		}
	})

	t.Run("next window starts fresh", func(t *testing.T) {
		if err := store.RecordContribution(ctx, "KIJIJI", "Bakari", 700); err != nil {
			t.Fatalf("RecordContribution failed: %v", err)
		}
		contribs, err := store.OpenContributions(ctx, "KIJIJI")
		if err != nil {
			t.Fatalf("OpenContributions failed: %v", err)
		}
		if len(contribs) != 1 || contribs["Bakari"] != 700 {
			t.Errorf("unexpected second window: %v", contribs)
		}
	})

	t.Run("ListRounds newest first", func(t *testing.T) {
		rounds, err := store.ListRounds(ctx, "KIJIJI")
		if err != nil {
			t.Fatalf("ListRounds failed: %v", err)
		}
		if len(rounds) != 1 {
			t.Fatalf("expected 1 round, got %d", len(rounds))
		}
		if rounds[0].Recipient != "Asha" || rounds[0].TotalAmount != 3200 {
			t.Errorf("unexpected round: %+v", rounds[0])
		}
	})
}

func TestSQLiteStore_ListTransactionsLimit(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	seedGroup(t, store, "KIJIJI", "Asha")

	for i := 0; i < 10; i++ {
		if err := store.RecordContribution(ctx, "KIJIJI", "Asha", 100); err != nil {
			t.Fatalf("RecordContribution failed: %v", err)
		}
	}

	txns, err := store.ListTransactions(ctx, "KIJIJI", storage.TransactionFilter{Limit: 3})
	if err != nil {
		t.Fatalf("ListTransactions failed: %v", err)
	}
	if len(txns) != 3 {
		t.Errorf("expected 3 transactions, got %d", len(txns))
	}
}
