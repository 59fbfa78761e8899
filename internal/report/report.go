// Package report renders group ledgers as downloadable CSV and XLSX files.
package report

import (
	"context"
	"strconv"
	"time"

	"github.com/fredrickmpepo89-ctrl/vicoba-unified-platform/internal/models"
	"github.com/fredrickmpepo89-ctrl/vicoba-unified-platform/internal/storage"
)

// exportLimit caps how many ledger entries a single export contains.
const exportLimit = 10000

// Exporter reads a group's ledger and members from the store and writes them
// out in a spreadsheet format.
type Exporter struct {
	store storage.Store
}

// NewExporter creates a new Exporter.
func NewExporter(store storage.Store) *Exporter {
	return &Exporter{store: store}
}

func (e *Exporter) transactions(ctx context.Context, groupID string) ([]*models.Transaction, error) {
	return e.store.ListTransactions(ctx, groupID, storage.TransactionFilter{Limit: exportLimit})
}

var transactionHeader = []string{"ID", "Member", "Action", "Amount", "Timestamp", "Round"}

// transactionRow flattens a ledger entry into export columns. An entry not yet
// attributed to a round gets an empty Round column.
func transactionRow(txn *models.Transaction) []string {
	roundID := ""
	if txn.RoundID != 0 {
		roundID = strconv.FormatInt(txn.RoundID, 10)
	}
	return []string{
		strconv.FormatInt(txn.ID, 10),
		txn.MemberName,
		string(txn.Action),
		strconv.FormatInt(txn.Amount, 10),
		time.Unix(txn.Timestamp, 0).UTC().Format(time.RFC3339),
		roundID,
	}
}

var memberHeader = []string{"Name", "Phone", "Contributed", "Received", "Balance"}

func memberRow(m *models.Member) []string {
	return []string{
		m.Name,
		m.Phone,
		strconv.FormatInt(m.TotalContributions, 10),
		strconv.FormatInt(m.TotalReceived, 10),
		strconv.FormatInt(m.Balance(), 10),
	}
}
