package report

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
)

// WriteCSV writes the group's ledger entries as CSV, newest first.
func (e *Exporter) WriteCSV(ctx context.Context, w io.Writer, groupID string) error {
	txns, err := e.transactions(ctx, groupID)
	if err != nil {
		return fmt.Errorf("failed to load transactions: %w", err)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(transactionHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, txn := range txns {
		if err := cw.Write(transactionRow(txn)); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
