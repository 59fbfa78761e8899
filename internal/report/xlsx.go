package report

import (
	"context"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

const (
	transactionsSheet = "Transactions"
	membersSheet      = "Members"
)

// WriteXLSX writes a workbook with one sheet of ledger entries (newest first)
// and one sheet of member summaries.
func (e *Exporter) WriteXLSX(ctx context.Context, w io.Writer, groupID string) error {
	txns, err := e.transactions(ctx, groupID)
	if err != nil {
		return fmt.Errorf("failed to load transactions: %w", err)
	}
	members, err := e.store.ListMembers(ctx, groupID)
	if err != nil {
		return fmt.Errorf("failed to load members: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", transactionsSheet)
	if _, err := f.NewSheet(membersSheet); err != nil {
		return fmt.Errorf("failed to create members sheet: %w", err)
	}

	writeRow(f, transactionsSheet, 1, transactionHeader)
	for i, txn := range txns {
		writeRow(f, transactionsSheet, i+2, transactionRow(txn))
	}
	f.SetColWidth(transactionsSheet, "B", "C", 20)
	f.SetColWidth(transactionsSheet, "E", "E", 22)

	writeRow(f, membersSheet, 1, memberHeader)
	for i, m := range members {
		writeRow(f, membersSheet, i+2, memberRow(m))
	}
	f.SetColWidth(membersSheet, "A", "B", 20)

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func writeRow(f *excelize.File, sheet string, row int, values []string) {
	for i, v := range values {
		cell := fmt.Sprintf("%c%d", 'A'+i, row)
		f.SetCellValue(sheet, cell, v)
	}
}
