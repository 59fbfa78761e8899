package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/fredrickmpepo89-ctrl/vicoba-unified-platform/internal/models"
	"github.com/fredrickmpepo89-ctrl/vicoba-unified-platform/internal/storage"
)

const defaultTransactionLimit = 50

// ListTransactions retrieves ledger entries for a group, newest first.
func (s *SQLiteStore) ListTransactions(ctx context.Context, groupID string, filter storage.TransactionFilter) ([]*models.Transaction, error) {
	query := `SELECT id, member_name, action, amount, timestamp, round_id, group_id
	          FROM transactions WHERE group_id = ?`
	args := []interface{}{groupID}

	if filter.MemberName != "" {
		query += " AND member_name = ?"
		args = append(args, filter.MemberName)
	}
	if filter.RoundID > 0 {
		query += " AND round_id = ?"
		args = append(args, filter.RoundID)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = defaultTransactionLimit
	}
	query += " ORDER BY timestamp DESC, id DESC LIMIT ?"
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	var txns []*models.Transaction
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		txns = append(txns, txn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate transactions: %w", err)
	}

	return txns, nil
}

func scanTransaction(rows *sql.Rows) (*models.Transaction, error) {
	txn := &models.Transaction{}
	var action string
	var roundID sql.NullInt64

	if err := rows.Scan(&txn.ID, &txn.MemberName, &action, &txn.Amount, &txn.Timestamp, &roundID, &txn.GroupID); err != nil {
		return nil, fmt.Errorf("failed to scan transaction: %w", err)
	}

	txn.Action = models.Action(action)
	txn.RoundID = roundID.Int64
	return txn, nil
}

// RecordContribution atomically credits the member and appends a CONTRIBUTION
// entry with no round reference.
func (s *SQLiteStore) RecordContribution(ctx context.Context, groupID, memberName string, amount int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := creditMember(ctx, tx, groupID, memberName, "total_contributions", amount); err != nil {
		return err
	}
	if err := appendEntry(ctx, tx, groupID, memberName, models.ActionContribution, amount, 0); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// RecordPayment atomically records a direct member-to-member transfer: the
// payer's contributions and the payee's receipts both grow, and a
// PAYMENT_SENT plus a PAYMENT_RECEIVED entry land in the log. Neither entry
// carries a round reference; payments never enter the contribution window.
func (s *SQLiteStore) RecordPayment(ctx context.Context, groupID, payerName, payeeName string, amount int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := creditMember(ctx, tx, groupID, payerName, "total_contributions", amount); err != nil {
		return err
	}
	if err := creditMember(ctx, tx, groupID, payeeName, "total_received", amount); err != nil {
		return err
	}
	if err := appendEntry(ctx, tx, groupID, payerName, models.ActionPaymentSent, amount, 0); err != nil {
		return err
	}
	if err := appendEntry(ctx, tx, groupID, payeeName, models.ActionPaymentReceived, amount, 0); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// creditMember adds amount to one aggregate column of a member row.
// column is always a compile-time constant, never user input.
func creditMember(ctx context.Context, tx *sql.Tx, groupID, name, column string, amount int64) error {
	res, err := tx.ExecContext(ctx,
		"UPDATE members SET "+column+" = "+column+" + ? WHERE group_id = ? AND name = ?",
		amount, groupID, name,
	)
	if err != nil {
		return fmt.Errorf("failed to credit member: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check credit result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("member %s in group %s: %w", name, groupID, storage.ErrNotFound)
	}
	return nil
}

// appendEntry inserts one ledger row. roundID of zero is stored as NULL.
func appendEntry(ctx context.Context, tx *sql.Tx, groupID, name string, action models.Action, amount, roundID int64) error {
	var round interface{}
	if roundID > 0 {
		round = roundID
	}

	_, err := tx.ExecContext(ctx,
		`INSERT INTO transactions (member_name, action, amount, timestamp, round_id, group_id)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		name, string(action), amount, time.Now().Unix(), round, groupID,
	)
	if err != nil {
		return fmt.Errorf("failed to append transaction: %w", err)
	}
	return nil
}
