package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/fredrickmpepo89-ctrl/vicoba-unified-platform/internal/models"
)

// ListRounds retrieves all finalized rounds for a group, newest first.
func (s *SQLiteStore) ListRounds(ctx context.Context, groupID string) ([]*models.Round, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, recipient, total_amount, round_date, group_id
		 FROM rounds WHERE group_id = ? ORDER BY id DESC`,
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list rounds: %w", err)
	}
	defer rows.Close()

	var rounds []*models.Round
	for rows.Next() {
		round := &models.Round{}
		if err := rows.Scan(&round.ID, &round.Recipient, &round.TotalAmount, &round.RoundDate, &round.GroupID); err != nil {
			return nil, fmt.Errorf("failed to scan round: %w", err)
		}
		rounds = append(rounds, round)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate rounds: %w", err)
	}

	return rounds, nil
}

// LatestRoundID returns the highest round ID in the group, or 0 if none.
func (s *SQLiteStore) LatestRoundID(ctx context.Context, groupID string) (int64, error) {
	return latestRoundID(ctx, s.db, groupID)
}

// queryer lets latestRoundID run against the pool or inside a transaction.
type queryer interface {
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

func latestRoundID(ctx context.Context, q queryer, groupID string) (int64, error) {
	var id int64
	err := q.QueryRowContext(ctx,
		"SELECT id FROM rounds WHERE group_id = ? ORDER BY id DESC LIMIT 1",
		groupID,
	).Scan(&id)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get latest round id: %w", err)
	}
	return id, nil
}

// OpenContributions aggregates the open contribution window per member.
// The window is every CONTRIBUTION whose round reference is null or greater
// than the latest round ID; it is recomputed from the log on every call.
func (s *SQLiteStore) OpenContributions(ctx context.Context, groupID string) (map[string]int64, error) {
	latest, err := s.LatestRoundID(ctx, groupID)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT member_name, SUM(amount)
		 FROM transactions
		 WHERE action = ? AND group_id = ? AND (round_id IS NULL OR round_id > ?)
		 GROUP BY member_name`,
		string(models.ActionContribution), groupID, latest,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate open contributions: %w", err)
	}
	defer rows.Close()

	contribs := make(map[string]int64)
	for rows.Next() {
		var name string
		var sum int64
		if err := rows.Scan(&name, &sum); err != nil {
			return nil, fmt.Errorf("failed to scan contribution sum: %w", err)
		}
		contribs[name] = sum
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate contribution sums: %w", err)
	}

	return contribs, nil
}

// FinalizeRound atomically closes the open contribution window:
//
//  1. insert the round record and take its new sequential ID
//  2. credit the recipient's total_received
//  3. append a ROUND_RECEIVED entry tagged with the new round
//  4. re-tag every open CONTRIBUTION entry with the new round ID
//
// All four steps run in one SQL transaction; a failure in any of them rolls
// the whole finalization back.
func (s *SQLiteStore) FinalizeRound(ctx context.Context, groupID, recipient string, total int64) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// The window boundary is captured inside the transaction so the re-tag
	// below matches exactly the entries the caller aggregated.
	prevLatest, err := latestRoundID(ctx, tx, groupID)
	if err != nil {
		return 0, err
	}

	res, err := tx.ExecContext(ctx,
		"INSERT INTO rounds (recipient, total_amount, round_date, group_id) VALUES (?, ?, ?, ?)",
		recipient, total, time.Now().Unix(), groupID,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert round: %w", err)
	}
	roundID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get round id: %w", err)
	}

	if err := creditMember(ctx, tx, groupID, recipient, "total_received", total); err != nil {
		return 0, err
	}
	if err := appendEntry(ctx, tx, groupID, recipient, models.ActionRoundReceived, total, roundID); err != nil {
		return 0, err
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE transactions SET round_id = ?
		 WHERE group_id = ? AND action = ? AND (round_id IS NULL OR (round_id > ? AND round_id < ?))`,
		roundID, groupID, string(models.ActionContribution), prevLatest, roundID,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to tag window contributions: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return roundID, nil
}
