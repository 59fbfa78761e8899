// Package allocator holds the pure round-allocation rules: who receives the
// pool next and when a round is ready to close. It operates on values already
// read from the ledger and performs no I/O, which keeps the fairness rules
// independently testable.
package allocator

import "github.com/fredrickmpepo89-ctrl/vicoba-unified-platform/internal/models"

// NextRecipient selects the member who should receive the next pool payout:
// the member with the lowest TotalReceived, breaking ties by lexicographically
// smallest name. The tie-break is deterministic and auditable on purpose —
// never random, never first-come.
//
// Returns false if members is empty.
func NextRecipient(members []*models.Member) (string, bool) {
	if len(members) == 0 {
		return "", false
	}

	minReceived := members[0].TotalReceived
	for _, m := range members[1:] {
		if m.TotalReceived < minReceived {
			minReceived = m.TotalReceived
		}
	}

	recipient := ""
	for _, m := range members {
		if m.TotalReceived != minReceived {
			continue
		}
		if recipient == "" || m.Name < recipient {
			recipient = m.Name
		}
	}
	return recipient, true
}

// RoundComplete reports whether the open window holds a strictly positive
// contribution from every registered member. Participation must be unanimous:
// a member added mid-round blocks completion until they contribute, and a
// member who never contributes stalls the rotation indefinitely. That is the
// modeled scheme's behavior, not a defect — there is no quorum and no skip
// policy.
func RoundComplete(contribs map[string]int64, members []*models.Member) bool {
	if len(members) == 0 {
		return false
	}
	if len(contribs) != len(members) {
		return false
	}
	for _, m := range members {
		if contribs[m.Name] <= 0 {
			return false
		}
	}
	return true
}

// WindowTotal sums the open window across all contributors.
func WindowTotal(contribs map[string]int64) int64 {
	var total int64
	for _, amount := range contribs {
		total += amount
	}
	return total
}
