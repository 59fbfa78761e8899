package models

// Action classifies a transaction.
type Action string

const (
	// ActionContribution is a pooled contribution toward the current round.
	ActionContribution Action = "CONTRIBUTION"
	// ActionPaymentSent is the sending side of a direct member-to-member payment.
	ActionPaymentSent Action = "PAYMENT_SENT"
	// ActionPaymentReceived is the receiving side of a direct member-to-member payment.
	ActionPaymentReceived Action = "PAYMENT_RECEIVED"
	// ActionRoundReceived is the pool payout credited to a round's recipient.
	ActionRoundReceived Action = "ROUND_RECEIVED"
)

// Valid reports whether a is one of the four known actions.
func (a Action) Valid() bool {
	switch a {
	case ActionContribution, ActionPaymentSent, ActionPaymentReceived, ActionRoundReceived:
		return true
	}
	return false
}

// Transaction is one immutable entry in the append-only ledger.
// RoundID is the only field ever updated after insert: it is set exactly once,
// when a CONTRIBUTION is absorbed into a finalized round. A RoundID of zero
// means the entry is not attributed to any round.
type Transaction struct {
	// ID is the sequential ledger entry ID, assigned by the store.
	ID int64

	// MemberName is the member this entry belongs to.
	MemberName string

	// Action is the kind of balance-affecting event.
	Action Action

	// Amount is the positive amount in minor units.
	Amount int64

	// Timestamp is the Unix timestamp when the entry was recorded.
	Timestamp int64

	// RoundID links a CONTRIBUTION or ROUND_RECEIVED entry to a finalized
	// round. Zero when unattributed (stored as NULL).
	RoundID int64

	// GroupID is the group this entry is scoped to.
	GroupID string
}
