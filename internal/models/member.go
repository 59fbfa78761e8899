package models

// Member represents a participant in a group, keyed by (Name, GroupID).
// Members are never deleted: transactions reference them by name.
type Member struct {
	// Name identifies the member within the group (3-50 word characters or spaces).
	Name string

	// Phone is the member's phone number in 255xxxxxxxxx format. Optional;
	// used only for notifications.
	Phone string

	// TotalContributions is the sum of all CONTRIBUTION and PAYMENT_SENT
	// amounts for this member. Maintained by the store as a cache of the
	// transaction log; monotonically non-decreasing.
	TotalContributions int64

	// TotalReceived is the sum of all ROUND_RECEIVED and PAYMENT_RECEIVED
	// amounts for this member. Same caching rules as TotalContributions.
	TotalReceived int64

	// GroupID is the group this member belongs to.
	GroupID string
}

// Balance is the member's net position: what they have received minus what
// they have put in. Negative until their round comes up.
func (m *Member) Balance() int64 {
	return m.TotalReceived - m.TotalContributions
}
