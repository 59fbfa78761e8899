package models

// Round records one completed distribution cycle: who received the pool and
// how much it held. Rounds are created only by finalization and are immutable
// thereafter. IDs are sequential per store; the open contribution window is
// defined relative to the highest round ID in a group.
type Round struct {
	// ID is the sequential round ID, assigned by the store.
	ID int64

	// Recipient is the name of the member who received the pool.
	Recipient string

	// TotalAmount is the pooled amount distributed, in minor units.
	TotalAmount int64

	// RoundDate is the Unix timestamp when the round was finalized.
	RoundDate int64

	// GroupID is the group this round belongs to.
	GroupID string
}
