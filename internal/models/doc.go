// Package models defines the core domain entities for the VICOBA platform.
//
// # Entities
//
//   - Group: a savings group identified by a short alphanumeric ID
//   - Member: a participant in a group, keyed by (name, group)
//   - Transaction: an immutable, append-only record of every balance-affecting event
//   - Round: one completed distribution cycle (recipient + pooled total)
//   - User: an authentication principal keyed by phone number
//
// # Design Principles
//
//  1. The transaction log is the source of truth. Member aggregates
//     (TotalContributions, TotalReceived) are a materialized cache of the log
//     and must always equal the corresponding transaction sums.
//  2. Transactions are append-only. The round reference is the only mutable
//     field, set exactly once when a contribution is absorbed into a
//     finalized round.
//  3. All entities are scoped by group; there are no cross-group references.
//  4. Amounts are integer minor units (no floats, no currency handling).
package models
