package models

import (
	"time"
)

// EntryKind represents the type of balance change
type EntryKind string

const (
	EntryKindInitial          EntryKind = "initial"
	EntryKindTopUp            EntryKind = "top_up"
	EntryKindReferral         EntryKind = "referral"
	EntryKindWithdrawal       EntryKind = "withdrawal"
	EntryKindWithdrawalRefund EntryKind = "withdrawal_refund"
	EntryKindTransfer         EntryKind = "transfer"
	EntryKindPrize            EntryKind = "prize"
	EntryKindEntryFee         EntryKind = "entry_fee"
)

// ReferenceKind represents what type of entity a ledger entry's
// reference id points at
type ReferenceKind string

const (
	ReferenceKindTopUp      ReferenceKind = "top_up"
	ReferenceKindWithdrawal ReferenceKind = "withdrawal"
	ReferenceKindPrize      ReferenceKind = "prize"
	ReferenceKindTransfer   ReferenceKind = "transfer"
	ReferenceKindTournament ReferenceKind = "tournament"
	ReferenceKindAccount    ReferenceKind = "account"
)

// LedgerEntry is the immutable audit record of one balance change.
// Entries are append-only; the sum of all entries for an account
// equals that account's current balance.
type LedgerEntry struct {
	ID            int64          `db:"id" json:"id"`
	AccountID     int64          `db:"account_id" json:"accountId"`
	Amount        int64          `db:"amount" json:"amount"`
	Kind          EntryKind      `db:"kind" json:"kind"`
	Description   string         `db:"description" json:"description"`
	ReferenceID   *int64         `db:"reference_id" json:"referenceId,omitempty"`
	ReferenceKind *ReferenceKind `db:"reference_kind" json:"referenceKind,omitempty"`
	CreatedAt     time.Time      `db:"created_at" json:"createdAt"`
}

// Reference pairs a ledger entry with the record that produced it
type Reference struct {
	ID   int64
	Kind ReferenceKind
}

// Ref is a convenience constructor for an optional entry reference
func Ref(id int64, kind ReferenceKind) *Reference {
	return &Reference{ID: id, Kind: kind}
}
