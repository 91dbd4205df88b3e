package models

import (
	"time"
)

// Transfer records a completed peer-to-peer balance exchange. It is
// created atomically with the debit and credit ledger entries that
// reference it.
type Transfer struct {
	ID          int64     `db:"id" json:"id"`
	SenderID    int64     `db:"sender_id" json:"senderId"`
	RecipientID int64     `db:"recipient_id" json:"recipientId"`
	Amount      int64     `db:"amount" json:"amount"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
}

// TransferResult is what the transfer flow reports back to the caller
type TransferResult struct {
	Transfer      *Transfer `json:"transfer"`
	RecipientName string    `json:"recipientName"`
	NewBalance    int64     `json:"newBalance"`
}
