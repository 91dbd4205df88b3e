package models

import (
	"time"
)

// TopUpRequest is a user-submitted deposit awaiting admin review.
// The balance credit happens only on approval.
type TopUpRequest struct {
	ID            int64         `db:"id" json:"id"`
	AccountID     int64         `db:"account_id" json:"accountId"`
	Amount        int64         `db:"amount" json:"amount"`
	TransactionID string        `db:"transaction_id" json:"transactionId"`
	SlipImage     string        `db:"slip_image" json:"slipImage,omitempty"`
	Status        RequestStatus `db:"status" json:"status"`
	Notes         string        `db:"notes" json:"notes,omitempty"`
	CreatedAt     time.Time     `db:"created_at" json:"createdAt"`
	UpdatedAt     time.Time     `db:"updated_at" json:"updatedAt"`
}
