package models

import (
	"time"
)

// PaymentMethod represents a mobile payout provider
type PaymentMethod string

const (
	PaymentMethodBkash PaymentMethod = "bkash"
	PaymentMethodNagad PaymentMethod = "nagad"
)

// WithdrawalRequest is a user-submitted payout. The amount is debited
// at submission time; rejection refunds it, completion pays it out
// off-platform with no further balance effect.
type WithdrawalRequest struct {
	ID            int64         `db:"id" json:"id"`
	AccountID     int64         `db:"account_id" json:"accountId"`
	Amount        int64         `db:"amount" json:"amount"`
	AccountNumber string        `db:"account_number" json:"accountNumber"`
	PaymentMethod PaymentMethod `db:"payment_method" json:"paymentMethod"`
	Status        RequestStatus `db:"status" json:"status"`
	Notes         string        `db:"notes" json:"notes,omitempty"`
	CreatedAt     time.Time     `db:"created_at" json:"createdAt"`
	UpdatedAt     time.Time     `db:"updated_at" json:"updatedAt"`
}
