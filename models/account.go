package models

import (
	"time"
)

// Role represents an account's capability level
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Account represents a player's wallet and profile state.
// Balance is stored in minor units (poisha) and must only be
// mutated through the ledger engine.
type Account struct {
	ID                     int64     `db:"id"`
	Name                   string    `db:"name"`
	Email                  string    `db:"email"`
	PasswordHash           string    `db:"password_hash"`
	Role                   Role      `db:"role"`
	ProfileImage           string    `db:"profile_image"`
	Phone                  string    `db:"phone"`
	Address                string    `db:"address"`
	ReferralCode           string    `db:"referral_code"`
	ReferredBy             *int64    `db:"referred_by"`
	ReferralCount          int       `db:"referral_count"`
	PendingReferralBalance int64     `db:"pending_referral_balance"`
	Balance                int64     `db:"balance"`
	IsSuspended            bool      `db:"is_suspended"`
	CreatedAt              time.Time `db:"created_at"`
	UpdatedAt              time.Time `db:"updated_at"`
}

// IsAdmin reports whether the account holds the admin capability
func (a *Account) IsAdmin() bool {
	return a.Role == RoleAdmin
}
