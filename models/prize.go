package models

import (
	"time"
)

// PrizeType represents what a prize claim covers
type PrizeType string

const (
	PrizeTypeKill   PrizeType = "kill_prize"
	PrizeTypeWinner PrizeType = "winner_prize"
	PrizeTypeBoth   PrizeType = "both"
	PrizeTypeOther  PrizeType = "other"
)

// PrizeRequest is a player's claim for tournament winnings. Admins may
// override the amount at approval time; admin-distributed prizes are
// created directly in the approved state.
type PrizeRequest struct {
	ID             int64         `db:"id" json:"id"`
	AccountID      int64         `db:"account_id" json:"accountId"`
	TournamentID   int64         `db:"tournament_id" json:"tournamentId"`
	TournamentCode string        `db:"tournament_code" json:"tournamentCode"`
	PrizeType      PrizeType     `db:"prize_type" json:"prizeType"`
	Amount         int64         `db:"amount" json:"amount"`
	Kills          int           `db:"kills" json:"kills"`
	Position       int           `db:"position" json:"position"`
	PlayerName     string        `db:"player_name" json:"playerName"`
	PlayerID       string        `db:"player_id" json:"playerId,omitempty"`
	AccountNumber  string        `db:"account_number" json:"accountNumber,omitempty"`
	PaymentMethod  string        `db:"payment_method" json:"paymentMethod,omitempty"`
	ProofImage     string        `db:"proof_image" json:"proofImage,omitempty"`
	Status         RequestStatus `db:"status" json:"status"`
	Notes          string        `db:"notes" json:"notes,omitempty"`
	CreatedAt      time.Time     `db:"created_at" json:"createdAt"`
	UpdatedAt      time.Time     `db:"updated_at" json:"updatedAt"`
}
