package models

import (
	"time"
)

// Registration ties an account to a tournament seat. Created only
// after the entry fee debit succeeds; (tournament_id, account_id)
// is unique.
type Registration struct {
	ID           int64     `db:"id" json:"id"`
	TournamentID int64     `db:"tournament_id" json:"tournamentId"`
	AccountID    int64     `db:"account_id" json:"accountId"`
	PlayerName   string    `db:"player_name" json:"playerName"`
	PlayerID     string    `db:"player_id" json:"playerId"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
}
