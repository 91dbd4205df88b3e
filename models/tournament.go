package models

import (
	"time"
)

// Tournament holds the metadata the wallet core needs to admit players:
// activity flags, seat limits and the entry fee. The remaining fields
// describe the match itself.
type Tournament struct {
	ID                int64     `db:"id" json:"id"`
	Title             string    `db:"title" json:"title"`
	Game              string    `db:"game" json:"game"`
	Device            string    `db:"device" json:"device,omitempty"`
	Mood              string    `db:"mood" json:"mood,omitempty"`
	TournamentCode    string    `db:"tournament_code" json:"tournamentCode"`
	Logo              string    `db:"logo" json:"logo,omitempty"`
	CoverImage        string    `db:"cover_image" json:"coverImage,omitempty"`
	Description       string    `db:"description" json:"description,omitempty"`
	Type              string    `db:"type" json:"type,omitempty"`
	Version           string    `db:"version" json:"version,omitempty"`
	Map               string    `db:"map" json:"map,omitempty"`
	MatchType         string    `db:"match_type" json:"matchType,omitempty"`
	EntryFee          int64     `db:"entry_fee" json:"entryFee"`
	MatchSchedule     time.Time `db:"match_schedule" json:"matchSchedule"`
	WinningPrize      int64     `db:"winning_prize" json:"winningPrize"`
	PerKillPrize      int64     `db:"per_kill_prize" json:"perKillPrize"`
	Rules             string    `db:"rules" json:"rules,omitempty"`
	MaxPlayers        int       `db:"max_players" json:"maxPlayers"`
	PlayersRegistered int       `db:"players_registered" json:"playersRegistered"`
	IsActive          bool      `db:"is_active" json:"isActive"`
	IsCompleted       bool      `db:"is_completed" json:"isCompleted"`
	RoomID            string    `db:"room_id" json:"roomId,omitempty"`
	RoomPassword      string    `db:"room_password" json:"roomPassword,omitempty"`
	CreatedAt         time.Time `db:"created_at" json:"createdAt"`
}
