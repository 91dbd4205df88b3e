package repository

import (
	"context"
	"fmt"

	"arenawallet/database"
	"arenawallet/models"
	"arenawallet/service"

	"github.com/jackc/pgx/v5"
)

const tournamentColumns = `
	id, title, game, device, mood, tournament_code, logo, cover_image, description,
	type, version, map, match_type, entry_fee, match_schedule, winning_prize,
	per_kill_prize, rules, max_players, players_registered, is_active, is_completed,
	room_id, room_password, created_at`

// TournamentRepository implements the TournamentRepository interface
type TournamentRepository struct {
	q queryable
}

// NewTournamentRepository creates a new tournament repository
func NewTournamentRepository(db *database.DB) *TournamentRepository {
	return &TournamentRepository{q: db.Pool}
}

// newTournamentRepositoryWithTx creates a new tournament repository with a transaction
func newTournamentRepositoryWithTx(tx queryable) *TournamentRepository {
	return &TournamentRepository{q: tx}
}

func scanTournament(row rowScanner) (*models.Tournament, error) {
	var t models.Tournament
	err := row.Scan(
		&t.ID,
		&t.Title,
		&t.Game,
		&t.Device,
		&t.Mood,
		&t.TournamentCode,
		&t.Logo,
		&t.CoverImage,
		&t.Description,
		&t.Type,
		&t.Version,
		&t.Map,
		&t.MatchType,
		&t.EntryFee,
		&t.MatchSchedule,
		&t.WinningPrize,
		&t.PerKillPrize,
		&t.Rules,
		&t.MaxPlayers,
		&t.PlayersRegistered,
		&t.IsActive,
		&t.IsCompleted,
		&t.RoomID,
		&t.RoomPassword,
		&t.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Create inserts a new tournament and fills its id and timestamp
func (r *TournamentRepository) Create(ctx context.Context, tournament *models.Tournament) error {
	query := `
		INSERT INTO tournaments
		(title, game, device, mood, tournament_code, logo, cover_image, description,
		 type, version, map, match_type, entry_fee, match_schedule, winning_prize,
		 per_kill_prize, rules, max_players, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
		RETURNING id, players_registered, is_completed, created_at
	`

	err := r.q.QueryRow(ctx, query,
		tournament.Title,
		tournament.Game,
		tournament.Device,
		tournament.Mood,
		tournament.TournamentCode,
		tournament.Logo,
		tournament.CoverImage,
		tournament.Description,
		tournament.Type,
		tournament.Version,
		tournament.Map,
		tournament.MatchType,
		tournament.EntryFee,
		tournament.MatchSchedule,
		tournament.WinningPrize,
		tournament.PerKillPrize,
		tournament.Rules,
		tournament.MaxPlayers,
		tournament.IsActive,
	).Scan(&tournament.ID, &tournament.PlayersRegistered, &tournament.IsCompleted, &tournament.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to create tournament %q: %w", tournament.Title, err)
	}

	return nil
}

// GetByID retrieves a tournament by id, nil if not found
func (r *TournamentRepository) GetByID(ctx context.Context, id int64) (*models.Tournament, error) {
	query := fmt.Sprintf(`SELECT %s FROM tournaments WHERE id = $1`, tournamentColumns)

	tournament, err := scanTournament(r.q.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get tournament %d: %w", id, err)
	}
	return tournament, nil
}

// Update updates a tournament's mutable metadata and flags
func (r *TournamentRepository) Update(ctx context.Context, tournament *models.Tournament) error {
	query := `
		UPDATE tournaments
		SET title = $1, game = $2, description = $3, entry_fee = $4, match_schedule = $5,
		    winning_prize = $6, per_kill_prize = $7, rules = $8, max_players = $9,
		    is_active = $10, is_completed = $11, room_id = $12, room_password = $13
		WHERE id = $14
	`

	result, err := r.q.Exec(ctx, query,
		tournament.Title,
		tournament.Game,
		tournament.Description,
		tournament.EntryFee,
		tournament.MatchSchedule,
		tournament.WinningPrize,
		tournament.PerKillPrize,
		tournament.Rules,
		tournament.MaxPlayers,
		tournament.IsActive,
		tournament.IsCompleted,
		tournament.RoomID,
		tournament.RoomPassword,
		tournament.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update tournament %d: %w", tournament.ID, err)
	}
	if result.RowsAffected() == 0 {
		return service.ErrNotFound
	}

	return nil
}

// IncrementPlayers bumps players_registered if a seat remains. The seat
// check and the increment share one statement so concurrent registrations
// cannot oversell the tournament.
func (r *TournamentRepository) IncrementPlayers(ctx context.Context, id int64) (bool, error) {
	query := `
		UPDATE tournaments
		SET players_registered = players_registered + 1
		WHERE id = $1 AND players_registered < max_players
	`

	result, err := r.q.Exec(ctx, query, id)
	if err != nil {
		return false, fmt.Errorf("failed to increment players for tournament %d: %w", id, err)
	}

	return result.RowsAffected() > 0, nil
}

// List returns tournaments, optionally only active ones, newest first
func (r *TournamentRepository) List(ctx context.Context, onlyActive bool) ([]*models.Tournament, error) {
	where := ""
	if onlyActive {
		where = "WHERE is_active AND NOT is_completed"
	}

	query := fmt.Sprintf(`
		SELECT %s FROM tournaments
		%s
		ORDER BY match_schedule DESC`, tournamentColumns, where)

	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list tournaments: %w", err)
	}
	defer rows.Close()

	var tournaments []*models.Tournament
	for rows.Next() {
		tournament, err := scanTournament(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan tournament: %w", err)
		}
		tournaments = append(tournaments, tournament)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate tournaments: %w", err)
	}

	return tournaments, nil
}
