package repository

import (
	"context"
	"errors"
	"fmt"

	"arenawallet/database"
	"arenawallet/models"
	"arenawallet/service"

	"github.com/jackc/pgx/v5/pgconn"
)

// RegistrationRepository implements the RegistrationRepository interface
type RegistrationRepository struct {
	q queryable
}

// NewRegistrationRepository creates a new registration repository
func NewRegistrationRepository(db *database.DB) *RegistrationRepository {
	return &RegistrationRepository{q: db.Pool}
}

// newRegistrationRepositoryWithTx creates a new registration repository with a transaction
func newRegistrationRepositoryWithTx(tx queryable) *RegistrationRepository {
	return &RegistrationRepository{q: tx}
}

// Create inserts a registration; the (tournament_id, account_id) unique
// constraint backs the one-seat-per-player rule and surfaces as ErrDuplicate
func (r *RegistrationRepository) Create(ctx context.Context, registration *models.Registration) error {
	query := `
		INSERT INTO tournament_registrations (tournament_id, account_id, player_name, player_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	err := r.q.QueryRow(ctx, query,
		registration.TournamentID,
		registration.AccountID,
		registration.PlayerName,
		registration.PlayerID,
	).Scan(&registration.ID, &registration.CreatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return service.ErrDuplicate
		}
		return fmt.Errorf("failed to create registration for account %d in tournament %d: %w",
			registration.AccountID, registration.TournamentID, err)
	}

	return nil
}

// Exists reports whether the account already holds a seat in the tournament
func (r *RegistrationRepository) Exists(ctx context.Context, tournamentID, accountID int64) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM tournament_registrations
			WHERE tournament_id = $1 AND account_id = $2
		)
	`

	var exists bool
	if err := r.q.QueryRow(ctx, query, tournamentID, accountID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check registration for account %d in tournament %d: %w",
			accountID, tournamentID, err)
	}

	return exists, nil
}

// ListByTournament returns all registrations for a tournament
func (r *RegistrationRepository) ListByTournament(ctx context.Context, tournamentID int64) ([]*models.Registration, error) {
	query := `
		SELECT id, tournament_id, account_id, player_name, player_id, created_at
		FROM tournament_registrations
		WHERE tournament_id = $1
		ORDER BY created_at
	`

	return r.list(ctx, query, tournamentID)
}

// ListByAccount returns all registrations held by an account
func (r *RegistrationRepository) ListByAccount(ctx context.Context, accountID int64) ([]*models.Registration, error) {
	query := `
		SELECT id, tournament_id, account_id, player_name, player_id, created_at
		FROM tournament_registrations
		WHERE account_id = $1
		ORDER BY created_at DESC
	`

	return r.list(ctx, query, accountID)
}

func (r *RegistrationRepository) list(ctx context.Context, query string, arg any) ([]*models.Registration, error) {
	rows, err := r.q.Query(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to list registrations: %w", err)
	}
	defer rows.Close()

	var registrations []*models.Registration
	for rows.Next() {
		var registration models.Registration
		err := rows.Scan(
			&registration.ID,
			&registration.TournamentID,
			&registration.AccountID,
			&registration.PlayerName,
			&registration.PlayerID,
			&registration.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan registration: %w", err)
		}
		registrations = append(registrations, &registration)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate registrations: %w", err)
	}

	return registrations, nil
}
