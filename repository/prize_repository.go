package repository

import (
	"context"
	"fmt"

	"arenawallet/database"
	"arenawallet/models"
	"arenawallet/service"

	"github.com/jackc/pgx/v5"
)

const prizeColumns = `
	id, account_id, tournament_id, tournament_code, prize_type, amount, kills, position,
	player_name, player_id, account_number, payment_method, proof_image, status, notes,
	created_at, updated_at`

// PrizeRepository implements the PrizeRepository interface
type PrizeRepository struct {
	q queryable
}

// NewPrizeRepository creates a new prize repository
func NewPrizeRepository(db *database.DB) *PrizeRepository {
	return &PrizeRepository{q: db.Pool}
}

// newPrizeRepositoryWithTx creates a new prize repository with a transaction
func newPrizeRepositoryWithTx(tx queryable) *PrizeRepository {
	return &PrizeRepository{q: tx}
}

func scanPrize(row rowScanner) (*models.PrizeRequest, error) {
	var request models.PrizeRequest
	err := row.Scan(
		&request.ID,
		&request.AccountID,
		&request.TournamentID,
		&request.TournamentCode,
		&request.PrizeType,
		&request.Amount,
		&request.Kills,
		&request.Position,
		&request.PlayerName,
		&request.PlayerID,
		&request.AccountNumber,
		&request.PaymentMethod,
		&request.ProofImage,
		&request.Status,
		&request.Notes,
		&request.CreatedAt,
		&request.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &request, nil
}

// Create inserts a new prize request with whatever status it carries,
// so admin-distributed prizes can be born approved
func (r *PrizeRepository) Create(ctx context.Context, request *models.PrizeRequest) error {
	if request.Status == "" {
		request.Status = models.RequestStatusPending
	}

	query := `
		INSERT INTO prize_requests
		(account_id, tournament_id, tournament_code, prize_type, amount, kills, position,
		 player_name, player_id, account_number, payment_method, proof_image, status, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id, created_at, updated_at
	`

	err := r.q.QueryRow(ctx, query,
		request.AccountID,
		request.TournamentID,
		request.TournamentCode,
		request.PrizeType,
		request.Amount,
		request.Kills,
		request.Position,
		request.PlayerName,
		request.PlayerID,
		request.AccountNumber,
		request.PaymentMethod,
		request.ProofImage,
		request.Status,
		request.Notes,
	).Scan(&request.ID, &request.CreatedAt, &request.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create prize request for account %d: %w", request.AccountID, err)
	}

	return nil
}

// GetByID retrieves a prize request by id, nil if not found
func (r *PrizeRepository) GetByID(ctx context.Context, id int64) (*models.PrizeRequest, error) {
	query := fmt.Sprintf(`SELECT %s FROM prize_requests WHERE id = $1`, prizeColumns)

	request, err := scanPrize(r.q.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get prize request %d: %w", id, err)
	}
	return request, nil
}

// Finalize flips a pending request to a terminal status, optionally
// overriding the amount in the same statement. Zero rows means the
// request was already finalized (or missing).
func (r *PrizeRepository) Finalize(ctx context.Context, id int64, status models.RequestStatus, notes string, amount *int64) (bool, error) {
	query := `
		UPDATE prize_requests
		SET status = $2, notes = $3, amount = COALESCE($4, amount), updated_at = NOW()
		WHERE id = $1 AND status = 'pending'
	`

	result, err := r.q.Exec(ctx, query, id, status, notes, amount)
	if err != nil {
		return false, fmt.Errorf("failed to finalize prize request %d: %w", id, err)
	}

	return result.RowsAffected() > 0, nil
}

// List returns one page of prize requests plus the total count
func (r *PrizeRepository) List(ctx context.Context, filter service.RequestFilter) ([]*models.PrizeRequest, int64, error) {
	where := "WHERE TRUE"
	var args []any

	if filter.AccountID != nil {
		args = append(args, *filter.AccountID)
		where += fmt.Sprintf(" AND account_id = $%d", len(args))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		where += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		where += fmt.Sprintf(" AND (player_name ILIKE $%d OR tournament_code ILIKE $%d)", len(args), len(args))
	}

	var total int64
	countQuery := "SELECT COUNT(*) FROM prize_requests " + where
	if err := r.q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count prize requests: %w", err)
	}

	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)
	query := fmt.Sprintf(`
		SELECT %s FROM prize_requests
		%s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d`, prizeColumns, where, len(args)-1, len(args))

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list prize requests: %w", err)
	}
	defer rows.Close()

	var requests []*models.PrizeRequest
	for rows.Next() {
		request, err := scanPrize(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan prize request: %w", err)
		}
		requests = append(requests, request)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate prize requests: %w", err)
	}

	return requests, total, nil
}
