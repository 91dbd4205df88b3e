package repository

import (
	"context"
	"fmt"

	"arenawallet/database"
	"arenawallet/models"
	"arenawallet/service"

	"github.com/jackc/pgx/v5"
)

const topUpColumns = `
	id, account_id, amount, transaction_id, slip_image, status, notes, created_at, updated_at`

// TopUpRepository implements the TopUpRepository interface
type TopUpRepository struct {
	q queryable
}

// NewTopUpRepository creates a new top-up repository
func NewTopUpRepository(db *database.DB) *TopUpRepository {
	return &TopUpRepository{q: db.Pool}
}

// newTopUpRepositoryWithTx creates a new top-up repository with a transaction
func newTopUpRepositoryWithTx(tx queryable) *TopUpRepository {
	return &TopUpRepository{q: tx}
}

func scanTopUp(row rowScanner) (*models.TopUpRequest, error) {
	var request models.TopUpRequest
	err := row.Scan(
		&request.ID,
		&request.AccountID,
		&request.Amount,
		&request.TransactionID,
		&request.SlipImage,
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

// Create inserts a new pending top-up request
func (r *TopUpRepository) Create(ctx context.Context, request *models.TopUpRequest) error {
	query := `
		INSERT INTO top_up_requests (account_id, amount, transaction_id, slip_image)
		VALUES ($1, $2, $3, $4)
		RETURNING id, status, created_at, updated_at
	`

	err := r.q.QueryRow(ctx, query,
		request.AccountID,
		request.Amount,
		request.TransactionID,
		request.SlipImage,
	).Scan(&request.ID, &request.Status, &request.CreatedAt, &request.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create top-up request for account %d: %w", request.AccountID, err)
	}

	return nil
}

// GetByID retrieves a top-up request by id, nil if not found
func (r *TopUpRepository) GetByID(ctx context.Context, id int64) (*models.TopUpRequest, error) {
	query := fmt.Sprintf(`SELECT %s FROM top_up_requests WHERE id = $1`, topUpColumns)

	request, err := scanTopUp(r.q.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get top-up request %d: %w", id, err)
	}
	return request, nil
}

// Finalize flips a pending request to a terminal status. The status
// guard lives in the statement itself: zero rows means the request was
// already finalized (or missing) and nothing was modified.
func (r *TopUpRepository) Finalize(ctx context.Context, id int64, status models.RequestStatus, notes string) (bool, error) {
	query := `
		UPDATE top_up_requests
		SET status = $2, notes = $3, updated_at = NOW()
		WHERE id = $1 AND status = 'pending'
	`

	result, err := r.q.Exec(ctx, query, id, status, notes)
	if err != nil {
		return false, fmt.Errorf("failed to finalize top-up request %d: %w", id, err)
	}

	return result.RowsAffected() > 0, nil
}

// List returns one page of top-up requests plus the total count
func (r *TopUpRepository) List(ctx context.Context, filter service.RequestFilter) ([]*models.TopUpRequest, int64, error) {
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
		where += fmt.Sprintf(" AND transaction_id ILIKE $%d", len(args))
	}

	var total int64
	countQuery := "SELECT COUNT(*) FROM top_up_requests " + where
	if err := r.q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count top-up requests: %w", err)
	}

	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)
	query := fmt.Sprintf(`
		SELECT %s FROM top_up_requests
		%s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d`, topUpColumns, where, len(args)-1, len(args))

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list top-up requests: %w", err)
	}
	defer rows.Close()

	var requests []*models.TopUpRequest
	for rows.Next() {
		request, err := scanTopUp(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan top-up request: %w", err)
		}
		requests = append(requests, request)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate top-up requests: %w", err)
	}

	return requests, total, nil
}
