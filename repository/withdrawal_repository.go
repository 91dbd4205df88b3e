package repository

import (
	"context"
	"fmt"

	"arenawallet/database"
	"arenawallet/models"
	"arenawallet/service"

	"github.com/jackc/pgx/v5"
)

const withdrawalColumns = `
	id, account_id, amount, account_number, payment_method, status, notes, created_at, updated_at`

// WithdrawalRepository implements the WithdrawalRepository interface
type WithdrawalRepository struct {
	q queryable
}

// NewWithdrawalRepository creates a new withdrawal repository
func NewWithdrawalRepository(db *database.DB) *WithdrawalRepository {
	return &WithdrawalRepository{q: db.Pool}
}

// newWithdrawalRepositoryWithTx creates a new withdrawal repository with a transaction
func newWithdrawalRepositoryWithTx(tx queryable) *WithdrawalRepository {
	return &WithdrawalRepository{q: tx}
}

func scanWithdrawal(row rowScanner) (*models.WithdrawalRequest, error) {
	var request models.WithdrawalRequest
	err := row.Scan(
		&request.ID,
		&request.AccountID,
		&request.Amount,
		&request.AccountNumber,
		&request.PaymentMethod,
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

// Create inserts a new pending withdrawal request
func (r *WithdrawalRepository) Create(ctx context.Context, request *models.WithdrawalRequest) error {
	query := `
		INSERT INTO withdrawal_requests (account_id, amount, account_number, payment_method)
		VALUES ($1, $2, $3, $4)
		RETURNING id, status, created_at, updated_at
	`

	err := r.q.QueryRow(ctx, query,
		request.AccountID,
		request.Amount,
		request.AccountNumber,
		request.PaymentMethod,
	).Scan(&request.ID, &request.Status, &request.CreatedAt, &request.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create withdrawal request for account %d: %w", request.AccountID, err)
	}

	return nil
}

// GetByID retrieves a withdrawal request by id, nil if not found
func (r *WithdrawalRepository) GetByID(ctx context.Context, id int64) (*models.WithdrawalRequest, error) {
	query := fmt.Sprintf(`SELECT %s FROM withdrawal_requests WHERE id = $1`, withdrawalColumns)

	request, err := scanWithdrawal(r.q.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get withdrawal request %d: %w", id, err)
	}
	return request, nil
}

// Finalize flips a pending request to a terminal status. Zero rows
// means the request was already finalized (or missing).
func (r *WithdrawalRepository) Finalize(ctx context.Context, id int64, status models.RequestStatus, notes string) (bool, error) {
	query := `
		UPDATE withdrawal_requests
		SET status = $2, notes = $3, updated_at = NOW()
		WHERE id = $1 AND status = 'pending'
	`

	result, err := r.q.Exec(ctx, query, id, status, notes)
	if err != nil {
		return false, fmt.Errorf("failed to finalize withdrawal request %d: %w", id, err)
	}

	return result.RowsAffected() > 0, nil
}

// List returns one page of withdrawal requests plus the total count
func (r *WithdrawalRepository) List(ctx context.Context, filter service.RequestFilter) ([]*models.WithdrawalRequest, int64, error) {
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
		where += fmt.Sprintf(" AND account_number ILIKE $%d", len(args))
	}

	var total int64
	countQuery := "SELECT COUNT(*) FROM withdrawal_requests " + where
	if err := r.q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count withdrawal requests: %w", err)
	}

	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)
	query := fmt.Sprintf(`
		SELECT %s FROM withdrawal_requests
		%s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d`, withdrawalColumns, where, len(args)-1, len(args))

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list withdrawal requests: %w", err)
	}
	defer rows.Close()

	var requests []*models.WithdrawalRequest
	for rows.Next() {
		request, err := scanWithdrawal(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan withdrawal request: %w", err)
		}
		requests = append(requests, request)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate withdrawal requests: %w", err)
	}

	return requests, total, nil
}
