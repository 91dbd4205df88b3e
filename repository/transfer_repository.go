package repository

import (
	"context"
	"fmt"

	"arenawallet/database"
	"arenawallet/models"
)

// TransferRepository implements the TransferRepository interface
type TransferRepository struct {
	q queryable
}

// NewTransferRepository creates a new transfer repository
func NewTransferRepository(db *database.DB) *TransferRepository {
	return &TransferRepository{q: db.Pool}
}

// newTransferRepositoryWithTx creates a new transfer repository with a transaction
func newTransferRepositoryWithTx(tx queryable) *TransferRepository {
	return &TransferRepository{q: tx}
}

// Create inserts a transfer record and fills its id and timestamp
func (r *TransferRepository) Create(ctx context.Context, transfer *models.Transfer) error {
	query := `
		INSERT INTO transfers (sender_id, recipient_id, amount)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	err := r.q.QueryRow(ctx, query,
		transfer.SenderID,
		transfer.RecipientID,
		transfer.Amount,
	).Scan(&transfer.ID, &transfer.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to create transfer from %d to %d: %w", transfer.SenderID, transfer.RecipientID, err)
	}

	return nil
}

// ListByAccount returns one page of transfers where the account is
// sender or recipient, newest first, plus the total count
func (r *TransferRepository) ListByAccount(ctx context.Context, accountID int64, page, limit int) ([]*models.Transfer, int64, error) {
	var total int64
	countQuery := `SELECT COUNT(*) FROM transfers WHERE sender_id = $1 OR recipient_id = $1`
	if err := r.q.QueryRow(ctx, countQuery, accountID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count transfers for account %d: %w", accountID, err)
	}

	query := `
		SELECT id, sender_id, recipient_id, amount, created_at
		FROM transfers
		WHERE sender_id = $1 OR recipient_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.q.Query(ctx, query, accountID, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list transfers for account %d: %w", accountID, err)
	}
	defer rows.Close()

	var transfers []*models.Transfer
	for rows.Next() {
		var transfer models.Transfer
		err := rows.Scan(
			&transfer.ID,
			&transfer.SenderID,
			&transfer.RecipientID,
			&transfer.Amount,
			&transfer.CreatedAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan transfer: %w", err)
		}
		transfers = append(transfers, &transfer)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate transfers: %w", err)
	}

	return transfers, total, nil
}
