package repository

import (
	"context"
	"fmt"

	"arenawallet/database"
	"arenawallet/models"
	"arenawallet/service"

	"github.com/jackc/pgx/v5"
)

const accountColumns = `
	id, name, email, password_hash, role, profile_image, phone, address,
	referral_code, referred_by, referral_count, pending_referral_balance,
	balance, is_suspended, created_at, updated_at`

// AccountRepository implements the AccountRepository interface
type AccountRepository struct {
	q queryable
}

// NewAccountRepository creates a new account repository
func NewAccountRepository(db *database.DB) *AccountRepository {
	return &AccountRepository{q: db.Pool}
}

// newAccountRepositoryWithTx creates a new account repository with a transaction
func newAccountRepositoryWithTx(tx queryable) *AccountRepository {
	return &AccountRepository{q: tx}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAccount(row rowScanner) (*models.Account, error) {
	var account models.Account
	err := row.Scan(
		&account.ID,
		&account.Name,
		&account.Email,
		&account.PasswordHash,
		&account.Role,
		&account.ProfileImage,
		&account.Phone,
		&account.Address,
		&account.ReferralCode,
		&account.ReferredBy,
		&account.ReferralCount,
		&account.PendingReferralBalance,
		&account.Balance,
		&account.IsSuspended,
		&account.CreatedAt,
		&account.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &account, nil
}

func (r *AccountRepository) getBy(ctx context.Context, where string, arg any) (*models.Account, error) {
	query := fmt.Sprintf(`SELECT %s FROM accounts WHERE %s`, accountColumns, where)

	account, err := scanAccount(r.q.QueryRow(ctx, query, arg))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account by %s: %w", where, err)
	}
	return account, nil
}

// GetByID retrieves an account by id, nil if not found
func (r *AccountRepository) GetByID(ctx context.Context, id int64) (*models.Account, error) {
	return r.getBy(ctx, "id = $1", id)
}

// GetByEmail retrieves an account by email, nil if not found
func (r *AccountRepository) GetByEmail(ctx context.Context, email string) (*models.Account, error) {
	return r.getBy(ctx, "email = $1", email)
}

// GetByPhone retrieves an account by phone number, nil if not found
func (r *AccountRepository) GetByPhone(ctx context.Context, phone string) (*models.Account, error) {
	return r.getBy(ctx, "phone = $1", phone)
}

// GetByReferralCode retrieves an account by referral code, nil if not found
func (r *AccountRepository) GetByReferralCode(ctx context.Context, code string) (*models.Account, error) {
	return r.getBy(ctx, "referral_code = $1", code)
}

// Create inserts a new account and fills its id and timestamps
func (r *AccountRepository) Create(ctx context.Context, account *models.Account) error {
	query := `
		INSERT INTO accounts
		(name, email, password_hash, role, phone, address, referral_code, referred_by, balance)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at
	`

	err := r.q.QueryRow(ctx, query,
		account.Name,
		account.Email,
		account.PasswordHash,
		account.Role,
		account.Phone,
		account.Address,
		account.ReferralCode,
		account.ReferredBy,
		account.Balance,
	).Scan(&account.ID, &account.CreatedAt, &account.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create account %s: %w", account.Email, err)
	}

	return nil
}

// UpdateProfile updates the mutable profile fields
func (r *AccountRepository) UpdateProfile(ctx context.Context, account *models.Account) error {
	query := `
		UPDATE accounts
		SET name = $1, phone = $2, address = $3, profile_image = $4, updated_at = NOW()
		WHERE id = $5
	`

	result, err := r.q.Exec(ctx, query,
		account.Name,
		account.Phone,
		account.Address,
		account.ProfileImage,
		account.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update account %d: %w", account.ID, err)
	}
	if result.RowsAffected() == 0 {
		return service.ErrNotFound
	}

	return nil
}

// AddBalance credits an account atomically and returns the new balance
func (r *AccountRepository) AddBalance(ctx context.Context, id int64, amount int64) (int64, error) {
	if amount <= 0 {
		return 0, fmt.Errorf("%w: credit amount must be positive", service.ErrValidation)
	}

	query := `
		UPDATE accounts
		SET balance = balance + $1, updated_at = NOW()
		WHERE id = $2
		RETURNING balance
	`

	var newBalance int64
	err := r.q.QueryRow(ctx, query, amount, id).Scan(&newBalance)
	if err == pgx.ErrNoRows {
		return 0, service.ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("failed to add balance for account %d: %w", id, err)
	}

	return newBalance, nil
}

// DeductBalance debits an account atomically, checking sufficiency in the
// same statement as the decrement so concurrent debits cannot both pass a
// stale balance check
func (r *AccountRepository) DeductBalance(ctx context.Context, id int64, amount int64) (int64, error) {
	if amount <= 0 {
		return 0, fmt.Errorf("%w: debit amount must be positive", service.ErrValidation)
	}

	query := `
		UPDATE accounts
		SET balance = balance - $1, updated_at = NOW()
		WHERE id = $2 AND balance >= $1
		RETURNING balance
	`

	var newBalance int64
	err := r.q.QueryRow(ctx, query, amount, id).Scan(&newBalance)
	if err == pgx.ErrNoRows {
		// Zero rows: the account is missing or the balance check failed
		account, gerr := r.GetByID(ctx, id)
		if gerr != nil {
			return 0, fmt.Errorf("failed to check account %d: %w", id, gerr)
		}
		if account == nil {
			return 0, service.ErrNotFound
		}
		return 0, fmt.Errorf("%w: have %d, need %d", service.ErrInsufficientFunds, account.Balance, amount)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to deduct balance for account %d: %w", id, err)
	}

	return newBalance, nil
}

// AccruePendingReferral adds to the pending referral balance and bumps
// the referral count
func (r *AccountRepository) AccruePendingReferral(ctx context.Context, id int64, amount int64) error {
	if amount <= 0 {
		return fmt.Errorf("%w: accrual amount must be positive", service.ErrValidation)
	}

	query := `
		UPDATE accounts
		SET pending_referral_balance = pending_referral_balance + $1,
		    referral_count = referral_count + 1,
		    updated_at = NOW()
		WHERE id = $2
	`

	result, err := r.q.Exec(ctx, query, amount, id)
	if err != nil {
		return fmt.Errorf("failed to accrue referral balance for account %d: %w", id, err)
	}
	if result.RowsAffected() == 0 {
		return service.ErrNotFound
	}

	return nil
}

// DrainPendingReferral atomically converts up to max of the pending
// referral balance, returning the drained amount. The decrement is
// bounded in SQL so the pending column can never go negative.
func (r *AccountRepository) DrainPendingReferral(ctx context.Context, id int64, max int64) (int64, error) {
	if max <= 0 {
		return 0, fmt.Errorf("%w: drain bound must be positive", service.ErrValidation)
	}

	query := `
		WITH current AS (
			SELECT pending_referral_balance AS pending
			FROM accounts
			WHERE id = $1
			FOR UPDATE
		)
		UPDATE accounts a
		SET pending_referral_balance = a.pending_referral_balance - LEAST(current.pending, $2),
		    updated_at = NOW()
		FROM current
		WHERE a.id = $1
		RETURNING LEAST(current.pending, $2)
	`

	var drained int64
	err := r.q.QueryRow(ctx, query, id, max).Scan(&drained)
	if err == pgx.ErrNoRows {
		return 0, service.ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("failed to drain referral balance for account %d: %w", id, err)
	}

	return drained, nil
}

// SetSuspended soft-suspends or reinstates an account
func (r *AccountRepository) SetSuspended(ctx context.Context, id int64, suspended bool) error {
	query := `
		UPDATE accounts
		SET is_suspended = $1, updated_at = NOW()
		WHERE id = $2
	`

	result, err := r.q.Exec(ctx, query, suspended, id)
	if err != nil {
		return fmt.Errorf("failed to set suspension for account %d: %w", id, err)
	}
	if result.RowsAffected() == 0 {
		return service.ErrNotFound
	}

	return nil
}

// SetRole changes an account's role
func (r *AccountRepository) SetRole(ctx context.Context, id int64, role models.Role) error {
	query := `
		UPDATE accounts
		SET role = $1, updated_at = NOW()
		WHERE id = $2
	`

	result, err := r.q.Exec(ctx, query, role, id)
	if err != nil {
		return fmt.Errorf("failed to set role for account %d: %w", id, err)
	}
	if result.RowsAffected() == 0 {
		return service.ErrNotFound
	}

	return nil
}

// ListReferred returns accounts referred by the given account
func (r *AccountRepository) ListReferred(ctx context.Context, referrerID int64) ([]*models.Account, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM accounts
		WHERE referred_by = $1
		ORDER BY created_at DESC`, accountColumns)

	rows, err := r.q.Query(ctx, query, referrerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list referred accounts for %d: %w", referrerID, err)
	}
	defer rows.Close()

	var accounts []*models.Account
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		accounts = append(accounts, account)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate accounts: %w", err)
	}

	return accounts, nil
}

// GetAll returns all accounts
func (r *AccountRepository) GetAll(ctx context.Context) ([]*models.Account, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM accounts
		ORDER BY created_at DESC`, accountColumns)

	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get all accounts: %w", err)
	}
	defer rows.Close()

	var accounts []*models.Account
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		accounts = append(accounts, account)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate accounts: %w", err)
	}

	return accounts, nil
}
