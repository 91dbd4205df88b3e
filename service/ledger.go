package service

import (
	"context"
	"fmt"

	"arenawallet/events"
	"arenawallet/models"
)

// ApplyDelta is the single sanctioned path for mutating an account
// balance. It applies the signed amount with an atomic conditional
// update, appends the matching ledger entry in the same unit of work
// and publishes a balance change event that flushes after commit.
// A debit that would take the balance negative fails with
// ErrInsufficientFunds and leaves nothing applied.
func ApplyDelta(ctx context.Context, uow UnitOfWork, accountID int64, amount int64, kind models.EntryKind, description string, ref *models.Reference) (*models.LedgerEntry, error) {
	if amount == 0 {
		return nil, fmt.Errorf("%w: zero amount delta", ErrValidation)
	}

	var newBalance int64
	var err error
	if amount < 0 {
		newBalance, err = uow.AccountRepository().DeductBalance(ctx, accountID, -amount)
	} else {
		newBalance, err = uow.AccountRepository().AddBalance(ctx, accountID, amount)
	}
	if err != nil {
		return nil, err
	}

	entry := &models.LedgerEntry{
		AccountID:   accountID,
		Amount:      amount,
		Kind:        kind,
		Description: description,
	}
	if ref != nil {
		entry.ReferenceID = &ref.ID
		refKind := ref.Kind
		entry.ReferenceKind = &refKind
	}

	if err := uow.LedgerRepository().Record(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to record ledger entry: %w", err)
	}

	uow.EventBus().Publish(events.BalanceChangeEvent{
		AccountID:  accountID,
		OldBalance: newBalance - amount,
		NewBalance: newBalance,
		Kind:       kind,
		Amount:     amount,
	})

	return entry, nil
}
