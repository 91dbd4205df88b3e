package service

import (
	"context"
	"fmt"
	"testing"

	"arenawallet/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestApplyDelta_Credit(t *testing.T) {
	ctx := context.Background()

	mockUoW := new(MockUnitOfWork)
	mockAccountRepo := new(MockAccountRepository)
	mockLedgerRepo := new(MockLedgerRepository)
	mockUoW.SetRepositories(mockAccountRepo, mockLedgerRepo, nil, nil, nil, nil, nil, nil)

	mockAccountRepo.On("AddBalance", ctx, int64(1), int64(500)).Return(int64(1500), nil)
	mockLedgerRepo.On("Record", ctx, mock.MatchedBy(func(e *models.LedgerEntry) bool {
		return e.AccountID == 1 &&
			e.Amount == 500 &&
			e.Kind == models.EntryKindTopUp &&
			e.ReferenceID != nil && *e.ReferenceID == 7 &&
			e.ReferenceKind != nil && *e.ReferenceKind == models.ReferenceKindTopUp
	})).Return(nil)

	entry, err := ApplyDelta(ctx, mockUoW, 1, 500, models.EntryKindTopUp, "top-up approved", models.Ref(7, models.ReferenceKindTopUp))

	assert.NoError(t, err)
	assert.NotNil(t, entry)
	assert.Equal(t, int64(500), entry.Amount)

	mockAccountRepo.AssertExpectations(t)
	mockLedgerRepo.AssertExpectations(t)
}

func TestApplyDelta_Debit(t *testing.T) {
	ctx := context.Background()

	mockUoW := new(MockUnitOfWork)
	mockAccountRepo := new(MockAccountRepository)
	mockLedgerRepo := new(MockLedgerRepository)
	mockUoW.SetRepositories(mockAccountRepo, mockLedgerRepo, nil, nil, nil, nil, nil, nil)

	mockAccountRepo.On("DeductBalance", ctx, int64(1), int64(300)).Return(int64(700), nil)
	mockLedgerRepo.On("Record", ctx, mock.MatchedBy(func(e *models.LedgerEntry) bool {
		return e.AccountID == 1 && e.Amount == -300 && e.Kind == models.EntryKindWithdrawal
	})).Return(nil)

	entry, err := ApplyDelta(ctx, mockUoW, 1, -300, models.EntryKindWithdrawal, "withdrawal", nil)

	assert.NoError(t, err)
	assert.Equal(t, int64(-300), entry.Amount)
	assert.Nil(t, entry.ReferenceID)

	mockAccountRepo.AssertExpectations(t)
	mockLedgerRepo.AssertExpectations(t)
}

func TestApplyDelta_ZeroAmount(t *testing.T) {
	ctx := context.Background()

	mockUoW := new(MockUnitOfWork)
	mockUoW.SetRepositories(new(MockAccountRepository), new(MockLedgerRepository), nil, nil, nil, nil, nil, nil)

	entry, err := ApplyDelta(ctx, mockUoW, 1, 0, models.EntryKindTopUp, "nothing", nil)

	assert.ErrorIs(t, err, ErrValidation)
	assert.Nil(t, entry)
}

func TestApplyDelta_InsufficientFunds(t *testing.T) {
	ctx := context.Background()

	mockUoW := new(MockUnitOfWork)
	mockAccountRepo := new(MockAccountRepository)
	mockLedgerRepo := new(MockLedgerRepository)
	mockUoW.SetRepositories(mockAccountRepo, mockLedgerRepo, nil, nil, nil, nil, nil, nil)

	mockAccountRepo.On("DeductBalance", ctx, int64(1), int64(5000)).
		Return(int64(0), fmt.Errorf("%w: have 100, need 5000", ErrInsufficientFunds))

	entry, err := ApplyDelta(ctx, mockUoW, 1, -5000, models.EntryKindWithdrawal, "withdrawal", nil)

	assert.ErrorIs(t, err, ErrInsufficientFunds)
	assert.Nil(t, entry)

	// No ledger entry must be written for a failed debit
	mockLedgerRepo.AssertNotCalled(t, "Record", mock.Anything, mock.Anything)
}
