package repository

import (
	"context"
	"testing"

	"arenawallet/models"
	"arenawallet/events"
	"arenawallet/repository/testutil"
	"arenawallet/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLedgerRepository_RecordAndSum(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	accountRepo := NewAccountRepository(testDB.DB)
	ledgerRepo := NewLedgerRepository(testDB.DB)
	factory := NewUnitOfWorkFactory(testDB.DB, events.NewBus())
	ctx := context.Background()

	account := testutil.CreateTestAccount("Karim", "karim@example.com")
	require.NoError(t, accountRepo.Create(ctx, account))

	// Mirror a sequence of balance changes through both the account and
	// the ledger, then check the audit invariant: balance == sum(entries)
	deltas := []struct {
		amount int64
		kind   models.EntryKind
	}{
		{500, models.EntryKindTopUp},
		{-50, models.EntryKindEntryFee},
		{200, models.EntryKindPrize},
		{-300, models.EntryKindWithdrawal},
		{300, models.EntryKindWithdrawalRefund},
	}

	for _, d := range deltas {
		entry := testutil.CreateTestLedgerEntry(account.ID, d.amount, d.kind)

		uow := factory.Create()
		require.NoError(t, uow.Begin(ctx))
		if d.amount > 0 {
			_, err := uow.AccountRepository().AddBalance(ctx, account.ID, d.amount)
			require.NoError(t, err)
		} else {
			_, err := uow.AccountRepository().DeductBalance(ctx, account.ID, -d.amount)
			require.NoError(t, err)
		}
		require.NoError(t, uow.LedgerRepository().Record(ctx, entry))
		require.NoError(t, uow.Commit())

		assert.NotZero(t, entry.ID)
		assert.False(t, entry.CreatedAt.IsZero())
	}

	sum, err := ledgerRepo.SumByAccount(ctx, account.ID)
	require.NoError(t, err)

	refreshed, err := accountRepo.GetByID(ctx, account.ID)
	require.NoError(t, err)
	assert.Equal(t, refreshed.Balance, sum)
	assert.Equal(t, int64(650), sum)
}

func TestLedgerRepository_WithdrawalReferenceKind(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	accountRepo := NewAccountRepository(testDB.DB)
	ledgerRepo := NewLedgerRepository(testDB.DB)
	ctx := context.Background()

	account := testutil.CreateTestAccount("Rahim", "rahim@example.com")
	require.NoError(t, accountRepo.Create(ctx, account))

	// Debit and refund entries for the same request must carry the same
	// reference kind, so the pair stays joinable to the request
	entry := testutil.CreateTestLedgerEntry(account.ID, -300, models.EntryKindWithdrawal)
	refID := int64(42)
	refKind := models.ReferenceKindWithdrawal
	entry.ReferenceID = &refID
	entry.ReferenceKind = &refKind
	require.NoError(t, ledgerRepo.Record(ctx, entry))

	refund := testutil.CreateTestLedgerEntry(account.ID, 300, models.EntryKindWithdrawalRefund)
	refund.ReferenceID = &refID
	refund.ReferenceKind = &refKind
	require.NoError(t, ledgerRepo.Record(ctx, refund))

	entries, total, err := ledgerRepo.ListByAccount(ctx, account.ID, service.LedgerFilter{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	for _, e := range entries {
		require.NotNil(t, e.ReferenceKind)
		assert.Equal(t, models.ReferenceKind("withdrawal"), *e.ReferenceKind)
		assert.Equal(t, int64(42), *e.ReferenceID)
	}
}

func TestLedgerRepository_ListByAccount(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	accountRepo := NewAccountRepository(testDB.DB)
	ledgerRepo := NewLedgerRepository(testDB.DB)
	ctx := context.Background()

	account := testutil.CreateTestAccount("Rina", "rina@example.com")
	require.NoError(t, accountRepo.Create(ctx, account))

	other := testutil.CreateTestAccount("Other", "other@example.com")
	require.NoError(t, accountRepo.Create(ctx, other))

	for i := 0; i < 5; i++ {
		require.NoError(t, ledgerRepo.Record(ctx, testutil.CreateTestLedgerEntry(account.ID, 10, models.EntryKindTopUp)))
	}
	require.NoError(t, ledgerRepo.Record(ctx, testutil.CreateTestLedgerEntry(account.ID, -10, models.EntryKindTransfer)))
	require.NoError(t, ledgerRepo.Record(ctx, testutil.CreateTestLedgerEntry(other.ID, 99, models.EntryKindTopUp)))

	t.Run("paging", func(t *testing.T) {
		entries, total, err := ledgerRepo.ListByAccount(ctx, account.ID, service.LedgerFilter{Page: 1, Limit: 4})
		require.NoError(t, err)
		assert.Equal(t, int64(6), total)
		assert.Len(t, entries, 4)

		entries, _, err = ledgerRepo.ListByAccount(ctx, account.ID, service.LedgerFilter{Page: 2, Limit: 4})
		require.NoError(t, err)
		assert.Len(t, entries, 2)
	})

	t.Run("kind filter", func(t *testing.T) {
		kind := models.EntryKindTransfer
		entries, total, err := ledgerRepo.ListByAccount(ctx, account.ID, service.LedgerFilter{Kind: &kind, Page: 1, Limit: 10})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, entries, 1)
		assert.Equal(t, models.EntryKindTransfer, entries[0].Kind)
	})

	t.Run("scoped to the account", func(t *testing.T) {
		_, total, err := ledgerRepo.ListByAccount(ctx, other.ID, service.LedgerFilter{Page: 1, Limit: 10})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
	})
}
