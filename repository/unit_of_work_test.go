package repository

import (
	"context"
	"testing"

	"arenawallet/events"
	"arenawallet/models"
	"arenawallet/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnitOfWork_CommitPersistsAndFlushesEvents(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	ctx := context.Background()

	accountRepo := NewAccountRepository(testDB.DB)
	account := testutil.CreateTestAccountWithBalance("Karim", "karim@example.com", 1000)
	require.NoError(t, accountRepo.Create(ctx, account))

	bus := events.NewBus()
	received := make(chan events.Event, 1)
	bus.Subscribe(events.EventTypeBalanceChange, func(ctx context.Context, e events.Event) {
		received <- e
	})

	factory := NewUnitOfWorkFactory(testDB.DB, bus)
	uow := factory.Create()
	require.NoError(t, uow.Begin(ctx))

	_, err := uow.AccountRepository().DeductBalance(ctx, account.ID, 300)
	require.NoError(t, err)
	require.NoError(t, uow.LedgerRepository().Record(ctx,
		testutil.CreateTestLedgerEntry(account.ID, -300, models.EntryKindWithdrawal)))

	uow.EventBus().Publish(events.BalanceChangeEvent{
		AccountID:  account.ID,
		OldBalance: 1000,
		NewBalance: 700,
		Kind:       models.EntryKindWithdrawal,
		Amount:     -300,
	})

	// Nothing reaches subscribers before commit
	select {
	case <-received:
		t.Fatal("event flushed before commit")
	default:
	}

	require.NoError(t, uow.Commit())

	event := <-received
	change, ok := event.(events.BalanceChangeEvent)
	require.True(t, ok)
	assert.Equal(t, int64(700), change.NewBalance)

	refreshed, err := accountRepo.GetByID(ctx, account.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(700), refreshed.Balance)
}

func TestUnitOfWork_RollbackDiscardsEverything(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	ctx := context.Background()

	accountRepo := NewAccountRepository(testDB.DB)
	ledgerRepo := NewLedgerRepository(testDB.DB)
	account := testutil.CreateTestAccountWithBalance("Rahim", "rahim@example.com", 1000)
	require.NoError(t, accountRepo.Create(ctx, account))

	bus := events.NewBus()
	received := make(chan events.Event, 1)
	bus.Subscribe(events.EventTypeBalanceChange, func(ctx context.Context, e events.Event) {
		received <- e
	})

	factory := NewUnitOfWorkFactory(testDB.DB, bus)
	uow := factory.Create()
	require.NoError(t, uow.Begin(ctx))

	_, err := uow.AccountRepository().DeductBalance(ctx, account.ID, 300)
	require.NoError(t, err)
	require.NoError(t, uow.LedgerRepository().Record(ctx,
		testutil.CreateTestLedgerEntry(account.ID, -300, models.EntryKindWithdrawal)))
	uow.EventBus().Publish(events.BalanceChangeEvent{AccountID: account.ID})

	require.NoError(t, uow.Rollback())

	// The debit, the ledger entry and the event all vanish together
	refreshed, err := accountRepo.GetByID(ctx, account.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1000), refreshed.Balance)

	sum, err := ledgerRepo.SumByAccount(ctx, account.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), sum)

	select {
	case <-received:
		t.Fatal("event flushed after rollback")
	default:
	}
}

func TestUnitOfWork_BeginTwice(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	ctx := context.Background()

	factory := NewUnitOfWorkFactory(testDB.DB, events.NewBus())
	uow := factory.Create()
	require.NoError(t, uow.Begin(ctx))
	defer uow.Rollback()

	assert.Error(t, uow.Begin(ctx))
}
