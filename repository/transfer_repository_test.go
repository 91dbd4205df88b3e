package repository

import (
	"context"
	"sync"
	"testing"

	"arenawallet/events"
	"arenawallet/models"
	"arenawallet/repository/testutil"
	"arenawallet/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransferRepository_CreateAndList(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	accountRepo := NewAccountRepository(testDB.DB)
	transferRepo := NewTransferRepository(testDB.DB)
	ctx := context.Background()

	sender := testutil.CreateTestAccount("Karim", "karim@example.com")
	require.NoError(t, accountRepo.Create(ctx, sender))
	recipient := testutil.CreateTestAccount("Rina", "rina@example.com")
	require.NoError(t, accountRepo.Create(ctx, recipient))

	transfer := &models.Transfer{SenderID: sender.ID, RecipientID: recipient.ID, Amount: 40}
	require.NoError(t, transferRepo.Create(ctx, transfer))
	assert.NotZero(t, transfer.ID)

	// Both sides of the transfer see it in their listing
	forSender, total, err := transferRepo.ListByAccount(ctx, sender.ID, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, forSender, 1)
	assert.Equal(t, int64(40), forSender[0].Amount)

	_, total, err = transferRepo.ListByAccount(ctx, recipient.ID, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
}

// Opposite-direction transfers between the same pair must not deadlock:
// both legs are applied in ascending account-id order, so concurrent
// transactions acquire the two row locks in the same sequence.
func TestTransferService_ConcurrentOppositeDirections(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	accountRepo := NewAccountRepository(testDB.DB)
	ctx := context.Background()

	alice := testutil.CreateTestAccountWithBalance("Alice", "alice@example.com", 100)
	require.NoError(t, accountRepo.Create(ctx, alice))
	bob := testutil.CreateTestAccountWithBalance("Bob", "bob@example.com", 200)
	require.NoError(t, accountRepo.Create(ctx, bob))

	factory := NewUnitOfWorkFactory(testDB.DB, events.NewBus())
	transfers := service.NewTransferService(factory)

	actorAlice := service.Actor{AccountID: alice.ID, Role: models.RoleUser}
	actorBob := service.Actor{AccountID: bob.ID, Role: models.RoleUser}

	const rounds = 5
	for i := 0; i < rounds; i++ {
		var wg sync.WaitGroup
		errs := make(chan error, 2)

		wg.Add(2)
		go func() {
			defer wg.Done()
			_, err := transfers.Send(ctx, actorAlice, bob.Phone, 30)
			errs <- err
		}()
		go func() {
			defer wg.Done()
			_, err := transfers.Send(ctx, actorBob, alice.Phone, 50)
			errs <- err
		}()
		wg.Wait()
		close(errs)

		for err := range errs {
			require.NoError(t, err)
		}
	}

	// Alice nets +20 per round, Bob -20; the ledger mirrors both sides
	refreshedAlice, err := accountRepo.GetByID(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(100+20*rounds), refreshedAlice.Balance)

	refreshedBob, err := accountRepo.GetByID(ctx, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(200-20*rounds), refreshedBob.Balance)

	ledgerRepo := NewLedgerRepository(testDB.DB)
	sumAlice, err := ledgerRepo.SumByAccount(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, refreshedAlice.Balance, sumAlice)

	sumBob, err := ledgerRepo.SumByAccount(ctx, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, refreshedBob.Balance, sumBob)
}
