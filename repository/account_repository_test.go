package repository

import (
	"context"
	"sync"
	"testing"

	"arenawallet/models"
	"arenawallet/repository/testutil"
	"arenawallet/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccountRepository_GetByEmail(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	repo := NewAccountRepository(testDB.DB)
	ctx := context.Background()

	t.Run("not found", func(t *testing.T) {
		account, err := repo.GetByEmail(ctx, "nobody@example.com")
		require.NoError(t, err)
		assert.Nil(t, account)
	})

	t.Run("found", func(t *testing.T) {
		created := testutil.CreateTestAccount("Karim", "karim@example.com")
		require.NoError(t, repo.Create(ctx, created))

		account, err := repo.GetByEmail(ctx, "karim@example.com")
		require.NoError(t, err)
		require.NotNil(t, account)
		assert.Equal(t, created.ID, account.ID)
		assert.Equal(t, "Karim", account.Name)
		assert.Equal(t, models.RoleUser, account.Role)
	})
}

func TestAccountRepository_DeductBalance(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	repo := NewAccountRepository(testDB.DB)
	ctx := context.Background()

	account := testutil.CreateTestAccountWithBalance("Rahim", "rahim@example.com", 1000)
	require.NoError(t, repo.Create(ctx, account))

	t.Run("successful debit", func(t *testing.T) {
		newBalance, err := repo.DeductBalance(ctx, account.ID, 300)
		require.NoError(t, err)
		assert.Equal(t, int64(700), newBalance)
	})

	t.Run("insufficient funds", func(t *testing.T) {
		_, err := repo.DeductBalance(ctx, account.ID, 5000)
		assert.ErrorIs(t, err, service.ErrInsufficientFunds)

		// Balance unchanged after the failed debit
		refreshed, err := repo.GetByID(ctx, account.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(700), refreshed.Balance)
	})

	t.Run("unknown account", func(t *testing.T) {
		_, err := repo.DeductBalance(ctx, 999999, 100)
		assert.ErrorIs(t, err, service.ErrNotFound)
	})
}

func TestAccountRepository_DeductBalance_Concurrent(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	repo := NewAccountRepository(testDB.DB)
	ctx := context.Background()

	// 10 units of balance, 20 goroutines each debiting 1: exactly 10
	// must succeed and the balance must land on zero, never negative
	account := testutil.CreateTestAccountWithBalance("Hasan", "hasan@example.com", 10)
	require.NoError(t, repo.Create(ctx, account))

	const attempts = 20
	var wg sync.WaitGroup
	results := make(chan error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.DeductBalance(ctx, account.ID, 1)
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var succeeded, failed int
	for err := range results {
		if err == nil {
			succeeded++
		} else {
			assert.ErrorIs(t, err, service.ErrInsufficientFunds)
			failed++
		}
	}

	assert.Equal(t, 10, succeeded)
	assert.Equal(t, 10, failed)

	refreshed, err := repo.GetByID(ctx, account.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), refreshed.Balance)
}

func TestAccountRepository_DrainPendingReferral(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	repo := NewAccountRepository(testDB.DB)
	ctx := context.Background()

	account := testutil.CreateTestAccount("Rina", "rina@example.com")
	require.NoError(t, repo.Create(ctx, account))
	require.NoError(t, repo.AccruePendingReferral(ctx, account.ID, 30))

	t.Run("drain bounded by max", func(t *testing.T) {
		drained, err := repo.DrainPendingReferral(ctx, account.ID, 20)
		require.NoError(t, err)
		assert.Equal(t, int64(20), drained)

		refreshed, err := repo.GetByID(ctx, account.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(10), refreshed.PendingReferralBalance)
	})

	t.Run("drain bounded by remaining pending", func(t *testing.T) {
		drained, err := repo.DrainPendingReferral(ctx, account.ID, 20)
		require.NoError(t, err)
		assert.Equal(t, int64(10), drained)
	})

	t.Run("nothing left to drain", func(t *testing.T) {
		drained, err := repo.DrainPendingReferral(ctx, account.ID, 20)
		require.NoError(t, err)
		assert.Equal(t, int64(0), drained)

		refreshed, err := repo.GetByID(ctx, account.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(0), refreshed.PendingReferralBalance)
	})
}

func TestAccountRepository_ReferralTracking(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	repo := NewAccountRepository(testDB.DB)
	ctx := context.Background()

	referrer := testutil.CreateTestAccount("Referrer", "referrer@example.com")
	require.NoError(t, repo.Create(ctx, referrer))

	referred := testutil.CreateTestAccount("Referred", "referred@example.com")
	referred.ReferredBy = &referrer.ID
	require.NoError(t, repo.Create(ctx, referred))
	require.NoError(t, repo.AccruePendingReferral(ctx, referrer.ID, 20))

	byCode, err := repo.GetByReferralCode(ctx, referrer.ReferralCode)
	require.NoError(t, err)
	require.NotNil(t, byCode)
	assert.Equal(t, referrer.ID, byCode.ID)
	assert.Equal(t, 1, byCode.ReferralCount)
	assert.Equal(t, int64(20), byCode.PendingReferralBalance)

	list, err := repo.ListReferred(ctx, referrer.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, referred.ID, list[0].ID)
}

func TestAccountRepository_SetSuspendedAndRole(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	repo := NewAccountRepository(testDB.DB)
	ctx := context.Background()

	account := testutil.CreateTestAccount("Mod", "mod@example.com")
	require.NoError(t, repo.Create(ctx, account))

	require.NoError(t, repo.SetSuspended(ctx, account.ID, true))
	require.NoError(t, repo.SetRole(ctx, account.ID, models.RoleAdmin))

	refreshed, err := repo.GetByID(ctx, account.ID)
	require.NoError(t, err)
	assert.True(t, refreshed.IsSuspended)
	assert.Equal(t, models.RoleAdmin, refreshed.Role)

	assert.ErrorIs(t, repo.SetSuspended(ctx, 999999, true), service.ErrNotFound)
}
