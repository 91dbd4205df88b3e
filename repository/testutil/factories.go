package testutil

import (
	"fmt"
	"time"

	"arenawallet/models"
)

// CreateTestAccount creates a test account with default values
func CreateTestAccount(name, email string) *models.Account {
	now := time.Now()
	return &models.Account{
		Name:         name,
		Email:        email,
		PasswordHash: "$2a$10$abcdefghijklmnopqrstuv",
		Role:         models.RoleUser,
		Phone:        fmt.Sprintf("01%09d", time.Now().UnixNano()%1000000000),
		ReferralCode: fmt.Sprintf("REF%06d", time.Now().UnixNano()%1000000),
		Balance:      0,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// CreateTestAccountWithBalance creates a test account with a specific balance
func CreateTestAccountWithBalance(name, email string, balance int64) *models.Account {
	account := CreateTestAccount(name, email)
	account.Balance = balance
	return account
}

// CreateTestTournament creates a test tournament with default values
func CreateTestTournament(code string, entryFee int64) *models.Tournament {
	return &models.Tournament{
		Title:          "Test Tournament " + code,
		Game:           "Free Fire",
		Device:         "mobile",
		TournamentCode: code,
		Type:           "solo",
		MatchType:      "ranked",
		EntryFee:       entryFee,
		MatchSchedule:  time.Now().Add(24 * time.Hour),
		WinningPrize:   50000,
		PerKillPrize:   1000,
		MaxPlayers:     48,
		IsActive:       true,
	}
}

// CreateTestTopUpRequest creates a pending top-up request
func CreateTestTopUpRequest(accountID, amount int64) *models.TopUpRequest {
	return &models.TopUpRequest{
		AccountID:     accountID,
		Amount:        amount,
		TransactionID: fmt.Sprintf("TXN%d", time.Now().UnixNano()),
		Status:        models.RequestStatusPending,
	}
}

// CreateTestWithdrawalRequest creates a pending withdrawal request
func CreateTestWithdrawalRequest(accountID, amount int64) *models.WithdrawalRequest {
	return &models.WithdrawalRequest{
		AccountID:     accountID,
		Amount:        amount,
		AccountNumber: "01700000000",
		PaymentMethod: models.PaymentMethodBkash,
		Status:        models.RequestStatusPending,
	}
}

// CreateTestPrizeRequest creates a pending prize claim
func CreateTestPrizeRequest(accountID, tournamentID int64, code string, amount int64) *models.PrizeRequest {
	return &models.PrizeRequest{
		AccountID:      accountID,
		TournamentID:   tournamentID,
		TournamentCode: code,
		PrizeType:      models.PrizeTypeKill,
		Amount:         amount,
		Kills:          5,
		PlayerName:     "TestPlayer",
		PlayerID:       "P123456",
		AccountNumber:  "01700000000",
		PaymentMethod:  "bkash",
		Status:         models.RequestStatusPending,
	}
}

// CreateTestLedgerEntry creates a ledger entry with the given kind and amount
func CreateTestLedgerEntry(accountID, amount int64, kind models.EntryKind) *models.LedgerEntry {
	return &models.LedgerEntry{
		AccountID:   accountID,
		Amount:      amount,
		Kind:        kind,
		Description: "test entry",
	}
}
