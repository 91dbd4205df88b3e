package service

import (
	"context"
	"testing"

	"arenawallet/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestPrizeService_Finalize_ApproveWithOverride(t *testing.T) {
	ctx := context.Background()

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockAccountRepo := new(MockAccountRepository)
	mockLedgerRepo := new(MockLedgerRepository)
	mockPrizeRepo := new(MockPrizeRepository)

	mockUoW.SetRepositories(mockAccountRepo, mockLedgerRepo, nil, nil, mockPrizeRepo, nil, nil, nil)

	service := NewPrizeService(mockFactory)
	admin := Actor{AccountID: 99, Role: models.RoleAdmin}

	pending := &models.PrizeRequest{
		ID:             13,
		AccountID:      1,
		TournamentID:   5,
		TournamentCode: "FS-01",
		Amount:         500,
		Status:         models.RequestStatusPending,
	}

	override := int64(800)

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockPrizeRepo.On("GetByID", ctx, int64(13)).Return(pending, nil)
	mockPrizeRepo.On("Finalize", ctx, int64(13), models.RequestStatusApproved, "verified", &override).Return(true, nil)

	// The credited amount is the override, not the claim
	mockAccountRepo.On("AddBalance", ctx, int64(1), int64(800)).Return(int64(1800), nil)
	mockLedgerRepo.On("Record", ctx, mock.MatchedBy(func(e *models.LedgerEntry) bool {
		return e.AccountID == 1 &&
			e.Amount == 800 &&
			e.Kind == models.EntryKindPrize &&
			e.ReferenceID != nil && *e.ReferenceID == 13 &&
			e.ReferenceKind != nil && *e.ReferenceKind == models.ReferenceKindPrize
	})).Return(nil)

	request, err := service.Finalize(ctx, admin, 13, true, "verified", &override)

	assert.NoError(t, err)
	assert.Equal(t, models.RequestStatusApproved, request.Status)
	assert.Equal(t, int64(800), request.Amount)

	mockPrizeRepo.AssertExpectations(t)
	mockAccountRepo.AssertExpectations(t)
	mockLedgerRepo.AssertExpectations(t)
}

func TestPrizeService_Finalize_InvalidOverride(t *testing.T) {
	ctx := context.Background()

	service := NewPrizeService(new(MockUnitOfWorkFactory))
	admin := Actor{AccountID: 99, Role: models.RoleAdmin}

	zero := int64(0)
	request, err := service.Finalize(ctx, admin, 13, true, "", &zero)

	assert.ErrorIs(t, err, ErrValidation)
	assert.Nil(t, request)
}

func TestPrizeService_Finalize_RejectKeepsClaimedAmount(t *testing.T) {
	ctx := context.Background()

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockAccountRepo := new(MockAccountRepository)
	mockPrizeRepo := new(MockPrizeRepository)

	mockUoW.SetRepositories(mockAccountRepo, new(MockLedgerRepository), nil, nil, mockPrizeRepo, nil, nil, nil)

	service := NewPrizeService(mockFactory)
	admin := Actor{AccountID: 99, Role: models.RoleAdmin}

	pending := &models.PrizeRequest{ID: 13, AccountID: 1, Amount: 500, Status: models.RequestStatusPending}

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockPrizeRepo.On("GetByID", ctx, int64(13)).Return(pending, nil)
	mockPrizeRepo.On("Finalize", ctx, int64(13), models.RequestStatusRejected, "no proof", (*int64)(nil)).Return(true, nil)

	request, err := service.Finalize(ctx, admin, 13, false, "no proof", nil)

	assert.NoError(t, err)
	assert.Equal(t, models.RequestStatusRejected, request.Status)
	assert.Equal(t, int64(500), request.Amount)

	mockAccountRepo.AssertNotCalled(t, "AddBalance", mock.Anything, mock.Anything, mock.Anything)
}

func TestPrizeService_Distribute(t *testing.T) {
	ctx := context.Background()

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockAccountRepo := new(MockAccountRepository)
	mockLedgerRepo := new(MockLedgerRepository)
	mockPrizeRepo := new(MockPrizeRepository)
	mockTournamentRepo := new(MockTournamentRepository)

	mockUoW.SetRepositories(mockAccountRepo, mockLedgerRepo, nil, nil, mockPrizeRepo, nil, mockTournamentRepo, nil)

	service := NewPrizeService(mockFactory)
	admin := Actor{AccountID: 99, Role: models.RoleAdmin}

	claim := PrizeClaim{
		TournamentID:   5,
		TournamentCode: "FS-01",
		PrizeType:      models.PrizeTypeWinner,
		Amount:         1000,
		PlayerName:     "SniperBD",
	}

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockAccountRepo.On("GetByID", ctx, int64(1)).Return(&models.Account{ID: 1, Name: "Karim"}, nil)
	mockTournamentRepo.On("GetByID", ctx, int64(5)).
		Return(&models.Tournament{ID: 5, TournamentCode: "FS-01"}, nil)

	// Distribution creates the request already approved
	mockPrizeRepo.On("Create", ctx, mock.MatchedBy(func(r *models.PrizeRequest) bool {
		return r.AccountID == 1 && r.Amount == 1000 && r.Status == models.RequestStatusApproved
	})).Return(nil).Run(func(args mock.Arguments) {
		args.Get(1).(*models.PrizeRequest).ID = 14
	})

	mockAccountRepo.On("AddBalance", ctx, int64(1), int64(1000)).Return(int64(2000), nil)
	mockLedgerRepo.On("Record", ctx, mock.MatchedBy(func(e *models.LedgerEntry) bool {
		return e.AccountID == 1 && e.Amount == 1000 && e.Kind == models.EntryKindPrize
	})).Return(nil)

	request, err := service.Distribute(ctx, admin, 1, claim)

	assert.NoError(t, err)
	assert.Equal(t, models.RequestStatusApproved, request.Status)
	assert.Equal(t, int64(14), request.ID)

	mockPrizeRepo.AssertExpectations(t)
	mockAccountRepo.AssertExpectations(t)
	mockLedgerRepo.AssertExpectations(t)
}

func TestPrizeService_Distribute_UnknownTournament(t *testing.T) {
	ctx := context.Background()

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockAccountRepo := new(MockAccountRepository)
	mockPrizeRepo := new(MockPrizeRepository)
	mockTournamentRepo := new(MockTournamentRepository)

	mockUoW.SetRepositories(mockAccountRepo, nil, nil, nil, mockPrizeRepo, nil, mockTournamentRepo, nil)

	service := NewPrizeService(mockFactory)
	admin := Actor{AccountID: 99, Role: models.RoleAdmin}

	claim := PrizeClaim{
		TournamentID:   77,
		TournamentCode: "GONE",
		PrizeType:      models.PrizeTypeWinner,
		Amount:         1000,
		PlayerName:     "SniperBD",
	}

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockAccountRepo.On("GetByID", ctx, int64(1)).Return(&models.Account{ID: 1, Name: "Karim"}, nil)
	mockTournamentRepo.On("GetByID", ctx, int64(77)).Return(nil, nil)

	request, err := service.Distribute(ctx, admin, 1, claim)

	assert.ErrorIs(t, err, ErrNotFound)
	assert.Nil(t, request)
	mockPrizeRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	mockUoW.AssertNotCalled(t, "Commit")
}

func TestPrizeService_SubmitClaim_CodeMismatch(t *testing.T) {
	ctx := context.Background()

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockTournamentRepo := new(MockTournamentRepository)
	mockPrizeRepo := new(MockPrizeRepository)

	mockUoW.SetRepositories(nil, nil, nil, nil, mockPrizeRepo, nil, mockTournamentRepo, nil)

	service := NewPrizeService(mockFactory)
	player := Actor{AccountID: 1, Role: models.RoleUser}

	claim := PrizeClaim{
		TournamentID:   5,
		TournamentCode: "WRONG",
		PrizeType:      models.PrizeTypeKill,
		Amount:         200,
		PlayerName:     "SniperBD",
	}

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockTournamentRepo.On("GetByID", ctx, int64(5)).
		Return(&models.Tournament{ID: 5, TournamentCode: "FS-01"}, nil)

	request, err := service.SubmitClaim(ctx, player, claim)

	assert.ErrorIs(t, err, ErrValidation)
	assert.Nil(t, request)
	mockPrizeRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}
