package service

import (
	"context"
	"fmt"

	"arenawallet/events"
	"arenawallet/models"
)

// prizeService implements the PrizeService interface
type prizeService struct {
	uowFactory UnitOfWorkFactory
}

// NewPrizeService creates a new prize service
func NewPrizeService(uowFactory UnitOfWorkFactory) PrizeService {
	return &prizeService{uowFactory: uowFactory}
}

func validateClaim(claim PrizeClaim) error {
	if claim.Amount < 1 {
		return fmt.Errorf("%w: amount must be at least 1", ErrValidation)
	}
	switch claim.PrizeType {
	case models.PrizeTypeKill, models.PrizeTypeWinner, models.PrizeTypeBoth, models.PrizeTypeOther:
	default:
		return fmt.Errorf("%w: unknown prize type %q", ErrValidation, claim.PrizeType)
	}
	if claim.PlayerName == "" {
		return fmt.Errorf("%w: player name is required", ErrValidation)
	}
	return nil
}

// SubmitClaim records a player's prize claim for admin review. The
// tournament code must match the tournament it names.
func (s *prizeService) SubmitClaim(ctx context.Context, actor Actor, claim PrizeClaim) (*models.PrizeRequest, error) {
	if err := requireActive(actor); err != nil {
		return nil, err
	}
	if err := validateClaim(claim); err != nil {
		return nil, err
	}

	request := &models.PrizeRequest{
		AccountID:      actor.AccountID,
		TournamentID:   claim.TournamentID,
		TournamentCode: claim.TournamentCode,
		PrizeType:      claim.PrizeType,
		Amount:         claim.Amount,
		Kills:          claim.Kills,
		Position:       claim.Position,
		PlayerName:     claim.PlayerName,
		PlayerID:       claim.PlayerID,
		AccountNumber:  claim.AccountNumber,
		PaymentMethod:  claim.PaymentMethod,
		ProofImage:     claim.ProofImage,
		Status:         models.RequestStatusPending,
		Notes:          claim.Notes,
	}

	err := withUnitOfWork(ctx, s.uowFactory, func(uow UnitOfWork) error {
		tournament, err := uow.TournamentRepository().GetByID(ctx, claim.TournamentID)
		if err != nil {
			return err
		}
		if tournament == nil {
			return fmt.Errorf("%w: tournament %d", ErrNotFound, claim.TournamentID)
		}
		if tournament.TournamentCode != claim.TournamentCode {
			return fmt.Errorf("%w: tournament code does not match", ErrValidation)
		}

		return uow.PrizeRepository().Create(ctx, request)
	})
	if err != nil {
		return nil, err
	}

	return request, nil
}

// Get returns a claim visible to the actor
func (s *prizeService) Get(ctx context.Context, actor Actor, id int64) (*models.PrizeRequest, error) {
	var request *models.PrizeRequest
	err := withUnitOfWork(ctx, s.uowFactory, func(uow UnitOfWork) error {
		var err error
		request, err = uow.PrizeRepository().GetByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	if request == nil {
		return nil, ErrNotFound
	}
	if request.AccountID != actor.AccountID && !actor.IsAdmin() {
		return nil, ErrNotAuthorized
	}
	return request, nil
}

// Finalize approves or rejects a pending claim. On approval an admin
// may override the claimed amount; the credited amount is whatever the
// request holds after the override.
func (s *prizeService) Finalize(ctx context.Context, actor Actor, id int64, approve bool, notes string, amount *int64) (*models.PrizeRequest, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	if amount != nil && *amount < 1 {
		return nil, fmt.Errorf("%w: override amount must be at least 1", ErrValidation)
	}

	var request *models.PrizeRequest
	err := withUnitOfWork(ctx, s.uowFactory, func(uow UnitOfWork) error {
		var err error
		request, err = uow.PrizeRepository().GetByID(ctx, id)
		if err != nil {
			return err
		}
		if request == nil {
			return ErrNotFound
		}

		status := models.RequestStatusRejected
		if approve {
			status = models.RequestStatusApproved
		}

		// The override only applies to approvals; a rejection keeps the
		// claimed amount for the record
		var override *int64
		if approve {
			override = amount
		}

		flipped, err := uow.PrizeRepository().Finalize(ctx, id, status, notes, override)
		if err != nil {
			return err
		}
		if !flipped {
			return fmt.Errorf("%w: prize request %d", ErrAlreadyFinalized, id)
		}
		request.Status = status
		request.Notes = notes
		if override != nil {
			request.Amount = *override
		}

		if approve {
			description := fmt.Sprintf("prize for tournament %s", request.TournamentCode)
			_, err = ApplyDelta(ctx, uow, request.AccountID, request.Amount,
				models.EntryKindPrize, description, models.Ref(request.ID, models.ReferenceKindPrize))
			if err != nil {
				return err
			}
		}

		uow.EventBus().Publish(events.RequestFinalizedEvent{
			RequestID:   request.ID,
			RequestKind: models.ReferenceKindPrize,
			AccountID:   request.AccountID,
			Status:      status,
			Amount:      request.Amount,
		})

		return nil
	})
	if err != nil {
		return nil, err
	}

	return request, nil
}

// Distribute creates an already-approved prize for an account and
// credits it in the same transaction (admin)
func (s *prizeService) Distribute(ctx context.Context, actor Actor, accountID int64, claim PrizeClaim) (*models.PrizeRequest, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	if err := validateClaim(claim); err != nil {
		return nil, err
	}

	request := &models.PrizeRequest{
		AccountID:      accountID,
		TournamentID:   claim.TournamentID,
		TournamentCode: claim.TournamentCode,
		PrizeType:      claim.PrizeType,
		Amount:         claim.Amount,
		Kills:          claim.Kills,
		Position:       claim.Position,
		PlayerName:     claim.PlayerName,
		PlayerID:       claim.PlayerID,
		Status:         models.RequestStatusApproved,
		Notes:          claim.Notes,
	}

	err := withUnitOfWork(ctx, s.uowFactory, func(uow UnitOfWork) error {
		account, err := uow.AccountRepository().GetByID(ctx, accountID)
		if err != nil {
			return err
		}
		if account == nil {
			return fmt.Errorf("%w: account %d", ErrNotFound, accountID)
		}

		tournament, err := uow.TournamentRepository().GetByID(ctx, claim.TournamentID)
		if err != nil {
			return err
		}
		if tournament == nil {
			return fmt.Errorf("%w: tournament %d", ErrNotFound, claim.TournamentID)
		}

		if err := uow.PrizeRepository().Create(ctx, request); err != nil {
			return err
		}

		description := fmt.Sprintf("prize distributed for tournament %s", request.TournamentCode)
		_, err = ApplyDelta(ctx, uow, accountID, request.Amount,
			models.EntryKindPrize, description, models.Ref(request.ID, models.ReferenceKindPrize))
		return err
	})
	if err != nil {
		return nil, err
	}

	return request, nil
}

// List returns the actor's own claims, or any matching the filter for admins
func (s *prizeService) List(ctx context.Context, actor Actor, filter RequestFilter) ([]*models.PrizeRequest, models.Pagination, error) {
	if !actor.IsAdmin() {
		filter.AccountID = &actor.AccountID
	}
	normalizeRequestFilter(&filter)

	var requests []*models.PrizeRequest
	var total int64
	err := withUnitOfWork(ctx, s.uowFactory, func(uow UnitOfWork) error {
		var err error
		requests, total, err = uow.PrizeRepository().List(ctx, filter)
		return err
	})
	if err != nil {
		return nil, models.Pagination{}, err
	}

	return requests, models.NewPagination(total, filter.Page, filter.Limit), nil
}
