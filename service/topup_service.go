package service

import (
	"context"
	"fmt"

	"arenawallet/events"
	"arenawallet/models"
)

// topUpService implements the TopUpService interface
type topUpService struct {
	uowFactory    UnitOfWorkFactory
	referralBonus int64
}

// NewTopUpService creates a new top-up service
func NewTopUpService(uowFactory UnitOfWorkFactory, referralBonus int64) TopUpService {
	return &topUpService{
		uowFactory:    uowFactory,
		referralBonus: referralBonus,
	}
}

// Submit records a deposit request for admin review. No balance change
// happens until approval.
func (s *topUpService) Submit(ctx context.Context, actor Actor, amount int64, transactionID, slipImage string) (*models.TopUpRequest, error) {
	if err := requireActive(actor); err != nil {
		return nil, err
	}
	if amount < 1 {
		return nil, fmt.Errorf("%w: amount must be at least 1", ErrValidation)
	}
	if transactionID == "" {
		return nil, fmt.Errorf("%w: transaction id is required", ErrValidation)
	}

	request := &models.TopUpRequest{
		AccountID:     actor.AccountID,
		Amount:        amount,
		TransactionID: transactionID,
		SlipImage:     slipImage,
		Status:        models.RequestStatusPending,
	}

	err := withUnitOfWork(ctx, s.uowFactory, func(uow UnitOfWork) error {
		return uow.TopUpRepository().Create(ctx, request)
	})
	if err != nil {
		return nil, err
	}

	return request, nil
}

// Get returns a request visible to the actor
func (s *topUpService) Get(ctx context.Context, actor Actor, id int64) (*models.TopUpRequest, error) {
	var request *models.TopUpRequest
	err := withUnitOfWork(ctx, s.uowFactory, func(uow UnitOfWork) error {
		var err error
		request, err = uow.TopUpRepository().GetByID(ctx, id)
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

// Finalize approves or rejects a pending request. Approval credits the
// amount and converts the referrer's pending bonus; rejection changes
// nothing but the status. Either way the status flip is the exactly-once
// guard: a request already finalized fails with ErrAlreadyFinalized.
func (s *topUpService) Finalize(ctx context.Context, actor Actor, id int64, approve bool, notes string) (*models.TopUpRequest, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}

	var request *models.TopUpRequest
	err := withUnitOfWork(ctx, s.uowFactory, func(uow UnitOfWork) error {
		var err error
		request, err = uow.TopUpRepository().GetByID(ctx, id)
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

		flipped, err := uow.TopUpRepository().Finalize(ctx, id, status, notes)
		if err != nil {
			return err
		}
		if !flipped {
			return fmt.Errorf("%w: top-up request %d", ErrAlreadyFinalized, id)
		}
		request.Status = status
		request.Notes = notes

		if approve {
			description := fmt.Sprintf("top-up approved (txn %s)", request.TransactionID)
			_, err = ApplyDelta(ctx, uow, request.AccountID, request.Amount,
				models.EntryKindTopUp, description, models.Ref(request.ID, models.ReferenceKindTopUp))
			if err != nil {
				return err
			}

			if err := s.settleReferralBonus(ctx, uow, request.AccountID); err != nil {
				return err
			}
		}

		uow.EventBus().Publish(events.RequestFinalizedEvent{
			RequestID:   request.ID,
			RequestKind: models.ReferenceKindTopUp,
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

// settleReferralBonus converts up to one bonus of the referrer's pending
// referral balance into spendable balance. The drain is bounded in SQL,
// so concurrent approvals can never convert more than was accrued.
func (s *topUpService) settleReferralBonus(ctx context.Context, uow UnitOfWork, accountID int64) error {
	account, err := uow.AccountRepository().GetByID(ctx, accountID)
	if err != nil {
		return err
	}
	if account == nil || account.ReferredBy == nil {
		return nil
	}

	drained, err := uow.AccountRepository().DrainPendingReferral(ctx, *account.ReferredBy, s.referralBonus)
	if err != nil {
		return fmt.Errorf("failed to drain pending referral balance: %w", err)
	}
	if drained == 0 {
		return nil
	}

	description := fmt.Sprintf("referral bonus for %s", account.Name)
	_, err = ApplyDelta(ctx, uow, *account.ReferredBy, drained,
		models.EntryKindReferral, description, models.Ref(accountID, models.ReferenceKindAccount))
	return err
}

// List returns the actor's own requests, or any matching the filter for admins
func (s *topUpService) List(ctx context.Context, actor Actor, filter RequestFilter) ([]*models.TopUpRequest, models.Pagination, error) {
	if !actor.IsAdmin() {
		filter.AccountID = &actor.AccountID
	}
	normalizeRequestFilter(&filter)

	var requests []*models.TopUpRequest
	var total int64
	err := withUnitOfWork(ctx, s.uowFactory, func(uow UnitOfWork) error {
		var err error
		requests, total, err = uow.TopUpRepository().List(ctx, filter)
		return err
	})
	if err != nil {
		return nil, models.Pagination{}, err
	}

	return requests, models.NewPagination(total, filter.Page, filter.Limit), nil
}

// normalizeRequestFilter clamps paging to sane bounds
func normalizeRequestFilter(filter *RequestFilter) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}
}
