package service

import (
	"context"
	"fmt"

	"arenawallet/events"
	"arenawallet/models"
)

// withdrawalService implements the WithdrawalService interface
type withdrawalService struct {
	uowFactory UnitOfWorkFactory
}

// NewWithdrawalService creates a new withdrawal service
func NewWithdrawalService(uowFactory UnitOfWorkFactory) WithdrawalService {
	return &withdrawalService{uowFactory: uowFactory}
}

// Submit debits the amount immediately and records the pending payout.
// Debiting at submission reserves the funds; a later rejection refunds
// them, and completion pays out off-platform with no further change.
func (s *withdrawalService) Submit(ctx context.Context, actor Actor, amount int64, accountNumber string, method models.PaymentMethod) (*models.WithdrawalRequest, error) {
	if err := requireActive(actor); err != nil {
		return nil, err
	}
	if amount < 1 {
		return nil, fmt.Errorf("%w: amount must be at least 1", ErrValidation)
	}
	if accountNumber == "" {
		return nil, fmt.Errorf("%w: account number is required", ErrValidation)
	}
	if method != models.PaymentMethodBkash && method != models.PaymentMethodNagad {
		return nil, fmt.Errorf("%w: unsupported payment method %q", ErrValidation, method)
	}

	request := &models.WithdrawalRequest{
		AccountID:     actor.AccountID,
		Amount:        amount,
		AccountNumber: accountNumber,
		PaymentMethod: method,
		Status:        models.RequestStatusPending,
	}

	err := withUnitOfWork(ctx, s.uowFactory, func(uow UnitOfWork) error {
		if err := uow.WithdrawalRepository().Create(ctx, request); err != nil {
			return err
		}

		description := fmt.Sprintf("withdrawal to %s (%s)", accountNumber, method)
		_, err := ApplyDelta(ctx, uow, actor.AccountID, -amount,
			models.EntryKindWithdrawal, description, models.Ref(request.ID, models.ReferenceKindWithdrawal))
		return err
	})
	if err != nil {
		return nil, err
	}

	return request, nil
}

// Get returns a request visible to the actor
func (s *withdrawalService) Get(ctx context.Context, actor Actor, id int64) (*models.WithdrawalRequest, error) {
	var request *models.WithdrawalRequest
	err := withUnitOfWork(ctx, s.uowFactory, func(uow UnitOfWork) error {
		var err error
		request, err = uow.WithdrawalRepository().GetByID(ctx, id)
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

// Finalize completes or rejects a pending withdrawal. The funds were
// already debited at submission, so completion only flips the status
// while rejection refunds the amount in the same transaction.
func (s *withdrawalService) Finalize(ctx context.Context, actor Actor, id int64, complete bool, notes string) (*models.WithdrawalRequest, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}

	var request *models.WithdrawalRequest
	err := withUnitOfWork(ctx, s.uowFactory, func(uow UnitOfWork) error {
		var err error
		request, err = uow.WithdrawalRepository().GetByID(ctx, id)
		if err != nil {
			return err
		}
		if request == nil {
			return ErrNotFound
		}

		status := models.RequestStatusRejected
		if complete {
			status = models.RequestStatusCompleted
		}

		flipped, err := uow.WithdrawalRepository().Finalize(ctx, id, status, notes)
		if err != nil {
			return err
		}
		if !flipped {
			return fmt.Errorf("%w: withdrawal request %d", ErrAlreadyFinalized, id)
		}
		request.Status = status
		request.Notes = notes

		if !complete {
			description := fmt.Sprintf("withdrawal %d rejected, amount refunded", request.ID)
			_, err = ApplyDelta(ctx, uow, request.AccountID, request.Amount,
				models.EntryKindWithdrawalRefund, description, models.Ref(request.ID, models.ReferenceKindWithdrawal))
			if err != nil {
				return err
			}
		}

		uow.EventBus().Publish(events.RequestFinalizedEvent{
			RequestID:   request.ID,
			RequestKind: models.ReferenceKindWithdrawal,
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

// List returns the actor's own requests, or any matching the filter for admins
func (s *withdrawalService) List(ctx context.Context, actor Actor, filter RequestFilter) ([]*models.WithdrawalRequest, models.Pagination, error) {
	if !actor.IsAdmin() {
		filter.AccountID = &actor.AccountID
	}
	normalizeRequestFilter(&filter)

	var requests []*models.WithdrawalRequest
	var total int64
	err := withUnitOfWork(ctx, s.uowFactory, func(uow UnitOfWork) error {
		var err error
		requests, total, err = uow.WithdrawalRepository().List(ctx, filter)
		return err
	})
	if err != nil {
		return nil, models.Pagination{}, err
	}

	return requests, models.NewPagination(total, filter.Page, filter.Limit), nil
}
