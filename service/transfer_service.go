package service

import (
	"context"
	"fmt"

	"arenawallet/events"
	"arenawallet/models"
)

// transferService implements the TransferService interface
type transferService struct {
	uowFactory UnitOfWorkFactory
}

// NewTransferService creates a new transfer service
func NewTransferService(uowFactory UnitOfWorkFactory) TransferService {
	return &transferService{uowFactory: uowFactory}
}

// Send moves amount from the actor to the account holding recipientPhone.
// Debit and credit land in one transaction with the transfer record, so
// no partial transfer can ever be observed. The two balance updates run
// in ascending account id order to keep concurrent transfers deadlock-free.
func (s *transferService) Send(ctx context.Context, actor Actor, recipientPhone string, amount int64) (*models.TransferResult, error) {
	if err := requireActive(actor); err != nil {
		return nil, err
	}
	if amount < 1 {
		return nil, fmt.Errorf("%w: amount must be at least 1", ErrValidation)
	}

	var result *models.TransferResult
	err := withUnitOfWork(ctx, s.uowFactory, func(uow UnitOfWork) error {
		recipient, err := uow.AccountRepository().GetByPhone(ctx, recipientPhone)
		if err != nil {
			return err
		}
		if recipient == nil {
			return ErrRecipientNotFound
		}
		if recipient.ID == actor.AccountID {
			return ErrSelfTransfer
		}

		transfer := &models.Transfer{
			SenderID:    actor.AccountID,
			RecipientID: recipient.ID,
			Amount:      amount,
		}
		if err := uow.TransferRepository().Create(ctx, transfer); err != nil {
			return err
		}

		ref := models.Ref(transfer.ID, models.ReferenceKindTransfer)
		debitDescription := fmt.Sprintf("transfer to %s", recipient.Name)
		creditDescription := fmt.Sprintf("transfer from account %d", actor.AccountID)

		// Lock accounts in ascending id order
		if actor.AccountID < recipient.ID {
			if _, err := ApplyDelta(ctx, uow, actor.AccountID, -amount,
				models.EntryKindTransfer, debitDescription, ref); err != nil {
				return err
			}
			if _, err := ApplyDelta(ctx, uow, recipient.ID, amount,
				models.EntryKindTransfer, creditDescription, ref); err != nil {
				return err
			}
		} else {
			if _, err := ApplyDelta(ctx, uow, recipient.ID, amount,
				models.EntryKindTransfer, creditDescription, ref); err != nil {
				return err
			}
			if _, err := ApplyDelta(ctx, uow, actor.AccountID, -amount,
				models.EntryKindTransfer, debitDescription, ref); err != nil {
				return err
			}
		}

		sender, err := uow.AccountRepository().GetByID(ctx, actor.AccountID)
		if err != nil {
			return err
		}
		var senderBalance int64
		if sender != nil {
			senderBalance = sender.Balance
		}

		uow.EventBus().Publish(events.TransferSentEvent{
			TransferID:  transfer.ID,
			SenderID:    actor.AccountID,
			RecipientID: recipient.ID,
			Amount:      amount,
		})

		result = &models.TransferResult{
			Transfer:      transfer,
			RecipientName: recipient.Name,
			NewBalance:    senderBalance,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// ListMine returns transfers where the actor is sender or recipient
func (s *transferService) ListMine(ctx context.Context, actor Actor, page, limit int) ([]*models.Transfer, models.Pagination, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	var transfers []*models.Transfer
	var total int64
	err := withUnitOfWork(ctx, s.uowFactory, func(uow UnitOfWork) error {
		var err error
		transfers, total, err = uow.TransferRepository().ListByAccount(ctx, actor.AccountID, page, limit)
		return err
	})
	if err != nil {
		return nil, models.Pagination{}, err
	}

	return transfers, models.NewPagination(total, page, limit), nil
}
