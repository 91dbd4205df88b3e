package events

import (
	"context"

	log "github.com/sirupsen/logrus"
)

// RegisterAuditLog subscribes a structured audit trail to the wallet
// events. Runs off the request path; a slow logger never blocks a commit.
func RegisterAuditLog(bus *Bus, logger *log.Logger) {
	bus.Subscribe(EventTypeBalanceChange, func(ctx context.Context, event Event) {
		e, ok := event.(BalanceChangeEvent)
		if !ok {
			return
		}
		logger.WithFields(log.Fields{
			"accountId":  e.AccountID,
			"amount":     e.Amount,
			"kind":       e.Kind,
			"oldBalance": e.OldBalance,
			"newBalance": e.NewBalance,
		}).Info("Balance changed")
	})

	bus.Subscribe(EventTypeRequestFinalized, func(ctx context.Context, event Event) {
		e, ok := event.(RequestFinalizedEvent)
		if !ok {
			return
		}
		logger.WithFields(log.Fields{
			"requestId":   e.RequestID,
			"requestKind": e.RequestKind,
			"accountId":   e.AccountID,
			"status":      e.Status,
			"amount":      e.Amount,
		}).Info("Request finalized")
	})

	bus.Subscribe(EventTypeAccountCreated, func(ctx context.Context, event Event) {
		e, ok := event.(AccountCreatedEvent)
		if !ok {
			return
		}
		fields := log.Fields{
			"accountId": e.AccountID,
			"email":     e.Email,
		}
		if e.ReferredBy != nil {
			fields["referredBy"] = *e.ReferredBy
		}
		logger.WithFields(fields).Info("Account created")
	})

	bus.Subscribe(EventTypeTransferSent, func(ctx context.Context, event Event) {
		e, ok := event.(TransferSentEvent)
		if !ok {
			return
		}
		logger.WithFields(log.Fields{
			"transferId":  e.TransferID,
			"senderId":    e.SenderID,
			"recipientId": e.RecipientID,
			"amount":      e.Amount,
		}).Info("Transfer sent")
	})

	bus.Subscribe(EventTypePlayerRegistered, func(ctx context.Context, event Event) {
		e, ok := event.(PlayerRegisteredEvent)
		if !ok {
			return
		}
		logger.WithFields(log.Fields{
			"tournamentId": e.TournamentID,
			"accountId":    e.AccountID,
			"entryFee":     e.EntryFee,
		}).Info("Player registered")
	})
}
