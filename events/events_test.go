package events

import (
	"context"
	"testing"
	"time"

	"arenawallet/models"

	"github.com/sirupsen/logrus"
	logrustest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBus_SubscribeAndEmit(t *testing.T) {
	bus := NewBus()

	received := make(chan Event, 1)
	bus.Subscribe(EventTypeBalanceChange, func(ctx context.Context, event Event) {
		received <- event
	})

	bus.Emit(context.Background(), BalanceChangeEvent{AccountID: 1, Amount: 50, NewBalance: 50})

	select {
	case event := <-received:
		e, ok := event.(BalanceChangeEvent)
		require.True(t, ok)
		assert.Equal(t, int64(1), e.AccountID)
		assert.Equal(t, int64(50), e.Amount)
	case <-time.After(time.Second):
		t.Fatal("handler was not invoked")
	}
}

func TestBus_HandlerPanicDoesNotPropagate(t *testing.T) {
	bus := NewBus()

	received := make(chan struct{}, 1)
	bus.Subscribe(EventTypeBalanceChange, func(ctx context.Context, event Event) {
		panic("boom")
	})
	bus.Subscribe(EventTypeBalanceChange, func(ctx context.Context, event Event) {
		received <- struct{}{}
	})

	bus.Emit(context.Background(), BalanceChangeEvent{AccountID: 1})

	select {
	case <-received:
	case <-time.After(time.Second):
		t.Fatal("panicking handler blocked the other subscriber")
	}
}

func TestTransactionalBus_FlushAndDiscard(t *testing.T) {
	bus := NewBus()

	received := make(chan Event, 2)
	bus.Subscribe(EventTypeTransferSent, func(ctx context.Context, event Event) {
		received <- event
	})

	t.Run("flush emits pending events", func(t *testing.T) {
		txBus := NewTransactionalBus(bus)
		txBus.Publish(TransferSentEvent{TransferID: 7, Amount: 30})

		select {
		case <-received:
			t.Fatal("event emitted before flush")
		case <-time.After(50 * time.Millisecond):
		}

		txBus.Flush(context.Background())

		select {
		case event := <-received:
			assert.Equal(t, int64(7), event.(TransferSentEvent).TransferID)
		case <-time.After(time.Second):
			t.Fatal("flush did not emit the event")
		}
	})

	t.Run("discard drops pending events", func(t *testing.T) {
		txBus := NewTransactionalBus(bus)
		txBus.Publish(TransferSentEvent{TransferID: 8})
		txBus.Discard()
		txBus.Flush(context.Background())

		select {
		case <-received:
			t.Fatal("discarded event was emitted")
		case <-time.After(50 * time.Millisecond):
		}
	})
}

func TestRegisterAuditLog(t *testing.T) {
	bus := NewBus()
	logger, hook := logrustest.NewNullLogger()
	RegisterAuditLog(bus, logger)

	bus.Emit(context.Background(), BalanceChangeEvent{
		AccountID:  3,
		Amount:     100,
		Kind:       models.EntryKindTopUp,
		OldBalance: 0,
		NewBalance: 100,
	})
	bus.Emit(context.Background(), RequestFinalizedEvent{
		RequestID:   12,
		RequestKind: models.ReferenceKindTopUp,
		AccountID:   3,
		Status:      models.RequestStatusApproved,
		Amount:      100,
	})

	require.Eventually(t, func() bool {
		return len(hook.AllEntries()) == 2
	}, time.Second, 10*time.Millisecond)

	var messages []string
	for _, entry := range hook.AllEntries() {
		messages = append(messages, entry.Message)
		assert.Equal(t, logrus.InfoLevel, entry.Level)
		assert.Equal(t, int64(3), entry.Data["accountId"])
	}
	assert.ElementsMatch(t, []string{"Balance changed", "Request finalized"}, messages)
}
