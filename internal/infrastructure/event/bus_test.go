package event

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/hoa/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type recordingHandler struct {
	types    []string
	received []shared.DomainEvent
	fail     bool
}

func (h *recordingHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	if h.fail {
		return errors.New("handler failure")
	}
	h.received = append(h.received, event)
	return nil
}

func (h *recordingHandler) EventTypes() []string {
	return h.types
}

func newTestEvent(eventType string) shared.DomainEvent {
	event := shared.NewBaseDomainEvent(eventType, "payment", uuid.New())
	return &event
}

func TestInMemoryEventBus_Publish(t *testing.T) {
	ctx := context.Background()

	t.Run("delivers to a type-specific handler", func(t *testing.T) {
		bus := NewInMemoryEventBus(zap.NewNop())
		handler := &recordingHandler{types: []string{"billing.payment.confirmed"}}
		bus.Subscribe(handler)

		require.NoError(t, bus.Publish(ctx, newTestEvent("billing.payment.confirmed")))
		require.NoError(t, bus.Publish(ctx, newTestEvent("billing.invoice.issued")))

		require.Len(t, handler.received, 1)
		assert.Equal(t, "billing.payment.confirmed", handler.received[0].EventType())
	})

	t.Run("wildcard handler receives every event", func(t *testing.T) {
		bus := NewInMemoryEventBus(zap.NewNop())
		handler := &recordingHandler{}
		bus.Subscribe(handler)

		require.NoError(t, bus.Publish(ctx,
			newTestEvent("billing.payment.confirmed"),
			newTestEvent("registration.application.approved"),
		))

		assert.Len(t, handler.received, 2)
	})

	t.Run("one failing handler does not stop the others", func(t *testing.T) {
		bus := NewInMemoryEventBus(zap.NewNop())
		failing := &recordingHandler{fail: true}
		healthy := &recordingHandler{}
		bus.Subscribe(failing)
		bus.Subscribe(healthy)

		require.NoError(t, bus.Publish(ctx, newTestEvent("billing.payment.confirmed")))

		assert.Len(t, healthy.received, 1)
	})

	t.Run("unsubscribed handler stops receiving", func(t *testing.T) {
		bus := NewInMemoryEventBus(zap.NewNop())
		handler := &recordingHandler{}
		bus.Subscribe(handler)
		bus.Unsubscribe(handler)

		require.NoError(t, bus.Publish(ctx, newTestEvent("billing.payment.confirmed")))

		assert.Empty(t, handler.received)
	})
}

func TestAuditLogHandler(t *testing.T) {
	handler := NewAuditLogHandler(zap.NewNop())
	assert.Nil(t, handler.EventTypes())
	require.NoError(t, handler.Handle(context.Background(), newTestEvent("identity.user.registered")))
}
