package event

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/medsupply/backend/internal/domain/shared"
)

type recordingHandler struct {
	mu         sync.Mutex
	eventTypes []string
	received   []shared.DomainEvent
	err        error
	panics     bool
}

func (h *recordingHandler) Handle(_ context.Context, evt shared.DomainEvent) error {
	if h.panics {
		panic("handler exploded")
	}
	h.mu.Lock()
	h.received = append(h.received, evt)
	h.mu.Unlock()
	return h.err
}

func (h *recordingHandler) EventTypes() []string {
	return h.eventTypes
}

func (h *recordingHandler) count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.received)
}

func newTestEvent(eventType string) shared.DomainEvent {
	evt := shared.NewBaseDomainEvent(eventType, "Product", uuid.New())
	return &evt
}

func TestInMemoryEventBus_Publish(t *testing.T) {
	t.Run("dispatches to subscribed handlers", func(t *testing.T) {
		bus := NewInMemoryEventBus(zap.NewNop())
		handler := &recordingHandler{eventTypes: []string{"inventory.stock_movement_recorded"}}
		bus.Subscribe(handler)

		err := bus.Publish(context.Background(), newTestEvent("inventory.stock_movement_recorded"))

		assert.NoError(t, err)
		assert.Equal(t, 1, handler.count())
	})

	t.Run("skips handlers for other event types", func(t *testing.T) {
		bus := NewInMemoryEventBus(zap.NewNop())
		handler := &recordingHandler{eventTypes: []string{"inventory.stock_below_reorder_level"}}
		bus.Subscribe(handler)

		err := bus.Publish(context.Background(), newTestEvent("inventory.stock_movement_recorded"))

		assert.NoError(t, err)
		assert.Zero(t, handler.count())
	})

	t.Run("handler errors do not fail publishing", func(t *testing.T) {
		bus := NewInMemoryEventBus(zap.NewNop())
		failing := &recordingHandler{
			eventTypes: []string{"inventory.stock_movement_recorded"},
			err:        errors.New("boom"),
		}
		healthy := &recordingHandler{eventTypes: []string{"inventory.stock_movement_recorded"}}
		bus.Subscribe(failing)
		bus.Subscribe(healthy)

		err := bus.Publish(context.Background(), newTestEvent("inventory.stock_movement_recorded"))

		assert.NoError(t, err)
		assert.Equal(t, 1, healthy.count())
	})

	t.Run("handler panics are contained", func(t *testing.T) {
		bus := NewInMemoryEventBus(zap.NewNop())
		panicking := &recordingHandler{
			eventTypes: []string{"inventory.stock_movement_recorded"},
			panics:     true,
		}
		bus.Subscribe(panicking)

		assert.NotPanics(t, func() {
			_ = bus.Publish(context.Background(), newTestEvent("inventory.stock_movement_recorded"))
		})
	})
}

func TestInMemoryEventBus_Unsubscribe(t *testing.T) {
	t.Run("removed handler no longer receives events", func(t *testing.T) {
		bus := NewInMemoryEventBus(zap.NewNop())
		handler := &recordingHandler{eventTypes: []string{"inventory.stock_movement_recorded"}}
		bus.Subscribe(handler)
		bus.Unsubscribe(handler)

		err := bus.Publish(context.Background(), newTestEvent("inventory.stock_movement_recorded"))

		assert.NoError(t, err)
		assert.Zero(t, handler.count())
	})
}

func TestInMemoryEventBus_SubscribeExplicitTypes(t *testing.T) {
	t.Run("explicit event types override the handler's own", func(t *testing.T) {
		bus := NewInMemoryEventBus(zap.NewNop())
		handler := &recordingHandler{eventTypes: []string{"unused"}}
		bus.Subscribe(handler, "inventory.stock_below_reorder_level")

		err := bus.Publish(context.Background(), newTestEvent("inventory.stock_below_reorder_level"))

		assert.NoError(t, err)
		assert.Equal(t, 1, handler.count())
	})
}
