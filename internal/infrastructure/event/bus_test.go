package event

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/cmsplatform/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

// testEvent implements DomainEvent for testing
type testEvent struct {
	shared.BaseDomainEvent
	Data string `json:"data"`
}

func newTestEvent(eventType string, tenantID uuid.UUID) *testEvent {
	return &testEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(eventType, "Post", uuid.New(), tenantID),
		Data:            "test data",
	}
}

// testHandler records the events it receives
type testHandler struct {
	eventTypes []string
	handled    []shared.DomainEvent
	err        error
	panicWith  any
	mu         sync.Mutex
}

func newTestHandler(eventTypes ...string) *testHandler {
	return &testHandler{eventTypes: eventTypes}
}

func (h *testHandler) Handle(_ context.Context, event shared.DomainEvent) error {
	h.mu.Lock()
	h.handled = append(h.handled, event)
	err, p := h.err, h.panicWith
	h.mu.Unlock()
	if p != nil {
		panic(p)
	}
	return err
}

func (h *testHandler) EventTypes() []string {
	return h.eventTypes
}

func (h *testHandler) getHandled() []shared.DomainEvent {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]shared.DomainEvent(nil), h.handled...)
}

func TestInMemoryEventBus_Publish(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())

	handler := newTestHandler("PostPublished")
	bus.Subscribe(handler)

	first := newTestEvent("PostPublished", uuid.New())
	second := newTestEvent("PostPublished", uuid.New())
	require.NoError(t, bus.Publish(context.Background(), first, second))

	handled := handler.getHandled()
	require.Len(t, handled, 2)
	assert.Equal(t, first, handled[0])
	assert.Equal(t, second, handled[1])
}

func TestInMemoryEventBus_ExplicitTypesOverrideHandlerTypes(t *testing.T) {
	bus := NewInMemoryEventBus(nil)

	handler := newTestHandler("PostCreated")
	bus.Subscribe(handler, "TagDeleted")

	require.NoError(t, bus.Publish(context.Background(),
		newTestEvent("PostCreated", uuid.New()),
		newTestEvent("TagDeleted", uuid.New()),
	))

	handled := handler.getHandled()
	require.Len(t, handled, 1)
	assert.Equal(t, "TagDeleted", handled[0].EventType())
}

func TestInMemoryEventBus_Wildcard(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())

	wildcard := newTestHandler()
	bus.Subscribe(wildcard)

	require.NoError(t, bus.Publish(context.Background(),
		newTestEvent("PostCreated", uuid.New()),
		newTestEvent("CommissionPaid", uuid.New()),
	))
	assert.Len(t, wildcard.getHandled(), 2)
}

func TestInMemoryEventBus_FailuresAreIsolated(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	bus := NewInMemoryEventBus(zap.New(core))

	failing := newTestHandler("PostCreated")
	failing.err = errors.New("boom")
	panicking := newTestHandler("PostCreated")
	panicking.panicWith = "nil map"
	healthy := newTestHandler("PostCreated")

	bus.Subscribe(failing)
	bus.Subscribe(panicking)
	bus.Subscribe(healthy)

	err := bus.Publish(context.Background(), newTestEvent("PostCreated", uuid.New()))

	require.NoError(t, err, "handler errors never reach the publisher")
	assert.Len(t, healthy.getHandled(), 1)
	assert.Equal(t, int64(2), bus.Failures())
	require.Equal(t, 2, logs.Len())
	assert.Contains(t, logs.All()[1].ContextMap()["error"], "handler panicked: nil map")
}

func TestInMemoryEventBus_Unsubscribe(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())

	handler := newTestHandler("PostCreated")
	bus.Subscribe(handler)
	_ = bus.Publish(context.Background(), newTestEvent("PostCreated", uuid.New()))

	bus.Unsubscribe(handler)
	_ = bus.Publish(context.Background(), newTestEvent("PostCreated", uuid.New()))

	assert.Len(t, handler.getHandled(), 1)
}

func TestInMemoryEventBus_StartStop(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	ctx := context.Background()

	require.NoError(t, bus.Start(ctx))
	assert.True(t, bus.running.Load())
	require.NoError(t, bus.Stop(ctx))
	assert.False(t, bus.running.Load())
}
