package mocks

import (
	"context"
	"sync"

	"github.com/example/storefront-core/internal/event"
)

// MockPublisher records published events
type MockPublisher struct {
	mu sync.Mutex

	PublishCalls []PublishCall
	PublishErr   error
}

// PublishCall records parameters passed to Publish
type PublishCall struct {
	Key   string
	Event event.Event
}

func NewMockPublisher() *MockPublisher {
	return &MockPublisher{PublishCalls: make([]PublishCall, 0)}
}

// Publish records the call even when PublishErr is set
func (m *MockPublisher) Publish(ctx context.Context, key string, e any) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	ev, _ := e.(event.Event)
	m.PublishCalls = append(m.PublishCalls, PublishCall{Key: key, Event: ev})
	return m.PublishErr
}

// EventTypes returns the types of all recorded events in order
func (m *MockPublisher) EventTypes() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	types := make([]string, len(m.PublishCalls))
	for i, c := range m.PublishCalls {
		types[i] = c.Event.EventType
	}
	return types
}
