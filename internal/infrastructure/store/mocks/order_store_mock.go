package mocks

import (
	"context"
	"sort"
	"sync"

	"github.com/example/storefront-core/internal/infrastructure/store"
	"github.com/example/storefront-core/internal/readmodel"
)

// MockOrderStore is an in-memory OrderStoreInterface for testing
type MockOrderStore struct {
	mu     sync.Mutex
	orders map[string]*readmodel.OrderReadModel

	// Writes counts status writes that changed a stored order
	Writes    int
	ListCalls []store.OrderFilter
	Err       error
}

// NewMockOrderStore creates a store seeded with the given orders
func NewMockOrderStore(orders ...*readmodel.OrderReadModel) *MockOrderStore {
	m := &MockOrderStore{orders: make(map[string]*readmodel.OrderReadModel)}
	for _, o := range orders {
		m.Put(o)
	}
	return m
}

// Put stores a copy of the order
func (m *MockOrderStore) Put(o *readmodel.OrderReadModel) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cp := *o
	if cp.OrderProducts == nil {
		cp.OrderProducts = []readmodel.OrderProductReadModel{}
	}
	m.orders[o.ID] = &cp
}

func (m *MockOrderStore) ListOrders(ctx context.Context, filter store.OrderFilter) ([]*readmodel.OrderReadModel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.ListCalls = append(m.ListCalls, filter)
	if m.Err != nil {
		return nil, m.Err
	}

	out := []*readmodel.OrderReadModel{}
	for _, o := range m.orders {
		if filter.UserID != "" && o.UserID != filter.UserID {
			continue
		}
		if filter.Status != "" && o.Status != filter.Status {
			continue
		}
		cp := *o
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (m *MockOrderStore) GetOrder(ctx context.Context, orderID string) (*readmodel.OrderReadModel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return nil, m.Err
	}
	o, ok := m.orders[orderID]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *o
	return &cp, nil
}

// UpdateStatus holds the store lock across decide, like the row lock in Postgres
func (m *MockOrderStore) UpdateStatus(ctx context.Context, orderID string, decide store.StatusUpdateFunc) (*readmodel.OrderReadModel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return nil, m.Err
	}
	o, ok := m.orders[orderID]
	if !ok {
		return nil, store.ErrNotFound
	}

	current := *o
	next, err := decide(&current)
	if err != nil {
		return nil, err
	}
	if next != o.Status {
		o.Status = next
		m.Writes++
	}
	cp := *o
	return &cp, nil
}
