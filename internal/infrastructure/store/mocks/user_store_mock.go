package mocks

import (
	"context"
	"sync"

	"github.com/example/storefront-core/internal/infrastructure/store"
	"github.com/example/storefront-core/internal/readmodel"
)

// MockUserStore is an in-memory UserStoreInterface for testing
type MockUserStore struct {
	mu    sync.Mutex
	users map[string]readmodel.UserReadModel
}

func NewMockUserStore(users ...readmodel.UserReadModel) *MockUserStore {
	m := &MockUserStore{users: make(map[string]readmodel.UserReadModel)}
	for _, u := range users {
		m.users[u.ID] = u
	}
	return m
}

func (m *MockUserStore) GetUser(ctx context.Context, userID string) (*readmodel.UserReadModel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.users[userID]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &u, nil
}
