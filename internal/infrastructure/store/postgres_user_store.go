package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/example/storefront-core/internal/readmodel"
)

// PostgresUserStore reads the users table owned by the auth service.
type PostgresUserStore struct {
	db *sql.DB
}

func NewPostgresUserStore(db *sql.DB) *PostgresUserStore {
	return &PostgresUserStore{db: db}
}

func (s *PostgresUserStore) GetUser(ctx context.Context, userID string) (*readmodel.UserReadModel, error) {
	var u readmodel.UserReadModel
	err := s.db.QueryRowContext(ctx,
		`SELECT id, email, name FROM users WHERE id = $1`,
		userID,
	).Scan(&u.ID, &u.Email, &u.Name)
	if err != nil {
		return nil, fmt.Errorf("get user %s: %w", userID, translate(err))
	}
	return &u, nil
}
