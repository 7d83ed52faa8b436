package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/example/storefront-core/internal/readmodel"
)

// PostgresCartStore implements CartStoreInterface on the carts and cart_items tables.
type PostgresCartStore struct {
	db *sql.DB
}

func NewPostgresCartStore(db *sql.DB) *PostgresCartStore {
	return &PostgresCartStore{db: db}
}

// GetCart returns nil, nil when the user has no cart.
func (s *PostgresCartStore) GetCart(ctx context.Context, userID string) (*readmodel.CartReadModel, error) {
	var (
		c                    readmodel.CartReadModel
		createdAt, updatedAt time.Time
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, user_id, created_at, updated_at FROM carts WHERE user_id = $1`,
		userID,
	).Scan(&c.ID, &c.UserID, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get cart for user %s: %w", userID, err)
	}
	c.CreatedAt, c.UpdatedAt = &createdAt, &updatedAt

	rows, err := s.db.QueryContext(ctx, `
		SELECT ci.id, ci.cart_id, ci.product_id, ci.quantity,
		       p.name, p.description, p.price, p.image_url, p.stock
		FROM cart_items ci
		JOIN products p ON p.id = ci.product_id
		WHERE ci.cart_id = $1
		ORDER BY ci.id`,
		c.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("get cart items for cart %d: %w", c.ID, err)
	}
	defer rows.Close()

	c.Items = []readmodel.CartItemReadModel{}
	for rows.Next() {
		var item readmodel.CartItemReadModel
		var p readmodel.ProductReadModel
		if err := rows.Scan(&item.ID, &item.CartID, &item.ProductID, &item.Quantity,
			&p.Name, &p.Description, &p.Price, &p.ImageURL, &p.Stock); err != nil {
			return nil, fmt.Errorf("scan cart item: %w", err)
		}
		p.ID = item.ProductID
		item.Product = &p
		c.Items = append(c.Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate cart items: %w", err)
	}

	return &c, nil
}

// AddItem creates the cart and merges the line item in one transaction.
// Both statements are upserts on unique constraints, so concurrent first adds
// for the same user or product converge on one cart and one line.
func (s *PostgresCartStore) AddItem(ctx context.Context, userID string, productID int64, quantity int) (*readmodel.CartItemReadModel, error) {
	item := &readmodel.CartItemReadModel{ProductID: productID}

	err := withTx(ctx, s.db, func(tx *sql.Tx) error {
		if err := tx.QueryRowContext(ctx, `
			INSERT INTO carts (user_id) VALUES ($1)
			ON CONFLICT (user_id) DO UPDATE SET updated_at = now()
			RETURNING id`,
			userID,
		).Scan(&item.CartID); err != nil {
			return fmt.Errorf("upsert cart for user %s: %w", userID, err)
		}

		if err := tx.QueryRowContext(ctx, `
			INSERT INTO cart_items (cart_id, product_id, quantity) VALUES ($1, $2, $3)
			ON CONFLICT (cart_id, product_id)
			DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity
			RETURNING id, quantity`,
			item.CartID, productID, quantity,
		).Scan(&item.ID, &item.Quantity); err != nil {
			return fmt.Errorf("upsert cart item: %w", translate(err))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

// UpdateItem only touches items that belong to the user's cart.
func (s *PostgresCartStore) UpdateItem(ctx context.Context, userID string, itemID int64, quantity int) (*readmodel.CartItemReadModel, error) {
	var item readmodel.CartItemReadModel
	err := s.db.QueryRowContext(ctx, `
		UPDATE cart_items ci SET quantity = $1
		FROM carts c
		WHERE ci.id = $2 AND ci.cart_id = c.id AND c.user_id = $3
		RETURNING ci.id, ci.cart_id, ci.product_id, ci.quantity`,
		quantity, itemID, userID,
	).Scan(&item.ID, &item.CartID, &item.ProductID, &item.Quantity)
	if err != nil {
		return nil, fmt.Errorf("update cart item %d: %w", itemID, translate(err))
	}
	return &item, nil
}

func (s *PostgresCartStore) RemoveItem(ctx context.Context, userID string, itemID int64) (*readmodel.CartItemReadModel, error) {
	var item readmodel.CartItemReadModel
	err := s.db.QueryRowContext(ctx, `
		DELETE FROM cart_items ci
		USING carts c
		WHERE ci.id = $1 AND ci.cart_id = c.id AND c.user_id = $2
		RETURNING ci.id, ci.cart_id, ci.product_id, ci.quantity`,
		itemID, userID,
	).Scan(&item.ID, &item.CartID, &item.ProductID, &item.Quantity)
	if err != nil {
		return nil, fmt.Errorf("remove cart item %d: %w", itemID, translate(err))
	}
	return &item, nil
}

func (s *PostgresCartStore) ClearCart(ctx context.Context, userID string) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM cart_items
		WHERE cart_id IN (SELECT id FROM carts WHERE user_id = $1)`,
		userID,
	)
	if err != nil {
		return 0, fmt.Errorf("clear cart for user %s: %w", userID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("clear cart rows affected: %w", err)
	}
	return n, nil
}
