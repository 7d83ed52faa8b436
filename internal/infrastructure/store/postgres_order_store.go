package store

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"github.com/example/storefront-core/internal/readmodel"
	"github.com/lib/pq"
)

const orderColumns = `
	SELECT o.id, o.user_id, o.name, o.address, o.city, o.province, o.postal_code,
	       o.shipping_method, o.total, o.status, o.receipt, o.image,
	       o.created_at, o.updated_at, pay.payment_method
	FROM orders o
	LEFT JOIN payments pay ON pay.order_id = o.id`

const orderProductsQuery = `
	SELECT op.id, op.order_id, op.product_id, op.quantity,
	       p.name, p.description, p.price, p.image_url, p.stock
	FROM order_products op
	JOIN products p ON p.id = op.product_id
	WHERE op.order_id = ANY($1)
	ORDER BY op.id`

// PostgresOrderStore implements OrderStoreInterface on orders, order_products and payments.
type PostgresOrderStore struct {
	db *sql.DB
}

func NewPostgresOrderStore(db *sql.DB) *PostgresOrderStore {
	return &PostgresOrderStore{db: db}
}

// ListOrders returns orders newest first with line items and payment attached.
func (s *PostgresOrderStore) ListOrders(ctx context.Context, filter OrderFilter) ([]*readmodel.OrderReadModel, error) {
	query, args := buildOrderListQuery(filter)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	orders, err := scanOrders(rows)
	if err != nil {
		return nil, err
	}

	if err := attachOrderProducts(ctx, s.db, orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (s *PostgresOrderStore) GetOrder(ctx context.Context, orderID string) (*readmodel.OrderReadModel, error) {
	return getOrder(ctx, s.db, orderID, false)
}

// UpdateStatus holds a row lock on the order between decide and the write.
func (s *PostgresOrderStore) UpdateStatus(ctx context.Context, orderID string, decide StatusUpdateFunc) (*readmodel.OrderReadModel, error) {
	var updated *readmodel.OrderReadModel

	err := withTx(ctx, s.db, func(tx *sql.Tx) error {
		current, err := getOrder(ctx, tx, orderID, true)
		if err != nil {
			return err
		}

		next, err := decide(current)
		if err != nil {
			return err
		}
		if next == current.Status {
			updated = current
			return nil
		}

		if err := tx.QueryRowContext(ctx,
			`UPDATE orders SET status = $1, updated_at = now() WHERE id = $2 RETURNING updated_at`,
			next, orderID,
		).Scan(&current.UpdatedAt); err != nil {
			return fmt.Errorf("update status of order %s: %w", orderID, translate(err))
		}
		current.Status = next
		updated = current
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func buildOrderListQuery(filter OrderFilter) (string, []any) {
	var (
		conds []string
		args  []any
	)
	if filter.UserID != "" {
		args = append(args, filter.UserID)
		conds = append(conds, "o.user_id = $"+strconv.Itoa(len(args)))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		conds = append(conds, "o.status = $"+strconv.Itoa(len(args)))
	}

	query := orderColumns
	if len(conds) > 0 {
		query += "\n\tWHERE " + strings.Join(conds, " AND ")
	}
	query += "\n\tORDER BY o.created_at DESC, o.id"
	return query, args
}

func getOrder(ctx context.Context, q queryer, orderID string, forUpdate bool) (*readmodel.OrderReadModel, error) {
	query := orderColumns + "\n\tWHERE o.id = $1"
	if forUpdate {
		query += " FOR UPDATE OF o"
	}

	rows, err := q.QueryContext(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("get order %s: %w", orderID, err)
	}
	orders, err := scanOrders(rows)
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return nil, fmt.Errorf("get order %s: %w", orderID, ErrNotFound)
	}

	if err := attachOrderProducts(ctx, q, orders); err != nil {
		return nil, err
	}
	return orders[0], nil
}

func scanOrders(rows *sql.Rows) ([]*readmodel.OrderReadModel, error) {
	defer rows.Close()

	orders := []*readmodel.OrderReadModel{}
	for rows.Next() {
		var (
			o             readmodel.OrderReadModel
			receipt       sql.NullString
			image         sql.NullString
			paymentMethod sql.NullString
		)
		if err := rows.Scan(&o.ID, &o.UserID, &o.Name, &o.Address, &o.City, &o.Province,
			&o.PostalCode, &o.ShippingMethod, &o.Total, &o.Status, &receipt, &image,
			&o.CreatedAt, &o.UpdatedAt, &paymentMethod); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		o.Receipt = nullableString(receipt)
		o.Image = nullableString(image)
		if paymentMethod.Valid {
			o.Payment = &readmodel.PaymentReadModel{PaymentMethod: paymentMethod.String}
		}
		o.OrderProducts = []readmodel.OrderProductReadModel{}
		orders = append(orders, &o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate orders: %w", err)
	}
	return orders, nil
}

// attachOrderProducts loads the line items of all orders with one query.
func attachOrderProducts(ctx context.Context, q queryer, orders []*readmodel.OrderReadModel) error {
	if len(orders) == 0 {
		return nil
	}

	ids := make([]string, len(orders))
	byID := make(map[string]*readmodel.OrderReadModel, len(orders))
	for i, o := range orders {
		ids[i] = o.ID
		byID[o.ID] = o
	}

	rows, err := q.QueryContext(ctx, orderProductsQuery, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("list order products: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			op      readmodel.OrderProductReadModel
			orderID string
		)
		if err := rows.Scan(&op.ID, &orderID, &op.ProductID, &op.Quantity,
			&op.Product.Name, &op.Product.Description, &op.Product.Price,
			&op.Product.ImageURL, &op.Product.Stock); err != nil {
			return fmt.Errorf("scan order product: %w", err)
		}
		op.Product.ID = op.ProductID
		if o, ok := byID[orderID]; ok {
			o.OrderProducts = append(o.OrderProducts, op)
		}
	}
	return rows.Err()
}
