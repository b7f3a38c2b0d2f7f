package repository

import (
	"context"
	"fmt"

	"digital-city/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// pgOrderRepository implements OrderRepository using PostgreSQL. Unlike the
// file store, appends here are transactional and safe for multiple writers.
type pgOrderRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewPgOrderRepository creates a new PostgreSQL-backed order repository.
func NewPgOrderRepository(pool *pgxpool.Pool, logger zerolog.Logger) OrderRepository {
	return &pgOrderRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "order-pg").Logger(),
	}
}

// Append persists a new order and its line snapshot in one transaction.
func (r *pgOrderRepository) Append(ctx context.Context, order *model.Order) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to begin transaction")
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil && rbErr != pgx.ErrTxClosed {
				r.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	orderQuery := `
		INSERT INTO orders (
			id, total, payment_method, order_notes, order_date, status,
			first_name, last_name, email, phone, address, city, wilaya, postal_code
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	addr := order.ShippingAddress
	_, err = tx.Exec(ctx, orderQuery,
		order.ID, order.Total, string(order.PaymentMethod), order.OrderNotes,
		order.OrderDate, string(order.Status),
		addr.FirstName, addr.LastName, addr.Email, addr.Phone,
		addr.Address, addr.City, addr.Wilaya, addr.PostalCode,
	)
	if err != nil {
		r.logger.Error().Err(err).Str("order_id", order.ID).Msg("failed to insert order")
		return fmt.Errorf("failed to insert order: %w", err)
	}

	// position preserves the cart's line order; the uuid row ids are random
	// and carry no ordering.
	itemQuery := `
		INSERT INTO order_items (id, order_id, position, product_id, product_name, price, quantity, color, size)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	batch := &pgx.Batch{}
	for i, item := range order.Items {
		batch.Queue(itemQuery,
			uuid.New(), order.ID, i,
			item.Product.ID, item.Product.Name, item.Product.Price,
			item.Quantity, item.SelectedColor, item.SelectedSize,
		)
	}

	results := tx.SendBatch(ctx, batch)
	for range order.Items {
		if _, err = results.Exec(); err != nil {
			results.Close()
			r.logger.Error().Err(err).Str("order_id", order.ID).Msg("failed to insert order item")
			return fmt.Errorf("failed to insert order item: %w", err)
		}
	}
	if err = results.Close(); err != nil {
		return fmt.Errorf("failed to close batch: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		r.logger.Error().Err(err).Str("order_id", order.ID).Msg("failed to commit transaction")
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	r.logger.Info().
		Str("order_id", order.ID).
		Int("item_count", len(order.Items)).
		Msg("order appended")

	return nil
}

// GetByID retrieves an order by its id along with its item snapshot.
func (r *pgOrderRepository) GetByID(ctx context.Context, id string) (*model.Order, error) {
	orderQuery := `
		SELECT id, total, payment_method, order_notes, order_date, status,
		       first_name, last_name, email, phone, address, city, wilaya, postal_code
		FROM orders
		WHERE id = $1
	`

	var order model.Order
	var paymentMethod, status string
	err := r.pool.QueryRow(ctx, orderQuery, id).Scan(
		&order.ID, &order.Total, &paymentMethod, &order.OrderNotes,
		&order.OrderDate, &status,
		&order.ShippingAddress.FirstName, &order.ShippingAddress.LastName,
		&order.ShippingAddress.Email, &order.ShippingAddress.Phone,
		&order.ShippingAddress.Address, &order.ShippingAddress.City,
		&order.ShippingAddress.Wilaya, &order.ShippingAddress.PostalCode,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Str("order_id", id).Msg("order not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("order_id", id).Msg("failed to query order")
		return nil, fmt.Errorf("failed to query order: %w", err)
	}
	order.PaymentMethod = model.PaymentMethod(paymentMethod)
	order.Status = model.OrderStatus(status)

	items, err := r.loadItems(ctx, id)
	if err != nil {
		return nil, err
	}
	order.Items = items

	return &order, nil
}

// List returns all persisted orders in insertion order. Orders and items are
// fetched in one query each and stitched in memory.
func (r *pgOrderRepository) List(ctx context.Context) ([]model.Order, error) {
	ordersQuery := `
		SELECT id, total, payment_method, order_notes, order_date, status,
		       first_name, last_name, email, phone, address, city, wilaya, postal_code
		FROM orders
		ORDER BY order_date, id
	`

	rows, err := r.pool.Query(ctx, ordersQuery)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query orders")
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	orders := []model.Order{}
	index := make(map[string]int)
	for rows.Next() {
		var order model.Order
		var paymentMethod, status string
		err := rows.Scan(
			&order.ID, &order.Total, &paymentMethod, &order.OrderNotes,
			&order.OrderDate, &status,
			&order.ShippingAddress.FirstName, &order.ShippingAddress.LastName,
			&order.ShippingAddress.Email, &order.ShippingAddress.Phone,
			&order.ShippingAddress.Address, &order.ShippingAddress.City,
			&order.ShippingAddress.Wilaya, &order.ShippingAddress.PostalCode,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		order.PaymentMethod = model.PaymentMethod(paymentMethod)
		order.Status = model.OrderStatus(status)
		index[order.ID] = len(orders)
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating orders: %w", err)
	}

	itemsQuery := `
		SELECT order_id, product_id, product_name, price, quantity, color, size
		FROM order_items
		ORDER BY order_id, position
	`

	itemRows, err := r.pool.Query(ctx, itemsQuery)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query order items")
		return nil, fmt.Errorf("failed to query order items: %w", err)
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var orderID string
		var item model.CartItem
		err := itemRows.Scan(
			&orderID,
			&item.Product.ID, &item.Product.Name, &item.Product.Price,
			&item.Quantity, &item.SelectedColor, &item.SelectedSize,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		if i, ok := index[orderID]; ok {
			orders[i].Items = append(orders[i].Items, item)
		}
	}
	if err := itemRows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating order items: %w", err)
	}

	return orders, nil
}

func (r *pgOrderRepository) loadItems(ctx context.Context, orderID string) ([]model.CartItem, error) {
	itemsQuery := `
		SELECT product_id, product_name, price, quantity, color, size
		FROM order_items
		WHERE order_id = $1
		ORDER BY position
	`

	rows, err := r.pool.Query(ctx, itemsQuery, orderID)
	if err != nil {
		r.logger.Error().Err(err).Str("order_id", orderID).Msg("failed to query order items")
		return nil, fmt.Errorf("failed to query order items: %w", err)
	}
	defer rows.Close()

	var items []model.CartItem
	for rows.Next() {
		var item model.CartItem
		err := rows.Scan(
			&item.Product.ID, &item.Product.Name, &item.Product.Price,
			&item.Quantity, &item.SelectedColor, &item.SelectedSize,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating order items: %w", err)
	}

	return items, nil
}

// Schema is the DDL for the PostgreSQL order store.
const Schema = `
CREATE TABLE IF NOT EXISTS orders (
	id             TEXT PRIMARY KEY,
	total          DOUBLE PRECISION NOT NULL,
	payment_method TEXT NOT NULL,
	order_notes    TEXT NOT NULL DEFAULT '',
	order_date     TIMESTAMPTZ NOT NULL,
	status         TEXT NOT NULL,
	first_name     TEXT NOT NULL,
	last_name      TEXT NOT NULL,
	email          TEXT NOT NULL,
	phone          TEXT NOT NULL,
	address        TEXT NOT NULL,
	city           TEXT NOT NULL,
	wilaya         TEXT NOT NULL,
	postal_code    TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS order_items (
	id           UUID PRIMARY KEY,
	order_id     TEXT NOT NULL REFERENCES orders(id),
	position     INTEGER NOT NULL DEFAULT 0,
	product_id   INTEGER NOT NULL,
	product_name TEXT NOT NULL,
	price        DOUBLE PRECISION NOT NULL,
	quantity     INTEGER NOT NULL,
	color        TEXT NOT NULL DEFAULT '',
	size         TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_order_items_order_id ON order_items(order_id);
`
