package repository

import (
	"context"

	"digital-city/internal/model"
)

// OrderRepository defines the interface for the persisted order store.
// Orders are append-only: nothing in this service ever mutates or deletes a
// persisted record.
type OrderRepository interface {
	// Append persists a new order record.
	Append(ctx context.Context, order *model.Order) error

	// GetByID retrieves an order by its id. Returns (nil, nil) when the
	// order does not exist.
	GetByID(ctx context.Context, id string) (*model.Order, error)

	// List returns all persisted orders in insertion order.
	List(ctx context.Context) ([]model.Order, error)
}
