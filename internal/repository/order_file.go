package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"digital-city/internal/model"

	"github.com/rs/zerolog"
)

// fileOrderRepository implements OrderRepository as a JSON list in a single
// file under a fixed namespace. Each append is a read-modify-write of the
// whole list, serialised by a process-local mutex: this store is only safe
// for a single writer process.
type fileOrderRepository struct {
	path   string
	mu     sync.Mutex
	logger zerolog.Logger
}

// NewFileOrderRepository creates a new file-backed order repository. The
// parent directory is created if missing.
func NewFileOrderRepository(path string, logger zerolog.Logger) (OrderRepository, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create order store directory: %w", err)
	}

	return &fileOrderRepository{
		path:   path,
		logger: logger.With().Str("repository", "order-file").Logger(),
	}, nil
}

// Append persists a new order by appending it to the stored list.
func (r *fileOrderRepository) Append(ctx context.Context, order *model.Order) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	orders, err := r.readAll()
	if err != nil {
		r.logger.Error().Err(err).Str("order_id", order.ID).Msg("failed to read order store")
		return err
	}

	orders = append(orders, *order)

	if err := r.writeAll(orders); err != nil {
		r.logger.Error().Err(err).Str("order_id", order.ID).Msg("failed to write order store")
		return err
	}

	r.logger.Info().
		Str("order_id", order.ID).
		Int("order_count", len(orders)).
		Msg("order appended")

	return nil
}

// GetByID retrieves an order by its id.
func (r *fileOrderRepository) GetByID(ctx context.Context, id string) (*model.Order, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	orders, err := r.readAll()
	if err != nil {
		return nil, err
	}

	for i := range orders {
		if orders[i].ID == id {
			order := orders[i]
			return &order, nil
		}
	}

	r.logger.Debug().Str("order_id", id).Msg("order not found")
	return nil, nil
}

// List returns all persisted orders in insertion order.
func (r *fileOrderRepository) List(ctx context.Context) ([]model.Order, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	return r.readAll()
}

// readAll loads the stored list. A missing file is an empty list, matching
// first-run behaviour. Caller must hold the lock.
func (r *fileOrderRepository) readAll() ([]model.Order, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []model.Order{}, nil
		}
		return nil, fmt.Errorf("failed to read order store %s: %w", r.path, err)
	}

	var orders []model.Order
	if err := json.Unmarshal(data, &orders); err != nil {
		return nil, fmt.Errorf("failed to parse order store %s: %w", r.path, err)
	}

	return orders, nil
}

// writeAll replaces the stored list. Written to a temp file first so a crash
// mid-write never corrupts the existing store. Caller must hold the lock.
func (r *fileOrderRepository) writeAll(orders []model.Order) error {
	data, err := json.MarshalIndent(orders, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode order store: %w", err)
	}

	tmp := r.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write order store %s: %w", tmp, err)
	}

	if err := os.Rename(tmp, r.path); err != nil {
		return fmt.Errorf("failed to replace order store %s: %w", r.path, err)
	}

	return nil
}
