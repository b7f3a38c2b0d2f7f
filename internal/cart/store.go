package cart

import (
	"sort"
	"sync"

	"digital-city/internal/model"

	"github.com/rs/zerolog"
)

// Store is the single source of truth for one visitor's cart and favourites.
// Lines keep insertion order; the subtotal is always recomputed from the
// lines, never stored independently.
//
// Line identity is (product id, colour, size). Mutating operations that take
// a model.LineKey target exactly one variant line; RemoveProduct and the
// id-only queries deliberately span all variants of a product.
type Store struct {
	mu        sync.RWMutex
	items     []model.CartItem
	favorites map[int]struct{}
	logger    zerolog.Logger
}

// NewStore creates an empty cart/favourites store.
func NewStore(logger zerolog.Logger) *Store {
	return &Store{
		favorites: make(map[int]struct{}),
		logger:    logger.With().Str("component", "cart").Logger(),
	}
}

// AddItem adds quantity units of the given product variant. If a line with
// the same identity exists its quantity is incremented, otherwise a new line
// is appended. Additions are capped against product stock across all variant
// lines of the product.
func (s *Store) AddItem(product model.Product, quantity int, color, size string) error {
	if quantity <= 0 {
		return model.ErrInvalidQuantity
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !product.InStock || s.productQuantityLocked(product.ID)+quantity > product.Stock {
		s.logger.Debug().
			Int("product_id", product.ID).
			Int("requested", quantity).
			Int("stock", product.Stock).
			Msg("insufficient stock")
		return model.ErrInsufficientStock
	}

	key := model.LineKey{ProductID: product.ID, Color: color, Size: size}
	for i := range s.items {
		if s.items[i].Key() == key {
			s.items[i].Quantity += quantity
			s.logger.Debug().
				Int("product_id", product.ID).
				Int("quantity", s.items[i].Quantity).
				Msg("cart line quantity incremented")
			return nil
		}
	}

	s.items = append(s.items, model.CartItem{
		Product:       product,
		Quantity:      quantity,
		SelectedColor: color,
		SelectedSize:  size,
	})

	s.logger.Debug().
		Int("product_id", product.ID).
		Int("quantity", quantity).
		Msg("cart line added")

	return nil
}

// UpdateQuantity sets the quantity of the line identified by key. A quantity
// of zero or less removes the line. Unknown keys are a no-op.
func (s *Store) UpdateQuantity(key model.LineKey, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].Key() != key {
			continue
		}
		if quantity <= 0 {
			s.items = append(s.items[:i], s.items[i+1:]...)
			s.logger.Debug().Int("product_id", key.ProductID).Msg("cart line removed via zero quantity")
		} else {
			s.items[i].Quantity = quantity
		}
		return
	}
}

// RemoveItem removes the single line identified by key. Unknown keys are a
// no-op.
func (s *Store) RemoveItem(key model.LineKey) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].Key() == key {
			s.items = append(s.items[:i], s.items[i+1:]...)
			s.logger.Debug().Int("product_id", key.ProductID).Msg("cart line removed")
			return
		}
	}
}

// RemoveProduct removes every variant line of the given product.
func (s *Store) RemoveProduct(productID int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.items[:0]
	for _, item := range s.items {
		if item.Product.ID != productID {
			kept = append(kept, item)
		}
	}
	s.items = kept
}

// Clear empties the cart entirely. Favourites are unaffected.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = nil
	s.logger.Debug().Msg("cart cleared")
}

// Items returns a snapshot of the cart lines in insertion order.
func (s *Store) Items() []model.CartItem {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]model.CartItem, len(s.items))
	copy(items, s.items)
	return items
}

// Subtotal returns the sum of price times quantity over all lines.
func (s *Store) Subtotal() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var total float64
	for _, item := range s.items {
		total += item.LineTotal()
	}
	return total
}

// ItemCount returns the sum of quantities across all lines. This is the
// badge count, not the number of distinct lines.
func (s *Store) ItemCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, item := range s.items {
		count += item.Quantity
	}
	return count
}

// IsInCart reports whether any variant of the product is in the cart.
func (s *Store) IsInCart(productID int) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, item := range s.items {
		if item.Product.ID == productID {
			return true
		}
	}
	return false
}

// AddFavorite marks a product as a favourite. Idempotent.
func (s *Store) AddFavorite(productID int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.favorites[productID] = struct{}{}
}

// RemoveFavorite unmarks a product. Idempotent.
func (s *Store) RemoveFavorite(productID int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.favorites, productID)
}

// IsFavorite reports whether a product is marked as a favourite.
func (s *Store) IsFavorite(productID int) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.favorites[productID]
	return ok
}

// Favorites returns the favourite product ids in ascending order.
func (s *Store) Favorites() []int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]int, 0, len(s.favorites))
	for id := range s.favorites {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// productQuantityLocked sums quantities across all variant lines of a
// product. Caller must hold the lock.
func (s *Store) productQuantityLocked(productID int) int {
	count := 0
	for _, item := range s.items {
		if item.Product.ID == productID {
			count += item.Quantity
		}
	}
	return count
}
