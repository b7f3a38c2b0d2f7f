package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"digital-city/internal/cart"
	"digital-city/internal/model"
	"digital-city/internal/service"
	"digital-city/internal/session"

	"github.com/rs/zerolog"
)

// CartHandler handles cart and favorites HTTP requests. All state is
// session-scoped; the session middleware guarantees a session on the
// request context.
type CartHandler struct {
	products service.ProductService
	pricing  cart.Pricing
	logger   zerolog.Logger
}

// NewCartHandler creates a new cart handler.
func NewCartHandler(products service.ProductService, pricing cart.Pricing, logger zerolog.Logger) *CartHandler {
	return &CartHandler{
		products: products,
		pricing:  pricing,
		logger:   logger.With().Str("handler", "cart").Logger(),
	}
}

// cartItemRequest is the body for cart line mutations. Color and size
// select one variant line; AllVariants widens removal to every line of the
// product.
type cartItemRequest struct {
	ProductID   int    `json:"productId"`
	Quantity    int    `json:"quantity"`
	Color       string `json:"color"`
	Size        string `json:"size"`
	AllVariants bool   `json:"allVariants"`
}

// cartResponse is the full cart view returned by every cart endpoint.
type cartResponse struct {
	Items     []model.CartItem `json:"items"`
	ItemCount int              `json:"itemCount"`
	Summary   cart.Summary     `json:"summary"`
}

func (h *CartHandler) cartView(s *session.Session) cartResponse {
	return cartResponse{
		Items:     s.Cart.Items(),
		ItemCount: s.Cart.ItemCount(),
		Summary:   h.pricing.Summarize(s.Cart.Subtotal()),
	}
}

func (h *CartHandler) sessionFrom(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	s, ok := session.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusInternalServerError, model.ErrCodeInternalError, "no session on request", h.logger)
		return nil, false
	}
	return s, true
}

// Get handles GET /api/cart requests.
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	s, ok := h.sessionFrom(w, r)
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, h.cartView(s))
}

// Items handles POST, PATCH and DELETE /api/cart/items requests.
func (h *CartHandler) Items(w http.ResponseWriter, r *http.Request) {
	s, ok := h.sessionFrom(w, r)
	if !ok {
		return
	}

	var req cartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", h.logger)
		return
	}

	key := model.LineKey{ProductID: req.ProductID, Color: req.Color, Size: req.Size}

	switch r.Method {
	case http.MethodPost:
		product, err := h.products.GetByID(r.Context(), req.ProductID)
		if err != nil {
			writeDomainError(w, err, h.logger)
			return
		}
		if err := s.Cart.AddItem(*product, req.Quantity, req.Color, req.Size); err != nil {
			writeDomainError(w, err, h.logger)
			return
		}
	case http.MethodPatch:
		s.Cart.UpdateQuantity(key, req.Quantity)
	case http.MethodDelete:
		if req.AllVariants {
			s.Cart.RemoveProduct(req.ProductID)
		} else {
			s.Cart.RemoveItem(key)
		}
	default:
		writeError(w, http.StatusMethodNotAllowed, model.ErrCodeValidationFailed, "method not allowed", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, h.cartView(s))
}

// Clear handles DELETE /api/cart requests.
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		writeError(w, http.StatusMethodNotAllowed, model.ErrCodeValidationFailed, "method not allowed", h.logger)
		return
	}

	s, ok := h.sessionFrom(w, r)
	if !ok {
		return
	}

	s.Cart.Clear()
	writeJSON(w, http.StatusOK, h.cartView(s))
}

// Favorites handles GET /api/favorites requests, returning the favorited
// products in ascending ID order.
func (h *CartHandler) Favorites(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, model.ErrCodeValidationFailed, "method not allowed", h.logger)
		return
	}

	s, ok := h.sessionFrom(w, r)
	if !ok {
		return
	}

	ids := s.Cart.Favorites()
	products := make([]model.Product, 0, len(ids))
	for _, id := range ids {
		product, err := h.products.GetByID(r.Context(), id)
		if err != nil {
			// Favorited products can vanish from the catalog; skip them.
			continue
		}
		products = append(products, *product)
	}

	writeJSON(w, http.StatusOK, products)
}

// FavoriteByID handles POST and DELETE /api/favorites/{id} requests.
func (h *CartHandler) FavoriteByID(w http.ResponseWriter, r *http.Request) {
	s, ok := h.sessionFrom(w, r)
	if !ok {
		return
	}

	// Expecting path: /api/favorites/{id}
	path := r.URL.Path
	if len(path) <= len("/api/favorites/") {
		writeError(w, http.StatusBadRequest, model.ErrCodeValidationFailed, "product ID is required", h.logger)
		return
	}
	id, err := strconv.Atoi(path[len("/api/favorites/"):])
	if err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeValidationFailed, "invalid product ID format", h.logger)
		return
	}

	switch r.Method {
	case http.MethodPost:
		if _, err := h.products.GetByID(r.Context(), id); err != nil {
			writeDomainError(w, err, h.logger)
			return
		}
		s.Cart.AddFavorite(id)
	case http.MethodDelete:
		s.Cart.RemoveFavorite(id)
	default:
		writeError(w, http.StatusMethodNotAllowed, model.ErrCodeValidationFailed, "method not allowed", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, map[string][]int{"favorites": s.Cart.Favorites()})
}
