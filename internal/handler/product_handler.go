package handler

import (
	"net/http"
	"strconv"

	"digital-city/internal/filter"
	"digital-city/internal/model"
	"digital-city/internal/service"

	"github.com/rs/zerolog"
)

// ProductHandler handles catalog-related HTTP requests.
type ProductHandler struct {
	service service.ProductService
	logger  zerolog.Logger
}

// NewProductHandler creates a new product handler.
func NewProductHandler(service service.ProductService, logger zerolog.Logger) *ProductHandler {
	return &ProductHandler{
		service: service,
		logger:  logger.With().Str("handler", "product").Logger(),
	}
}

// parseQuery builds a filter query from request parameters, starting from
// the defaults so omitted parameters keep their everything-matches values.
func parseQuery(r *http.Request) (filter.Query, error) {
	q := filter.DefaultQuery()
	params := r.URL.Query()

	if category := params.Get("category"); category != "" {
		q.Category = category
	}
	q.Search = params.Get("q")
	q.Sort = filter.ParseSortKey(params.Get("sort"))

	if raw := params.Get("minPrice"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return q, model.NewDomainError(model.ErrCodeValidationFailed, "invalid minPrice parameter")
		}
		q.MinPrice = v
	}
	if raw := params.Get("maxPrice"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return q, model.NewDomainError(model.ErrCodeValidationFailed, "invalid maxPrice parameter")
		}
		q.MaxPrice = v
	}
	if raw := params.Get("minRating"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return q, model.NewDomainError(model.ErrCodeValidationFailed, "invalid minRating parameter")
		}
		q.MinRating = v
	}

	return q, nil
}

// GetAll handles GET /api/products requests with filter and sort parameters.
func (h *ProductHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, model.ErrCodeValidationFailed, "method not allowed", h.logger)
		return
	}

	q, err := parseQuery(r)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	products, err := h.service.Search(r.Context(), q)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, products)
}

// GetByID handles GET /api/products/{id} requests.
func (h *ProductHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, model.ErrCodeValidationFailed, "method not allowed", h.logger)
		return
	}

	// Expecting path: /api/products/{id}
	path := r.URL.Path
	if len(path) <= len("/api/products/") {
		writeError(w, http.StatusBadRequest, model.ErrCodeValidationFailed, "product ID is required", h.logger)
		return
	}
	id, err := strconv.Atoi(path[len("/api/products/"):])
	if err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeValidationFailed, "invalid product ID format", h.logger)
		return
	}

	product, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, product)
}

// Categories handles GET /api/categories requests.
func (h *ProductHandler) Categories(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, model.ErrCodeValidationFailed, "method not allowed", h.logger)
		return
	}

	categories, err := h.service.Categories(r.Context())
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, categories)
}

// Sliders handles GET /api/sliders requests.
func (h *ProductHandler) Sliders(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, model.ErrCodeValidationFailed, "method not allowed", h.logger)
		return
	}

	sliders, err := h.service.Sliders(r.Context())
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, sliders)
}

// Regions handles GET /api/regions requests.
func (h *ProductHandler) Regions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, model.ErrCodeValidationFailed, "method not allowed", h.logger)
		return
	}

	regions, err := h.service.Regions(r.Context())
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, regions)
}
