package service

import (
	"context"

	"digital-city/internal/filter"
	"digital-city/internal/model"

	"github.com/rs/zerolog"
)

// productService implements ProductService over the catalog snapshot loaded
// at startup. The snapshot is never mutated, so reads need no locking.
type productService struct {
	catalog *model.Catalog
	regions []model.Region
	byID    map[int]*model.Product
	logger  zerolog.Logger
}

// NewProductService creates a new product service.
func NewProductService(catalog *model.Catalog, regions []model.Region, logger zerolog.Logger) ProductService {
	byID := make(map[int]*model.Product, len(catalog.Products))
	for i := range catalog.Products {
		byID[catalog.Products[i].ID] = &catalog.Products[i]
	}

	return &productService{
		catalog: catalog,
		regions: regions,
		byID:    byID,
		logger:  logger.With().Str("service", "product").Logger(),
	}
}

// Search applies the filter/sort query to the catalog.
func (s *productService) Search(ctx context.Context, q filter.Query) ([]model.Product, error) {
	products := filter.Apply(s.catalog.Products, q)

	s.logger.Debug().
		Str("category", q.Category).
		Str("search", q.Search).
		Str("sort", string(q.Sort)).
		Int("count", len(products)).
		Msg("catalog searched")

	return products, nil
}

// GetByID retrieves a single product by ID.
func (s *productService) GetByID(ctx context.Context, id int) (*model.Product, error) {
	product, ok := s.byID[id]
	if !ok {
		s.logger.Debug().Int("product_id", id).Msg("product not found")
		return nil, model.ErrProductNotFound
	}

	p := *product
	return &p, nil
}

// Categories returns all categories with their product counts.
func (s *productService) Categories(ctx context.Context) ([]model.CategoryCount, error) {
	counts := make([]model.CategoryCount, 0, len(s.catalog.Categories))
	for _, c := range s.catalog.Categories {
		counts = append(counts, model.CategoryCount{
			Category: c,
			Count:    filter.CountInCategory(s.catalog.Products, c.ID),
		})
	}
	return counts, nil
}

// Sliders returns the storefront slider entries.
func (s *productService) Sliders(ctx context.Context) ([]model.SliderData, error) {
	return s.catalog.Sliders, nil
}

// Regions returns the shipping regions.
func (s *productService) Regions(ctx context.Context) ([]model.Region, error) {
	return s.regions, nil
}
