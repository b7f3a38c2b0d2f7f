package service

import (
	"context"

	"digital-city/internal/filter"
	"digital-city/internal/model"
)

// ProductService defines read operations over the loaded catalog.
type ProductService interface {
	// Search applies the filter/sort query to the catalog.
	Search(ctx context.Context, q filter.Query) ([]model.Product, error)

	// GetByID retrieves a single product by ID.
	GetByID(ctx context.Context, id int) (*model.Product, error)

	// Categories returns the category list, including the synthetic
	// all-products entry, each with its product count.
	Categories(ctx context.Context) ([]model.CategoryCount, error)

	// Sliders returns the storefront slider entries.
	Sliders(ctx context.Context) ([]model.SliderData, error)

	// Regions returns the shipping regions.
	Regions(ctx context.Context) ([]model.Region, error)
}

// OrderService defines operations for order lookup.
type OrderService interface {
	// GetByID retrieves a persisted order by its ID.
	GetByID(ctx context.Context, id string) (*model.Order, error)
}
