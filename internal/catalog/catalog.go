package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"digital-city/internal/model"
)

// Loader defines the interface for loading the storefront data sources.
type Loader interface {
	// LoadCatalog reads the catalogue document (products, categories,
	// slides). The synthetic "all products" category is prepended to the
	// category list; it is not part of the source document.
	LoadCatalog(ctx context.Context) (*model.Catalog, error)

	// LoadRegions reads the region (wilaya) list used by checkout.
	LoadRegions(ctx context.Context) ([]model.Region, error)
}

// decodeCatalog parses a catalogue document and prepends the synthetic
// "all products" category.
func decodeCatalog(r io.Reader) (*model.Catalog, error) {
	var catalog model.Catalog
	if err := json.NewDecoder(r).Decode(&catalog); err != nil {
		return nil, fmt.Errorf("failed to decode catalog document: %w", err)
	}

	all := model.Category{ID: model.CategoryAll, Name: "جميع المنتجات", Icon: "grid"}
	catalog.Categories = append([]model.Category{all}, catalog.Categories...)

	return &catalog, nil
}

// decodeRegions parses a region document.
func decodeRegions(r io.Reader) ([]model.Region, error) {
	var doc model.RegionDocument
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode region document: %w", err)
	}
	return doc.Wilayas, nil
}
