package catalog

import (
	"context"
	"fmt"
	"os"

	"digital-city/internal/model"

	"github.com/rs/zerolog"
)

// fileLoader implements Loader for reading JSON documents from local disk.
type fileLoader struct {
	catalogPath string
	regionsPath string
	logger      zerolog.Logger
}

// NewFileLoader creates a new file-based catalogue loader.
func NewFileLoader(catalogPath, regionsPath string, logger zerolog.Logger) Loader {
	return &fileLoader{
		catalogPath: catalogPath,
		regionsPath: regionsPath,
		logger:      logger.With().Str("component", "catalog-loader").Logger(),
	}
}

// LoadCatalog reads and parses the catalogue document from local disk.
func (l *fileLoader) LoadCatalog(ctx context.Context) (*model.Catalog, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	l.logger.Info().Str("file", l.catalogPath).Msg("loading catalog file")

	file, err := os.Open(l.catalogPath)
	if err != nil {
		l.logger.Error().Err(err).Str("file", l.catalogPath).Msg("failed to open catalog file")
		return nil, fmt.Errorf("failed to open catalog file %s: %w", l.catalogPath, err)
	}
	defer file.Close()

	catalog, err := decodeCatalog(file)
	if err != nil {
		l.logger.Error().Err(err).Str("file", l.catalogPath).Msg("failed to decode catalog file")
		return nil, fmt.Errorf("catalog file %s: %w", l.catalogPath, err)
	}

	l.logger.Info().
		Str("file", l.catalogPath).
		Int("products", len(catalog.Products)).
		Int("categories", len(catalog.Categories)).
		Int("sliders", len(catalog.Sliders)).
		Msg("catalog file loaded successfully")

	return catalog, nil
}

// LoadRegions reads and parses the region document from local disk.
func (l *fileLoader) LoadRegions(ctx context.Context) ([]model.Region, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	l.logger.Info().Str("file", l.regionsPath).Msg("loading regions file")

	file, err := os.Open(l.regionsPath)
	if err != nil {
		l.logger.Error().Err(err).Str("file", l.regionsPath).Msg("failed to open regions file")
		return nil, fmt.Errorf("failed to open regions file %s: %w", l.regionsPath, err)
	}
	defer file.Close()

	regions, err := decodeRegions(file)
	if err != nil {
		l.logger.Error().Err(err).Str("file", l.regionsPath).Msg("failed to decode regions file")
		return nil, fmt.Errorf("regions file %s: %w", l.regionsPath, err)
	}

	l.logger.Info().
		Str("file", l.regionsPath).
		Int("regions", len(regions)).
		Msg("regions file loaded successfully")

	return regions, nil
}
