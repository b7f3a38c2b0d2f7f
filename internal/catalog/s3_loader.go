package catalog

import (
	"context"
	"fmt"
	"path"

	"digital-city/internal/model"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"
)

// s3Loader implements Loader for reading catalogue documents from AWS S3.
type s3Loader struct {
	client     *s3.Client
	bucket     string
	catalogKey string
	regionsKey string
	logger     zerolog.Logger
}

// NewS3Loader creates a new S3-based catalogue loader. The document keys are
// prefix + the base name of the configured local paths.
func NewS3Loader(ctx context.Context, bucket, region, prefix string, catalogPath, regionsPath string, logger zerolog.Logger) (Loader, error) {
	logger = logger.With().Str("component", "s3-catalog-loader").Logger()

	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		logger.Error().Err(err).Msg("failed to load AWS configuration")
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	client := s3.NewFromConfig(cfg)

	logger.Info().
		Str("bucket", bucket).
		Str("region", region).
		Str("prefix", prefix).
		Msg("S3 catalog loader initialised")

	return &s3Loader{
		client:     client,
		bucket:     bucket,
		catalogKey: prefix + path.Base(catalogPath),
		regionsKey: prefix + path.Base(regionsPath),
		logger:     logger,
	}, nil
}

// LoadCatalog reads and parses the catalogue document from S3.
func (l *s3Loader) LoadCatalog(ctx context.Context) (*model.Catalog, error) {
	l.logger.Info().
		Str("bucket", l.bucket).
		Str("key", l.catalogKey).
		Msg("loading catalog from S3")

	result, err := l.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(l.bucket),
		Key:    aws.String(l.catalogKey),
	})
	if err != nil {
		l.logger.Error().
			Err(err).
			Str("bucket", l.bucket).
			Str("key", l.catalogKey).
			Msg("failed to get catalog object from S3")
		return nil, fmt.Errorf("failed to get object from S3 (bucket=%s, key=%s): %w", l.bucket, l.catalogKey, err)
	}
	defer result.Body.Close()

	catalog, err := decodeCatalog(result.Body)
	if err != nil {
		l.logger.Error().
			Err(err).
			Str("bucket", l.bucket).
			Str("key", l.catalogKey).
			Msg("failed to decode catalog object")
		return nil, fmt.Errorf("S3 object %s: %w", l.catalogKey, err)
	}

	l.logger.Info().
		Str("bucket", l.bucket).
		Str("key", l.catalogKey).
		Int("products", len(catalog.Products)).
		Msg("catalog loaded successfully from S3")

	return catalog, nil
}

// LoadRegions reads and parses the region document from S3.
func (l *s3Loader) LoadRegions(ctx context.Context) ([]model.Region, error) {
	l.logger.Info().
		Str("bucket", l.bucket).
		Str("key", l.regionsKey).
		Msg("loading regions from S3")

	result, err := l.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(l.bucket),
		Key:    aws.String(l.regionsKey),
	})
	if err != nil {
		l.logger.Error().
			Err(err).
			Str("bucket", l.bucket).
			Str("key", l.regionsKey).
			Msg("failed to get regions object from S3")
		return nil, fmt.Errorf("failed to get object from S3 (bucket=%s, key=%s): %w", l.bucket, l.regionsKey, err)
	}
	defer result.Body.Close()

	regions, err := decodeRegions(result.Body)
	if err != nil {
		l.logger.Error().
			Err(err).
			Str("bucket", l.bucket).
			Str("key", l.regionsKey).
			Msg("failed to decode regions object")
		return nil, fmt.Errorf("S3 object %s: %w", l.regionsKey, err)
	}

	l.logger.Info().
		Str("bucket", l.bucket).
		Str("key", l.regionsKey).
		Int("regions", len(regions)).
		Msg("regions loaded successfully from S3")

	return regions, nil
}

// fallbackLoader tries S3 first, then falls back to the local file system.
type fallbackLoader struct {
	s3Loader   Loader
	fileLoader Loader
	logger     zerolog.Logger
}

// NewFallbackLoader creates a loader that tries S3 first, then falls back to
// local disk. If s3Loader is nil, only the file loader is used.
func NewFallbackLoader(s3Loader, fileLoader Loader, logger zerolog.Logger) Loader {
	return &fallbackLoader{
		s3Loader:   s3Loader,
		fileLoader: fileLoader,
		logger:     logger.With().Str("component", "fallback-catalog-loader").Logger(),
	}
}

// LoadCatalog attempts S3 first, then local disk.
func (l *fallbackLoader) LoadCatalog(ctx context.Context) (*model.Catalog, error) {
	if l.s3Loader != nil {
		catalog, err := l.s3Loader.LoadCatalog(ctx)
		if err == nil {
			return catalog, nil
		}
		l.logger.Warn().Err(err).Msg("failed to load catalog from S3, falling back to local file system")
	}
	return l.fileLoader.LoadCatalog(ctx)
}

// LoadRegions attempts S3 first, then local disk.
func (l *fallbackLoader) LoadRegions(ctx context.Context) ([]model.Region, error) {
	if l.s3Loader != nil {
		regions, err := l.s3Loader.LoadRegions(ctx)
		if err == nil {
			return regions, nil
		}
		l.logger.Warn().Err(err).Msg("failed to load regions from S3, falling back to local file system")
	}
	return l.fileLoader.LoadRegions(ctx)
}
