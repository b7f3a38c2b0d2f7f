package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
)

// Order store backends.
const (
	OrderStoreFile     = "file"
	OrderStorePostgres = "postgres"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Logger   LoggerConfig
	Catalog  CatalogConfig
	Store    StoreConfig
	Checkout CheckoutConfig
}

// ServerConfig holds server-related configuration.
type ServerConfig struct {
	Host              string
	Port              int
	SessionTTLMinutes int // idle minutes before a session is dropped; 0 keeps sessions forever
}

// DatabaseConfig holds PostgreSQL configuration, used when the order store
// backend is "postgres".
type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	Database        string
	MaxConnections  int
	MinConnections  int
	MaxConnLifetime int // seconds
}

// LoggerConfig holds logger-related configuration.
type LoggerConfig struct {
	Level  string
	Format string // "json" or "console"
}

// CatalogConfig holds the catalogue and region data source locations.
type CatalogConfig struct {
	CatalogPath string
	RegionsPath string
	S3Enabled   bool
	S3Bucket    string
	S3Region    string
	S3Prefix    string // path prefix within bucket (e.g. "data/")
}

// StoreConfig holds cart pricing policy and order persistence settings.
type StoreConfig struct {
	FreeShippingThreshold float64
	ShippingFee           float64
	OrderBackend          string // "file" or "postgres"
	OrdersFile            string
}

// CheckoutConfig holds checkout flow settings.
type CheckoutConfig struct {
	SubmitDelayMillis int // simulated processing latency before persisting
}

// Load loads configuration from the environment. A .env file in the working
// directory is applied first when present; real environment variables win.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Host:              getEnv("SERVER_HOST", "0.0.0.0"),
			Port:              getEnvAsInt("SERVER_PORT", 8080),
			SessionTTLMinutes: getEnvAsInt("SESSION_TTL_MINUTES", 120),
		},
		Database: DatabaseConfig{
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnvAsInt("DB_PORT", 5432),
			User:            getEnv("DB_USER", "postgres"),
			Password:        getEnv("DB_PASSWORD", ""),
			Database:        getEnv("DB_NAME", "digitalcity"),
			MaxConnections:  getEnvAsInt("DB_MAX_CONNECTIONS", 25),
			MinConnections:  getEnvAsInt("DB_MIN_CONNECTIONS", 5),
			MaxConnLifetime: getEnvAsInt("DB_MAX_CONN_LIFETIME", 300),
		},
		Logger: LoggerConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		Catalog: CatalogConfig{
			CatalogPath: getEnv("CATALOG_PATH", "data/catalog.json"),
			RegionsPath: getEnv("REGIONS_PATH", "data/regions.json"),
			S3Enabled:   getEnvAsBool("S3_ENABLED", false),
			S3Bucket:    getEnv("S3_BUCKET", ""),
			S3Region:    getEnv("S3_REGION", "us-east-1"),
			S3Prefix:    getEnv("S3_PREFIX", "data/"),
		},
		Store: StoreConfig{
			FreeShippingThreshold: getEnvAsFloat("FREE_SHIPPING_THRESHOLD", 50000),
			ShippingFee:           getEnvAsFloat("SHIPPING_FEE", 1500),
			OrderBackend:          getEnv("ORDER_BACKEND", OrderStoreFile),
			OrdersFile:            getEnv("ORDERS_FILE", "data/digital-city-orders.json"),
		},
		Checkout: CheckoutConfig{
			SubmitDelayMillis: getEnvAsInt("CHECKOUT_SUBMIT_DELAY_MS", 2000),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Server.SessionTTLMinutes < 0 {
		return fmt.Errorf("session TTL cannot be negative")
	}

	if c.Catalog.CatalogPath == "" {
		return fmt.Errorf("catalog path is required")
	}

	if c.Catalog.RegionsPath == "" {
		return fmt.Errorf("regions path is required")
	}

	if c.Catalog.S3Enabled {
		if c.Catalog.S3Bucket == "" {
			return fmt.Errorf("S3 bucket is required when S3 is enabled")
		}
		if c.Catalog.S3Region == "" {
			return fmt.Errorf("S3 region is required when S3 is enabled")
		}
	}

	if c.Store.FreeShippingThreshold < 0 {
		return fmt.Errorf("free shipping threshold cannot be negative")
	}

	if c.Store.ShippingFee < 0 {
		return fmt.Errorf("shipping fee cannot be negative")
	}

	switch c.Store.OrderBackend {
	case OrderStoreFile:
		if c.Store.OrdersFile == "" {
			return fmt.Errorf("orders file is required for the file order store")
		}
	case OrderStorePostgres:
		if c.Database.Host == "" {
			return fmt.Errorf("database host is required")
		}
		if c.Database.Port < 1 || c.Database.Port > 65535 {
			return fmt.Errorf("invalid database port: %d", c.Database.Port)
		}
		if c.Database.User == "" {
			return fmt.Errorf("database user is required")
		}
		if c.Database.Database == "" {
			return fmt.Errorf("database name is required")
		}
		if c.Database.MaxConnections < 1 {
			return fmt.Errorf("database max connections must be at least 1")
		}
		if c.Database.MinConnections < 1 {
			return fmt.Errorf("database min connections must be at least 1")
		}
		if c.Database.MinConnections > c.Database.MaxConnections {
			return fmt.Errorf("database min connections cannot exceed max connections")
		}
	default:
		return fmt.Errorf("invalid order backend: %s (must be file or postgres)", c.Store.OrderBackend)
	}

	if c.Checkout.SubmitDelayMillis < 0 {
		return fmt.Errorf("checkout submit delay cannot be negative")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}

	if !validLogLevels[c.Logger.Level] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	if c.Logger.Format != "json" && c.Logger.Format != "console" {
		return fmt.Errorf("invalid log format: %s (must be json or console)", c.Logger.Format)
	}

	return nil
}

// ConnectionString returns the PostgreSQL connection string.
func (c *DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.User,
		c.Password,
		c.Host,
		c.Port,
		c.Database,
	)
}

// PoolConfig returns the pgx pool configuration for the order store. The
// order workload is write-light, so idle connections are recycled after half
// an hour and health-checked every minute.
func (c *DatabaseConfig) PoolConfig() (*pgxpool.Config, error) {
	poolConfig, err := pgxpool.ParseConfig(c.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("failed to parse database connection string: %w", err)
	}

	poolConfig.MaxConns = int32(c.MaxConnections)
	poolConfig.MinConns = int32(c.MinConnections)
	poolConfig.MaxConnLifetime = time.Duration(c.MaxConnLifetime) * time.Second
	poolConfig.MaxConnIdleTime = 30 * time.Minute
	poolConfig.HealthCheckPeriod = 1 * time.Minute

	return poolConfig, nil
}

// Address returns the server address.
func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// getEnv retrieves an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value.
func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsFloat retrieves an environment variable as a float or returns a default value.
func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

// getEnvAsBool retrieves an environment variable as a boolean or returns a default value.
func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
