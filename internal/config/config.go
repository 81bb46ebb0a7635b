// Package config provides centralized configuration management for the application.
// It loads configuration from environment variables with sensible defaults and
// validates all settings on startup to fail fast on misconfiguration.
package config

import (
	"strconv"
	"time"
)

// Config holds all application configuration.
// All settings can be configured via environment variables.
type Config struct {
	Server   ServerConfig
	Storage  StorageConfig
	Lists    ListsConfig
	Rate     RateLimitConfig
	Security SecurityConfig
	Logging  LoggingConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Host is the interface to bind to (default: 0.0.0.0)
	Host string `env:"SERVER_HOST" default:"0.0.0.0"`

	// Port is the port to listen on (default: 8080)
	Port int `env:"SERVER_PORT" default:"8080"`

	// ReadTimeout is the maximum duration for reading request body (default: 15s)
	ReadTimeout time.Duration `env:"SERVER_READ_TIMEOUT" default:"15s"`

	// WriteTimeout is the maximum duration for writing response (default: 30s)
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" default:"30s"`

	// IdleTimeout is the keep-alive timeout (default: 60s)
	IdleTimeout time.Duration `env:"SERVER_IDLE_TIMEOUT" default:"60s"`

	// ShutdownTimeout is the maximum duration to wait for graceful shutdown (default: 30s)
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" default:"30s"`

	// RequestTimeout is the middleware timeout for requests (default: 60s)
	RequestTimeout time.Duration `env:"SERVER_REQUEST_TIMEOUT" default:"60s"`
}

// StorageConfig selects and configures the list store.
type StorageConfig struct {
	// Driver is "file" or "postgres" (default: file)
	Driver string `env:"STORAGE_DRIVER" default:"file"`

	// DataPath is the lists document for the file driver (default: data/lists.json)
	DataPath string `env:"STORAGE_DATA_PATH" default:"data/lists.json"`

	// TemplatesPath is an optional templates document; built-in templates are used when empty
	TemplatesPath string `env:"STORAGE_TEMPLATES_PATH"`

	// Compress writes the lists document lz4-compressed (default: false)
	Compress bool `env:"STORAGE_COMPRESS" default:"false"`

	// SaveOnWrite saves after every mutation instead of on the snapshot interval (default: true)
	SaveOnWrite bool `env:"STORAGE_SAVE_ON_WRITE" default:"true"`

	// SnapshotInterval is how often unsaved changes are flushed when SaveOnWrite is off (default: 30s)
	SnapshotInterval time.Duration `env:"STORAGE_SNAPSHOT_INTERVAL" default:"30s"`

	// DatabaseURL is the PostgreSQL connection string (required for the postgres driver)
	// Supports both DATABASE_URL and DB_URL env vars for compatibility
	DatabaseURL string `env:"DATABASE_URL" envAlt:"DB_URL"`

	// MaxConns is the maximum number of connections in the pool (default: 10)
	MaxConns int `env:"DB_MAX_CONNS" default:"10"`

	// MinConns is the minimum number of connections to keep open (default: 2)
	MinConns int `env:"DB_MIN_CONNS" default:"2"`

	// MaxConnLifetime is the maximum lifetime of a connection (default: 1h)
	MaxConnLifetime time.Duration `env:"DB_MAX_CONN_LIFETIME" default:"1h"`
}

// ListsConfig holds list engine defaults.
type ListsConfig struct {
	// DefaultPageSize is the page size of new lists (default: 25)
	DefaultPageSize int `env:"LISTS_DEFAULT_PAGE_SIZE" default:"25"`

	// MaxImportSize is the maximum accepted CSV/JSON import body in bytes (default: 10MB)
	MaxImportSize int64 `env:"LISTS_MAX_IMPORT_SIZE" default:"10485760"`

	// MaxConcurrentImports is how many imports may be parsed at once (default: 4)
	MaxConcurrentImports int `env:"LISTS_MAX_CONCURRENT_IMPORTS" default:"4"`

	// ImportWait is how long an import waits for a free slot (default: 10s)
	ImportWait time.Duration `env:"LISTS_IMPORT_WAIT" default:"10s"`
}

// RateLimitConfig holds rate limiting settings per time window.
type RateLimitConfig struct {
	// Enabled controls whether rate limiting is active (default: true)
	Enabled bool `env:"RATE_LIMIT_ENABLED" default:"true"`

	// RequestsPerMinute is the default rate limit per IP (default: 100)
	RequestsPerMinute int `env:"RATE_LIMIT_REQUESTS_PER_MINUTE" default:"100"`
}

// SecurityConfig holds security-related settings.
type SecurityConfig struct {
	// RequireAPIKey rejects API requests without a valid X-API-Key (default: false)
	RequireAPIKey bool `env:"REQUIRE_API_KEY" default:"false"`

	// APIKeys is a comma-separated list of accepted API keys
	APIKeys []string `env:"API_KEYS"`

	// TrustedProxies is a comma-separated list of trusted proxy CIDRs
	TrustedProxies []string `env:"TRUSTED_PROXIES"`

	// EnableCSP enables Content-Security-Policy headers (default: true)
	EnableCSP bool `env:"SECURITY_ENABLE_CSP" default:"true"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`
}

// Addr returns the server listen address in host:port format.
func (c *ServerConfig) Addr() string {
	return c.Host + ":" + strconv.Itoa(c.Port)
}
