// Package config loads the import service configuration from environment
// variables. Every field has a default except the database URL, and the whole
// configuration is validated on startup so misconfiguration fails fast.
package config

import (
	"strconv"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Import   ImportConfig
	Rate     RateLimitConfig
	Security SecurityConfig
	Logging  LoggingConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host string `env:"SERVER_HOST" default:"0.0.0.0"`
	Port int    `env:"SERVER_PORT" default:"8080"`

	ReadTimeout     time.Duration `env:"SERVER_READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `env:"SERVER_WRITE_TIMEOUT" default:"120s"`
	IdleTimeout     time.Duration `env:"SERVER_IDLE_TIMEOUT" default:"60s"`
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" default:"30s"`

	// RequestTimeout bounds every request, bulk imports included.
	RequestTimeout time.Duration `env:"SERVER_REQUEST_TIMEOUT" default:"110s"`
}

// DatabaseConfig holds Postgres pool settings.
type DatabaseConfig struct {
	// URL is the PostgreSQL connection string (DATABASE_URL or DB_URL).
	URL string `env:"DATABASE_URL" envAlt:"DB_URL" required:"true"`

	MaxConns        int           `env:"DB_MAX_CONNS" default:"20"`
	MinConns        int           `env:"DB_MIN_CONNS" default:"2"`
	MaxConnLifetime time.Duration `env:"DB_MAX_CONN_LIFETIME" default:"1h"`
	MaxConnIdleTime time.Duration `env:"DB_MAX_CONN_IDLE_TIME" default:"30m"`

	// ApplySchema runs the embedded CREATE ... IF NOT EXISTS script on startup.
	ApplySchema bool `env:"DB_APPLY_SCHEMA" default:"true"`
}

// ImportConfig holds spreadsheet import settings.
type ImportConfig struct {
	// MaxFileSize caps the multipart upload accepted by the parse endpoint.
	MaxFileSize int64 `env:"IMPORT_MAX_FILE_SIZE" default:"10485760"`

	// MaxRows caps the number of rows accepted in one bulk request.
	MaxRows int `env:"IMPORT_MAX_ROWS" default:"5000"`

	// MaxConcurrent is the number of bulk imports allowed to run at once.
	MaxConcurrent int `env:"IMPORT_MAX_CONCURRENT" default:"4"`

	// MaxWaitTime is how long a bulk import waits for a free slot.
	MaxWaitTime time.Duration `env:"IMPORT_MAX_WAIT_TIME" default:"15s"`

	// Workers bounds the student/faculty row pool. Zero sizes it to DB_MAX_CONNS.
	Workers int `env:"IMPORT_WORKERS" default:"0"`

	// Timeout bounds a single bulk import.
	Timeout time.Duration `env:"IMPORT_TIMEOUT" default:"100s"`

	// BcryptCost is the cost used to hash account passwords.
	BcryptCost int `env:"IMPORT_BCRYPT_COST" default:"10"`
}

// RateLimitConfig holds per-IP rate limiting settings.
type RateLimitConfig struct {
	Enabled           bool `env:"RATE_LIMIT_ENABLED" default:"true"`
	RequestsPerMinute int  `env:"RATE_LIMIT_REQUESTS_PER_MINUTE" default:"100"`

	// ImportLimit is requests per minute for the parse and bulk endpoints.
	ImportLimit int `env:"RATE_LIMIT_IMPORT" default:"20"`
}

// SecurityConfig holds authentication settings.
type SecurityConfig struct {
	// RequireAPIKey gates every /import route behind the X-API-Key header.
	RequireAPIKey bool `env:"REQUIRE_API_KEY" default:"true"`

	// APIKeys is a comma-separated list of accepted keys.
	APIKeys []string `env:"API_KEYS"`

	// TrustedProxies is a comma-separated list of proxy CIDRs allowed to set X-Real-IP.
	TrustedProxies []string `env:"TRUSTED_PROXIES"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is text or json.
	Format string `env:"LOG_FORMAT" default:"text"`
}

// Addr returns the server listen address in host:port format.
func (c *ServerConfig) Addr() string {
	return c.Host + ":" + strconv.Itoa(c.Port)
}

// RowWorkers returns the student/faculty worker pool size.
// It falls back to the database pool size so workers never queue on connections.
func (c *Config) RowWorkers() int {
	if c.Import.Workers > 0 {
		return c.Import.Workers
	}
	if c.Database.MaxConns > 0 {
		return c.Database.MaxConns
	}
	return 1
}
