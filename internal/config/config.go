package config

import (
	"errors"
	"fmt"
	"log"
	"slices"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"golang.org/x/text/language"
)

// EnvPrefix is prepended to every variable name
const EnvPrefix = "NAMAX_"

// Store backends
const (
	StoreMemory = "memory"
	StoreSQLite = "sqlite"
	StoreRedis  = "redis"
)

var ErrInvalidConfig = errors.New("invalid configuration")

type Config struct {
	ListenPort      string        `env:"LISTEN_PORT" envDefault:":8080"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"5s"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`  // "debug" | "info" | "warn" | "error"
	PrettyLog bool   `env:"PRETTY_LOG" envDefault:"true"` // true => zap dev (color), false => zap prod (JSON)

	// Persistence
	Store      string `env:"STORE" envDefault:"sqlite"` // memory | sqlite | redis
	SQLitePath string `env:"SQLITE_PATH" envDefault:"data/namax.db"`

	// Catalog
	CatalogFile    string        `env:"CATALOG_FILE"`                    // empty = built-in catalog
	ReloadInterval time.Duration `env:"RELOAD_INTERVAL" envDefault:"24h"` // 0 disables periodic reload

	// Filter bar
	DebounceDelay        time.Duration `env:"DEBOUNCE_DELAY" envDefault:"300ms"`
	SessionIdleTTL       time.Duration `env:"SESSION_IDLE_TTL" envDefault:"30m"`
	SessionSweepInterval time.Duration `env:"SESSION_SWEEP_INTERVAL" envDefault:"5m"`

	// Client scope
	ClientCookie    string `env:"CLIENT_COOKIE" envDefault:"namax_client"`
	CookieSecure    bool   `env:"COOKIE_SECURE" envDefault:"false"`
	DefaultLanguage string `env:"DEFAULT_LANGUAGE" envDefault:"en"`

	// Redis
	RedisAddr             string        `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisUser             string        `env:"REDIS_USERNAME"`
	RedisPassword         string        `env:"REDIS_PASSWORD"`
	RedisPasswordRequired bool          `env:"REDIS_PASSWORD_REQUIRED" envDefault:"false"`
	RedisDB               int           `env:"REDIS_DB" envDefault:"0"`
	RedisDT               time.Duration `env:"REDIS_DIAL_TIMEOUT" envDefault:"5s"`
	RedisRT               time.Duration `env:"REDIS_READ_TIMEOUT" envDefault:"3s"`
	RedisWT               time.Duration `env:"REDIS_WRITE_TIMEOUT" envDefault:"3s"`
	RedisMaxWait          time.Duration `env:"REDIS_MAX_WAIT" envDefault:"10s"`
	RedisPingTimeout      time.Duration `env:"REDIS_PING_TIMEOUT" envDefault:"5s"`
	RedisPoolSize         int           `env:"REDIS_POOL_SIZE" envDefault:"10"`
	RedisConnectTimeout   time.Duration `env:"REDIS_CONNECT_TIMEOUT" envDefault:"30s"`
	RedisRetryInterval    time.Duration `env:"REDIS_RETRY_INTERVAL" envDefault:"2s"`
	RedisWarnThreshold    int           `env:"REDIS_WARN_THRESHOLD" envDefault:"3"`

	// Access restrictions
	AllowedHosts []string `env:"ALLOWED_HOSTS" envSeparator:","` // optional, restrict access to specific Host headers
	AllowedCIDRS []string `env:"ALLOWED_CIDRS" envSeparator:","` // optional, restrict /readyz and /infra
	TrustProxy   bool     `env:"TRUST_PROXY" envDefault:"true"`  // true => trust X-Forwarded-For headers

	// Rate limiting of /api, per client IP
	RateLimit float64 `env:"RATE_LIMIT" envDefault:"10"` // requests per second
	RateBurst int     `env:"RATE_BURST" envDefault:"20"`
}

// Load reads .env (when present) and the NAMAX_ environment into a Config
func Load() (*Config, error) {
	// a missing .env file is fine
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	cfg.AllowedHosts = splitAndTrim(cfg.AllowedHosts)
	cfg.AllowedCIDRS = splitAndTrim(cfg.AllowedCIDRS)
	cfg.Store = strings.ToLower(strings.TrimSpace(cfg.Store))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// Log config only in debug mode with redacted sensitive fields
	if cfg.LogLevel == "debug" {
		log.Printf("[DEBUG] cfg: %+v\n", cfg.Redacted())
	}

	return cfg, nil
}

// Validate checks value ranges and cross-field rules
func (c *Config) Validate() error {
	var errs []error

	if !slices.Contains([]string{StoreMemory, StoreSQLite, StoreRedis}, c.Store) {
		errs = append(errs, fmt.Errorf("%sSTORE must be memory, sqlite or redis, got %q", EnvPrefix, c.Store))
	}
	if c.Store == StoreSQLite && c.SQLitePath == "" {
		errs = append(errs, fmt.Errorf("%sSQLITE_PATH is required with the sqlite store", EnvPrefix))
	}
	if c.Store == StoreRedis {
		if c.RedisAddr == "" {
			errs = append(errs, fmt.Errorf("%sREDIS_ADDR is required with the redis store", EnvPrefix))
		}
		if c.RedisPasswordRequired && c.RedisPassword == "" {
			errs = append(errs, fmt.Errorf("%sREDIS_PASSWORD is required when %sREDIS_PASSWORD_REQUIRED=true", EnvPrefix, EnvPrefix))
		}
	}
	if c.DebounceDelay <= 0 {
		errs = append(errs, fmt.Errorf("%sDEBOUNCE_DELAY must be > 0", EnvPrefix))
	}
	if c.SessionSweepInterval <= 0 {
		errs = append(errs, fmt.Errorf("%sSESSION_SWEEP_INTERVAL must be > 0", EnvPrefix))
	}
	if c.RateLimit <= 0 || c.RateBurst <= 0 {
		errs = append(errs, fmt.Errorf("%sRATE_LIMIT and %sRATE_BURST must be > 0", EnvPrefix, EnvPrefix))
	}
	if c.ClientCookie == "" {
		errs = append(errs, fmt.Errorf("%sCLIENT_COOKIE must not be empty", EnvPrefix))
	}
	if _, err := language.Parse(c.DefaultLanguage); err != nil {
		errs = append(errs, fmt.Errorf("%sDEFAULT_LANGUAGE: %w", EnvPrefix, err))
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}
	return nil
}

// Redacted returns a copy safe to print
func (c *Config) Redacted() Config {
	cp := *c
	if cp.RedisPassword != "" {
		cp.RedisPassword = "***REDACTED***"
	}
	if cp.RedisUser != "" {
		cp.RedisUser = "***REDACTED***"
	}
	return cp
}

func splitAndTrim(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	parts := make([]string, 0, len(values))
	for _, v := range values {
		trimmed := strings.TrimSpace(v)
		// Remove surrounding quotes if present
		trimmed = strings.Trim(trimmed, `"'`)
		if trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}
