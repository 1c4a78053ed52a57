package config

import (
	"fmt"
	"time"
)

const (
	StoreSQLite = "sqlite"
	StoreRedis  = "redis"
)

// Config holds runtime settings for the HR console.
//
// Fields:
//   - APIBaseURL: base URL of the HR API, including the version prefix.
//   - StoreKind: where the session lives, "sqlite" (local file) or "redis".
//   - DatabasePath: SQLite profile file; one file is one profile.
//   - RedisAddr, RedisPrefix: Redis server and key prefix; one prefix is one profile.
//   - RequestTimeout: bound for one API call including refresh and retry; 0 disables it.
//   - LogoutTimeout: bound for the best-effort server logout.
//   - CoalesceRefresh: share one refresh call among concurrent 401s.
type Config struct {
	APIBaseURL      string
	StoreKind       string
	DatabasePath    string
	RedisAddr       string
	RedisPrefix     string
	LogLevel        string
	RequestTimeout  time.Duration
	LogoutTimeout   time.Duration
	CoalesceRefresh bool
	DownloadDir     string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:8080/api/v1"
	c.StoreKind = StoreSQLite
	c.DatabasePath = "data/hrconsole.db"
	c.RedisAddr = "localhost:6379"
	c.RedisPrefix = "hrconsole"
	c.LogLevel = "warn"
	c.RequestTimeout = 0
	c.LogoutTimeout = 5 * time.Second
	c.CoalesceRefresh = false
	c.DownloadDir = "downloads"
}

func (c *Config) Validate() error {
	switch c.StoreKind {
	case StoreSQLite, StoreRedis:
	default:
		return fmt.Errorf("unknown store kind %q (want %s or %s)", c.StoreKind, StoreSQLite, StoreRedis)
	}
	if c.APIBaseURL == "" {
		return fmt.Errorf("API base URL is required")
	}
	if c.RequestTimeout < 0 || c.LogoutTimeout < 0 {
		return fmt.Errorf("timeouts must not be negative")
	}
	return nil
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
