// Package config loads runtime settings from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/samdwyer/labyrinth/internal/world"
)

// Config holds settings shared by the server and the viewer.
type Config struct {
	// Addr is the listen address of the chunk server.
	Addr string
	// WorldExtent is the largest |x| or |y| chunk coordinate. Chunks on
	// the extent get boundary walls instead of doorways.
	WorldExtent int

	Log LogConfig

	// ServerURL is the base URL the viewer fetches chunks from.
	ServerURL string
	// Seed is the world seed the viewer requests.
	Seed string
	// CacheDistance is the Chebyshev distance beyond which the viewer evicts chunks.
	CacheDistance int
	// FetchTimeout bounds a single chunk request, retries included.
	FetchTimeout time.Duration

	Honeycomb HoneycombConfig
}

// LogConfig controls logger construction.
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // console or json
	File   string // optional output path, used by the viewer
}

// HoneycombConfig holds the telemetry credentials.
type HoneycombConfig struct {
	APIKey  string
	Dataset string
}

// ErrInvalid is returned when a variable is present but malformed.
var ErrInvalid = errors.New("invalid configuration")

// LoadDotEnv loads .env into the process environment for local development.
// Variables already set take precedence. A missing file is reported but
// callers usually treat it as informational.
func LoadDotEnv(filenames ...string) error {
	return godotenv.Load(filenames...)
}

// Load reads the configuration from LABYRINTH_* environment variables,
// applying defaults for anything unset.
func Load() (*Config, error) {
	cfg := &Config{
		Addr:          getString("LABYRINTH_ADDR", ":4000"),
		WorldExtent:   world.DefaultExtent,
		ServerURL:     getString("LABYRINTH_SERVER_URL", "http://localhost:4000"),
		Seed:          getString("LABYRINTH_SEED", "semilla"),
		CacheDistance: 2,
		FetchTimeout:  3 * time.Second,
		Log: LogConfig{
			Level:  getString("LABYRINTH_LOG_LEVEL", "info"),
			Format: getString("LABYRINTH_LOG_FORMAT", "console"),
			File:   os.Getenv("LABYRINTH_LOG_FILE"),
		},
		Honeycomb: HoneycombConfig{
			APIKey:  os.Getenv("HONEYCOMB_LABYRINTH_API_KEY"),
			Dataset: getString("HONEYCOMB_LABYRINTH_DATASET", "labyrinth"),
		},
	}

	var err error
	if cfg.WorldExtent, err = getInt("LABYRINTH_WORLD_EXTENT", cfg.WorldExtent); err != nil {
		return nil, err
	}
	if cfg.CacheDistance, err = getInt("LABYRINTH_CACHE_DISTANCE", cfg.CacheDistance); err != nil {
		return nil, err
	}
	if cfg.FetchTimeout, err = getDuration("LABYRINTH_FETCH_TIMEOUT", cfg.FetchTimeout); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.WorldExtent < 0 {
		return fmt.Errorf("%w: LABYRINTH_WORLD_EXTENT must not be negative, got %d", ErrInvalid, c.WorldExtent)
	}
	if c.CacheDistance < 1 {
		return fmt.Errorf("%w: LABYRINTH_CACHE_DISTANCE must be at least 1, got %d", ErrInvalid, c.CacheDistance)
	}
	if c.FetchTimeout <= 0 {
		return fmt.Errorf("%w: LABYRINTH_FETCH_TIMEOUT must be positive, got %s", ErrInvalid, c.FetchTimeout)
	}
	switch c.Log.Format {
	case "console", "json":
	default:
		return fmt.Errorf("%w: LABYRINTH_LOG_FORMAT must be console or json, got %q", ErrInvalid, c.Log.Format)
	}
	return nil
}

func getString(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) (int, error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q is not an integer", ErrInvalid, key, v)
	}
	return n, nil
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q is not a duration", ErrInvalid, key, v)
	}
	return d, nil
}
