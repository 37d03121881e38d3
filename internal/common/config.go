package common

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Config represents the application configuration
type Config struct {
	Environment string           `toml:"environment"` // "development" or "production"
	Server      ServerConfig     `toml:"server"`
	Storage     StorageConfig    `toml:"storage"`
	Ingest      IngestConfig     `toml:"ingest"`
	Search      SearchConfig     `toml:"search"`
	QuietHours  QuietHoursConfig `toml:"quiet_hours"`
	Payments    PaymentsConfig   `toml:"payments"`
	Processing  ProcessingConfig `toml:"processing"`
	Tenants     TenantsConfig    `toml:"tenants"`
	Logging     LoggingConfig    `toml:"logging"`
}

type ServerConfig struct {
	Port      int     `toml:"port"`
	Host      string  `toml:"host"`
	RateLimit float64 `toml:"rate_limit"` // Requests per second allowed through the API (0 = unlimited)
	RateBurst int     `toml:"rate_burst"` // Token bucket burst size
}

type StorageConfig struct {
	Badger BadgerConfig `toml:"badger"`
}

// BadgerConfig represents BadgerDB-specific configuration
type BadgerConfig struct {
	Path           string `toml:"path"`             // Database directory path
	ResetOnStartup bool   `toml:"reset_on_startup"` // Delete database on startup for clean test runs
}

// IngestConfig controls website-to-knowledge-base ingestion
type IngestConfig struct {
	FixturePath   string `toml:"fixture_path"`    // Fallback HTML source when a request carries no body
	MaxChunkChars int    `toml:"max_chunk_chars"` // Upper bound for packed chunk length
}

// SearchConfig controls knowledge retrieval behavior
type SearchConfig struct {
	TopK          int `toml:"top_k"`           // Default number of ranked chunks returned
	SnippetMaxLen int `toml:"snippet_max_len"` // Maximum FAQ reply snippet length
}

// QuietHoursConfig defines the time window during which inbound handling is suspended.
// Constructed once at startup and passed by reference into the gate; never read
// from the environment inside deep logic.
type QuietHoursConfig struct {
	Enabled  bool   `toml:"enabled"`
	Start    string `toml:"start"`    // "HH:MM"
	End      string `toml:"end"`      // "HH:MM"
	Timezone string `toml:"timezone"` // IANA zone name, e.g. "Asia/Dubai"
}

// PaymentsConfig controls invoice creation for the payment intent
type PaymentsConfig struct {
	Amount   float64 `toml:"amount"`   // Demo invoice amount
	Currency string  `toml:"currency"` // ISO currency code
	BaseURL  string  `toml:"base_url"` // Pay link base, e.g. "http://localhost:8080"
}

// ProcessingConfig controls scheduled re-ingestion
type ProcessingConfig struct {
	Enabled  bool   `toml:"enabled"`
	Schedule string `toml:"schedule"` // Cron schedule format
}

// TenantsConfig controls tenant onboarding behavior
type TenantsConfig struct {
	AutoIngest bool `toml:"auto_ingest"` // Kick off ingestion in the background after tenant creation
}

type LoggingConfig struct {
	Level  string   `toml:"level"`  // "debug", "info", "warn", "error"
	Format string   `toml:"format"` // "json" or "text"
	Output []string `toml:"output"` // "stdout", "file"
}

// NewDefaultConfig creates a configuration with default values.
// Technical parameters are hardcoded here for production stability.
// Only user-facing settings should be exposed in concierge.toml.
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Server: ServerConfig{
			Port:      8080,
			Host:      "localhost",
			RateLimit: 50,
			RateBurst: 100,
		},
		Storage: StorageConfig{
			Badger: BadgerConfig{
				Path: "./data",
			},
		},
		Ingest: IngestConfig{
			FixturePath:   "./fixtures/website.html",
			MaxChunkChars: 700,
		},
		Search: SearchConfig{
			TopK:          3,
			SnippetMaxLen: 200,
		},
		QuietHours: QuietHoursConfig{
			Enabled:  false,
			Start:    "20:00",
			End:      "08:00",
			Timezone: "Asia/Dubai",
		},
		Payments: PaymentsConfig{
			Amount:   100,
			Currency: "AED",
			BaseURL:  "http://localhost:8080",
		},
		Processing: ProcessingConfig{
			Enabled:  false,           // Disabled by default - user must explicitly opt-in
			Schedule: "0 0 */6 * * *", // Every 6 hours (cron format with seconds)
		},
		Tenants: TenantsConfig{
			AutoIngest: true,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
			Output: []string{"stdout", "file"},
		},
	}
}

var hhmmPattern = regexp.MustCompile(`^\d{1,2}:\d{2}$`)

// normalize repairs malformed user-facing settings with safe defaults rather
// than aborting startup. Quiet-hours misconfiguration in particular must never
// take the inbound pipeline down.
func (c *Config) normalize() {
	if !hhmmPattern.MatchString(strings.TrimSpace(c.QuietHours.Start)) {
		c.QuietHours.Start = "20:00"
	}
	if !hhmmPattern.MatchString(strings.TrimSpace(c.QuietHours.End)) {
		c.QuietHours.End = "08:00"
	}
	if strings.TrimSpace(c.QuietHours.Timezone) == "" {
		c.QuietHours.Timezone = "UTC"
	}
	if c.Ingest.MaxChunkChars <= 0 {
		c.Ingest.MaxChunkChars = 700
	}
	if c.Search.TopK <= 0 {
		c.Search.TopK = 3
	}
	if c.Search.SnippetMaxLen <= 0 {
		c.Search.SnippetMaxLen = 200
	}
	if c.Payments.Currency == "" {
		c.Payments.Currency = "AED"
	}
}

// LoadFromFile loads configuration with priority: default -> file -> env -> CLI
func LoadFromFile(path string) (*Config, error) {
	if path == "" {
		return LoadFromFiles()
	}
	return LoadFromFiles(path)
}

// LoadFromFiles loads configuration from multiple files.
// Later files override earlier files; environment variables override all files.
func LoadFromFiles(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for i, path := range paths {
		if path == "" {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s (file %d of %d): %w", path, i+1, len(paths), err)
		}
	}

	applyEnvOverrides(config)
	config.normalize()

	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("CONCIERGE_ENV"); env != "" {
		config.Environment = env
	} else if env := os.Getenv("GO_ENV"); env != "" {
		config.Environment = env
	}

	if port := os.Getenv("CONCIERGE_SERVER_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}
	if host := os.Getenv("CONCIERGE_SERVER_HOST"); host != "" {
		config.Server.Host = host
	}

	if badgerPath := os.Getenv("CONCIERGE_BADGER_PATH"); badgerPath != "" {
		config.Storage.Badger.Path = badgerPath
	}

	if fixture := os.Getenv("CONCIERGE_INGEST_FIXTURE"); fixture != "" {
		config.Ingest.FixturePath = fixture
	}

	if enabled := os.Getenv("CONCIERGE_QUIET_HOURS_ENABLED"); enabled != "" {
		config.QuietHours.Enabled = strings.EqualFold(enabled, "true")
	}
	if start := os.Getenv("CONCIERGE_QUIET_HOURS_START"); start != "" {
		config.QuietHours.Start = start
	}
	if end := os.Getenv("CONCIERGE_QUIET_HOURS_END"); end != "" {
		config.QuietHours.End = end
	}
	if tz := os.Getenv("CONCIERGE_QUIET_HOURS_TZ"); tz != "" {
		config.QuietHours.Timezone = tz
	}

	if base := os.Getenv("CONCIERGE_PAY_BASE_URL"); base != "" {
		config.Payments.BaseURL = base
	}

	if level := os.Getenv("CONCIERGE_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
	if output := os.Getenv("CONCIERGE_LOG_OUTPUT"); output != "" {
		parts := strings.Split(output, ",")
		outputs := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				outputs = append(outputs, trimmed)
			}
		}
		if len(outputs) > 0 {
			config.Logging.Output = outputs
		}
	}
}

// ApplyFlagOverrides applies command-line flag overrides (highest priority)
func ApplyFlagOverrides(config *Config, port int, host string) {
	if port != 0 {
		config.Server.Port = port
	}
	if host != "" {
		config.Server.Host = host
	}
}
