package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"taginput/internal/domain"
	"taginput/internal/eventbus"
	"taginput/internal/validator"
)

// Lookup source kinds
const (
	SourceStatic = "static"
	SourceSQLite = "sqlite"
)

// Filter policies
const (
	FilterLookup    = "lookup"
	FilterSubstring = "substring"
)

var (
	ErrUnknownSource = errors.New("unknown lookup source")
	ErrUnknownFilter = errors.New("unknown filter policy")
)

// Config represents the application configuration
type Config struct {
	Version            int             `toml:"version"`
	Placeholder        string          `toml:"placeholder"`
	LoadingPlaceholder string          `toml:"loading_placeholder"`
	NoResults          string          `toml:"no_results"`
	DebounceMs         int             `toml:"debounce_ms"`
	Validator          string          `toml:"validator"`
	Filter             string          `toml:"filter"`
	BackspaceRemoves   bool            `toml:"backspace_removes"`
	Initial            []domain.Option `toml:"initial"`
	Lookup             LookupSettings  `toml:"lookup"`
}

// LookupSettings configures the options lookup collaborator
type LookupSettings struct {
	Source     string `toml:"source"`   // static or sqlite
	Catalog    string `toml:"catalog"`  // catalog file for the static source or import
	Database   string `toml:"database"` // sqlite database path
	LatencyMs  int    `toml:"latency_ms"`
	CacheSize  int    `toml:"cache_size"`
	CacheTTLMs int    `toml:"cache_ttl_ms"`
	Limit      int    `toml:"limit"`
	Watch      bool   `toml:"watch"` // reload the catalog file when it changes
}

// Debounce returns the debounce wait as a duration
func (c *Config) Debounce() time.Duration {
	return time.Duration(c.DebounceMs) * time.Millisecond
}

// CacheTTL returns the lookup cache TTL as a duration
func (l LookupSettings) CacheTTL() time.Duration {
	return time.Duration(l.CacheTTLMs) * time.Millisecond
}

// Latency returns the artificial lookup latency as a duration
func (l LookupSettings) Latency() time.Duration {
	return time.Duration(l.LatencyMs) * time.Millisecond
}

// Validate checks enumerated fields and numeric ranges
func (c *Config) Validate() error {
	if _, err := validator.ByName(c.Validator); err != nil {
		return err
	}
	switch c.Filter {
	case "", FilterLookup, FilterSubstring:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFilter, c.Filter)
	}
	switch c.Lookup.Source {
	case "", SourceStatic, SourceSQLite:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownSource, c.Lookup.Source)
	}
	if c.DebounceMs < 0 {
		return fmt.Errorf("debounce_ms must not be negative, got %d", c.DebounceMs)
	}
	if c.Lookup.CacheSize < 0 || c.Lookup.LatencyMs < 0 || c.Lookup.CacheTTLMs < 0 {
		return errors.New("lookup durations and sizes must not be negative")
	}
	return nil
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
	Path() string
}

// configService is the concrete implementation
type configService struct {
	bus      eventbus.EventBus
	filePath string
}

// DefaultPath returns the per-user config file location
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}
	return filepath.Join(configDir, "taginput", "config.toml")
}

// NewConfigService creates a config service for path, or DefaultPath when empty
func NewConfigService(path string) ConfigService {
	if strings.TrimSpace(path) == "" {
		path = DefaultPath()
	}
	return &configService{filePath: path}
}

// NewConfigServiceWithBus creates a config service with event bus support
func NewConfigServiceWithBus(path string, bus eventbus.EventBus) ConfigService {
	cs := NewConfigService(path).(*configService)
	cs.bus = bus
	return cs
}

func (cs *configService) Path() string {
	return cs.filePath
}

// Load loads the configuration file, falling back to defaults when it does not exist
func (cs *configService) Load() (*Config, error) {
	var cfg *Config
	if _, err := os.Stat(cs.filePath); os.IsNotExist(err) {
		cfg = DefaultConfig()
	} else {
		cfg, err = cs.LoadFromPath(cs.filePath)
		if err != nil {
			return nil, err
		}
	}

	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigLoadedEvent{Path: cs.filePath})
	}
	return cfg, nil
}

// Save saves the configuration to the service's file
func (cs *configService) Save(config *Config) error {
	if err := cs.SaveToPath(config, cs.filePath); err != nil {
		return err
	}
	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigSavedEvent{Path: cs.filePath})
	}
	return nil
}

// LoadFromPath loads configuration from a specific path.
// Keys missing from the file keep their default values.
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	// Relative catalog and database paths are relative to the config file
	base := filepath.Dir(path)
	cfg.Lookup.Catalog = resolve(base, cfg.Lookup.Catalog)
	cfg.Lookup.Database = resolve(base, cfg.Lookup.Database)

	return cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

func resolve(base, p string) string {
	if p == "" || p == ":memory:" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(base, p)
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version:            1,
		Placeholder:        "Enter recipients",
		LoadingPlaceholder: "Searching...",
		NoResults:          "No email was found with this term",
		DebounceMs:         600,
		Validator:          "email",
		Filter:             FilterLookup,
		BackspaceRemoves:   true,
		Lookup: LookupSettings{
			Source:     SourceStatic,
			LatencyMs:  0,
			CacheSize:  128,
			CacheTTLMs: int((5 * time.Minute).Milliseconds()),
			Limit:      20,
		},
	}
}
