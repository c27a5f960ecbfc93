package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"shelfwise/internal/domain"
	"shelfwise/internal/eventbus"
)

// FileName is the name of the config file inside the config directory
const FileName = "config.toml"

// Config represents the application configuration
type Config struct {
	Version int            `toml:"version"`
	API     APISettings    `toml:"api"`
	Search  SearchSettings `toml:"search"`
	Log     LogSettings    `toml:"log"`
	UI      UISettings     `toml:"ui"`
}

// APISettings describes how to reach the library API
type APISettings struct {
	BaseURL  string   `toml:"base_url"`
	Timeout  Duration `toml:"timeout"`
	PageSize int      `toml:"page_size"`
	// BreakerCooldown is how long requests are refused once the API keeps failing
	BreakerCooldown Duration `toml:"breaker_cooldown"`
}

// SearchSettings tunes the incremental search
type SearchSettings struct {
	Debounce     Duration `toml:"debounce"`
	InitialQuery string   `toml:"initial_query"`
	WindowSize   int      `toml:"window_size"`
	Resource     string   `toml:"resource"`
	ClearOnEmpty bool     `toml:"clear_on_empty"`
}

// LogSettings controls the log file
type LogSettings struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// UISettings represents UI-related configuration
type UISettings struct {
	PreferencesFile string `toml:"preferences_file"`
}

// Duration is a time.Duration written as text, e.g. "500ms"
type Duration struct {
	time.Duration
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
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

// DefaultDir returns the directory holding shelfwise's config and preferences
func DefaultDir() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		// Fallback to home directory
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}
	return filepath.Join(configDir, "shelfwise")
}

// NewConfigService creates a config service for the default config file
func NewConfigService() ConfigService {
	return &configService{filePath: filepath.Join(DefaultDir(), FileName)}
}

// NewConfigServiceForPath creates a config service bound to path
func NewConfigServiceForPath(path string) ConfigService {
	return &configService{filePath: path}
}

// WithBus attaches an event bus to a config service
func WithBus(svc ConfigService, bus eventbus.EventBus) ConfigService {
	if cs, ok := svc.(*configService); ok {
		cs.bus = bus
	}
	return svc
}

// Path returns the file the service loads from and saves to
func (cs *configService) Path() string {
	return cs.filePath
}

// Load loads the configuration from file, falling back to defaults when the
// file does not exist yet
func (cs *configService) Load() (*Config, error) {
	cfg, err := cs.LoadFromPath(cs.filePath)
	if errors.Is(err, os.ErrNotExist) {
		cfg = DefaultConfig()
	} else if err != nil {
		return nil, err
	}

	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigLoadedEvent{Path: cs.filePath, BaseURL: cfg.API.BaseURL})
	}
	return cfg, nil
}

// Save saves the configuration to file
func (cs *configService) Save(config *Config) error {
	if err := cs.SaveToPath(config, cs.filePath); err != nil {
		return err
	}
	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigSavedEvent{Path: cs.filePath})
	}
	return nil
}

// LoadFromPath loads configuration from a specific path. Missing keys keep
// their default values.
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("config file not found: %s: %w", path, err)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
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

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		API: APISettings{
			BaseURL:  "http://localhost:8080",
			Timeout:  Duration{15 * time.Second},
			PageSize: 10,

			BreakerCooldown: Duration{10 * time.Second},
		},
		Search: SearchSettings{
			Debounce:   Duration{500 * time.Millisecond},
			WindowSize: 2,
			Resource:   string(domain.ResourceBooks),
		},
		Log: LogSettings{
			Level: "info",
			File:  "shelfwise.log",
		},
		UI: UISettings{
			PreferencesFile: "preferences.toml",
		},
	}
}

// Validate checks values that cannot be sensibly defaulted
func (c *Config) Validate() error {
	var problems []string
	if strings.TrimSpace(c.API.BaseURL) == "" {
		problems = append(problems, "api.base_url is required")
	}
	if c.API.Timeout.Duration < 0 {
		problems = append(problems, "api.timeout must not be negative")
	}
	if c.API.BreakerCooldown.Duration < 0 {
		problems = append(problems, "api.breaker_cooldown must not be negative")
	}
	if c.API.PageSize < 0 {
		problems = append(problems, "api.page_size must not be negative")
	}
	if c.Search.Debounce.Duration < 0 {
		problems = append(problems, "search.debounce must not be negative")
	}
	if c.Search.WindowSize < 0 {
		problems = append(problems, "search.window_size must not be negative")
	}
	if c.Search.Resource != "" && !domain.Resource(c.Search.Resource).Valid() {
		problems = append(problems, fmt.Sprintf("search.resource %q is not one of books, users, transactions", c.Search.Resource))
	}
	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

// ResolvePath makes a relative path in the config relative to dir
func ResolvePath(dir, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(dir, path)
}
