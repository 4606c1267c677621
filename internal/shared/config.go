package shared

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

//go:embed config.example.toml
var exampleConf []byte

const (
	// EnvAPIURL overrides [APIConfig.BaseURL].
	EnvAPIURL = "HUDDLE_API_URL"
	// EnvAssetURL overrides [APIConfig.AssetBaseURL].
	EnvAssetURL = "HUDDLE_ASSET_URL"
)

// Autoplay policies accepted by [FeedConfig.Autoplay].
const (
	AutoplayResume = "resume"
	AutoplayPaused = "paused"
)

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	API      APIConfig      `toml:"api"`
	Database DatabaseConfig `toml:"database"`
	Feed     FeedConfig     `toml:"feed"`
	Player   PlayerConfig   `toml:"player"`
	Session  SessionConfig  `toml:"session"`
}

// APIConfig contains backend connection settings.
type APIConfig struct {
	BaseURL           string  `toml:"base_url"`
	AssetBaseURL      string  `toml:"asset_base_url"`
	TimeoutSeconds    int     `toml:"timeout_seconds"`
	RequestsPerSecond float64 `toml:"requests_per_second"`
	Burst             int     `toml:"burst"`
}

// Timeout returns the request timeout as a [time.Duration].
func (c APIConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// DatabaseConfig contains database connection settings.
type DatabaseConfig struct {
	Path         string `toml:"path"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
}

// FeedConfig tunes gesture and scroll handling in the feed.
type FeedConfig struct {
	GestureThreshold float64 `toml:"gesture_threshold"`
	ScrollEpsilon    float64 `toml:"scroll_epsilon"`
	DebounceMS       int     `toml:"debounce_ms"`
	Autoplay         string  `toml:"autoplay"`
	CellHeightPX     int     `toml:"cell_height_px"`
}

// Debounce returns the scroll observation quiet period.
func (c FeedConfig) Debounce() time.Duration {
	return time.Duration(c.DebounceMS) * time.Millisecond
}

// PlayerConfig selects and configures the media player backend.
type PlayerConfig struct {
	Backend    string `toml:"backend"`
	SocketPath string `toml:"socket_path"`
	Mute       bool   `toml:"mute"`
}

// SessionConfig controls how long a login stays valid locally.
type SessionConfig struct {
	TTLSeconds int `toml:"ttl_seconds"`
}

// TTL returns the session lifetime.
func (c SessionConfig) TTL() time.Duration {
	return time.Duration(c.TTLSeconds) * time.Second
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
//
// Keys missing from the file keep their default values.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrMissingConfig, path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// Validate rejects values the feed cannot work with.
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("%w: api.base_url is required", ErrInvalidConfig)
	}
	if c.Feed.GestureThreshold <= 0 {
		return fmt.Errorf("%w: feed.gesture_threshold must be positive", ErrInvalidConfig)
	}
	if c.Feed.CellHeightPX <= 0 {
		return fmt.Errorf("%w: feed.cell_height_px must be positive", ErrInvalidConfig)
	}
	switch c.Feed.Autoplay {
	case AutoplayResume, AutoplayPaused:
	default:
		return fmt.Errorf("%w: feed.autoplay must be %q or %q", ErrInvalidConfig, AutoplayResume, AutoplayPaused)
	}
	return nil
}

// ApplyEnv loads the given dotenv files (missing files are skipped) and lets the environment override the API URLs.
func (c *Config) ApplyEnv(files ...string) error {
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to load %s: %w", f, err)
		}
	}

	if v := os.Getenv(EnvAPIURL); v != "" {
		c.API.BaseURL = v
	}
	if v := os.Getenv(EnvAssetURL); v != "" {
		c.API.AssetBaseURL = v
	}
	return nil
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
