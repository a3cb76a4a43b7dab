package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// Config holds user preferences loaded from the config file.
// All fields are optional; zero values fall back to built-in defaults.
type Config struct {
	Defaults DefaultsConfig `toml:"defaults"`
	Cache    CacheConfig    `toml:"cache"`
	Serve    ServeConfig    `toml:"serve"`
}

// DefaultsConfig sets default coloring options.
type DefaultsConfig struct {
	// Algorithm is the default coloring algorithm ("zones" or "greedy").
	Algorithm string `toml:"algorithm"`

	// Seed is the default zone seed cell.
	Seed int `toml:"seed"`
}

// CacheConfig configures the artifact cache backend.
type CacheConfig struct {
	// Dir overrides the XDG cache directory for the file backend.
	Dir string `toml:"dir"`

	// TTL is how long cached entries live, e.g. "168h". Empty means the
	// built-in default.
	TTL duration `toml:"ttl"`

	// RedisAddr switches the cache to Redis, e.g. "localhost:6379".
	RedisAddr     string `toml:"redis_addr"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db"`
}

// ServeConfig configures the serve command.
type ServeConfig struct {
	// Addr is the listen address, e.g. "localhost:8400".
	Addr string `toml:"addr"`
}

// duration wraps time.Duration so TOML values like "30m" parse directly.
type duration time.Duration

func (d *duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = duration(v)
	return nil
}

// CacheTTL returns the configured cache TTL as a time.Duration.
func (c CacheConfig) CacheTTL() time.Duration {
	return time.Duration(c.TTL)
}

// configPath returns the user config file path (~/.config/meshcolor/config.toml),
// honoring XDG_CONFIG_HOME.
func configPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// LoadConfig reads and parses the config file at path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &cfg, nil
}

// LoadConfigOrDefault loads the user config file, returning an empty config
// when the file does not exist or cannot be read. Parse errors are also
// swallowed here; the CLI must start even with a broken config, and the
// zero config keeps all built-in defaults.
func LoadConfigOrDefault() *Config {
	path, err := configPath()
	if err != nil {
		return &Config{}
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		return &Config{}
	}
	return cfg
}
