package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Defaults DefaultsConfig `yaml:"defaults"`
	API      APIConfig      `yaml:"api"`
	Cache    CacheConfig    `yaml:"cache"`
	Log      LogConfig      `yaml:"log"`
	Server   ServerConfig   `yaml:"server"`
}

// DefaultsConfig holds default query values
type DefaultsConfig struct {
	Since    string `yaml:"since"`
	Top      int    `yaml:"top"`
	Identity string `yaml:"identity"`
	Format   string `yaml:"format"`
}

// APIConfig tunes the favorites API client and pagination
type APIConfig struct {
	BaseURL           string `yaml:"base_url"`
	PageSize          int    `yaml:"page_size"`
	NearFullThreshold int    `yaml:"near_full_threshold"`
	MaxPages          int    `yaml:"max_pages"`
	Timeout           string `yaml:"timeout"`
}

// CacheConfig selects and tunes the result cache
type CacheConfig struct {
	Backend       string `yaml:"backend"` // file, memory, redis
	TTL           string `yaml:"ttl"`
	MaxEntries    int    `yaml:"max_entries"`
	RedisAddr     string `yaml:"redis_addr"`
	RedisPassword string `yaml:"redis_password"`
	RedisDB       int    `yaml:"redis_db"`
}

// LogConfig holds logger settings
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // text, json
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// DefaultConfig returns configuration with default values
func DefaultConfig() *Config {
	return &Config{
		Defaults: DefaultsConfig{
			Since:    "2022-01-01",
			Top:      5,
			Identity: "handle",
			Format:   "text",
		},
		API: APIConfig{
			BaseURL:           "https://api.twitter.com",
			PageSize:          200,
			NearFullThreshold: 190,
			MaxPages:          0,
			Timeout:           "30s",
		},
		Cache: CacheConfig{
			Backend:    "file",
			TTL:        "12h",
			MaxEntries: 1024,
			RedisAddr:  "localhost:6379",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Server: ServerConfig{
			Addr: ":8080",
		},
	}
}

// AppDir returns the application directory (~/.likewrapped)
func AppDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".likewrapped"
	}
	return filepath.Join(home, ".likewrapped")
}

// CacheDir returns the cache directory
func CacheDir() string {
	return filepath.Join(AppDir(), "cache")
}

// ConfigPath returns the config file path
func ConfigPath() string {
	return filepath.Join(AppDir(), "config.yaml")
}

// EnvPath returns the credentials file path
func EnvPath() string {
	return filepath.Join(AppDir(), ".env")
}

// EnsureDirs creates all required directories
func EnsureDirs() error {
	dirs := []string{AppDir(), CacheDir()}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// Load reads config from file, returns default if not exists
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return cfg, nil
}

// LoadDefault loads config from default path
func LoadDefault() (*Config, error) {
	return Load(ConfigPath())
}

// Save writes config to file
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// GetCacheTTL returns the cache TTL as a duration
func (c *Config) GetCacheTTL() (time.Duration, error) {
	return ParseDuration(c.Cache.TTL)
}

// GetAPITimeout returns the per-request timeout
func (c *Config) GetAPITimeout() (time.Duration, error) {
	return ParseDuration(c.API.Timeout)
}

var durationPattern = regexp.MustCompile(`^(\d+)(s|m|h|d)$`)

// ParseDuration parses duration strings like "30s", "12h", "7d"
func ParseDuration(s string) (time.Duration, error) {
	matches := durationPattern.FindStringSubmatch(s)
	if len(matches) != 3 {
		return 0, fmt.Errorf("invalid duration format: %s (use format like 12h, 7d)", s)
	}

	value, _ := strconv.Atoi(matches[1])
	unit := matches[2]

	switch unit {
	case "s":
		return time.Duration(value) * time.Second, nil
	case "m":
		return time.Duration(value) * time.Minute, nil
	case "h":
		return time.Duration(value) * time.Hour, nil
	case "d":
		return time.Duration(value) * 24 * time.Hour, nil
	default:
		return 0, fmt.Errorf("unknown duration unit: %s", unit)
	}
}
