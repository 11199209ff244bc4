package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Feed kinds
const (
	FeedDaemon = "daemon"
	FeedRedis  = "redis"
	FeedNone   = "none"
)

// Config represents the application configuration
type Config struct {
	DatabasePath   string          `yaml:"database_path"`
	SocketPath     string          `yaml:"socket_path"`
	Feed           string          `yaml:"feed"`
	Redis          RedisConfig     `yaml:"redis"`
	Reconcile      ReconcileConfig `yaml:"reconcile"`
	PersistTimeout time.Duration   `yaml:"persist_timeout"`
	Viewer         string          `yaml:"viewer"`
	LogLevel       string          `yaml:"log_level"`
	KeyMappings    KeyMappings     `yaml:"key_mappings"`
	Theme          Theme           `yaml:"theme"`
}

// RedisConfig locates the shared change feed
type RedisConfig struct {
	Addr          string `yaml:"addr"`
	Password      string `yaml:"password"`
	DB            int    `yaml:"db"`
	ChannelPrefix string `yaml:"channel_prefix"`
}

// ReconcileConfig tunes how change signals turn into refetches
type ReconcileConfig struct {
	Debounce         time.Duration `yaml:"debounce"`
	ResubscribeDelay time.Duration `yaml:"resubscribe_delay"`
}

// Default returns the configuration used when no file exists
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// Load loads config from the user's config directory.
// Returns default config if the file doesn't exist. LANES_* environment
// variables override file values.
func Load() (*Config, error) {
	configPath, err := getConfigPath()
	if err != nil {
		config := Default()
		config.applyEnv()
		return config, nil
	}
	return LoadFile(configPath)
}

// LoadFile loads config from an explicit path
func LoadFile(configPath string) (*Config, error) {
	var config Config

	data, err := os.ReadFile(configPath)
	switch {
	case os.IsNotExist(err):
	case err != nil:
		return nil, fmt.Errorf("read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", configPath, err)
		}
	}

	config.applyEnv()
	config.applyDefaults()

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// Validate rejects values the rest of the program cannot work with
func (c *Config) Validate() error {
	switch c.Feed {
	case FeedDaemon, FeedRedis, FeedNone:
	default:
		return fmt.Errorf("config: feed must be %q, %q or %q, got %q", FeedDaemon, FeedRedis, FeedNone, c.Feed)
	}
	if c.Feed == FeedRedis && c.Redis.Addr == "" {
		return fmt.Errorf("config: redis.addr is required when feed is redis")
	}
	if c.PersistTimeout < 0 || c.Reconcile.Debounce < 0 || c.Reconcile.ResubscribeDelay < 0 {
		return fmt.Errorf("config: durations must not be negative")
	}
	return nil
}

// Save saves the config to the user's config directory
func (c *Config) Save() error {
	configPath, err := getConfigPath()
	if err != nil {
		return err
	}
	return c.SaveFile(configPath)
}

// SaveFile writes the config to an explicit path
func (c *Config) SaveFile(configPath string) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0o644)
}

// getConfigPath returns the path to the config file
func getConfigPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, "lanes", "config.yaml"), nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(homeDir, ".config", "lanes", "config.yaml"), nil
}

// DataDir returns ~/.lanes, where the database, socket and logs live
func DataDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".lanes"
	}
	return filepath.Join(homeDir, ".lanes")
}

// applyDefaults fills in missing configuration with defaults
func (c *Config) applyDefaults() {
	if c.DatabasePath == "" {
		c.DatabasePath = filepath.Join(DataDir(), "lanes.db")
	}
	if c.SocketPath == "" {
		c.SocketPath = filepath.Join(DataDir(), "lanes.sock")
	}
	if c.Feed == "" {
		c.Feed = FeedDaemon
	}
	if c.Redis.ChannelPrefix == "" {
		c.Redis.ChannelPrefix = "lanes"
	}
	if c.Reconcile.Debounce == 0 {
		c.Reconcile.Debounce = 150 * time.Millisecond
	}
	if c.Reconcile.ResubscribeDelay == 0 {
		c.Reconcile.ResubscribeDelay = time.Second
	}
	if c.PersistTimeout == 0 {
		c.PersistTimeout = 10 * time.Second
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	c.KeyMappings.applyDefaults()
	c.Theme.applyDefaults()
}

// applyEnv overrides values from LANES_* environment variables
func (c *Config) applyEnv() {
	setString := func(key string, dst *string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	setDuration := func(key string, dst *time.Duration) {
		if v := os.Getenv(key); v != "" {
			if d, err := time.ParseDuration(v); err == nil {
				*dst = d
			}
		}
	}

	setString("LANES_DATABASE_PATH", &c.DatabasePath)
	setString("LANES_SOCKET_PATH", &c.SocketPath)
	setString("LANES_FEED", &c.Feed)
	setString("LANES_REDIS_ADDR", &c.Redis.Addr)
	setString("LANES_REDIS_PASSWORD", &c.Redis.Password)
	setString("LANES_VIEWER", &c.Viewer)
	setString("LANES_LOG_LEVEL", &c.LogLevel)
	setDuration("LANES_PERSIST_TIMEOUT", &c.PersistTimeout)
	setDuration("LANES_RECONCILE_DEBOUNCE", &c.Reconcile.Debounce)

	if v := os.Getenv("LANES_REDIS_DB"); v != "" {
		if db, err := strconv.Atoi(v); err == nil {
			c.Redis.DB = db
		}
	}
}
