package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"rhystmorgan/waLink/internal/storage"
	"rhystmorgan/waLink/internal/validation"
)

const configFileName = "config.yaml"

type Config struct {
	DataDir       string        `yaml:"data_dir"`
	Backend       string        `yaml:"backend"`
	SQLitePath    string        `yaml:"sqlite_path"`
	RedisAddr     string        `yaml:"redis_addr"`
	RedisPassword string        `yaml:"redis_password"`
	RedisDB       int           `yaml:"redis_db"`
	RedisPrefix   string        `yaml:"redis_prefix"`
	RedisTimeout  time.Duration `yaml:"redis_timeout"`
	Passphrase    string        `yaml:"passphrase"`
	CountryCode   string        `yaml:"country_code"`
	HistoryLimit  int           `yaml:"history_limit"`
	LogLevel      string        `yaml:"log_level"`
	Locale        string        `yaml:"locale"`
}

// Load builds the configuration from defaults, an optional YAML file and the
// environment, in that order of precedence (environment wins). A .env file in the
// working directory is loaded first when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	config, err := GetDefaultConfig()
	if err != nil {
		return nil, err
	}

	if dir := os.Getenv("WATERM_DATA_DIR"); dir != "" {
		config.DataDir = dir
	}

	path := getEnvOrDefault("WATERM_CONFIG", filepath.Join(config.DataDir, configFileName))
	if err := config.mergeFile(path); err != nil {
		return nil, err
	}

	config.applyEnv()

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func GetDefaultConfig() (*Config, error) {
	dataDir, err := storage.DefaultDataDir()
	if err != nil {
		return nil, err
	}

	return &Config{
		DataDir:      dataDir,
		Backend:      "file",
		RedisAddr:    "localhost:6379",
		RedisPrefix:  "waterm:",
		RedisTimeout: 3 * time.Second,
		CountryCode:  "91",
		LogLevel:     "info",
	}, nil
}

func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	c.Backend = getEnvOrDefault("WATERM_BACKEND", c.Backend)
	c.SQLitePath = getEnvOrDefault("WATERM_SQLITE_PATH", c.SQLitePath)
	c.RedisAddr = getEnvOrDefault("WATERM_REDIS_ADDR", c.RedisAddr)
	c.RedisPassword = getEnvOrDefault("WATERM_REDIS_PASSWORD", c.RedisPassword)
	c.RedisDB = parseIntOrDefault("WATERM_REDIS_DB", c.RedisDB)
	c.RedisPrefix = getEnvOrDefault("WATERM_REDIS_PREFIX", c.RedisPrefix)
	c.RedisTimeout = parseDurationOrDefault("WATERM_REDIS_TIMEOUT", c.RedisTimeout)
	c.Passphrase = getEnvOrDefault("WATERM_PASSPHRASE", c.Passphrase)
	c.CountryCode = getEnvOrDefault("WATERM_COUNTRY_CODE", c.CountryCode)
	c.HistoryLimit = parseIntOrDefault("WATERM_HISTORY_LIMIT", c.HistoryLimit)
	c.LogLevel = getEnvOrDefault("WATERM_LOG_LEVEL", c.LogLevel)
	c.Locale = getEnvOrDefault("WATERM_LOCALE", c.Locale)
}

func (c *Config) Validate() error {
	switch c.Backend {
	case "file", "sqlite", "redis", "memory":
		// Valid backends
	default:
		return fmt.Errorf("invalid backend: %s (must be 'file', 'sqlite', 'redis' or 'memory')", c.Backend)
	}

	if c.DataDir == "" {
		return fmt.Errorf("data directory must be set")
	}

	if c.Backend == "redis" && c.RedisAddr == "" {
		return fmt.Errorf("redis backend requires redis_addr")
	}

	if c.RedisTimeout <= 0 {
		return fmt.Errorf("redis timeout must be positive, got: %v", c.RedisTimeout)
	}

	if c.HistoryLimit < 0 {
		return fmt.Errorf("history limit must be non-negative, got: %d", c.HistoryLimit)
	}

	if c.CountryCode != validation.NormalizeDigits(c.CountryCode) {
		return fmt.Errorf("country code must be digits only, got: %q", c.CountryCode)
	}

	if c.CountryCode != "" {
		if _, ok := validation.CountryRegion(c.CountryCode); !ok {
			return fmt.Errorf("country code +%s is not assigned to any region", c.CountryCode)
		}
	}

	if c.Locale != "" {
		if _, err := language.Parse(c.Locale); err != nil {
			return fmt.Errorf("invalid locale %q: %w", c.Locale, err)
		}
	}

	return nil
}

// Language is the collation language for contact names. An unset locale gives
// the root collation.
func (c *Config) Language() language.Tag {
	tag, err := language.Parse(c.Locale)
	if err != nil {
		return language.Und
	}
	return tag
}

// OpenStore opens the configured key-value backend, wrapped in a SealedStore when
// a passphrase is set. Callers should close the result when it implements io.Closer.
func (c *Config) OpenStore(ctx context.Context) (storage.KeyValueStore, error) {
	var (
		kv  storage.KeyValueStore
		err error
	)

	switch c.Backend {
	case "file":
		kv, err = storage.NewFileStore(c.DataDir)
	case "sqlite":
		path := c.SQLitePath
		if path == "" {
			if err := os.MkdirAll(c.DataDir, 0700); err != nil {
				return nil, fmt.Errorf("failed to create data directory: %w", err)
			}
			path = filepath.Join(c.DataDir, "waterm.db")
		}
		kv, err = storage.NewSQLiteStore(path)
	case "redis":
		kv, err = storage.NewRedisStore(ctx, storage.RedisOptions{
			Addr:     c.RedisAddr,
			Password: c.RedisPassword,
			DB:       c.RedisDB,
			Prefix:   c.RedisPrefix,
			Timeout:  c.RedisTimeout,
		})
	case "memory":
		kv = storage.NewMemoryStore()
	default:
		return nil, fmt.Errorf("invalid backend: %s", c.Backend)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open %s store: %w", c.Backend, err)
	}

	if c.Passphrase != "" {
		kv = storage.NewSealedStore(kv, c.Passphrase)
	}

	return kv, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func parseDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func IsDebugEnabled() bool {
	return os.Getenv("WATERM_DEBUG") == "true" || os.Getenv("WATERM_DEBUG") == "1"
}
