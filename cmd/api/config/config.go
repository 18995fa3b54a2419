package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
)

// ConfigPath is used when Load gets an empty path.
var ConfigPath = "config.yaml"

// FileConfig represents configuration loaded from YAML.
type FileConfig struct {
	Port                 int           `yaml:"port"`
	LogLevel             string        `yaml:"logLevel"`
	Backend              string        `yaml:"backend"`
	DatabaseURL          string        `yaml:"databaseURL"`
	MigrationsPath       string        `yaml:"migrationsPath"`
	RedisAddr            string        `yaml:"redisAddr"`
	RedisPassword        string        `yaml:"redisPassword"`
	RedisDB              int           `yaml:"redisDB"`
	Collection           string        `yaml:"collection"`
	RequestTimeout       time.Duration `yaml:"requestTimeout"`
	NotificationsEnabled bool          `yaml:"notificationsEnabled"`
	NotificationsBaseURL string        `yaml:"notificationsBaseURL"`
	NotificationsTimeout time.Duration `yaml:"notificationsTimeout"`
}

func defaults() FileConfig {
	return FileConfig{
		Port:                 8080,
		LogLevel:             "info",
		Backend:              BackendMemory,
		MigrationsPath:       "cmd/api/database/migrations",
		Collection:           "books_prod",
		RequestTimeout:       5 * time.Second,
		NotificationsTimeout: 2 * time.Second,
	}
}

/*
Reads config from path (defaults to config.yaml), then applies a .env file and the
environment on top. A missing config file or .env file is not an error.
*/
func Load(path string) (FileConfig, error) {
	cfg := defaults()
	if path == "" {
		path = ConfigPath
	}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config: %w", err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return cfg, fmt.Errorf("read config: %w", err)
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return cfg, fmt.Errorf("read .env: %w", err)
	}
	if err := applyEnv(&cfg); err != nil {
		return cfg, err
	}
	if err := validateConfig(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func applyEnv(cfg *FileConfig) error {
	if v := os.Getenv("PORT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: PORT: %w", err)
		}
		cfg.Port = n
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("BOOKSHELF_BACKEND"); v != "" {
		cfg.Backend = strings.ToLower(strings.TrimSpace(v))
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.DatabaseURL = v
	}
	if v := os.Getenv("DATABASE_MIGRATIONS_PATH"); v != "" {
		cfg.MigrationsPath = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.RedisAddr = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		cfg.RedisPassword = v
	}
	if v := os.Getenv("BOOKSHELF_COLLECTION"); v != "" {
		cfg.Collection = v
	}
	//This ENV must be written with a unit suffix, like 5s.
	if v := os.Getenv("HTTP_REQUEST_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("config: HTTP_REQUEST_TIMEOUT: %w", err)
		}
		cfg.RequestTimeout = d
	}
	if v := os.Getenv("NOTIFICATIONS_ENABLED"); v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("config: NOTIFICATIONS_ENABLED: %w", err)
		}
		cfg.NotificationsEnabled = enabled
	}
	if v := os.Getenv("NOTIFICATIONS_BASE_URL"); v != "" {
		cfg.NotificationsBaseURL = v
	}
	return nil
}

func validateConfig(cfg FileConfig) error {
	if cfg.Port <= 0 {
		return errors.New("config: port is required")
	}
	if cfg.Collection == "" {
		return errors.New("config: collection is required")
	}
	if cfg.RequestTimeout <= 0 {
		return errors.New("config: requestTimeout must be positive")
	}
	switch cfg.Backend {
	case BackendMemory:
	case BackendPostgres:
		if cfg.DatabaseURL == "" {
			return errors.New("config: databaseURL is required for the postgres backend")
		}
	case BackendRedis:
		if cfg.RedisAddr == "" {
			return errors.New("config: redisAddr is required for the redis backend")
		}
	default:
		return fmt.Errorf("config: unknown backend %q", cfg.Backend)
	}
	if cfg.NotificationsEnabled && cfg.NotificationsBaseURL == "" {
		return errors.New("config: notificationsBaseURL is required when notifications are enabled")
	}
	return nil
}
