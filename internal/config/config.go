package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/vikoShak/ATS/internal/storage"
	"gopkg.in/yaml.v3"
)

// Config defines server configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Transport TransportConfig `yaml:"transport"`
	DB        DBConfig        `yaml:"db"`
	Log       LogConfig       `yaml:"log"`
	Storage   StorageConfig   `yaml:"storage"`
	Features  FeaturesConfig  `yaml:"features"`
	Bulk      BulkConfig      `yaml:"bulk"`
	Auth      AuthConfig      `yaml:"auth"`
	Redis     RedisConfig     `yaml:"redis"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type TransportConfig struct {
	Mode string `yaml:"mode"`
}

type DBConfig struct {
	Driver string `yaml:"driver"`
	Path   string `yaml:"path"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	Path  string `yaml:"path"`
}

type StorageConfig struct {
	Provider        string `yaml:"provider"`
	Bucket          string `yaml:"bucket"`
	BaseURL         string `yaml:"base_url"`
	CredentialsJSON string `yaml:"credentials_json"`
}

type FeaturesConfig struct {
	Requirements bool `yaml:"requirements"`
}

type BulkConfig struct {
	ReplaceByEmail bool   `yaml:"replace_by_email"`
	PhoneRegion    string `yaml:"phone_region"`
}

type AuthConfig struct {
	Enabled      bool          `yaml:"enabled"`
	Username     string        `yaml:"username"`
	Password     string        `yaml:"password"`
	PasswordHash string        `yaml:"password_hash"`
	SessionStore string        `yaml:"session_store"`
	SessionTTL   time.Duration `yaml:"session_ttl"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// Default returns the configuration used when nothing is overridden.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Transport: TransportConfig{
			Mode: "http",
		},
		DB: DBConfig{
			Driver: "memory",
			Path:   "recruitiq.db",
		},
		Log: LogConfig{
			Level: "info",
		},
		Storage: StorageConfig{
			Provider: "mock",
			Bucket:   storage.DefaultBucket,
		},
		Features: FeaturesConfig{
			Requirements: true,
		},
		Bulk: BulkConfig{
			ReplaceByEmail: true,
			PhoneRegion:    "US",
		},
		Auth: AuthConfig{
			Enabled:      true,
			Username:     "TRIQ_ADMIN",
			SessionStore: "memory",
			SessionTTL:   24 * time.Hour,
		},
		Redis: RedisConfig{
			Addr: "localhost:6379",
		},
	}
}

// Load reads configuration from an optional YAML file, an optional .env file
// and environment variables, in increasing order of precedence.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	cfg := Default()

	if path := os.Getenv("RECRUITIQ_CONFIG_PATH"); path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func applyEnv(cfg *Config) error {
	setString("RECRUITIQ_SERVER_HOST", &cfg.Server.Host)
	if err := setInt("RECRUITIQ_SERVER_PORT", &cfg.Server.Port); err != nil {
		return err
	}
	setString("RECRUITIQ_TRANSPORT_MODE", &cfg.Transport.Mode)
	setString("RECRUITIQ_DB_DRIVER", &cfg.DB.Driver)
	setString("RECRUITIQ_DB_PATH", &cfg.DB.Path)
	setString("RECRUITIQ_LOG_LEVEL", &cfg.Log.Level)
	setString("RECRUITIQ_LOG_PATH", &cfg.Log.Path)
	setString("RECRUITIQ_STORAGE_PROVIDER", &cfg.Storage.Provider)
	setString("RECRUITIQ_STORAGE_BUCKET", &cfg.Storage.Bucket)
	setString("RECRUITIQ_STORAGE_BASE_URL", &cfg.Storage.BaseURL)
	setString("RECRUITIQ_STORAGE_CREDENTIALS_JSON", &cfg.Storage.CredentialsJSON)
	if err := setBool("RECRUITIQ_FEATURES_REQUIREMENTS", &cfg.Features.Requirements); err != nil {
		return err
	}
	if err := setBool("RECRUITIQ_BULK_REPLACE_BY_EMAIL", &cfg.Bulk.ReplaceByEmail); err != nil {
		return err
	}
	setString("RECRUITIQ_BULK_PHONE_REGION", &cfg.Bulk.PhoneRegion)
	if err := setBool("RECRUITIQ_AUTH_ENABLED", &cfg.Auth.Enabled); err != nil {
		return err
	}
	setString("RECRUITIQ_AUTH_USERNAME", &cfg.Auth.Username)
	setString("RECRUITIQ_AUTH_PASSWORD", &cfg.Auth.Password)
	setString("RECRUITIQ_AUTH_PASSWORD_HASH", &cfg.Auth.PasswordHash)
	setString("RECRUITIQ_AUTH_SESSION_STORE", &cfg.Auth.SessionStore)
	if v := os.Getenv("RECRUITIQ_AUTH_SESSION_TTL"); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid RECRUITIQ_AUTH_SESSION_TTL: %w", err)
		}
		cfg.Auth.SessionTTL = ttl
	}
	setString("RECRUITIQ_REDIS_ADDR", &cfg.Redis.Addr)
	setString("RECRUITIQ_REDIS_PASSWORD", &cfg.Redis.Password)
	return setInt("RECRUITIQ_REDIS_DB", &cfg.Redis.DB)
}

func setString(key string, dst *string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(key string, dst *int) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	*dst = n
	return nil
}

func setBool(key string, dst *bool) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	*dst = b
	return nil
}

// Validate rejects unknown modes and incomplete settings.
func (c Config) Validate() error {
	var errs []error
	switch c.Transport.Mode {
	case "http", "stdio":
	default:
		errs = append(errs, fmt.Errorf("transport.mode must be http or stdio, got %q", c.Transport.Mode))
	}
	switch c.DB.Driver {
	case "memory":
	case "sqlite":
		if strings.TrimSpace(c.DB.Path) == "" {
			errs = append(errs, errors.New("db.path is required for the sqlite driver"))
		}
	default:
		errs = append(errs, fmt.Errorf("db.driver must be memory or sqlite, got %q", c.DB.Driver))
	}
	switch c.Storage.Provider {
	case "mock":
	case "gcs":
		if c.Storage.Bucket == "" {
			errs = append(errs, errors.New("storage.bucket is required for the gcs provider"))
		}
	default:
		errs = append(errs, fmt.Errorf("storage.provider must be mock or gcs, got %q", c.Storage.Provider))
	}
	if c.Transport.Mode == "http" && (c.Server.Port <= 0 || c.Server.Port > 65535) {
		errs = append(errs, fmt.Errorf("server.port out of range: %d", c.Server.Port))
	}
	if c.Auth.Enabled {
		if c.Auth.Username == "" {
			errs = append(errs, errors.New("auth.username is required when auth is enabled"))
		}
		if c.Auth.Password == "" && c.Auth.PasswordHash == "" {
			errs = append(errs, errors.New("auth.password or auth.password_hash is required when auth is enabled"))
		}
		switch c.Auth.SessionStore {
		case "memory":
		case "redis":
			if c.Redis.Addr == "" {
				errs = append(errs, errors.New("redis.addr is required for the redis session store"))
			}
		default:
			errs = append(errs, fmt.Errorf("auth.session_store must be memory or redis, got %q", c.Auth.SessionStore))
		}
	}
	return errors.Join(errs...)
}
