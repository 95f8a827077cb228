package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"

	// database/sql driver names registered by pgx and lib/pq.
	DriverPgx = "pgx"
	DriverPQ  = "postgres"
)

type ServerConfig struct {
	Port         string        `yaml:"port"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
	IdleTimeout  time.Duration `yaml:"idle_timeout"`
}

type DBConfig struct {
	Driver       string `yaml:"driver"`
	Host         string `yaml:"host"`
	Port         int    `yaml:"port"`
	User         string `yaml:"user"`
	Password     string `yaml:"password"`
	Name         string `yaml:"name"`
	SSLMode      string `yaml:"sslmode"`
	MaxOpenConns int    `yaml:"max_open_conns"`
	Migrate      bool   `yaml:"migrate"`
}

// DSN is a postgres:// URL understood by both drivers.
func (c DBConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.Name, c.SSLMode)
}

type RedisConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type JWTConfig struct {
	Secret string        `yaml:"secret"`
	Issuer string        `yaml:"issuer"`
	TTL    time.Duration `yaml:"ttl"`
}

type RateLimitConfig struct {
	Requests int           `yaml:"requests"`
	Window   time.Duration `yaml:"window"`
}

type Config struct {
	Env       string          `yaml:"env"`
	LogLevel  string          `yaml:"log_level"`
	Storage   string          `yaml:"storage"`
	Server    ServerConfig    `yaml:"server"`
	DB        DBConfig        `yaml:"db"`
	Redis     RedisConfig     `yaml:"redis"`
	JWT       JWTConfig       `yaml:"jwt"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
}

func Default() *Config {
	return &Config{
		Env:     "production",
		Storage: StoragePostgres,
		Server: ServerConfig{
			Port:         "8080",
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  120 * time.Second,
		},
		DB: DBConfig{
			Driver:       DriverPgx,
			Host:         "localhost",
			Port:         5432,
			SSLMode:      "disable",
			MaxOpenConns: 25,
			Migrate:      true,
		},
		Redis: RedisConfig{
			Host: "localhost",
			Port: "6379",
		},
		JWT: JWTConfig{
			Issuer: "kanso-progression-engine",
			TTL:    72 * time.Hour,
		},
		RateLimit: RateLimitConfig{
			Requests: 100,
			Window:   time.Minute,
		},
	}
}

// Load layers the defaults, the YAML file at path (optional), a .env file
// (optional) and finally the process environment.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("config: failed to decode %s: %w", path, err)
			}
		case errors.Is(err, os.ErrNotExist):
		default:
			return nil, fmt.Errorf("config: failed to read %s: %w", path, err)
		}
	}

	_ = godotenv.Load()

	if err := overrideFromEnv(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.Storage {
	case StoragePostgres, StorageMemory:
	default:
		return fmt.Errorf("config: unknown storage %q (want postgres or memory)", c.Storage)
	}
	if c.Storage == StoragePostgres && c.DB.Driver != DriverPgx && c.DB.Driver != DriverPQ {
		return fmt.Errorf("config: unknown db driver %q (want pgx or postgres)", c.DB.Driver)
	}
	if c.JWT.Secret == "" {
		return errors.New("config: JWT_SECRET is required")
	}
	if c.JWT.TTL <= 0 {
		return errors.New("config: jwt ttl must be positive")
	}
	if c.RateLimit.Requests < 0 {
		return errors.New("config: rate limit cannot be negative")
	}
	return nil
}

func overrideFromEnv(cfg *Config) error {
	setString(&cfg.Env, "APP_ENV")
	setString(&cfg.LogLevel, "LOG_LEVEL")
	setString(&cfg.Storage, "STORAGE")
	setString(&cfg.Server.Port, "PORT")

	setString(&cfg.DB.Driver, "DB_DRIVER")
	setString(&cfg.DB.Host, "DB_HOST")
	setString(&cfg.DB.User, "DB_USER")
	setString(&cfg.DB.Password, "DB_PASSWORD")
	setString(&cfg.DB.Name, "DB_NAME")
	setString(&cfg.DB.SSLMode, "DB_SSLMODE")

	setString(&cfg.Redis.Host, "REDIS_HOST")
	setString(&cfg.Redis.Port, "REDIS_PORT")
	setString(&cfg.Redis.Password, "REDIS_PASSWORD")

	setString(&cfg.JWT.Secret, "JWT_SECRET")
	setString(&cfg.JWT.Issuer, "JWT_ISSUER")

	if err := setInt(&cfg.DB.Port, "DB_PORT"); err != nil {
		return err
	}
	if err := setInt(&cfg.Redis.DB, "REDIS_DB"); err != nil {
		return err
	}
	if err := setInt(&cfg.RateLimit.Requests, "RATE_LIMIT_REQUESTS"); err != nil {
		return err
	}
	if err := setBool(&cfg.Redis.Enabled, "REDIS_ENABLED"); err != nil {
		return err
	}
	if err := setBool(&cfg.DB.Migrate, "DB_MIGRATE"); err != nil {
		return err
	}
	if err := setDuration(&cfg.JWT.TTL, "JWT_TTL"); err != nil {
		return err
	}
	return setDuration(&cfg.RateLimit.Window, "RATE_LIMIT_WINDOW")
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("config: %s must be an integer: %w", key, err)
	}
	*dst = n
	return nil
}

func setBool(dst *bool, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fmt.Errorf("config: %s must be a boolean: %w", key, err)
	}
	*dst = b
	return nil
}

func setDuration(dst *time.Duration, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("config: %s must be a duration: %w", key, err)
	}
	*dst = d
	return nil
}
