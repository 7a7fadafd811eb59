package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	AppEnv   string `yaml:"app_env"`
	LogLevel string `yaml:"log_level"`

	GRPCPort int `yaml:"grpc_port"`
	HTTPPort int `yaml:"http_port"`

	Postgres Postgres `yaml:"postgres"`

	// CartStatePath is the SQLite file holding the durable cart.
	CartStatePath string `yaml:"cart_state_path"`
	// SessionStatePath holds the admin session; it lives under the OS
	// temp dir by default so it does not outlive the machine session.
	SessionStatePath string `yaml:"session_state_path"`

	CheckoutConcurrency int `yaml:"checkout_concurrency"`
}

type Postgres struct {
	Driver  string `yaml:"driver"`
	Host    string `yaml:"host"`
	Port    int    `yaml:"port"`
	User    string `yaml:"user"`
	Pass    string `yaml:"password"`
	DB      string `yaml:"db"`
	SSLMode string `yaml:"sslmode"`
}

func defaults() Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return Config{
		AppEnv:   "dev",
		LogLevel: "info",
		HTTPPort: 8080,
		GRPCPort: 8081,
		Postgres: Postgres{
			Driver:  "pgx",
			Host:    "localhost",
			Port:    5432,
			User:    "shopping",
			Pass:    "shoppingpassword",
			DB:      "shopping_db",
			SSLMode: "disable",
		},
		CartStatePath:       filepath.Join(home, ".storefront", "cart.db"),
		SessionStatePath:    filepath.Join(os.TempDir(), "storefront-session.db"),
		CheckoutConcurrency: 10,
	}
}

// Load returns the configuration from defaults, then the YAML file named
// by CONFIG_FILE (if set), then environment variables.
func Load() (Config, error) {
	cfg := defaults()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := overlayFile(&cfg, path); err != nil {
			return Config{}, err
		}
	}

	applyEnv(&cfg)
	return cfg, nil
}

// MustLoad is Load for main packages.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	return cfg
}

func overlayFile(cfg *Config, path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) {
	cfg.AppEnv = getEnv("APP_ENV", cfg.AppEnv)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)
	cfg.HTTPPort = getEnvInt("HTTP_PORT", cfg.HTTPPort)
	cfg.GRPCPort = getEnvInt("GRPC_PORT", cfg.GRPCPort)

	cfg.Postgres.Driver = getEnv("POSTGRES_DRIVER", cfg.Postgres.Driver)
	cfg.Postgres.Host = getEnv("POSTGRES_HOST", cfg.Postgres.Host)
	cfg.Postgres.Port = getEnvInt("POSTGRES_PORT", cfg.Postgres.Port)
	cfg.Postgres.User = getEnv("POSTGRES_USER", cfg.Postgres.User)
	cfg.Postgres.Pass = getEnv("POSTGRES_PASSWORD", cfg.Postgres.Pass)
	cfg.Postgres.DB = getEnv("POSTGRES_DB", cfg.Postgres.DB)
	cfg.Postgres.SSLMode = getEnv("POSTGRES_SSLMODE", cfg.Postgres.SSLMode)

	cfg.CartStatePath = getEnv("CART_STATE_PATH", cfg.CartStatePath)
	cfg.SessionStatePath = getEnv("SESSION_STATE_PATH", cfg.SessionStatePath)
	cfg.CheckoutConcurrency = getEnvInt("CHECKOUT_CONCURRENCY", cfg.CheckoutConcurrency)
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)

	if v == "" {
		return def
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}

	return n
}
