package config

import (
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds the runtime configuration for the portal API.
// Values come from an optional YAML file (CONFIG_FILE) with environment
// variables layered on top; env always wins.
type Config struct {
	AppPort     string `yaml:"app_port"`
	DatabaseURL string `yaml:"database_url"`
	JWTSecret   string `yaml:"jwt_secret"`
	Environment string `yaml:"environment"` // development or production
	RedisURL    string `yaml:"redis_url"`   // empty means in-memory rate limiting

	// Impersonation exchange rate limit: requests per window per client IP.
	ExchangeRateLimit  int `yaml:"exchange_rate_limit"`
	ExchangeRateWindow int `yaml:"exchange_rate_window_seconds"`
}

// Load builds the configuration from CONFIG_FILE (if set) and the environment.
func Load() (*Config, error) {
	cfg := &Config{
		AppPort:            "8080",
		Environment:        "development",
		ExchangeRateLimit:  10,
		ExchangeRateWindow: 60,
	}

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		file, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer file.Close()
		if err := yaml.NewDecoder(file).Decode(cfg); err != nil {
			return nil, err
		}
	}

	cfg.AppPort = getEnv("APP_PORT", cfg.AppPort)
	cfg.DatabaseURL = getEnv("DATABASE_URL", cfg.DatabaseURL)
	cfg.JWTSecret = getEnv("JWT_SECRET", cfg.JWTSecret)
	cfg.Environment = getEnv("APP_ENV", cfg.Environment)
	cfg.RedisURL = getEnv("REDIS_URL", cfg.RedisURL)
	cfg.ExchangeRateLimit = getEnvInt("EXCHANGE_RATE_LIMIT", cfg.ExchangeRateLimit)
	cfg.ExchangeRateWindow = getEnvInt("EXCHANGE_RATE_WINDOW_SECONDS", cfg.ExchangeRateWindow)

	// A zero or negative limit would disable the exchange entirely (or panic
	// the limiter); treat it as misconfiguration and fall back to defaults.
	if cfg.ExchangeRateLimit < 1 {
		cfg.ExchangeRateLimit = 10
	}
	if cfg.ExchangeRateWindow < 1 {
		cfg.ExchangeRateWindow = 60
	}

	return cfg, nil
}

// IsProduction reports whether the service runs with production hardening
// (Secure cookies, no relaxed defaults).
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}
