package config

import (
	"fmt"
	"log/slog"
	"net"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Port           string          `yaml:"port"`
	Debug          bool            `yaml:"debug"`
	DatabaseURL    string          `yaml:"database_url"`
	AllowedOrigin  string          `yaml:"allowed_origin"`
	QueryTimeout   time.Duration   `yaml:"query_timeout"`
	MaxLimit       int             `yaml:"max_limit"`
	TrustedProxies []string        `yaml:"trusted_proxies"`
	RateLimit      RateLimitConfig `yaml:"rate_limit"`
}

type RateLimitConfig struct {
	RequestsPerSecond float64       `yaml:"requests_per_second"`
	Burst             int           `yaml:"burst"`
	Enabled           bool          `yaml:"enabled"`
	CacheSize         int           `yaml:"cache_size"`
	CacheTTL          time.Duration `yaml:"cache_ttl"`
}

func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("No .env file found, using environment variables")
	}
	return LoadFromPath("config.yaml")
}

func LoadFromPath(path string) (Config, error) {
	cfg := NewDefaultConfig()

	f, err := os.Open(path)
	if err == nil {
		defer f.Close()
		decoder := yaml.NewDecoder(f)
		if err := decoder.Decode(&cfg); err != nil {
			return cfg, err
		}
	} else if !os.IsNotExist(err) {
		return cfg, err
	}

	if err := cfg.LoadEnv(); err != nil {
		return cfg, err
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}

	return cfg, nil
}

func NewDefaultConfig() Config {
	return Config{
		Port:          "8080",
		Debug:         false,
		AllowedOrigin: "http://localhost:5173",
		QueryTimeout:  5 * time.Second,
		MaxLimit:      100,
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 20,
			Burst:             40,
			Enabled:           true,
			CacheSize:         5000,
			CacheTTL:          1 * time.Hour,
		},
	}
}

func (c *Config) LoadEnv() error {
	if envPort := os.Getenv("PORT"); envPort != "" {
		c.Port = envPort
	}
	if envDB := os.Getenv("DATABASE_URL"); envDB != "" {
		c.DatabaseURL = envDB
	}
	if envOrigin := os.Getenv("CORS_ORIGIN"); envOrigin != "" {
		c.AllowedOrigin = envOrigin
	}
	if envTimeout := os.Getenv("QUERY_TIMEOUT"); envTimeout != "" {
		d, err := time.ParseDuration(envTimeout)
		if err != nil {
			return fmt.Errorf("invalid QUERY_TIMEOUT %q: %w", envTimeout, err)
		}
		c.QueryTimeout = d
	}
	if envMax := os.Getenv("MAX_LIMIT"); envMax != "" {
		n, err := strconv.Atoi(envMax)
		if err != nil {
			return fmt.Errorf("invalid MAX_LIMIT %q: %w", envMax, err)
		}
		c.MaxLimit = n
	}
	return nil
}

// Validate rejects settings the server cannot run with.
func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("port is required")
	}
	if c.DatabaseURL == "" {
		return fmt.Errorf("database_url is required (config.yaml or DATABASE_URL)")
	}
	if c.QueryTimeout <= 0 {
		return fmt.Errorf("query_timeout must be positive, got %s", c.QueryTimeout)
	}
	if c.MaxLimit < 1 {
		return fmt.Errorf("max_limit must be at least 1, got %d", c.MaxLimit)
	}
	for _, proxy := range c.TrustedProxies {
		if net.ParseIP(proxy) != nil {
			continue
		}
		if _, _, err := net.ParseCIDR(proxy); err != nil {
			return fmt.Errorf("trusted_proxies: %q is not an IP or CIDR", proxy)
		}
	}
	return nil
}
