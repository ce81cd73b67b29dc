package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/parsers/toml/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config holds everything the service reads at startup.
type Config struct {
	Port        string   `koanf:"port"`
	Env         string   `koanf:"env"`
	LogLevel    string   `koanf:"log_level"`
	JWTSecret   string   `koanf:"jwt_secret"`
	CORSOrigins []string `koanf:"cors_origins"`
	DB          DBConfig `koanf:"postgresql"`
}

type DBConfig struct {
	Host     string `koanf:"host"`
	Port     string `koanf:"port"`
	User     string `koanf:"user"`
	Password string `koanf:"password"`
	Name     string `koanf:"name"`
	SSLMode  string `koanf:"sslmode"`
}

// DSN returns the connection string in the form gorm's postgres driver expects.
func (c DBConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		c.Host, c.User, c.Password, c.Name, c.Port, c.SSLMode,
	)
}

var ErrMissingJWTSecret = errors.New("JWT_SECRET is not set")

func defaults() *Config {
	return &Config{
		Port:        "8080",
		Env:         "local",
		LogLevel:    "info",
		CORSOrigins: []string{"*"},
		DB: DBConfig{
			Host:    "localhost",
			Port:    "5432",
			SSLMode: "disable",
		},
	}
}

// Load builds the configuration from defaults, an optional TOML file and the
// environment, in that order of precedence. An empty path falls back to
// CONFIG_FILE. A .env file in the working directory is picked up
// automatically.
func Load(path string) (*Config, error) {
	cfg := defaults()

	if path == "" {
		path = os.Getenv("CONFIG_FILE")
	}
	if path != "" {
		k := koanf.New(".")
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, fmt.Errorf("error loading config file %s: %w", path, err)
		}
		origins := cfg.CORSOrigins
		cfg.CORSOrigins = nil
		if err := k.Unmarshal("", cfg); err != nil {
			return nil, fmt.Errorf("error unmarshaling config: %w", err)
		}
		if len(cfg.CORSOrigins) == 0 {
			cfg.CORSOrigins = origins
		}
	}

	override(&cfg.Port, "PORT")
	override(&cfg.Env, "APP_ENV")
	override(&cfg.LogLevel, "LOG_LEVEL")
	override(&cfg.JWTSecret, "JWT_SECRET")
	override(&cfg.DB.Host, "DB_HOST")
	override(&cfg.DB.Port, "DB_PORT")
	override(&cfg.DB.User, "DB_USER")
	override(&cfg.DB.Password, "DB_PASSWORD")
	override(&cfg.DB.Name, "DB_NAME")
	override(&cfg.DB.SSLMode, "DB_SSLMODE")
	if origins := splitList(os.Getenv("CORS_ORIGINS")); len(origins) > 0 {
		cfg.CORSOrigins = origins
	}

	if cfg.JWTSecret == "" {
		return nil, ErrMissingJWTSecret
	}

	return cfg, nil
}

// IsProduction reports whether the service runs with production defaults.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func override(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
