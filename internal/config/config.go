package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Env             string
	Port            string
	LogLevel        string
	DB              DBConfig
	JWTSecret       string
	JWTExpiresIn    time.Duration
	RedisURL        string
	SummaryCacheTTL time.Duration
	FrontendURL     string
	GoogleAuth      bool
	GoogleClientID  string
}

type DBConfig struct {
	Host     string
	User     string
	Password string
	Name     string
	Port     string
	SSLMode  string
	TimeZone string
}

// DSN builds the postgres connection string.
func (c DBConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s "+
			"application_name=healio TimeZone=%s",
		c.Host, c.User, c.Password, c.Name, c.Port, c.SSLMode, c.TimeZone,
	)
}

// LoadDotEnv loads the first .env file found in paths. Missing files are not an error.
func LoadDotEnv(paths ...string) error {
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return godotenv.Load(p)
		}
	}
	return nil
}

// FromEnv reads the configuration from environment variables.
func FromEnv() (*Config, error) {
	jwtTTL, err := durationEnv("JWT_EXPIRES_IN", 7*24*time.Hour)
	if err != nil {
		return nil, err
	}
	cacheTTL, err := durationEnv("SUMMARY_CACHE_TTL", 10*time.Minute)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Env:             getEnv("APP_ENV", "development"),
		Port:            getEnv("PORT", "8080"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		DB:              DBFromEnv(),
		JWTSecret:       os.Getenv("JWT_SECRET_KEY"),
		JWTExpiresIn:    jwtTTL,
		RedisURL:        os.Getenv("REDIS_URL"),
		SummaryCacheTTL: cacheTTL,
		FrontendURL:     getEnv("FRONTEND_URL", "http://localhost:3000"),
		GoogleAuth:      strings.EqualFold(os.Getenv("ENABLE_GOOGLE_AUTH"), "true"),
		GoogleClientID:  os.Getenv("GOOGLE_CLIENT_ID"),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// DBFromEnv reads only the database settings. Used by tools that need no secrets.
func DBFromEnv() DBConfig {
	return DBConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		User:     getEnv("DB_USER", "postgres"),
		Password: os.Getenv("DB_PASSWORD"),
		Name:     getEnv("DB_NAME", "healio"),
		Port:     getEnv("DB_PORT", "5432"),
		SSLMode:  getEnv("DB_SSLMODE", "disable"),
		TimeZone: getEnv("DB_TIMEZONE", "UTC"),
	}
}

func (c *Config) Validate() error {
	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return errors.New("APP_ENV must be one of: development, staging, production")
	}
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET_KEY is required")
	}
	if c.JWTExpiresIn <= 0 {
		return errors.New("JWT_EXPIRES_IN must be positive")
	}
	if c.GoogleAuth && c.GoogleClientID == "" {
		return errors.New("GOOGLE_CLIENT_ID is required when ENABLE_GOOGLE_AUTH=true")
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func durationEnv(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}
