package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
)

type Config struct {
	Database DatabaseConfig
	JWT      JWTConfig
	App      AppConfig
	Ponto    PontoConfig
	Cache    CacheConfig
	Redis    RedisConfig
	CORS     CORSConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	AccessExpiration string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port     int
	Env      string
	LogLevel string
	Timezone string
	// Store selects the override store backend: "postgres" or "memory".
	Store string
}

// PontoConfig holds the time-clock vendor API settings
type PontoConfig struct {
	BaseURL   string
	Username  string
	Password  string
	Timeout   time.Duration
	RateLimit float64 // requests per second, 0 disables
}

// CacheConfig holds the day cache settings
type CacheConfig struct {
	Size             int
	TTL              time.Duration
	PrefetchInterval time.Duration
}

// RedisConfig enables the cross-instance invalidation bus when Address is set
type RedisConfig struct {
	Address  string
	Password string
	DB       int
}

type CORSConfig struct {
	AllowedOrigins []string
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("No .env file loaded", "error", err)
	}

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "timesheet"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:     appPort,
		Env:      getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		Timezone: getEnv("APP_TIMEZONE", "America/Sao_Paulo"),
		Store:    strings.ToLower(getEnv("APP_STORE", "postgres")),
	}

	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: getEnv("JWT_ACCESS_EXPIRATION_TIME", "12h"),
	}

	// Vendor API configuration
	pontoTimeout, err := time.ParseDuration(getEnv("PONTO_TIMEOUT", "30s"))
	if err != nil {
		return nil, fmt.Errorf("invalid PONTO_TIMEOUT: %w", err)
	}

	pontoRate, err := strconv.ParseFloat(getEnv("PONTO_RATE_LIMIT", "5"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid PONTO_RATE_LIMIT: %w", err)
	}

	config.Ponto = PontoConfig{
		BaseURL:   strings.TrimRight(getEnv("PONTO_BASE_URL", ""), "/"),
		Username:  getEnv("PONTO_USERNAME", ""),
		Password:  getEnv("PONTO_PASSWORD", ""),
		Timeout:   pontoTimeout,
		RateLimit: pontoRate,
	}

	// Cache configuration
	cacheSize, err := strconv.Atoi(getEnv("CACHE_SIZE", "256"))
	if err != nil {
		return nil, fmt.Errorf("invalid CACHE_SIZE: %w", err)
	}
	cacheTTL, err := time.ParseDuration(getEnv("CACHE_TTL", "2m"))
	if err != nil {
		return nil, fmt.Errorf("invalid CACHE_TTL: %w", err)
	}
	prefetchInterval, err := time.ParseDuration(getEnv("CACHE_PREFETCH_INTERVAL", "0s"))
	if err != nil {
		return nil, fmt.Errorf("invalid CACHE_PREFETCH_INTERVAL: %w", err)
	}

	config.Cache = CacheConfig{
		Size:             cacheSize,
		TTL:              cacheTTL,
		PrefetchInterval: prefetchInterval,
	}

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	config.Redis = RedisConfig{
		Address:  getEnv("REDIS_ADDRESS", ""),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       redisDB,
	}

	config.CORS = CORSConfig{
		AllowedOrigins: getEnvSlice("CORS_ALLOWED_ORIGINS", "http://localhost:4200"),
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.App.Store != "postgres" && c.App.Store != "memory" {
		return fmt.Errorf("APP_STORE must be postgres or memory")
	}
	if c.App.Store == "postgres" && c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if c.Ponto.BaseURL == "" {
		return fmt.Errorf("PONTO_BASE_URL is required")
	}
	if _, err := time.LoadLocation(c.App.Timezone); err != nil {
		return fmt.Errorf("invalid APP_TIMEZONE: %w", err)
	}
	if c.Ponto.RateLimit < 0 {
		return fmt.Errorf("PONTO_RATE_LIMIT must not be negative")
	}
	if c.Cache.Size <= 0 {
		return fmt.Errorf("CACHE_SIZE must be positive")
	}
	return nil
}

// Location returns the location used for calendar days and manual punches.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.App.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvSlice(env string, fallback string) []string {
	value := getEnv(env, fallback)
	if value == "" {
		return []string{}
	}
	var result []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			result = append(result, part)
		}
	}
	return result
}
