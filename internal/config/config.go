package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

type Config struct {
	Database DatabaseConfig
	App      AppConfig
	JWT      JWTConfig
	Payroll  PayrollConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
	MaxConns int32
	MinConns int32
}

// AppConfig holds application configuration
type AppConfig struct {
	Port     int
	Env      string
	LogLevel string
}

// JWTConfig holds the signing secret used to verify actor tokens.
// Token issuance lives in the identity service, not here.
type JWTConfig struct {
	Secret string
}

// PayrollConfig holds engine defaults.
type PayrollConfig struct {
	BaseCurrency        string
	DefaultOvertimeRate decimal.Decimal
	// ExchangeRates is a static table "FROM:TO=RATE;..." consumed by the
	// rate provider.
	ExchangeRates string
	// RateLookupTimeout bounds the exchange-rate call during calculation.
	RateLookupTimeout time.Duration
}

func Load() (*Config, error) {
	// Missing .env is fine in containers; env vars win either way.
	_ = godotenv.Load()

	config := &Config{}

	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}
	maxConns, err := strconv.Atoi(getEnv("DB_MAX_CONNS", "25"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MAX_CONNS: %w", err)
	}
	minConns, err := strconv.Atoi(getEnv("DB_MIN_CONNS", "5"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MIN_CONNS: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "stride_payroll"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		MaxConns: int32(maxConns),
		MinConns: int32(minConns),
	}

	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:     appPort,
		Env:      getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	config.JWT = JWTConfig{
		Secret: getEnv("JWT_SECRET_KEY", ""),
	}

	overtimeRate, err := decimal.NewFromString(getEnv("PAYROLL_DEFAULT_OVERTIME_RATE", "1.5"))
	if err != nil {
		return nil, fmt.Errorf("invalid PAYROLL_DEFAULT_OVERTIME_RATE: %w", err)
	}
	rateTimeout, err := time.ParseDuration(getEnv("PAYROLL_RATE_LOOKUP_TIMEOUT", "3s"))
	if err != nil {
		return nil, fmt.Errorf("invalid PAYROLL_RATE_LOOKUP_TIMEOUT: %w", err)
	}

	config.Payroll = PayrollConfig{
		BaseCurrency:        getEnv("PAYROLL_BASE_CURRENCY", "USD"),
		DefaultOvertimeRate: overtimeRate,
		ExchangeRates:       getEnv("PAYROLL_EXCHANGE_RATES", ""),
		RateLookupTimeout:   rateTimeout,
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if c.Payroll.BaseCurrency == "" {
		return fmt.Errorf("PAYROLL_BASE_CURRENCY is required")
	}
	return nil
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
