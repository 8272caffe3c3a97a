package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	Server ServerConfig

	// Database configuration
	Database DatabaseConfig

	// Auth configuration
	Auth AuthConfig

	// Billing provider configuration
	Billing BillingConfig

	// Outbound mail configuration
	Mail MailConfig

	// AI content tools configuration
	AI AIConfig

	// Rate limiting configuration
	RateLimit RateLimitConfig

	// Logging configuration
	Log LogConfig
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host         string
	Port         string
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
	MaxLifetime  time.Duration
}

// AuthConfig holds JWT and admin bootstrap settings
type AuthConfig struct {
	JWTSecret     string
	TokenTTL      time.Duration
	AdminEmail    string
	AdminPassword string
	AdminName     string
}

// BillingConfig holds payment provider settings
type BillingConfig struct {
	APIBaseURL     string
	APIKey         string
	WebhookSecret  string
	SuccessURL     string
	CancelURL      string
	StandardPrice  string
	PremiumPrice   string
	ProPrice       string
	SigTolerance   time.Duration
	ReceiptsEnable bool
}

// MailConfig holds SendGrid settings
type MailConfig struct {
	SendGridAPIKey string
	FromEmail      string
	FromName       string
}

// AIConfig holds content-generation endpoint settings
type AIConfig struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// RateLimitConfig holds comment/login throttle settings
type RateLimitConfig struct {
	Requests   int
	Window     time.Duration
	MaxEntries int
}

// LogConfig holds logging settings
type LogConfig struct {
	Level  string
	Format string // "json" or "pretty"
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "8080"),
			ReadTimeout:     getDurationEnv("SERVER_READ_TIMEOUT", 30*time.Second),
			WriteTimeout:    getDurationEnv("SERVER_WRITE_TIMEOUT", 30*time.Second),
			ShutdownTimeout: getDurationEnv("SERVER_SHUTDOWN_TIMEOUT", 30*time.Second),
		},
		Database: DatabaseConfig{
			Host:         getEnv("DB_HOST", "localhost"),
			Port:         getEnv("DB_PORT", "5432"),
			User:         getEnv("DB_USER", "postgres"),
			Password:     getEnv("DB_PASSWORD", "postgres"),
			Name:         getEnv("DB_NAME", "newswire"),
			SSLMode:      getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns: getIntEnv("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns: getIntEnv("DB_MAX_IDLE_CONNS", 5),
			MaxLifetime:  getDurationEnv("DB_MAX_LIFETIME", 5*time.Minute),
		},
		Auth: AuthConfig{
			JWTSecret:     getEnv("JWT_SECRET", ""),
			TokenTTL:      getDurationEnv("JWT_TTL", 24*time.Hour),
			AdminEmail:    getEnv("ADMIN_EMAIL", ""),
			AdminPassword: getEnv("ADMIN_PASSWORD", ""),
			AdminName:     getEnv("ADMIN_NAME", "Administrator"),
		},
		Billing: BillingConfig{
			APIBaseURL:     getEnv("BILLING_API_URL", "https://api.stripe.com/v1"),
			APIKey:         getEnv("BILLING_API_KEY", ""),
			WebhookSecret:  getEnv("BILLING_WEBHOOK_SECRET", ""),
			SuccessURL:     getEnv("BILLING_SUCCESS_URL", "https://newswire.example/account"),
			CancelURL:      getEnv("BILLING_CANCEL_URL", "https://newswire.example/plans"),
			StandardPrice:  getEnv("BILLING_PRICE_STANDARD", ""),
			PremiumPrice:   getEnv("BILLING_PRICE_PREMIUM", ""),
			ProPrice:       getEnv("BILLING_PRICE_PRO", ""),
			SigTolerance:   getDurationEnv("BILLING_SIG_TOLERANCE", 5*time.Minute),
			ReceiptsEnable: getBoolEnv("BILLING_RECEIPTS_ENABLED", false),
		},
		Mail: MailConfig{
			SendGridAPIKey: getEnv("SENDGRID_API_KEY", ""),
			FromEmail:      getEnv("MAIL_FROM_EMAIL", "no-reply@newswire.example"),
			FromName:       getEnv("MAIL_FROM_NAME", "Newswire"),
		},
		AI: AIConfig{
			BaseURL: getEnv("AI_API_URL", ""),
			APIKey:  getEnv("AI_API_KEY", ""),
			Timeout: getDurationEnv("AI_TIMEOUT", 30*time.Second),
		},
		RateLimit: RateLimitConfig{
			Requests:   getIntEnv("RATE_LIMIT_REQUESTS", 30),
			Window:     getDurationEnv("RATE_LIMIT_WINDOW", time.Minute),
			MaxEntries: getIntEnv("RATE_LIMIT_MAX_ENTRIES", 10000),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}

	// Validate required configuration
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Database.Host == "" {
		return fmt.Errorf("DB_HOST is required")
	}
	if c.Database.Name == "" {
		return fmt.Errorf("DB_NAME is required")
	}
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	return nil
}

// GetDSN returns the PostgreSQL connection string
func (c *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode,
	)
}

// Helper functions for environment variable parsing

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
