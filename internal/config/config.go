package config

import (
	"os"
	"strconv"
	"time"

	"ikigai/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Database DatabaseConfig
	AI       AIConfig
	Server   ServerConfig
	Email    EmailConfig
	Payments PaymentsConfig
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	URL string
}

// AIConfig holds Gemini provider settings, including the retry budget
type AIConfig struct {
	APIKey         string
	Model          string
	BaseURL        string // overridden in tests
	MaxRetries     int
	BaseDelay      time.Duration
	RequestTimeout time.Duration
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port        string
	AdminPort   string
	GinMode     string
	FrontendURL string
}

// EmailConfig holds Resend settings. An empty APIKey enables demo mode:
// emails are logged instead of sent.
type EmailConfig struct {
	APIKey string
	From   string
}

// PaymentsConfig holds Stripe settings and the plan price table (in cents)
type PaymentsConfig struct {
	SecretKey     string
	WebhookSecret string
	PriceBasic    int64
	PricePremium  int64
	PriceLifetime int64
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Database: DatabaseConfig{
			URL: os.Getenv("DATABASE_URL"),
		},
		AI: AIConfig{
			APIKey:         os.Getenv("GEMINI_API_KEY"),
			Model:          getEnvOrDefault("GEMINI_MODEL", "gemini-2.0-flash"),
			BaseURL:        os.Getenv("GEMINI_BASE_URL"),
			MaxRetries:     getEnvIntOrDefault("AI_MAX_RETRIES", 3),
			BaseDelay:      time.Duration(getEnvIntOrDefault("AI_BASE_DELAY_MS", 2000)) * time.Millisecond,
			RequestTimeout: time.Duration(getEnvIntOrDefault("AI_TIMEOUT_MS", 60000)) * time.Millisecond,
		},
		Server: ServerConfig{
			Port:        getEnvOrDefault("PORT", "8080"),
			AdminPort:   getEnvOrDefault("ADMIN_PORT", "8081"),
			GinMode:     getEnvOrDefault("GIN_MODE", "debug"),
			FrontendURL: getEnvOrDefault("FRONTEND_URL", "http://localhost:3000"),
		},
		Email: EmailConfig{
			APIKey: os.Getenv("RESEND_API_KEY"),
			From:   getEnvOrDefault("EMAIL_FROM", "Ikigai <onboarding@resend.dev>"),
		},
		Payments: PaymentsConfig{
			SecretKey:     os.Getenv("STRIPE_SECRET_KEY"),
			WebhookSecret: os.Getenv("STRIPE_WEBHOOK_SECRET"),
			PriceBasic:    int64(getEnvIntOrDefault("PRICE_BASIC", 599)),
			PricePremium:  int64(getEnvIntOrDefault("PRICE_PREMIUM", 1990)),
			PriceLifetime: int64(getEnvIntOrDefault("PRICE_LIFETIME", 4990)),
		},
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func validateConfig(config *Config) error {
	if config.Database.URL == "" {
		return errors.ConfigInvalid("DATABASE_URL is required")
	}
	if config.AI.APIKey == "" {
		return errors.ConfigInvalid("GEMINI_API_KEY is required")
	}
	if config.AI.MaxRetries < 1 {
		return errors.ConfigInvalid("AI_MAX_RETRIES must be at least 1")
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
