package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	// Server
	Port string
	Env  string

	// Auth
	CodeExpiry  time.Duration
	TokenExpiry time.Duration

	// Mail (verification code delivery)
	MailHost     string
	MailPort     string
	MailUsername string
	MailPassword string
	MailFrom     string
	MailFromName string

	// LLM (natural-language transaction parsing)
	OpenAIAPIKey  string
	OpenAIModel   string
	OpenAIBaseURL string
}

var appConfig *Config

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if not already loaded
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	config := &Config{
		Port: getEnv("PORT", "8080"),
		Env:  getEnv("ENV", "development"),

		MailHost:     getEnv("MAIL_HOST", "localhost"),
		MailPort:     getEnv("MAIL_PORT", "587"),
		MailUsername: getEnv("MAIL_USERNAME", ""),
		MailPassword: getEnv("MAIL_PASSWORD", ""),
		MailFrom:     getEnv("MAIL_FROM_ADDRESS", "noreply@moneynote.app"),
		MailFromName: getEnv("MAIL_FROM_NAME", "MoneyNote"),

		OpenAIAPIKey:  getEnv("OPENAI_API_KEY", ""),
		OpenAIModel:   getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		OpenAIBaseURL: getEnv("OPENAI_BASE_URL", ""),
	}

	config.CodeExpiry = getEnvDuration("CODE_EXPIRES_IN", 10*time.Minute)
	config.TokenExpiry = getEnvDuration("TOKEN_EXPIRES_IN", 30*24*time.Hour)

	appConfig = config
	return config, nil
}

// Get returns the application configuration
func Get() *Config {
	if appConfig == nil {
		var err error
		appConfig, err = Load()
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
	}
	return appConfig
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvDuration parses a duration environment variable, falling back to the
// default on absence or parse failure.
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		log.Printf("Warning: invalid %s value '%s', falling back to %s\n", key, raw, defaultValue)
		return defaultValue
	}
	return d
}
