package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// Terminal editor
	SheetPath string
	SaveDelay time.Duration
	LogFile   string

	// Mock API server
	Port        string
	CORSOrigins []string
	BotToken    string
	BotPassword string
	Database    DatabaseConfig
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (ignore error if not exists)
	_ = godotenv.Load()

	saveDelay, err := time.ParseDuration(getEnv("SAVE_DELAY", "500ms"))
	if err != nil {
		return nil, fmt.Errorf("SAVE_DELAY is invalid: %w", err)
	}
	if saveDelay <= 0 {
		return nil, fmt.Errorf("SAVE_DELAY must be positive")
	}

	cfg := &Config{
		SheetPath:   getEnv("WORDSHEET_DB", "wordsheet.db"),
		SaveDelay:   saveDelay,
		LogFile:     getEnv("LOG_FILE", "wordsheet.log"),
		Port:        getEnv("PORT", "8080"),
		CORSOrigins: splitList(getEnv("CORS_ORIGINS", "http://localhost:3000")),
		BotToken:    os.Getenv("BOT_TOKEN"),
		BotPassword: os.Getenv("BOT_PASSWORD"),
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			Name:     getEnv("DB_NAME", "wordsheet"),
			User:     getEnv("DB_USER", "wordsheet"),
			Password: os.Getenv("DB_PASSWORD"),
		},
	}

	// The bot is optional but never runs without a password
	if cfg.BotToken != "" && cfg.BotPassword == "" {
		return nil, fmt.Errorf("BOT_PASSWORD is required when BOT_TOKEN is set")
	}

	return cfg, nil
}

// BotEnabled reports whether the Telegram bot should start
func (c *Config) BotEnabled() bool {
	return c.BotToken != ""
}

// UsePostgres reports whether the API is backed by PostgreSQL
func (c *Config) UsePostgres() bool {
	return c.Database.Password != ""
}

// DSN returns PostgreSQL connection string
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
