package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	Database DatabaseConfig
	Redis    RedisConfig
	Session  SessionConfig
	Server   ServerConfig
	Slack    SlackConfig
	AI       AIConfig
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string //nolint:gosec // G117: DB connection config
	DBName   string
	SSLMode  string
	MaxConns int
}

// RedisConfig holds Redis connection settings.
type RedisConfig struct {
	Addr     string
	Password string //nolint:gosec // G117: Redis connection config
	DB       int
}

// SessionConfig holds session cookie settings.
type SessionConfig struct {
	Secret string //nolint:gosec // G117: session signing secret config
	TTL    time.Duration
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Addr         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	CORSOrigins  []string
}

// SlackConfig holds Slack alerting settings. Both fields must be set for
// alerts to be delivered; otherwise alerting is disabled.
type SlackConfig struct {
	BotToken string
	Channel  string
}

// AIConfig holds triage and document analysis settings. An empty API key
// disables the AI collaborators.
type AIConfig struct {
	GeminiAPIKey string
	Model        string
}

// Load reads configuration from environment variables. A .env file in the
// working directory is loaded first if present. Defaults are safe for local
// development only.
func Load() (*Config, error) {
	_ = godotenv.Load()

	dbPort, err := getEnvInt("APTY_DB_PORT", 5432)
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	dbMaxConns, err := getEnvInt("APTY_DB_MAX_CONNS", 25)
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	redisDB, err := getEnvInt("APTY_REDIS_DB", 0)
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	sessionTTL, err := getEnvDuration("APTY_SESSION_TTL", 24*time.Hour)
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	readTimeout, err := getEnvDuration("APTY_SERVER_READ_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	writeTimeout, err := getEnvDuration("APTY_SERVER_WRITE_TIMEOUT", 30*time.Second)
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	corsOrigins := getEnvList("APTY_CORS_ORIGINS", []string{"http://localhost:5173"})

	cfg := &Config{
		Database: DatabaseConfig{
			Host:     getEnv("APTY_DB_HOST", "localhost"),
			Port:     dbPort,
			User:     getEnv("APTY_DB_USER", "apty"),
			Password: getEnv("APTY_DB_PASSWORD", ""),
			DBName:   getEnv("APTY_DB_NAME", "apty_dev"),
			SSLMode:  getEnv("APTY_DB_SSLMODE", "disable"),
			MaxConns: dbMaxConns,
		},
		Redis: RedisConfig{
			Addr:     getEnv("APTY_REDIS_ADDR", "localhost:6379"),
			Password: getEnv("APTY_REDIS_PASSWORD", ""),
			DB:       redisDB,
		},
		Session: SessionConfig{
			Secret: getEnv("APTY_SESSION_SECRET", ""),
			TTL:    sessionTTL,
		},
		Server: ServerConfig{
			Addr:         getEnv("APTY_SERVER_ADDR", ":8080"),
			ReadTimeout:  readTimeout,
			WriteTimeout: writeTimeout,
			CORSOrigins:  corsOrigins,
		},
		Slack: SlackConfig{
			BotToken: getEnv("APTY_SLACK_BOT_TOKEN", ""),
			Channel:  getEnv("APTY_SLACK_CHANNEL", ""),
		},
		AI: AIConfig{
			GeminiAPIKey: getEnv("APTY_GEMINI_API_KEY", ""),
			Model:        getEnv("APTY_GEMINI_MODEL", ""),
		},
	}

	err = cfg.validate()
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	return cfg, nil
}

// validate checks required fields and value bounds.
func (c *Config) validate() error {
	// Session secret is required (no insecure default).
	if c.Session.Secret == "" {
		return errors.New("APTY_SESSION_SECRET is required")
	}
	if len(c.Session.Secret) < 32 {
		return errors.New("APTY_SESSION_SECRET must be at least 32 characters")
	}

	if c.Database.SSLMode == "disable" {
		log.Warn().Msg("APTY_DB_SSLMODE=disable is insecure for production; set to 'require' or 'verify-full'")
	}

	// Bounds checks.
	if c.Database.Port < 1 || c.Database.Port > 65535 {
		return fmt.Errorf("APTY_DB_PORT must be 1-65535, got %d", c.Database.Port)
	}
	if c.Database.MaxConns < 1 {
		return fmt.Errorf("APTY_DB_MAX_CONNS must be >= 1, got %d", c.Database.MaxConns)
	}
	if c.Session.TTL <= 0 {
		return fmt.Errorf("APTY_SESSION_TTL must be positive, got %s", c.Session.TTL)
	}
	if c.Server.ReadTimeout <= 0 {
		return fmt.Errorf("APTY_SERVER_READ_TIMEOUT must be positive, got %s", c.Server.ReadTimeout)
	}
	if c.Server.WriteTimeout <= 0 {
		return fmt.Errorf("APTY_SERVER_WRITE_TIMEOUT must be positive, got %s", c.Server.WriteTimeout)
	}

	return nil
}

// DSN returns the PostgreSQL connection string.
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("parsing %s=%q as int: %w", key, v, err)
	}
	return n, nil
}

func getEnvDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("parsing %s=%q as duration: %w", key, v, err)
	}
	return d, nil
}

func getEnvList(key string, fallback []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parts := strings.Split(v, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}
