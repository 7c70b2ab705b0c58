package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config is the authority's complete runtime configuration. Database and
// admin-team configuration are required; NATS is optional (a nil
// connection degrades audit fan-out to pure pass-through).
type Config struct {
	Database DatabaseConfig
	Admin    AdminConfig
	NATS     NATSConfig
	App      AppConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// AdminConfig names the external admin-team the Admin Gate (C7) consults.
// An empty TeamID makes every admin check fail closed.
type AdminConfig struct {
	TeamID string
}

// NATSConfig configures the optional audit event bus. An empty URL
// leaves the bus disabled.
type NATSConfig struct {
	URL string
}

// AppConfig holds application configuration.
type AppConfig struct {
	Port     int
	Env      string
	LogLevel string
}

// Load reads configuration from the environment, falling back to a
// local .env file when present. A missing .env file is not an error —
// it is absent in container deployments where the environment is
// injected directly.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}

	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}
	cfg.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "attendance_payroll"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	cfg.Admin = AdminConfig{
		TeamID: getEnv("ADMIN_TEAM_ID", ""),
	}

	cfg.NATS = NATSConfig{
		URL: getEnv("NATS_URL", ""),
	}

	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}
	cfg.App = AppConfig{
		Port:     appPort,
		Env:      getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Validate enforces the two hard requirements: a database name and a
// configured admin team. It does not connect to the database. Everything
// else has a usable default.
func (c *Config) Validate() error {
	if c.Database.Name == "" {
		return fmt.Errorf("DB_NAME is required")
	}
	if c.Admin.TeamID == "" {
		return fmt.Errorf("ADMIN_TEAM_ID is required")
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string.
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
