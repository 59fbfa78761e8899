// Package config loads and validates process configuration from the
// environment, with optional .env file support.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/fredrickmpepo89-ctrl/vicoba-unified-platform/internal/models"
)

// Config holds all process configuration.
type Config struct {
	// HTTP server
	Port string

	// Database
	DBPath string

	// Auth
	JWTSecret     string
	TokenDuration time.Duration

	// Default admin seeded on first run, original platform behavior.
	// Seeding is skipped when AdminPhone is empty.
	AdminPhone string
	AdminPIN   string
	AdminGroup string
}

// Load reads configuration from the environment. A .env file in the working
// directory is applied first if present.
func Load() *Config {
	_ = godotenv.Load() // missing .env is fine

	return &Config{
		Port:          getEnv("PORT", "8080"),
		DBPath:        getEnv("DB_PATH", "./data/vicoba.db"),
		JWTSecret:     getEnv("JWT_SECRET", ""),
		TokenDuration: getEnvDuration("TOKEN_DURATION", 24*time.Hour),
		AdminPhone:    getEnv("ADMIN_PHONE", "255123456789"),
		AdminPIN:      getEnv("ADMIN_PIN", "1234"),
		AdminGroup:    getEnv("ADMIN_GROUP", "TEST_GROUP"),
	}
}

// Validate returns an error describing every invalid setting.
func (c *Config) Validate() error {
	var problems []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		problems = append(problems, fmt.Sprintf("invalid port %q: must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		problems = append(problems, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	if c.DBPath == "" {
		problems = append(problems, "DB_PATH cannot be empty")
	}
	if len(c.JWTSecret) < 32 {
		problems = append(problems, "JWT_SECRET must be at least 32 bytes")
	}
	if c.TokenDuration <= 0 {
		problems = append(problems, "TOKEN_DURATION must be positive")
	}

	if c.AdminPhone != "" {
		if !models.ValidPhone(c.AdminPhone) {
			problems = append(problems, fmt.Sprintf("invalid ADMIN_PHONE %q", c.AdminPhone))
		}
		if !models.ValidPIN(c.AdminPIN) {
			problems = append(problems, "invalid ADMIN_PIN: must be 4 digits")
		}
		if !models.ValidGroupID(c.AdminGroup) {
			problems = append(problems, fmt.Sprintf("invalid ADMIN_GROUP %q", c.AdminGroup))
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %v", problems)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return d
}
