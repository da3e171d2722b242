// Package config loads server configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all runtime settings for the server.
type Config struct {
	Port            string
	DBPath          string
	TemplateDir     string
	StaticDir       string
	SecureCookies   bool
	SessionDuration time.Duration

	// Optional account seeded at startup when both are set.
	AdminUser     string
	AdminPassword string
}

// Load reads configuration from the environment, applying defaults.
// A .env file in the working directory is loaded first if present.
func Load() *Config {
	// Missing .env is not an error; real env vars always win.
	_ = godotenv.Load()

	return &Config{
		Port:            getEnv("PORT", "8080"),
		DBPath:          getEnv("DB_PATH", "expenses.db"),
		TemplateDir:     getEnv("TEMPLATE_DIR", "web/templates"),
		StaticDir:       getEnv("STATIC_DIR", "web/static"),
		SecureCookies:   getEnvBool("SECURE_COOKIES", false),
		SessionDuration: getEnvDuration("SESSION_DURATION", 30*24*time.Hour),
		AdminUser:       getEnv("ADMIN_USER", ""),
		AdminPassword:   getEnv("ADMIN_PASSWORD", ""),
	}
}

// Validate returns an error describing the first invalid setting.
func (c *Config) Validate() error {
	if port, err := strconv.Atoi(c.Port); err != nil {
		return fmt.Errorf("invalid port %q: must be a number", c.Port)
	} else if port < 1 || port > 65535 {
		return fmt.Errorf("invalid port %d: must be between 1 and 65535", port)
	}
	if c.DBPath == "" {
		return fmt.Errorf("database path cannot be empty")
	}
	if c.SessionDuration < time.Minute {
		return fmt.Errorf("invalid session duration %v: must be at least 1 minute", c.SessionDuration)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
