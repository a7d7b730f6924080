package config

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config carries everything read from the environment at startup.
type Config struct {
	HTTPAddr string
	LogFile  string

	// Storage selects the snapshot store: "memory" (default) or "postgres".
	Storage string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	DBTimezone string

	// Currency display settings, output formatting only.
	Currency string
	Locale   string
}

// Load reads the .env file (if present) and the environment.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found – relying on env vars")
	}

	return &Config{
		HTTPAddr: getEnv("HTTP_ADDR", "0.0.0.0:8080"),
		LogFile:  getEnv("LOG_FILE", "./logs/app.log"),
		Storage:  getEnv("STORAGE", "memory"),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", "password"),
		DBName:     getEnv("DB_NAME", "planner"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),
		DBTimezone: getEnv("DB_TIMEZONE", "UTC"),

		Currency: getEnv("CURRENCY", "ILS"),
		Locale:   getEnv("LOCALE", "he"),
	}
}

// DSN builds the Postgres data source name for the gorm snapshot store.
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort, c.DBSSLMode, c.DBTimezone,
	)
}

// getEnv reads an environment variable or returns the provided default
func getEnv(key, defaultValue string) string {
	if v, exists := os.LookupEnv(key); exists {
		return v
	}
	return defaultValue
}
