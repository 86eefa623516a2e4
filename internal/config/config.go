// Package config loads census configuration from environment variables.
// In development a .env file in the working directory is honored.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all runtime configuration for the census tool.
type Config struct {
	Env               string
	DBPath            string
	OrganizationsFile string
	PopulationFile    string
	NodeID            int64
}

// Load loads configuration from environment variables.
// In development it first loads a .env file if one exists; real
// environment variables always take precedence over .env entries.
func Load() (Config, error) {
	if getEnv("CENSUS_ENV", "development") == "development" {
		_ = godotenv.Load(".env")
	}

	dbPath := getEnv("CENSUS_DB_PATH", "")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Config{}, fmt.Errorf("failed to get home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".census", "census.db")
	}

	cfg := Config{
		Env:               getEnv("CENSUS_ENV", "development"),
		DBPath:            dbPath,
		OrganizationsFile: getEnv("CENSUS_ORGANIZATIONS_FILE", "static/resources/companies.json"),
		PopulationFile:    getEnv("CENSUS_POPULATION_FILE", "static/resources/people.json"),
		NodeID:            getEnvInt64("CENSUS_NODE_ID", 1),
	}

	return cfg, nil
}

// IsProduction reports whether the tool runs with production settings.
func (c Config) IsProduction() bool {
	return c.Env == "production"
}

// IsDevelopment reports whether the tool runs with development settings.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt64(key string, fallback int64) int64 {
	if value, ok := os.LookupEnv(key); ok {
		if i, err := strconv.ParseInt(value, 10, 64); err == nil {
			return i
		}
	}
	return fallback
}
