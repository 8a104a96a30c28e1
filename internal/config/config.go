package config

import (
	"log"
	"os"
	"strconv"
)

// Config holds application configuration values.
type Config struct {
	DatabaseDSN string
	HTTPPort    string
	SeedSample  bool
}

// Load reads configuration from environment variables with reasonable defaults.
func Load() Config {
	dsn := os.Getenv("DATABASE_DSN")
	if dsn == "" {
		dsn = "business_data.db"
	}

	port := os.Getenv("HTTP_PORT")
	if port == "" {
		port = "8080"
	}

	// Validate that port is numeric.
	if _, err := strconv.Atoi(port); err != nil {
		log.Printf("invalid HTTP_PORT value %q, defaulting to 8080", port)
		port = "8080"
	}

	seed := true
	if raw := os.Getenv("SEED_SAMPLE_DATA"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			log.Printf("invalid SEED_SAMPLE_DATA value %q, defaulting to true", raw)
		} else {
			seed = parsed
		}
	}

	return Config{DatabaseDSN: dsn, HTTPPort: port, SeedSample: seed}
}
