package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config holds all environment-sourced settings.
type Config struct {
	// DatabaseURL is the PostgreSQL connection string used to list known
	// user ids. Optional; when empty the UI falls back to free-form input.
	DatabaseURL string

	// APIBaseURL is the base URL of the recommendation backend.
	APIBaseURL string

	// TMDBImageBase is prefixed to relative poster paths.
	TMDBImageBase string

	// Port is the HTTP listen port.
	Port string
}

// Load reads configuration from the environment, after loading a .env
// file if one is present.
func Load() *Config {
	// Missing .env is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	return &Config{
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		APIBaseURL:    getEnv("API_BASE_URL", "http://localhost:8000"),
		TMDBImageBase: getEnv("TMDB_IMAGE_BASE", "https://image.tmdb.org/t/p/w342"),
		Port:          getEnv("PORT", "8080"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
