package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds every runtime setting of the client. Values come from the
// environment, optionally seeded from a .env file.
type Config struct {
	Env         string        // "dev" or "prod", selects logger config
	APIBaseURL  string        // e.g. http://localhost:8080/api/v1
	HTTPTimeout time.Duration // per-request timeout of the transport
	TokenFile   string        // where the token pair is persisted

	// Optional fixed coordinates for search when no other provider is wired.
	Latitude  *float64
	Longitude *float64
}

func Load() Config {
	_ = godotenv.Load() // .env is optional

	return Config{
		Env:         getenv("APP_ENV", "dev"),
		APIBaseURL:  getenv("FINDLY_API_URL", "http://localhost:8080/api/v1"),
		HTTPTimeout: time.Duration(getenvInt("FINDLY_HTTP_TIMEOUT_SECONDS", 15)) * time.Second,
		TokenFile:   getenv("FINDLY_TOKEN_FILE", defaultTokenFile()),
		Latitude:    getenvFloat("FINDLY_LAT"),
		Longitude:   getenvFloat("FINDLY_LNG"),
	}
}

func defaultTokenFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".findly-tokens.json"
	}
	return home + "/.findly/tokens.json"
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getenvFloat(key string) *float64 {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return nil
	}
	return &f
}
