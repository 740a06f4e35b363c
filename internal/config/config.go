// Package config loads and validates application configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/pkordes/dining-scout/internal/domain"
	"github.com/pkordes/dining-scout/internal/links"
)

// Config holds all configuration values for the API server and the CLI.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Defaults to ["http://localhost:5173"] (Vite dev server).
	// Set CORS_ORIGINS to a comma-separated list to override.
	CORSOrigins []string

	// DataSource locates the venue rows: a .csv, .xlsx or .yaml file path,
	// a postgres:// URL or a sqlite: path. Required.
	DataSource string

	Links

	// MaxBodyBytes caps request body size. Defaults to 1 MiB.
	MaxBodyBytes int64
}

// Links holds the settings that shape venue links and bookings. The CLI
// reads them through LoadLinks, which does not require DATA_SOURCE.
type Links struct {
	// DiningBaseURL is the dining site that menu and reservation links point at.
	DiningBaseURL string

	// ExternalBookingDomain gates which external booking URLs are shown.
	ExternalBookingDomain string

	// DefaultPartySize is used when a request does not name a party size.
	// Defaults to 2.
	DefaultPartySize int
}

// LoadLinks reads the link and booking settings. Like Load it reads a .env
// file first.
func LoadLinks() (Links, error) {
	_ = godotenv.Load()
	return loadLinks()
}

func loadLinks() (Links, error) {
	l := Links{
		DiningBaseURL:         getEnv("DINING_BASE_URL", links.DefaultBaseURL),
		ExternalBookingDomain: getEnv("EXTERNAL_BOOKING_DOMAIN", links.DefaultExternalDomain),
	}

	size, err := getEnvInt("DEFAULT_PARTY_SIZE", 2)
	if err != nil {
		return Links{}, err
	}
	if size < domain.MinPartySize || size > domain.MaxPartySize {
		return Links{}, fmt.Errorf("DEFAULT_PARTY_SIZE must be between %d and %d, got %d",
			domain.MinPartySize, domain.MaxPartySize, size)
	}
	l.DefaultPartySize = size
	return l, nil
}

// Load reads configuration from environment variables and returns a Config.
// A .env file in the working directory, if present, is read first; variables
// already set in the environment take precedence over it.
// Returns an error listing any required variables that are not set, or the
// first variable whose value cannot be used.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Port:        getEnv("PORT", "8080"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		CORSOrigins: splitCSV(getEnv("CORS_ORIGINS", "http://localhost:5173")),
	}

	var missing []string

	cfg.DataSource = strings.TrimSpace(os.Getenv("DATA_SOURCE"))
	if cfg.DataSource == "" {
		missing = append(missing, "DATA_SOURCE")
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("required environment variables not set: %s", strings.Join(missing, ", "))
	}

	l, err := loadLinks()
	if err != nil {
		return Config{}, err
	}
	cfg.Links = l

	maxBody, err := getEnvInt("MAX_BODY_BYTES", 1<<20)
	if err != nil {
		return Config{}, err
	}
	if maxBody <= 0 {
		return Config{}, fmt.Errorf("MAX_BODY_BYTES must be positive, got %d", maxBody)
	}
	cfg.MaxBodyBytes = int64(maxBody)

	return cfg, nil
}

// getEnv returns the value of the environment variable named by key,
// or fallback if the variable is not set or is empty.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// getEnvInt is getEnv for integers. A set but non-numeric value is an error.
func getEnvInt(key string, fallback int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer, got %q", key, v)
	}
	return n, nil
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
