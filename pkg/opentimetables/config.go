package opentimetables

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Default service parameters. These target the Swansea University deployment
// of OpenTimetables and should work unchanged for all of its courses; every
// value can be overridden through the environment.
const (
	DefaultBaseURL       = "https://opentimetables.swan.ac.uk/"
	DefaultAuthorization = "basic kR1n1RXYhF"
	DefaultCategoryType  = "525fe79b-73c3-4b5c-8186-83c652b3adcc"
	DefaultCacheFile     = "modules-cache.json"
	DefaultTimezone      = "Europe/London"
)

// Represents the externally configurable values of a run. One Config is
// created at startup and handed to every component that needs it.
type Config struct {
	// Root URL of the service, always with a trailing slash.
	BaseURL string
	// Fixed bearer-style value sent as the Authorization header.
	Authorization string
	// Category type UUID of the institution. Module searches and event
	// queries are both scoped to it.
	CategoryType string
	// Path of the flat module identifier cache file.
	CacheFile string
	// Timezone the service reports wall-clock event times in.
	Location *time.Location
}

// Creates the run configuration from the environment. A .env file in the
// working directory is loaded first when present, after which individual
// OPENTIMETABLES_* variables override the built-in defaults.
func ConfigFromEnv() (Config, error) {
	godotenv.Load() // a .env file is optional; the defaults cover a missing one

	cfg := Config{
		BaseURL:       envOr("OPENTIMETABLES_BASE_URL", DefaultBaseURL),
		Authorization: envOr("OPENTIMETABLES_AUTHORIZATION", DefaultAuthorization),
		CategoryType:  envOr("OPENTIMETABLES_CATEGORY_TYPE", DefaultCategoryType),
		CacheFile:     envOr("OPENTIMETABLES_CACHE_FILE", DefaultCacheFile),
	}
	if !strings.HasSuffix(cfg.BaseURL, "/") {
		cfg.BaseURL += "/"
	}

	location, err := time.LoadLocation(envOr("OPENTIMETABLES_TIMEZONE", DefaultTimezone))
	if err != nil {
		return Config{}, fmt.Errorf("could not load service timezone: %w", err)
	}
	cfg.Location = location

	return cfg, nil
}

// Returns the value of an environment variable, or a fallback if it is unset
// or empty.
func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
