// Package config loads the application configuration from the environment
// into a single Config value that is handed to each component at startup.
package config

import (
	"fmt"
	"os"
	"strings"
)

type LogLevel string

const (
	Debug  LogLevel = "debug"
	Info   LogLevel = "info"
	Notice LogLevel = "notice"
	Warn   LogLevel = "warn"
	Error  LogLevel = "error"
)

// Config carries every tunable of the API. It is built once in main and
// passed by reference into constructors; nothing reads the environment after
// Load returns.
type Config struct {
	// DatabaseURL is a Postgres DSN. When empty the server falls back to a
	// local SQLite file under DBFolder.
	DatabaseURL string
	DBFolder    string

	Listen string
	Port   string

	JWTSecret   string
	JWTIssuer   string
	JWTAudience string

	ThingSpeakAPIKey  string
	ThingSpeakChannel string
	// FeedPollCron is a cron spec for background feed polling. Empty disables
	// the job; the manual /thinspeak trigger keeps working either way.
	FeedPollCron string

	LogLevel  LogLevel
	LogFolder string
	DebugMode bool
}

// Load reads the GN_* environment keys and applies defaults.
func Load() (*Config, error) {
	cfg := &Config{
		DatabaseURL:       os.Getenv("GN_DATABASE_URL"),
		DBFolder:          envOr("GN_DB_FOLDER", "data"),
		Listen:            os.Getenv("GN_LISTEN"),
		Port:              envOr("GN_PORT", "8080"),
		JWTSecret:         os.Getenv("GN_JWT_SECRET"),
		JWTIssuer:         envOr("GN_JWT_ISSUER", "gardennet"),
		JWTAudience:       envOr("GN_JWT_AUDIENCE", "gardennet"),
		ThingSpeakAPIKey:  os.Getenv("GN_THINGSPEAK_API_KEY"),
		ThingSpeakChannel: envOr("GN_THINGSPEAK_CHANNEL", "1877019"),
		FeedPollCron:      os.Getenv("GN_FEED_POLL_CRON"),
		LogLevel:          LogLevel(envOr("GN_LOG_LEVEL", string(Info))),
		LogFolder:         os.Getenv("GN_LOG_FOLDER"),
		DebugMode:         os.Getenv("GN_DEBUG") == "true",
	}
	if cfg.DebugMode {
		cfg.LogLevel = Debug
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("GN_JWT_SECRET is not set")
	}
	return cfg, nil
}

// DBPath returns the SQLite database file path used when no Postgres DSN is
// configured.
func (c *Config) DBPath() string {
	return fmt.Sprintf("%s/gardennet.db", strings.TrimRight(c.DBFolder, "/"))
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
