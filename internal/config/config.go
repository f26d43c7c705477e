package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/raphaelgruber/rendercheck/internal/models"
	"github.com/raphaelgruber/rendercheck/internal/profile"
	"github.com/raphaelgruber/rendercheck/internal/validator"
)

// Config holds all configuration values.
type Config struct {
	// Logging
	LogFile  string
	LogLevel slog.Level

	// Normalization policy
	AssumeStaticUI bool

	// Validation policy
	MaxClientBoundaries int
	ClientShare         float64

	// Servers
	ServerPort string

	// Audit
	AuditWorkers int
}

// Load reads configuration from environment variables.
func Load() Config {
	return Config{
		LogFile:  getEnv("RENDERCHECK_LOG_FILE", "/tmp/rendercheck.log"),
		LogLevel: parseLogLevel(getEnv("RENDERCHECK_LOG_LEVEL", "INFO")),

		AssumeStaticUI: getEnv("RENDERCHECK_ASSUME_STATIC_UI", "false") == "true",

		MaxClientBoundaries: getEnvInt("RENDERCHECK_MAX_CLIENT_BOUNDARIES", validator.DefaultMaxClientBoundaries),
		ClientShare:         getEnvFloat("RENDERCHECK_CLIENT_SHARE", validator.DefaultClientShare),

		ServerPort: getEnv("RENDERCHECK_SERVER_PORT", "8585"),

		AuditWorkers: getEnvInt("RENDERCHECK_AUDIT_WORKERS", 4),
	}
}

// ProfilePolicy returns the normalization policy described by the config.
func (c Config) ProfilePolicy() profile.Policy {
	var p profile.Policy
	if c.AssumeStaticUI {
		p.DefaultInteractivity = models.Ptr(models.InteractivityNone)
	}
	return p
}

// ValidationPolicy returns the validation policy described by the config.
func (c Config) ValidationPolicy() validator.Policy {
	return validator.Policy{
		MaxClientBoundaries: c.MaxClientBoundaries,
		ClientShare:         c.ClientShare,
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	n, err := strconv.Atoi(getEnv(key, ""))
	if err != nil || n < 0 {
		return defaultVal
	}
	return n
}

func getEnvFloat(key string, defaultVal float64) float64 {
	f, err := strconv.ParseFloat(getEnv(key, ""), 64)
	if err != nil || f < 0 || f > 1 {
		return defaultVal
	}
	return f
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToUpper(s) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
