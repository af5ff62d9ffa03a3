// Package logging provides structured logging configuration using zerolog.
//
// The library logs through the global zerolog logger with a component
// field; hosts call Setup once to choose level and format.
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// LogLevel represents the logging level.
type LogLevel string

const (
	// LevelDebug logs debug messages and above.
	LevelDebug LogLevel = "debug"

	// LevelInfo logs info messages and above.
	LevelInfo LogLevel = "info"

	// LevelWarn logs warning messages and above.
	LevelWarn LogLevel = "warn"

	// LevelError logs error messages only.
	LevelError LogLevel = "error"
)

// Config holds logger configuration.
type Config struct {
	// Level is the minimum log level to output.
	Level LogLevel

	// Pretty enables human-readable console output (default: false for JSON).
	Pretty bool

	// Output is the writer to output logs to (default: os.Stderr).
	Output io.Writer
}

// DefaultConfig returns a default logger configuration.
func DefaultConfig() Config {
	return Config{
		Level:  LevelInfo,
		Pretty: false,
		Output: os.Stderr,
	}
}

// Setup configures the global zerolog logger.
func Setup(cfg Config) zerolog.Logger {
	// Set global log level
	level := parseLevel(cfg.Level)
	zerolog.SetGlobalLevel(level)

	// Configure output
	var output io.Writer = cfg.Output
	if cfg.Pretty {
		output = zerolog.ConsoleWriter{Out: cfg.Output}
	}

	// Create logger with timestamp
	logger := zerolog.New(output).With().Timestamp().Logger()

	// Set as global logger
	log.Logger = logger

	return logger
}

// parseLevel converts LogLevel to zerolog.Level.
func parseLevel(level LogLevel) zerolog.Level {
	switch strings.ToLower(string(level)) {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// Component names used by the packages of this module.
const (
	ComponentClient = "geo-client"
	ComponentBatch  = "batch"
	ComponentAuth   = "auth"
	ComponentConfig = "config"
)

// NewLogger creates a new logger with the given component name.
func NewLogger(component string) zerolog.Logger {
	return log.With().Str("component", component).Logger()
}

// Log Level Guidelines:
//
// Debug: Detailed information for debugging
//   - Request flow (operation, resolved index or collection)
//   - Place cache hits and stores (key, TTL)
//   - Credential source of a passed gate
//   - Batch dispatch (chunk count)
//
// Info: Normal operation events
//   - Completed batch operations (successes, errors, duration)
//
// Warn: Warning conditions that don't prevent operation
//   - Failed batch chunks (items recorded as APIConnectionError, or
//     SerializationError for local encode/decode failures)
//   - Duplicate geofence IDs in one request
//   - Place cache errors (fallback to the provider)
//
// Error: Reserved for the host application
//
// Context Fields:
//   - component: geo-client, batch, auth, config
//   - operation: provider operation (e.g. BatchPutGeofence)
//   - status: ok or the error kind
//   - index: resolved place index
//   - chunk: zero-based chunk number
//   - code: per-item error code of a failed chunk
//   - items, successes, errors: batch counts
//   - geofence_ids: offending geofence IDs
//   - key: place cache key
//   - ttl: place cache entry TTL
//   - cause: credential gate failure cause
