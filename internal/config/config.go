// Package config provides configuration loading from environment variables.
package config

import (
	"os"
	"strconv"

	"github.com/usestring/schemamap/pkg/source"
)

// Limit defaults
const (
	DefaultMaxCollectionsValue      = 64
	DefaultDecodeWorkersValue       = 8
	DefaultMaxDocumentsPerCallValue = 1000
	DefaultMaxDocumentBytesValue    = source.DefaultMaxBytes
)

// Config holds all configuration for the CLI and the MCP server.
type Config struct {
	MaxCollections      int   // SCHEMAMAP_MAX_COLLECTIONS, default 64
	MaxDocumentBytes    int64 // SCHEMAMAP_MAX_DOCUMENT_BYTES, default 4_000_000
	DecodeWorkers       int   // SCHEMAMAP_DECODE_WORKERS, default 8
	MaxDocumentsPerCall int   // SCHEMAMAP_MAX_DOCUMENTS_PER_CALL, default 1000

	// Decoding defaults, overridable per call
	ParseDates bool // SCHEMAMAP_PARSE_DATES, default false
	BigInts    bool // SCHEMAMAP_BIG_INTS, default false

	// Logging configuration
	LogLevel      string // LOG_LEVEL, default "info"
	LogFormat     string // LOG_FORMAT, default "text"
	LogFile       string // LOG_FILE, default "" (stderr only)
	LogMaxSizeMB  int    // LOG_MAX_SIZE_MB, default 10
	LogMaxBackups int    // LOG_MAX_BACKUPS, default 5
	LogMaxAgeDays int    // LOG_MAX_AGE_DAYS, default 28
	LogCompress   bool   // LOG_COMPRESS, default true
}

// Load reads configuration from environment variables with sensible defaults.
func Load() *Config {
	return &Config{
		MaxCollections:      getEnvInt("SCHEMAMAP_MAX_COLLECTIONS", DefaultMaxCollectionsValue),
		MaxDocumentBytes:    int64(getEnvInt("SCHEMAMAP_MAX_DOCUMENT_BYTES", DefaultMaxDocumentBytesValue)),
		DecodeWorkers:       getEnvInt("SCHEMAMAP_DECODE_WORKERS", DefaultDecodeWorkersValue),
		MaxDocumentsPerCall: getEnvInt("SCHEMAMAP_MAX_DOCUMENTS_PER_CALL", DefaultMaxDocumentsPerCallValue),

		ParseDates: getEnvBool("SCHEMAMAP_PARSE_DATES", false),
		BigInts:    getEnvBool("SCHEMAMAP_BIG_INTS", false),

		LogLevel:      getEnvString("LOG_LEVEL", "info"),
		LogFormat:     getEnvString("LOG_FORMAT", "text"),
		LogFile:       getEnvString("LOG_FILE", ""),
		LogMaxSizeMB:  getEnvInt("LOG_MAX_SIZE_MB", 10),
		LogMaxBackups: getEnvInt("LOG_MAX_BACKUPS", 5),
		LogMaxAgeDays: getEnvInt("LOG_MAX_AGE_DAYS", 28),
		LogCompress:   getEnvBool("LOG_COMPRESS", true),
	}
}

// SourceOptions returns decoder options seeded from the configured defaults.
func (c *Config) SourceOptions() source.Options {
	return source.Options{
		Format:     source.Auto,
		MaxBytes:   c.MaxDocumentBytes,
		BigInts:    c.BigInts,
		ParseDates: c.ParseDates,
	}
}

func getEnvBool(key string, defaultVal bool) bool {
	if v := os.Getenv(key); v != "" {
		switch v {
		case "1", "true", "yes", "on":
			return true
		case "0", "false", "no", "off":
			return false
		}
	}
	return defaultVal
}

func getEnvString(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}
