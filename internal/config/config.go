package config

import (
	"os"
	"strconv"

	"media-inspector/internal/logging"
)

const (
	// DefaultHashBufferSize is the hasher read buffer (8 MiB).
	DefaultHashBufferSize = 8 * 1024 * 1024

	// DefaultMemoryRatio is the share of MEMORY_LIMIT handed to the Go heap;
	// the rest is left for libvips and ffmpeg.
	DefaultMemoryRatio = 0.85
)

// Config holds all library configuration
type Config struct {
	HashBufferSize int

	FFmpegPath  string
	FFprobePath string

	VipsConcurrency  int
	VipsMaxCacheMem  int
	VipsMaxCacheSize int

	// MemoryLimit is the container memory limit in bytes, 0 if unknown.
	MemoryLimit int64
	MemoryRatio float64

	MetricsEnabled bool
}

// Default returns the configuration used when no environment overrides are present.
func Default() Config {
	return Config{
		HashBufferSize:   DefaultHashBufferSize,
		FFmpegPath:       "ffmpeg",
		FFprobePath:      "ffprobe",
		VipsConcurrency:  1,
		VipsMaxCacheMem:  50 * 1024 * 1024,
		VipsMaxCacheSize: 100,
		MemoryRatio:      DefaultMemoryRatio,
		MetricsEnabled:   true,
	}
}

// Load reads configuration from environment variables on top of Default.
// Invalid values are logged and replaced by their defaults.
func Load() Config {
	def := Default()

	cfg := Config{
		HashBufferSize:   getEnvInt("HASH_BUFFER_SIZE", def.HashBufferSize),
		FFmpegPath:       getEnv("FFMPEG_PATH", def.FFmpegPath),
		FFprobePath:      getEnv("FFPROBE_PATH", def.FFprobePath),
		VipsConcurrency:  getEnvInt("VIPS_CONCURRENCY", def.VipsConcurrency),
		VipsMaxCacheMem:  getEnvInt("VIPS_MAX_CACHE_MEM", def.VipsMaxCacheMem),
		VipsMaxCacheSize: getEnvInt("VIPS_MAX_CACHE_SIZE", def.VipsMaxCacheSize),
		MemoryLimit:      getEnvInt64("MEMORY_LIMIT", 0),
		MemoryRatio:      getEnvRatio("MEMORY_RATIO", def.MemoryRatio),
		MetricsEnabled:   getEnvBool("METRICS_ENABLED", def.MetricsEnabled),
	}

	logging.Debug("Configuration:")
	logging.Debug("  HASH_BUFFER_SIZE:    %d", cfg.HashBufferSize)
	logging.Debug("  FFMPEG_PATH:         %s", cfg.FFmpegPath)
	logging.Debug("  FFPROBE_PATH:        %s", cfg.FFprobePath)
	logging.Debug("  VIPS_CONCURRENCY:    %d", cfg.VipsConcurrency)
	logging.Debug("  VIPS_MAX_CACHE_MEM:  %d", cfg.VipsMaxCacheMem)
	logging.Debug("  VIPS_MAX_CACHE_SIZE: %d", cfg.VipsMaxCacheSize)
	logging.Debug("  MEMORY_LIMIT:        %d", cfg.MemoryLimit)
	logging.Debug("  MEMORY_RATIO:        %.2f", cfg.MemoryRatio)
	logging.Debug("  METRICS_ENABLED:     %v", cfg.MetricsEnabled)
	logging.Debug("  LOG_LEVEL:           %s", logging.GetLevel())

	return cfg
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		logging.Warn("Invalid boolean value for %s: %q, using default: %v", key, value, defaultValue)
		return defaultValue
	}
	return parsed
}

// getEnvInt parses a positive integer.
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed <= 0 {
		logging.Warn("Invalid positive integer for %s: %q, using default: %d", key, value, defaultValue)
		return defaultValue
	}
	return parsed
}

func getEnvInt64(key string, defaultValue int64) int64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseInt(value, 10, 64)
	if err != nil || parsed < 0 {
		logging.Warn("Invalid byte count for %s: %q, using default: %d", key, value, defaultValue)
		return defaultValue
	}
	return parsed
}

// getEnvRatio parses a float in (0, 1].
func getEnvRatio(key string, defaultValue float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil || parsed <= 0 || parsed > 1.0 {
		logging.Warn("%s %q out of range (0.0-1.0), using default %.2f", key, value, defaultValue)
		return defaultValue
	}
	return parsed
}
