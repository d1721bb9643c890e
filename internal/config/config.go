// Package config reads the command-line tool's settings from the environment.
package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/gogpu/mortier"
)

// Config holds the process-wide settings of the mortier tool.
type Config struct {
	Limits mortier.Limits
	// Patterns is the path of a JSON pattern library or SQLite database.
	// Empty means the built-in library.
	Patterns string
	LogLevel slog.Level
}

// Load reads the configuration from MORTIER_* environment variables,
// falling back to defaults for unset or malformed values.
func Load() *Config {
	d := mortier.DefaultLimits()
	return &Config{
		Limits: mortier.Limits{
			MaxTiles:           getEnvAsInt("MORTIER_MAX_TILES", d.MaxTiles),
			MaxPoints:          getEnvAsInt("MORTIER_MAX_POINTS", d.MaxPoints),
			MaxHyperbolicDepth: getEnvAsInt("MORTIER_MAX_HYPERBOLIC_DEPTH", d.MaxHyperbolicDepth),
			MaxRefinements:     getEnvAsInt("MORTIER_MAX_REFINEMENTS", d.MaxRefinements),
			MaxPenroseDepth:    getEnvAsInt("MORTIER_MAX_PENROSE_DEPTH", d.MaxPenroseDepth),
			MaxHatchPrimitives: getEnvAsInt("MORTIER_MAX_HATCH_PRIMITIVES", d.MaxHatchPrimitives),
		},
		Patterns: getEnv("MORTIER_PATTERNS", ""),
		LogLevel: getEnvAsLevel("MORTIER_LOG_LEVEL", slog.LevelWarn),
	}
}

func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil && intVal > 0 {
			return intVal
		}
	}
	return defaultVal
}

func getEnvAsLevel(key string, defaultVal slog.Level) slog.Level {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultVal
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(value)); err != nil {
		return defaultVal
	}
	return level
}
