package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Load reads the .env file specified by GRIDMIND_ENV (or .env by default),
// then loads the corresponding .secret file if it exists.
// All config is flat env vars read via os.Getenv after loading.
// Missing files are fine; a file that exists but cannot be read or parsed is
// an error.
func Load() error {
	envFile := os.Getenv("GRIDMIND_ENV")
	if envFile == "" {
		envFile = ".env"
	}

	for _, f := range []string{envFile, envFile + ".secret"} {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

func ServerPort() int {
	port, err := strconv.Atoi(os.Getenv("SERVER_PORT"))
	if err != nil {
		return 8080
	}
	return port
}

func ServerAddr() string {
	return fmt.Sprintf(":%d", ServerPort())
}

// APIKey is the bearer token required on /v1 routes.
// Empty disables authentication.
func APIKey() string {
	return os.Getenv("API_KEY")
}

// GridWidth returns the default belief grid width for new agents.
// Defaults to 64 if not set.
func GridWidth() int {
	return positiveInt("GRID_WIDTH", 64)
}

// GridHeight returns the default belief grid height for new agents.
// Defaults to 64 if not set.
func GridHeight() int {
	return positiveInt("GRID_HEIGHT", 64)
}

// GridMaxCells caps width*height of any agent's grid.
// Defaults to 1048576 (1024x1024) if not set.
func GridMaxCells() int {
	return positiveInt("GRID_MAX_CELLS", 1<<20)
}

// RateLimitRPS returns requests per second limit.
// Defaults to 100 if not set.
func RateLimitRPS() float64 {
	rps, err := strconv.ParseFloat(os.Getenv("RATE_LIMIT_RPS"), 64)
	if err != nil || rps <= 0 {
		return 100
	}
	return rps
}

// RateLimitBurst returns the burst size for rate limiting.
// Defaults to 20 if not set.
func RateLimitBurst() int {
	return positiveInt("RATE_LIMIT_BURST", 20)
}

// LogLevel returns the log level (debug, info, warn, error).
// Defaults to "info" if not set.
func LogLevel() string {
	level := os.Getenv("LOG_LEVEL")
	if level == "" {
		return "info"
	}
	return level
}

func positiveInt(key string, def int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil || v <= 0 {
		return def
	}
	return v
}
