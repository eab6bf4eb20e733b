package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	for _, k := range []string{"SERVER_PORT", "API_KEY", "GRID_WIDTH", "GRID_HEIGHT", "RATE_LIMIT_RPS", "RATE_LIMIT_BURST", "LOG_LEVEL", "GRID_MAX_CELLS"} {
		t.Setenv(k, "")
	}

	assert.Equal(t, 8080, ServerPort())
	assert.Equal(t, ":8080", ServerAddr())
	assert.Equal(t, "", APIKey())
	assert.Equal(t, 64, GridWidth())
	assert.Equal(t, 64, GridHeight())
	assert.Equal(t, 1<<20, GridMaxCells())
	assert.Equal(t, 100.0, RateLimitRPS())
	assert.Equal(t, 20, RateLimitBurst())
	assert.Equal(t, "info", LogLevel())
}

func TestInvalidValuesFallBack(t *testing.T) {
	t.Setenv("GRID_WIDTH", "-4")
	t.Setenv("GRID_HEIGHT", "wide")
	t.Setenv("RATE_LIMIT_RPS", "0")

	assert.Equal(t, 64, GridWidth())
	assert.Equal(t, 64, GridHeight())
	assert.Equal(t, 100.0, RateLimitRPS())
}

func TestLoad_EnvFileAndSecret(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, "test.env")
	require.NoError(t, os.WriteFile(envFile, []byte("GRID_WIDTH=32\nSERVER_PORT=9090\n"), 0o600))
	require.NoError(t, os.WriteFile(envFile+".secret", []byte("API_KEY=s3cret\n"), 0o600))

	t.Setenv("GRIDMIND_ENV", envFile)
	// godotenv never overrides variables that are already set, so register
	// the keys with t.Setenv for cleanup and then clear them.
	for _, k := range []string{"GRID_WIDTH", "SERVER_PORT", "API_KEY"} {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}

	require.NoError(t, Load())
	assert.Equal(t, 32, GridWidth())
	assert.Equal(t, 9090, ServerPort())
	assert.Equal(t, "s3cret", APIKey())
}

func TestLoad_MissingFilesAreFine(t *testing.T) {
	t.Setenv("GRIDMIND_ENV", filepath.Join(t.TempDir(), "absent.env"))
	assert.NoError(t, Load())
}

func TestLoad_UnreadableFileFails(t *testing.T) {
	// A directory exists but cannot be read as an env file.
	dir := t.TempDir()
	t.Setenv("GRIDMIND_ENV", dir)

	err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), dir)
}
