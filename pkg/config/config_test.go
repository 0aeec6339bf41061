package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadRequiresTokenAndDSN(t *testing.T) {
	t.Setenv("BOT_TOKEN", "")
	t.Setenv("DATABASE_DSN", "")

	_, err := Load()
	require.Error(t, err)

	t.Setenv("BOT_TOKEN", "123:abc")
	_, err = Load()
	require.Error(t, err)

	t.Setenv("DATABASE_DSN", "postgres://localhost/profiles")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.AdminAddr)
	assert.False(t, cfg.StrictPersistence)
	assert.Equal(t, 30, cfg.Security.MaxRequestsPerMinute)
}

func TestLoadStrictPersistence(t *testing.T) {
	t.Setenv("BOT_TOKEN", "123:abc")
	t.Setenv("DATABASE_DSN", "postgres://localhost/profiles")
	t.Setenv("STRICT_PERSISTENCE", "true")

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.StrictPersistence)

	t.Setenv("STRICT_PERSISTENCE", "maybe")
	_, err = Load()
	require.Error(t, err)
}

func TestLoadSecurityLimitsOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "limits.yaml")
	content := "max_requests_per_minute: 5\nburst_threshold: 3\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	t.Setenv("BOT_TOKEN", "123:abc")
	t.Setenv("DATABASE_DSN", "postgres://localhost/profiles")
	t.Setenv("SECURITY_LIMITS_FILE", path)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.Security.MaxRequestsPerMinute)
	assert.Equal(t, 3, cfg.Security.BurstThreshold)
	// Untouched limits keep their defaults.
	assert.Equal(t, 200, cfg.Security.MaxRequestsPerHour)
	assert.Equal(t, 20, cfg.Security.BlockScoreThreshold)
}
