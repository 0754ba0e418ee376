package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// withHome points the config directory at a fresh temp dir
func withHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(home)
	viper.Reset()
	t.Cleanup(viper.Reset)
	return home
}

func TestInitializeCreatesDefaults(t *testing.T) {
	home := withHome(t)

	require.NoError(t, Initialize())

	_, err := os.Stat(filepath.Join(home, ".screener", "config.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "default", AppConfig.Session)
	assert.Equal(t, DriverSQLite, AppConfig.Storage.Driver)
	assert.Equal(t, filepath.Join(home, ".screener", "screener.db"), AppConfig.Storage.Path)
	assert.Equal(t, "deterministic", AppConfig.Scoring.Mode)
	assert.Equal(t, 5, AppConfig.Scoring.Noise)
	assert.False(t, AppConfig.Log.Debug)
}

func TestEnvironmentOverrides(t *testing.T) {
	withHome(t)
	t.Setenv("SCREENER_SCORING_MODE", "perturbed")
	t.Setenv("SCREENER_STORAGE_DRIVER", "memory")

	require.NoError(t, Initialize())
	assert.Equal(t, "perturbed", AppConfig.Scoring.Mode)
	assert.Equal(t, DriverMemory, AppConfig.Storage.Driver)
}

func TestDotEnvOverrides(t *testing.T) {
	home := withHome(t)
	require.NoError(t, os.WriteFile(filepath.Join(home, ".env"), []byte("SCREENER_SCORING_NOISE=2\n"), 0600))
	t.Cleanup(func() { os.Unsetenv("SCREENER_SCORING_NOISE") })

	require.NoError(t, Initialize())
	assert.Equal(t, 2, AppConfig.Scoring.Noise)
}

func TestSet(t *testing.T) {
	withHome(t)
	require.NoError(t, Initialize())

	require.NoError(t, Set("scoring.mode", "random"))
	assert.Equal(t, "random", Get("scoring.mode"))

	require.NoError(t, Initialize())
	assert.Equal(t, "random", AppConfig.Scoring.Mode)

	assert.Error(t, Set("openai_key", "sk-123"))
}

func TestValidate(t *testing.T) {
	valid := Config{
		Session: "default",
		Storage: StorageConfig{Driver: DriverSQLite},
		Scoring: ScoringConfig{Mode: "deterministic"},
	}
	assert.NoError(t, valid.Validate())

	bad := valid
	bad.Storage.Driver = "postgres"
	assert.Error(t, bad.Validate())

	bad = valid
	bad.Scoring.Mode = "lottery"
	assert.Error(t, bad.Validate())

	bad = valid
	bad.Scoring.Noise = -1
	assert.Error(t, bad.Validate())

	bad = valid
	bad.Session = " "
	assert.Error(t, bad.Validate())
}

func TestSetRejectsInvalidValues(t *testing.T) {
	withHome(t)
	require.NoError(t, Initialize())

	tests := []struct {
		key   string
		value string
	}{
		{"scoring.mode", "lottery"},
		{"storage.driver", "postgres"},
		{"scoring.noise", "-3"},
		{"scoring.noise", "loud"},
	}
	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			assert.Error(t, Set(tt.key, tt.value))
		})
	}
	assert.Equal(t, "deterministic", Get("scoring.mode"))
	assert.Equal(t, DriverSQLite, Get("storage.driver"))

	// the file on disk still validates from a fresh start
	viper.Reset()
	require.NoError(t, Initialize())
	assert.Equal(t, 5, AppConfig.Scoring.Noise)
}

func TestLoadRecoversFromInvalidFile(t *testing.T) {
	home := withHome(t)
	dir := filepath.Join(home, ".screener")
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("scoring:\n  mode: lottery\n"), 0600))

	assert.Error(t, Initialize())

	viper.Reset()
	require.NoError(t, Load())
	assert.Equal(t, "lottery", AppConfig.Scoring.Mode)
	require.NoError(t, Set("scoring.mode", "perturbed"))

	viper.Reset()
	require.NoError(t, Initialize())
	assert.Equal(t, "perturbed", AppConfig.Scoring.Mode)
}
