package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoad_FlagsTakePriority(t *testing.T) {
	t.Setenv(envWatchDir, "/env/watch")
	t.Setenv(envDBPath, "/env/db.sqlite")
	t.Setenv(envDebug, "1")

	cfg, err := Load([]string{"-watch-dir=/flag/watch", "-db-path=/flag/db.sqlite", "-debug=false"})
	require.NoError(t, err)
	require.Equal(t, "/flag/watch", cfg.WatchDir)
	require.Equal(t, "/flag/db.sqlite", cfg.DBPath)
	require.False(t, cfg.Debug)
}

func TestLoad_FallsBackToEnv(t *testing.T) {
	t.Setenv(envWatchDir, "/env/watch")
	t.Setenv(envDBPath, "/env/db.sqlite")
	t.Setenv(envDebug, "1")

	cfg, err := Load(nil)
	require.NoError(t, err)
	require.Equal(t, "/env/watch", cfg.WatchDir)
	require.Equal(t, "/env/db.sqlite", cfg.DBPath)
	require.True(t, cfg.Debug)
}

func TestLoad_DefaultsWhenUnset(t *testing.T) {
	t.Setenv(envWatchDir, "")
	t.Setenv(envDBPath, "")
	t.Setenv(envDebug, "")

	cfg, err := Load(nil)
	require.NoError(t, err)
	require.NotEmpty(t, cfg.WatchDir)
	require.NotEmpty(t, cfg.DBPath)
	require.False(t, cfg.Debug)
}
