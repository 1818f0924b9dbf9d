package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, uint64(1), cfg.Iteration)
	assert.Equal(t, "standalone", cfg.Context)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, time.Second, cfg.ScriptTimeout)
	assert.Empty(t, cfg.Hash)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("FXPARAMS_ADDR", "127.0.0.1:9000")
	t.Setenv("FXPARAMS_HASH", "ooEnvHash")
	t.Setenv("FXPARAMS_MINTER", "tz1minter")
	t.Setenv("FXPARAMS_ITERATION", "4")
	t.Setenv("FXPARAMS_CONTEXT", "capture")
	t.Setenv("FXPARAMS_LOG_LEVEL", "debug")
	t.Setenv("FXPARAMS_LOG_HUMAN", "true")
	t.Setenv("FXPARAMS_SCRIPT_TIMEOUT", "250ms")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9000", cfg.Addr)
	assert.True(t, cfg.LogHuman)
	assert.Equal(t, 250*time.Millisecond, cfg.ScriptTimeout)

	id := cfg.Identity()
	assert.Equal(t, "ooEnvHash", id.Hash)
	assert.Equal(t, "tz1minter", id.Minter)
	assert.Equal(t, uint64(4), id.Iteration)
	assert.Equal(t, "capture", id.Context)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name, key, value string
	}{
		{"zero iteration", "FXPARAMS_ITERATION", "0"},
		{"unknown context", "FXPARAMS_CONTEXT", "gallery"},
		{"unknown level", "FXPARAMS_LOG_LEVEL", "verbose"},
		{"unparsable iteration", "FXPARAMS_ITERATION", "many"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestLoadDefinitions(t *testing.T) {
	dir := t.TempDir()
	yamlPath := filepath.Join(dir, "params.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte("- id: b\n  name: B\n  type: boolean\n"), 0o600))
	jsonPath := filepath.Join(dir, "params.JSON")
	require.NoError(t, os.WriteFile(jsonPath, []byte(`[{"id":"c","name":"C","type":"color"}]`), 0o600))

	defs, err := LoadDefinitions(yamlPath)
	require.NoError(t, err)
	require.Len(t, defs, 1)
	assert.Equal(t, "b", defs[0].ID())

	defs, err = LoadDefinitions(jsonPath)
	require.NoError(t, err)
	require.Len(t, defs, 1)
	assert.Equal(t, "c", defs[0].ID())

	_, err = LoadDefinitions(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}
