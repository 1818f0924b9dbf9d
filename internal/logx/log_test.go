package logx

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(Options{Level: "DEBUG", Writer: &buf})
	require.NoError(t, err)

	Component(l, "sandbox").Debug().Str("hash", "oo1").Msg("defined")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "debug", entry["level"])
	assert.Equal(t, "sandbox", entry["component"])
	assert.Equal(t, "oo1", entry["hash"])
	assert.Equal(t, "defined", entry["message"])
	assert.Contains(t, entry, "time")
}

func TestNewFiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(Options{Level: "warn", Writer: &buf})
	require.NoError(t, err)
	l.Info().Msg("hidden")
	assert.Zero(t, buf.Len())
}

func TestNewHumanReadable(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(Options{HumanReadable: true, Writer: &buf})
	require.NoError(t, err)
	l.Info().Msg("hello")
	assert.Contains(t, buf.String(), "hello")
	assert.False(t, json.Valid(buf.Bytes()))
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	_, err := New(Options{Level: "loud"})
	assert.Error(t, err)
}
