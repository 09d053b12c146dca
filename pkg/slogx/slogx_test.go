package slogx

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{
		Service: "audio-service",
		Version: "test",
		Env:     "prod",
		Level:   "info",
		Output:  &buf,
	})

	log.Info("stream opened", "track_id", "t1")

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "audio-service", record["service"])
	assert.Equal(t, "test", record["version"])
	assert.Equal(t, "stream opened", record["msg"])
	assert.Equal(t, "t1", record["track_id"])
}

func TestNew_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Service: "audio-service", Level: "warn", Output: &buf})

	log.Info("dropped")
	assert.Zero(t, buf.Len())

	log.Warn("kept")
	assert.Contains(t, buf.String(), "kept")
}

func TestNew_TextFormat(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Service: "audio-service", Format: "text", Output: &buf})

	log.Info("hello")
	assert.Contains(t, buf.String(), "msg=hello")
}
