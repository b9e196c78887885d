package glimpse

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureLogs(t *testing.T, level slog.Level) *bytes.Buffer {
	previous := slog.Default()
	t.Cleanup(func() { slog.SetDefault(previous) })

	var buf bytes.Buffer
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: level})))

	return &buf
}

func TestKeyOfKnownKeys(t *testing.T) {
	key, ok := keyOf(glfw.KeyRight)
	require.True(t, ok)
	assert.Equal(t, KeyArrowRight, key)

	key, ok = keyOf(glfw.KeyEscape)
	require.True(t, ok)
	assert.Equal(t, KeyEscape, key)
}

func TestKeyOfUnknownKeyIsQuietAtInfo(t *testing.T) {
	logs := captureLogs(t, slog.LevelInfo)

	for range 10 {
		_, ok := keyOf(glfw.KeyWorld1)
		require.False(t, ok)
	}

	assert.Empty(t, logs.String())
}

func TestKeyOfUnknownKeyAtDebug(t *testing.T) {
	logs := captureLogs(t, slog.LevelDebug)

	_, ok := keyOf(glfw.KeyWorld1)
	require.False(t, ok)

	assert.Contains(t, logs.String(), "Unknown key code")
	assert.Contains(t, logs.String(), "level=DEBUG")
}
