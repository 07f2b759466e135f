package main

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	fixture "github.com/kelindar/osu-sdk/internal/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun(t *testing.T) {
	dir := t.TempDir()
	replay := filepath.Join(dir, "replay.osr")
	require.NoError(t, os.WriteFile(replay, fixture.SampleReplay().Encode(), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "map.osu"), []byte(fixture.Beatmap), 0o644))

	*replayPath, *mapsDir, *frameCount, *progress = replay, dir, 2, 0.5

	var out bytes.Buffer
	require.NoError(t, run(&out, slog.New(slog.DiscardHandler)))

	text := out.String()
	assert.Contains(t, text, "player     peppy")
	assert.Contains(t, text, "mods       HDDT")
	assert.Contains(t, text, "frames     5 (seed 7331)")
	assert.Contains(t, text, "beatmap    map.osu")
	assert.Contains(t, text, "objects    2 circles, 4 sliders, 1 spinners, 0 holds")
	assert.Contains(t, text, "slider     bezier at 1500ms")
	assert.Equal(t, 2, bytes.Count(out.Bytes(), []byte("keys=")))

	t.Run("no matching beatmap", func(t *testing.T) {
		*mapsDir = t.TempDir()
		assert.Error(t, run(&bytes.Buffer{}, slog.New(slog.DiscardHandler)))
	})
}
