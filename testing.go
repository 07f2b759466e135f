package osu

import (
	"os"
	"path/filepath"
	"testing"

	fixture "github.com/kelindar/osu-sdk/internal/testing"
	"github.com/stretchr/testify/require"
)

// Fixture file names written by TestWith, relative to the SDK directory
const (
	testReplayName  = "Replays/peppy - Lorem Ipsum [Insane].osr"
	testBeatmapName = "Songs/123 Dolor - Lorem Ipsum/Dolor - Lorem Ipsum (sit) [Insane].osu"
)

// TestWith runs a test with an SDK opened on a temporary directory populated with a
// sample replay and the beatmap it was played on.
func TestWith(t *testing.T, testFn func(*testing.T, *SDK), opts ...Option) {
	t.Helper()
	dir := t.TempDir()
	writeTestFile(t, dir, testReplayName, fixture.SampleReplay().Encode())
	writeTestFile(t, dir, testBeatmapName, []byte(fixture.Beatmap))

	// Open the SDK with the test data directory
	sdk, err := Open(dir, opts...)
	require.NoError(t, err, "failed to open SDK with test data directory")
	require.NotNil(t, sdk, "SDK instance should not be nil")
	defer sdk.Close()

	// Run the test with the SDK instance
	testFn(t, sdk)
}

// writeTestFile writes a file under the directory, creating its parents
func writeTestFile(t testing.TB, dir, name string, data []byte) {
	t.Helper()
	path := filepath.Join(dir, filepath.FromSlash(name))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, data, 0o644))
}
