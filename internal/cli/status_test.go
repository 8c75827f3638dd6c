package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/princespaghetti/plfetch/internal/config"
	"github.com/princespaghetti/plfetch/internal/endpoint"
	"github.com/princespaghetti/plfetch/internal/snapshot"
)

func testConfig(dir string) *config.Config {
	return &config.Config{
		OutDir: dir,
		Season: endpoint.DefaultSeason,
		Team:   endpoint.DefaultTeam,
		Listen: config.DefaultListen,
	}
}

func newTestStore(t *testing.T, dir string) *snapshot.Store {
	t.Helper()
	store, err := snapshot.NewStore(dir, zerolog.Nop())
	require.NoError(t, err)
	return store
}

func TestStatusCmd_Exists(t *testing.T) {
	if statusCmd == nil {
		t.Fatal("statusCmd is nil")
	}

	if statusCmd.Use != "status" {
		t.Errorf("statusCmd.Use = %q, want %q", statusCmd.Use, "status")
	}
}

func TestStatusCmd_Flags(t *testing.T) {
	flag := statusCmd.Flags().Lookup("json")
	if flag == nil {
		t.Fatal("--json flag not found")
	}

	if flag.DefValue != "false" {
		t.Errorf("--json default = %q, want %q", flag.DefValue, "false")
	}
}

func TestGatherStatus_MissingDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "absent")
	store := newTestStore(t, dir)

	status, err := gatherStatus(store, testConfig(dir))
	require.NoError(t, err)

	assert.False(t, status.Exists)
	assert.Equal(t, dir, status.Directory)
	require.Len(t, status.Files, 2)
	for _, f := range status.Files {
		assert.False(t, f.Exists, f.Name)
		assert.Equal(t, "missing", f.State())
	}
}

func TestGatherStatus_WithSnapshots(t *testing.T) {
	dir := t.TempDir()
	store := newTestStore(t, dir)
	ctx := context.Background()

	fetched := time.Date(2024, 8, 16, 19, 0, 0, 0, time.UTC)
	require.NoError(t, store.Save(ctx, endpoint.StandingsFile, []byte(`{"tables": []}`)))
	require.NoError(t, store.Record(ctx, endpoint.StandingsFile, snapshot.FileRecord{
		RunID:   "run-1",
		Source:  endpoint.StandingsURL(endpoint.DefaultSeason),
		Fetched: fetched,
		SHA256:  "abc",
	}))
	require.NoError(t, os.WriteFile(filepath.Join(dir, endpoint.FixturesFile), []byte("<html>"), 0o644))

	status, err := gatherStatus(store, testConfig(dir))
	require.NoError(t, err)

	assert.True(t, status.Exists)
	require.Len(t, status.Files, 2)

	standings := status.Files[0]
	assert.Equal(t, endpoint.StandingsFile, standings.Name)
	assert.Equal(t, "ok", standings.State())
	assert.Equal(t, "run-1", standings.RunID)
	assert.Equal(t, "abc", standings.SHA256)
	assert.True(t, fetched.Equal(standings.Fetched))
	assert.EqualValues(t, len(`{"tables": []}`), standings.SizeBytes)

	fixtures := status.Files[1]
	assert.Equal(t, endpoint.FixturesFile, fixtures.Name)
	assert.Equal(t, "invalid", fixtures.State())
	assert.Empty(t, fixtures.Source)
	assert.True(t, fixtures.Fetched.IsZero())
}
