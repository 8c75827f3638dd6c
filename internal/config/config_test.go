package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/princespaghetti/plfetch/internal/endpoint"
	"github.com/princespaghetti/plfetch/internal/fetcher"
)

func testFlags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("out-dir", "", "")
	fs.Duration("timeout", 0, "")
	fs.Int("season", endpoint.DefaultSeason, "")
	fs.Int("team", endpoint.DefaultTeam, "")
	fs.Bool("strict", false, "")
	fs.String("listen", DefaultListen, "")
	return fs
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(Sources{}, nil)
	require.NoError(t, err)

	assert.Equal(t, "", cfg.OutDir)
	assert.Equal(t, time.Duration(0), cfg.Timeout, "no timeout unless asked for")
	assert.Equal(t, 777, cfg.Season)
	assert.Equal(t, 10, cfg.Team)
	assert.Equal(t, fetcher.DefaultOrigin, cfg.Origin)
	assert.Equal(t, fetcher.DefaultUserAgent, cfg.UserAgent)
	assert.False(t, cfg.Strict)
	assert.Equal(t, DefaultListen, cfg.Listen)

	eps := cfg.Endpoints()
	require.Len(t, eps, 2)
	assert.Equal(t, endpoint.StandingsURL(777), eps[0].URL)
	assert.Equal(t, endpoint.FixturesURL(777, 10), eps[1].URL)
}

func TestLoad_IgnoresEnvironmentWithoutEnvFile(t *testing.T) {
	t.Setenv("PLFETCH_SEASON", "719")

	cfg, err := Load(Sources{}, nil)
	require.NoError(t, err)
	assert.Equal(t, 777, cfg.Season)
}

func TestLoad_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plfetch.yaml")
	content := "season: 719\nteam: 1\ntimeout: 15s\nout_dir: /srv/site\nstrict: true\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(Sources{ConfigFile: path}, nil)
	require.NoError(t, err)

	assert.Equal(t, 719, cfg.Season)
	assert.Equal(t, 1, cfg.Team)
	assert.Equal(t, 15*time.Second, cfg.Timeout)
	assert.Equal(t, "/srv/site", cfg.OutDir)
	assert.True(t, cfg.Strict)
}

func TestLoad_MissingConfigFile(t *testing.T) {
	_, err := Load(Sources{ConfigFile: filepath.Join(t.TempDir(), "nope.yaml")}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config")
}

func TestLoad_EnvFile(t *testing.T) {
	dir := t.TempDir()
	envPath := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envPath, []byte("PLFETCH_TEAM=14\nPLFETCH_TIMEOUT=5s\n"), 0644))
	t.Cleanup(func() {
		os.Unsetenv("PLFETCH_TEAM")
		os.Unsetenv("PLFETCH_TIMEOUT")
	})

	cfg, err := Load(Sources{EnvFile: envPath}, nil)
	require.NoError(t, err)
	assert.Equal(t, 14, cfg.Team)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
}

func TestLoad_MissingEnvFile(t *testing.T) {
	_, err := Load(Sources{EnvFile: filepath.Join(t.TempDir(), ".env")}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load env file")
}

func TestLoad_FlagsOverrideConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plfetch.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"season": 719, "team": 1}`), 0644))

	flags := testFlags()
	require.NoError(t, flags.Parse([]string{"--season", "800", "--timeout", "2s"}))

	cfg, err := Load(Sources{ConfigFile: path}, flags)
	require.NoError(t, err)

	assert.Equal(t, 800, cfg.Season, "explicit flag wins")
	assert.Equal(t, 1, cfg.Team, "unset flag does not mask the config file")
	assert.Equal(t, 2*time.Second, cfg.Timeout)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{name: "ok", cfg: Config{Season: 777, Team: 10}},
		{name: "negative timeout", cfg: Config{Season: 777, Team: 10, Timeout: -time.Second}, wantErr: "timeout"},
		{name: "zero season", cfg: Config{Team: 10}, wantErr: "season"},
		{name: "zero team", cfg: Config{Season: 777}, wantErr: "team"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestEndpoints_URLOverrides(t *testing.T) {
	cfg := Config{Season: 777, Team: 10, StandingsURL: "http://localhost:9000/s"}

	eps := cfg.Endpoints()
	assert.Equal(t, "http://localhost:9000/s", eps[0].URL)
	assert.Equal(t, endpoint.FixturesURL(777, 10), eps[1].URL)
}
