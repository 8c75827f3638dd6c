// Package config resolves plfetch settings from defaults, an optional config
// file, an optional env file, and command-line flags.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/princespaghetti/plfetch/internal/endpoint"
	"github.com/princespaghetti/plfetch/internal/fetcher"
)

// EnvPrefix is the prefix for environment overrides, e.g. PLFETCH_SEASON.
// Environment variables are read only when an env file is supplied.
const EnvPrefix = "PLFETCH"

// Keys understood in config files, env vars and flags.
const (
	KeyOutDir       = "out_dir"
	KeyTimeout      = "timeout"
	KeySeason       = "season"
	KeyTeam         = "team"
	KeyOrigin       = "origin"
	KeyUserAgent    = "user_agent"
	KeyStrict       = "strict"
	KeyStandingsURL = "standings_url"
	KeyFixturesURL  = "fixtures_url"
	KeyListen       = "listen"
	KeyVerbose      = "verbose"
)

// DefaultListen is the address the serve command binds to.
const DefaultListen = "127.0.0.1:8080"

// Config holds resolved settings.
type Config struct {
	OutDir       string        `mapstructure:"out_dir"`
	Timeout      time.Duration `mapstructure:"timeout"`
	Season       int           `mapstructure:"season"`
	Team         int           `mapstructure:"team"`
	Origin       string        `mapstructure:"origin"`
	UserAgent    string        `mapstructure:"user_agent"`
	Strict       bool          `mapstructure:"strict"`
	StandingsURL string        `mapstructure:"standings_url"`
	FixturesURL  string        `mapstructure:"fixtures_url"`
	Listen       string        `mapstructure:"listen"`
	Verbose      bool          `mapstructure:"verbose"`
}

// Sources names the optional files a Config is read from.
type Sources struct {
	ConfigFile string // YAML, JSON or TOML; chosen by extension
	EnvFile    string // dotenv file; enables PLFETCH_* environment overrides
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(KeyOutDir, "")
	v.SetDefault(KeyTimeout, time.Duration(0))
	v.SetDefault(KeySeason, endpoint.DefaultSeason)
	v.SetDefault(KeyTeam, endpoint.DefaultTeam)
	v.SetDefault(KeyOrigin, fetcher.DefaultOrigin)
	v.SetDefault(KeyUserAgent, fetcher.DefaultUserAgent)
	v.SetDefault(KeyStrict, false)
	v.SetDefault(KeyStandingsURL, "")
	v.SetDefault(KeyFixturesURL, "")
	v.SetDefault(KeyListen, DefaultListen)
	v.SetDefault(KeyVerbose, false)
}

// Load resolves settings. Precedence, lowest first: defaults, config file,
// environment (only with an env file), flags that were set explicitly.
// flags may be nil. Flag names use dashes in place of underscores.
func Load(src Sources, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if src.ConfigFile != "" {
		v.SetConfigFile(src.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", src.ConfigFile, err)
		}
	}

	if src.EnvFile != "" {
		if err := godotenv.Load(src.EnvFile); err != nil {
			return nil, fmt.Errorf("load env file %s: %w", src.EnvFile, err)
		}
		v.SetEnvPrefix(EnvPrefix)
		v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
		v.AutomaticEnv()
	}

	if flags != nil {
		for _, key := range []string{
			KeyOutDir, KeyTimeout, KeySeason, KeyTeam, KeyOrigin, KeyUserAgent,
			KeyStrict, KeyStandingsURL, KeyFixturesURL, KeyListen, KeyVerbose,
		} {
			if f := flags.Lookup(flagName(key)); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", f.Name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// flagName maps a config key to its flag name.
func flagName(key string) string {
	return strings.ReplaceAll(key, "_", "-")
}

// Validate rejects settings that cannot produce a usable request.
func (c *Config) Validate() error {
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative, got %s", c.Timeout)
	}
	if c.Season <= 0 {
		return fmt.Errorf("season must be a positive compSeasons id, got %d", c.Season)
	}
	if c.Team <= 0 {
		return fmt.Errorf("team must be a positive team id, got %d", c.Team)
	}
	return nil
}

// Endpoints returns the standings and fixtures endpoints for this config.
func (c *Config) Endpoints() []endpoint.Endpoint {
	return endpoint.Defaults(endpoint.Options{
		Season:       c.Season,
		Team:         c.Team,
		StandingsURL: c.StandingsURL,
		FixturesURL:  c.FixturesURL,
	})
}
