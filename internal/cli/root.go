// Package cli provides the command-line interface for plfetch.
package cli

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/princespaghetti/plfetch/internal/config"
	plerrors "github.com/princespaghetti/plfetch/internal/errors"
	"github.com/princespaghetti/plfetch/internal/logger"
	"github.com/princespaghetti/plfetch/internal/snapshot"
)

// Version information (will be set by build flags in production).
var (
	Version   = "dev"
	GitCommit = "none"
	BuildDate = "unknown"
)

var (
	configFile string
	envFile    string
	noColor    bool
)

// rootCmd represents the base command. Without a subcommand it runs an update.
var rootCmd = &cobra.Command{
	Use:   "plfetch",
	Short: "Save Premier League standings and fixtures as JSON",
	Long: `plfetch downloads the current Premier League table and a team's next
ten fixtures from the Pulselive football API and writes them as
standings.json and fixtures.json next to the plfetch executable.

Run without arguments to update both files. Failures are reported on
stdout and the exit status stays 0 unless --strict is given.

Each write also leaves a manifest.json and small *.lock files beside the
snapshots; 'plfetch clean' removes the lock files.`,
	Args:          cobra.NoArgs,
	RunE:          runUpdate,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// versionCmd represents the version command.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("plfetch version %s\n", Version)
		fmt.Printf("  commit: %s\n", GitCommit)
		fmt.Printf("  built:  %s\n", BuildDate)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "Config file (YAML, JSON or TOML)")
	pf.StringVar(&envFile, "env-file", "", "Load a .env file and honour PLFETCH_* environment variables")
	pf.String("out-dir", "", "Directory for snapshot files (default: directory of the executable)")
	pf.Bool("verbose", false, "Write debug logs to stderr")
	pf.BoolVar(&noColor, "no-color", false, "Disable colored output")

	addUpdateFlags(rootCmd)

	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if noColor {
			DisableColors()
		}
	}
}

// Execute runs the root command and handles errors.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		Error("%v", err)
		os.Exit(1)
	}
}

// loadConfig resolves settings for cmd from --config, --env-file and its flags.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	return config.Load(config.Sources{ConfigFile: configFile, EnvFile: envFile}, cmd.Flags())
}

// openStore loads config, builds the logger and opens the snapshot store.
// It exits with ExitConfigError on failure, as every command needs both.
func openStore(cmd *cobra.Command) (*config.Config, *snapshot.Store, zerolog.Logger) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		Error("Invalid configuration: %v", err)
		os.Exit(plerrors.ExitConfigError)
	}

	log := logger.New(os.Stderr, cfg.Verbose)
	store, err := snapshot.NewStore(cfg.OutDir, log)
	if err != nil {
		Error("Failed to open snapshot directory: %v", err)
		os.Exit(plerrors.ExitConfigError)
	}
	return cfg, store, log
}
