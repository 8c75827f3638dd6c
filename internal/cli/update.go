package cli

import (
	"context"
	"io"
	"net/http"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/princespaghetti/plfetch/internal/config"
	"github.com/princespaghetti/plfetch/internal/endpoint"
	plerrors "github.com/princespaghetti/plfetch/internal/errors"
	"github.com/princespaghetti/plfetch/internal/fetcher"
	"github.com/princespaghetti/plfetch/internal/snapshot"
	"github.com/princespaghetti/plfetch/internal/updater"
)

// updateCmd represents the update command. The root command runs it too.
var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Fetch standings and fixtures and save them",
	Long: `Fetch the league table and the team's upcoming fixtures and save them.

Both requests are made one after another; a failure on one does not stop
the other. Each document is re-indented with four spaces and replaces
the previous file atomically. A failed fetch leaves the old file as-is.

Examples:
  plfetch
  plfetch update --timeout 30s
  plfetch update --season 777 --team 1
  plfetch update --out-dir ./site --strict`,
	Args: cobra.NoArgs,
	RunE: runUpdate,
}

func init() {
	rootCmd.AddCommand(updateCmd)
	addUpdateFlags(updateCmd)
}

// addUpdateFlags registers the update flags on cmd. Values are read back
// through config.Load, so they are not bound to variables here.
func addUpdateFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.Duration("timeout", 0, "HTTP request timeout (0 waits indefinitely)")
	f.Int("season", endpoint.DefaultSeason, "compSeasons id to fetch")
	f.Int("team", endpoint.DefaultTeam, "Team id for fixtures")
	f.String("origin", fetcher.DefaultOrigin, "Origin header sent to the API")
	f.String("user-agent", fetcher.DefaultUserAgent, "User-Agent header sent to the API")
	f.String("standings-url", "", "Override the standings URL")
	f.String("fixtures-url", "", "Override the fixtures URL")
	f.Bool("strict", false, "Exit with a non-zero status if any fetch fails")
}

func runUpdate(cmd *cobra.Command, args []string) error {
	cfg, store, log := openStore(cmd)

	res := update(context.Background(), cfg, store, os.Stdout, log)

	if code := exitCode(res, cfg.Strict); code != plerrors.ExitSuccess {
		os.Exit(code)
	}
	return nil
}

// exitCode maps a run to the process exit status. Failed fetches only
// change it from 0 in strict mode.
func exitCode(res updater.Result, strict bool) int {
	if strict && !res.OK() {
		return plerrors.ExitNetworkError
	}
	return plerrors.ExitSuccess
}

// update performs one run and prints its progress to out.
func update(ctx context.Context, cfg *config.Config, store *snapshot.Store, out io.Writer, log zerolog.Logger) updater.Result {
	client := &http.Client{Timeout: cfg.Timeout}
	f := fetcher.NewFetcher(client,
		fetcher.WithHeaders(cfg.Origin, cfg.UserAgent),
		fetcher.WithLogger(log),
	)

	log.Debug().Str("dir", store.BasePath()).Dur("timeout", cfg.Timeout).Msg("starting update")

	return updater.New(f, store, out, log).Run(ctx, cfg.Endpoints())
}
