package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/princespaghetti/plfetch/internal/endpoint"
	plerrors "github.com/princespaghetti/plfetch/internal/errors"
	"github.com/princespaghetti/plfetch/internal/server"
)

// serveCmd represents the serve command.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the saved snapshots over HTTP",
	Long: `Serve standings.json, fixtures.json and manifest.json from the snapshot
directory so a dashboard page can load them by relative URL.

GET / returns an index of the served files. Nothing is fetched from the
API; run 'plfetch' to refresh the files. Stop with Ctrl-C.

Examples:
  plfetch serve
  plfetch serve --listen :9000`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("listen", "", "Address to listen on (default 127.0.0.1:8080)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, store, log := openStore(cmd)

	srv := server.New(cfg.Listen, store, endpoint.Filenames(), log)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve()
	}()

	Info("Serving %s on http://%s", store.BasePath(), srv.Addr())

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-errCh:
		if err != nil {
			Error("Server failed: %v", err)
			os.Exit(plerrors.ExitNetworkError)
		}
	case <-quit:
		EmptyLine()
		Info("Shutting down")
		srv.StopServe()
	}
	return nil
}
