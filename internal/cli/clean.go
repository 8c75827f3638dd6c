package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/princespaghetti/plfetch/internal/endpoint"
	plerrors "github.com/princespaghetti/plfetch/internal/errors"
	"github.com/princespaghetti/plfetch/internal/snapshot"
)

var (
	cleanAll   bool
	cleanForce bool
)

// cleanCmd represents the clean command.
var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove leftover temp and lock files",
	Long: `Remove leftover temporary and lock files from the snapshot directory.

By default, removes only files plfetch leaves behind while writing
(*.tmp, *.lock). Other files in the directory are never touched.

Use --all to also remove standings.json, fixtures.json and manifest.json
(requires confirmation). Use --all --force to skip confirmation.

Examples:
  plfetch clean
  plfetch clean --all
  plfetch clean --all --force`,
	Args: cobra.NoArgs,
	RunE: runClean,
}

func init() {
	rootCmd.AddCommand(cleanCmd)
	cleanCmd.Flags().BoolVar(&cleanAll, "all", false, "Also remove snapshot files and the manifest")
	cleanCmd.Flags().BoolVar(&cleanForce, "force", false, "Skip confirmation prompts")
}

func runClean(cmd *cobra.Command, args []string) error {
	_, store, _ := openStore(cmd)

	if cleanAll && !cleanForce {
		Warning("This will delete the saved snapshots and manifest!")
		Field("Location", store.BasePath())
		EmptyLine()
		if !ConfirmPrompt("Are you sure you want to continue?") {
			Info("Aborted. Nothing was removed.")
			return nil
		}
		EmptyLine()
	}

	removed, err := clean(context.Background(), store, cleanAll)
	if err != nil {
		if errors.Is(err, plerrors.ErrStoreNotFound) {
			Info("Snapshot directory %s does not exist", store.BasePath())
			return nil
		}
		Error("Clean failed: %v", err)
		os.Exit(plerrors.ExitGeneralError)
	}

	if len(removed) == 0 {
		Success("Nothing to clean")
		return nil
	}
	for _, name := range removed {
		fmt.Printf("  Removed: %s\n", name)
	}
	EmptyLine()
	Success("Removed %d file(s)", len(removed))
	return nil
}

// clean removes plfetch's own leftovers from store.
func clean(ctx context.Context, store *snapshot.Store, all bool) ([]string, error) {
	return store.Clean(ctx, endpoint.Filenames(), all)
}
