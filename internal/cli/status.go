package cli

import (
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/princespaghetti/plfetch/internal/config"
	plerrors "github.com/princespaghetti/plfetch/internal/errors"
	"github.com/princespaghetti/plfetch/internal/snapshot"
)

var statusJSON bool

// statusCmd represents the status command.
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the saved snapshot files",
	Long: `Show the saved snapshot files without making network requests.

For each file this prints whether it exists, its size, whether it still
parses as JSON, and when and from where it was last fetched.

Examples:
  plfetch status
  plfetch status --json`,
	Args: cobra.NoArgs,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
	statusCmd.Flags().BoolVar(&statusJSON, "json", false, "Output in JSON format")
}

// StatusOutput represents the structured output of the status command.
type StatusOutput struct {
	Directory string       `json:"directory"`
	Exists    bool         `json:"exists"`
	Files     []FileStatus `json:"files"`
}

// FileStatus combines on-disk state with the manifest record for one file.
type FileStatus struct {
	Name      string    `json:"name"`
	Path      string    `json:"path"`
	Exists    bool      `json:"exists"`
	ValidJSON bool      `json:"valid_json"`
	SizeBytes int64     `json:"size_bytes"`
	Modified  time.Time `json:"modified,omitzero"`
	Source    string    `json:"source,omitempty"`
	Fetched   time.Time `json:"fetched,omitzero"`
	SHA256    string    `json:"sha256,omitempty"`
	RunID     string    `json:"run_id,omitempty"`
}

// State summarises the file as ok, missing or invalid.
func (f FileStatus) State() string {
	switch {
	case !f.Exists:
		return "missing"
	case !f.ValidJSON:
		return "invalid"
	default:
		return "ok"
	}
}

func runStatus(cmd *cobra.Command, args []string) error {
	cfg, store, _ := openStore(cmd)

	status, err := gatherStatus(store, cfg)
	if err != nil {
		Error("Failed to read snapshot status: %v", err)
		os.Exit(plerrors.ExitDataError)
	}

	if statusJSON {
		if err := JSON(status); err != nil {
			Error("Failed to encode JSON: %v", err)
			os.Exit(plerrors.ExitGeneralError)
		}
		return nil
	}

	printStatusHuman(status)
	return nil
}

// gatherStatus collects file and manifest information from the store.
func gatherStatus(store *snapshot.Store, cfg *config.Config) (StatusOutput, error) {
	status := StatusOutput{
		Directory: store.BasePath(),
		Exists:    store.Exists(),
	}

	manifest, err := store.GetManifest()
	if err != nil {
		return status, err
	}

	for _, ep := range cfg.Endpoints() {
		st, err := store.Stat(ep.Filename)
		if err != nil {
			return status, err
		}

		fs := FileStatus{
			Name:      st.Name,
			Path:      st.Path,
			Exists:    st.Exists,
			ValidJSON: st.ValidJSON,
			SizeBytes: st.SizeBytes,
			Modified:  st.Modified,
		}
		if rec, ok := manifest.Files[ep.Filename]; ok {
			fs.Source = rec.Source
			fs.Fetched = rec.Fetched
			fs.SHA256 = rec.SHA256
			fs.RunID = rec.RunID
		}
		status.Files = append(status.Files, fs)
	}

	return status, nil
}

// printStatusHuman prints the status in a human-readable format.
func printStatusHuman(status StatusOutput) {
	Field("Directory", status.Directory)
	if !status.Exists {
		EmptyLine()
		Warning("Snapshot directory does not exist yet. Run 'plfetch' to create it.")
		return
	}
	EmptyLine()

	table := NewTable("", "FILE", "SIZE", "FETCHED")
	for _, f := range status.Files {
		size, fetched := "-", "never"
		if f.Exists {
			size = FormatBytes(f.SizeBytes)
		}
		if !f.Fetched.IsZero() {
			fetched = f.Fetched.Local().Format("2006-01-02 15:04:05 MST")
		}
		table.AddRow(StatusIcon(f.State()), f.Name, size, fetched)
	}
	table.Print()

	for _, f := range status.Files {
		if f.Exists && !f.ValidJSON {
			EmptyLine()
			Warning("%s is not valid JSON. Run 'plfetch update' to replace it.", f.Name)
		}
	}
	EmptyLine()
}
