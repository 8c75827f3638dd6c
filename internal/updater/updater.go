// Package updater runs one refresh of the saved API documents.
package updater

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/princespaghetti/plfetch/internal/endpoint"
	"github.com/princespaghetti/plfetch/internal/fetcher"
	"github.com/princespaghetti/plfetch/internal/snapshot"
)

// Console lines printed by Run.
const (
	MsgStart    = "Fetching latest Premier League data..."
	MsgComplete = "Data update complete."
	MsgErrors   = "Completed with errors."
)

// JSONFetcher downloads a URL and returns it as indented JSON.
type JSONFetcher interface {
	FetchJSON(ctx context.Context, url string) ([]byte, error)
}

// SnapshotStore persists fetched documents.
type SnapshotStore interface {
	Save(ctx context.Context, filename string, data []byte) error
	Record(ctx context.Context, filename string, rec snapshot.FileRecord) error
}

// Updater fetches endpoints one after another and saves each result.
type Updater struct {
	fetcher JSONFetcher
	store   SnapshotStore
	out     io.Writer
	logger  zerolog.Logger
	runID   string
	now     func() time.Time
}

// New creates an Updater that prints status lines to out.
func New(f JSONFetcher, store SnapshotStore, out io.Writer, logger zerolog.Logger) *Updater {
	return &Updater{
		fetcher: f,
		store:   store,
		out:     out,
		logger:  logger,
		runID:   uuid.NewString(),
		now:     time.Now,
	}
}

// RunID identifies this updater's run in the manifest.
func (u *Updater) RunID() string {
	return u.runID
}

// FetchAndSave downloads ep and writes it to its file.
//
// Every failure (transport, HTTP status, decoding, parsing, writing) is
// reported the same way: one line naming the file and the error, and a false
// return. Nothing is retried.
func (u *Updater) FetchAndSave(ctx context.Context, ep endpoint.Endpoint) bool {
	log := u.logger.With().Str("endpoint", ep.Name).Str("file", ep.Filename).Logger()

	data, err := u.fetcher.FetchJSON(ctx, ep.URL)
	if err == nil {
		err = u.store.Save(ctx, ep.Filename, data)
	}
	if err != nil {
		log.Error().Err(err).Msg("fetch failed")
		fmt.Fprintf(u.out, "Error fetching %s: %v\n", ep.Filename, err)
		return false
	}

	rec := snapshot.FileRecord{
		RunID:     u.runID,
		Source:    ep.URL,
		Fetched:   u.now().UTC(),
		SHA256:    fetcher.ComputeSHA256(data),
		SizeBytes: len(data),
	}
	// The snapshot is already in place; a manifest problem does not undo it.
	if err := u.store.Record(ctx, ep.Filename, rec); err != nil {
		log.Warn().Err(err).Msg("manifest not updated")
	}

	log.Info().Int("bytes", len(data)).Msg("saved")
	fmt.Fprintf(u.out, "Successfully saved %s\n", ep.Filename)
	return true
}

// Result summarises a Run.
type Result struct {
	RunID  string
	Saved  []string
	Failed []string
}

// OK reports whether every endpoint was saved.
func (r Result) OK() bool {
	return len(r.Failed) == 0
}

// Run fetches each endpoint in order. A failure never stops the remaining endpoints.
func (u *Updater) Run(ctx context.Context, endpoints []endpoint.Endpoint) Result {
	res := Result{RunID: u.runID}

	fmt.Fprintln(u.out, MsgStart)
	for _, ep := range endpoints {
		if u.FetchAndSave(ctx, ep) {
			res.Saved = append(res.Saved, ep.Filename)
		} else {
			res.Failed = append(res.Failed, ep.Filename)
		}
	}

	if res.OK() {
		fmt.Fprintln(u.out, MsgComplete)
	} else {
		fmt.Fprintln(u.out, MsgErrors)
	}

	u.logger.Debug().Str("run_id", u.runID).Int("saved", len(res.Saved)).Int("failed", len(res.Failed)).Msg("run finished")
	return res
}
