package snapshot

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	plerrors "github.com/princespaghetti/plfetch/internal/errors"
)

// ManifestFile records the latest successful fetch of each snapshot.
const ManifestFile = "manifest.json"

const (
	// currentSchemaVersion is the current manifest schema version.
	currentSchemaVersion = "1"
)

// Manifest describes the most recent write of each snapshot file.
// Only the latest record per file is kept.
type Manifest struct {
	Version string                `json:"version"`
	Files   map[string]FileRecord `json:"files"`
}

// FileRecord describes one successful fetch.
type FileRecord struct {
	RunID     string    `json:"run_id"`
	Source    string    `json:"source"`
	Fetched   time.Time `json:"fetched"`
	SHA256    string    `json:"sha256"`
	SizeBytes int       `json:"size_bytes"`
}

// NewManifest creates an empty manifest.
func NewManifest() *Manifest {
	return &Manifest{
		Version: currentSchemaVersion,
		Files:   map[string]FileRecord{},
	}
}

func (s *Store) manifestPath() string {
	return s.Path(ManifestFile)
}

// GetManifest returns the manifest, or an empty one if none has been written yet.
func (s *Store) GetManifest() (*Manifest, error) {
	return s.readManifest()
}

// readManifest reads and parses manifest.json. A missing file yields an empty manifest.
func (s *Store) readManifest() (*Manifest, error) {
	data, err := s.fs.ReadFile(s.manifestPath())
	if os.IsNotExist(err) {
		return NewManifest(), nil
	}
	if err != nil {
		return nil, &plerrors.FetchError{Op: "read manifest", Path: s.manifestPath(), Err: err}
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, &plerrors.FetchError{Op: "parse manifest", Path: s.manifestPath(), Err: err}
	}

	if m.Version != currentSchemaVersion {
		if err := migrateManifest(&m); err != nil {
			return nil, fmt.Errorf("migrate manifest: %w", err)
		}
	}
	if m.Files == nil {
		m.Files = map[string]FileRecord{}
	}

	return &m, nil
}

// writeManifest writes the manifest using atomic rename.
func (s *Store) writeManifest(m *Manifest) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return &plerrors.FetchError{Op: "marshal manifest", Err: err}
	}

	tempPath := s.manifestPath() + tempSuffix
	if err := s.fs.WriteFile(tempPath, data, 0644); err != nil {
		return &plerrors.FetchError{Op: "write temp manifest", Path: tempPath, Err: err}
	}

	if err := s.fs.Rename(tempPath, s.manifestPath()); err != nil {
		_ = s.fs.Remove(tempPath)
		return &plerrors.FetchError{Op: "rename manifest", Path: s.manifestPath(), Err: err}
	}

	return nil
}

// UpdateManifest applies fn to the manifest while holding its lock.
func (s *Store) UpdateManifest(ctx context.Context, fn func(*Manifest) error) error {
	lockCtx, cancel := context.WithTimeout(ctx, lockTimeout)
	defer cancel()

	lock := NewFileLock(s.manifestPath())
	if err := lock.Lock(lockCtx); err != nil {
		return fmt.Errorf("failed to lock manifest: %w", err)
	}
	defer func() { _ = lock.Unlock() }()

	m, err := s.readManifest()
	if err != nil {
		return err
	}

	if err := fn(m); err != nil {
		return err
	}

	return s.writeManifest(m)
}

// Record stores rec as the latest fetch of filename.
func (s *Store) Record(ctx context.Context, filename string, rec FileRecord) error {
	return s.UpdateManifest(ctx, func(m *Manifest) error {
		m.Files[filename] = rec
		return nil
	})
}

// migrateManifest handles schema version migrations.
func migrateManifest(m *Manifest) error {
	// Only v1 exists.
	m.Version = currentSchemaVersion
	return nil
}
