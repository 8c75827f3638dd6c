package snapshot

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/rs/zerolog"

	plerrors "github.com/princespaghetti/plfetch/internal/errors"
)

const (
	tempSuffix = ".tmp"
	lockSuffix = ".lock"

	// lockTimeout bounds how long Save waits for another run's write.
	lockTimeout = 10 * time.Second
)

// Store writes snapshot files into a single directory.
type Store struct {
	basePath string
	fs       FileSystem
	logger   zerolog.Logger
}

// NewStore creates a new Store rooted at basePath.
// If basePath is empty, it defaults to the directory containing the running executable.
func NewStore(basePath string, logger zerolog.Logger) (*Store, error) {
	if basePath == "" {
		dir, err := ExecutableDir()
		if err != nil {
			return nil, err
		}
		basePath = dir
	}

	abs, err := filepath.Abs(basePath)
	if err != nil {
		return nil, fmt.Errorf("resolve snapshot directory: %w", err)
	}

	return &Store{
		basePath: abs,
		fs:       OSFileSystem{},
		logger:   logger,
	}, nil
}

// ExecutableDir returns the directory of the running binary with symlinks resolved.
func ExecutableDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("locate executable: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(exe), nil
}

// BasePath returns the directory snapshots are written to.
func (s *Store) BasePath() string {
	return s.basePath
}

// Path returns the full path of a snapshot file.
func (s *Store) Path(filename string) string {
	return filepath.Join(s.basePath, filename)
}

// Exists reports whether the snapshot directory exists.
func (s *Store) Exists() bool {
	info, err := s.fs.Stat(s.basePath)
	return err == nil && info.IsDir()
}

// Save replaces filename with data.
//
// The data goes to filename.tmp first and is renamed over the target while
// holding filename.lock, so readers see either the old or the new document
// and a failed write leaves the existing file untouched.
func (s *Store) Save(ctx context.Context, filename string, data []byte) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	if err := s.fs.MkdirAll(s.basePath, 0755); err != nil {
		return &plerrors.FetchError{Op: "create snapshot directory", Path: s.basePath, Err: err}
	}

	target := s.Path(filename)
	tempPath := target + tempSuffix

	lockCtx, cancel := context.WithTimeout(ctx, lockTimeout)
	defer cancel()

	lock := NewFileLock(target)
	if err := lock.Lock(lockCtx); err != nil {
		return &plerrors.FetchError{Op: "lock snapshot", Path: target, Err: err}
	}
	defer func() { _ = lock.Unlock() }()

	s.logger.Debug().Str("path", target).Int("bytes", len(data)).Msg("writing snapshot")

	if err := s.fs.WriteFile(tempPath, data, 0644); err != nil {
		_ = s.fs.Remove(tempPath)
		return &plerrors.FetchError{Op: "write snapshot", Path: tempPath, Err: err}
	}

	if err := s.fs.Rename(tempPath, target); err != nil {
		_ = s.fs.Remove(tempPath)
		return &plerrors.FetchError{Op: "rename snapshot", Path: target, Err: err}
	}

	return nil
}

// FileStatus describes one snapshot file on disk.
type FileStatus struct {
	Name      string    `json:"name"`
	Path      string    `json:"path"`
	Exists    bool      `json:"exists"`
	SizeBytes int64     `json:"size_bytes"`
	Modified  time.Time `json:"modified"`
	ValidJSON bool      `json:"valid_json"`
}

// Stat reports the on-disk state of a snapshot file. A missing file is not an error.
func (s *Store) Stat(filename string) (*FileStatus, error) {
	path := s.Path(filename)
	status := &FileStatus{Name: filename, Path: path}

	info, err := s.fs.Stat(path)
	if os.IsNotExist(err) {
		return status, nil
	}
	if err != nil {
		return nil, &plerrors.FetchError{Op: "stat snapshot", Path: path, Err: err}
	}

	status.Exists = true
	status.SizeBytes = info.Size()
	status.Modified = info.ModTime()

	data, err := s.fs.ReadFile(path)
	if err != nil {
		return nil, &plerrors.FetchError{Op: "read snapshot", Path: path, Err: err}
	}
	status.ValidJSON = json.Valid(data)

	return status, nil
}

// Read returns the contents of a snapshot file.
func (s *Store) Read(filename string) ([]byte, error) {
	path := s.Path(filename)
	data, err := s.fs.ReadFile(path)
	if err != nil {
		return nil, &plerrors.FetchError{Op: "read snapshot", Path: path, Err: err}
	}
	return data, nil
}

// Clean removes leftover temp and lock files belonging to the named snapshots.
// With all set, the snapshots and the manifest are removed as well.
// It returns the base names of removed files, sorted.
func (s *Store) Clean(ctx context.Context, filenames []string, all bool) ([]string, error) {
	if !s.Exists() {
		return nil, &plerrors.FetchError{Op: "clean", Path: s.basePath, Err: plerrors.ErrStoreNotFound}
	}

	owned := make(map[string]bool)
	for _, name := range append(filenames, ManifestFile) {
		owned[name+tempSuffix] = true
		owned[name+lockSuffix] = true
		if all {
			owned[name] = true
		}
	}

	entries, err := s.fs.ReadDir(s.basePath)
	if err != nil {
		return nil, &plerrors.FetchError{Op: "read snapshot directory", Path: s.basePath, Err: err}
	}

	var removed []string
	for _, entry := range entries {
		select {
		case <-ctx.Done():
			return removed, ctx.Err()
		default:
		}

		if entry.IsDir() || !owned[entry.Name()] {
			continue
		}

		path := s.Path(entry.Name())
		if err := s.fs.Remove(path); err != nil {
			return removed, &plerrors.FetchError{Op: "remove", Path: path, Err: err}
		}
		s.logger.Debug().Str("path", path).Msg("removed")
		removed = append(removed, entry.Name())
	}

	sort.Strings(removed)
	return removed, nil
}
