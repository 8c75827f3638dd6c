package snapshot

import (
	"context"
	"fmt"
	"time"

	"github.com/gofrs/flock"
)

const lockRetryInterval = 100 * time.Millisecond

// FileLock guards a snapshot file with an advisory lock on a sibling ".lock" file.
type FileLock struct {
	path string
	lock *flock.Flock
}

var _ Locker = (*FileLock)(nil)

// NewFileLock creates a lock for target. The lock file is target + ".lock".
func NewFileLock(target string) *FileLock {
	return &FileLock{
		path: target + lockSuffix,
		lock: flock.New(target + lockSuffix),
	}
}

// Lock retries until the lock is held or ctx is done.
func (l *FileLock) Lock(ctx context.Context) error {
	locked, err := l.lock.TryLockContext(ctx, lockRetryInterval)
	if err != nil {
		return fmt.Errorf("lock %s: %w", l.path, err)
	}
	if !locked {
		return fmt.Errorf("lock %s: timeout", l.path)
	}
	return nil
}

// Unlock releases the lock. The lock file itself is left in place.
func (l *FileLock) Unlock() error {
	return l.lock.Unlock()
}

// Path returns the lock file path.
func (l *FileLock) Path() string {
	return l.path
}
