// Package filekv implements kv.Store as a single JSON object file. Every Set
// re-reads the file under an exclusive lock, updates one key and rewrites the
// whole object atomically (temp file + rename), so keys written by another
// process are kept.
package filekv

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"todo/internal/fsys"
	"todo/internal/kv"
)

// ErrCorrupt is returned by Get when the store file is not a JSON object of
// string values.
var ErrCorrupt = errors.New("store file is not a JSON object of strings")

// Locker serializes access to the store file across processes.
type Locker interface {
	Lock() error
	RLock() error
	Unlock() error
}

// Store is a file-backed kv.Store.
type Store struct {
	fs   fsys.FS
	path string
	lock Locker
}

// Open returns a Store for path on the real filesystem, guarded by a flock on
// path + ".lock". Parent directories are created as needed; the file itself
// is created on the first Set.
func Open(path string) (*Store, error) {
	return New(fsys.OSFS{}, path, flock.New(path+".lock"))
}

// New returns a Store that performs all file I/O through fs. A nil lock
// disables locking.
func New(fs fsys.FS, path string, lock Locker) (*Store, error) {
	if err := fs.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("opening file store: %w", err)
	}
	if lock == nil {
		lock = nopLocker{}
	}
	return &Store{fs: fs, path: path, lock: lock}, nil
}

// Path returns the store file path.
func (s *Store) Path() string { return s.path }

// Get implements kv.Store.
func (s *Store) Get(_ context.Context, key string) (string, bool, error) {
	if err := s.lock.RLock(); err != nil {
		return "", false, fmt.Errorf("locking %s: %w", s.path, err)
	}
	defer s.lock.Unlock() //nolint:errcheck // read lock release

	values, err := s.read()
	if err != nil {
		return "", false, err
	}
	v, ok := values[key]
	return v, ok, nil
}

// Set implements kv.Store. A corrupt store file is replaced by a fresh object
// holding only key.
func (s *Store) Set(_ context.Context, key, value string) error {
	if err := s.lock.Lock(); err != nil {
		return fmt.Errorf("locking %s: %w", s.path, err)
	}
	defer s.lock.Unlock() //nolint:errcheck // write lock release

	values, err := s.read()
	if err != nil {
		if !errors.Is(err, ErrCorrupt) {
			return err
		}
		values = make(map[string]string)
	}
	values[key] = value
	return s.write(values)
}

// Close is a no-op; the lock is only held during a call.
func (s *Store) Close() error { return nil }

func (s *Store) read() (map[string]string, error) {
	data, err := s.fs.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return make(map[string]string), nil
		}
		return nil, fmt.Errorf("reading %s: %w", s.path, err)
	}
	values := make(map[string]string)
	if len(data) == 0 {
		return values, nil
	}
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("reading %s: %w", s.path, ErrCorrupt)
	}
	return values, nil
}

func (s *Store) write(values map[string]string) error {
	data, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding %s: %w", s.path, err)
	}
	data = append(data, '\n')

	tmp := s.path + ".tmp"
	if err := s.fs.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("writing %s: %w", s.path, err)
	}
	if err := s.fs.Rename(tmp, s.path); err != nil {
		_ = s.fs.Remove(tmp)
		return fmt.Errorf("writing %s: %w", s.path, err)
	}
	return nil
}

type nopLocker struct{}

func (nopLocker) Lock() error   { return nil }
func (nopLocker) RLock() error  { return nil }
func (nopLocker) Unlock() error { return nil }

var _ kv.Store = (*Store)(nil)
