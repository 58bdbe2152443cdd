package fsys

import (
	"os"
	"path/filepath"
	"sync"
)

// Fake is an in-memory [FS] for testing. It records every call and serves
// reads from Files. Errors maps a path to an error returned before any
// other handling, for injecting failures.
type Fake struct {
	mu     sync.Mutex
	Dirs   map[string]bool
	Files  map[string][]byte
	Errors map[string]error
	Calls  []Call
}

// Call records a single method invocation on [Fake].
type Call struct {
	Method string
	Path   string
}

// NewFake returns a ready-to-use [Fake] with empty maps.
func NewFake() *Fake {
	return &Fake{
		Dirs:   make(map[string]bool),
		Files:  make(map[string][]byte),
		Errors: make(map[string]error),
	}
}

func (f *Fake) record(method, path string) error {
	f.Calls = append(f.Calls, Call{Method: method, Path: path})
	return f.Errors[path]
}

// MkdirAll records the directory and all its parents.
func (f *Fake) MkdirAll(path string, _ os.FileMode) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("MkdirAll", path); err != nil {
		return err
	}
	for p := filepath.Clean(path); p != "." && p != string(filepath.Separator); p = filepath.Dir(p) {
		f.Dirs[p] = true
	}
	return nil
}

// ReadFile returns a copy of the file contents.
func (f *Fake) ReadFile(name string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("ReadFile", name); err != nil {
		return nil, err
	}
	data, ok := f.Files[name]
	if !ok {
		return nil, &os.PathError{Op: "open", Path: name, Err: os.ErrNotExist}
	}
	return append([]byte(nil), data...), nil
}

// WriteFile stores a copy of data.
func (f *Fake) WriteFile(name string, data []byte, _ os.FileMode) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("WriteFile", name); err != nil {
		return err
	}
	f.Files[name] = append([]byte(nil), data...)
	return nil
}

// Rename moves a file within Files.
func (f *Fake) Rename(oldpath, newpath string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("Rename", oldpath); err != nil {
		return err
	}
	data, ok := f.Files[oldpath]
	if !ok {
		return &os.PathError{Op: "rename", Path: oldpath, Err: os.ErrNotExist}
	}
	f.Files[newpath] = data
	delete(f.Files, oldpath)
	return nil
}

// Remove deletes a file from Files.
func (f *Fake) Remove(name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("Remove", name); err != nil {
		return err
	}
	if _, ok := f.Files[name]; !ok {
		return &os.PathError{Op: "remove", Path: name, Err: os.ErrNotExist}
	}
	delete(f.Files, name)
	return nil
}

var (
	_ FS = (*Fake)(nil)
	_ FS = OSFS{}
)
