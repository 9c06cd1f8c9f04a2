// Package fileio provides the byte and text storage used to read dumps and
// definition documents and to write edited results back.
package fileio

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"sync"
)

// ErrNotExist is matched by errors.Is for missing files in any Store.
var ErrNotExist = fs.ErrNotExist

// DefaultPerm is the permission used for files written by OSStore.
const DefaultPerm = 0644

// IOError reports a storage failure. Content problems are never IOErrors.
type IOError struct {
	// Op is the operation that failed, e.g. "read" or "write".
	Op string

	// Path is the file involved.
	Path string

	Err error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("failed to %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// IsIOError returns true if err is or wraps an IOError.
func IsIOError(err error) bool {
	var ioe *IOError
	return errors.As(err, &ioe)
}

// Store reads and writes whole files.
type Store interface {
	ReadBytes(path string) ([]byte, error)
	WriteBytes(path string, data []byte) error
	ReadText(path string) (string, error)
	WriteText(path, text string) error
}

// OSStore is a Store backed by the local file system.
type OSStore struct{}

// ReadBytes reads a whole file.
func (OSStore) ReadBytes(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &IOError{Op: "read", Path: path, Err: err}
	}
	return data, nil
}

// WriteBytes replaces a file's content.
func (OSStore) WriteBytes(path string, data []byte) error {
	if err := os.WriteFile(path, data, DefaultPerm); err != nil {
		return &IOError{Op: "write", Path: path, Err: err}
	}
	return nil
}

// ReadText reads a whole file as text.
func (s OSStore) ReadText(path string) (string, error) {
	data, err := s.ReadBytes(path)
	return string(data), err
}

// WriteText replaces a file's content with text.
func (s OSStore) WriteText(path, text string) error {
	return s.WriteBytes(path, []byte(text))
}

// MemStore is an in-memory Store. The zero value is ready to use.
type MemStore struct {
	mu    sync.RWMutex
	files map[string][]byte
}

// NewMemStore creates a MemStore holding the given files.
func NewMemStore(files map[string][]byte) *MemStore {
	s := &MemStore{}
	for path, data := range files {
		_ = s.WriteBytes(path, data)
	}
	return s
}

// ReadBytes returns a copy of the stored content.
func (s *MemStore) ReadBytes(path string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, ok := s.files[path]
	if !ok {
		return nil, &IOError{Op: "read", Path: path, Err: ErrNotExist}
	}
	return append([]byte(nil), data...), nil
}

// WriteBytes stores a copy of data.
func (s *MemStore) WriteBytes(path string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.files == nil {
		s.files = make(map[string][]byte)
	}
	s.files[path] = append([]byte(nil), data...)
	return nil
}

// ReadText returns the stored content as text.
func (s *MemStore) ReadText(path string) (string, error) {
	data, err := s.ReadBytes(path)
	return string(data), err
}

// WriteText stores text.
func (s *MemStore) WriteText(path, text string) error {
	return s.WriteBytes(path, []byte(text))
}

// Paths lists the stored paths in sorted order.
func (s *MemStore) Paths() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	paths := make([]string, 0, len(s.files))
	for p := range s.files {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}
