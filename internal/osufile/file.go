// Package osufile provides lazily loaded, memory-mapped access to osu! replay and
// beatmap files.
package osufile

import (
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"codeberg.org/go-mmap/mmap"
)

// DefaultMaxSize is the largest file accepted unless configured otherwise
const DefaultMaxSize = 256 << 20

// Common errors
var (
	ErrFileClosed = errors.New("file is closed")
	ErrTooLarge   = errors.New("file exceeds the maximum size")
)

// File is a single osu! file whose contents are loaded on first access
type File struct {
	mu          sync.RWMutex
	path        string
	maxSize     int64
	data        []byte
	hash        string
	initialized bool
	closed      bool
}

// Option is a function that configures a File instance
type Option func(*File)

// WithMaxSize limits the size of the file that will be loaded
func WithMaxSize(size int64) Option {
	return func(f *File) {
		f.maxSize = size
	}
}

// New creates a new File for the given path. Nothing is read until the contents
// are first requested.
func New(path string, options ...Option) *File {
	f := &File{
		path:    path,
		maxSize: DefaultMaxSize,
	}

	for _, option := range options {
		option(f)
	}

	return f
}

// ensureInitialized loads the file if it hasn't been already
func (f *File) ensureInitialized() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch {
	case f.closed:
		return ErrFileClosed
	case f.initialized:
		return nil
	}

	data, err := load(f.path, f.maxSize)
	if err != nil {
		return err
	}

	sum := md5.Sum(data)
	f.data = data
	f.hash = hex.EncodeToString(sum[:])
	f.initialized = true
	return nil
}

// load maps the file into memory and copies its contents out
func load(path string, maxSize int64) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to get file stats: %w", err)
	}

	switch {
	case info.IsDir():
		return nil, fmt.Errorf("%s is a directory", path)
	case info.Size() > maxSize:
		return nil, fmt.Errorf("%w: %s is %d bytes", ErrTooLarge, path, info.Size())
	case info.Size() == 0:
		return []byte{}, nil
	}

	reader, err := mmap.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to map file: %w", err)
	}
	defer reader.Close()

	data := make([]byte, reader.Len())
	if _, err := reader.ReadAt(data, 0); err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	return data, nil
}

// Open loads the file contents
func (f *File) Open() error {
	return f.ensureInitialized()
}

// Bytes returns the contents of the file. The returned slice is shared and must
// not be modified.
func (f *File) Bytes() ([]byte, error) {
	if err := f.ensureInitialized(); err != nil {
		return nil, err
	}

	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.closed {
		return nil, ErrFileClosed
	}

	return f.data, nil
}

// Hash returns the lowercase hex MD5 digest of the file contents
func (f *File) Hash() (string, error) {
	if err := f.ensureInitialized(); err != nil {
		return "", err
	}

	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.closed {
		return "", ErrFileClosed
	}

	return f.hash, nil
}

// Path returns the file path
func (f *File) Path() string {
	return f.path
}

// Close releases the cached contents
func (f *File) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.closed = true
	f.data = nil
	return nil
}
