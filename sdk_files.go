package osu

import (
	"fmt"
	"io/fs"
	"iter"
	"path/filepath"
	"strings"

	"github.com/kelindar/osu-sdk/internal/osufile"
)

// cacheKey represents a string key for caching files
type cacheKey string

// read returns the contents of a file relative to the base directory
func (s *SDK) read(name string) ([]byte, error) {
	file, err := s.load(name)
	if err != nil {
		return nil, err
	}

	data, err := file.Bytes()
	if err != nil {
		return nil, fmt.Errorf("osu: failed to read '%s': %w", name, err)
	}
	return data, nil
}

// load returns the file with the given relative name. It tries to find the file in
// cache first, if not found, it creates a new file handle and caches it.
func (s *SDK) load(name string) (*osufile.File, error) {
	path, err := s.resolve(name)
	if err != nil {
		return nil, err
	}

	key := cacheKey(filepath.ToSlash(filepath.Clean(name)))
	if f, ok := s.files.Load(key); ok {
		s.options.logger.Debug("file cache hit", "name", name)
		return f.(*osufile.File), nil
	}

	// Not in cache, create new file
	file := osufile.New(path, s.fileOptions()...)
	s.options.logger.Debug("file opened", "name", name)

	// Store in cache (use LoadOrStore to handle potential race conditions)
	actual, loaded := s.files.LoadOrStore(key, file)
	if loaded {
		file.Close()
		return actual.(*osufile.File), nil
	}

	return file, nil
}

// digest returns the MD5 of a file without caching it. A file that is already
// cached is hashed through its existing handle.
func (s *SDK) digest(name string) (string, error) {
	path, err := s.resolve(name)
	if err != nil {
		return "", err
	}

	if f, ok := s.files.Load(cacheKey(filepath.ToSlash(filepath.Clean(name)))); ok {
		return f.(*osufile.File).Hash()
	}

	file := osufile.New(path, s.fileOptions()...)
	defer file.Close()
	return file.Hash()
}

// resolve joins a relative name onto the base directory
func (s *SDK) resolve(name string) (string, error) {
	if s.basePath == "" {
		return "", fmt.Errorf("osu: sdk is closed: %w", osufile.ErrFileClosed)
	}

	if !filepath.IsLocal(name) {
		return "", fmt.Errorf("osu: '%s' is not a path within the directory", name)
	}

	return filepath.Join(s.basePath, name), nil
}

// fileOptions returns the options applied to every file handle
func (s *SDK) fileOptions() []osufile.Option {
	if s.options.maxFileSize > 0 {
		return []osufile.Option{osufile.WithMaxSize(s.options.maxFileSize)}
	}
	return nil
}

// walk returns an iterator over the relative paths of every file under the base
// directory with the given extension, compared case-insensitively
func (s *SDK) walk(ext string) iter.Seq[string] {
	return func(yield func(string) bool) {
		root := s.basePath
		if root == "" {
			return
		}

		_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			switch {
			case err != nil:
				s.options.logger.Debug("skipping path", "path", path, "error", err)
				return nil
			case d.IsDir() || !strings.EqualFold(filepath.Ext(path), ext):
				return nil
			}

			name, err := filepath.Rel(root, path)
			if err != nil {
				return nil
			}

			if !yield(name) {
				return filepath.SkipAll
			}
			return nil
		})
	}
}

// closeAllFiles closes all open file handles
func (s *SDK) closeAllFiles() {
	s.files.Range(func(key, value any) bool {
		if file, ok := value.(*osufile.File); ok {
			file.Close()
		}
		s.files.Delete(key)
		return true
	})
}
