// Copyright (c) Roman Atachiants and contributors. All rights reserved.
// Licensed under the MIT license. See LICENSE file in the project root for details.

// Package osu decodes osu! replays (.osr) and beatmaps (.osu), and evaluates
// slider paths.
package osu

import (
	"fmt"
	"iter"
	"os"
	"strings"
	"sync"

	"github.com/pkg/errors"
)

// Interface is the read surface shared by the SDK and its in-memory mock
type Interface interface {
	BasePath() string
	Close() error
	Replay(name string) (*Replay, error)
	Beatmap(name string) (*Beatmap, error)
	Replays() iter.Seq2[string, *Replay]
	Beatmaps() iter.Seq2[string, *Beatmap]
	BeatmapFor(r *Replay) (*Beatmap, string, error)
}

var _ Interface = (*SDK)(nil)

// SDK provides access to the replays and beatmaps stored under a directory, such
// as the osu! "Songs" and "Replays" folders. It caches opened files and is safe
// for concurrent use.
type SDK struct {
	basePath string   // Directory holding the files
	opts     []Option // Options forwarded to the decoders
	options  *options // Resolved options
	files    sync.Map // Lazily loaded files (cacheKey to *osufile.File)
	mu       sync.Mutex
	hashes   map[string]string // Beatmap MD5 to relative path, built on first match
}

// Open initializes a new SDK instance for the specified directory. It verifies
// that the provided path exists and is a directory.
func Open(directory string, opts ...Option) (*SDK, error) {
	info, err := os.Stat(directory)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("osu: directory '%s' does not exist: %w", directory, err)
		}
		return nil, fmt.Errorf("osu: failed to access directory '%s': %w", directory, err)
	}

	if !info.IsDir() {
		return nil, fmt.Errorf("osu: provided path '%s' is not a directory", directory)
	}

	sdk := &SDK{
		basePath: directory,
		opts:     opts,
		options:  newOptions(opts),
	}

	sdk.options.logger.Debug("sdk opened", "path", directory)
	return sdk, nil
}

// Close releases any resources held by the SDK instance
func (s *SDK) Close() error {
	s.closeAllFiles()

	s.mu.Lock()
	s.hashes = nil
	s.mu.Unlock()

	s.basePath = ""
	return nil
}

// BasePath returns the base directory path provided when the SDK was opened
func (s *SDK) BasePath() string {
	return s.basePath
}

// Replay decodes the replay at the given path, relative to the base directory
func (s *SDK) Replay(name string) (*Replay, error) {
	data, err := s.read(name)
	if err != nil {
		return nil, err
	}

	replay, err := DecodeReplay(data, s.opts...)
	if err != nil {
		return nil, errors.WithMessage(err, name)
	}
	return replay, nil
}

// Beatmap decodes the beatmap at the given path, relative to the base directory
func (s *SDK) Beatmap(name string) (*Beatmap, error) {
	data, err := s.read(name)
	if err != nil {
		return nil, err
	}

	beatmap, err := DecodeBeatmap(data)
	if err != nil {
		return nil, errors.WithMessage(err, name)
	}
	return beatmap, nil
}

// Replays returns an iterator over every replay under the base directory, keyed by
// relative path. Replays that fail to decode are skipped.
func (s *SDK) Replays() iter.Seq2[string, *Replay] {
	return func(yield func(string, *Replay) bool) {
		for name := range s.walk(".osr") {
			replay, err := s.Replay(name)
			if err != nil {
				s.options.logger.Debug("skipping replay", "name", name, "error", err)
				continue
			}

			if !yield(name, replay) {
				return
			}
		}
	}
}

// Beatmaps returns an iterator over every beatmap under the base directory, keyed
// by relative path. Beatmaps that fail to decode are skipped.
func (s *SDK) Beatmaps() iter.Seq2[string, *Beatmap] {
	return func(yield func(string, *Beatmap) bool) {
		for name := range s.walk(".osu") {
			beatmap, err := s.Beatmap(name)
			if err != nil {
				s.options.logger.Debug("skipping beatmap", "name", name, "error", err)
				continue
			}

			if !yield(name, beatmap) {
				return
			}
		}
	}
}

// BeatmapFor finds the beatmap a replay was played on, by matching the MD5 of every
// .osu file under the base directory against the replay's map hash. It returns the
// beatmap together with its relative path.
func (s *SDK) BeatmapFor(r *Replay) (*Beatmap, string, error) {
	if r == nil || r.MapHash == "" {
		return nil, "", errors.Wrap(ErrBeatmapNotFound, "replay has no map hash")
	}

	index, err := s.hashIndex()
	if err != nil {
		return nil, "", err
	}

	name, ok := index[strings.ToLower(r.MapHash)]
	if !ok {
		return nil, "", errors.Wrapf(ErrBeatmapNotFound, "hash %s", r.MapHash)
	}

	beatmap, err := s.Beatmap(name)
	if err != nil {
		return nil, "", err
	}
	return beatmap, name, nil
}

// hashIndex returns the MD5 to path index of the beatmaps, building it on first use
func (s *SDK) hashIndex() (map[string]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.hashes != nil {
		return s.hashes, nil
	}

	index := make(map[string]string)
	for name := range s.walk(".osu") {
		hash, err := s.digest(name)
		if err != nil {
			s.options.logger.Debug("skipping unreadable beatmap", "name", name, "error", err)
			continue
		}

		if _, exists := index[hash]; !exists {
			index[hash] = name
		}
	}

	s.options.logger.Debug("beatmap index built", "count", len(index))
	s.hashes = index
	return index, nil
}
