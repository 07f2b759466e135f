// Package mock provides an in-memory implementation of osu.Interface for tests
// that need replays and beatmaps without touching the file system.
package mock

import (
	"errors"
	"iter"
	"maps"
	"slices"
	"strings"

	"github.com/kelindar/osu-sdk"
)

var ErrNotFound = errors.New("not found")

// ReplayEntry is a replay stored under a name
type ReplayEntry struct {
	Name   string
	Replay *osu.Replay
}

// BeatmapEntry is a beatmap stored under a name, with the MD5 of its file
type BeatmapEntry struct {
	Name    string
	Hash    string
	Beatmap *osu.Beatmap
}

// SDK is a lightweight in-memory implementation of the osu.Interface.
type SDK struct {
	ReplaysMap  map[string]*osu.Replay
	BeatmapsMap map[string]*osu.Beatmap
	HashesMap   map[string]string // MD5 to beatmap name
}

var _ osu.Interface = (*SDK)(nil)

// New creates an empty mock SDK.
func New() *SDK {
	return &SDK{
		ReplaysMap:  make(map[string]*osu.Replay),
		BeatmapsMap: make(map[string]*osu.Beatmap),
		HashesMap:   make(map[string]string),
	}
}

// Open mirrors osu.Open but simply returns an empty SDK.
func Open(_ string, _ ...osu.Option) (*SDK, error) { return New(), nil }

// Add registers the given value into the mock SDK. Beatmaps added without a
// hash can only be found by name.
func (s *SDK) Add(v any) {
	switch x := v.(type) {
	case ReplayEntry:
		s.ReplaysMap[x.Name] = x.Replay
	case BeatmapEntry:
		s.BeatmapsMap[x.Name] = x.Beatmap
		if x.Hash != "" {
			s.HashesMap[strings.ToLower(x.Hash)] = x.Name
		}
	}
}

// Close is a no-op for the mock SDK.
func (*SDK) Close() error { return nil }

// BasePath returns an empty string.
func (*SDK) BasePath() string { return "" }

// Replay returns a stored replay.
func (s *SDK) Replay(name string) (*osu.Replay, error) {
	v, ok := s.ReplaysMap[name]
	if !ok {
		return nil, ErrNotFound
	}
	return v, nil
}

// Beatmap returns a stored beatmap.
func (s *SDK) Beatmap(name string) (*osu.Beatmap, error) {
	v, ok := s.BeatmapsMap[name]
	if !ok {
		return nil, ErrNotFound
	}
	return v, nil
}

// Replays iterates over stored replays, ordered by name.
func (s *SDK) Replays() iter.Seq2[string, *osu.Replay] {
	return sorted(s.ReplaysMap)
}

// Beatmaps iterates over stored beatmaps, ordered by name.
func (s *SDK) Beatmaps() iter.Seq2[string, *osu.Beatmap] {
	return sorted(s.BeatmapsMap)
}

// BeatmapFor looks up the beatmap registered under the replay's map hash.
func (s *SDK) BeatmapFor(r *osu.Replay) (*osu.Beatmap, string, error) {
	if r == nil {
		return nil, "", osu.ErrBeatmapNotFound
	}

	name, ok := s.HashesMap[strings.ToLower(r.MapHash)]
	if !ok {
		return nil, "", osu.ErrBeatmapNotFound
	}

	b, err := s.Beatmap(name)
	if err != nil {
		return nil, "", osu.ErrBeatmapNotFound
	}
	return b, name, nil
}

func sorted[T any](m map[string]T) iter.Seq2[string, T] {
	return func(yield func(string, T) bool) {
		for _, k := range slices.Sorted(maps.Keys(m)) {
			if !yield(k, m[k]) {
				break
			}
		}
	}
}
