// Copyright (c) Roman Atachiants and contributors. All rights reserved.
// Licensed under the MIT license. See LICENSE file in the project root for details.

package osu

import (
	"math"
	"strings"

	"github.com/kelindar/intmap"
	"github.com/kelindar/osu-sdk/internal/section"
	"github.com/pkg/errors"
)

const formatHeader = "osu file format v"

// Beatmap is a decoded .osu file
type Beatmap struct {
	Version      int           // File format version, 0 when the header is missing
	General      General       // [General]
	Metadata     Metadata      // [Metadata]
	Difficulty   Difficulty    // [Difficulty]
	TimingPoints []TimingPoint // [TimingPoints], in file order
	HitObjects   []HitObject   // [HitObjects], in file order
	Colors       ColorData     // [Colours]
	byTime       *intmap.Map   // Hit object time to index in HitObjects
}

// DecodeBeatmap decodes the raw bytes of a .osu file, honouring a byte order mark
func DecodeBeatmap(data []byte) (*Beatmap, error) {
	text, err := section.Decode(data)
	if err != nil {
		return nil, errors.Wrap(ErrInvalidEncoding, err.Error())
	}
	return ParseBeatmap(text)
}

// ParseBeatmap parses the text of a .osu file. Absent sections and unknown keys are
// ignored, while any line of a known section that fails to decode fails the parse.
func ParseBeatmap(text string) (*Beatmap, error) {
	sections := section.Parse(text)
	out := &Beatmap{
		General:    defaultGeneral(),
		Difficulty: defaultDifficulty(),
	}

	if header := sections.Header(); strings.HasPrefix(header, formatHeader) {
		v, err := parseInt("format version", strings.TrimSpace(header[len(formatHeader):]), 32)
		if err != nil {
			return nil, errors.WithMessage(err, "beatmap")
		}
		out.Version = int(v)
	}

	if err := section.Fold(sections.Lines("General"), generalKeys, &out.General); err != nil {
		return nil, errors.WithMessage(sectionError(err), "beatmap: [General]")
	}

	if err := section.Fold(sections.Lines("Metadata"), metadataKeys, &out.Metadata); err != nil {
		return nil, errors.WithMessage(sectionError(err), "beatmap: [Metadata]")
	}

	if err := section.Fold(sections.Lines("Difficulty"), difficultyKeys, &out.Difficulty); err != nil {
		return nil, errors.WithMessage(sectionError(err), "beatmap: [Difficulty]")
	}

	if out.Difficulty.ApproachRate < 0 {
		out.Difficulty.ApproachRate = out.Difficulty.OverallDifficulty
	}

	lines := sections.Lines("TimingPoints")
	out.TimingPoints = make([]TimingPoint, 0, len(lines))
	for i, line := range lines {
		tp, err := ParseTimingPoint(line)
		if err != nil {
			return nil, errors.WithMessagef(err, "beatmap: [TimingPoints] line %d", i+1)
		}
		out.TimingPoints = append(out.TimingPoints, tp)
	}

	lines = sections.Lines("HitObjects")
	out.HitObjects = make([]HitObject, 0, len(lines))
	for i, line := range lines {
		obj, err := ParseHitObject(line)
		if err != nil {
			return nil, errors.WithMessagef(err, "beatmap: [HitObjects] line %d", i+1)
		}
		out.HitObjects = append(out.HitObjects, obj)
	}

	colors, err := parseColors(sections.Lines("Colours"))
	if err != nil {
		return nil, errors.WithMessage(err, "beatmap: [Colours]")
	}

	out.Colors = colors
	out.byTime = indexByTime(out.HitObjects)
	return out, nil
}

// sectionError maps a key/value line without a colon into the taxonomy
func sectionError(err error) error {
	if errors.Is(err, section.ErrNoSeparator) {
		return errors.Wrap(ErrStructure, err.Error())
	}
	return err
}

// indexByTime maps each timestamp to the first hit object starting at it
func indexByTime(objects []HitObject) *intmap.Map {
	index := intmap.New(max(len(objects), 8), .90)
	for i, obj := range objects {
		if obj.Time < 0 || obj.Time > math.MaxUint32 {
			continue
		}

		if _, ok := index.Load(uint32(obj.Time)); !ok {
			index.Store(uint32(obj.Time), uint32(i))
		}
	}
	return index
}

// HitObjectAt returns the first hit object starting exactly at the given time
func (b *Beatmap) HitObjectAt(ms int64) (*HitObject, bool) {
	if b.byTime == nil || ms < 0 || ms > math.MaxUint32 {
		return nil, false
	}

	i, ok := b.byTime.Load(uint32(ms))
	if !ok {
		return nil, false
	}
	return &b.HitObjects[i], true
}

// Count returns the number of hit objects of each kind
func (b *Beatmap) Count() map[Kind]int {
	out := make(map[Kind]int, 4)
	for i := range b.HitObjects {
		out[b.HitObjects[i].Kind]++
	}
	return out
}

// TimingPointAt returns the last uninherited timing point in effect at the given
// time, or nil when the time precedes every timing point.
func (b *Beatmap) TimingPointAt(ms float64) *TimingPoint {
	var found *TimingPoint
	for i := range b.TimingPoints {
		tp := &b.TimingPoints[i]
		if tp.Time > ms {
			break
		}
		if tp.Uninherited {
			found = tp
		}
	}
	return found
}
