// Copyright (c) Roman Atachiants and contributors. All rights reserved.
// Licensed under the MIT license. See LICENSE file in the project root for details.

package osu

import (
	"iter"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/kelindar/osu-sdk/internal/bin"
	"github.com/kelindar/osu-sdk/internal/codec"
	"github.com/pkg/errors"
)

// sentinelDelta marks the frame carrying the RNG seed, which ends the frame stream
const sentinelDelta = -12345

// ticksToUnix is the number of 100ns ticks between 0001-01-01 and the Unix epoch
const ticksToUnix = 621355968000000000

// InputKeys is the bit-set of buttons held during a replay frame
type InputKeys uint8

// Input keys
const (
	KeyM1 InputKeys = 1 << iota
	KeyM2
	KeyK1
	KeyK2
	KeySmoke

	inputKeysMask = KeyM1 | KeyM2 | KeyK1 | KeyK2 | KeySmoke
)

// Has reports whether all of the given keys are held
func (k InputKeys) Has(keys InputKeys) bool {
	return k&keys == keys
}

// ReplayFrame is a single sample of the cursor and the held keys
type ReplayFrame struct {
	Delta uint64    // Milliseconds since the previous frame, stored as the bits of a signed value
	X     float32   // Cursor x, 0..512 on the playfield
	Y     float32   // Cursor y, 0..384 on the playfield
	Keys  InputKeys // Held keys
}

// Signed returns the time delta as the signed number of milliseconds it encodes
func (f ReplayFrame) Signed() int64 {
	return int64(f.Delta)
}

// Replay is a decoded .osr file
type Replay struct {
	Mode             GameMode        // Ruleset the play was made in
	Version          uint32          // Game client version, as yyyymmdd
	MapHash          string          // MD5 of the beatmap file, lowercase hex
	Player           string          // Name of the player
	ReplayHash       string          // MD5 of the replay
	Count300         uint16          // Number of 300s
	Count100         uint16          // Number of 100s (150s in taiko)
	Count50          uint16          // Number of 50s
	CountGeki        uint16          // Number of gekis (max 300s in mania)
	CountKatu        uint16          // Number of katus (200s in mania)
	CountMiss        uint16          // Number of misses
	Score            uint32          // Total score
	MaxCombo         uint16          // Greatest combo
	Perfect          bool            // Full combo
	Mods             Mods            // Enabled modifiers
	LifeBar          map[int]float64 // Life bar samples, keyed by time
	Timestamp        uint64          // Windows ticks when the play was made
	CompressedLength uint32          // Size of the compressed frame stream, in bytes
	Frames           []ReplayFrame   // Input frames, in order
	ScoreID          uint64          // Online score identifier
	Accuracy         float64         // Total hit accuracy, only present with target practice
	Seed             int64           // RNG seed carried by the sentinel frame
}

// Time returns the moment the play was made
func (r *Replay) Time() time.Time {
	ticks := int64(r.Timestamp) - ticksToUnix
	return time.Unix(ticks/1e7, (ticks%1e7)*100).UTC()
}

// Timeline iterates over the frames together with their absolute time, in
// milliseconds since the start of the replay.
func (r *Replay) Timeline() iter.Seq2[int64, ReplayFrame] {
	return func(yield func(int64, ReplayFrame) bool) {
		var at int64
		for _, frame := range r.Frames {
			at += frame.Signed()
			if !yield(at, frame) {
				return
			}
		}
	}
}

// DecodeReplay decodes the contents of a .osr file. Fields are consumed strictly
// in order and the first failure aborts the whole decode.
func DecodeReplay(data []byte, opts ...Option) (*Replay, error) {
	o := newOptions(opts)
	r := &reader{data: data}
	out := new(Replay)

	var err error
	out.Mode, err = parseGameMode(uint64(read(r, "mode", bin.ReadByte)))
	r.check(err)
	out.Version = read(r, "version", bin.ReadUint32)
	out.MapHash = read(r, "map hash", bin.ReadString)
	out.Player = read(r, "player", bin.ReadString)
	out.ReplayHash = read(r, "replay hash", bin.ReadString)
	out.Count300 = read(r, "300 count", bin.ReadUint16)
	out.Count100 = read(r, "100 count", bin.ReadUint16)
	out.Count50 = read(r, "50 count", bin.ReadUint16)
	out.CountGeki = read(r, "geki count", bin.ReadUint16)
	out.CountKatu = read(r, "katu count", bin.ReadUint16)
	out.CountMiss = read(r, "miss count", bin.ReadUint16)
	out.Score = read(r, "score", bin.ReadUint32)
	out.MaxCombo = read(r, "max combo", bin.ReadUint16)
	out.Perfect = read(r, "perfect", bin.ReadByte) == 1
	out.Mods, err = parseMods(read(r, "mods", bin.ReadUint32))
	r.check(err)
	out.LifeBar, err = parseLifeBar(read(r, "life bar", bin.ReadString))
	r.check(err)
	out.Timestamp = read(r, "timestamp", bin.ReadUint64)
	out.CompressedLength = read(r, "compressed length", bin.ReadUint32)

	payload := r.bytes("frame data", out.CompressedLength)
	if r.err == nil {
		out.Frames, out.Seed, err = decodeFrames(payload, o.maxFrameData)
		r.check(err)
	}

	out.ScoreID = read(r, "score id", bin.ReadUint64)
	if out.Mods.Has(ModTargetPractice) {
		out.Accuracy = read(r, "accuracy", bin.ReadFloat64)
	}

	if r.err != nil {
		return nil, errors.WithMessage(r.err, "replay")
	}
	return out, nil
}

// parseLifeBar parses the comma-separated "time|life" pairs of the life bar graph
func parseLifeBar(text string) (map[int]float64, error) {
	out := make(map[int]float64)
	for pair := range strings.SplitSeq(text, ",") {
		if pair = strings.TrimSpace(pair); pair == "" {
			continue
		}

		key, value, ok := strings.Cut(pair, "|")
		if !ok {
			return nil, missing("life bar value")
		}

		at, err := parseInt("life bar time", key, 32)
		if err != nil {
			return nil, err
		}

		life, err := parseFloat("life bar value", value, 64)
		if err != nil {
			return nil, err
		}

		out[int(at)] = life
	}
	return out, nil
}

// decodeFrames decompresses the frame stream and decodes its "delta|x|y|keys"
// records, stopping at the sentinel record.
func decodeFrames(payload []byte, limit int) ([]ReplayFrame, int64, error) {
	text, err := codec.Decode(payload, codec.LZMA, limit)
	if err != nil {
		return nil, 0, readError(err, "frame data")
	}

	if !utf8.Valid(text) {
		return nil, 0, invalid("frame data", "not UTF-8")
	}

	frames := make([]ReplayFrame, 0, len(text)/12)
	index := 0
	for record := range strings.SplitSeq(string(text), ",") {
		if record = strings.TrimSpace(record); record == "" {
			continue
		}

		frame, seed, sentinel, err := decodeFrame(record)
		switch {
		case err != nil:
			return nil, 0, errors.WithMessagef(err, "frame %d", index)
		case sentinel:
			return frames, seed, nil
		}

		frames = append(frames, frame)
		index++
	}

	return frames, 0, nil
}

// decodeFrame decodes a single record. When the record is the sentinel, its key
// field is returned as the seed instead of being validated as input keys.
func decodeFrame(record string) (frame ReplayFrame, seed int64, sentinel bool, err error) {
	fields := strings.Split(record, "|")
	if len(fields) < 4 {
		return frame, 0, false, errors.Wrapf(ErrTruncated, "expected 4 fields, got %d", len(fields))
	}

	delta, err := parseInt("delta", fields[0], 64)
	if err != nil {
		return frame, 0, false, err
	}

	if delta == sentinelDelta {
		seed, err = parseInt("seed", fields[3], 64)
		return frame, seed, true, err
	}

	x, err := parseFloat("x", fields[1], 32)
	if err != nil {
		return frame, 0, false, err
	}

	y, err := parseFloat("y", fields[2], 32)
	if err != nil {
		return frame, 0, false, err
	}

	keys, err := parseUint("keys", fields[3], 32)
	switch {
	case err != nil:
		return frame, 0, false, err
	case keys&^uint64(inputKeysMask) != 0:
		return frame, 0, false, invalid("keys", keys)
	}

	return ReplayFrame{
		Delta: uint64(delta),
		X:     float32(x),
		Y:     float32(y),
		Keys:  InputKeys(keys),
	}, 0, false, nil
}

// ---------------------------------- Reader ----------------------------------

// reader threads the offset through the binary readers and keeps the first error
type reader struct {
	data   []byte
	offset int
	err    error
}

// read decodes the next field unless a previous field already failed
func read[T any](r *reader, field string, fn func([]byte, int) (T, int, error)) T {
	var zero T
	if r.err != nil {
		return zero
	}

	v, next, err := fn(r.data, r.offset)
	if err != nil {
		r.err = readError(err, field)
		return zero
	}

	r.offset = next
	return v
}

// bytes returns the next count bytes, checked against the remaining input
func (r *reader) bytes(field string, count uint32) []byte {
	if r.err != nil {
		return nil
	}

	if uint64(count) > uint64(len(r.data)-r.offset) {
		r.err = errors.Wrapf(ErrTruncated, "read %s: %d bytes declared, %d remaining", field, count, len(r.data)-r.offset)
		return nil
	}

	out, next, err := bin.ReadBytes(r.data, r.offset, int(count))
	if err != nil {
		r.err = readError(err, field)
		return nil
	}

	r.offset = next
	return out
}

// check records a validation error unless an earlier one is already kept
func (r *reader) check(err error) {
	if r.err == nil && err != nil {
		r.err = err
	}
}
