// Copyright (c) Roman Atachiants and contributors. All rights reserved.
// Licensed under the MIT license. See LICENSE file in the project root for details.

package osu

import (
	"strconv"
	"strings"

	"github.com/kelindar/osu-sdk/internal/curve"
	"github.com/pkg/errors"
)

// Point is a position on the playfield, in osu! pixels
type Point = curve.Point[int32]

// Meta is the packed type byte of a hit object. Besides the object kind it carries
// the new combo flag, a 3-bit combo colour skip count and the mania hold flag.
type Meta uint8

// Meta bits
const (
	metaCircle    Meta = 1 << 0
	metaSlider    Meta = 1 << 1
	metaNewCombo  Meta = 1 << 2
	metaSpinner   Meta = 1 << 3
	metaComboSkip Meta = 0b0111_0000
	metaManiaHold Meta = 1 << 7
)

// Circle reports whether the hit circle bit is set
func (m Meta) Circle() bool { return m&metaCircle != 0 }

// Slider reports whether the slider bit is set
func (m Meta) Slider() bool { return m&metaSlider != 0 }

// NewCombo reports whether the object starts a new combo
func (m Meta) NewCombo() bool { return m&metaNewCombo != 0 }

// Spinner reports whether the spinner bit is set
func (m Meta) Spinner() bool { return m&metaSpinner != 0 }

// ManiaHold reports whether the object is an osu!mania hold note
func (m Meta) ManiaHold() bool { return m&metaManiaHold != 0 }

// ComboSkip returns how many combo colours to skip when a new combo starts
func (m Meta) ComboSkip() uint8 {
	return uint8(m&metaComboSkip) >> 4
}

// Kind is the payload variant of a hit object
type Kind uint8

// Hit object kinds
const (
	KindCircle Kind = iota
	KindSlider
	KindSpinner
	KindHold
)

// String returns the name of the kind
func (k Kind) String() string {
	switch k {
	case KindCircle:
		return "circle"
	case KindSlider:
		return "slider"
	case KindSpinner:
		return "spinner"
	case KindHold:
		return "hold"
	default:
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// HitSampleData is a pair of sample sets, used for edges and custom samples
type HitSampleData struct {
	Normal   SampleSet // Sample set of the normal sound
	Addition SampleSet // Sample set of the whistle, finish and clap sounds
}

// CustomHitSample overrides the samples played when an object is hit
type CustomHitSample struct {
	HitSampleData
	Index    uint32 // Custom sample index, 0 meaning the timing point's
	Volume   uint8  // Volume in percent, 0 meaning the timing point's
	Filename string // Custom sample file replacing the addition sounds
}

// File returns the name of the sample file played for the given sound, such as
// "soft-hitclap2.wav". The index only appears when it is greater than 1.
func (s CustomHitSample) File(sound HitSound) string {
	if s.Filename != "" {
		return s.Filename
	}

	set := s.Normal
	if sound &= -sound; sound == 0 {
		sound = HitNormal
	}
	if sound != HitNormal && s.Addition != SampleDefault {
		set = s.Addition
	}

	name := set.String() + "-hit" + sound.String()
	if s.Index > 1 {
		name += strconv.FormatUint(uint64(s.Index), 10)
	}
	return name + ".wav"
}

// HitObject is a single circle, slider, spinner or hold note
type HitObject struct {
	X       int16           // Playfield x
	Y       int16           // Playfield y
	Time    int64           // Milliseconds from the start of the audio
	Meta    Meta            // Packed type byte
	Sound   HitSound        // Sounds played on hit
	Sample  CustomHitSample // Sample override, zero when absent
	Kind    Kind            // Payload variant
	Slider  *SliderData     // Slider payload, only for sliders
	EndTime uint64          // Spinner end duration, or hold note end time
}

// Head returns the position of the object
func (h *HitObject) Head() Point {
	return Point{X: int32(h.X), Y: int32(h.Y)}
}

// Position returns the position of the object at progress λ along its path. Only
// sliders move; every other kind stays at its head.
func (h *HitObject) Position(λ float64) (Point, error) {
	if h.Kind != KindSlider || h.Slider == nil {
		return h.Head(), nil
	}
	return h.Slider.At(h.Head(), λ)
}

// ParseHitObject decodes a single line of the HitObjects section
func ParseHitObject(line string) (HitObject, error) {
	var out HitObject
	tokens := strings.Split(strings.TrimSpace(line), ",")
	if len(tokens) < 5 {
		return out, missing([...]string{"x", "y", "time", "type", "hit sound"}[len(tokens)])
	}

	x, err := parseInt("x", tokens[0], 16)
	if err != nil {
		return out, err
	}

	y, err := parseInt("y", tokens[1], 16)
	if err != nil {
		return out, err
	}

	at, err := parseInt("time", tokens[2], 64)
	if err != nil {
		return out, err
	}

	meta, err := parseUint("type", tokens[3], 32)
	switch {
	case err != nil:
		return out, err
	case meta > 0xff:
		return out, invalid("type", meta)
	}

	sound, err := parseHitSound("hit sound", tokens[4])
	if err != nil {
		return out, err
	}

	out.X, out.Y, out.Time = int16(x), int16(y), at
	out.Meta, out.Sound = Meta(meta), sound

	rest := tokens[5:]
	if out.Meta.ManiaHold() {
		return out, parseHold(&out, rest)
	}

	// The trailing sample is "n:a:i:v:file"; slider edge sets also contain colons,
	// but are always pipe-separated.
	if n := len(rest); n > 0 && strings.Contains(rest[n-1], ":") && !strings.Contains(rest[n-1], "|") {
		if out.Sample, err = parseHitSample(rest[n-1]); err != nil {
			return out, err
		}
		rest = rest[:n-1]
	}

	if out.Kind, err = classify(rest); err != nil {
		return out, err
	}

	switch out.Kind {
	case KindSpinner:
		out.EndTime, err = parseUint("spinner end", rest[0], 64)
	case KindSlider:
		out.Slider, err = parseSlider(rest)
	}
	return out, err
}

// classify picks the payload variant from the shape of the remaining tokens: none
// is a circle, a leading unsigned integer is a spinner, anything else is a slider.
func classify(tokens []string) (Kind, error) {
	switch {
	case len(tokens) == 0:
		return KindCircle, nil
	case isUnsigned(tokens[0]):
		return KindSpinner, nil
	case len(tokens) < 3:
		return KindSlider, errors.Wrapf(ErrStructure, "slider has %d of 3 required parameters", len(tokens))
	default:
		return KindSlider, nil
	}
}

func isUnsigned(token string) bool {
	_, err := strconv.ParseUint(token, 10, 64)
	return err == nil
}

// parseHold decodes the "end:n:a:i:v:file" token of a mania hold note
func parseHold(dst *HitObject, rest []string) (err error) {
	if len(rest) == 0 {
		return missing("hold end time")
	}

	end, sample, hasSample := strings.Cut(rest[len(rest)-1], ":")
	if dst.EndTime, err = parseUint("hold end time", end, 64); err != nil {
		return err
	}

	if hasSample {
		if dst.Sample, err = parseHitSample(sample); err != nil {
			return err
		}
	}

	dst.Kind = KindHold
	return nil
}

// parseHitSample decodes "normal:addition:index:volume:filename". Missing fields
// default to zero.
func parseHitSample(token string) (out CustomHitSample, err error) {
	fields := strings.SplitN(token, ":", 5)
	field := func(i int) string {
		if i < len(fields) {
			return strings.TrimSpace(fields[i])
		}
		return ""
	}

	if out.HitSampleData, err = parseSamplePair(field(0), field(1)); err != nil {
		return out, err
	}

	if v := field(2); v != "" {
		index, err := parseUint("sample index", v, 32)
		if err != nil {
			return out, err
		}
		out.Index = uint32(index)
	}

	if v := field(3); v != "" {
		volume, err := parseUint("sample volume", v, 8)
		if err != nil {
			return out, err
		}
		out.Volume = uint8(volume)
	}

	out.Filename = field(4)
	return out, nil
}

// parseSamplePair decodes the normal and addition sample sets, empty meaning default
func parseSamplePair(normal, addition string) (out HitSampleData, err error) {
	if out.Normal, err = parseSampleSetToken("normal set", normal); err != nil {
		return out, err
	}
	out.Addition, err = parseSampleSetToken("addition set", addition)
	return out, err
}

func parseSampleSetToken(field, token string) (SampleSet, error) {
	if token == "" {
		return SampleDefault, nil
	}

	code, err := parseUint(field, token, 8)
	if err != nil {
		return 0, err
	}
	return parseSampleSet(code)
}
