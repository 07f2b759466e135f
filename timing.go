package osu

import (
	"strings"
)

// TimingPoint changes the tempo, volume or sample settings from a given time on.
// Uninherited points set the beat length in milliseconds; inherited points carry
// a negative beat length encoding an inverse slider velocity multiplier.
type TimingPoint struct {
	Time        float64   // Start time in milliseconds
	BeatLength  float64   // Milliseconds per beat, negative when inherited
	Meter       uint8     // Beats per measure
	SampleSet   SampleSet // Default sample set for hit objects
	SampleIndex uint8     // Custom sample index, 0 meaning the skin's
	Volume      uint8     // Volume in percent
	Uninherited bool      // Whether the point sets a new beat length
	Effects     Effects   // Kiai and barline effects
}

// SliderVelocity returns the slider velocity multiplier of an inherited point, or
// 1 for an uninherited one.
func (t *TimingPoint) SliderVelocity() float64 {
	if t.Uninherited || t.BeatLength >= 0 {
		return 1
	}
	return -100 / t.BeatLength
}

// ParseTimingPoint decodes "time,beatLength,meter,sampleSet,sampleIndex,volume,
// uninherited,effects". Older files stop early; only time and beat length are
// required and the remaining fields fall back to their defaults.
func ParseTimingPoint(line string) (TimingPoint, error) {
	out := TimingPoint{
		Meter:       4,
		Volume:      100,
		Uninherited: true,
	}

	fields := strings.Split(strings.TrimSpace(line), ",")
	if len(fields) < 2 {
		return out, missing("beat length")
	}

	var err error
	if out.Time, err = parseFloat("time", fields[0], 64); err != nil {
		return out, err
	}

	if out.BeatLength, err = parseFloat("beat length", fields[1], 64); err != nil {
		return out, err
	}

	optional := []func(string) error{
		func(v string) error {
			meter, err := parseUint("meter", v, 8)
			out.Meter = uint8(meter)
			return err
		},
		func(v string) error {
			code, err := parseUint("sample set", v, 8)
			if err != nil {
				return err
			}
			out.SampleSet, err = parseSampleSet(code)
			return err
		},
		func(v string) error {
			index, err := parseUint("sample index", v, 8)
			out.SampleIndex = uint8(index)
			return err
		},
		func(v string) error {
			volume, err := parseUint("volume", v, 8)
			out.Volume = uint8(volume)
			return err
		},
		func(v string) (err error) {
			out.Uninherited, err = parseBool("uninherited", v)
			return
		},
		func(v string) error {
			effects, err := parseUint("effects", v, 8)
			switch {
			case err != nil:
				return err
			case Effects(effects)&^effectsMask != 0:
				return invalid("effects", effects)
			}
			out.Effects = Effects(effects)
			return nil
		},
	}

	for i, field := range fields[2:] {
		if i >= len(optional) {
			break
		}
		if err := optional[i](strings.TrimSpace(field)); err != nil {
			return out, err
		}
	}

	return out, nil
}
