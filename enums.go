package osu

import "strings"

// GameMode is the ruleset a beatmap or replay was made for
type GameMode uint8

// Game modes
const (
	ModeStandard GameMode = iota
	ModeTaiko
	ModeCatch
	ModeMania
)

// parseGameMode validates a numeric game mode code
func parseGameMode(code uint64) (GameMode, error) {
	if code > uint64(ModeMania) {
		return 0, invalid("game mode", code)
	}
	return GameMode(code), nil
}

// String returns the name of the game mode
func (m GameMode) String() string {
	switch m {
	case ModeStandard:
		return "osu!"
	case ModeTaiko:
		return "osu!taiko"
	case ModeCatch:
		return "osu!catch"
	case ModeMania:
		return "osu!mania"
	default:
		return "unknown"
	}
}

// SampleSet selects the family of hit sounds
type SampleSet uint8

// Sample sets. SampleDefault defers to the enclosing timing point or skin.
const (
	SampleDefault SampleSet = iota
	SampleNormal
	SampleSoft
	SampleDrum
)

// parseSampleSet validates a numeric sample set code
func parseSampleSet(code uint64) (SampleSet, error) {
	if code > uint64(SampleDrum) {
		return 0, invalid("sample set", code)
	}
	return SampleSet(code), nil
}

// parseSampleSetName validates a sample set written by name, as in the General section
func parseSampleSetName(name string) (SampleSet, error) {
	switch name {
	case "None":
		return SampleDefault, nil
	case "Normal":
		return SampleNormal, nil
	case "Soft":
		return SampleSoft, nil
	case "Drum":
		return SampleDrum, nil
	default:
		return 0, invalid("sample set", name)
	}
}

// String returns the lowercase name used in sample file names. The default set
// resolves to "normal".
func (s SampleSet) String() string {
	switch s {
	case SampleSoft:
		return "soft"
	case SampleDrum:
		return "drum"
	default:
		return "normal"
	}
}

// Countdown is the speed of the countdown before the first hit object
type Countdown uint8

// Countdown speeds
const (
	CountdownNone Countdown = iota
	CountdownNormal
	CountdownHalf
	CountdownDouble
)

// parseCountdown validates a numeric countdown code
func parseCountdown(code uint64) (Countdown, error) {
	if code > uint64(CountdownDouble) {
		return 0, invalid("countdown", code)
	}
	return Countdown(code), nil
}

// OverlayPosition draws hit circle overlays relative to hit numbers
type OverlayPosition uint8

// Overlay positions
const (
	OverlayNoChange OverlayPosition = iota
	OverlayBelow
	OverlayAbove
)

// parseOverlayPosition validates an overlay position written by name
func parseOverlayPosition(name string) (OverlayPosition, error) {
	switch name {
	case "NoChange":
		return OverlayNoChange, nil
	case "Below":
		return OverlayBelow, nil
	case "Above":
		return OverlayAbove, nil
	default:
		return 0, invalid("overlay position", name)
	}
}

// HitSound is the set of sounds played when an object is hit
type HitSound uint8

// Hit sounds
const (
	HitNormal HitSound = 1 << iota
	HitWhistle
	HitFinish
	HitClap

	hitSoundMask = HitNormal | HitWhistle | HitFinish | HitClap
)

// parseHitSound validates a hit sound bit-set
func parseHitSound(field, token string) (HitSound, error) {
	v, err := parseUint(field, token, 8)
	if err != nil {
		return 0, err
	}
	if HitSound(v)&^hitSoundMask != 0 {
		return 0, invalid(field, v)
	}
	return HitSound(v), nil
}

// Has reports whether all of the given sounds are set
func (h HitSound) Has(sound HitSound) bool {
	return h&sound == sound
}

// String returns the names of the sounds, separated by "|"
func (h HitSound) String() string {
	names := make([]string, 0, 4)
	for _, s := range [...]struct {
		bit  HitSound
		name string
	}{{HitNormal, "normal"}, {HitWhistle, "whistle"}, {HitFinish, "finish"}, {HitClap, "clap"}} {
		if h&s.bit != 0 {
			names = append(names, s.name)
		}
	}
	return strings.Join(names, "|")
}

// Effects is the bit-set of timing point effects
type Effects uint8

// Timing point effects. Only bits 0 and 3 are defined; any other bit, including
// 4, is rejected as an invalid encoding.
const (
	EffectKiai        Effects = 1
	EffectOmitBarline Effects = 8

	effectsMask = EffectKiai | EffectOmitBarline
)

// Kiai reports whether kiai time is enabled
func (e Effects) Kiai() bool {
	return e&EffectKiai != 0
}

// OmitBarline reports whether the first barline of the section is omitted
func (e Effects) OmitBarline() bool {
	return e&EffectOmitBarline != 0
}
