package osu

import "github.com/kelindar/osu-sdk/internal/section"

// General holds the [General] section of a beatmap
type General struct {
	AudioFilename            string
	AudioLeadIn              int
	PreviewTime              int // -1 when no preview point is set
	Countdown                Countdown
	SampleSet                SampleSet
	StackLeniency            float64
	Mode                     GameMode
	LetterboxInBreaks        bool
	UseSkinSprites           bool
	AlwaysShowPlayfield      bool
	OverlayPosition          OverlayPosition
	SkinPreference           string
	EpilepsyWarning          bool
	CountdownOffset          int
	SpecialStyle             bool
	WidescreenStoryboard     bool
	SamplesMatchPlaybackRate bool
}

// defaultGeneral returns the values assumed for keys that are not present
func defaultGeneral() General {
	return General{
		PreviewTime:   -1,
		Countdown:     CountdownNormal,
		SampleSet:     SampleNormal,
		StackLeniency: 0.7,
	}
}

// setInt returns a setter parsing a decimal integer into the field
func setInt[T any](field string, get func(*T) *int) section.Setter[T] {
	return func(dst *T, v string) error {
		n, err := parseInt(field, v, 32)
		*get(dst) = int(n)
		return err
	}
}

// setBool returns a setter parsing a "0"/"1" flag into the field
func setBool[T any](field string, get func(*T) *bool) section.Setter[T] {
	return func(dst *T, v string) (err error) {
		*get(dst), err = parseBool(field, v)
		return
	}
}

// setString returns a setter copying the value into the field
func setString[T any](get func(*T) *string) section.Setter[T] {
	return func(dst *T, v string) error {
		*get(dst) = v
		return nil
	}
}

// setFloat returns a setter parsing a decimal number into the field
func setFloat[T any](field string, get func(*T) *float64) section.Setter[T] {
	return func(dst *T, v string) (err error) {
		*get(dst), err = parseFloat(field, v, 64)
		return
	}
}

var generalKeys = section.Table[General]{
	"AudioFilename": setString(func(g *General) *string { return &g.AudioFilename }),
	"AudioLeadIn":   setInt("AudioLeadIn", func(g *General) *int { return &g.AudioLeadIn }),
	"PreviewTime":   setInt("PreviewTime", func(g *General) *int { return &g.PreviewTime }),
	"Countdown": func(g *General, v string) error {
		code, err := parseUint("Countdown", v, 8)
		if err != nil {
			return err
		}
		g.Countdown, err = parseCountdown(code)
		return err
	},
	"SampleSet": func(g *General, v string) (err error) {
		g.SampleSet, err = parseSampleSetName(v)
		return
	},
	"StackLeniency": setFloat("StackLeniency", func(g *General) *float64 { return &g.StackLeniency }),
	"Mode": func(g *General, v string) error {
		code, err := parseUint("Mode", v, 8)
		if err != nil {
			return err
		}
		g.Mode, err = parseGameMode(code)
		return err
	},
	"LetterboxInBreaks":   setBool("LetterboxInBreaks", func(g *General) *bool { return &g.LetterboxInBreaks }),
	"UseSkinSprites":      setBool("UseSkinSprites", func(g *General) *bool { return &g.UseSkinSprites }),
	"AlwaysShowPlayfield": setBool("AlwaysShowPlayfield", func(g *General) *bool { return &g.AlwaysShowPlayfield }),
	"OverlayPosition": func(g *General, v string) (err error) {
		g.OverlayPosition, err = parseOverlayPosition(v)
		return
	},
	"SkinPreference":           setString(func(g *General) *string { return &g.SkinPreference }),
	"EpilepsyWarning":          setBool("EpilepsyWarning", func(g *General) *bool { return &g.EpilepsyWarning }),
	"CountdownOffset":          setInt("CountdownOffset", func(g *General) *int { return &g.CountdownOffset }),
	"SpecialStyle":             setBool("SpecialStyle", func(g *General) *bool { return &g.SpecialStyle }),
	"WidescreenStoryboard":     setBool("WidescreenStoryboard", func(g *General) *bool { return &g.WidescreenStoryboard }),
	"SamplesMatchPlaybackRate": setBool("SamplesMatchPlaybackRate", func(g *General) *bool { return &g.SamplesMatchPlaybackRate }),
}
