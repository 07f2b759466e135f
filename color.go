package osu

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/kelindar/osu-sdk/internal/section"
)

// Color is an RGB colour from the [Colours] section
type Color struct {
	R, G, B uint8
}

// String returns the colour as "r,g,b"
func (c Color) String() string {
	return fmt.Sprintf("%d,%d,%d", c.R, c.G, c.B)
}

// ColorData holds the combo and slider colours of a beatmap
type ColorData struct {
	Combo        []Color // Combo colours, in order
	SliderTrack  *Color  // Slider body override
	SliderBorder *Color  // Slider border override
}

// parseColor decodes "r,g,b". A fourth alpha component is accepted and ignored.
func parseColor(field, value string) (Color, error) {
	parts := strings.Split(value, ",")
	if len(parts) < 3 {
		return Color{}, missing(field + " component")
	}

	var rgb [3]uint8
	for i := range rgb {
		v, err := parseUint(field, strings.TrimSpace(parts[i]), 8)
		if err != nil {
			return Color{}, err
		}
		rgb[i] = uint8(v)
	}

	return Color{R: rgb[0], G: rgb[1], B: rgb[2]}, nil
}

// parseColors decodes every "Key : r,g,b" line of the Colours section, in key
// order, and reduces the resulting table into ColorData.
func parseColors(lines []string) (ColorData, error) {
	pairs, err := section.Pairs(lines)
	if err != nil {
		return ColorData{}, sectionError(err)
	}

	table := make(map[string]Color, len(pairs))
	for _, key := range slices.Sorted(maps.Keys(pairs)) {
		c, err := parseColor(key, pairs[key])
		if err != nil {
			return ColorData{}, err
		}
		table[key] = c
	}

	return reduceColors(table), nil
}

// reduceColors folds the colour table into ColorData. Combo colours are collected
// as Color1, Color2, ... and the scan stops at the first missing index. Files
// using the Combo1, Combo2, ... spelling are read the same way when no ColorN key
// exists.
func reduceColors(table map[string]Color) ColorData {
	var out ColorData
	prefix := "Color"
	if _, ok := table[prefix+"1"]; !ok {
		prefix = "Combo"
	}

	for i := 1; ; i++ {
		c, ok := table[prefix+strconv.Itoa(i)]
		if !ok {
			break
		}
		out.Combo = append(out.Combo, c)
	}

	if c, ok := table["SliderTrackOverride"]; ok {
		out.SliderTrack = &c
	}
	if c, ok := table["SliderBorder"]; ok {
		out.SliderBorder = &c
	}
	return out
}
