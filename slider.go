// Copyright (c) Roman Atachiants and contributors. All rights reserved.
// Licensed under the MIT license. See LICENSE file in the project root for details.

package osu

import (
	"strings"

	"github.com/kelindar/osu-sdk/internal/curve"
	"github.com/pkg/errors"
)

// CurveType is the interpolation used between slider control points
type CurveType byte

// Slider curve types, by their code in the file
const (
	CurveBezier     CurveType = 'B'
	CurveCatmull    CurveType = 'C'
	CurveLinear     CurveType = 'L'
	CurvePerfect    CurveType = 'P'
	curveUnassigned CurveType = 0
)

// parseCurveType validates a slider curve code
func parseCurveType(code string) (CurveType, error) {
	if len(code) == 1 {
		switch c := CurveType(code[0]); c {
		case CurveBezier, CurveCatmull, CurveLinear, CurvePerfect:
			return c, nil
		}
	}
	return curveUnassigned, invalid("curve type", code)
}

// String returns the name of the curve type
func (c CurveType) String() string {
	switch c {
	case CurveBezier:
		return "bezier"
	case CurveCatmull:
		return "catmull"
	case CurveLinear:
		return "linear"
	case CurvePerfect:
		return "perfect"
	default:
		return "unknown"
	}
}

// SliderData is the payload of a slider. The head of the hit object is the implicit
// first control point and is not part of Points.
type SliderData struct {
	Curve      CurveType       // Interpolation between control points
	Points     []Point         // Control points after the head
	Slides     uint32          // Number of times the path is traversed
	Length     float64         // Visual length in osu! pixels
	EdgeSounds []HitSound      // Sounds on each edge, possibly fewer than Slides+1
	EdgeSets   []HitSampleData // Sample sets on each edge, possibly fewer than Slides+1
}

// parseSlider decodes "curve|x:y|...,slides,length[,edgeSounds[,edgeSets]]"
func parseSlider(tokens []string) (*SliderData, error) {
	if len(tokens) < 3 {
		return nil, errors.Wrapf(ErrStructure, "slider has %d of 3 required parameters", len(tokens))
	}

	parts := strings.Split(tokens[0], "|")
	kind, err := parseCurveType(parts[0])
	if err != nil {
		return nil, err
	}

	out := &SliderData{Curve: kind, Points: make([]Point, 0, len(parts)-1)}
	for _, pair := range parts[1:] {
		xs, ys, ok := strings.Cut(pair, ":")
		if !ok {
			return nil, missing("slider point y")
		}

		x, err := parseInt("slider point x", xs, 32)
		if err != nil {
			return nil, err
		}

		y, err := parseInt("slider point y", ys, 32)
		if err != nil {
			return nil, err
		}

		out.Points = append(out.Points, Point{X: int32(x), Y: int32(y)})
	}

	if len(out.Points) == 0 {
		return nil, errors.Wrap(ErrStructure, "slider has no control points")
	}

	slides, err := parseUint("slides", tokens[1], 32)
	if err != nil {
		return nil, err
	}

	if out.Length, err = parseFloat("length", tokens[2], 64); err != nil {
		return nil, err
	}
	out.Slides = uint32(slides)

	if len(tokens) > 3 && tokens[3] != "" {
		for _, code := range strings.Split(tokens[3], "|") {
			sound, err := parseHitSound("edge sound", code)
			if err != nil {
				return nil, err
			}
			out.EdgeSounds = append(out.EdgeSounds, sound)
		}
	}

	if len(tokens) > 4 && tokens[4] != "" {
		for _, pair := range strings.Split(tokens[4], "|") {
			normal, addition, _ := strings.Cut(pair, ":")
			set, err := parseSamplePair(normal, addition)
			if err != nil {
				return nil, err
			}
			out.EdgeSets = append(out.EdgeSets, set)
		}
	}

	return out, nil
}

// Path returns every control point of the slider, starting with the head
func (s *SliderData) Path(head Point) []Point {
	out := make([]Point, 0, len(s.Points)+1)
	out = append(out, head)
	return append(out, s.Points...)
}

// At evaluates the slider path at progress λ, where 0 is the head and 1 the last
// control point.
func (s *SliderData) At(head Point, λ float64) (Point, error) {
	path := s.Path(head)
	switch s.Curve {
	case CurveLinear:
		return linearAt(path, λ), nil
	case CurveCatmull:
		return catmullAt(path, λ), nil
	case CurvePerfect:
		return perfectAt(path, λ)
	default:
		return bezierAt(path, λ)
	}
}

// linearAt walks the polyline, distributing λ by segment length
func linearAt(path []Point, λ float64) Point {
	lengths := make([]float64, len(path)-1)
	for i := range lengths {
		lengths[i] = curve.Distance(path[i], path[i+1])
	}

	i, local, ok := locate(lengths, λ)
	if !ok {
		return path[0]
	}
	return curve.Linear(path[i], path[i+1], local)
}

// bezierAt splits the path at repeated points and evaluates each piece with De
// Casteljau, distributing λ by the chord length of each piece.
func bezierAt(path []Point, λ float64) (Point, error) {
	pieces := splitAnchors(path)
	chords := make([]float64, len(pieces))
	for i, piece := range pieces {
		chords[i] = curve.Distance(piece[0], piece[len(piece)-1])
	}

	i, local, ok := locate(chords, λ)
	switch {
	case !ok:
		return path[0], nil
	case len(pieces[i]) == 1:
		return pieces[i][0], nil
	}

	p, err := curve.Bezier(pieces[i], local)
	if err != nil {
		return Point{}, errors.Wrap(ErrStructure, err.Error())
	}
	return p, nil
}

// splitAnchors cuts the path wherever a point is repeated, which marks a sharp
// corner between two Bézier pieces.
func splitAnchors(path []Point) [][]Point {
	var pieces [][]Point
	start := 0
	for i := 1; i < len(path); i++ {
		if path[i] == path[i-1] {
			pieces = append(pieces, path[start:i])
			start = i
		}
	}
	return append(pieces, path[start:])
}

// catmullAt chains centripetal Catmull-Rom spans through every point, mirroring
// the first and last points to act as the outer control points.
func catmullAt(path []Point, λ float64) Point {
	pts := dedupe(path)
	if len(pts) == 1 {
		return pts[0]
	}

	n := len(pts)
	ext := make([]Point, 0, n+2)
	ext = append(ext, mirror(pts[0], pts[1]))
	ext = append(ext, pts...)
	ext = append(ext, mirror(pts[n-1], pts[n-2]))

	chords := make([]float64, n-1)
	for i := range chords {
		chords[i] = curve.Distance(pts[i], pts[i+1])
	}

	i, local, _ := locate(chords, λ)
	p, err := curve.CatmullRom(ext[i], ext[i+1], ext[i+2], ext[i+3], local)
	if err != nil {
		return curve.Linear(pts[i], pts[i+1], local)
	}
	return p
}

// perfectAt follows the circular arc through exactly three points. Collinear
// points fall back to a line and any other count to Bézier.
func perfectAt(path []Point, λ float64) (Point, error) {
	if len(path) != 3 {
		return bezierAt(path, λ)
	}

	p, err := curve.ArcThrough(path[0], path[1], path[2], λ)
	if errors.Is(err, curve.ErrCollinear) {
		return linearAt(path, λ), nil
	}
	return p, err
}

// mirror reflects q through p, giving 2p - q
func mirror(p, q Point) Point {
	return Point{X: 2*p.X - q.X, Y: 2*p.Y - q.Y}
}

// dedupe drops consecutive duplicate points
func dedupe(path []Point) []Point {
	out := make([]Point, 0, len(path))
	for i, p := range path {
		if i == 0 || p != path[i-1] {
			out = append(out, p)
		}
	}
	return out
}

// locate maps λ onto one of the weighted pieces, returning the piece index and the
// progress within it. It returns false when every weight is zero.
func locate(weights []float64, λ float64) (int, float64, bool) {
	var total float64
	for _, w := range weights {
		total += w
	}

	if len(weights) == 0 || total <= 0 {
		return 0, 0, false
	}

	switch {
	case !(λ > 0):
		return 0, 0, true
	case λ >= 1:
		return len(weights) - 1, 1, true
	}

	target := λ * total
	for i, w := range weights {
		if target <= w || i == len(weights)-1 {
			if w == 0 {
				return i, 1, true
			}
			return i, min(target/w, 1), true
		}
		target -= w
	}
	return len(weights) - 1, 1, true
}
