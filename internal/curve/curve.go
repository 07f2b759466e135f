// Copyright (c) Roman Atachiants and contributors. All rights reserved.
// Licensed under the MIT license. See LICENSE file in the project root for details.

// Package curve evaluates slider paths. Every function takes a progress value λ,
// clamps it into [0,1] and works internally in float64; integer coordinates are
// rounded to the nearest value on the way out.
package curve

import (
	"errors"
	"math"

	"golang.org/x/exp/constraints"
)

// Errors
var (
	ErrTooFewPoints = errors.New("curve: at least two control points are required")
	ErrDegenerate   = errors.New("curve: duplicate control points produce a zero knot interval")
	ErrCollinear    = errors.New("curve: points are collinear, no circle passes through them")
)

// collinearEpsilon is the smallest determinant treated as a proper triangle
const collinearEpsilon = 1e-9

// Number is any numeric coordinate type
type Number interface {
	constraints.Integer | constraints.Float
}

// Point is a 2D point on the playfield
type Point[T Number] struct {
	X, Y T
}

// Pt is a shorthand constructor for a point
func Pt[T Number](x, y T) Point[T] {
	return Point[T]{X: x, Y: y}
}

// vec is the float64 working representation of a point
type vec struct {
	x, y float64
}

func toVec[T Number](p Point[T]) vec {
	return vec{float64(p.X), float64(p.Y)}
}

func fromVec[T Number](v vec) Point[T] {
	return Point[T]{X: fromFloat[T](v.x), Y: fromFloat[T](v.y)}
}

// fromFloat converts back to the coordinate type, rounding for integer types
func fromFloat[T Number](v float64) T {
	half := 0.5
	if T(half) == 0 {
		return T(math.Round(v))
	}
	return T(v)
}

// lerp returns b·λ + a·(1−λ)
func lerp(a, b vec, λ float64) vec {
	return vec{
		x: b.x*λ + a.x*(1-λ),
		y: b.y*λ + a.y*(1-λ),
	}
}

// blend is the affine combination used by the Barry–Goldman pyramid
func blend(a, b vec, wa, wb float64) vec {
	return vec{a.x*wa + b.x*wb, a.y*wa + b.y*wb}
}

func (v vec) dist(o vec) float64 {
	return math.Hypot(o.x-v.x, o.y-v.y)
}

// clamp restricts λ to [0,1]; NaN is treated as 0
func clamp(λ float64) float64 {
	switch {
	case !(λ > 0):
		return 0
	case λ > 1:
		return 1
	default:
		return λ
	}
}

// Distance returns the Euclidean distance between two points
func Distance[T Number](a, b Point[T]) float64 {
	return toVec(a).dist(toVec(b))
}

// Linear interpolates between a and b.
func Linear[T Number](a, b Point[T], λ float64) Point[T] {
	return fromVec[T](lerp(toVec(a), toVec(b), clamp(λ)))
}

// Bezier evaluates the Bézier curve defined by the control points using the
// De Casteljau algorithm.
func Bezier[T Number](points []Point[T], λ float64) (Point[T], error) {
	if len(points) < 2 {
		return Point[T]{}, ErrTooFewPoints
	}

	λ = clamp(λ)
	work := make([]vec, len(points))
	for i, p := range points {
		work[i] = toVec(p)
	}

	for n := len(work) - 1; n > 0; n-- {
		for i := 0; i < n; i++ {
			work[i] = lerp(work[i], work[i+1], λ)
		}
	}

	return fromVec[T](work[0]), nil
}

// CatmullRom evaluates the centripetal Catmull-Rom span between p1 and p2, with p0
// and p3 acting as the outer control points. Knots are spaced by the square root of
// the distance between consecutive points, and the pyramid is evaluated with the
// Barry–Goldman scheme.
func CatmullRom[T Number](p0, p1, p2, p3 Point[T], λ float64) (Point[T], error) {
	v0, v1, v2, v3 := toVec(p0), toVec(p1), toVec(p2), toVec(p3)

	t0 := 0.0
	t1 := t0 + math.Sqrt(v0.dist(v1))
	t2 := t1 + math.Sqrt(v1.dist(v2))
	t3 := t2 + math.Sqrt(v2.dist(v3))
	if t1 == t0 || t2 == t1 || t3 == t2 {
		return Point[T]{}, ErrDegenerate
	}

	t := t1 + clamp(λ)*(t2-t1)
	a1 := blend(v0, v1, (t1-t)/(t1-t0), (t-t0)/(t1-t0))
	a2 := blend(v1, v2, (t2-t)/(t2-t1), (t-t1)/(t2-t1))
	a3 := blend(v2, v3, (t3-t)/(t3-t2), (t-t2)/(t3-t2))
	b1 := blend(a1, a2, (t2-t)/(t2-t0), (t-t0)/(t2-t0))
	b2 := blend(a2, a3, (t3-t)/(t3-t1), (t-t1)/(t3-t1))
	c := blend(b1, b2, (t2-t)/(t2-t1), (t-t1)/(t2-t1))
	return fromVec[T](c), nil
}

// Arc interpolates along the circle of the given center and radius, from the angle
// of start to the angle of end.
func Arc[T Number](start, end, center Point[T], radius T, λ float64) Point[T] {
	s, e, c := toVec(start), toVec(end), toVec(center)
	from := math.Atan2(s.y-c.y, s.x-c.x)
	to := math.Atan2(e.y-c.y, e.x-c.x)
	return fromVec[T](onCircle(c, float64(radius), from+(to-from)*clamp(λ)))
}

// ArcThrough interpolates along the circular arc that starts at a, passes through
// b and ends at c.
func ArcThrough[T Number](a, b, c Point[T], λ float64) (Point[T], error) {
	center, radius, err := FindCircle(a, b, c)
	if err != nil {
		return Point[T]{}, err
	}

	o := vec{center.X, center.Y}
	va, vb, vc := toVec(a), toVec(b), toVec(c)
	from := math.Atan2(va.y-o.y, va.x-o.x)
	mid := angleBetween(from, math.Atan2(vb.y-o.y, vb.x-o.x))
	sweep := angleBetween(from, math.Atan2(vc.y-o.y, vc.x-o.x))

	// Counter-clockwise only when the middle point lies on the way to c
	if mid > sweep {
		sweep -= 2 * math.Pi
	}

	return fromVec[T](onCircle(o, radius, from+sweep*clamp(λ))), nil
}

// angleBetween returns the counter-clockwise angle from a to b in [0, 2π)
func angleBetween(a, b float64) float64 {
	d := math.Mod(b-a, 2*math.Pi)
	if d < 0 {
		d += 2 * math.Pi
	}
	return d
}

func onCircle(center vec, radius, angle float64) vec {
	return vec{
		x: center.x + radius*math.Cos(angle),
		y: center.y + radius*math.Sin(angle),
	}
}

// FindCircle returns the center and radius of the circle passing through the three
// points, computed as the intersection of the perpendicular bisectors.
func FindCircle[T Number](p0, p1, p2 Point[T]) (Point[float64], float64, error) {
	a, b, c := toVec(p0), toVec(p1), toVec(p2)
	d := 2 * (a.x*(b.y-c.y) + b.x*(c.y-a.y) + c.x*(a.y-b.y))
	if math.Abs(d) < collinearEpsilon {
		return Point[float64]{}, 0, ErrCollinear
	}

	aa := a.x*a.x + a.y*a.y
	bb := b.x*b.x + b.y*b.y
	cc := c.x*c.x + c.y*c.y
	center := vec{
		x: (aa*(b.y-c.y) + bb*(c.y-a.y) + cc*(a.y-b.y)) / d,
		y: (aa*(c.x-b.x) + bb*(a.x-c.x) + cc*(b.x-a.x)) / d,
	}

	return Point[float64]{X: center.x, Y: center.y}, center.dist(a), nil
}
