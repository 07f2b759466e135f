// Copyright (c) Roman Atachiants and contributors. All rights reserved.
// Licensed under the MIT license. See LICENSE file in the project root for details.

package curve

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tolerance = 1e-9

func assertNear(t *testing.T, expected, actual Point[float64], delta float64) {
	t.Helper()
	assert.InDelta(t, expected.X, actual.X, delta, "x")
	assert.InDelta(t, expected.Y, actual.Y, delta, "y")
}

func TestLinear(t *testing.T) {
	a, b := Pt(0.0, 0.0), Pt(100.0, 50.0)

	assert.Equal(t, a, Linear(a, b, 0))
	assert.Equal(t, b, Linear(a, b, 1))
	assert.Equal(t, Pt(50.0, 25.0), Linear(a, b, 0.5))

	t.Run("clamped", func(t *testing.T) {
		assert.Equal(t, a, Linear(a, b, -3))
		assert.Equal(t, b, Linear(a, b, 7))
		assert.Equal(t, a, Linear(a, b, math.NaN()))
	})

	t.Run("degenerate", func(t *testing.T) {
		p := Pt(int16(42), int16(-7))
		for _, λ := range []float64{0, 0.1, 0.33, 0.5, 0.99, 1} {
			assert.Equal(t, p, Linear(p, p, λ))
		}
	})

	t.Run("integer rounding", func(t *testing.T) {
		got := Linear(Pt(0, 0), Pt(3, 1), 0.5)
		assert.Equal(t, Pt(2, 1), got)
	})
}

func TestBezier(t *testing.T) {
	t.Run("too few points", func(t *testing.T) {
		_, err := Bezier([]Point[float64]{}, 0.5)
		assert.ErrorIs(t, err, ErrTooFewPoints)

		_, err = Bezier([]Point[float64]{Pt(1.0, 1.0)}, 0.5)
		assert.ErrorIs(t, err, ErrTooFewPoints)
	})

	t.Run("two points equal linear", func(t *testing.T) {
		a, b := Pt(10.0, 20.0), Pt(-30.0, 75.0)
		for λ := 0.0; λ <= 1.0; λ += 0.05 {
			got, err := Bezier([]Point[float64]{a, b}, λ)
			require.NoError(t, err)
			assertNear(t, Linear(a, b, λ), got, tolerance)
		}
	})

	t.Run("endpoints", func(t *testing.T) {
		pts := []Point[int32]{Pt[int32](0, 0), Pt[int32](50, 100), Pt[int32](100, -40), Pt[int32](200, 10)}
		start, err := Bezier(pts, 0)
		require.NoError(t, err)
		assert.Equal(t, pts[0], start)

		end, err := Bezier(pts, 1)
		require.NoError(t, err)
		assert.Equal(t, pts[3], end)
	})

	t.Run("quadratic midpoint", func(t *testing.T) {
		pts := []Point[float64]{Pt(0.0, 0.0), Pt(50.0, 100.0), Pt(100.0, 0.0)}
		got, err := Bezier(pts, 0.5)
		require.NoError(t, err)
		assertNear(t, Pt(50.0, 50.0), got, tolerance)
	})

	t.Run("input untouched", func(t *testing.T) {
		pts := []Point[float64]{Pt(0.0, 0.0), Pt(50.0, 100.0), Pt(100.0, 0.0)}
		_, err := Bezier(pts, 0.3)
		require.NoError(t, err)
		assert.Equal(t, Pt(50.0, 100.0), pts[1])
	})
}

func TestCatmullRom(t *testing.T) {
	p0, p1, p2, p3 := Pt(0.0, 0.0), Pt(100.0, 0.0), Pt(200.0, 100.0), Pt(300.0, 100.0)

	t.Run("endpoints", func(t *testing.T) {
		start, err := CatmullRom(p0, p1, p2, p3, 0)
		require.NoError(t, err)
		assertNear(t, p1, start, 1e-6)

		end, err := CatmullRom(p0, p1, p2, p3, 1)
		require.NoError(t, err)
		assertNear(t, p2, end, 1e-6)
	})

	t.Run("collinear is straight", func(t *testing.T) {
		got, err := CatmullRom(Pt(0.0, 0.0), Pt(10.0, 0.0), Pt(20.0, 0.0), Pt(30.0, 0.0), 0.5)
		require.NoError(t, err)
		assertNear(t, Pt(15.0, 0.0), got, 1e-6)
	})

	t.Run("integer", func(t *testing.T) {
		got, err := CatmullRom(Pt(0, 0), Pt(100, 0), Pt(200, 100), Pt(300, 100), 1)
		require.NoError(t, err)
		assert.Equal(t, Pt(200, 100), got)
	})

	t.Run("degenerate", func(t *testing.T) {
		_, err := CatmullRom(p1, p1, p2, p3, 0.5)
		assert.ErrorIs(t, err, ErrDegenerate)

		_, err = CatmullRom(p0, p1, p1, p3, 0.5)
		assert.ErrorIs(t, err, ErrDegenerate)

		_, err = CatmullRom(p0, p1, p2, p2, 0.5)
		assert.ErrorIs(t, err, ErrDegenerate)
	})
}

func TestFindCircle(t *testing.T) {
	t.Run("unit circle", func(t *testing.T) {
		center, radius, err := FindCircle(Pt(1.0, 0.0), Pt(0.0, 1.0), Pt(-1.0, 0.0))
		require.NoError(t, err)
		assertNear(t, Pt(0.0, 0.0), center, tolerance)
		assert.InDelta(t, 1.0, radius, tolerance)
	})

	t.Run("offset", func(t *testing.T) {
		center, radius, err := FindCircle(Pt(110, 20), Pt(100, 30), Pt(90, 20))
		require.NoError(t, err)
		assertNear(t, Pt(100.0, 20.0), center, tolerance)
		assert.InDelta(t, 10.0, radius, tolerance)
	})

	t.Run("collinear", func(t *testing.T) {
		_, _, err := FindCircle(Pt(0, 0), Pt(5, 5), Pt(10, 10))
		assert.ErrorIs(t, err, ErrCollinear)

		_, _, err = FindCircle(Pt(1.5, 1.5), Pt(1.5, 1.5), Pt(7.0, 3.0))
		assert.ErrorIs(t, err, ErrCollinear)
	})
}

func TestArcRoundTrip(t *testing.T) {
	tests := []struct {
		name    string
		a, b, c Point[float64]
	}{
		{"upper half", Pt(1.0, 0.0), Pt(0.0, 1.0), Pt(-1.0, 0.0)},
		{"slider", Pt(64.0, 192.0), Pt(128.0, 96.0), Pt(256.0, 128.0)},
		{"crossing pi", Pt(-10.0, 1.0), Pt(-12.0, 0.0), Pt(-10.0, -1.0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			center, radius, err := FindCircle(tt.a, tt.b, tt.c)
			require.NoError(t, err)

			assertNear(t, tt.a, Arc(tt.a, tt.c, center, radius, 0), 1e-6)
			assertNear(t, tt.c, Arc(tt.a, tt.c, center, radius, 1), 1e-6)
		})
	}
}

func TestArcThrough(t *testing.T) {
	t.Run("counter-clockwise", func(t *testing.T) {
		a, b, c := Pt(1.0, 0.0), Pt(0.0, 1.0), Pt(-1.0, 0.0)
		mid, err := ArcThrough(a, b, c, 0.5)
		require.NoError(t, err)
		assertNear(t, b, mid, 1e-9)
	})

	t.Run("clockwise", func(t *testing.T) {
		a, b, c := Pt(1.0, 0.0), Pt(0.0, -1.0), Pt(-1.0, 0.0)
		mid, err := ArcThrough(a, b, c, 0.5)
		require.NoError(t, err)
		assertNear(t, b, mid, 1e-9)
	})

	t.Run("endpoints", func(t *testing.T) {
		a, b, c := Pt(64, 192), Pt(128, 96), Pt(256, 128)
		start, err := ArcThrough(a, b, c, 0)
		require.NoError(t, err)
		assert.Equal(t, a, start)

		end, err := ArcThrough(a, b, c, 1)
		require.NoError(t, err)
		assert.Equal(t, c, end)
	})

	t.Run("collinear", func(t *testing.T) {
		_, err := ArcThrough(Pt(0, 0), Pt(1, 1), Pt(2, 2), 0.5)
		assert.ErrorIs(t, err, ErrCollinear)
	})
}

func TestDistance(t *testing.T) {
	assert.Equal(t, 5.0, Distance(Pt(0, 0), Pt(3, 4)))
	assert.Equal(t, 0.0, Distance(Pt(7, 7), Pt(7, 7)))
}
