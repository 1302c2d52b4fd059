// Package geom holds the planar primitives used by the road network:
// map-space points, Euclidean distance and polyline resampling.
//
// All coordinates are map-space (the pixel space of the base map image);
// screen transforms belong to the presentation layer.
package geom

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Point is a position in map space.
type Point struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

// Finite reports whether both coordinates are neither NaN nor infinite.
func (p Point) Finite() bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) && !math.IsNaN(p.Y) && !math.IsInf(p.Y, 0)
}

// Vec converts p to a gonum vector.
func (p Point) Vec() r2.Vec { return r2.Vec{X: p.X, Y: p.Y} }

func fromVec(v r2.Vec) Point { return Point{X: v.X, Y: v.Y} }

// Distance returns the Euclidean distance between a and b.
// Complexity: O(1).
func Distance(a, b Point) float64 {
	return r2.Norm(r2.Sub(b.Vec(), a.Vec()))
}

// Lerp returns the point at fraction t along the segment a→b.
func Lerp(a, b Point, t float64) Point {
	av := a.Vec()
	return fromVec(r2.Add(av, r2.Scale(t, r2.Sub(b.Vec(), av))))
}

// Resample walks the polyline pts and emits a point every step units of
// arc length, always ending with the last input point.
//
// The first input point is not emitted: it is the anchor the caller draws
// from (usually an existing node). A non-positive step returns a copy of
// pts[1:]. Fewer than two input points yield nil.
//
// Complexity: O(len(pts) + L/step) where L is the polyline length.
func Resample(pts []Point, step float64) []Point {
	if len(pts) < 2 {
		return nil
	}
	if step <= 0 {
		out := make([]Point, len(pts)-1)
		copy(out, pts[1:])
		return out
	}

	var (
		out       []Point
		carried   float64 // arc length walked since the last emitted point
		prev      = pts[0]
		lastInput = pts[len(pts)-1]
	)
	for i := 1; i < len(pts); i++ {
		cur := pts[i]
		seg := Distance(prev, cur)
		// Emit every point that falls inside this segment.
		for seg > 0 && carried+seg >= step {
			t := (step - carried) / seg
			p := Lerp(prev, cur, t)
			out = append(out, p)
			seg -= step - carried
			prev = p
			carried = 0
		}
		carried += seg
		prev = cur
	}

	// Close on the final input point unless the last sample already sits on it.
	if len(out) == 0 || Distance(out[len(out)-1], lastInput) > step*1e-9 {
		out = append(out, lastInput)
	}

	return out
}
