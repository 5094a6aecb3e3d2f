// Package geom holds the small set of map-space primitives shared by the
// scene engine: axis-aligned rectangles and simple polygons with a cached
// bounding box. Points are donburi Vec2 values so they interoperate with the
// rest of the game code without conversion.
package geom

import (
	dmath "github.com/yohamta/donburi/features/math"
)

// Point is a position in map pixel space.
type Point = dmath.Vec2

// Rect is an axis-aligned rectangle in map pixel space.
type Rect struct {
	X, Y, W, H float64
}

// Contains reports whether p lies inside r, edges inclusive.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X <= r.X+r.W && p.Y >= r.Y && p.Y <= r.Y+r.H
}

// Center returns the rectangle's center point. A zero-size rect's center is
// its origin, so a point-like object falls out of the same formula.
func (r Rect) Center() Point {
	return Point{X: r.X + r.W/2, Y: r.Y + r.H/2}
}

// Polygon is a simple polygon given as an ordered vertex list in map pixel
// space, with its bounding box cached for cheap rejection tests.
type Polygon struct {
	Points []Point
	Bounds Rect
}

// NewPolygon builds a polygon from absolute vertices and caches its AABB.
// It returns the zero Polygon and false for fewer than three vertices.
func NewPolygon(points []Point) (Polygon, bool) {
	if len(points) < 3 {
		return Polygon{}, false
	}
	minX, minY := points[0].X, points[0].Y
	maxX, maxY := minX, minY
	for _, p := range points[1:] {
		if p.X < minX {
			minX = p.X
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}
	return Polygon{
		Points: points,
		Bounds: Rect{X: minX, Y: minY, W: maxX - minX, H: maxY - minY},
	}, true
}

// horizontalEdgeEpsilon stands in for the zero vertical span of an exactly
// horizontal edge during ray casting. Boundary points on such edges are
// implementation-defined.
const horizontalEdgeEpsilon = 1e-9

// Contains reports whether p lies inside the polygon using even-odd ray
// casting along +x. The cached bounds reject most misses before any edge
// work. Behavior for points exactly on an edge is not guaranteed.
func (pg Polygon) Contains(p Point) bool {
	if !pg.Bounds.Contains(p) {
		return false
	}
	inside := false
	n := len(pg.Points)
	for i := 0; i < n; i++ {
		a := pg.Points[i]
		b := pg.Points[(i+1)%n]
		if (a.Y > p.Y) == (b.Y > p.Y) {
			continue
		}
		dy := b.Y - a.Y
		if dy == 0 {
			dy = horizontalEdgeEpsilon
		}
		crossX := a.X + (p.Y-a.Y)/dy*(b.X-a.X)
		if p.X < crossX {
			inside = !inside
		}
	}
	return inside
}
