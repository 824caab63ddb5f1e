package geometry

import (
	"math"

	"github.com/piwi3910/PalletStack/internal/model"
)

// PointInPolygon uses ray casting: a point is inside when a ray towards +X
// crosses the polygon's edges an odd number of times. Works for non-convex
// outlines such as L-shaped rooms.
func PointInPolygon(p model.Point2D, poly model.Polygon) bool {
	inside := false
	n := len(poly)
	if n < 3 {
		return false
	}
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		a, b := poly[i], poly[j]
		if (a.Z > p.Z) != (b.Z > p.Z) {
			xCross := (b.X-a.X)*(p.Z-a.Z)/(b.Z-a.Z) + a.X
			if p.X < xCross {
				inside = !inside
			}
		}
	}
	return inside
}

// PointOnPolygonEdge reports whether p lies within tol of any polygon edge.
func PointOnPolygonEdge(p model.Point2D, poly model.Polygon, tol float64) bool {
	n := len(poly)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		if segmentDistance(p, poly[j], poly[i]) <= tol {
			return true
		}
	}
	return false
}

func segmentDistance(p, a, b model.Point2D) float64 {
	dx, dz := b.X-a.X, b.Z-a.Z
	l2 := dx*dx + dz*dz
	if l2 == 0 {
		return math.Hypot(p.X-a.X, p.Z-a.Z)
	}
	t := ((p.X-a.X)*dx + (p.Z-a.Z)*dz) / l2
	t = math.Max(0, math.Min(1, t))
	return math.Hypot(p.X-(a.X+t*dx), p.Z-(a.Z+t*dz))
}
