package importer

import (
	"fmt"
	"math"
	"sort"

	"github.com/piwi3910/PalletStack/internal/model"
	"github.com/yofu/dxf"
	"github.com/yofu/dxf/entity"
)

// RoomImportResult holds the floor outline read from a DXF plan.
type RoomImportResult struct {
	Floor    model.Polygon
	Errors   []string
	Warnings []string
}

// segment represents a line segment between two plan points, used for
// chaining disconnected LINE entities into closed outlines.
type segment struct {
	start model.Point2D
	end   model.Point2D
}

// ImportRoomDXF reads a room floor plan from a DXF file. Closed shapes
// (LWPOLYLINE, CIRCLE, or chains of connected LINEs/ARCs) are collected and
// the largest one becomes the floor. Drawing X/Y map to plan X/Z in mm and
// coordinates are kept as drawn so pallet positions can refer to them.
func ImportRoomDXF(path string) RoomImportResult {
	result := RoomImportResult{}

	drawing, err := dxf.Open(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open DXF file: %v", err))
		return result
	}

	entities := drawing.Entities()
	if len(entities) == 0 {
		result.Errors = append(result.Errors, "DXF file contains no entities")
		return result
	}

	var outlines []model.Polygon
	var segments []segment

	for _, ent := range entities {
		switch e := ent.(type) {
		case *entity.LwPolyline:
			outline := lwPolylineToPolygon(e)
			if len(outline) >= 3 {
				outlines = append(outlines, outline)
			} else {
				result.Warnings = append(result.Warnings,
					"Skipped LWPOLYLINE with fewer than 3 vertices")
			}

		case *entity.Circle:
			outlines = append(outlines, circleToPolygon(e, 64))

		case *entity.Arc:
			pts := arcToPoints(e, 32)
			if len(pts) >= 2 {
				segments = append(segments, pointsToSegments(pts)...)
			}

		case *entity.Line:
			segments = append(segments, segment{
				start: model.Point2D{X: e.Start[0], Z: e.Start[1]},
				end:   model.Point2D{X: e.End[0], Z: e.End[1]},
			})
		}
	}

	outlines = append(outlines, chainSegments(segments, 0.01)...)

	floor, skipped := largestOutline(outlines)
	if floor == nil {
		result.Errors = append(result.Errors, "No closed shapes found in DXF file")
		return result
	}
	if skipped > 0 {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Ignored %d smaller shape(s), using the largest outline as the floor", skipped))
	}
	result.Floor = floor
	return result
}

// largestOutline picks the outline with the biggest area. Degenerate shapes
// are never chosen. It returns the number of other non-degenerate outlines.
func largestOutline(outlines []model.Polygon) (model.Polygon, int) {
	var best model.Polygon
	bestArea := 0.0
	count := 0
	for _, o := range outlines {
		a := polygonArea(o)
		if a < 0.01 {
			continue
		}
		count++
		if a > bestArea {
			best, bestArea = o, a
		}
	}
	if best == nil {
		return nil, 0
	}
	return best, count - 1
}

// lwPolylineToPolygon converts a DXF LWPOLYLINE entity to a polygon.
// Bulge values on vertices produce interpolated arc segments.
func lwPolylineToPolygon(lw *entity.LwPolyline) model.Polygon {
	var outline model.Polygon

	for i := 0; i < len(lw.Vertices); i++ {
		v := lw.Vertices[i]
		current := model.Point2D{X: v[0], Z: v[1]}

		bulge := 0.0
		if i < len(lw.Bulges) {
			bulge = lw.Bulges[i]
		}

		if math.Abs(bulge) > 1e-9 {
			nextIdx := (i + 1) % len(lw.Vertices)
			next := model.Point2D{X: lw.Vertices[nextIdx][0], Z: lw.Vertices[nextIdx][1]}
			arcPts := bulgeArcPoints(current, next, bulge, 32)
			// The next vertex is added by its own iteration
			outline = append(outline, arcPts[:len(arcPts)-1]...)
		} else {
			outline = append(outline, current)
		}
	}

	return outline
}

// bulgeArcPoints generates points along an arc defined by two endpoints and a
// DXF bulge factor. The bulge is the tangent of 1/4 the included angle.
func bulgeArcPoints(p1, p2 model.Point2D, bulge float64, numSegments int) model.Polygon {
	mx := (p1.X + p2.X) / 2
	mz := (p1.Z + p2.Z) / 2
	dx := p2.X - p1.X
	dz := p2.Z - p1.Z
	chordLen := math.Sqrt(dx*dx + dz*dz)
	if chordLen < 1e-9 {
		return model.Polygon{p1, p2}
	}

	sagitta := math.Abs(bulge) * chordLen / 2
	radius := (chordLen*chordLen/(4*sagitta) + sagitta) / 2

	perpX := -dz / chordLen
	perpZ := dx / chordLen
	dist := radius - sagitta
	if bulge > 0 {
		perpX, perpZ = -perpX, -perpZ
	}
	cx := mx + perpX*dist
	cz := mz + perpZ*dist

	startAngle := math.Atan2(p1.Z-cz, p1.X-cx)
	endAngle := math.Atan2(p2.Z-cz, p2.X-cx)

	if bulge < 0 {
		// Clockwise
		if endAngle > startAngle {
			endAngle -= 2 * math.Pi
		}
	} else if endAngle < startAngle {
		endAngle += 2 * math.Pi
	}

	pts := make(model.Polygon, 0, numSegments+1)
	for i := 0; i <= numSegments; i++ {
		t := float64(i) / float64(numSegments)
		angle := startAngle + t*(endAngle-startAngle)
		pts = append(pts, model.Point2D{
			X: cx + radius*math.Cos(angle),
			Z: cz + radius*math.Sin(angle),
		})
	}
	return pts
}

// circleToPolygon approximates a circle as a regular polygon.
func circleToPolygon(c *entity.Circle, numSegments int) model.Polygon {
	outline := make(model.Polygon, numSegments)
	cx, cz, r := c.Center[0], c.Center[1], c.Radius
	for i := 0; i < numSegments; i++ {
		angle := 2 * math.Pi * float64(i) / float64(numSegments)
		outline[i] = model.Point2D{
			X: cx + r*math.Cos(angle),
			Z: cz + r*math.Sin(angle),
		}
	}
	return outline
}

// arcToPoints converts a DXF ARC entity to a series of line points.
func arcToPoints(a *entity.Arc, numSegments int) []model.Point2D {
	cx, cz := a.Circle.Center[0], a.Circle.Center[1]
	r := a.Circle.Radius

	startRad := a.Angle[0] * math.Pi / 180
	endRad := a.Angle[1] * math.Pi / 180
	if endRad <= startRad {
		endRad += 2 * math.Pi
	}

	pts := make([]model.Point2D, numSegments+1)
	for i := 0; i <= numSegments; i++ {
		t := float64(i) / float64(numSegments)
		angle := startRad + t*(endRad-startRad)
		pts[i] = model.Point2D{
			X: cx + r*math.Cos(angle),
			Z: cz + r*math.Sin(angle),
		}
	}
	return pts
}

// pointsToSegments converts a point sequence to a slice of connected segments.
func pointsToSegments(pts []model.Point2D) []segment {
	segs := make([]segment, 0, len(pts)-1)
	for i := 0; i < len(pts)-1; i++ {
		segs = append(segs, segment{start: pts[i], end: pts[i+1]})
	}
	return segs
}

// chainSegments connects individual segments into closed outlines, largest
// first. tolerance is the maximum distance between endpoints to consider
// them connected. Chains that do not close are dropped.
func chainSegments(segs []segment, tolerance float64) []model.Polygon {
	if len(segs) == 0 {
		return nil
	}

	used := make([]bool, len(segs))
	var outlines []model.Polygon

	for {
		startIdx := -1
		for i, u := range used {
			if !u {
				startIdx = i
				break
			}
		}
		if startIdx == -1 {
			break
		}

		chain := []model.Point2D{segs[startIdx].start, segs[startIdx].end}
		used[startIdx] = true

		changed := true
		for changed {
			changed = false
			tail := chain[len(chain)-1]

			for i, seg := range segs {
				if used[i] {
					continue
				}
				if pointsClose(tail, seg.start, tolerance) {
					chain = append(chain, seg.end)
					used[i] = true
					changed = true
					break
				}
				if pointsClose(tail, seg.end, tolerance) {
					chain = append(chain, seg.start)
					used[i] = true
					changed = true
					break
				}
			}
		}

		if len(chain) >= 4 && pointsClose(chain[0], chain[len(chain)-1], tolerance) {
			outlines = append(outlines, model.Polygon(chain[:len(chain)-1]))
		}
	}

	sort.Slice(outlines, func(i, j int) bool {
		return polygonArea(outlines[i]) > polygonArea(outlines[j])
	})

	return outlines
}

// pointsClose checks whether two points are within the given tolerance.
func pointsClose(a, b model.Point2D, tolerance float64) bool {
	dx := a.X - b.X
	dz := a.Z - b.Z
	return math.Sqrt(dx*dx+dz*dz) <= tolerance
}

// polygonArea computes the absolute area of a polygon using the shoelace formula.
func polygonArea(o model.Polygon) float64 {
	n := len(o)
	if n < 3 {
		return 0
	}
	var area float64
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		area += o[i].X * o[j].Z
		area -= o[j].X * o[i].Z
	}
	return math.Abs(area) / 2
}
