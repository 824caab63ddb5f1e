// Package geometry provides the axis-aligned bounding box kernel shared by
// the packing strategies and the validators, plus load analysis (centre of
// gravity and stability score).
package geometry

import (
	"math"

	"github.com/piwi3910/PalletStack/internal/model"
)

// DefaultTolerance is the overlap, in mm, that is ignored by Intersects so
// that boxes sharing a face do not count as colliding.
const DefaultTolerance = 1.0

// AABB is an axis-aligned bounding box in mm.
type AABB struct {
	MinX, MinY, MinZ float64
	MaxX, MaxY, MaxZ float64
}

// Width returns the X extent.
func (b AABB) Width() float64 { return b.MaxX - b.MinX }

// Height returns the Y extent.
func (b AABB) Height() float64 { return b.MaxY - b.MinY }

// Depth returns the Z extent.
func (b AABB) Depth() float64 { return b.MaxZ - b.MinZ }

// Center returns the midpoint of the box.
func (b AABB) Center() model.Vec3 {
	return model.Vec3{
		X: (b.MinX + b.MaxX) / 2,
		Y: (b.MinY + b.MaxY) / 2,
		Z: (b.MinZ + b.MaxZ) / 2,
	}
}

// BaseArea returns the plan area.
func (b AABB) BaseArea() float64 { return b.Width() * b.Depth() }

// BoxBounds returns the bounding box of a placed box. A 90 or 270 degree Y
// rotation swaps width and depth.
func BoxBounds(p model.PlacedBox) AABB {
	d := p.EffectiveDimensions()
	return AABB{
		MinX: p.Position.X,
		MinY: p.Position.Y,
		MinZ: p.Position.Z,
		MaxX: p.Position.X + d.Width,
		MaxY: p.Position.Y + d.Height,
		MaxZ: p.Position.Z + d.Depth,
	}
}

// PalletFootprint returns the four plan corners of a placed pallet after
// rotating the base floor around the pallet centre.
func PalletFootprint(pp model.PlacedPallet) [4]model.Point2D {
	var w, d float64
	if len(pp.Stack.Floors) > 0 {
		dims := pp.Stack.Floors[0].Pallet.Dimensions
		w, d = dims.Width, dims.Depth
	}
	hw, hd := w/2, d/2
	corners := [4]model.Point2D{
		{X: -hw, Z: -hd},
		{X: hw, Z: -hd},
		{X: hw, Z: hd},
		{X: -hw, Z: hd},
	}
	cos, sin := quarterTrig(pp.YRotation)
	for i, c := range corners {
		corners[i] = model.Point2D{
			X: pp.Position.X + c.X*cos + c.Z*sin,
			Z: pp.Position.Z - c.X*sin + c.Z*cos,
		}
	}
	return corners
}

// PalletBounds returns the bounding box of a placed pallet: the envelope of
// its rotated footprint extruded by the stack's total height.
func PalletBounds(pp model.PlacedPallet) AABB {
	corners := PalletFootprint(pp)
	b := AABB{
		MinX: math.Inf(1), MinZ: math.Inf(1),
		MaxX: math.Inf(-1), MaxZ: math.Inf(-1),
	}
	for _, c := range corners {
		b.MinX = math.Min(b.MinX, c.X)
		b.MaxX = math.Max(b.MaxX, c.X)
		b.MinZ = math.Min(b.MinZ, c.Z)
		b.MaxZ = math.Max(b.MaxZ, c.Z)
	}
	b.MinY = pp.Position.Y
	b.MaxY = pp.Position.Y + pp.Stack.TotalHeight()
	return b
}

// quarterTrig returns exact cos/sin for multiples of 90 degrees and falls
// back to math.Cos/Sin otherwise.
func quarterTrig(deg float64) (float64, float64) {
	if math.Mod(deg, 90) == 0 {
		switch model.NormalizeRotation(deg) {
		case 90:
			return 0, 1
		case 180:
			return -1, 0
		case 270:
			return 0, -1
		default:
			return 1, 0
		}
	}
	rad := deg * math.Pi / 180
	return math.Cos(rad), math.Sin(rad)
}

// Intersects reports whether a and b overlap by more than tolerance on every
// axis. Boxes that merely touch never intersect for tolerance >= 0.
func Intersects(a, b AABB, tolerance float64) bool {
	return a.MinX < b.MaxX-tolerance && a.MaxX > b.MinX+tolerance &&
		a.MinY < b.MaxY-tolerance && a.MaxY > b.MinY+tolerance &&
		a.MinZ < b.MaxZ-tolerance && a.MaxZ > b.MinZ+tolerance
}

// PlanOverlapArea returns the overlap of the X/Z projections of a and b.
func PlanOverlapArea(a, b AABB) float64 {
	ox := math.Min(a.MaxX, b.MaxX) - math.Max(a.MinX, b.MinX)
	oz := math.Min(a.MaxZ, b.MaxZ) - math.Max(a.MinZ, b.MinZ)
	if ox <= 0 || oz <= 0 {
		return 0
	}
	return ox * oz
}

// RestsOn reports whether upper sits directly on lower: the bottom of upper
// is within tolerance of the top of lower and their plans overlap.
func RestsOn(upper, lower AABB, tolerance float64) bool {
	return math.Abs(upper.MinY-lower.MaxY) <= tolerance && PlanOverlapArea(upper, lower) > 0
}
