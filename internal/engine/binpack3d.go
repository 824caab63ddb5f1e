package engine

import (
	"sort"

	"github.com/piwi3910/PalletStack/internal/geometry"
	"github.com/piwi3910/PalletStack/internal/model"
)

// BinPacking3DStrategy is first-fit-decreasing by volume over a list of free
// cuboid spaces that are split after every placement.
type BinPacking3DStrategy struct{}

// NewBinPacking3DStrategy returns the 3D bin packing strategy.
func NewBinPacking3DStrategy() *BinPacking3DStrategy { return &BinPacking3DStrategy{} }

func (s *BinPacking3DStrategy) ID() string   { return StrategyBinPacking3D }
func (s *BinPacking3DStrategy) Name() string { return "3D Bin Packing" }
func (s *BinPacking3DStrategy) Description() string {
	return "First-fit decreasing by volume with free space splitting"
}

// space is a free cuboid on the pallet.
type space struct {
	x, y, z float64
	w, h, d float64
}

func (sp space) fits(w, h, d float64) bool {
	return w <= sp.w+eps && h <= sp.h+eps && d <= sp.d+eps
}

// orientation is a candidate Y rotation with its effective plan size.
type orientation struct {
	rotation float64
	w, d     float64
}

func orientationsOf(b model.Box) []orientation {
	dims := b.Dimensions
	o := []orientation{{rotation: 0, w: dims.Width, d: dims.Depth}}
	if dims.Width != dims.Depth {
		o = append(o, orientation{rotation: 90, w: dims.Depth, d: dims.Width})
	}
	return o
}

// sortByVolumeDesc returns a copy of boxes, largest volume first.
func sortByVolumeDesc(boxes []model.Box) []model.Box {
	sorted := make([]model.Box, len(boxes))
	copy(sorted, boxes)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Dimensions.Volume() > sorted[j].Dimensions.Volume()
	})
	return sorted
}

// Pack places each box in the first free space that holds it in either orientation.
func (s *BinPacking3DStrategy) Pack(boxes []model.Box, pallet model.Pallet) model.PackingResult {
	var placements []model.PlacedBox
	var unplaced []model.Box

	spaces := []space{{
		w: pallet.Dimensions.Width,
		h: pallet.MaxStackHeight,
		d: pallet.Dimensions.Depth,
	}}

	for _, b := range sortByVolumeDesc(boxes) {
		placed := false
		h := b.Dimensions.Height

	search:
		for i, sp := range spaces {
			for _, o := range orientationsOf(b) {
				if !sp.fits(o.w, h, o.d) {
					continue
				}
				candidate := model.PlacedBox{
					Box:      b,
					Position: model.Vec3{X: sp.x, Y: sp.y, Z: sp.z},
					Rotation: model.Rotation{Y: o.rotation},
				}
				if collides(geometry.BoxBounds(candidate), placements) {
					continue
				}
				placements = append(placements, candidate)
				spaces = splitSpace(spaces, i, o.w, h, o.d)
				placed = true
				break search
			}
		}

		if !placed {
			unplaced = append(unplaced, b)
		}
	}

	return newResult(placements, unplaced, pallet)
}

// splitSpace removes spaces[i] and adds the residual right, above and behind
// spaces left by a w×h×d box at its origin. The list is re-sorted by
// (y, x, z) so that low, front-left spaces are tried first.
func splitSpace(spaces []space, i int, w, h, d float64) []space {
	used := spaces[i]
	next := make([]space, 0, len(spaces)+2)
	next = append(next, spaces[:i]...)
	next = append(next, spaces[i+1:]...)

	residuals := []space{
		// right
		{x: used.x + w, y: used.y, z: used.z, w: used.w - w, h: used.h, d: used.d},
		// above
		{x: used.x, y: used.y + h, z: used.z, w: w, h: used.h - h, d: d},
		// behind
		{x: used.x, y: used.y, z: used.z + d, w: w, h: used.h, d: used.d - d},
	}
	for _, r := range residuals {
		if r.w > eps && r.h > eps && r.d > eps {
			next = append(next, r)
		}
	}

	sort.SliceStable(next, func(a, b int) bool {
		if next[a].y != next[b].y {
			return next[a].y < next[b].y
		}
		if next[a].x != next[b].x {
			return next[a].x < next[b].x
		}
		return next[a].z < next[b].z
	})
	return next
}
