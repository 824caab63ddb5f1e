package engine

import (
	"sort"

	"github.com/piwi3910/PalletStack/internal/model"
)

// TypeGroupStrategy keeps boxes of one type together and loads fragile
// boxes last so they end up on top. Packing is a plain shelf scan without
// rotation.
type TypeGroupStrategy struct{}

// NewTypeGroupStrategy returns the type-group strategy.
func NewTypeGroupStrategy() *TypeGroupStrategy { return &TypeGroupStrategy{} }

func (s *TypeGroupStrategy) ID() string   { return StrategyTypeGroup }
func (s *TypeGroupStrategy) Name() string { return "Type Group" }
func (s *TypeGroupStrategy) Description() string {
	return "Sorts by type, fragile last and heaviest first, then shelf-packs"
}

// sortTypeGroup orders by group key, then non-fragile before fragile, then weight descending.
func sortTypeGroup(boxes []model.Box) []model.Box {
	sorted := make([]model.Box, len(boxes))
	copy(sorted, boxes)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.GroupKey() != b.GroupKey() {
			return a.GroupKey() < b.GroupKey()
		}
		if a.Fragile != b.Fragile {
			return !a.Fragile
		}
		return a.Weight > b.Weight
	})
	return sorted
}

// Pack scans along X, wraps to the next row in Z and then to a new layer in Y.
func (s *TypeGroupStrategy) Pack(boxes []model.Box, pallet model.Pallet) model.PackingResult {
	var placements []model.PlacedBox
	var unplaced []model.Box

	palletW := pallet.Dimensions.Width
	palletD := pallet.Dimensions.Depth
	maxH := pallet.MaxStackHeight

	var x, y, z float64
	var rowDepth, layerHeight float64

	for _, b := range sortTypeGroup(boxes) {
		d := b.Dimensions
		if !fitsPallet(d.Width, d.Height, d.Depth, pallet) {
			unplaced = append(unplaced, b)
			continue
		}

		// wrap to next row
		if x+d.Width > palletW+eps {
			x = 0
			z += rowDepth
			rowDepth = 0
		}
		// wrap to next layer
		if z+d.Depth > palletD+eps {
			x, z = 0, 0
			rowDepth = 0
			y += layerHeight
			layerHeight = 0
		}
		if y+d.Height > maxH+eps {
			unplaced = append(unplaced, b)
			continue
		}

		placements = append(placements, model.PlacedBox{
			Box:      b,
			Position: model.Vec3{X: x, Y: y, Z: z},
		})
		x += d.Width
		rowDepth = max(rowDepth, d.Depth)
		layerHeight = max(layerHeight, d.Height)
	}

	return newResult(placements, unplaced, pallet)
}
