// Package engine holds the packing strategies that turn a list of boxes and
// a pallet into box placements, the registry that selects them by id, and
// the multi-pallet builder that spreads an overflow over several stacks.
package engine

import (
	"github.com/piwi3910/PalletStack/internal/geometry"
	"github.com/piwi3910/PalletStack/internal/model"
)

// Strategy ids of the built-in strategies.
const (
	StrategyColumn           = "column"
	StrategyTypeGroup        = "type-group"
	StrategyBinPacking3D     = "bin-packing-3d"
	StrategyMaterialGrouping = "material-grouping"
)

// Strategy computes box placements on a single pallet floor. Pack must not
// mutate its arguments and must account for every input box exactly once.
type Strategy interface {
	ID() string
	Name() string
	Description() string
	Pack(boxes []model.Box, pallet model.Pallet) model.PackingResult
}

// newResult assembles a result and computes its metrics.
func newResult(placements []model.PlacedBox, unplaced []model.Box, pallet model.Pallet) model.PackingResult {
	if placements == nil {
		placements = []model.PlacedBox{}
	}
	if unplaced == nil {
		unplaced = []model.Box{}
	}
	return model.PackingResult{
		Placements:    placements,
		UnplacedBoxes: unplaced,
		Metrics:       computeMetrics(placements, pallet),
	}
}

// computeMetrics derives utilisation, centre of gravity and stability.
func computeMetrics(placements []model.PlacedBox, pallet model.Pallet) model.PackingMetrics {
	var usedVolume, usedWeight float64
	for _, p := range placements {
		usedVolume += p.Box.Dimensions.Volume()
		usedWeight += p.Box.Weight
	}

	available := pallet.FootprintArea() * pallet.MaxStackHeight
	volumeUtil := 0.0
	if available > 0 {
		volumeUtil = clamp01(usedVolume / available)
	}
	weightUtil := 0.0
	if pallet.MaxWeight > 0 {
		weightUtil = usedWeight / pallet.MaxWeight
	}

	return model.PackingMetrics{
		VolumeUtilization: volumeUtil,
		WeightUtilization: weightUtil,
		CenterOfGravity:   geometry.CenterOfGravity(placements),
		StabilityScore:    geometry.StabilityScore(placements, pallet),
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// fitsPallet reports whether a box with the given effective dimensions can
// fit on an empty pallet at all.
func fitsPallet(w, h, d float64, pallet model.Pallet) bool {
	return w <= pallet.Dimensions.Width+eps &&
		d <= pallet.Dimensions.Depth+eps &&
		h <= pallet.MaxStackHeight+eps
}

// collides reports whether candidate overlaps any existing placement.
func collides(candidate geometry.AABB, placements []model.PlacedBox) bool {
	for _, p := range placements {
		if geometry.Intersects(candidate, geometry.BoxBounds(p), geometry.DefaultTolerance) {
			return true
		}
	}
	return false
}

const eps = 0.001
