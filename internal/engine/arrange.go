package engine

import (
	"github.com/piwi3910/PalletStack/internal/model"
)

// ArrangeRows places stacks unrotated in rows across an area: left to right
// along X, then the next row further along Z. origin is the min corner of
// the area and gap the spacing between neighbours. Stacks that do not fit
// are returned as leftovers in input order.
func ArrangeRows(stacks []model.StackedPallet, origin model.Point2D, width, depth, gap float64) ([]model.PlacedPallet, []model.StackedPallet) {
	placed := []model.PlacedPallet{}
	var leftover []model.StackedPallet

	x, z := 0.0, 0.0
	rowDepth := 0.0
	for _, s := range stacks {
		if len(s.Floors) == 0 {
			continue
		}
		dims := s.Base().Pallet.Dimensions

		if x > 0 && x+dims.Width > width+eps {
			x = 0
			z += rowDepth + gap
			rowDepth = 0
		}
		if x+dims.Width > width+eps || z+dims.Depth > depth+eps {
			leftover = append(leftover, s)
			continue
		}

		placed = append(placed, model.PlacedPallet{
			Stack: s,
			Position: model.Vec3{
				X: origin.X + x + dims.Width/2,
				Z: origin.Z + z + dims.Depth/2,
			},
		})
		x += dims.Width + gap
		if dims.Depth > rowDepth {
			rowDepth = dims.Depth
		}
	}
	return placed, leftover
}
