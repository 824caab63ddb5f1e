package engine

import (
	"github.com/piwi3910/PalletStack/internal/model"
)

// ColumnStrategy stacks each box type into its own vertical columns. The
// column footprint is taken from the first box of the group.
type ColumnStrategy struct{}

// NewColumnStrategy returns the column strategy.
func NewColumnStrategy() *ColumnStrategy { return &ColumnStrategy{} }

func (s *ColumnStrategy) ID() string   { return StrategyColumn }
func (s *ColumnStrategy) Name() string { return "Column" }
func (s *ColumnStrategy) Description() string {
	return "Groups boxes by type and builds vertical columns per group"
}

// boxGroup is an ordered group of boxes sharing a key.
type boxGroup struct {
	key   string
	boxes []model.Box
}

// groupByKey groups boxes by GroupKey, keeping first-appearance order.
func groupByKey(boxes []model.Box) []boxGroup {
	index := make(map[string]int)
	var groups []boxGroup
	for _, b := range boxes {
		k := b.GroupKey()
		i, ok := index[k]
		if !ok {
			i = len(groups)
			index[k] = i
			groups = append(groups, boxGroup{key: k})
		}
		groups[i].boxes = append(groups[i].boxes, b)
	}
	return groups
}

// Pack fills Z first, then a new Y layer, then moves to the next X column.
func (s *ColumnStrategy) Pack(boxes []model.Box, pallet model.Pallet) model.PackingResult {
	var placements []model.PlacedBox
	var unplaced []model.Box

	palletW := pallet.Dimensions.Width
	palletD := pallet.Dimensions.Depth
	maxH := pallet.MaxStackHeight

	nextX := 0.0
	for _, g := range groupByKey(boxes) {
		cell := g.boxes[0].Dimensions
		if nextX+cell.Width > palletW+eps || cell.Depth > palletD+eps || cell.Height > maxH+eps {
			unplaced = append(unplaced, g.boxes...)
			continue
		}

		x, y, z := nextX, 0.0, 0.0
		used := false
		for _, b := range g.boxes {
			d := b.Dimensions
			if d.Width > cell.Width+eps || d.Depth > cell.Depth+eps || d.Height > cell.Height+eps {
				unplaced = append(unplaced, b)
				continue
			}

			ok := false
			for x+cell.Width <= palletW+eps {
				if z+cell.Depth > palletD+eps {
					z = 0
					y += cell.Height
				}
				if y+cell.Height > maxH+eps {
					x += cell.Width
					y, z = 0, 0
					continue
				}
				ok = true
				break
			}
			if !ok {
				unplaced = append(unplaced, b)
				continue
			}

			placements = append(placements, model.PlacedBox{
				Box:      b,
				Position: model.Vec3{X: x, Y: y, Z: z},
			})
			used = true
			z += cell.Depth
		}
		if used {
			nextX = x + cell.Width
		}
	}

	return newResult(placements, unplaced, pallet)
}
