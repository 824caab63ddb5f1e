package engine

// planRect is an axis-aligned rectangle on the pallet plan (X/Z).
type planRect struct {
	x, z, w, d float64
}

func (r planRect) area() float64 { return r.w * r.d }

// maxRectsPacker tracks the maximal free rectangles of one layer.
type maxRectsPacker struct {
	freeRects []planRect
}

func newMaxRectsPacker(width, depth float64) *maxRectsPacker {
	return &maxRectsPacker{
		freeRects: []planRect{{0, 0, width, depth}},
	}
}

// candidates returns the free rectangles that can hold a w×d footprint,
// in free-list order.
func (mp *maxRectsPacker) candidates(w, d float64) []planRect {
	var out []planRect
	for _, r := range mp.freeRects {
		if w <= r.w+eps && d <= r.d+eps {
			out = append(out, r)
		}
	}
	return out
}

// place marks the footprint as used.
func (mp *maxRectsPacker) place(placed planRect) {
	mp.splitAroundPlacement(placed)
}

// splitAroundPlacement removes all free rects that overlap the placed rect
// and generates up to four maximal sub-rects from each overlap. Sub-rects are
// appended in a fixed left/right/front/back order, then contained rects are
// pruned.
func (mp *maxRectsPacker) splitAroundPlacement(placed planRect) {
	var newRects []planRect

	for _, r := range mp.freeRects {
		if !rectsOverlap(r, placed) {
			newRects = append(newRects, r)
			continue
		}

		// Left strip (full depth of original rect)
		if placed.x > r.x+eps {
			newRects = append(newRects, planRect{
				x: r.x, z: r.z,
				w: placed.x - r.x, d: r.d,
			})
		}
		// Right strip
		if placed.x+placed.w < r.x+r.w-eps {
			newRects = append(newRects, planRect{
				x: placed.x + placed.w, z: r.z,
				w: (r.x + r.w) - (placed.x + placed.w), d: r.d,
			})
		}
		// Front strip (full width of original rect)
		if placed.z > r.z+eps {
			newRects = append(newRects, planRect{
				x: r.x, z: r.z,
				w: r.w, d: placed.z - r.z,
			})
		}
		// Back strip
		if placed.z+placed.d < r.z+r.d-eps {
			newRects = append(newRects, planRect{
				x: r.x, z: placed.z + placed.d,
				w: r.w, d: (r.z + r.d) - (placed.z + placed.d),
			})
		}
	}

	mp.freeRects = pruneContained(newRects)
}

// rectsOverlap returns true if two rectangles overlap (not just touch).
func rectsOverlap(a, b planRect) bool {
	return a.x < b.x+b.w-eps && a.x+a.w > b.x+eps &&
		a.z < b.z+b.d-eps && a.z+a.d > b.z+eps
}

// pruneContained removes any rect that is fully contained within another.
// Of two identical rects only the first is kept.
func pruneContained(rects []planRect) []planRect {
	if len(rects) <= 1 {
		return rects
	}
	kept := make([]planRect, 0, len(rects))
	for i, a := range rects {
		contained := false
		for j, b := range rects {
			if i == j || !containsRect(b, a) {
				continue
			}
			if containsRect(a, b) && j > i {
				// identical: keep the earlier one
				continue
			}
			contained = true
			break
		}
		if !contained {
			kept = append(kept, a)
		}
	}
	return kept
}

// containsRect returns true if outer fully contains inner.
func containsRect(outer, inner planRect) bool {
	return outer.x <= inner.x+eps && outer.z <= inner.z+eps &&
		outer.x+outer.w >= inner.x+inner.w-eps &&
		outer.z+outer.d >= inner.z+inner.d-eps
}

// planOverlap returns the overlapping area of two plan rectangles.
func planOverlap(a, b planRect) float64 {
	ox := min(a.x+a.w, b.x+b.w) - max(a.x, b.x)
	oz := min(a.z+a.d, b.z+b.d) - max(a.z, b.z)
	if ox <= 0 || oz <= 0 {
		return 0
	}
	return ox * oz
}
