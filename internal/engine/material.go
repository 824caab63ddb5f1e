package engine

import (
	"math"
	"sort"

	"github.com/piwi3910/PalletStack/internal/model"
)

// MaterialGroupingStrategy builds horizontal layers bottom-up, most
// load-resistant material first, and keeps boxes of one product in vertical
// columns so the pallet stays stable and easy to pick.
type MaterialGroupingStrategy struct {
	// MinSupport is the fraction of a box base that must rest on the layer below.
	MinSupport float64
	// TargetCoverage is the plan coverage at which a layer attempt is accepted outright.
	TargetCoverage float64
}

// NewMaterialGroupingStrategy returns the strategy with 70% support and 95% target coverage.
func NewMaterialGroupingStrategy() *MaterialGroupingStrategy {
	return &MaterialGroupingStrategy{
		MinSupport:     0.7,
		TargetCoverage: 0.95,
	}
}

func (s *MaterialGroupingStrategy) ID() string   { return StrategyMaterialGrouping }
func (s *MaterialGroupingStrategy) Name() string { return "Material Grouping" }
func (s *MaterialGroupingStrategy) Description() string {
	return "Layers by material resistance with product columns and support checks"
}

// Scoring weights for free rectangle selection.
const (
	scoreSameColumn   = 100.0
	scoreMixedColumn  = -50.0
	scoreBestFit      = 50.0
	scoreBottomLeft   = 10.0
	layerContactRange = 1.0 // mm between a layer floor and the tops supporting it
)

// resistanceGroup is a run of boxes sharing one material weight.
type resistanceGroup struct {
	materialWeight float64
	boxes          []model.Box
}

// layerAttempt is the outcome of packing one candidate layer.
type layerAttempt struct {
	placed    []model.PlacedBox
	remaining []model.Box
	coverage  float64
	height    float64
}

// columnKey identifies a plan position, rounded to 0.1 mm.
type columnKey struct {
	x, z int64
}

func keyOf(x, z float64) columnKey {
	return columnKey{x: int64(math.Round(x * 10)), z: int64(math.Round(z * 10))}
}

// sortForMaterial orders by material weight desc, product asc, base area
// desc, height desc.
func sortForMaterial(boxes []model.Box) []model.Box {
	sorted := make([]model.Box, len(boxes))
	copy(sorted, boxes)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if ma, mb := a.EffectiveMaterialWeight(), b.EffectiveMaterialWeight(); ma != mb {
			return ma > mb
		}
		if a.Product != b.Product {
			return a.Product < b.Product
		}
		if aa, ba := a.Dimensions.BaseArea(), b.Dimensions.BaseArea(); aa != ba {
			return aa > ba
		}
		return a.Dimensions.Height > b.Dimensions.Height
	})
	return sorted
}

// groupByMaterialWeight splits a sorted slice into runs of equal material weight.
func groupByMaterialWeight(sorted []model.Box) []resistanceGroup {
	var groups []resistanceGroup
	for _, b := range sorted {
		mw := b.EffectiveMaterialWeight()
		if n := len(groups); n > 0 && groups[n-1].materialWeight == mw {
			groups[n-1].boxes = append(groups[n-1].boxes, b)
			continue
		}
		groups = append(groups, resistanceGroup{materialWeight: mw, boxes: []model.Box{b}})
	}
	return groups
}

// Pack stacks one material group after the other, layer by layer.
func (s *MaterialGroupingStrategy) Pack(boxes []model.Box, pallet model.Pallet) model.PackingResult {
	var placements []model.PlacedBox
	var unplaced []model.Box

	// first occupant product per plan position, over all layers of this call
	columns := make(map[columnKey]string)
	var below []model.PlacedBox
	currentY := 0.0

	for _, g := range groupByMaterialWeight(sortForMaterial(boxes)) {
		remaining := g.boxes
		for len(remaining) > 0 && currentY < pallet.MaxStackHeight-eps {
			attempt := s.buildLayer(remaining, pallet, currentY, below, columns)
			if len(attempt.placed) == 0 {
				break
			}
			placements = append(placements, attempt.placed...)
			claimColumns(columns, attempt.placed)
			below = attempt.placed
			currentY += attempt.height
			remaining = attempt.remaining
		}
		unplaced = append(unplaced, remaining...)
	}

	return newResult(placements, unplaced, pallet)
}

// buildLayer tries uniform-height layers, most common height first, then a
// mixed-height layer. The first attempt reaching the target coverage wins,
// otherwise the best coverage seen.
func (s *MaterialGroupingStrategy) buildLayer(remaining []model.Box, pallet model.Pallet, y float64, below []model.PlacedBox, columns map[columnKey]string) layerAttempt {
	available := pallet.MaxStackHeight - y

	counts := make(map[float64]int)
	var heights []float64
	var fitting []int
	for i, b := range remaining {
		h := b.Dimensions.Height
		if h > available+eps {
			continue
		}
		fitting = append(fitting, i)
		if counts[h] == 0 {
			heights = append(heights, h)
		}
		counts[h]++
	}
	if len(fitting) == 0 {
		return layerAttempt{remaining: remaining}
	}
	sort.SliceStable(heights, func(i, j int) bool {
		if counts[heights[i]] != counts[heights[j]] {
			return counts[heights[i]] > counts[heights[j]]
		}
		return heights[i] > heights[j]
	})

	var best layerAttempt
	haveBest := false
	consider := func(a layerAttempt) bool {
		if a.coverage >= s.TargetCoverage {
			best = a
			return true
		}
		if !haveBest || a.coverage > best.coverage {
			best = a
			haveBest = true
		}
		return false
	}

	for _, h := range heights {
		var idx []int
		for _, i := range fitting {
			if remaining[i].Dimensions.Height == h {
				idx = append(idx, i)
			}
		}
		if consider(s.packLayer(remaining, idx, pallet, y, below, columns)) {
			return best
		}
	}
	consider(s.packLayer(remaining, fitting, pallet, y, below, columns))
	return best
}

// packLayer runs the maximal-rectangles packer over remaining[idx] at height y.
func (s *MaterialGroupingStrategy) packLayer(remaining []model.Box, idx []int, pallet model.Pallet, y float64, below []model.PlacedBox, columns map[columnKey]string) layerAttempt {
	palletW := pallet.Dimensions.Width
	palletD := pallet.Dimensions.Depth
	packer := newMaxRectsPacker(palletW, palletD)

	var support *supportSurface
	if below != nil {
		support = newSupportSurface(below, y)
	}

	var placed []model.PlacedBox
	used := make(map[int]bool)
	var area, height float64

	for _, i := range scheduleByProduct(remaining, idx) {
		b := remaining[i]

		found := false
		var bestScore float64
		var bestRect planRect
		var bestRotation float64

		for _, o := range orientationsOf(b) {
			for _, r := range packer.candidates(o.w, o.d) {
				fp := planRect{x: r.x, z: r.z, w: o.w, d: o.d}
				if support != nil && !support.accepts(fp, s.MinSupport) {
					continue
				}
				score := scoreRect(r, fp, b.Product, columns, palletW, palletD)
				if !found || score > bestScore {
					found = true
					bestScore = score
					bestRect = fp
					bestRotation = o.rotation
				}
			}
		}
		if !found {
			continue
		}

		packer.place(bestRect)
		placed = append(placed, model.PlacedBox{
			Box:      b,
			Position: model.Vec3{X: bestRect.x, Y: y, Z: bestRect.z},
			Rotation: model.Rotation{Y: bestRotation},
		})
		used[i] = true
		area += bestRect.area()
		height = max(height, b.Dimensions.Height)
	}

	rest := make([]model.Box, 0, len(remaining)-len(used))
	for i, b := range remaining {
		if !used[i] {
			rest = append(rest, b)
		}
	}

	coverage := 0.0
	if footprint := palletW * palletD; footprint > 0 {
		coverage = area / footprint
	}
	return layerAttempt{placed: placed, remaining: rest, coverage: coverage, height: height}
}

// scheduleByProduct orders box indices by product group size, largest group
// first, keeping the incoming order inside a group and between equal sizes.
func scheduleByProduct(boxes []model.Box, idx []int) []int {
	type productRun struct {
		product string
		members []int
	}
	pos := make(map[string]int)
	var runs []productRun
	for _, i := range idx {
		p := boxes[i].Product
		k, ok := pos[p]
		if !ok {
			k = len(runs)
			pos[p] = k
			runs = append(runs, productRun{product: p})
		}
		runs[k].members = append(runs[k].members, i)
	}
	sort.SliceStable(runs, func(a, b int) bool {
		return len(runs[a].members) > len(runs[b].members)
	})
	order := make([]int, 0, len(idx))
	for _, r := range runs {
		order = append(order, r.members...)
	}
	return order
}

// scoreRect rates placing footprint fp in free rect r.
func scoreRect(r, fp planRect, product string, columns map[columnKey]string, palletW, palletD float64) float64 {
	var score float64
	if product != "" {
		if owner, ok := columns[keyOf(fp.x, fp.z)]; ok {
			if owner == product {
				score += scoreSameColumn
			} else {
				score += scoreMixedColumn
			}
		}
	}
	if r.area() > 0 {
		waste := r.area() - fp.area()
		score += scoreBestFit * (1 - waste/r.area())
	}
	if span := palletW + palletD; span > 0 {
		score += scoreBottomLeft * (1 - (fp.x+fp.z)/span)
	}
	return score
}

// claimColumns records the product of each placement whose position has no owner yet.
func claimColumns(columns map[columnKey]string, placed []model.PlacedBox) {
	for _, p := range placed {
		if p.Box.Product == "" {
			continue
		}
		k := keyOf(p.Position.X, p.Position.Z)
		if _, ok := columns[k]; !ok {
			columns[k] = p.Box.Product
		}
	}
}

// supportSurface describes the layer beneath a candidate layer.
type supportSurface struct {
	tops   []planRect // footprints whose top meets the new layer floor
	bounds planRect   // combined plan bounding box of the whole layer
}

func newSupportSurface(below []model.PlacedBox, y float64) *supportSurface {
	s := &supportSurface{}
	minX, minZ := math.Inf(1), math.Inf(1)
	maxX, maxZ := math.Inf(-1), math.Inf(-1)
	for _, p := range below {
		d := p.EffectiveDimensions()
		r := planRect{x: p.Position.X, z: p.Position.Z, w: d.Width, d: d.Depth}
		minX = math.Min(minX, r.x)
		minZ = math.Min(minZ, r.z)
		maxX = math.Max(maxX, r.x+r.w)
		maxZ = math.Max(maxZ, r.z+r.d)
		if math.Abs(p.Top()-y) <= layerContactRange {
			s.tops = append(s.tops, r)
		}
	}
	if len(below) > 0 {
		s.bounds = planRect{x: minX, z: minZ, w: maxX - minX, d: maxZ - minZ}
	}
	return s
}

// accepts reports whether fp stays inside the layer below and rests on at
// least minSupport of its base area.
func (s *supportSurface) accepts(fp planRect, minSupport float64) bool {
	if !containsRect(s.bounds, fp) {
		return false
	}
	if fp.area() <= 0 {
		return false
	}
	var supported float64
	for _, t := range s.tops {
		supported += planOverlap(fp, t)
	}
	return supported/fp.area() >= minSupport-1e-9
}
