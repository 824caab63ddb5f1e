package model

// PackingMetrics summarises one packing result.
type PackingMetrics struct {
	VolumeUtilization float64 `json:"volume_utilization"` // 0..1 of footprint × max stack height
	WeightUtilization float64 `json:"weight_utilization"` // placed weight / pallet max weight
	CenterOfGravity   Vec3    `json:"center_of_gravity"`
	StabilityScore    int     `json:"stability_score"` // 0..100
}

// PackingResult is returned by every packing strategy. Every input box is
// either in Placements or in UnplacedBoxes, exactly once.
type PackingResult struct {
	Placements    []PlacedBox    `json:"placements"`
	UnplacedBoxes []Box          `json:"unplaced_boxes"`
	Metrics       PackingMetrics `json:"metrics"`
}

// PlacedWeight returns the summed weight of all placements.
func (r PackingResult) PlacedWeight() float64 {
	var w float64
	for _, p := range r.Placements {
		w += p.Box.Weight
	}
	return w
}
