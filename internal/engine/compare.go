package engine

import (
	"github.com/piwi3910/PalletStack/internal/model"
)

// ComparisonResult holds the packing result and summary figures for one strategy.
type ComparisonResult struct {
	StrategyID        string
	StrategyName      string
	Result            model.PackingResult
	PlacedCount       int
	UnplacedCount     int
	VolumeUtilization float64
	WeightUtilization float64
	StabilityScore    int
}

// CompareStrategies packs the same boxes with every strategy in the registry
// and returns the results in registry order. This enables side-by-side
// comparison of strategies for one pallet.
func CompareStrategies(registry *Registry, boxes []model.Box, pallet model.Pallet) []ComparisonResult {
	strategies := registry.List()
	results := make([]ComparisonResult, 0, len(strategies))

	for _, s := range strategies {
		res := s.Pack(boxes, pallet)
		results = append(results, ComparisonResult{
			StrategyID:        s.ID(),
			StrategyName:      s.Name(),
			Result:            res,
			PlacedCount:       len(res.Placements),
			UnplacedCount:     len(res.UnplacedBoxes),
			VolumeUtilization: res.Metrics.VolumeUtilization,
			WeightUtilization: res.Metrics.WeightUtilization,
			StabilityScore:    res.Metrics.StabilityScore,
		})
	}

	return results
}

// BestComparison picks the result that places the most boxes, breaking ties
// by stability and then volume utilisation. It returns -1 for an empty slice.
func BestComparison(results []ComparisonResult) int {
	best := -1
	for i, r := range results {
		if best < 0 {
			best = i
			continue
		}
		b := results[best]
		switch {
		case r.PlacedCount != b.PlacedCount:
			if r.PlacedCount > b.PlacedCount {
				best = i
			}
		case r.StabilityScore != b.StabilityScore:
			if r.StabilityScore > b.StabilityScore {
				best = i
			}
		case r.VolumeUtilization > b.VolumeUtilization:
			best = i
		}
	}
	return best
}
