package validation

import (
	"fmt"

	"github.com/piwi3910/PalletStack/internal/geometry"
	"github.com/piwi3910/PalletStack/internal/model"
)

// ValidateSupport checks that every elevated box rests on at least 60% of
// its base area (BR-004). Boxes on the deck are fully supported.
func ValidateSupport(boxes []model.PlacedBox) model.ValidationResult {
	var violations []model.Violation
	g := newBoxGraph(boxes)
	for i, b := range boxes {
		bb := g.bounds[i]
		if bb.MinY <= ContactTolerance {
			continue
		}
		area := bb.BaseArea()
		if area <= 0 {
			continue
		}
		var supported float64
		for _, j := range g.below[i] {
			supported += geometry.PlanOverlapArea(bb, g.bounds[j])
		}
		ratio := supported / area
		if ratio > 1 {
			ratio = 1
		}
		if ratio < MinSupportRatio {
			violations = append(violations, errorf(CodeInsufficientSupport,
				fmt.Sprintf("Box %s is only %.0f%% supported (minimum %.0f%%)", b.Box.ID, ratio*100, MinSupportRatio*100),
				b.Box.ID))
		}
	}
	return model.NewValidationResult(violations...)
}
