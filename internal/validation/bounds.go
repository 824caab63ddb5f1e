package validation

import (
	"fmt"

	"github.com/piwi3910/PalletStack/internal/geometry"
	"github.com/piwi3910/PalletStack/internal/model"
)

// ValidateBoxBounds checks that every box lies within the pallet plan and
// below the pallet's maximum stack height (BR-001).
func ValidateBoxBounds(boxes []model.PlacedBox, pallet model.Pallet) model.ValidationResult {
	var violations []model.Violation
	const tol = 0.001
	for _, b := range boxes {
		bb := geometry.BoxBounds(b)
		if bb.MinX < -tol || bb.MinZ < -tol || bb.MinY < -tol ||
			bb.MaxX > pallet.Dimensions.Width+tol ||
			bb.MaxZ > pallet.Dimensions.Depth+tol ||
			bb.MaxY > pallet.MaxStackHeight+tol {
			violations = append(violations, errorf(CodeBoxOutOfBounds,
				fmt.Sprintf("Box %s exceeds pallet bounds (%.0f x %.0f x %.0f mm)",
					b.Box.ID, pallet.Dimensions.Width, pallet.MaxStackHeight, pallet.Dimensions.Depth),
				b.Box.ID))
		}
	}
	return model.NewValidationResult(violations...)
}
