package validation

import (
	"fmt"

	"github.com/piwi3910/PalletStack/internal/geometry"
	"github.com/piwi3910/PalletStack/internal/model"
)

// ValidateNoBoxCollisions checks that no two boxes overlap (BR-002).
func ValidateNoBoxCollisions(boxes []model.PlacedBox) model.ValidationResult {
	var violations []model.Violation
	bounds := make([]geometry.AABB, len(boxes))
	for i, b := range boxes {
		bounds[i] = geometry.BoxBounds(b)
	}
	for i := 0; i < len(boxes); i++ {
		for j := i + 1; j < len(boxes); j++ {
			if geometry.Intersects(bounds[i], bounds[j], geometry.DefaultTolerance) {
				violations = append(violations, errorf(CodeBoxCollision,
					fmt.Sprintf("Box %s collides with box %s", boxes[i].Box.ID, boxes[j].Box.ID),
					boxes[i].Box.ID, boxes[j].Box.ID))
			}
		}
	}
	return model.NewValidationResult(violations...)
}

// ValidateNoPalletCollisions checks that no two placed pallets overlap
// (BR-003). Pallet envelopes include the full stack height.
func ValidateNoPalletCollisions(pallets []model.PlacedPallet) model.ValidationResult {
	var violations []model.Violation
	bounds := make([]geometry.AABB, len(pallets))
	for i, pp := range pallets {
		bounds[i] = geometry.PalletBounds(pp)
	}
	for i := 0; i < len(pallets); i++ {
		for j := i + 1; j < len(pallets); j++ {
			if geometry.Intersects(bounds[i], bounds[j], geometry.DefaultTolerance) {
				a, b := pallets[i].Stack.ID, pallets[j].Stack.ID
				violations = append(violations, errorf(CodePalletCollision,
					fmt.Sprintf("Pallet %s collides with pallet %s", a, b), a, b))
			}
		}
	}
	return model.NewValidationResult(violations...)
}
