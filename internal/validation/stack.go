package validation

import (
	"fmt"
	"math"

	"github.com/piwi3910/PalletStack/internal/model"
)

// ValidateFloorDimensions checks that every floor shares the plan dimensions
// of the base floor (BR-301).
func ValidateFloorDimensions(stack model.StackedPallet) model.ValidationResult {
	if len(stack.Floors) == 0 {
		return model.NewValidationResult()
	}
	base := stack.Floors[0].Pallet.Dimensions
	var violations []model.Violation
	for i, f := range stack.Floors[1:] {
		d := f.Pallet.Dimensions
		if math.Abs(d.Width-base.Width) > 0.001 || math.Abs(d.Depth-base.Depth) > 0.001 {
			violations = append(violations, errorf(CodeFloorDimensions,
				fmt.Sprintf("Floor %d of stack %s is %.0f x %.0f mm, base is %.0f x %.0f mm",
					i+2, stack.ID, d.Width, d.Depth, base.Width, base.Depth),
				stack.ID, f.Pallet.ID))
		}
	}
	return model.NewValidationResult(violations...)
}

// ValidateSeparators checks that a separator lies between every pair of
// adjacent floors (BR-302).
func ValidateSeparators(stack model.StackedPallet) model.ValidationResult {
	var violations []model.Violation
	for i := 0; i < len(stack.Floors)-1; i++ {
		if stack.Floors[i].SeparatorAbove == nil {
			violations = append(violations, errorf(CodeMissingSeparator,
				fmt.Sprintf("Stack %s has no separator between floor %d and floor %d", stack.ID, i+1, i+2),
				stack.ID))
		}
	}
	return model.NewValidationResult(violations...)
}

// ValidateStackHeight checks the total stack height against the height
// available in the container (BR-303).
func ValidateStackHeight(stack model.StackedPallet, maxHeight float64) model.ValidationResult {
	h := stack.TotalHeight()
	if h > maxHeight {
		return model.NewValidationResult(errorf(CodeStackTooHigh,
			fmt.Sprintf("Stack %s is %.0f mm high, limit is %.0f mm", stack.ID, h, maxHeight),
			stack.ID))
	}
	return model.NewValidationResult()
}

// ValidateStackWeight checks that the base pallet can carry everything above
// its own deck (BR-304).
func ValidateStackWeight(stack model.StackedPallet) model.ValidationResult {
	if len(stack.Floors) == 0 {
		return model.NewValidationResult()
	}
	base := stack.Base().Pallet
	load := stack.LoadWeight()
	if load > base.MaxWeight {
		return model.NewValidationResult(errorf(CodeStackOverweight,
			fmt.Sprintf("Stack %s puts %.1f kg on base pallet %s (limit %.1f kg)", stack.ID, load, base.ID, base.MaxWeight),
			stack.ID, base.ID))
	}
	return model.NewValidationResult()
}
