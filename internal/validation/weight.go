package validation

import (
	"fmt"
	"math"

	"github.com/piwi3910/PalletStack/internal/geometry"
	"github.com/piwi3910/PalletStack/internal/model"
)

// ValidatePalletWeight checks the box weight of a floor against the pallet's
// capacity (BR-101). Above 90% of capacity a warning is raised.
func ValidatePalletWeight(floor model.PalletFloor) model.ValidationResult {
	return checkCapacity(CodePalletOverweight, "Pallet "+floor.Pallet.ID, floor.BoxWeight(), floor.Pallet.MaxWeight, floor.Pallet.ID)
}

// ValidateTruckWeight checks the total weight of all stacks in a truck,
// pallets included, against the truck's capacity (BR-102).
func ValidateTruckWeight(truck model.Truck) model.ValidationResult {
	var total float64
	for _, pp := range truck.Pallets {
		total += pp.Stack.TotalWeight()
	}
	return checkCapacity(CodeTruckOverweight, "Truck "+truck.ID, total, truck.MaxWeight, truck.ID)
}

func checkCapacity(code, subject string, load, capacity float64, id string) model.ValidationResult {
	switch {
	case load > capacity:
		return model.NewValidationResult(errorf(code,
			fmt.Sprintf("%s is overloaded: %.1f kg of %.1f kg", subject, load, capacity), id))
	case load > capacity*WeightWarningRatio:
		return model.NewValidationResult(warnf(code,
			fmt.Sprintf("%s is at %.0f%% of capacity (%.1f kg of %.1f kg)", subject, load/capacity*100, load, capacity), id))
	default:
		return model.NewValidationResult()
	}
}

// ValidateWeightDistribution warns when the centre of gravity is more than
// width/6 or depth/6 away from the pallet centre (BR-104). The result is
// always valid.
func ValidateWeightDistribution(boxes []model.PlacedBox, pallet model.Pallet) model.ValidationResult {
	if len(boxes) == 0 {
		return model.NewValidationResult()
	}
	cog := geometry.CenterOfGravity(boxes)
	dx := math.Abs(cog.X - pallet.Dimensions.Width/2)
	dz := math.Abs(cog.Z - pallet.Dimensions.Depth/2)

	var violations []model.Violation
	if dx > pallet.Dimensions.Width/6 || dz > pallet.Dimensions.Depth/6 {
		violations = append(violations, warnf(CodeWeightDistribution,
			fmt.Sprintf("Load is off-centre on pallet %s (dx %.0f mm, dz %.0f mm)", pallet.ID, dx, dz),
			pallet.ID))
	}
	return model.ValidationResult{IsValid: true, Violations: nonNilViolations(violations)}
}

// ValidateFragileLoad checks that the weight stacked on a fragile box does
// not exceed its fragility limit (BR-103). A fragile box without a limit may
// carry nothing.
func ValidateFragileLoad(boxes []model.PlacedBox) model.ValidationResult {
	var violations []model.Violation
	g := newBoxGraph(boxes)
	for i, b := range boxes {
		if !b.Box.Fragile {
			continue
		}
		load := g.loadAbove(i)
		if load <= 0 {
			continue
		}
		limit := 0.0
		if b.Box.FragilityMaxWeight != nil {
			limit = *b.Box.FragilityMaxWeight
		}
		if b.Box.FragilityMaxWeight == nil || load > limit {
			violations = append(violations, errorf(CodeFragileOverload,
				fmt.Sprintf("Fragile box %s carries %.1f kg (limit %.1f kg)", b.Box.ID, load, limit),
				b.Box.ID))
		}
	}
	return model.NewValidationResult(violations...)
}
