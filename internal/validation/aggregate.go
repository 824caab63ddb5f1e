package validation

import "github.com/piwi3910/PalletStack/internal/model"

// ValidateFloor runs every box-level rule against one floor.
func ValidateFloor(floor model.PalletFloor) model.ValidationResult {
	boxes := floor.Boxes
	pallet := floor.Pallet
	return model.MergeResults(
		ValidateBoxBounds(boxes, pallet),
		ValidateNoBoxCollisions(boxes),
		ValidateSupport(boxes),
		ValidatePalletWeight(floor),
		ValidateFragileLoad(boxes),
		ValidateWeightDistribution(boxes, pallet),
		ValidateStackable(boxes),
		ValidateInvertedPyramid(boxes),
		ValidateStability(boxes, pallet),
		ValidateCenterOfGravity(boxes, pallet),
		ValidateCoGHeight(boxes),
	)
}

// ValidateStack runs the stack rules and every floor's rules. The height
// check is skipped when containerHeight is not positive.
func ValidateStack(stack model.StackedPallet, containerHeight float64) model.ValidationResult {
	results := []model.ValidationResult{
		ValidateFloorDimensions(stack),
		ValidateSeparators(stack),
		ValidateStackWeight(stack),
	}
	if containerHeight > 0 {
		results = append(results, ValidateStackHeight(stack, containerHeight))
	}
	for _, f := range stack.Floors {
		results = append(results, ValidateFloor(f))
	}
	return model.MergeResults(results...)
}

// ValidateTruck checks the truck load, pallet placement and every stack.
// Stack heights are covered by BR-404 rather than BR-303.
func ValidateTruck(truck model.Truck) model.ValidationResult {
	results := []model.ValidationResult{
		ValidateTruckWeight(truck),
		ValidateNoPalletCollisions(truck.Pallets),
		ValidatePalletsInTruck(truck),
	}
	for _, pp := range truck.Pallets {
		results = append(results, ValidateStack(pp.Stack, 0))
	}
	return model.MergeResults(results...)
}

// ValidateRoom checks pallet placement in the room and every stack.
// Stack heights are covered by BR-403 rather than BR-303.
func ValidateRoom(room model.Room) model.ValidationResult {
	results := []model.ValidationResult{
		ValidateNoPalletCollisions(room.Pallets),
		ValidatePalletsInRoom(room),
		ValidateCeilingHeight(room),
	}
	for _, pp := range room.Pallets {
		results = append(results, ValidateStack(pp.Stack, 0))
	}
	return model.MergeResults(results...)
}
