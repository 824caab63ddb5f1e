package validation

import (
	"fmt"

	"github.com/piwi3910/PalletStack/internal/geometry"
	"github.com/piwi3910/PalletStack/internal/model"
)

// ValidatePalletsInRoom checks that all four footprint corners of every
// pallet lie inside the room's floor polygon (BR-401). Corners lying on a
// wall count as inside.
func ValidatePalletsInRoom(room model.Room) model.ValidationResult {
	var violations []model.Violation
	for _, pp := range room.Pallets {
		for _, c := range geometry.PalletFootprint(pp) {
			if geometry.PointInPolygon(c, room.Floor) || geometry.PointOnPolygonEdge(c, room.Floor, ContactTolerance) {
				continue
			}
			violations = append(violations, errorf(CodeOutsideRoom,
				fmt.Sprintf("Pallet %s extends outside room %s at (%.0f, %.0f)", pp.Stack.ID, room.ID, c.X, c.Z),
				pp.Stack.ID, room.ID))
			break
		}
	}
	return model.NewValidationResult(violations...)
}

// ValidateCeilingHeight checks that no stack reaches above the ceiling
// (BR-403).
func ValidateCeilingHeight(room model.Room) model.ValidationResult {
	var violations []model.Violation
	for _, pp := range room.Pallets {
		top := geometry.PalletBounds(pp).MaxY
		if top > room.CeilingHeight {
			violations = append(violations, errorf(CodeAboveCeiling,
				fmt.Sprintf("Pallet %s reaches %.0f mm, ceiling is %.0f mm", pp.Stack.ID, top, room.CeilingHeight),
				pp.Stack.ID, room.ID))
		}
	}
	return model.NewValidationResult(violations...)
}

// ValidatePalletsInTruck checks every pallet footprint against the truck's
// floor plan (BR-402) and its stack height against the cargo height (BR-404).
func ValidatePalletsInTruck(truck model.Truck) model.ValidationResult {
	var violations []model.Violation
	const tol = 0.001
	dims := truck.Dimensions
	for _, pp := range truck.Pallets {
		b := geometry.PalletBounds(pp)
		if b.MinX < -tol || b.MinZ < -tol || b.MaxX > dims.Width+tol || b.MaxZ > dims.Depth+tol {
			violations = append(violations, errorf(CodeOutsideTruck,
				fmt.Sprintf("Pallet %s extends outside the %.0f x %.0f mm floor of truck %s",
					pp.Stack.ID, dims.Width, dims.Depth, truck.ID),
				pp.Stack.ID, truck.ID))
		}
		if b.MaxY > dims.Height+tol {
			violations = append(violations, errorf(CodeTruckTooLow,
				fmt.Sprintf("Pallet %s is %.0f mm high, truck %s offers %.0f mm", pp.Stack.ID, b.MaxY, truck.ID, dims.Height),
				pp.Stack.ID, truck.ID))
		}
	}
	return model.NewValidationResult(violations...)
}
