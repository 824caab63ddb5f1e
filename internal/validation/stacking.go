package validation

import (
	"fmt"

	"github.com/piwi3910/PalletStack/internal/model"
)

// ValidateStackable checks that nothing rests on a non-stackable box (BR-201).
func ValidateStackable(boxes []model.PlacedBox) model.ValidationResult {
	var violations []model.Violation
	g := newBoxGraph(boxes)
	for i, b := range boxes {
		if b.Box.Stackable || len(g.above[i]) == 0 {
			continue
		}
		ids := []string{b.Box.ID}
		for _, j := range g.above[i] {
			ids = append(ids, boxes[j].Box.ID)
		}
		violations = append(violations, errorf(CodeNotStackable,
			fmt.Sprintf("Box %s is not stackable but carries %d box(es)", b.Box.ID, len(g.above[i])),
			ids...))
	}
	return model.NewValidationResult(violations...)
}

// ValidateInvertedPyramid warns when a box is both more than 1.5x heavier
// and more than 1.2x larger in base area than a box it rests on (BR-203).
// The result is always valid.
func ValidateInvertedPyramid(boxes []model.PlacedBox) model.ValidationResult {
	var violations []model.Violation
	g := newBoxGraph(boxes)
	for i, upper := range boxes {
		for _, j := range g.below[i] {
			lower := boxes[j]
			heavier := upper.Box.Weight > 1.5*lower.Box.Weight
			larger := g.bounds[i].BaseArea() > 1.2*g.bounds[j].BaseArea()
			if heavier && larger {
				violations = append(violations, warnf(CodeInvertedPyramid,
					fmt.Sprintf("Box %s (%.1f kg) rests on smaller, lighter box %s (%.1f kg)",
						upper.Box.ID, upper.Box.Weight, lower.Box.ID, lower.Box.Weight),
					upper.Box.ID, lower.Box.ID))
			}
		}
	}
	return model.ValidationResult{IsValid: true, Violations: nonNilViolations(violations)}
}
