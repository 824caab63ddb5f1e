// Package validation checks placements, stacks, trucks and rooms against the
// physical and logistic business rules. Every validator is a pure function
// returning a model.ValidationResult; only error-severity violations make a
// result invalid.
package validation

import (
	"github.com/piwi3910/PalletStack/internal/geometry"
	"github.com/piwi3910/PalletStack/internal/model"
)

// Rule codes.
const (
	CodeBoxOutOfBounds      = "BR-001"
	CodeBoxCollision        = "BR-002"
	CodePalletCollision     = "BR-003"
	CodeInsufficientSupport = "BR-004"
	CodePalletOverweight    = "BR-101"
	CodeTruckOverweight     = "BR-102"
	CodeFragileOverload     = "BR-103"
	CodeWeightDistribution  = "BR-104"
	CodeNotStackable        = "BR-201"
	CodeInvertedPyramid     = "BR-203"
	CodeFloorDimensions     = "BR-301"
	CodeMissingSeparator    = "BR-302"
	CodeStackTooHigh        = "BR-303"
	CodeStackOverweight     = "BR-304"
	CodeOutsideRoom         = "BR-401"
	CodeOutsideTruck        = "BR-402"
	CodeAboveCeiling        = "BR-403"
	CodeTruckTooLow         = "BR-404"
	CodeLowStability        = "BR-501"
	CodeCoGOutsidePallet    = "BR-502"
	CodeCoGTooHigh          = "BR-503"
)

// Thresholds shared by the rules.
const (
	// MinSupportRatio is the base-area fraction an elevated box must rest on.
	MinSupportRatio = 0.6
	// WeightWarningRatio triggers a warning before a weight limit is reached.
	WeightWarningRatio = 0.9
	// ContactTolerance is the vertical gap, in mm, still treated as contact.
	ContactTolerance = 1.0
)

func errorf(code, msg string, ids ...string) model.Violation {
	return model.Violation{Code: code, Severity: model.SeverityError, Message: msg, InvolvedIDs: nonNil(ids)}
}

func warnf(code, msg string, ids ...string) model.Violation {
	return model.Violation{Code: code, Severity: model.SeverityWarning, Message: msg, InvolvedIDs: nonNil(ids)}
}

func nonNil(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}

// boxGraph caches bounds and "rests on" relations for a set of placements.
type boxGraph struct {
	boxes  []model.PlacedBox
	bounds []geometry.AABB
	// below[i] lists the indices of boxes that box i rests on.
	below [][]int
	// above[i] lists the indices of boxes resting on box i.
	above [][]int
}

func newBoxGraph(boxes []model.PlacedBox) *boxGraph {
	g := &boxGraph{
		boxes:  boxes,
		bounds: make([]geometry.AABB, len(boxes)),
		below:  make([][]int, len(boxes)),
		above:  make([][]int, len(boxes)),
	}
	for i, b := range boxes {
		g.bounds[i] = geometry.BoxBounds(b)
	}
	for i := range boxes {
		for j := range boxes {
			if i == j {
				continue
			}
			if geometry.RestsOn(g.bounds[i], g.bounds[j], ContactTolerance) {
				g.below[i] = append(g.below[i], j)
				g.above[j] = append(g.above[j], i)
			}
		}
	}
	return g
}

// loadAbove returns the weight of every box stacked on box i, directly or
// through other boxes. Each box is counted once.
func (g *boxGraph) loadAbove(i int) float64 {
	seen := map[int]bool{i: true}
	queue := append([]int(nil), g.above[i]...)
	var total float64
	for len(queue) > 0 {
		j := queue[0]
		queue = queue[1:]
		if seen[j] {
			continue
		}
		seen[j] = true
		total += g.boxes[j].Box.Weight
		queue = append(queue, g.above[j]...)
	}
	return total
}

func nonNilViolations(v []model.Violation) []model.Violation {
	if v == nil {
		return []model.Violation{}
	}
	return v
}
