package validation

import (
	"fmt"

	"github.com/piwi3910/PalletStack/internal/geometry"
	"github.com/piwi3910/PalletStack/internal/model"
)

// Stability thresholds for BR-501.
const (
	MinStabilityScore  = 50
	GoodStabilityScore = 70
)

// MaxCoGHeightRatio is the share of the load height the centre of gravity may
// reach before BR-503 warns.
const MaxCoGHeightRatio = 0.6

// ValidateStability grades the load with the stability score (BR-501): an
// error below 50, a warning below 70.
func ValidateStability(boxes []model.PlacedBox, pallet model.Pallet) model.ValidationResult {
	score := geometry.StabilityScore(boxes, pallet)
	switch {
	case score < MinStabilityScore:
		return model.NewValidationResult(errorf(CodeLowStability,
			fmt.Sprintf("Load on pallet %s is unstable (score %d)", pallet.ID, score), pallet.ID))
	case score < GoodStabilityScore:
		return model.NewValidationResult(warnf(CodeLowStability,
			fmt.Sprintf("Load on pallet %s has marginal stability (score %d)", pallet.ID, score), pallet.ID))
	}
	return model.NewValidationResult()
}

// ValidateCenterOfGravity checks that the centre of gravity projects onto the
// pallet plan (BR-502).
func ValidateCenterOfGravity(boxes []model.PlacedBox, pallet model.Pallet) model.ValidationResult {
	if len(boxes) == 0 {
		return model.NewValidationResult()
	}
	cog := geometry.CenterOfGravity(boxes)
	if cog.X < 0 || cog.X > pallet.Dimensions.Width || cog.Z < 0 || cog.Z > pallet.Dimensions.Depth {
		return model.NewValidationResult(errorf(CodeCoGOutsidePallet,
			fmt.Sprintf("Centre of gravity (%.0f, %.0f) lies outside pallet %s", cog.X, cog.Z, pallet.ID),
			pallet.ID))
	}
	return model.NewValidationResult()
}

// ValidateCoGHeight warns when the centre of gravity sits above 60% of the
// highest box top (BR-503).
func ValidateCoGHeight(boxes []model.PlacedBox) model.ValidationResult {
	top := geometry.MaxBoxTop(boxes)
	if len(boxes) == 0 || top <= 0 {
		return model.NewValidationResult()
	}
	cog := geometry.CenterOfGravity(boxes)
	if cog.Y > MaxCoGHeightRatio*top {
		return model.NewValidationResult(warnf(CodeCoGTooHigh,
			fmt.Sprintf("Centre of gravity at %.0f mm is above %.0f%% of the %.0f mm load", cog.Y, MaxCoGHeightRatio*100, top)))
	}
	return model.NewValidationResult()
}
