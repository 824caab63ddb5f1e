package geometry

import (
	"math"

	"github.com/piwi3910/PalletStack/internal/model"
)

// CenterOfGravity returns the weight-weighted mean of the box centres.
// An empty set, or one without weight, yields the origin.
func CenterOfGravity(boxes []model.PlacedBox) model.Vec3 {
	var total float64
	var cog model.Vec3
	for _, b := range boxes {
		c := BoxBounds(b).Center()
		w := b.Box.Weight
		cog.X += c.X * w
		cog.Y += c.Y * w
		cog.Z += c.Z * w
		total += w
	}
	if total == 0 {
		return model.Vec3{}
	}
	cog.X /= total
	cog.Y /= total
	cog.Z /= total
	return cog
}

// MaxBoxTop returns the highest box top, or 0 for an empty set.
func MaxBoxTop(boxes []model.PlacedBox) float64 {
	var top float64
	for _, b := range boxes {
		top = math.Max(top, BoxBounds(b).MaxY)
	}
	return top
}

// StabilityScore grades a load from 0 to 100: 70% horizontal centring of the
// centre of gravity on the pallet plan, 30% how low it sits relative to the
// highest box top. An empty load scores 100.
func StabilityScore(boxes []model.PlacedBox, pallet model.Pallet) int {
	if len(boxes) == 0 {
		return 100
	}
	cog := CenterOfGravity(boxes)

	halfW := pallet.Dimensions.Width / 2
	halfD := pallet.Dimensions.Depth / 2
	var offset float64
	if halfW > 0 {
		offset += math.Abs(cog.X-halfW) / halfW
	}
	if halfD > 0 {
		offset += math.Abs(cog.Z-halfD) / halfD
	}
	horizontal := math.Max(0, 100-50*offset)

	vertical := 100.0
	if top := MaxBoxTop(boxes); top > 0 {
		ratio := cog.Y / top
		vertical = math.Max(0, 100-100*math.Max(0, ratio-0.5))
	}

	score := int(math.Round(0.7*horizontal + 0.3*vertical))
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
