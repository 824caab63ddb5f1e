package model

import "math"

// PalletEstimate is a quick lower bound on the number of pallets a box list
// needs, before any packing is attempted.
type PalletEstimate struct {
	TotalBoxVolume     float64 `json:"total_box_volume"`     // mm³
	TotalBoxWeight     float64 `json:"total_box_weight"`     // kg
	PalletVolume       float64 `json:"pallet_volume"`        // usable volume of one pallet (mm³)
	PalletsByVolume    float64 `json:"pallets_by_volume"`    // exact fractional count
	PalletsByWeight    float64 `json:"pallets_by_weight"`    // exact fractional count
	PalletsNeededMin   int     `json:"pallets_needed_min"`   // ceiling of the larger bound
	PalletsWithWaste   int     `json:"pallets_with_waste"`   // recommended count including the waste factor
	WastePercent       float64 `json:"waste_percent"`        // e.g. 20 for 20%
	EstimatedFillRatio float64 `json:"estimated_fill_ratio"` // volume bound over recommended count
}

// CalculatePalletEstimate computes how many pallets a box list needs by
// volume and by weight. wastePercent accounts for packing losses, which are
// considerable for mixed box sizes.
func CalculatePalletEstimate(boxes []Box, pallet Pallet, wastePercent float64) PalletEstimate {
	var volume, weight float64
	for _, b := range boxes {
		volume += b.Dimensions.Volume()
		weight += b.Weight
	}

	est := PalletEstimate{
		TotalBoxVolume: volume,
		TotalBoxWeight: weight,
		WastePercent:   wastePercent,
	}

	palletVolume := pallet.FootprintArea() * pallet.MaxStackHeight
	if palletVolume <= 0 {
		return est
	}
	est.PalletVolume = palletVolume
	est.PalletsByVolume = volume / palletVolume
	if pallet.MaxWeight > 0 {
		est.PalletsByWeight = weight / pallet.MaxWeight
	}

	exact := math.Max(est.PalletsByVolume, est.PalletsByWeight)
	est.PalletsNeededMin = int(math.Ceil(exact))

	// Waste only inflates the volume bound; weight does not get lost in packing.
	withWaste := math.Max(est.PalletsByVolume*(1+wastePercent/100), est.PalletsByWeight)
	est.PalletsWithWaste = int(math.Ceil(withWaste))
	if est.PalletsWithWaste < est.PalletsNeededMin {
		est.PalletsWithWaste = est.PalletsNeededMin
	}
	if est.PalletsWithWaste > 0 {
		est.EstimatedFillRatio = est.PalletsByVolume / float64(est.PalletsWithWaste)
	}
	return est
}
