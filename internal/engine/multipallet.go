package engine

import (
	"fmt"

	"github.com/piwi3910/PalletStack/internal/model"
)

// MultiPalletOptions configures PackMultiple.
type MultiPalletOptions struct {
	Boxes              []model.Box
	PalletBase         model.Pallet
	Strategy           Strategy
	MaxFloorsPerPallet int
	NamePrefix         string
	// Separator is laid between floors. When nil a cardboard separator
	// matching the pallet plan is used.
	Separator *model.Separator
	// IDs generates separator ids; defaults to a sequence generator.
	IDs model.IDGenerator
}

// PackMultiple calls the strategy repeatedly on the remaining boxes, filling
// up to MaxFloorsPerPallet floors per stack before starting the next stack.
// It stops when every box is placed or when a whole stack places nothing;
// the leftovers are returned as unplaced boxes.
func PackMultiple(opts MultiPalletOptions) model.LoadPlan {
	maxFloors := opts.MaxFloorsPerPallet
	if maxFloors < 1 {
		maxFloors = 1
	}
	prefix := opts.NamePrefix
	if prefix == "" {
		prefix = "Pallet"
	}
	ids := opts.IDs
	if ids == nil {
		ids = model.NewSequenceGenerator()
	}

	plan := model.LoadPlan{
		Strategy:      opts.Strategy.ID(),
		Pallets:       []model.StackedPallet{},
		UnplacedBoxes: []model.Box{},
	}
	remaining := opts.Boxes

	for len(remaining) > 0 {
		stack := model.StackedPallet{ID: fmt.Sprintf("%s-%d", prefix, len(plan.Pallets)+1)}

		for floor := 0; floor < maxFloors && len(remaining) > 0; floor++ {
			res := opts.Strategy.Pack(remaining, opts.PalletBase)
			if len(res.Placements) == 0 {
				break
			}
			remaining = res.UnplacedBoxes

			f := model.PalletFloor{Pallet: opts.PalletBase, Boxes: res.Placements}
			if len(remaining) > 0 && floor < maxFloors-1 {
				sep := separatorFor(opts, ids)
				f.SeparatorAbove = &sep
			}
			stack.Floors = append(stack.Floors, f)
		}

		if len(stack.Floors) == 0 {
			break
		}
		// the top floor never carries a separator
		stack.Floors[len(stack.Floors)-1].SeparatorAbove = nil
		plan.Pallets = append(plan.Pallets, stack)
	}

	plan.UnplacedBoxes = append(plan.UnplacedBoxes, remaining...)
	return plan
}

func separatorFor(opts MultiPalletOptions, ids model.IDGenerator) model.Separator {
	if opts.Separator != nil {
		return *opts.Separator
	}
	return model.NewSeparator(ids, opts.PalletBase)
}
