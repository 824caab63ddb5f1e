package model

import (
	"errors"
	"testing"
)

func TestJobResolvePalletCustom(t *testing.T) {
	job := Job{Pallet: &Pallet{Dimensions: Dimensions{Width: 1000, Height: 100, Depth: 1000}, MaxStackHeight: 1500}}
	p, err := job.ResolvePallet(nil, NewSequenceGenerator())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ID != "pallet-1" || p.Dimensions.Width != 1000 {
		t.Errorf("unexpected pallet %+v", p)
	}
	if job.Pallet.ID != "" {
		t.Error("ResolvePallet must not modify the job")
	}
}

func TestJobResolvePalletPreset(t *testing.T) {
	inv := DefaultInventory()
	inv.Pallets = append(inv.Pallets, PalletPreset{Key: "CP1", Dimensions: Dimensions{Width: 1000, Height: 138, Depth: 1200}, MaxStackHeight: 2000})

	p, err := Job{PalletPreset: "cp1"}.ResolvePallet(&inv, NewSequenceGenerator())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Dimensions.Depth != 1200 {
		t.Errorf("expected the inventory pallet, got %+v", p)
	}

	if _, err := (Job{PalletPreset: "cp1"}).ResolvePallet(nil, NewSequenceGenerator()); !errors.Is(err, ErrUnknownPreset) {
		t.Errorf("without an inventory only built-ins resolve, got %v", err)
	}
}
