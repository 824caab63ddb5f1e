package model

import (
	"errors"
	"strings"
	"testing"
)

func TestPalletFromPresetEUR(t *testing.T) {
	p, err := PalletFromPreset(NewSequenceGenerator(), "eur")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Dimensions.Width != 1200 || p.Dimensions.Depth != 800 || p.Dimensions.Height != 144 {
		t.Errorf("unexpected EUR dimensions: %+v", p.Dimensions)
	}
	if p.MaxWeight != 1000 || p.MaxStackHeight != 2200 || p.Weight != 25 {
		t.Errorf("unexpected EUR limits: %+v", p)
	}
	if p.ID != "pallet-1" {
		t.Errorf("expected id pallet-1, got %s", p.ID)
	}
}

func TestPalletFromPresetUnknown(t *testing.T) {
	_, err := PalletFromPreset(NewSequenceGenerator(), "CHEP")
	if !errors.Is(err, ErrUnknownPreset) {
		t.Fatalf("expected ErrUnknownPreset, got %v", err)
	}
	if !strings.Contains(err.Error(), "CHEP") || !strings.Contains(err.Error(), "EUR-HALF") {
		t.Errorf("error should name the key and the catalog: %v", err)
	}
}

func TestPresetKeysSorted(t *testing.T) {
	keys := PresetKeys()
	want := []string{"EUR", "EUR-HALF", "INDUSTRIAL", "US"}
	if len(keys) != len(want) {
		t.Fatalf("expected %d keys, got %v", len(want), keys)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Errorf("key %d: expected %s, got %s", i, want[i], keys[i])
		}
	}
}

func TestInventoryCustomPallet(t *testing.T) {
	inv := DefaultInventory()
	if len(inv.Pallets) != len(PalletPresets) {
		t.Fatalf("expected %d presets, got %d", len(PalletPresets), len(inv.Pallets))
	}
	inv.Pallets = append(inv.Pallets, PalletPreset{
		Key:        "Plastic",
		Name:       "Plastic display pallet",
		Dimensions: Dimensions{Width: 600, Height: 120, Depth: 400},
		MaxWeight:  250, MaxStackHeight: 1200, Weight: 4, Material: "plastic",
	})

	p, err := inv.Pallet(NewSequenceGenerator(), "plastic")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Material != "plastic" || p.Dimensions.Width != 600 {
		t.Errorf("unexpected pallet %+v", p)
	}

	if _, err := inv.Pallet(NewSequenceGenerator(), "missing"); !errors.Is(err, ErrUnknownPreset) {
		t.Errorf("expected ErrUnknownPreset, got %v", err)
	}
	if keys := inv.Keys(); keys[len(keys)-1] != "Plastic" {
		t.Errorf("unexpected keys %v", keys)
	}
}

func TestInventoryAddRemove(t *testing.T) {
	inv := DefaultInventory()
	n := len(inv.Pallets)

	custom := PalletPreset{Key: "CP1", Name: "Chemical pallet CP1", Dimensions: Dimensions{Width: 1000, Height: 138, Depth: 1200}}
	if !inv.Add(custom) {
		t.Fatal("expected CP1 to be added")
	}
	if inv.Add(PalletPreset{Key: "cp1"}) {
		t.Error("duplicate key must not be added")
	}
	if inv.Add(PalletPreset{Key: "  "}) {
		t.Error("empty key must not be added")
	}
	if len(inv.Pallets) != n+1 {
		t.Fatalf("expected %d pallets, got %d", n+1, len(inv.Pallets))
	}

	if !inv.Remove("Cp1") {
		t.Error("expected CP1 to be removed")
	}
	if inv.Remove("CP1") {
		t.Error("second remove must report false")
	}
	if len(inv.Pallets) != n {
		t.Errorf("expected %d pallets, got %d", n, len(inv.Pallets))
	}
}
