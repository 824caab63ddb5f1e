package model

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrUnknownPreset is returned when a pallet preset key is not in the catalog.
var ErrUnknownPreset = errors.New("unknown pallet preset")

// PalletPreset is a reusable pallet definition.
type PalletPreset struct {
	Key            string     `json:"key"`
	Name           string     `json:"name"`
	Dimensions     Dimensions `json:"dimensions"`
	MaxWeight      float64    `json:"max_weight"`
	MaxStackHeight float64    `json:"max_stack_height"`
	Weight         float64    `json:"weight"`
	Material       string     `json:"material"`
}

// ToPallet converts the preset into a pallet with an id from ids.
func (pp PalletPreset) ToPallet(ids IDGenerator) Pallet {
	p := NewPallet(ids, pp.Dimensions, pp.MaxWeight, pp.MaxStackHeight, pp.Weight)
	p.Label = pp.Name
	p.Material = pp.Material
	return p
}

// PalletPresets is the built-in catalog keyed by preset key.
var PalletPresets = map[string]PalletPreset{
	"EUR": {
		Key: "EUR", Name: "EUR pallet 1200x800",
		Dimensions: Dimensions{Width: 1200, Height: 144, Depth: 800},
		MaxWeight:  1000, MaxStackHeight: 2200, Weight: 25, Material: "wood",
	},
	"EUR-HALF": {
		Key: "EUR-HALF", Name: "Half EUR pallet 800x600",
		Dimensions: Dimensions{Width: 800, Height: 144, Depth: 600},
		MaxWeight:  500, MaxStackHeight: 1800, Weight: 10, Material: "wood",
	},
	"INDUSTRIAL": {
		Key: "INDUSTRIAL", Name: "Industrial pallet 1200x1000",
		Dimensions: Dimensions{Width: 1200, Height: 144, Depth: 1000},
		MaxWeight:  1250, MaxStackHeight: 2200, Weight: 32, Material: "wood",
	},
	"US": {
		Key: "US", Name: "GMA pallet 48x40in",
		Dimensions: Dimensions{Width: 1219, Height: 150, Depth: 1016},
		MaxWeight:  1100, MaxStackHeight: 2100, Weight: 22, Material: "wood",
	},
}

// PresetKeys returns the catalog keys in alphabetical order.
func PresetKeys() []string {
	keys := make([]string, 0, len(PalletPresets))
	for k := range PalletPresets {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// PalletFromPreset builds a pallet from the catalog. Keys are case-insensitive.
func PalletFromPreset(ids IDGenerator, key string) (Pallet, error) {
	preset, ok := PalletPresets[strings.ToUpper(strings.TrimSpace(key))]
	if !ok {
		return Pallet{}, fmt.Errorf("%w %q (available: %s)", ErrUnknownPreset, key, strings.Join(PresetKeys(), ", "))
	}
	return preset.ToPallet(ids), nil
}

// Inventory is the user's pallet catalog: the built-in presets plus any
// custom pallets saved alongside the config.
type Inventory struct {
	Pallets []PalletPreset `json:"pallets"`
}

// DefaultInventory returns an inventory holding the built-in presets.
func DefaultInventory() Inventory {
	inv := Inventory{Pallets: make([]PalletPreset, 0, len(PalletPresets))}
	for _, k := range PresetKeys() {
		inv.Pallets = append(inv.Pallets, PalletPresets[k])
	}
	return inv
}

// FindPallet returns the preset with the given key (case-insensitive), or nil.
func (inv *Inventory) FindPallet(key string) *PalletPreset {
	key = strings.ToUpper(strings.TrimSpace(key))
	for i := range inv.Pallets {
		if strings.ToUpper(inv.Pallets[i].Key) == key {
			return &inv.Pallets[i]
		}
	}
	return nil
}

// Keys returns the preset keys in inventory order.
func (inv *Inventory) Keys() []string {
	keys := make([]string, len(inv.Pallets))
	for i, p := range inv.Pallets {
		keys[i] = p.Key
	}
	return keys
}

// Pallet builds a pallet from the inventory, falling back to the built-in
// catalog for keys the inventory does not hold.
func (inv *Inventory) Pallet(ids IDGenerator, key string) (Pallet, error) {
	if p := inv.FindPallet(key); p != nil {
		return p.ToPallet(ids), nil
	}
	return PalletFromPreset(ids, key)
}

// Add appends p unless its key is empty or already present. It reports
// whether the pallet was added.
func (inv *Inventory) Add(p PalletPreset) bool {
	if strings.TrimSpace(p.Key) == "" || inv.FindPallet(p.Key) != nil {
		return false
	}
	inv.Pallets = append(inv.Pallets, p)
	return true
}

// Remove deletes the pallet with the given key (case-insensitive).
// Returns true if found and removed.
func (inv *Inventory) Remove(key string) bool {
	key = strings.ToUpper(strings.TrimSpace(key))
	for i := range inv.Pallets {
		if strings.ToUpper(inv.Pallets[i].Key) == key {
			inv.Pallets = append(inv.Pallets[:i], inv.Pallets[i+1:]...)
			return true
		}
	}
	return false
}
