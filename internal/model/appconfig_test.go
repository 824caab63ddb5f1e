package model

import "testing"

func TestDefaultAppConfig(t *testing.T) {
	cfg := DefaultAppConfig()
	if cfg.DefaultStrategy != "material-grouping" {
		t.Errorf("expected material-grouping, got %s", cfg.DefaultStrategy)
	}
	if cfg.DefaultPalletPreset != "EUR" {
		t.Errorf("expected EUR, got %s", cfg.DefaultPalletPreset)
	}
	if cfg.MaxFloorsPerPallet != 1 {
		t.Errorf("expected 1 floor, got %d", cfg.MaxFloorsPerPallet)
	}
	if cfg.RecentJobs == nil {
		t.Error("RecentJobs should not be nil")
	}
}

func TestJobApplyDefaults(t *testing.T) {
	cfg := DefaultAppConfig()
	cfg.MaxFloorsPerPallet = 3

	j := Job{Name: "empty"}
	j.ApplyDefaults(cfg)
	if j.Strategy != "material-grouping" || j.PalletPreset != "EUR" || j.MaxFloors != 3 || j.NamePrefix != "Pallet" {
		t.Errorf("defaults not applied: %+v", j)
	}

	custom := Job{Strategy: "column", Pallet: &Pallet{ID: "own"}, MaxFloors: 2, NamePrefix: "Truck"}
	custom.ApplyDefaults(cfg)
	if custom.Strategy != "column" || custom.MaxFloors != 2 || custom.NamePrefix != "Truck" {
		t.Errorf("explicit values overwritten: %+v", custom)
	}
	if custom.PalletPreset != "" {
		t.Errorf("a job with its own pallet should not get a preset, got %s", custom.PalletPreset)
	}
}

func TestBoxLineExpand(t *testing.T) {
	ids := NewSequenceGenerator()
	lines := []BoxLine{
		{Label: "Apples", Width: 400, Height: 300, Depth: 400, Weight: 12, Quantity: 3, Product: "apples", MaterialWeight: Float(7)},
		{Label: "Eggs", Width: 300, Height: 100, Depth: 200, Weight: 2, Quantity: 1, Fragile: true, NotStackable: true},
		{Label: "None", Width: 1, Height: 1, Depth: 1, Quantity: 0},
	}
	boxes := ExpandLines(ids, lines)
	if len(boxes) != 4 {
		t.Fatalf("expected 4 boxes, got %d", len(boxes))
	}
	if boxes[0].ID != "box-1" || boxes[3].ID != "box-4" {
		t.Errorf("unexpected ids %s %s", boxes[0].ID, boxes[3].ID)
	}
	if *boxes[2].MaterialWeight != 7 || boxes[2].Label != "Apples" {
		t.Errorf("line fields not copied: %+v", boxes[2])
	}
	// expanded boxes must not share the pointer
	*boxes[0].MaterialWeight = 1
	if *boxes[1].MaterialWeight != 7 {
		t.Error("material weight pointer shared between boxes")
	}
	eggs := boxes[3]
	if !eggs.Fragile || eggs.Stackable || eggs.FragilityMaxWeight != nil {
		t.Errorf("unexpected eggs box: %+v", eggs)
	}
}

func TestAddRecentJob(t *testing.T) {
	cfg := DefaultAppConfig()
	cfg.AddRecentJob("a.toml")
	cfg.AddRecentJob("b.toml")
	cfg.AddRecentJob("a.toml")

	if len(cfg.RecentJobs) != 2 || cfg.RecentJobs[0] != "a.toml" || cfg.RecentJobs[1] != "b.toml" {
		t.Errorf("unexpected recent jobs %v", cfg.RecentJobs)
	}

	for i := 0; i < MaxRecentJobs+5; i++ {
		cfg.AddRecentJob(string(rune('c' + i)))
	}
	if len(cfg.RecentJobs) != MaxRecentJobs {
		t.Errorf("expected %d recent jobs, got %d", MaxRecentJobs, len(cfg.RecentJobs))
	}
}
