package model

import (
	"testing"
)

func TestBoxGroupKey(t *testing.T) {
	tests := []struct {
		box  Box
		want string
	}{
		{Box{Type: "crate", SKU: "A1"}, "crate"},
		{Box{SKU: "A1"}, "A1"},
		{Box{}, "default"},
	}
	for _, tt := range tests {
		if got := tt.box.GroupKey(); got != tt.want {
			t.Errorf("GroupKey(%+v) = %q, want %q", tt.box, got, tt.want)
		}
	}
}

func TestEffectiveMaterialWeight(t *testing.T) {
	b := Box{}
	if b.EffectiveMaterialWeight() != DefaultMaterialWeight {
		t.Errorf("expected default %v, got %v", DefaultMaterialWeight, b.EffectiveMaterialWeight())
	}
	b.MaterialWeight = Float(0)
	if b.EffectiveMaterialWeight() != 0 {
		t.Errorf("explicit zero should be kept, got %v", b.EffectiveMaterialWeight())
	}
}

func TestNormalizeRotation(t *testing.T) {
	tests := map[float64]float64{
		0:    0,
		90:   90,
		180:  180,
		270:  270,
		360:  0,
		450:  90,
		-90:  270,
		-180: 180,
		89:   90,
	}
	for in, want := range tests {
		if got := NormalizeRotation(in); got != want {
			t.Errorf("NormalizeRotation(%v) = %v, want %v", in, got, want)
		}
	}
}

func TestEffectiveDimensions(t *testing.T) {
	p := PlacedBox{Box: Box{Dimensions: Dimensions{Width: 400, Height: 300, Depth: 600}}}
	if d := p.EffectiveDimensions(); d.Width != 400 || d.Depth != 600 {
		t.Errorf("unrotated box changed: %+v", d)
	}
	p.Rotation.Y = 90
	if d := p.EffectiveDimensions(); d.Width != 600 || d.Depth != 400 || d.Height != 300 {
		t.Errorf("rotated box should swap width and depth: %+v", d)
	}
	p.Position.Y = 100
	if p.Top() != 400 {
		t.Errorf("expected top 400, got %v", p.Top())
	}
}

func TestStackTotals(t *testing.T) {
	pallet := Pallet{Dimensions: Dimensions{Width: 1200, Height: 144, Depth: 800}, Weight: 25}
	sep := &Separator{Dimensions: Dimensions{Height: 5}, Weight: 0.5}
	box := func(y, h, w float64) PlacedBox {
		return PlacedBox{
			Box:      Box{Dimensions: Dimensions{Width: 400, Height: h, Depth: 400}, Weight: w},
			Position: Vec3{Y: y},
		}
	}
	s := StackedPallet{Floors: []PalletFloor{
		{Pallet: pallet, Boxes: []PlacedBox{box(0, 300, 10), box(300, 200, 5)}, SeparatorAbove: sep},
		{Pallet: pallet, Boxes: []PlacedBox{box(0, 400, 20)}},
	}}

	// (144 + 500 + 5) + (144 + 400)
	if h := s.TotalHeight(); h != 1193 {
		t.Errorf("expected height 1193, got %v", h)
	}
	// 25 + 15 + 0.5 + 25 + 20
	if w := s.TotalWeight(); w != 85.5 {
		t.Errorf("expected weight 85.5, got %v", w)
	}
	if w := s.LoadWeight(); w != 60.5 {
		t.Errorf("expected load weight 60.5, got %v", w)
	}
	if s.BoxCount() != 3 {
		t.Errorf("expected 3 boxes, got %d", s.BoxCount())
	}
	if (StackedPallet{}).LoadWeight() != 0 {
		t.Error("empty stack should carry nothing")
	}
}

func TestLoadPlanPlacedCount(t *testing.T) {
	lp := LoadPlan{Pallets: []StackedPallet{
		{Floors: []PalletFloor{{Boxes: make([]PlacedBox, 3)}}},
		{Floors: []PalletFloor{{Boxes: make([]PlacedBox, 2)}, {Boxes: make([]PlacedBox, 1)}}},
	}}
	if lp.PlacedCount() != 6 {
		t.Errorf("expected 6, got %d", lp.PlacedCount())
	}
}

func TestNewValidationResult(t *testing.T) {
	empty := NewValidationResult()
	if !empty.IsValid || empty.Violations == nil || len(empty.Violations) != 0 {
		t.Errorf("empty result should be valid with an empty slice: %+v", empty)
	}

	warn := NewValidationResult(Violation{Code: "BR-104", Severity: SeverityWarning})
	if !warn.IsValid {
		t.Error("warnings must not invalidate a result")
	}

	merged := MergeResults(warn, NewValidationResult(Violation{Code: "BR-002", Severity: SeverityError}))
	if merged.IsValid {
		t.Error("an error must invalidate the merged result")
	}
	if len(merged.Violations) != 2 || len(merged.Errors()) != 1 || len(merged.Warnings()) != 1 {
		t.Errorf("unexpected merge: %+v", merged)
	}
	if !merged.HasCode("BR-002") || merged.HasCode("BR-001") {
		t.Error("HasCode mismatch")
	}
}

func TestFactories(t *testing.T) {
	ids := NewSequenceGenerator()
	b := NewBox(ids, 400, 300, 200, 12, WithType("crate"), WithFragile(Float(5)), WithProduct("apples"))
	if b.ID != "box-1" {
		t.Errorf("expected id box-1, got %s", b.ID)
	}
	if !b.Stackable || !b.Fragile || *b.FragilityMaxWeight != 5 || b.Type != "crate" || b.Product != "apples" {
		t.Errorf("options not applied: %+v", b)
	}
	if b2 := NewBox(ids, 1, 1, 1, 1, NotStackable()); b2.ID != "box-2" || b2.Stackable {
		t.Errorf("unexpected second box: %+v", b2)
	}

	p := NewPallet(ids, Dimensions{Width: 1200, Height: 144, Depth: 800}, 1000, 2200, 25)
	sep := NewSeparator(ids, p)
	if sep.Dimensions.Width != 1200 || sep.Dimensions.Depth != 800 || sep.Dimensions.Height != DefaultSeparatorThickness {
		t.Errorf("separator should cover the pallet plan: %+v", sep.Dimensions)
	}
	if sep.ID != "separator-1" || p.ID != "pallet-1" {
		t.Errorf("unexpected ids %s %s", p.ID, sep.ID)
	}
}

func TestUUIDGenerator(t *testing.T) {
	var g UUIDGenerator
	a, b := g.NextID("box"), g.NextID("box")
	if len(a) != len("box-")+8 {
		t.Errorf("unexpected id format %q", a)
	}
	if a == b {
		t.Error("ids should be unique")
	}
}
