package engine

import (
	"sort"
	"testing"

	"github.com/piwi3910/PalletStack/internal/model"
	"github.com/piwi3910/PalletStack/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func eurPallet() model.Pallet {
	return model.Pallet{
		ID:             "eur",
		Dimensions:     model.Dimensions{Width: 1200, Height: 144, Depth: 800},
		MaxWeight:      1000,
		MaxStackHeight: 2200,
		Weight:         25,
	}
}

func testBox(id string, w, h, d, weight float64) model.Box {
	return model.Box{
		ID:         id,
		Dimensions: model.Dimensions{Width: w, Height: h, Depth: d},
		Weight:     weight,
		Stackable:  true,
	}
}

// mixedBoxes has two types, fragile items, material weights and one box
// that fits on no pallet.
func mixedBoxes() []model.Box {
	var boxes []model.Box
	for i := 0; i < 8; i++ {
		b := testBox("a"+string(rune('0'+i)), 400, 300, 400, 20)
		b.Type = "crate"
		b.Product = "apples"
		b.MaterialWeight = model.Float(8)
		boxes = append(boxes, b)
	}
	for i := 0; i < 6; i++ {
		b := testBox("b"+string(rune('0'+i)), 600, 250, 400, 12)
		b.Type = "carton"
		b.Product = "pears"
		b.MaterialWeight = model.Float(4)
		boxes = append(boxes, b)
	}
	for i := 0; i < 3; i++ {
		b := testBox("c"+string(rune('0'+i)), 300, 200, 200, 5)
		b.Type = "tray"
		b.Fragile = true
		b.FragilityMaxWeight = model.Float(10)
		b.MaterialWeight = model.Float(1)
		boxes = append(boxes, b)
	}
	boxes = append(boxes, testBox("huge", 2000, 500, 2000, 50))
	return boxes
}

func allStrategies() []Strategy {
	return NewRegistry().List()
}

func idsOf(boxes []model.Box) []string {
	ids := make([]string, 0, len(boxes))
	for _, b := range boxes {
		ids = append(ids, b.ID)
	}
	sort.Strings(ids)
	return ids
}

func resultIDs(res model.PackingResult) []string {
	ids := make([]string, 0, len(res.Placements)+len(res.UnplacedBoxes))
	for _, p := range res.Placements {
		ids = append(ids, p.Box.ID)
	}
	for _, b := range res.UnplacedBoxes {
		ids = append(ids, b.ID)
	}
	sort.Strings(ids)
	return ids
}

func TestStrategies_AccountForEveryBox(t *testing.T) {
	boxes := mixedBoxes()
	for _, s := range allStrategies() {
		t.Run(s.ID(), func(t *testing.T) {
			res := s.Pack(boxes, eurPallet())
			assert.Equal(t, len(boxes), len(res.Placements)+len(res.UnplacedBoxes))
			assert.Equal(t, idsOf(boxes), resultIDs(res))

			var unplaced []string
			for _, b := range res.UnplacedBoxes {
				unplaced = append(unplaced, b.ID)
			}
			assert.Contains(t, unplaced, "huge")
		})
	}
}

func TestStrategies_PlacementsAreValid(t *testing.T) {
	pallet := eurPallet()
	for _, s := range allStrategies() {
		t.Run(s.ID(), func(t *testing.T) {
			res := s.Pack(mixedBoxes(), pallet)
			require.NotEmpty(t, res.Placements)

			collisions := validation.ValidateNoBoxCollisions(res.Placements)
			assert.True(t, collisions.IsValid, "%v", collisions.Violations)

			bounds := validation.ValidateBoxBounds(res.Placements, pallet)
			assert.True(t, bounds.IsValid, "%v", bounds.Violations)

			assert.GreaterOrEqual(t, res.Metrics.VolumeUtilization, 0.0)
			assert.LessOrEqual(t, res.Metrics.VolumeUtilization, 1.0)
			assert.GreaterOrEqual(t, res.Metrics.StabilityScore, 0)
			assert.LessOrEqual(t, res.Metrics.StabilityScore, 100)
		})
	}
}

func TestStrategies_EmptyInput(t *testing.T) {
	for _, s := range allStrategies() {
		t.Run(s.ID(), func(t *testing.T) {
			res := s.Pack(nil, eurPallet())
			assert.NotNil(t, res.Placements)
			assert.NotNil(t, res.UnplacedBoxes)
			assert.Empty(t, res.Placements)
			assert.Empty(t, res.UnplacedBoxes)
			assert.Equal(t, 0.0, res.Metrics.VolumeUtilization)
			assert.Equal(t, 0.0, res.Metrics.WeightUtilization)
			assert.Equal(t, 100, res.Metrics.StabilityScore)
			assert.Equal(t, model.Vec3{}, res.Metrics.CenterOfGravity)
		})
	}
}

func TestStrategies_DoNotMutateInput(t *testing.T) {
	boxes := mixedBoxes()
	before := make([]model.Box, len(boxes))
	copy(before, boxes)
	for _, s := range allStrategies() {
		s.Pack(boxes, eurPallet())
	}
	assert.Equal(t, before, boxes)
}

func TestColumnStrategy_EURScenario(t *testing.T) {
	var boxes []model.Box
	for i := 0; i < 6; i++ {
		boxes = append(boxes, testBox("b"+string(rune('0'+i)), 400, 300, 600, 25))
	}
	res := NewColumnStrategy().Pack(boxes, eurPallet())

	assert.Len(t, res.Placements, 6)
	assert.Empty(t, res.UnplacedBoxes)
	assert.InDelta(t, 0.15, res.Metrics.WeightUtilization, 1e-9)

	// one column: a single cell fits in depth, so boxes stack upwards
	for i, p := range res.Placements {
		assert.Equal(t, 0.0, p.Position.X)
		assert.Equal(t, 0.0, p.Position.Z)
		assert.Equal(t, float64(i)*300, p.Position.Y)
	}
}

func TestColumnStrategy_GroupsGetOwnColumns(t *testing.T) {
	a1 := testBox("a1", 400, 300, 400, 10)
	a1.Type = "a"
	b1 := testBox("b1", 400, 300, 400, 10)
	b1.Type = "b"
	a2 := a1
	a2.ID = "a2"

	res := NewColumnStrategy().Pack([]model.Box{a1, b1, a2}, eurPallet())
	require.Len(t, res.Placements, 3)

	xs := map[string]float64{}
	for _, p := range res.Placements {
		xs[p.Box.ID] = p.Position.X
	}
	assert.Equal(t, 0.0, xs["a1"])
	assert.Equal(t, 0.0, xs["a2"])
	assert.Equal(t, 400.0, xs["b1"])
}

func TestColumnStrategy_BoxLargerThanCellIsUnplaced(t *testing.T) {
	small := testBox("small", 300, 300, 300, 10)
	big := testBox("big", 500, 300, 300, 10)
	res := NewColumnStrategy().Pack([]model.Box{small, big}, eurPallet())
	require.Len(t, res.UnplacedBoxes, 1)
	assert.Equal(t, "big", res.UnplacedBoxes[0].ID)
}

func TestTypeGroupStrategy_FragileLoadedLast(t *testing.T) {
	fragile := testBox("fragile", 400, 300, 400, 50)
	fragile.Fragile = true
	heavy := testBox("heavy", 400, 300, 400, 30)
	light := testBox("light", 400, 300, 400, 10)

	res := NewTypeGroupStrategy().Pack([]model.Box{fragile, light, heavy}, eurPallet())
	require.Len(t, res.Placements, 3)
	assert.Equal(t, "heavy", res.Placements[0].Box.ID)
	assert.Equal(t, "light", res.Placements[1].Box.ID)
	assert.Equal(t, "fragile", res.Placements[2].Box.ID)
}

func TestTypeGroupStrategy_WrapsRowsAndLayers(t *testing.T) {
	var boxes []model.Box
	for i := 0; i < 7; i++ {
		boxes = append(boxes, testBox("b"+string(rune('0'+i)), 400, 300, 400, 10))
	}
	res := NewTypeGroupStrategy().Pack(boxes, eurPallet())
	require.Len(t, res.Placements, 7)

	// three per row, two rows per layer
	assert.Equal(t, model.Vec3{X: 800, Y: 0, Z: 0}, res.Placements[2].Position)
	assert.Equal(t, model.Vec3{X: 0, Y: 0, Z: 400}, res.Placements[3].Position)
	assert.Equal(t, model.Vec3{X: 0, Y: 300, Z: 0}, res.Placements[6].Position)
}

func TestBinPacking3D_RotatesToFit(t *testing.T) {
	pallet := eurPallet()
	pallet.Dimensions.Width = 800
	pallet.Dimensions.Depth = 1200

	res := NewBinPacking3DStrategy().Pack([]model.Box{testBox("long", 900, 300, 400, 10)}, pallet)
	require.Len(t, res.Placements, 1)
	assert.Equal(t, 90.0, res.Placements[0].Rotation.Y)
	assert.Empty(t, res.UnplacedBoxes)
}

func TestBinPacking3D_LargestFirst(t *testing.T) {
	small := testBox("small", 200, 200, 200, 1)
	large := testBox("large", 600, 400, 400, 1)
	res := NewBinPacking3DStrategy().Pack([]model.Box{small, large}, eurPallet())
	require.Len(t, res.Placements, 2)
	assert.Equal(t, "large", res.Placements[0].Box.ID)
	assert.Equal(t, model.Vec3{}, res.Placements[0].Position)
}

func TestMaterialGrouping_ResistantMaterialGoesLow(t *testing.T) {
	soft := testBox("soft", 400, 300, 400, 5)
	soft.MaterialWeight = model.Float(0)
	hard := testBox("hard", 400, 300, 400, 5)
	hard.MaterialWeight = model.Float(6)

	res := NewMaterialGroupingStrategy().Pack([]model.Box{soft, hard}, eurPallet())
	require.Len(t, res.Placements, 2)

	y := map[string]float64{}
	for _, p := range res.Placements {
		y[p.Box.ID] = p.Position.Y
	}
	assert.Less(t, y["hard"], y["soft"])
	assert.Equal(t, 0.0, y["hard"])
	assert.Equal(t, 300.0, y["soft"])
}

func TestMaterialGrouping_UpperLayerIsSupported(t *testing.T) {
	var boxes []model.Box
	for i := 0; i < 4; i++ {
		b := testBox("base"+string(rune('0'+i)), 300, 200, 400, 20)
		b.MaterialWeight = model.Float(9)
		boxes = append(boxes, b)
	}
	for i := 0; i < 4; i++ {
		b := testBox("top"+string(rune('0'+i)), 400, 200, 400, 5)
		b.MaterialWeight = model.Float(2)
		boxes = append(boxes, b)
	}

	res := NewMaterialGroupingStrategy().Pack(boxes, eurPallet())
	assert.Equal(t, len(boxes), len(res.Placements)+len(res.UnplacedBoxes))
	support := validation.ValidateSupport(res.Placements)
	assert.True(t, support.IsValid, "%v", support.Violations)
	assert.True(t, validation.ValidateNoBoxCollisions(res.Placements).IsValid)
}

func TestMaterialGrouping_DefaultMaterialWeight(t *testing.T) {
	unset := testBox("unset", 400, 300, 400, 5)
	low := testBox("low", 400, 300, 400, 5)
	low.MaterialWeight = model.Float(2)

	sorted := sortForMaterial([]model.Box{low, unset})
	assert.Equal(t, "unset", sorted[0].ID)
}

func TestScheduleByProduct_LargestGroupFirst(t *testing.T) {
	boxes := []model.Box{
		{ID: "x1", Product: "x"},
		{ID: "y1", Product: "y"},
		{ID: "y2", Product: "y"},
		{ID: "x2", Product: "x"},
		{ID: "y3", Product: "y"},
	}
	order := scheduleByProduct(boxes, []int{0, 1, 2, 3, 4})
	assert.Equal(t, []int{1, 2, 4, 0, 3}, order)
}
