package engine

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/PalletStack/internal/geometry"
	"github.com/piwi3910/PalletStack/internal/model"
	"github.com/piwi3910/PalletStack/internal/validation"
)

func stacksOf(n int) []model.StackedPallet {
	stacks := make([]model.StackedPallet, n)
	for i := range stacks {
		stacks[i] = model.StackedPallet{
			ID:     fmt.Sprintf("stack-%d", i+1),
			Floors: []model.PalletFloor{{Pallet: eurPallet()}},
		}
	}
	return stacks
}

func TestArrangeRows_FillsRowsThenWraps(t *testing.T) {
	// 2 EUR pallets per row across 2450 mm, 2 rows in 1700 mm
	placed, leftover := ArrangeRows(stacksOf(5), model.Point2D{}, 2450, 1700, 0)

	require.Len(t, placed, 4)
	require.Len(t, leftover, 1)
	assert.Equal(t, model.Vec3{X: 600, Z: 400}, placed[0].Position)
	assert.Equal(t, model.Vec3{X: 1800, Z: 400}, placed[1].Position)
	assert.Equal(t, model.Vec3{X: 600, Z: 1200}, placed[2].Position)
	assert.Equal(t, "stack-5", leftover[0].ID)

	res := validation.ValidateNoPalletCollisions(placed)
	assert.True(t, res.IsValid, "%v", res.Violations)
}

func TestArrangeRows_OriginAndGap(t *testing.T) {
	placed, leftover := ArrangeRows(stacksOf(2), model.Point2D{X: 1000, Z: 500}, 2500, 800, 50)

	require.Len(t, placed, 2)
	assert.Empty(t, leftover)
	assert.Equal(t, 1600.0, placed[0].Position.X)
	assert.Equal(t, 900.0, placed[0].Position.Z)
	assert.Equal(t, 1000+1200+50+600.0, placed[1].Position.X)

	b := geometry.PalletBounds(placed[1])
	assert.InDelta(t, 3450, b.MaxX, 1e-9)
	assert.LessOrEqual(t, b.MaxX, 1000+2500.0)
}

func TestArrangeRows_TooSmallArea(t *testing.T) {
	placed, leftover := ArrangeRows(stacksOf(1), model.Point2D{}, 1000, 1000, 0)
	assert.Empty(t, placed)
	assert.Len(t, leftover, 1)
}
