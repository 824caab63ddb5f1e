package engine

import (
	"errors"
	"testing"

	"github.com/piwi3910/PalletStack/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubStrategy places nothing.
type stubStrategy struct {
	id string
}

func (s stubStrategy) ID() string          { return s.id }
func (s stubStrategy) Name() string        { return "Stub " + s.id }
func (s stubStrategy) Description() string { return "test strategy" }
func (s stubStrategy) Pack(boxes []model.Box, pallet model.Pallet) model.PackingResult {
	return newResult(nil, append([]model.Box(nil), boxes...), pallet)
}

func TestRegistry_BuiltIns(t *testing.T) {
	r := NewRegistry()
	assert.Equal(t, []string{
		StrategyColumn,
		StrategyTypeGroup,
		StrategyBinPacking3D,
		StrategyMaterialGrouping,
	}, r.ListIDs())

	for _, id := range r.ListIDs() {
		assert.True(t, r.Has(id))
		s, err := r.Get(id)
		require.NoError(t, err)
		assert.Equal(t, id, s.ID())
		assert.NotEmpty(t, s.Name())
		assert.NotEmpty(t, s.Description())
	}
}

func TestRegistry_GetUnknown(t *testing.T) {
	r := NewRegistry()
	_, err := r.Get("nope")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrStrategyNotFound))
	assert.Contains(t, err.Error(), `"nope"`)
	assert.Contains(t, err.Error(), StrategyMaterialGrouping)
	assert.False(t, r.Has("nope"))
}

func TestRegistry_RegisterOverridesInPlace(t *testing.T) {
	r := NewRegistry()
	r.Register(stubStrategy{id: StrategyTypeGroup})

	s, err := r.Get(StrategyTypeGroup)
	require.NoError(t, err)
	assert.Equal(t, "Stub type-group", s.Name())
	assert.Equal(t, StrategyTypeGroup, r.ListIDs()[1])
	assert.Len(t, r.List(), 4)

	r.Register(stubStrategy{id: "custom"})
	assert.Equal(t, "custom", r.ListIDs()[4])
}

func TestRegistry_InstancesAreIsolated(t *testing.T) {
	r := NewRegistry()
	r.Register(stubStrategy{id: "isolated"})
	assert.True(t, r.Has("isolated"))
	assert.False(t, NewRegistry().Has("isolated"))
	assert.False(t, DefaultRegistry().Has("isolated"))
}

func TestRegistry_ListIDsReturnsCopy(t *testing.T) {
	r := NewRegistry()
	ids := r.ListIDs()
	ids[0] = "changed"
	assert.Equal(t, StrategyColumn, r.ListIDs()[0])
}
