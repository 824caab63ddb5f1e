package model

// BoxOption customises a box built by NewBox.
type BoxOption func(*Box)

// WithFragile marks the box fragile. maxLoad may be nil, meaning nothing may rest on it.
func WithFragile(maxLoad *float64) BoxOption {
	return func(b *Box) {
		b.Fragile = true
		b.FragilityMaxWeight = maxLoad
	}
}

// WithMaterialWeight sets the 0-10 load resistance score.
func WithMaterialWeight(mw float64) BoxOption {
	return func(b *Box) {
		b.MaterialWeight = &mw
	}
}

// WithProduct sets the product grouping key.
func WithProduct(product string) BoxOption {
	return func(b *Box) { b.Product = product }
}

// WithType sets the box type used by type-oriented strategies.
func WithType(t string) BoxOption {
	return func(b *Box) { b.Type = t }
}

// WithSKU sets the SKU.
func WithSKU(sku string) BoxOption {
	return func(b *Box) { b.SKU = sku }
}

// NotStackable forbids placing anything on top of the box.
func NotStackable() BoxOption {
	return func(b *Box) { b.Stackable = false }
}

// WithLabel sets a human readable label.
func WithLabel(label string) BoxOption {
	return func(b *Box) { b.Label = label }
}

// NewBox creates a stackable, non-fragile box.
func NewBox(ids IDGenerator, w, h, d, weight float64, opts ...BoxOption) Box {
	b := Box{
		ID:         ids.NextID("box"),
		Dimensions: Dimensions{Width: w, Height: h, Depth: d},
		Weight:     weight,
		Stackable:  true,
	}
	for _, opt := range opts {
		opt(&b)
	}
	return b
}

// NewPallet creates a pallet with the given deck dimensions and limits.
func NewPallet(ids IDGenerator, dims Dimensions, maxWeight, maxStackHeight, weight float64) Pallet {
	return Pallet{
		ID:             ids.NextID("pallet"),
		Dimensions:     dims,
		MaxWeight:      maxWeight,
		MaxStackHeight: maxStackHeight,
		Weight:         weight,
		Material:       "wood",
	}
}

// Cardboard separator defaults.
const (
	DefaultSeparatorThickness = 5.0
	DefaultSeparatorWeight    = 0.5
)

// NewSeparator creates a cardboard separator covering the pallet's plan.
func NewSeparator(ids IDGenerator, pallet Pallet) Separator {
	return Separator{
		ID: ids.NextID("separator"),
		Dimensions: Dimensions{
			Width:  pallet.Dimensions.Width,
			Height: DefaultSeparatorThickness,
			Depth:  pallet.Dimensions.Depth,
		},
		Weight:   DefaultSeparatorWeight,
		Material: "cardboard",
	}
}

// NewStackedPallet wraps the floors into a stack with a fresh id.
func NewStackedPallet(ids IDGenerator, floors ...PalletFloor) StackedPallet {
	return StackedPallet{ID: ids.NextID("stack"), Floors: floors}
}

// Float returns a pointer to v, for optional fields.
func Float(v float64) *float64 {
	return &v
}
