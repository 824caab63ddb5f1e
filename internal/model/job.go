package model

// BoxLine is one row of a box list: a box description plus a quantity.
type BoxLine struct {
	Label              string   `json:"label" toml:"label"`
	Width              float64  `json:"width" toml:"width"`
	Height             float64  `json:"height" toml:"height"`
	Depth              float64  `json:"depth" toml:"depth"`
	Weight             float64  `json:"weight" toml:"weight"`
	Quantity           int      `json:"quantity" toml:"quantity"`
	Type               string   `json:"type,omitempty" toml:"type"`
	SKU                string   `json:"sku,omitempty" toml:"sku"`
	Product            string   `json:"product,omitempty" toml:"product"`
	MaterialWeight     *float64 `json:"material_weight,omitempty" toml:"material_weight,omitempty"`
	Fragile            bool     `json:"fragile,omitempty" toml:"fragile"`
	FragilityMaxWeight *float64 `json:"fragility_max_weight,omitempty" toml:"fragility_max_weight,omitempty"`
	NotStackable       bool     `json:"not_stackable,omitempty" toml:"not_stackable"`
}

// Expand creates Quantity individual boxes.
func (l BoxLine) Expand(ids IDGenerator) []Box {
	boxes := make([]Box, 0, l.Quantity)
	for i := 0; i < l.Quantity; i++ {
		b := NewBox(ids, l.Width, l.Height, l.Depth, l.Weight, l.options()...)
		boxes = append(boxes, b)
	}
	return boxes
}

func (l BoxLine) options() []BoxOption {
	opts := []BoxOption{WithLabel(l.Label), WithType(l.Type), WithSKU(l.SKU), WithProduct(l.Product)}
	if l.Fragile {
		var maxLoad *float64
		if l.FragilityMaxWeight != nil {
			maxLoad = Float(*l.FragilityMaxWeight)
		}
		opts = append(opts, WithFragile(maxLoad))
	}
	if l.NotStackable {
		opts = append(opts, NotStackable())
	}
	if l.MaterialWeight != nil {
		opts = append(opts, WithMaterialWeight(*l.MaterialWeight))
	}
	return opts
}

// ExpandLines expands every line in order.
func ExpandLines(ids IDGenerator, lines []BoxLine) []Box {
	var boxes []Box
	for _, l := range lines {
		boxes = append(boxes, l.Expand(ids)...)
	}
	return boxes
}

// Job describes one packing run as read from a job file.
type Job struct {
	Name         string    `json:"name" toml:"name"`
	Strategy     string    `json:"strategy,omitempty" toml:"strategy"`
	PalletPreset string    `json:"pallet_preset,omitempty" toml:"pallet_preset"`
	Pallet       *Pallet   `json:"pallet,omitempty" toml:"pallet,omitempty"`
	MaxFloors    int       `json:"max_floors,omitempty" toml:"max_floors"`
	NamePrefix   string    `json:"name_prefix,omitempty" toml:"name_prefix"`
	BoxesFile    string    `json:"boxes_file,omitempty" toml:"boxes_file"`
	Boxes        []BoxLine `json:"boxes" toml:"boxes"`
}

// ApplyDefaults fills empty job fields from the application config.
func (j *Job) ApplyDefaults(cfg AppConfig) {
	if j.Strategy == "" {
		j.Strategy = cfg.DefaultStrategy
	}
	if j.PalletPreset == "" && j.Pallet == nil {
		j.PalletPreset = cfg.DefaultPalletPreset
	}
	if j.MaxFloors <= 0 {
		j.MaxFloors = cfg.MaxFloorsPerPallet
	}
	if j.NamePrefix == "" {
		j.NamePrefix = cfg.NamePrefix
	}
}

// ResolvePallet returns the job's custom pallet, or the preset it names
// looked up in inv. A custom pallet without an id gets one from ids.
func (j Job) ResolvePallet(inv *Inventory, ids IDGenerator) (Pallet, error) {
	if j.Pallet != nil {
		p := *j.Pallet
		if p.ID == "" {
			p.ID = ids.NextID("pallet")
		}
		return p, nil
	}
	if inv == nil {
		return PalletFromPreset(ids, j.PalletPreset)
	}
	return inv.Pallet(ids, j.PalletPreset)
}
