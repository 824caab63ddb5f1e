package model

// Vec3 is a point or offset in millimetres. Y is the vertical axis.
type Vec3 struct {
	X float64 `json:"x" toml:"x"`
	Y float64 `json:"y" toml:"y"`
	Z float64 `json:"z" toml:"z"`
}

// Point2D is a plan coordinate (X/Z projected onto the floor) in mm.
type Point2D struct {
	X float64 `json:"x" toml:"x"`
	Z float64 `json:"z" toml:"z"`
}

// Polygon is a closed floor outline. The last vertex connects back to the first.
type Polygon []Point2D

// Dimensions holds the extent of an item along each axis in mm.
type Dimensions struct {
	Width  float64 `json:"width" toml:"width"`   // X
	Height float64 `json:"height" toml:"height"` // Y
	Depth  float64 `json:"depth" toml:"depth"`   // Z
}

// Volume returns width × height × depth.
func (d Dimensions) Volume() float64 {
	return d.Width * d.Height * d.Depth
}

// BaseArea returns the plan footprint width × depth.
func (d Dimensions) BaseArea() float64 {
	return d.Width * d.Depth
}

// DefaultMaterialWeight is used for boxes that do not declare a material weight.
const DefaultMaterialWeight = 5.0

// Box is a rectangular item to be loaded. Boxes are treated as immutable.
type Box struct {
	ID                 string            `json:"id"`
	Label              string            `json:"label,omitempty"`
	Dimensions         Dimensions        `json:"dimensions"`
	Weight             float64           `json:"weight"` // kg
	Type               string            `json:"type,omitempty"`
	SKU                string            `json:"sku,omitempty"`
	Product            string            `json:"product,omitempty"`
	MaterialWeight     *float64          `json:"material_weight,omitempty"` // 0-10, higher is placed lower
	Fragile            bool              `json:"fragile"`
	FragilityMaxWeight *float64          `json:"fragility_max_weight,omitempty"` // kg allowed on top of a fragile box
	Stackable          bool              `json:"stackable"`
	Metadata           map[string]string `json:"metadata,omitempty"`
}

// GroupKey returns the key used by type-oriented strategies: the type, else
// the SKU, else "default".
func (b Box) GroupKey() string {
	switch {
	case b.Type != "":
		return b.Type
	case b.SKU != "":
		return b.SKU
	default:
		return "default"
	}
}

// EffectiveMaterialWeight returns the material weight or the default when unset.
func (b Box) EffectiveMaterialWeight() float64 {
	if b.MaterialWeight == nil {
		return DefaultMaterialWeight
	}
	return *b.MaterialWeight
}

// Rotation is a rotation in degrees. Only the Y component is ever non-zero.
type Rotation struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// NormalizeRotation maps any angle in degrees onto {0, 90, 180, 270}.
func NormalizeRotation(deg float64) float64 {
	steps := int(deg/90.0+0.5*sign(deg)) % 4
	if steps < 0 {
		steps += 4
	}
	return float64(steps * 90)
}

func sign(v float64) float64 {
	if v < 0 {
		return -1
	}
	return 1
}

// QuarterTurned reports whether the Y rotation swaps width and depth.
func (r Rotation) QuarterTurned() bool {
	a := NormalizeRotation(r.Y)
	return a == 90 || a == 270
}

// PlacedBox binds a box to a position (its minimum corner) and a rotation.
type PlacedBox struct {
	Box         Box      `json:"box"`
	Position    Vec3     `json:"position"`
	Rotation    Rotation `json:"rotation"`
	SupportedBy []string `json:"supported_by,omitempty"`
	Supporting  []string `json:"supporting,omitempty"`
}

// EffectiveDimensions returns the box dimensions after applying the Y rotation.
func (p PlacedBox) EffectiveDimensions() Dimensions {
	d := p.Box.Dimensions
	if p.Rotation.QuarterTurned() {
		d.Width, d.Depth = d.Depth, d.Width
	}
	return d
}

// Top returns the Y coordinate of the box's upper face.
func (p PlacedBox) Top() float64 {
	return p.Position.Y + p.Box.Dimensions.Height
}

// Pallet is the load carrier. MaxWeight excludes the pallet's own weight and
// MaxStackHeight is the usable height above the deck.
type Pallet struct {
	ID             string     `json:"id" toml:"id"`
	Label          string     `json:"label,omitempty" toml:"label"`
	Dimensions     Dimensions `json:"dimensions" toml:"dimensions"`
	MaxWeight      float64    `json:"max_weight" toml:"max_weight"`
	MaxStackHeight float64    `json:"max_stack_height" toml:"max_stack_height"`
	Weight         float64    `json:"weight" toml:"weight"`
	Material       string     `json:"material,omitempty" toml:"material"`
}

// FootprintArea returns the pallet deck area.
func (p Pallet) FootprintArea() float64 {
	return p.Dimensions.BaseArea()
}

// Separator is a flat sheet laid between two floors of a stack.
type Separator struct {
	ID         string     `json:"id"`
	Dimensions Dimensions `json:"dimensions"`
	Weight     float64    `json:"weight"`
	Material   string     `json:"material,omitempty"`
}

// PalletFloor is one level of a stack: a pallet, its boxes and an optional
// separator above it. Only the topmost floor omits the separator.
type PalletFloor struct {
	Pallet         Pallet      `json:"pallet"`
	Boxes          []PlacedBox `json:"boxes"`
	SeparatorAbove *Separator  `json:"separator_above,omitempty"`
}

// LoadHeight returns the highest box top above the deck, or 0 for an empty floor.
func (f PalletFloor) LoadHeight() float64 {
	var top float64
	for _, b := range f.Boxes {
		if t := b.Top(); t > top {
			top = t
		}
	}
	return top
}

// TotalHeight is deck + load + separator thickness.
func (f PalletFloor) TotalHeight() float64 {
	h := f.Pallet.Dimensions.Height + f.LoadHeight()
	if f.SeparatorAbove != nil {
		h += f.SeparatorAbove.Dimensions.Height
	}
	return h
}

// BoxWeight returns the summed weight of the boxes on this floor.
func (f PalletFloor) BoxWeight() float64 {
	var w float64
	for _, b := range f.Boxes {
		w += b.Box.Weight
	}
	return w
}

// TotalWeight is pallet + boxes + separator.
func (f PalletFloor) TotalWeight() float64 {
	w := f.Pallet.Weight + f.BoxWeight()
	if f.SeparatorAbove != nil {
		w += f.SeparatorAbove.Weight
	}
	return w
}

// StackedPallet is an ordered list of floors, base first.
type StackedPallet struct {
	ID     string        `json:"id"`
	Floors []PalletFloor `json:"floors"`
}

// Base returns the bottom floor. Callers must ensure the stack has a floor.
func (s StackedPallet) Base() PalletFloor {
	return s.Floors[0]
}

// TotalHeight sums the height of every floor.
func (s StackedPallet) TotalHeight() float64 {
	var h float64
	for _, f := range s.Floors {
		h += f.TotalHeight()
	}
	return h
}

// TotalWeight sums the weight of every floor including pallets and separators.
func (s StackedPallet) TotalWeight() float64 {
	var w float64
	for _, f := range s.Floors {
		w += f.TotalWeight()
	}
	return w
}

// LoadWeight is the weight carried by the base pallet.
func (s StackedPallet) LoadWeight() float64 {
	if len(s.Floors) == 0 {
		return 0
	}
	return s.TotalWeight() - s.Floors[0].Pallet.Weight
}

// BoxCount returns the number of boxes over all floors.
func (s StackedPallet) BoxCount() int {
	n := 0
	for _, f := range s.Floors {
		n += len(f.Boxes)
	}
	return n
}

// PlacedPallet is a stack positioned inside a truck or room. Position is the
// centre of the footprint at floor level; YRotation is in degrees.
type PlacedPallet struct {
	Stack     StackedPallet `json:"stack"`
	Position  Vec3          `json:"position"`
	YRotation float64       `json:"y_rotation"`
}

// Truck is a cargo space whose origin is the front-left floor corner.
type Truck struct {
	ID         string         `json:"id"`
	Label      string         `json:"label,omitempty"`
	Dimensions Dimensions     `json:"dimensions"`
	MaxWeight  float64        `json:"max_weight"`
	Pallets    []PlacedPallet `json:"pallets"`
}

// Room is a storage area described by a floor polygon and a ceiling height.
type Room struct {
	ID            string         `json:"id"`
	Label         string         `json:"label,omitempty"`
	Floor         Polygon        `json:"floor"`
	CeilingHeight float64        `json:"ceiling_height"`
	Pallets       []PlacedPallet `json:"pallets"`
}

// LoadPlan is the outcome of spreading boxes over several stacks.
type LoadPlan struct {
	Name          string          `json:"name,omitempty"`
	Strategy      string          `json:"strategy,omitempty"`
	Pallets       []StackedPallet `json:"pallets"`
	UnplacedBoxes []Box           `json:"unplaced_boxes"`
	Truck         *Truck          `json:"truck,omitempty"`
	Room          *Room           `json:"room,omitempty"`
}

// PlacedCount returns the number of boxes placed over all stacks.
func (lp LoadPlan) PlacedCount() int {
	n := 0
	for _, s := range lp.Pallets {
		n += s.BoxCount()
	}
	return n
}
