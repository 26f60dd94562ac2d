package model

// TrailerPreset represents a reusable trailer definition.
type TrailerPreset struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Length    float64   `json:"length"`
	Width     float64   `json:"width"`
	Height    float64   `json:"height"`
	ShapeMode ShapeMode `json:"shape_mode"`
}

// ToTrailer converts a preset into a Trailer.
func (tp TrailerPreset) ToTrailer() Trailer {
	t := NewTrailer(tp.Name, tp.Length, tp.Width, tp.Height)
	t.ShapeMode = tp.ShapeMode
	if t.ShapeMode == "" {
		t.ShapeMode = ShapeRect
	}
	return t
}

// Catalog holds the item-definition catalog and trailer presets a plan can
// draw from.
type Catalog struct {
	Items    []Item          `json:"items"`
	Trailers []TrailerPreset `json:"trailers"`
}

// FindItem returns the item definition with the given ID.
func (c Catalog) FindItem(id string) (Item, bool) {
	for _, it := range c.Items {
		if it.ID == id {
			return it, true
		}
	}
	return Item{}, false
}

// ItemIndex returns a lookup map from item ID to definition.
func (c Catalog) ItemIndex() map[string]Item {
	idx := make(map[string]Item, len(c.Items))
	for _, it := range c.Items {
		idx[it.ID] = it
	}
	return idx
}

// DefaultCatalog returns a catalog populated with common freight items and
// trailer sizes. IDs are fixed so plan files remain portable across machines.
func DefaultCatalog() Catalog {
	return Catalog{
		Items: []Item{
			{ID: "pallet-gma", Label: "GMA pallet (loaded)", Length: 48, Width: 40, Height: 48, Shape: ShapeBox, Lock: LockUpright},
			{ID: "pallet-euro", Label: "Euro pallet (loaded)", Length: 47.2, Width: 31.5, Height: 48, Shape: ShapeBox, Lock: LockUpright},
			{ID: "crate-half", Label: "Half crate", Length: 24, Width: 20, Height: 24, Shape: ShapeBox, Lock: LockAny, CanFlip: true},
			{ID: "drum-55", Label: "55 gal drum", Shape: ShapeDrum, Length: 35, Width: 23, Height: 23, Lock: LockUpright},
			{ID: "carton-large", Label: "Large carton", Length: 30, Width: 24, Height: 20, Shape: ShapeBox, Lock: LockAny, CanFlip: true},
			{ID: "appliance-box", Label: "Appliance box", Length: 36, Width: 30, Height: 70, Shape: ShapeBox, Lock: LockUpright},
			{ID: "pipe-bundle", Label: "Pipe bundle", Length: 120, Width: 12, Height: 12, Shape: ShapeBox, Lock: LockOnSide},
		},
		Trailers: []TrailerPreset{
			{ID: "dryvan-53", Name: "53' dry van", Length: 636, Width: 102, Height: 110, ShapeMode: ShapeRect},
			{ID: "dryvan-48", Name: "48' dry van", Length: 576, Width: 102, Height: 110, ShapeMode: ShapeRect},
			{ID: "step-deck", Name: "Step deck (front bonus)", Length: 576, Width: 102, Height: 102, ShapeMode: ShapeFrontBonus},
			{ID: "box-truck", Name: "26' box truck (wheel wells)", Length: 312, Width: 96, Height: 96, ShapeMode: ShapeWheelWells},
		},
	}
}
