package model

// Plan ties everything together for save/load: one trailer, the cargo to
// load, the catalog the cargo references, and optionally the last result.
type Plan struct {
	Name      string         `json:"name"`
	Trailer   Trailer        `json:"trailer"`
	Instances []ItemInstance `json:"instances"`
	Catalog   Catalog        `json:"catalog"`
	Settings  PackSettings   `json:"settings"`
	Result    *PackResult    `json:"result,omitempty"`
}

// NewPlan creates an empty plan around the default catalog and a 53' dry van.
func NewPlan() Plan {
	cat := DefaultCatalog()
	return Plan{
		Name:     "Untitled",
		Trailer:  cat.Trailers[0].ToTrailer(),
		Catalog:  cat,
		Settings: DefaultPackSettings(),
	}
}

// AddItems appends qty instances of the given item definition.
func (p *Plan) AddItems(itemID string, qty int) {
	for i := 0; i < qty; i++ {
		p.Instances = append(p.Instances, NewItemInstance(itemID))
	}
}

// TotalVolume returns the combined volume of all non-hidden instances whose
// item definition is known, in cubic inches.
func (p Plan) TotalVolume() float64 {
	idx := p.Catalog.ItemIndex()
	var total float64
	for _, inst := range p.Instances {
		if inst.Hidden {
			continue
		}
		if it, ok := idx[inst.ItemID]; ok {
			total += it.Volume()
		}
	}
	return total
}
