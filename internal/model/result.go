package model

// InstanceResult is the final pose of one instance after a pack run.
// Unplaced instances keep their staging transform so leftover cargo stays
// visible next to the trailer.
type InstanceResult struct {
	InstanceID   string    `json:"instance_id"`
	ItemID       string    `json:"item_id"`
	Placed       bool      `json:"placed"`
	Transform    Transform `json:"transform"`
	OrientedDims Dims      `json:"oriented_dims"`
}

// PackResult holds the full solution of one pack run.
type PackResult struct {
	Instances     []InstanceResult `json:"instances"`
	PackedCount   int              `json:"packed_count"`
	TotalPackable int              `json:"total_packable"`
	VolumePercent float64          `json:"volume_percent"`
}

// Placements returns only the placed instances, in input order.
func (r PackResult) Placements() []InstanceResult {
	var placed []InstanceResult
	for _, ir := range r.Instances {
		if ir.Placed {
			placed = append(placed, ir)
		}
	}
	return placed
}

// Unplaced returns the instances that did not fit.
func (r PackResult) Unplaced() []InstanceResult {
	var rest []InstanceResult
	for _, ir := range r.Instances {
		if !ir.Placed {
			rest = append(rest, ir)
		}
	}
	return rest
}
