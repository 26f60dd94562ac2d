package model

// PackSettings holds the tunable parameters of the packing engine. The
// defaults reproduce the behavior the heuristic was calibrated with; they are
// exposed so scenario comparison can vary them.
type PackSettings struct {
	// WidthFillStop stops the per-slot candidate search early once a
	// candidate fills at least this fraction of the trailer width.
	WidthFillStop float64 `json:"width_fill_stop"`

	// MaxXAnchors caps the live X candidate set, kept in loading order.
	MaxXAnchors int `json:"max_x_anchors"`

	// MaxZAnchors caps the live Z candidate set (split between the loading
	// side wall, the centerline, and the far wall).
	MaxZAnchors int `json:"max_z_anchors"`

	// SweepBudgetFactor bounds the number of full sweeps at
	// SweepBudgetFactor * itemCount.
	SweepBudgetFactor int `json:"sweep_budget_factor"`

	// ProgressInterval is how many placements pass between progress
	// callbacks.
	ProgressInterval int `json:"progress_interval"`
}

// DefaultPackSettings returns the calibrated engine defaults.
func DefaultPackSettings() PackSettings {
	return PackSettings{
		WidthFillStop:     0.95,
		MaxXAnchors:       120,
		MaxZAnchors:       220,
		SweepBudgetFactor: 2,
		ProgressInterval:  4,
	}
}

// Normalized returns a copy with out-of-range values replaced by defaults.
func (s PackSettings) Normalized() PackSettings {
	def := DefaultPackSettings()
	if s.WidthFillStop <= 0 || s.WidthFillStop > 1 {
		s.WidthFillStop = def.WidthFillStop
	}
	if s.MaxXAnchors <= 0 {
		s.MaxXAnchors = def.MaxXAnchors
	}
	if s.MaxZAnchors <= 0 {
		s.MaxZAnchors = def.MaxZAnchors
	}
	if s.SweepBudgetFactor <= 0 {
		s.SweepBudgetFactor = def.SweepBudgetFactor
	}
	if s.ProgressInterval <= 0 {
		s.ProgressInterval = def.ProgressInterval
	}
	return s
}
