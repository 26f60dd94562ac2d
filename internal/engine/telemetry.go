package engine

import (
	"github.com/piwi3910/TrailerPack/internal/model"
)

// RunInfo describes a run at start time.
type RunInfo struct {
	Trailer    model.Dims
	ShapeMode  model.ShapeMode
	FrontFirst bool
	ZoneCount  int
	XGridStep  float64
	ZGridStep  float64
	ItemCount  int
}

// SlotInfo describes one evaluated (X, Z) slot.
type SlotInfo struct {
	X, Z     float64
	Tested   int    // (item, orientation) candidates evaluated
	Rejected int    // candidates rejected by bounds, ceiling, zones or collision
	Chosen   string // instance ID of the accepted candidate, empty if none fit
}

// PlacedInfo describes one accepted placement.
type PlacedInfo struct {
	InstanceID  string
	Dims        model.Dims
	RotY        float64
	Position    model.Vec3
	PlacedSoFar int
	Total       int
}

// RunSummary describes a finished run.
type RunSummary struct {
	Status        string // "completed" or "failed"
	Packed        int
	Unplaced      int
	VolumePercent float64
}

// Telemetry receives read-only diagnostics from a pack run. Implementations
// must not mutate engine state; the engine behaves identically with or
// without a collector attached.
type Telemetry interface {
	RunStarted(RunInfo)
	SlotScanned(SlotInfo)
	ItemPlaced(PlacedInfo)
	RunFinished(RunSummary)
}

// NopTelemetry discards all events.
type NopTelemetry struct{}

func (NopTelemetry) RunStarted(RunInfo)     {}
func (NopTelemetry) SlotScanned(SlotInfo)   {}
func (NopTelemetry) ItemPlaced(PlacedInfo)  {}
func (NopTelemetry) RunFinished(RunSummary) {}
