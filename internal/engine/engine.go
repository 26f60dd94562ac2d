// Package engine implements the 3D greedy placement algorithm that assigns
// position and rotation to cargo items inside a partitioned trailer volume,
// subject to gravity support, vertical-axis rotation constraints, zone
// containment and non-overlap.
package engine

import (
	"errors"
	"fmt"
	"sort"
	"sync/atomic"

	"github.com/piwi3910/TrailerPack/internal/model"
)

// ErrRunActive is returned when Pack is invoked while another run is active
// on the same Engine.
var ErrRunActive = errors.New("a pack run is already active")

// Staging grid for packable instances before (and, for unplaced cargo,
// after) a run: rows wrap beside the trailer so leftovers stay visible.
const (
	stagingCols   = 8
	stagingPitch  = 60.0
	stagingMargin = 36.0
)

// Engine runs the packing algorithm. It holds no state between runs except a
// single-flight guard; all run state is local to one Pack call.
type Engine struct {
	Settings model.PackSettings

	// Telemetry, when set, receives read-only diagnostics. Nil means no-op.
	Telemetry Telemetry

	// Progress, when set, is called every Settings.ProgressInterval
	// placements with the running totals.
	Progress func(placed, total int)

	running atomic.Bool
}

// New creates an engine with the given settings.
func New(settings model.PackSettings) *Engine {
	return &Engine{Settings: settings.Normalized()}
}

// packable pairs an instance with its resolved item definition.
type packable struct {
	instance model.ItemInstance
	item     model.Item
	staging  model.Transform
}

// Pack assigns positions and rotations to the given instances inside the
// trailer. Hidden instances and instances referencing unknown item IDs are
// excluded. Items that do not fit are a normal outcome: they are reported
// unplaced with their staging transform, never as an error.
//
// Only one run may be active per Engine; a concurrent second call returns
// ErrRunActive. Output is committed transactionally: an internal failure
// discards all placements and returns an error with an empty result.
func (e *Engine) Pack(trailer model.Trailer, instances []model.ItemInstance, items map[string]model.Item) (result model.PackResult, err error) {
	if !e.running.CompareAndSwap(false, true) {
		return model.PackResult{}, ErrRunActive
	}
	defer e.running.Store(false)

	tel := e.Telemetry
	if tel == nil {
		tel = NopTelemetry{}
	}
	defer func() {
		if rec := recover(); rec != nil {
			result = model.PackResult{}
			err = fmt.Errorf("pack run failed: %v", rec)
			tel.RunFinished(RunSummary{Status: "failed"})
		}
	}()

	settings := e.Settings.Normalized()
	trailer = trailer.Normalized()
	zones := BuildZones(trailer)

	// Resolve and pre-stage the packable instances in input order.
	var packables []packable
	for _, inst := range instances {
		if inst.Hidden {
			continue
		}
		it, ok := items[inst.ItemID]
		if !ok {
			continue
		}
		packables = append(packables, packable{
			instance: inst,
			item:     it,
			staging:  stagingTransform(len(packables), trailer, it),
		})
	}

	run := &packRun{
		settings:   settings,
		trailer:    trailer,
		zones:      zones,
		frontFirst: trailer.LoadFrontFirst(),
		telemetry:  tel,
		progress:   e.Progress,
		total:      len(packables),
	}
	for _, p := range packables {
		run.remaining = append(run.remaining, remainingItem{
			instanceID: p.instance.InstanceID,
			item:       p.item,
			orients:    OrientationsFor(p.item),
			volume:     p.item.Volume(),
		})
	}
	// First-fit-decreasing: largest volume first, ties keep input order.
	sort.SliceStable(run.remaining, func(i, j int) bool {
		return run.remaining[i].volume > run.remaining[j].volume
	})

	xStep, zStep := initialAnchorSteps(trailer)
	tel.RunStarted(RunInfo{
		Trailer:    model.Dims{L: trailer.Length, W: trailer.Width, H: trailer.Height},
		ShapeMode:  trailer.ShapeMode,
		FrontFirst: run.frontFirst,
		ZoneCount:  len(zones),
		XGridStep:  xStep,
		ZGridStep:  zStep,
		ItemCount:  len(packables),
	})

	run.run()

	result = aggregate(packables, run.placements)
	tel.RunFinished(RunSummary{
		Status:        "completed",
		Packed:        result.PackedCount,
		Unplaced:      result.TotalPackable - result.PackedCount,
		VolumePercent: result.VolumePercent,
	})
	return result, nil
}

// stagingTransform returns the deterministic row-wrapped grid pose of the
// i-th packable instance, beside the trailer's left wall, resting on the
// ground plane.
func stagingTransform(i int, t model.Trailer, it model.Item) model.Transform {
	col := i % stagingCols
	row := i / stagingCols
	return model.Transform{
		Position: model.Vec3{
			X: float64(col) * stagingPitch,
			Y: it.Height / 2,
			Z: t.Width/2 + stagingMargin + float64(row)*stagingPitch,
		},
	}
}

// aggregate converts the internal placement set into final per-instance
// transforms and summary statistics. Unplaced instances keep their staging
// transform and upright dimensions.
func aggregate(packables []packable, placements []placement) model.PackResult {
	placedByID := make(map[string]placement, len(placements))
	for _, p := range placements {
		placedByID[p.instanceID] = p
	}

	var totalVol, packedVol float64
	result := model.PackResult{TotalPackable: len(packables)}
	for _, p := range packables {
		vol := p.item.Volume()
		totalVol += vol

		ir := model.InstanceResult{
			InstanceID: p.instance.InstanceID,
			ItemID:     p.item.ID,
		}
		if pl, ok := placedByID[p.instance.InstanceID]; ok {
			ir.Placed = true
			ir.Transform = model.Transform{
				Position: pl.pos,
				Rotation: model.Vec3{Y: pl.rotY},
			}
			ir.OrientedDims = pl.dims
			result.PackedCount++
			packedVol += vol
		} else {
			ir.Transform = p.staging
			ir.OrientedDims = model.Dims{L: p.item.Length, W: p.item.Width, H: p.item.Height}
		}
		result.Instances = append(result.Instances, ir)
	}

	if totalVol > 0 {
		result.VolumePercent = (packedVol / totalVol) * 100.0
	}
	return result
}
