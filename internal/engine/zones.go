package engine

import (
	"github.com/piwi3910/TrailerPack/internal/model"
)

// Numeric tolerances. These are load-bearing: the heuristic's accept/reject
// decisions depend on them, so they must not be "cleaned up".
const (
	containTol    = 0.01  // zone containment, ceiling and footprint-overlap checks
	collideTol    = 0.001 // strict AABB collision
	degenerateTol = 1e-9  // zone extent below which a zone is dropped
)

// Zone is one usable axis-aligned sub-volume of the trailer, in trailer-local
// inches. X spans [0, length], Y spans [0, height], Z is centered on 0.
type Zone struct {
	Min model.Vec3
	Max model.Vec3
}

// Volume returns the zone volume in cubic inches.
func (z Zone) Volume() float64 {
	return (z.Max.X - z.Min.X) * (z.Max.Y - z.Min.Y) * (z.Max.Z - z.Min.Z)
}

func (z Zone) degenerate() bool {
	return z.Max.X-z.Min.X <= degenerateTol ||
		z.Max.Y-z.Min.Y <= degenerateTol ||
		z.Max.Z-z.Min.Z <= degenerateTol
}

// BuildZones derives the usable sub-volumes of a trailer from its shape mode.
// rect yields one zone, frontBonus two, wheelWells up to five. Degenerate
// zones are silently dropped.
func BuildZones(t model.Trailer) []Zone {
	t = t.Normalized()
	l, w, h := t.Length, t.Width, t.Height

	var zones []Zone
	switch t.ShapeMode {
	case model.ShapeFrontBonus:
		cfg := t.FrontBonus.Resolve(l, w, h)
		splitX := l - cfg.BonusLength
		// Rear main volume at full cross-section, then the nose bonus volume
		// with its own (possibly reduced) width and height centered on Z.
		zones = append(zones,
			Zone{Min: model.Vec3{X: 0, Y: 0, Z: -w / 2}, Max: model.Vec3{X: splitX, Y: h, Z: w / 2}},
			Zone{Min: model.Vec3{X: splitX, Y: 0, Z: -cfg.BonusWidth / 2}, Max: model.Vec3{X: l, Y: cfg.BonusHeight, Z: cfg.BonusWidth / 2}},
		)

	case model.ShapeWheelWells:
		cfg := t.WheelWells.Resolve(l, w, h)
		wx0 := cfg.WellOffsetFromRear
		wx1 := cfg.WellOffsetFromRear + cfg.WellLength
		if wx1 > l {
			wx1 = l
		}
		betweenHalfW := (w / 2) - cfg.WellWidth
		if betweenHalfW < 0 {
			betweenHalfW = 0
		}
		zones = append(zones,
			// Rear full-width slab before the wells.
			Zone{Min: model.Vec3{X: 0, Y: 0, Z: -w / 2}, Max: model.Vec3{X: wx0, Y: h, Z: w / 2}},
			// Full-height corridor between the wells.
			Zone{Min: model.Vec3{X: wx0, Y: 0, Z: -betweenHalfW}, Max: model.Vec3{X: wx1, Y: h, Z: betweenHalfW}},
			// Above-well slabs along each wall.
			Zone{Min: model.Vec3{X: wx0, Y: cfg.WellHeight, Z: -w / 2}, Max: model.Vec3{X: wx1, Y: h, Z: -betweenHalfW}},
			Zone{Min: model.Vec3{X: wx0, Y: cfg.WellHeight, Z: betweenHalfW}, Max: model.Vec3{X: wx1, Y: h, Z: w / 2}},
			// Front full-width slab after the wells.
			Zone{Min: model.Vec3{X: wx1, Y: 0, Z: -w / 2}, Max: model.Vec3{X: l, Y: h, Z: w / 2}},
		)

	default: // rect
		zones = append(zones, Zone{
			Min: model.Vec3{X: 0, Y: 0, Z: -w / 2},
			Max: model.Vec3{X: l, Y: h, Z: w / 2},
		})
	}

	kept := zones[:0]
	for _, z := range zones {
		if !z.degenerate() {
			kept = append(kept, z)
		}
	}
	return kept
}

// TotalCapacity returns the summed volume of all zones in cubic inches.
func TotalCapacity(zones []Zone) float64 {
	var total float64
	for _, z := range zones {
		total += z.Volume()
	}
	return total
}

// ContainedInAnyZone reports whether the box [min, max] lies fully within a
// single zone. A box spanning two zones is not contained: zone boundaries are
// real walls (well edges, the nose bulkhead), not bookkeeping lines.
func ContainedInAnyZone(min, max model.Vec3, zones []Zone) bool {
	for _, z := range zones {
		if min.X >= z.Min.X-containTol && max.X <= z.Max.X+containTol &&
			min.Y >= z.Min.Y-containTol && max.Y <= z.Max.Y+containTol &&
			min.Z >= z.Min.Z-containTol && max.Z <= z.Max.Z+containTol {
			return true
		}
	}
	return false
}
