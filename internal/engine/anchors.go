package engine

import (
	"math"
	"sort"

	"github.com/piwi3910/TrailerPack/internal/model"
)

// Candidate grid parameters. The grid gives coarse coverage of the floor;
// zone edges and packed-item edges give exact positions worth trying.
const (
	xGridDivisor = 60.0
	zGridDivisor = 20.0
	minGridStep  = 2.0
	maxGridStep  = 12.0
)

func gridStep(extent, divisor float64) float64 {
	step := extent / divisor
	if step < minGridStep {
		step = minGridStep
	}
	if step > maxGridStep {
		step = maxGridStep
	}
	return step
}

// dedupeSorted removes near-duplicate values and returns them sorted
// ascending. Values are keyed at micro-inch resolution so grid points that
// coincide with zone or item edges collapse to one anchor.
func dedupeSorted(vals []float64) []float64 {
	seen := make(map[int64]bool, len(vals))
	out := make([]float64, 0, len(vals))
	for _, v := range vals {
		key := int64(math.Round(v * 1e6))
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, v)
	}
	sort.Float64s(out)
	return out
}

// xAnchors produces the live X candidate faces: zone edges, the coarse grid,
// and the footprint edges of everything already packed, ordered in loading
// direction and capped at maxAnchors.
func xAnchors(zones []Zone, length float64, frontFirst bool, packed []packedEntry, maxAnchors int) []float64 {
	var vals []float64
	for _, z := range zones {
		vals = append(vals, z.Min.X, z.Max.X)
	}
	step := gridStep(length, xGridDivisor)
	for x := 0.0; x <= length; x += step {
		vals = append(vals, x)
	}
	for _, e := range packed {
		vals = append(vals, e.pos.X-e.dims.L/2, e.pos.X+e.dims.L/2)
	}

	kept := vals[:0]
	for _, v := range vals {
		if v >= 0 && v <= length {
			kept = append(kept, v)
		}
	}
	out := dedupeSorted(kept)
	if frontFirst {
		for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
			out[i], out[j] = out[j], out[i]
		}
	}
	if len(out) > maxAnchors {
		out = out[:maxAnchors]
	}
	return out
}

// zAnchors produces the live Z candidate faces: zone edges, the coarse grid
// across [-W/2, W/2], and packed footprint edges, sorted ascending. When the
// set exceeds the cap it keeps roughly 35% from the near wall, 30% nearest
// the centerline and the remainder from the far wall, so both wall-hugging
// and center-filling placements survive the cut.
func zAnchors(zones []Zone, width float64, packed []packedEntry, maxAnchors int) []float64 {
	halfW := width / 2
	var vals []float64
	for _, z := range zones {
		vals = append(vals, z.Min.Z, z.Max.Z)
	}
	step := gridStep(width, zGridDivisor)
	for z := -halfW; z <= halfW; z += step {
		vals = append(vals, z)
	}
	for _, e := range packed {
		vals = append(vals, e.pos.Z-e.dims.W/2, e.pos.Z+e.dims.W/2)
	}

	kept := vals[:0]
	for _, v := range vals {
		if v >= -halfW && v <= halfW {
			kept = append(kept, v)
		}
	}
	out := dedupeSorted(kept)
	if len(out) <= maxAnchors {
		return out
	}

	nNear := int(float64(maxAnchors) * 0.35)
	nCenter := int(float64(maxAnchors) * 0.30)
	nFar := maxAnchors - nNear - nCenter

	taken := make(map[int]bool, maxAnchors)
	for i := 0; i < nNear; i++ {
		taken[i] = true
	}
	for i := len(out) - nFar; i < len(out); i++ {
		taken[i] = true
	}
	// Fill the center share with the untaken anchors closest to Z=0.
	rest := make([]int, 0, len(out))
	for i := range out {
		if !taken[i] {
			rest = append(rest, i)
		}
	}
	sort.SliceStable(rest, func(a, b int) bool {
		return math.Abs(out[rest[a]]) < math.Abs(out[rest[b]])
	})
	for i := 0; i < nCenter && i < len(rest); i++ {
		taken[rest[i]] = true
	}

	capped := make([]float64, 0, maxAnchors)
	for i, v := range out {
		if taken[i] {
			capped = append(capped, v)
		}
	}
	return capped
}

// initialAnchorSteps reports the grid steps used for a trailer, for run-start
// telemetry.
func initialAnchorSteps(t model.Trailer) (xStep, zStep float64) {
	return gridStep(t.Length, xGridDivisor), gridStep(t.Width, zGridDivisor)
}
