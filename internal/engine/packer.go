package engine

import (
	"github.com/piwi3910/TrailerPack/internal/model"
)

// Scoring weights for the per-slot heuristic. Wide items are strongly
// preferred (they wall off less floor), stacking on top of existing cargo is
// rewarded, but high stacks and placements far from the loading wall are
// penalized. The two volume terms are tie-breakers.
const (
	scoreWidthWeight     = 1000.0
	scoreStackBonus      = 1200.0
	stackBonusMinRestY   = 0.1
	scoreRestYPenalty    = 15.0
	scoreWallPenalty     = 10.0
	scoreOrientVolWeight = 0.001
	scoreItemVolWeight   = 0.0001
)

// remainingItem is one not-yet-placed instance with its precomputed
// orientations and volume.
type remainingItem struct {
	instanceID string
	item       model.Item
	orients    []Orientation
	volume     float64
}

// placement is one accepted placement in acceptance order.
type placement struct {
	instanceID string
	pos        model.Vec3
	dims       model.Dims
	rotY       float64
	restY      float64
}

// packRun holds all mutable state of a single run. Nothing escapes it, so
// the run is race-free by construction.
type packRun struct {
	settings   model.PackSettings
	trailer    model.Trailer
	zones      []Zone
	frontFirst bool
	telemetry  Telemetry
	progress   func(placed, total int)

	total      int
	remaining  []remainingItem
	packed     []packedEntry
	placements []placement
}

// candidate is the best-scoring (item, orientation) pair found at a slot.
type candidate struct {
	remIdx int
	orient Orientation
	pos    model.Vec3
	restY  float64
	score  float64
}

// slotScore implements the placement heuristic for one accepted candidate.
func (r *packRun) slotScore(o Orientation, pos model.Vec3, restY, itemVolume float64) float64 {
	distFromWall := pos.X
	if r.frontFirst {
		distFromWall = r.trailer.Length - pos.X
	}
	score := o.W * scoreWidthWeight
	if restY > stackBonusMinRestY {
		score += scoreStackBonus
	}
	score -= restY * scoreRestYPenalty
	score -= distFromWall * scoreWallPenalty
	score += o.L * o.W * o.H * scoreOrientVolWeight
	score += itemVolume * scoreItemVolWeight
	return score
}

// attemptSlot evaluates every remaining (item, orientation) pair at the
// (xFace, zFace) slot and returns the best-scoring accepted candidate.
// Ties keep the first-fit-decreasing order: a later candidate only wins on a
// strictly greater score. The search stops early once an accepted candidate
// fills at least settings.WidthFillStop of the trailer width.
func (r *packRun) attemptSlot(xFace, zFace float64) (candidate, bool) {
	halfW := r.trailer.Width / 2
	widthStop := r.settings.WidthFillStop * r.trailer.Width

	best := candidate{remIdx: -1}
	tested, rejected := 0, 0

search:
	for i, rem := range r.remaining {
		for _, o := range rem.orients {
			tested++

			// Align the near face to xFace and the minimum Z face to zFace.
			cx := xFace + o.L/2
			if r.frontFirst {
				cx = xFace - o.L/2
			}
			cz := zFace + o.W/2

			if cx-o.L/2 < -containTol || cx+o.L/2 > r.trailer.Length+containTol ||
				cz-o.W/2 < -halfW-containTol || cz+o.W/2 > halfW+containTol {
				rejected++
				continue
			}

			pos, restY, ok := tryPlace(cx, cz, o, r.trailer.Height, r.zones, r.packed)
			if !ok {
				rejected++
				continue
			}

			score := r.slotScore(o, pos, restY, rem.volume)
			if best.remIdx < 0 || score > best.score {
				best = candidate{remIdx: i, orient: o, pos: pos, restY: restY, score: score}
			}
			if o.W >= widthStop {
				break search
			}
		}
	}

	chosen := ""
	if best.remIdx >= 0 {
		chosen = r.remaining[best.remIdx].instanceID
	}
	r.telemetry.SlotScanned(SlotInfo{X: xFace, Z: zFace, Tested: tested, Rejected: rejected, Chosen: chosen})
	return best, best.remIdx >= 0
}

// accept records a candidate as placed and removes its item from the
// remaining set, preserving relative order.
func (r *packRun) accept(c candidate) {
	rem := r.remaining[c.remIdx]
	r.packed = append(r.packed, packedEntry{
		instanceID: rem.instanceID,
		pos:        c.pos,
		dims:       c.orient.Dims(),
	})
	r.placements = append(r.placements, placement{
		instanceID: rem.instanceID,
		pos:        c.pos,
		dims:       c.orient.Dims(),
		rotY:       c.orient.RotY,
		restY:      c.restY,
	})
	r.remaining = append(r.remaining[:c.remIdx], r.remaining[c.remIdx+1:]...)

	r.telemetry.ItemPlaced(PlacedInfo{
		InstanceID:  rem.instanceID,
		Dims:        c.orient.Dims(),
		RotY:        c.orient.RotY,
		Position:    c.pos,
		PlacedSoFar: len(r.placements),
		Total:       r.total,
	})
	if r.progress != nil && len(r.placements)%r.settings.ProgressInterval == 0 {
		r.progress(len(r.placements), r.total)
	}
}

// run executes full sweeps over the candidate slots until a sweep places
// nothing, everything is placed, or the sweep budget is exhausted. After each
// acceptance the Z scan restarts at the current X face with the new footprint
// edges included, greedily filling one column before advancing.
func (r *packRun) run() {
	budget := r.settings.SweepBudgetFactor * r.total
	if budget < 1 {
		budget = 1
	}

	for sweep := 0; sweep < budget && len(r.remaining) > 0; sweep++ {
		placedThisSweep := false

		xs := xAnchors(r.zones, r.trailer.Length, r.frontFirst, r.packed, r.settings.MaxXAnchors)
		for _, x := range xs {
			if len(r.remaining) == 0 {
				break
			}
			zs := zAnchors(r.zones, r.trailer.Width, r.packed, r.settings.MaxZAnchors)
			zi := 0
			for zi < len(zs) {
				c, ok := r.attemptSlot(x, zs[zi])
				if !ok {
					zi++
					continue
				}
				r.accept(c)
				placedThisSweep = true
				zs = zAnchors(r.zones, r.trailer.Width, r.packed, r.settings.MaxZAnchors)
				zi = 0
			}
		}

		if !placedThisSweep {
			break
		}
	}
}
