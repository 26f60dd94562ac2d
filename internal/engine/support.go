package engine

import (
	"github.com/piwi3910/TrailerPack/internal/model"
)

// packedEntry is the transient algorithm state for one placed instance:
// center position and oriented dimensions.
type packedEntry struct {
	instanceID string
	pos        model.Vec3
	dims       model.Dims
}

func (e packedEntry) top() float64 {
	return e.pos.Y + e.dims.H/2
}

// restingY computes the gravity-settled bottom height for a footprint
// centered at (x, z) with half-extents halfL, halfW: the highest top surface
// among packed entries whose XZ footprint strictly overlaps it, or 0 (floor).
func restingY(x, z, halfL, halfW float64, packed []packedEntry) float64 {
	rest := 0.0
	for _, e := range packed {
		eHalfL := e.dims.L / 2
		eHalfW := e.dims.W / 2
		if x-halfL < e.pos.X+eHalfL-containTol &&
			x+halfL > e.pos.X-eHalfL+containTol &&
			z-halfW < e.pos.Z+eHalfW-containTol &&
			z+halfW > e.pos.Z-eHalfW+containTol {
			if t := e.top(); t > rest {
				rest = t
			}
		}
	}
	return rest
}

// collides reports whether a box centered at pos with the given dims strictly
// overlaps any packed entry on all three axes. Touching boxes do not collide.
func collides(pos model.Vec3, dims model.Dims, packed []packedEntry) bool {
	for _, e := range packed {
		if pos.X-dims.L/2 < e.pos.X+e.dims.L/2-collideTol &&
			pos.X+dims.L/2 > e.pos.X-e.dims.L/2+collideTol &&
			pos.Y-dims.H/2 < e.pos.Y+e.dims.H/2-collideTol &&
			pos.Y+dims.H/2 > e.pos.Y-e.dims.H/2+collideTol &&
			pos.Z-dims.W/2 < e.pos.Z+e.dims.W/2-collideTol &&
			pos.Z+dims.W/2 > e.pos.Z-e.dims.W/2+collideTol {
			return true
		}
	}
	return false
}

// tryPlace attempts to place an orientation with its footprint centered at
// (x, z): it settles the box to its resting height, checks the ceiling, zone
// containment and collision, and returns the accepted center position and
// resting height.
func tryPlace(x, z float64, o Orientation, ceiling float64, zones []Zone, packed []packedEntry) (model.Vec3, float64, bool) {
	restY := restingY(x, z, o.L/2, o.W/2, packed)
	if restY+o.H > ceiling+containTol {
		return model.Vec3{}, 0, false
	}

	pos := model.Vec3{X: x, Y: restY + o.H/2, Z: z}
	min := model.Vec3{X: pos.X - o.L/2, Y: restY, Z: pos.Z - o.W/2}
	max := model.Vec3{X: pos.X + o.L/2, Y: restY + o.H, Z: pos.Z + o.W/2}
	if !ContainedInAnyZone(min, max, zones) {
		return model.Vec3{}, 0, false
	}
	if collides(pos, o.Dims(), packed) {
		return model.Vec3{}, 0, false
	}
	return pos, restY, true
}
