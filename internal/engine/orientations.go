package engine

import (
	"github.com/piwi3910/TrailerPack/internal/model"
)

// Orientation is a bounding-box permutation of an item's dimensions reachable
// by rotating only about the vertical axis: L is the X extent, W the Z
// extent, H the vertical extent, RotY the yaw in degrees (0 or 90). Items are
// never tilted about a horizontal axis.
type Orientation struct {
	L    float64
	W    float64
	H    float64
	RotY float64
}

// Dims returns the oriented dimensions.
func (o Orientation) Dims() model.Dims {
	return model.Dims{L: o.L, W: o.W, H: o.H}
}

// OrientationsFor enumerates the valid orientations of an item given its
// lock and flip rules, deduplicated by (L, W, H): only one representative per
// distinct footprint and height is kept.
func OrientationsFor(it model.Item) []Orientation {
	l, w, h := it.Length, it.Width, it.Height

	var candidates []Orientation
	if it.Lock == model.LockOnSide {
		// The original height becomes the horizontal length axis.
		candidates = append(candidates,
			Orientation{L: h, W: w, H: l, RotY: 0},
			Orientation{L: w, W: h, H: l, RotY: 90},
		)
	} else {
		candidates = append(candidates,
			Orientation{L: l, W: w, H: h, RotY: 0},
			Orientation{L: w, W: l, H: h, RotY: 90},
		)
		if it.CanFlip {
			candidates = append(candidates,
				Orientation{L: h, W: w, H: l, RotY: 0},
				Orientation{L: w, W: h, H: l, RotY: 90},
				Orientation{L: l, W: h, H: w, RotY: 0},
				Orientation{L: h, W: l, H: w, RotY: 90},
			)
		}
	}

	type dimKey struct{ l, w, h float64 }
	seen := make(map[dimKey]bool, len(candidates))
	result := make([]Orientation, 0, len(candidates))
	for _, c := range candidates {
		key := dimKey{c.L, c.W, c.H}
		if seen[key] {
			continue
		}
		seen[key] = true
		result = append(result, c)
	}
	return result
}
