package engine

import (
	"math"
	"testing"

	"github.com/piwi3910/TrailerPack/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func itemIndex(items ...model.Item) map[string]model.Item {
	idx := make(map[string]model.Item, len(items))
	for _, it := range items {
		idx[it.ID] = it
	}
	return idx
}

func instancesOf(itemID string, n int) []model.ItemInstance {
	var insts []model.ItemInstance
	for i := 0; i < n; i++ {
		insts = append(insts, model.NewItemInstance(itemID))
	}
	return insts
}

func TestPack_SinglePalletInDryVan(t *testing.T) {
	trailer := model.NewTrailer("53' van", 636, 102, 110)

	pallet := model.NewItem("pallet", 48, 40, 48)
	pallet.Lock = model.LockUpright

	eng := New(model.DefaultPackSettings())
	result, err := eng.Pack(trailer, instancesOf(pallet.ID, 1), itemIndex(pallet))
	require.NoError(t, err)

	require.Equal(t, 1, result.PackedCount)
	require.Len(t, result.Instances, 1)
	ir := result.Instances[0]
	require.True(t, ir.Placed)

	// Resting on the floor: center height is half the oriented height.
	assert.InDelta(t, ir.OrientedDims.H/2, ir.Transform.Position.Y, 1e-9)

	// Fully inside the single zone.
	zones := BuildZones(trailer)
	require.Len(t, zones, 1)
	min := model.Vec3{
		X: ir.Transform.Position.X - ir.OrientedDims.L/2,
		Y: ir.Transform.Position.Y - ir.OrientedDims.H/2,
		Z: ir.Transform.Position.Z - ir.OrientedDims.W/2,
	}
	max := model.Vec3{
		X: ir.Transform.Position.X + ir.OrientedDims.L/2,
		Y: ir.Transform.Position.Y + ir.OrientedDims.H/2,
		Z: ir.Transform.Position.Z + ir.OrientedDims.W/2,
	}
	assert.True(t, ContainedInAnyZone(min, max, zones))
	assert.InDelta(t, 100.0, result.VolumePercent, 1e-9)
}

func TestPack_TwoCubesSideBySide_CeilingPreventsStacking(t *testing.T) {
	// The trailer is exactly two cubes long and one cube tall: both must be
	// placed on the floor next to each other along X.
	trailer := model.NewTrailer("tight", 48, 24, 24)
	cube := model.NewItem("cube", 24, 24, 24)
	cube.Lock = model.LockUpright

	eng := New(model.DefaultPackSettings())
	result, err := eng.Pack(trailer, instancesOf(cube.ID, 2), itemIndex(cube))
	require.NoError(t, err)

	require.Equal(t, 2, result.PackedCount)
	a, b := result.Instances[0], result.Instances[1]
	assert.InDelta(t, 12.0, a.Transform.Position.Y, 1e-9, "first cube on the floor")
	assert.InDelta(t, 12.0, b.Transform.Position.Y, 1e-9, "second cube on the floor")
	assert.InDelta(t, 24.0, math.Abs(a.Transform.Position.X-b.Transform.Position.X), 1e-6, "side by side along X")
	assert.InDelta(t, 100.0, result.VolumePercent, 1e-9)
}

func TestPack_OversizedItemDoesNotBlockOthers(t *testing.T) {
	trailer := model.NewTrailer("small", 100, 50, 50)

	long := model.NewItem("girder", 200, 20, 20)
	long.Lock = model.LockUpright
	small := model.NewItem("box", 20, 20, 20)
	small.Lock = model.LockUpright

	insts := append(instancesOf(long.ID, 1), instancesOf(small.ID, 1)...)

	eng := New(model.DefaultPackSettings())
	result, err := eng.Pack(trailer, insts, itemIndex(long, small))
	require.NoError(t, err)

	require.Equal(t, 1, result.PackedCount)
	require.Equal(t, 2, result.TotalPackable)

	unplaced := result.Unplaced()
	require.Len(t, unplaced, 1)
	assert.Equal(t, long.ID, unplaced[0].ItemID)
	// Unplaced cargo keeps its staging transform beside the trailer.
	assert.Greater(t, unplaced[0].Transform.Position.Z, trailer.Width/2)
}

func TestPack_FrontBonusLoadsFrontFirst(t *testing.T) {
	trailer := model.NewTrailer("step deck", 200, 100, 100)
	trailer.ShapeMode = model.ShapeFrontBonus

	box := model.NewItem("box", 40, 40, 60)
	box.Lock = model.LockUpright

	eng := New(model.DefaultPackSettings())
	result, err := eng.Pack(trailer, instancesOf(box.ID, 5), itemIndex(box))
	require.NoError(t, err)
	require.Equal(t, 5, result.PackedCount)

	// Placement order runs from the front wall backwards: the first item
	// placed sits at a strictly larger X than the last.
	placed := result.Placements()
	first := placed[0].Transform.Position.X
	minX := first
	for _, p := range placed {
		if p.Transform.Position.X < minX {
			minX = p.Transform.Position.X
		}
	}
	assert.Greater(t, first, minX)
}

func TestPack_HiddenInstancesExcluded(t *testing.T) {
	trailer := model.NewTrailer("van", 200, 100, 100)
	box := model.NewItem("box", 40, 40, 40)

	insts := instancesOf(box.ID, 3)
	insts[1].Hidden = true

	eng := New(model.DefaultPackSettings())
	result, err := eng.Pack(trailer, insts, itemIndex(box))
	require.NoError(t, err)

	assert.Equal(t, 2, result.TotalPackable)
	for _, ir := range result.Instances {
		assert.NotEqual(t, insts[1].InstanceID, ir.InstanceID)
	}
}

func TestPack_UnknownItemDefinitionSkipped(t *testing.T) {
	trailer := model.NewTrailer("van", 200, 100, 100)
	box := model.NewItem("box", 40, 40, 40)

	insts := instancesOf(box.ID, 1)
	insts = append(insts, model.NewItemInstance("no-such-item"))

	eng := New(model.DefaultPackSettings())
	result, err := eng.Pack(trailer, insts, itemIndex(box))
	require.NoError(t, err)
	assert.Equal(t, 1, result.TotalPackable)
}

func TestPack_SecondConcurrentRunRejected(t *testing.T) {
	trailer := model.NewTrailer("van", 400, 100, 100)
	box := model.NewItem("box", 40, 40, 40)
	box.Lock = model.LockUpright

	settings := model.DefaultPackSettings()
	settings.ProgressInterval = 1

	eng := New(settings)
	var reentrant error
	called := false
	eng.Progress = func(placed, total int) {
		if called {
			return
		}
		called = true
		// Re-invoking the engine mid-run must be refused.
		_, reentrant = eng.Pack(trailer, instancesOf(box.ID, 1), itemIndex(box))
	}

	_, err := eng.Pack(trailer, instancesOf(box.ID, 3), itemIndex(box))
	require.NoError(t, err)
	require.True(t, called)
	assert.ErrorIs(t, reentrant, ErrRunActive)

	// After the run the guard is released and a new run succeeds.
	eng.Progress = nil
	_, err = eng.Pack(trailer, instancesOf(box.ID, 1), itemIndex(box))
	assert.NoError(t, err)
}

func TestPack_Deterministic(t *testing.T) {
	trailer := model.NewTrailer("box truck", 312, 96, 96)
	trailer.ShapeMode = model.ShapeWheelWells

	pallet := model.NewItem("pallet", 48, 40, 48)
	pallet.Lock = model.LockUpright
	carton := model.NewItem("carton", 30, 24, 20)
	carton.CanFlip = true
	drum := model.NewItem("drum", 35, 23, 23)
	drum.Shape = model.ShapeDrum
	drum.Lock = model.LockUpright

	var insts []model.ItemInstance
	insts = append(insts, instancesOf(pallet.ID, 4)...)
	insts = append(insts, instancesOf(carton.ID, 6)...)
	insts = append(insts, instancesOf(drum.ID, 3)...)
	idx := itemIndex(pallet, carton, drum)

	first, err := New(model.DefaultPackSettings()).Pack(trailer, insts, idx)
	require.NoError(t, err)
	second, err := New(model.DefaultPackSettings()).Pack(trailer, insts, idx)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

// TestPack_Invariants exercises a mixed load against the three structural
// guarantees: pairwise non-overlap, single-zone containment, and gravity
// support (every box rests on the floor or on the top surface of a box
// overlapping its footprint).
func TestPack_Invariants(t *testing.T) {
	trailer := model.NewTrailer("box truck", 312, 96, 96)
	trailer.ShapeMode = model.ShapeWheelWells
	zones := BuildZones(trailer)

	pallet := model.NewItem("pallet", 48, 40, 48)
	pallet.Lock = model.LockUpright
	carton := model.NewItem("carton", 30, 24, 20)
	carton.CanFlip = true
	crate := model.NewItem("crate", 24, 20, 24)

	var insts []model.ItemInstance
	insts = append(insts, instancesOf(pallet.ID, 5)...)
	insts = append(insts, instancesOf(carton.ID, 8)...)
	insts = append(insts, instancesOf(crate.ID, 6)...)

	eng := New(model.DefaultPackSettings())
	result, err := eng.Pack(trailer, insts, itemIndex(pallet, carton, crate))
	require.NoError(t, err)
	placed := result.Placements()
	require.NotEmpty(t, placed)

	type box struct {
		min, max model.Vec3
	}
	boxes := make([]box, len(placed))
	for i, p := range placed {
		pos, d := p.Transform.Position, p.OrientedDims
		boxes[i] = box{
			min: model.Vec3{X: pos.X - d.L/2, Y: pos.Y - d.H/2, Z: pos.Z - d.W/2},
			max: model.Vec3{X: pos.X + d.L/2, Y: pos.Y + d.H/2, Z: pos.Z + d.W/2},
		}
	}

	// Non-overlap beyond the collision tolerance.
	for i := range boxes {
		for j := i + 1; j < len(boxes); j++ {
			a, b := boxes[i], boxes[j]
			overlaps := a.min.X < b.max.X-collideTol && a.max.X > b.min.X+collideTol &&
				a.min.Y < b.max.Y-collideTol && a.max.Y > b.min.Y+collideTol &&
				a.min.Z < b.max.Z-collideTol && a.max.Z > b.min.Z+collideTol
			assert.False(t, overlaps, "boxes %d and %d overlap", i, j)
		}
	}

	// Containment within a single zone.
	for i, b := range boxes {
		assert.True(t, ContainedInAnyZone(b.min, b.max, zones), "box %d spans zones", i)
	}

	// Gravity: every box rests on the floor or on the top surface of a box
	// overlapping its XZ footprint.
	for i, b := range boxes {
		restY := b.min.Y
		if math.Abs(restY) <= containTol {
			continue
		}
		supported := false
		for j, o := range boxes {
			if i == j {
				continue
			}
			footprintOverlap := b.min.X < o.max.X-containTol && b.max.X > o.min.X+containTol &&
				b.min.Z < o.max.Z-containTol && b.max.Z > o.min.Z+containTol
			if footprintOverlap && math.Abs(o.max.Y-restY) <= containTol {
				supported = true
				break
			}
		}
		assert.True(t, supported, "box %d floats at y=%v", i, restY)
	}
}
