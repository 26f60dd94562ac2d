package model

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestItemVolume(t *testing.T) {
	box := NewItem("box", 30, 24, 20)
	assert.InDelta(t, 30*24*20, box.Volume(), 1e-9)

	drum := NewItem("drum", 35, 23, 24)
	drum.Shape = ShapeDrum
	// Inscribed cylinder: r = min(width, height) / 2 along the length.
	r := 23.0 / 2
	assert.InDelta(t, math.Pi*r*r*35, drum.Volume(), 1e-9)
}

func TestTrailerNormalized(t *testing.T) {
	tr := NewTrailer("bad", -10, 100, -5)
	tr.ShapeMode = "dirigible"

	n := tr.Normalized()
	assert.Equal(t, 0.0, n.Length)
	assert.Equal(t, 100.0, n.Width)
	assert.Equal(t, 0.0, n.Height)
	assert.Equal(t, ShapeRect, n.ShapeMode)
}

func TestLoadFrontFirst(t *testing.T) {
	tr := NewTrailer("van", 500, 100, 100)
	assert.False(t, tr.LoadFrontFirst())

	tr.ShapeMode = ShapeWheelWells
	assert.False(t, tr.LoadFrontFirst())

	tr.ShapeMode = ShapeFrontBonus
	assert.True(t, tr.LoadFrontFirst())
}

func TestWheelWellConfigResolve(t *testing.T) {
	cfg := WheelWellConfig{}.Resolve(400, 100, 110)
	assert.InDelta(t, 0.35*110, cfg.WellHeight, 1e-9)
	assert.InDelta(t, 15.0, cfg.WellWidth, 1e-9) // min(0.15*100, 50)
	assert.InDelta(t, 0.35*400, cfg.WellLength, 1e-9)
	assert.InDelta(t, 0.25*400, cfg.WellOffsetFromRear, 1e-9)

	// Explicit values are clamped into valid range, not replaced.
	cfg = WheelWellConfig{WellWidth: 90, WellHeight: 500, WellLength: 30, WellOffsetFromRear: 10}.Resolve(400, 100, 110)
	assert.Equal(t, 50.0, cfg.WellWidth) // half the trailer width
	assert.Equal(t, 110.0, cfg.WellHeight)
	assert.Equal(t, 30.0, cfg.WellLength)
	assert.Equal(t, 10.0, cfg.WellOffsetFromRear)
}

func TestFrontBonusConfigResolve(t *testing.T) {
	cfg := FrontBonusConfig{}.Resolve(500, 100, 110)
	assert.InDelta(t, 60.0, cfg.BonusLength, 1e-9) // 0.12 * 500
	assert.Equal(t, 100.0, cfg.BonusWidth)
	assert.Equal(t, 110.0, cfg.BonusHeight)

	cfg = FrontBonusConfig{BonusLength: 9999, BonusWidth: 20, BonusHeight: 30}.Resolve(500, 100, 110)
	assert.Equal(t, 500.0, cfg.BonusLength)
	assert.Equal(t, 20.0, cfg.BonusWidth)
	assert.Equal(t, 30.0, cfg.BonusHeight)
}

func TestPackSettingsNormalized(t *testing.T) {
	def := DefaultPackSettings()

	s := PackSettings{WidthFillStop: 1.5, MaxXAnchors: -1}.Normalized()
	assert.Equal(t, def.WidthFillStop, s.WidthFillStop)
	assert.Equal(t, def.MaxXAnchors, s.MaxXAnchors)
	assert.Equal(t, def.MaxZAnchors, s.MaxZAnchors)
	assert.Equal(t, def.SweepBudgetFactor, s.SweepBudgetFactor)
	assert.Equal(t, def.ProgressInterval, s.ProgressInterval)

	custom := PackSettings{WidthFillStop: 0.9, MaxXAnchors: 50, MaxZAnchors: 80, SweepBudgetFactor: 3, ProgressInterval: 10}
	assert.Equal(t, custom, custom.Normalized())
}

func TestCatalog(t *testing.T) {
	cat := DefaultCatalog()
	require.NotEmpty(t, cat.Items)
	require.NotEmpty(t, cat.Trailers)

	it, ok := cat.FindItem("pallet-gma")
	require.True(t, ok)
	assert.Equal(t, LockUpright, it.Lock)

	_, ok = cat.FindItem("nope")
	assert.False(t, ok)

	idx := cat.ItemIndex()
	assert.Len(t, idx, len(cat.Items))
}

func TestPlanAddItemsAndTotalVolume(t *testing.T) {
	p := NewPlan()
	p.AddItems("pallet-gma", 2)
	p.AddItems("no-such-item", 1)
	require.Len(t, p.Instances, 3)

	pallet, _ := p.Catalog.FindItem("pallet-gma")
	assert.InDelta(t, 2*pallet.Volume(), p.TotalVolume(), 1e-9)

	p.Instances[0].Hidden = true
	assert.InDelta(t, pallet.Volume(), p.TotalVolume(), 1e-9)
}

func TestAppConfigApplyToSettings(t *testing.T) {
	cfg := DefaultAppConfig()
	cfg.DefaultWidthFillStop = 0.9
	cfg.DefaultMaxXAnchors = 77

	var s PackSettings
	cfg.ApplyToSettings(&s)
	assert.Equal(t, 0.9, s.WidthFillStop)
	assert.Equal(t, 77, s.MaxXAnchors)
}
