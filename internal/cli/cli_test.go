package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/piwi3910/TrailerPack/internal/model"
)

func TestFindTrailerPreset(t *testing.T) {
	cat := model.DefaultCatalog()

	tp, ok := findTrailerPreset(cat, "box-truck")
	assert.True(t, ok)
	assert.Equal(t, model.ShapeWheelWells, tp.ShapeMode)

	_, ok = findTrailerPreset(cat, "hovercraft")
	assert.False(t, ok)
}

func TestFindTrailerPreset_FallsBackToBuiltins(t *testing.T) {
	tp, ok := findTrailerPreset(model.Catalog{}, "dryvan-53")
	assert.True(t, ok)
	assert.Equal(t, 636.0, tp.Length)
}

func TestPlanFileName(t *testing.T) {
	assert.Equal(t, "East-Coast-Run.json", planFileName("East Coast Run"))
	assert.Equal(t, "plan.json", planFileName("///"))
	assert.Equal(t, "run_2.json", planFileName("run_2"))
}

func TestConfiguredSettings_Normalized(t *testing.T) {
	initConfig()
	s := configuredSettings()
	assert.Greater(t, s.WidthFillStop, 0.0)
	assert.Greater(t, s.MaxXAnchors, 0)
	assert.Greater(t, s.MaxZAnchors, 0)
}
