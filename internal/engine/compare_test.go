package engine

import (
	"testing"

	"github.com/piwi3910/TrailerPack/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompareScenarios(t *testing.T) {
	trailer := model.NewTrailer("van", 300, 100, 100)
	box := model.NewItem("box", 40, 40, 40)
	box.Lock = model.LockUpright

	scenarios := BuildDefaultScenarios(trailer, model.DefaultPackSettings())
	require.Len(t, scenarios, 5)

	results, err := CompareScenarios(scenarios, instancesOf(box.ID, 6), itemIndex(box))
	require.NoError(t, err)
	require.Len(t, results, 5)

	for _, r := range results {
		assert.Equal(t, 6, r.Packed+r.Unplaced)
		assert.Equal(t, r.Result.PackedCount, r.Packed)
	}

	// A plain box of the same outer dims never packs fewer items than the
	// wheel-well variant of itself.
	var rect, wells ComparisonResult
	for _, r := range results {
		switch r.Scenario.Name {
		case "Plain box":
			rect = r
		case "Wheel wells":
			wells = r
		}
	}
	assert.GreaterOrEqual(t, rect.Packed, wells.Packed)
}
