package engine

import (
	"fmt"

	"github.com/piwi3910/TrailerPack/internal/model"
)

// ComparisonScenario defines a named trailer/settings combination to compare.
type ComparisonScenario struct {
	Name     string
	Trailer  model.Trailer
	Settings model.PackSettings
}

// ComparisonResult holds the pack result and computed statistics for a
// single scenario.
type ComparisonResult struct {
	Scenario      ComparisonScenario
	Result        model.PackResult
	Packed        int
	Unplaced      int
	VolumePercent float64
}

// CompareScenarios runs the same cargo through each scenario and returns the
// results in scenario order. This enables side-by-side comparison of trailer
// shapes and engine tunables. Each scenario gets a fresh engine so the
// single-flight guards never interfere.
func CompareScenarios(scenarios []ComparisonScenario, instances []model.ItemInstance, items map[string]model.Item) ([]ComparisonResult, error) {
	results := make([]ComparisonResult, 0, len(scenarios))

	for _, scenario := range scenarios {
		eng := New(scenario.Settings)
		result, err := eng.Pack(scenario.Trailer, instances, items)
		if err != nil {
			return nil, fmt.Errorf("scenario %q: %w", scenario.Name, err)
		}

		results = append(results, ComparisonResult{
			Scenario:      scenario,
			Result:        result,
			Packed:        result.PackedCount,
			Unplaced:      result.TotalPackable - result.PackedCount,
			VolumePercent: result.VolumePercent,
		})
	}

	return results, nil
}

// BuildDefaultScenarios generates a set of comparison scenarios from the
// given trailer, varying the shape mode and the early-stop tunable to show
// what-if alternatives.
func BuildDefaultScenarios(trailer model.Trailer, settings model.PackSettings) []ComparisonScenario {
	exhaustive := settings
	exhaustive.WidthFillStop = 1.0

	rect := trailer
	rect.ShapeMode = model.ShapeRect
	frontBonus := trailer
	frontBonus.ShapeMode = model.ShapeFrontBonus
	wheelWells := trailer
	wheelWells.ShapeMode = model.ShapeWheelWells

	return []ComparisonScenario{
		{Name: "Current", Trailer: trailer, Settings: settings},
		{Name: "Current (no early stop)", Trailer: trailer, Settings: exhaustive},
		{Name: "Plain box", Trailer: rect, Settings: settings},
		{Name: "Front bonus", Trailer: frontBonus, Settings: settings},
		{Name: "Wheel wells", Trailer: wheelWells, Settings: settings},
	}
}
