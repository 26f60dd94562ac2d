// Package project handles persistence of plans, application configuration
// and backups as JSON files under the user's home directory.
package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/piwi3910/TrailerPack/internal/model"
)

// planSchema guards plan files against hand-editing mistakes before they
// reach the engine: structural errors surface as load errors instead of
// silently-empty plans.
const planSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["name", "trailer", "catalog", "settings"],
  "properties": {
    "name": {"type": "string"},
    "trailer": {
      "type": "object",
      "required": ["length", "width", "height"],
      "properties": {
        "label": {"type": "string"},
        "length": {"type": "number"},
        "width": {"type": "number"},
        "height": {"type": "number"},
        "shape_mode": {"type": "string"}
      }
    },
    "instances": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["instance_id", "item_id"],
        "properties": {
          "instance_id": {"type": "string"},
          "item_id": {"type": "string"},
          "hidden": {"type": "boolean"}
        }
      }
    },
    "catalog": {
      "type": "object",
      "properties": {
        "items": {
          "type": "array",
          "items": {
            "type": "object",
            "required": ["id", "length", "width", "height"],
            "properties": {
              "id": {"type": "string"},
              "length": {"type": "number"},
              "width": {"type": "number"},
              "height": {"type": "number"}
            }
          }
        }
      }
    },
    "settings": {"type": "object"}
  }
}`

var compiledPlanSchema = jsonschema.MustCompileString("plan.schema.json", planSchema)

// DefaultPlanDir returns the directory plans are stored in by default,
// ~/.trailerpack/plans.
func DefaultPlanDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".trailerpack", "plans"), nil
}

// SavePlan writes the plan to the specified JSON file. It creates parent
// directories if they do not exist.
func SavePlan(path string, plan model.Plan) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(plan, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadPlan reads and validates a plan from the specified JSON file.
func LoadPlan(path string) (model.Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Plan{}, err
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return model.Plan{}, fmt.Errorf("plan file is not valid JSON: %w", err)
	}
	if err := compiledPlanSchema.Validate(doc); err != nil {
		return model.Plan{}, fmt.Errorf("plan file failed validation: %w", err)
	}

	var plan model.Plan
	if err := json.Unmarshal(data, &plan); err != nil {
		return model.Plan{}, err
	}
	if plan.Settings == (model.PackSettings{}) {
		plan.Settings = model.DefaultPackSettings()
	}
	return plan, nil
}
