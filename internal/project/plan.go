package project

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/piwi3910/PalletStack/internal/model"
)

// SavePlan writes a load plan as JSON so it can be validated or exported later.
func SavePlan(path string, plan model.LoadPlan) error {
	if err := writeJSON(path, plan); err != nil {
		return fmt.Errorf("failed to write plan: %w", err)
	}
	return nil
}

// LoadPlan reads a load plan written by SavePlan.
func LoadPlan(path string) (model.LoadPlan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.LoadPlan{}, fmt.Errorf("failed to read plan: %w", err)
	}
	var plan model.LoadPlan
	if err := json.Unmarshal(data, &plan); err != nil {
		return model.LoadPlan{}, fmt.Errorf("failed to parse plan: %w", err)
	}
	if plan.UnplacedBoxes == nil {
		plan.UnplacedBoxes = []model.Box{}
	}
	return plan, nil
}
