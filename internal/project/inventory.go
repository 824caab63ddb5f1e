package project

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/piwi3910/PalletStack/internal/model"
)

// InventoryPath returns the pallet inventory file that belongs to the
// config file at configPath. Both live in the same directory.
func InventoryPath(configPath string) string {
	return filepath.Join(filepath.Dir(configPath), "inventory.json")
}

// SaveInventory writes the inventory to the specified JSON file.
// It creates parent directories if they do not exist.
func SaveInventory(path string, inv model.Inventory) error {
	return writeJSON(path, inv)
}

// LoadInventory reads the inventory from the specified JSON file.
// If the file does not exist, it returns the built-in presets without
// writing anything.
func LoadInventory(path string) (model.Inventory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return model.DefaultInventory(), nil
		}
		return model.Inventory{}, err
	}
	var inv model.Inventory
	if err := json.Unmarshal(data, &inv); err != nil {
		return model.Inventory{}, err
	}
	if inv.Pallets == nil {
		inv.Pallets = []model.PalletPreset{}
	}
	return inv, nil
}

// ImportInventory imports pallets from a JSON inventory file, merging them
// into the existing inventory. Keys already present (case-insensitive) are
// skipped. It returns the merged inventory and the number of pallets added.
func ImportInventory(path string, existing model.Inventory) (model.Inventory, int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return existing, 0, err
	}
	var imported model.Inventory
	if err := json.Unmarshal(data, &imported); err != nil {
		return existing, 0, err
	}

	added := 0
	for _, p := range imported.Pallets {
		if p.Key == "" || existing.FindPallet(p.Key) != nil {
			continue
		}
		existing.Pallets = append(existing.Pallets, p)
		added++
	}
	return existing, added, nil
}
