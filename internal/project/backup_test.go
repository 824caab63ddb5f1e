package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/PalletStack/internal/model"
)

func TestExportAndImportAllData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "backup.json")

	cfg := model.DefaultAppConfig()
	cfg.DefaultStrategy = "bin-packing"
	inv := model.DefaultInventory()
	inv.Pallets = append(inv.Pallets, customPallet("CP1"))
	store := model.NewTemplateStore()
	store.Add(model.NewJobTemplate("Weekly", "", sampleJob()))

	if err := ExportAllData(path, cfg, inv, store); err != nil {
		t.Fatalf("ExportAllData failed: %v", err)
	}

	backup, err := ImportAllData(path)
	if err != nil {
		t.Fatalf("ImportAllData failed: %v", err)
	}
	if backup.Version != BackupVersion {
		t.Errorf("expected version %s, got %s", BackupVersion, backup.Version)
	}
	if backup.CreatedAt == "" {
		t.Error("expected non-empty CreatedAt")
	}
	if backup.Config.DefaultStrategy != "bin-packing" {
		t.Errorf("expected bin-packing, got %s", backup.Config.DefaultStrategy)
	}
	if backup.Inventory.FindPallet("CP1") == nil {
		t.Error("custom pallet missing from backup")
	}
	if backup.Templates.FindByName("Weekly") == nil {
		t.Error("template missing from backup")
	}
}

func TestImportAllDataMissingFile(t *testing.T) {
	if _, err := ImportAllData(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestImportAllDataInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("{not json}"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := ImportAllData(path); err == nil {
		t.Fatal("expected error for invalid JSON")
	}
}

func TestImportAllDataMissingVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "noversion.json")
	if err := os.WriteFile(path, []byte(`{"config":{"default_strategy":"column"}}`), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := ImportAllData(path); err == nil {
		t.Fatal("expected error for missing version")
	}
}

func TestImportAllDataFillsMissingSections(t *testing.T) {
	path := filepath.Join(t.TempDir(), "old.json")
	data := []byte(`{"version":"1.0.0","created_at":"2026-01-01T00:00:00Z","config":{"recent_jobs":null}}`)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	backup, err := ImportAllData(path)
	if err != nil {
		t.Fatalf("ImportAllData failed: %v", err)
	}
	if backup.Config.RecentJobs == nil {
		t.Error("RecentJobs should not be nil after import")
	}
	if len(backup.Inventory.Pallets) != len(model.PalletPresets) {
		t.Errorf("expected built-in inventory, got %d pallets", len(backup.Inventory.Pallets))
	}
	if backup.Templates.Templates == nil {
		t.Error("Templates should not be nil after import")
	}
}

func TestRestoreAllData(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "restore", "config.json")

	inv := model.DefaultInventory()
	inv.Pallets = append(inv.Pallets, customPallet("CP1"))
	backup := BackupData{
		Version:   BackupVersion,
		Config:    model.DefaultAppConfig(),
		Inventory: inv,
		Templates: model.NewTemplateStore(),
	}
	if err := RestoreAllData(backup, configPath); err != nil {
		t.Fatalf("RestoreAllData failed: %v", err)
	}

	loaded, err := LoadInventory(filepath.Join(dir, "restore", "inventory.json"))
	if err != nil {
		t.Fatalf("LoadInventory failed: %v", err)
	}
	if loaded.FindPallet("CP1") == nil {
		t.Error("restored inventory lacks CP1")
	}
	if _, err := os.Stat(filepath.Join(dir, "restore", "templates.json")); err != nil {
		t.Errorf("templates not restored: %v", err)
	}
}
