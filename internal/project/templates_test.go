package project

import (
	"path/filepath"
	"testing"

	"github.com/piwi3910/PalletStack/internal/model"
)

func sampleJob() model.Job {
	return model.Job{
		Name:         "weekly",
		Strategy:     "column",
		PalletPreset: "EUR",
		Boxes: []model.BoxLine{
			{Label: "Apples", Width: 400, Height: 300, Depth: 400, Weight: 12, Quantity: 10, MaterialWeight: model.Float(7)},
		},
	}
}

func TestSaveAndLoadTemplates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "templates.json")

	store := model.NewTemplateStore()
	store.Add(model.NewJobTemplate("Weekly apples", "Standard run", sampleJob()))

	if err := SaveTemplates(path, store); err != nil {
		t.Fatalf("SaveTemplates error: %v", err)
	}

	loaded, err := LoadTemplates(path)
	if err != nil {
		t.Fatalf("LoadTemplates error: %v", err)
	}
	if len(loaded.Templates) != 1 {
		t.Fatalf("expected 1 template, got %d", len(loaded.Templates))
	}
	tmpl := loaded.Templates[0]
	if tmpl.Name != "Weekly apples" || len(tmpl.Job.Boxes) != 1 {
		t.Errorf("unexpected template %+v", tmpl)
	}
	if mw := tmpl.Job.Boxes[0].MaterialWeight; mw == nil || *mw != 7 {
		t.Errorf("material weight lost: %v", mw)
	}
}

func TestLoadTemplates_NotFound(t *testing.T) {
	store, err := LoadTemplates(filepath.Join(t.TempDir(), "nonexistent.json"))
	if err != nil {
		t.Fatalf("expected no error for missing file, got %v", err)
	}
	if store.Templates == nil || len(store.Templates) != 0 {
		t.Errorf("expected empty store, got %+v", store)
	}
}
