package model

import (
	"testing"
)

func testJob() Job {
	return Job{
		Name:         "weekly",
		Strategy:     "column",
		PalletPreset: "EUR",
		Boxes: []BoxLine{
			{Label: "Apples", Width: 400, Height: 300, Depth: 400, Weight: 12, Quantity: 10},
		},
	}
}

func TestNewJobTemplateCopiesJob(t *testing.T) {
	job := testJob()
	tmpl := NewJobTemplate("Weekly apples", "standard run", job)

	if len(tmpl.ID) != 8 {
		t.Errorf("expected 8 char id, got %q", tmpl.ID)
	}
	if tmpl.CreatedAt == "" || tmpl.CreatedAt != tmpl.UpdatedAt {
		t.Errorf("timestamps not set: %q %q", tmpl.CreatedAt, tmpl.UpdatedAt)
	}

	job.Boxes[0].Quantity = 99
	if tmpl.Job.Boxes[0].Quantity != 10 {
		t.Error("template shares box lines with the source job")
	}
}

func TestJobTemplateToJob(t *testing.T) {
	pallet := Pallet{ID: "custom", MaxWeight: 800}
	job := testJob()
	job.Pallet = &pallet
	tmpl := NewJobTemplate("Weekly", "", job)

	j := tmpl.ToJob("week 42")
	if j.Name != "week 42" || j.Strategy != "column" || len(j.Boxes) != 1 {
		t.Errorf("unexpected job: %+v", j)
	}
	j.Pallet.MaxWeight = 1
	if tmpl.Job.Pallet.MaxWeight != 800 {
		t.Error("job shares the pallet with the template")
	}
}

func TestTemplateStore(t *testing.T) {
	store := NewTemplateStore()
	a := NewJobTemplate("A", "", testJob())
	b := NewJobTemplate("B", "", testJob())
	store.Add(a)
	store.Add(b)

	if got := store.Names(); len(got) != 2 || got[0] != "A" || got[1] != "B" {
		t.Errorf("unexpected names %v", got)
	}
	if store.FindByName("B") == nil || store.FindByID(a.ID) == nil {
		t.Error("lookup failed")
	}

	replacement := NewJobTemplate("A", "updated", testJob())
	store.Add(replacement)
	if len(store.Templates) != 2 {
		t.Fatalf("same-name add should replace, got %d templates", len(store.Templates))
	}
	if got := store.FindByName("A"); got.Description != "updated" || got.ID != a.ID {
		t.Errorf("replacement should keep the original id: %+v", got)
	}

	if !store.Remove(a.ID) || store.Remove("missing") {
		t.Error("unexpected Remove result")
	}
	if store.FindByName("A") != nil {
		t.Error("template A should be gone")
	}
}
