package model

import (
	"time"

	"github.com/google/uuid"
)

// JobTemplate is a reusable job definition: the box list, pallet choice and
// strategy of a recurring shipment, without any packing results.
type JobTemplate struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
	Job         Job    `json:"job"`
}

// NewJobTemplate creates a template from the given job. The box lines are
// copied so later edits to the job do not leak into the template.
func NewJobTemplate(name, description string, job Job) JobTemplate {
	now := time.Now().UTC().Format(time.RFC3339)
	return JobTemplate{
		ID:          uuid.New().String()[:8],
		Name:        name,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
		Job:         copyJob(job),
	}
}

// ToJob creates a new job from this template under the given name.
func (t JobTemplate) ToJob(name string) Job {
	j := copyJob(t.Job)
	j.Name = name
	return j
}

// TemplateStore holds a collection of job templates.
type TemplateStore struct {
	Templates []JobTemplate `json:"templates"`
}

// NewTemplateStore creates an empty template store.
func NewTemplateStore() TemplateStore {
	return TemplateStore{
		Templates: []JobTemplate{},
	}
}

// Add adds a template to the store, replacing one with the same name.
func (ts *TemplateStore) Add(t JobTemplate) {
	for i := range ts.Templates {
		if ts.Templates[i].Name == t.Name {
			t.ID = ts.Templates[i].ID
			t.CreatedAt = ts.Templates[i].CreatedAt
			ts.Templates[i] = t
			return
		}
	}
	ts.Templates = append(ts.Templates, t)
}

// Remove removes a template by ID. Returns true if found and removed.
func (ts *TemplateStore) Remove(id string) bool {
	for i, t := range ts.Templates {
		if t.ID == id {
			ts.Templates = append(ts.Templates[:i], ts.Templates[i+1:]...)
			return true
		}
	}
	return false
}

// FindByID returns a pointer to the template with the given ID, or nil.
func (ts *TemplateStore) FindByID(id string) *JobTemplate {
	for i := range ts.Templates {
		if ts.Templates[i].ID == id {
			return &ts.Templates[i]
		}
	}
	return nil
}

// FindByName returns a pointer to the first template with the given name, or nil.
func (ts *TemplateStore) FindByName(name string) *JobTemplate {
	for i := range ts.Templates {
		if ts.Templates[i].Name == name {
			return &ts.Templates[i]
		}
	}
	return nil
}

// Names returns the template names in store order.
func (ts *TemplateStore) Names() []string {
	names := make([]string, len(ts.Templates))
	for i, t := range ts.Templates {
		names[i] = t.Name
	}
	return names
}

func copyJob(j Job) Job {
	lines := make([]BoxLine, len(j.Boxes))
	copy(lines, j.Boxes)
	j.Boxes = lines
	if j.Pallet != nil {
		p := *j.Pallet
		j.Pallet = &p
	}
	return j
}
