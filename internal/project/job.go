package project

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/piwi3910/PalletStack/internal/importer"
	"github.com/piwi3910/PalletStack/internal/model"
)

// ErrInvalidJob is returned when a job file cannot be used for packing.
var ErrInvalidJob = errors.New("invalid job")

// LoadJob reads a job file, JSON or TOML by extension. Box lines listed in
// BoxesFile (CSV or XLSX, relative to the job file) are appended after the
// inline boxes. The returned warnings come from decoding and box import.
func LoadJob(path string) (model.Job, []string, error) {
	var job model.Job
	var warnings []string

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		md, err := toml.DecodeFile(path, &job)
		if err != nil {
			return model.Job{}, nil, fmt.Errorf("%w: %s: %v", ErrInvalidJob, path, err)
		}
		for _, key := range md.Undecoded() {
			warnings = append(warnings, fmt.Sprintf("Unknown job key %q ignored", key.String()))
		}
	case ".json":
		data, err := os.ReadFile(path)
		if err != nil {
			return model.Job{}, nil, fmt.Errorf("failed to read job file: %w", err)
		}
		if err := json.Unmarshal(data, &job); err != nil {
			return model.Job{}, nil, fmt.Errorf("%w: %s: %v", ErrInvalidJob, path, err)
		}
	default:
		return model.Job{}, nil, fmt.Errorf("%w: unsupported job format %q", ErrInvalidJob, filepath.Ext(path))
	}

	if job.BoxesFile != "" {
		boxesPath := job.BoxesFile
		if !filepath.IsAbs(boxesPath) {
			boxesPath = filepath.Join(filepath.Dir(path), boxesPath)
		}
		result := importer.ImportBoxes(boxesPath)
		warnings = append(warnings, result.Warnings...)
		if len(result.Errors) > 0 {
			return model.Job{}, warnings, fmt.Errorf("%w: box list %s: %s",
				ErrInvalidJob, job.BoxesFile, strings.Join(result.Errors, "; "))
		}
		job.Boxes = append(job.Boxes, result.Boxes...)
	}

	if job.Name == "" {
		job.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	if err := ValidateJob(job); err != nil {
		return model.Job{}, warnings, err
	}
	return job, warnings, nil
}

// ValidateJob checks that a job describes something packable.
func ValidateJob(job model.Job) error {
	if len(job.Boxes) == 0 {
		return fmt.Errorf("%w: no boxes", ErrInvalidJob)
	}
	for i, l := range job.Boxes {
		if l.Width <= 0 || l.Height <= 0 || l.Depth <= 0 {
			return fmt.Errorf("%w: box line %d (%s) has non-positive dimensions", ErrInvalidJob, i+1, l.Label)
		}
		if l.Weight < 0 {
			return fmt.Errorf("%w: box line %d (%s) has negative weight", ErrInvalidJob, i+1, l.Label)
		}
		if l.Quantity <= 0 {
			return fmt.Errorf("%w: box line %d (%s) has quantity %d", ErrInvalidJob, i+1, l.Label, l.Quantity)
		}
	}
	if p := job.Pallet; p != nil {
		if p.Dimensions.Width <= 0 || p.Dimensions.Depth <= 0 || p.MaxStackHeight <= 0 {
			return fmt.Errorf("%w: pallet needs positive width, depth and max stack height", ErrInvalidJob)
		}
	}
	if job.MaxFloors < 0 {
		return fmt.Errorf("%w: max floors %d", ErrInvalidJob, job.MaxFloors)
	}
	return nil
}

// SaveJob writes a job as TOML or JSON by extension.
func SaveJob(path string, job model.Job) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return err
		}
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		if err := toml.NewEncoder(f).Encode(job); err != nil {
			f.Close()
			return fmt.Errorf("failed to encode job: %w", err)
		}
		return f.Close()
	case ".json":
		return writeJSON(path, job)
	default:
		return fmt.Errorf("%w: unsupported job format %q", ErrInvalidJob, filepath.Ext(path))
	}
}
