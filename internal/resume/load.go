package resume

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jonathan/jobuine/internal/types"
)

// LoadRecord loads a resume record from a JSON file
func LoadRecord(path string) (*types.ResumeRecord, error) {
	var rec types.ResumeRecord
	if err := readJSON(path, &rec); err != nil {
		return nil, err
	}
	Normalize(&rec)
	return &rec, nil
}

// LoadApplication loads only the applyDetail part of a cv_data file
func LoadApplication(path string) (*types.ApplicationRecord, error) {
	var rec types.ApplicationRecord
	if err := readJSON(path, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

func readJSON(path string, v any) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return &LoadError{
			Path:    path,
			Message: fmt.Sprintf("failed to read file %s", path),
			Cause:   err,
		}
	}

	if err := json.Unmarshal(content, v); err != nil {
		return &LoadError{
			Path:    path,
			Message: fmt.Sprintf("failed to unmarshal JSON in %s", filepath.Base(path)),
			Cause:   err,
		}
	}
	return nil
}

// ListRecords returns the *.json files directly under dir, sorted by name
func ListRecords(dir string) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to list records in %s: %w", dir, err)
	}
	return matches, nil
}

// ArtifactBase returns the file name stem for a record's rendered document:
// the record's name without whitespace, or the source file's base name.
func ArtifactBase(rec *types.ResumeRecord, sourcePath string) string {
	name := ""
	if rec != nil {
		name = strings.TrimSpace(rec.Name)
	}
	if name == "" {
		base := filepath.Base(sourcePath)
		name = strings.TrimSuffix(base, filepath.Ext(base))
	}
	return strings.Join(strings.Fields(name), "")
}
