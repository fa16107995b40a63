// Package prompts provides the prompt template written into new application
// workspaces. A template file on disk replaces the embedded default.
package prompts

import (
	_ "embed"
	"fmt"
	"os"
	"strings"
)

//go:embed apply_prompt.txt
var defaultApplyPrompt string

// Placeholder keys understood by the apply prompt.
const (
	KeyCareerJSON     = "career_json"
	KeyJobDescription = "job_description"
	KeyDateAndTime    = "date_and_time"
	KeyCompanyName    = "company_name"
	KeyOutputSchema   = "output_schema"
)

// Default returns the embedded apply prompt template.
func Default() string {
	return defaultApplyPrompt
}

// Load reads a prompt template from path. An empty path, or a path that
// does not exist, yields the embedded default; the second return value
// reports whether the file was used.
func Load(path string) (string, bool, error) {
	if path == "" {
		return defaultApplyPrompt, false, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return defaultApplyPrompt, false, nil
		}
		return "", false, fmt.Errorf("failed to read prompt file %s: %w", path, err)
	}
	return string(data), true, nil
}

// Format replaces {key} placeholders in template with values from data.
// Unknown placeholders are left as they are.
func Format(template string, data map[string]string) string {
	pairs := make([]string, 0, 2*len(data))
	for key, value := range data {
		pairs = append(pairs, "{"+key+"}", value)
	}
	return strings.NewReplacer(pairs...).Replace(template)
}

// Placeholders returns the known keys missing from template.
func Placeholders(template string) []string {
	var missing []string
	for _, key := range []string{KeyCareerJSON, KeyJobDescription, KeyDateAndTime, KeyCompanyName, KeyOutputSchema} {
		if !strings.Contains(template, "{"+key+"}") {
			missing = append(missing, key)
		}
	}
	return missing
}
