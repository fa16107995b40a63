// Package workspace creates the per-application directory that the apply
// command hands to the user: a filled-in prompt and an empty cv_data.json.
package workspace

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jonathan/jobuine/internal/prompts"
	schemafiles "github.com/jonathan/jobuine/schemas"
)

// File names inside the data directory and inside a workspace.
const (
	PromptFile = "prompt.txt"
	CareerFile = "career.json"
	SchemaFile = "schema.json"
	CVDataFile = "cv_data.json"
)

// Options describes the application a workspace is created for.
type Options struct {
	AppliesDir     string
	DataDir        string
	Company        string
	Role           string
	JobDescription string
	Now            time.Time
}

// Workspace is a created application directory.
type Workspace struct {
	Dir        string
	PromptPath string
	CVDataPath string
	// Reused is set when cv_data.json already held data and was left alone.
	Reused bool
}

// DirName returns the workspace directory for company, relative to the
// applies directory: "2025_10_12/apl_Acme_Corp".
func DirName(company string, now time.Time) string {
	safe := strings.NewReplacer(" ", "_", "/", "_", `\`, "_").Replace(strings.TrimSpace(company))
	return filepath.Join(now.Format("2006_01_02"), "apl_"+safe)
}

// Create builds <applies>/<YYYY_MM_DD>/apl_<Company> with prompt.txt and
// cv_data.json. career.json must exist in the data directory; prompt.txt and
// schema.json there are optional and fall back to the built-in ones.
func Create(opts Options) (*Workspace, error) {
	company := strings.TrimSpace(opts.Company)
	role := strings.TrimSpace(opts.Role)
	description := strings.TrimSpace(opts.JobDescription)
	switch {
	case company == "":
		return nil, &WorkspaceError{Message: "company name cannot be empty"}
	case role == "":
		return nil, &WorkspaceError{Message: "role cannot be empty"}
	case description == "":
		return nil, &WorkspaceError{Message: "job description cannot be empty"}
	case opts.AppliesDir == "":
		return nil, &WorkspaceError{Message: "applies directory is not set"}
	}

	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}

	template, _, err := prompts.Load(filepath.Join(opts.DataDir, PromptFile))
	if err != nil {
		return nil, &WorkspaceError{Message: "failed to load prompt template", Cause: err}
	}

	career, err := readIndentedJSON(filepath.Join(opts.DataDir, CareerFile), nil)
	if err != nil {
		return nil, err
	}

	schema, err := readIndentedJSON(filepath.Join(opts.DataDir, SchemaFile), schemafiles.Resume())
	if err != nil {
		return nil, err
	}

	prompt := prompts.Format(template, map[string]string{
		prompts.KeyCareerJSON:     career,
		prompts.KeyJobDescription: fmt.Sprintf("role : %s\n\n%s", role, description),
		prompts.KeyDateAndTime:    now.Format("2006-01-02 15:04:05"),
		prompts.KeyCompanyName:    company,
		prompts.KeyOutputSchema:   schema,
	})

	ws := &Workspace{Dir: filepath.Join(opts.AppliesDir, DirName(company, now))}
	ws.PromptPath = filepath.Join(ws.Dir, PromptFile)
	ws.CVDataPath = filepath.Join(ws.Dir, CVDataFile)

	if err := os.MkdirAll(ws.Dir, 0755); err != nil {
		return nil, &WorkspaceError{Message: fmt.Sprintf("failed to create %s", ws.Dir), Cause: err}
	}
	if err := os.WriteFile(ws.PromptPath, []byte(prompt), 0644); err != nil {
		return nil, &WorkspaceError{Message: fmt.Sprintf("failed to write %s", ws.PromptPath), Cause: err}
	}

	reused, err := hasContent(ws.CVDataPath)
	if err != nil {
		return nil, err
	}
	ws.Reused = reused
	if !reused {
		if err := os.WriteFile(ws.CVDataPath, []byte("{}"), 0644); err != nil {
			return nil, &WorkspaceError{Message: fmt.Sprintf("failed to write %s", ws.CVDataPath), Cause: err}
		}
	}

	return ws, nil
}

// readIndentedJSON reads path and re-indents it with two spaces, keeping key
// order. A missing file yields fallback, or an error when fallback is nil.
func readIndentedJSON(path string, fallback []byte) (string, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) && fallback != nil {
		data, err = fallback, nil
	}
	if err != nil {
		return "", &WorkspaceError{Message: fmt.Sprintf("missing data file: %s", path), Cause: err}
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, bytes.TrimSpace(data), "", "  "); err != nil {
		return "", &WorkspaceError{Message: fmt.Sprintf("invalid JSON in %s", filepath.Base(path)), Cause: err}
	}
	return buf.String(), nil
}

// hasContent reports whether path exists and holds more than an empty object.
func hasContent(path string) (bool, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, &WorkspaceError{Message: fmt.Sprintf("failed to read %s", path), Cause: err}
	}

	var v map[string]json.RawMessage
	if json.Unmarshal(data, &v) == nil && len(v) == 0 {
		return false, nil
	}
	return len(bytes.TrimSpace(data)) > 0, nil
}
