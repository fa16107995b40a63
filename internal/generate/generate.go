// Package generate runs the batch behind the generate command: render every
// cv_data file in a directory, then append the applications to the ledger.
package generate

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jonathan/jobuine/internal/ledger"
	"github.com/jonathan/jobuine/internal/logger"
	"github.com/jonathan/jobuine/internal/rendering"
	"github.com/jonathan/jobuine/internal/resume"
	"github.com/jonathan/jobuine/internal/schemas"
)

// ErrNotDirectory is returned when the source path is not a directory.
var ErrNotDirectory = errors.New("not a directory")

// ProgressEvent represents a progress update during a run
type ProgressEvent struct {
	Step    string `json:"step"`
	File    string `json:"file,omitempty"`
	Message string `json:"message"`
	RunID   string `json:"run_id,omitempty"`
}

// ProgressCallback is called when a record has been handled
type ProgressCallback func(event ProgressEvent)

// Options holds configuration for a run
type Options struct {
	Dir          string
	StoreFile    string
	Format       rendering.Format
	TemplatePath string // LaTeX template, empty for the built-in one
	// Strict validates each file against the resume schema before rendering.
	Strict     bool
	Now        func() time.Time
	Logger     *zerolog.Logger
	OnProgress ProgressCallback
}

// Failure is a record that could not be rendered.
type Failure struct {
	File string
	Err  error
}

// Result summarizes a run.
type Result struct {
	RunID     uuid.UUID
	Dir       string
	Records   int
	Artifacts []string
	Failures  []Failure
	RowsAdded int
	StoreFile string
}

// Succeeded returns the number of documents written.
func (r *Result) Succeeded() int {
	return len(r.Artifacts)
}

// Run renders every *.json file under opts.Dir next to its source and then
// performs one ledger append and save. A record that fails is logged, added
// to Result.Failures and skipped. A missing directory, or a ledger that
// cannot be opened or saved, fails the run.
func Run(ctx context.Context, opts Options) (*Result, error) {
	runID := uuid.New()
	log := logger.With("generate")
	if opts.Logger != nil {
		log = *opts.Logger
	}
	log = log.With().Str("run_id", runID.String()).Logger()

	dir, err := filepath.Abs(opts.Dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", opts.Dir, err)
	}
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("source directory %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("'%s': %w", dir, ErrNotDirectory)
	}
	if opts.StoreFile == "" {
		return nil, errors.New("no ledger file configured")
	}

	result := &Result{RunID: runID, Dir: dir, StoreFile: opts.StoreFile}

	files, err := resume.ListRecords(dir)
	if err != nil {
		return nil, err
	}
	result.Records = len(files)
	if len(files) == 0 {
		log.Warn().Str("dir", dir).Msg("no .json files found")
		return result, nil
	}

	store, err := ledger.OpenOrCreate(opts.StoreFile, ledger.WithLogger(log))
	if err != nil {
		return nil, err
	}
	defer store.Close() //nolint:errcheck // the workbook is saved explicitly below
	log.Debug().Str("ledger", store.Path()).Str("sheet", store.Sheet()).Int("rows", store.Len()).Msg("ledger opened")

	var latexOpts []rendering.LaTeXOption
	if opts.TemplatePath != "" {
		latexOpts = append(latexOpts, rendering.WithTemplateFile(opts.TemplatePath))
	}

	now := opts.Now
	if now == nil {
		now = time.Now
	}
	assembler := rendering.NewAssembler(rendering.WithClock(now))

	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		name := filepath.Base(path)
		out, err := renderOne(assembler, path, opts, latexOpts)
		if err != nil {
			log.Warn().Err(err).Str("file", name).Msg("skipping document")
			result.Failures = append(result.Failures, Failure{File: name, Err: err})
			emit(opts, ProgressEvent{Step: "render", File: name, Message: err.Error(), RunID: runID.String()})
			continue
		}

		log.Debug().Str("file", name).Str("artifact", out).Msg("document written")
		result.Artifacts = append(result.Artifacts, out)
		emit(opts, ProgressEvent{Step: "render", File: name, Message: "written " + filepath.Base(out), RunID: runID.String()})
	}

	added, err := store.AppendRows(dir)
	if err != nil {
		return result, err
	}
	result.RowsAdded = added
	if added > 0 {
		if err := store.AutosizeColumns(); err != nil {
			return result, err
		}
	}
	if err := store.Save(); err != nil {
		return result, err
	}
	emit(opts, ProgressEvent{Step: "ledger", Message: fmt.Sprintf("%d rows added", added), RunID: runID.String()})

	log.Info().
		Int("documents", result.Succeeded()).
		Int("failures", len(result.Failures)).
		Int("rows", added).
		Msg("generate finished")
	return result, nil
}

// renderOne writes the document for one source file and returns its path.
func renderOne(assembler *rendering.Assembler, path string, opts Options, latexOpts []rendering.LaTeXOption) (string, error) {
	if opts.Strict {
		if err := schemas.ValidateResume(path); err != nil {
			return "", err
		}
	}

	rec, err := resume.LoadRecord(path)
	if err != nil {
		return "", err
	}

	doc, err := assembler.Assemble(rec)
	if err != nil {
		return "", err
	}

	format := opts.Format
	if format == "" {
		format = rendering.FormatPDF
	}
	out := filepath.Join(filepath.Dir(path), resume.ArtifactBase(rec, path)+format.Extension())
	if err := rendering.WriteDocument(doc, format, out, latexOpts...); err != nil {
		return "", err
	}
	return out, nil
}

func emit(opts Options, event ProgressEvent) {
	if opts.OnProgress != nil {
		opts.OnProgress(event)
	}
}
