package rendering

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
)

// WriteDocument renders doc in format f and writes it to path. The artifact
// is produced in memory and moved into place only once complete, so a failed
// render leaves no file behind.
func WriteDocument(doc *Document, f Format, path string, opts ...LaTeXOption) error {
	engine, err := NewEngine(f, opts...)
	if err != nil {
		return err
	}
	if err := Render(doc, engine); err != nil {
		return err
	}

	var buf bytes.Buffer
	if _, err := engine.WriteTo(&buf); err != nil {
		return &RenderError{Message: "failed to finish document", Cause: err}
	}

	return writeAtomic(path, buf.Bytes())
}

func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return &RenderError{Message: fmt.Sprintf("failed to create temp file in %s", dir), Cause: err}
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) //nolint:errcheck // no-op after a successful rename

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return &RenderError{Message: "failed to write document", Cause: err}
	}
	if err := tmp.Close(); err != nil {
		return &RenderError{Message: "failed to close document", Cause: err}
	}
	// CreateTemp makes the file 0600; keep the mode of the file being replaced.
	if err := os.Chmod(tmpName, fileMode(path)); err != nil {
		return &RenderError{Message: "failed to set document permissions", Cause: err}
	}
	if err := os.Rename(tmpName, path); err != nil {
		return &RenderError{Message: fmt.Sprintf("failed to move document to %s", path), Cause: err}
	}
	return nil
}

// fileMode returns the permission bits of an existing file at path, or 0644.
func fileMode(path string) os.FileMode {
	if info, err := os.Stat(path); err == nil {
		return info.Mode().Perm()
	}
	return 0644
}
