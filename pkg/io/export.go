package io

import (
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/tablecast/pkg/errors"
)

// WriteArtifact writes rendered bytes to w. Text formats get a trailing
// newline when newline is set, so they paste cleanly into a terminal.
func WriteArtifact(w io.Writer, data []byte, newline bool) error {
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	if newline {
		if _, err := io.WriteString(w, "\n"); err != nil {
			return fmt.Errorf("write: %w", err)
		}
	}
	return nil
}

// ExportFile writes rendered bytes to a file at path.
// This is a convenience wrapper around [WriteArtifact] for file-based output.
func ExportFile(path string, data []byte) error {
	if err := errors.ValidatePath(path); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteArtifact(f, data, false); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
