package latex

import (
	"fmt"
	"os"
	"path/filepath"
)

// TexPath returns the text artifact path for an output identifier.
func TexPath(dir, outputID string) string {
	return filepath.Join(dir, fmt.Sprintf("resume_%s.tex", outputID))
}

// PDFPath returns the binary artifact path for an output identifier. The
// file only exists when compilation succeeded.
func PDFPath(dir, outputID string) string {
	return filepath.Join(dir, fmt.Sprintf("resume_%s.pdf", outputID))
}

// WriteArtifact persists the final document text under the output
// directory. The write goes to a temp file first and is renamed into
// place, so a concurrent compiler invocation never reads a partial file.
func WriteArtifact(dir, outputID, text string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}

	final := TexPath(dir, outputID)

	tmp, err := os.CreateTemp(dir, filepath.Base(final)+".tmp-*")
	if err != nil {
		return "", fmt.Errorf("failed to create temp artifact: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.WriteString(text); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return "", fmt.Errorf("failed to write artifact: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("failed to close temp artifact: %w", err)
	}

	if err := os.Rename(tmpName, final); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("failed to replace artifact %s: %w", final, err)
	}
	return final, nil
}
