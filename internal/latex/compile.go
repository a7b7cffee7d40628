package latex

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// CompilationTimeout bounds a single pdflatex run.
const CompilationTimeout = 2 * time.Minute

// Compile compiles a LaTeX file with pdflatex into the output directory.
// Compilation is best effort: a missing tool or failed run yields a
// CompilationError the caller should log as a warning, never a hard
// failure of the surrounding generation.
func Compile(ctx context.Context, texPath, outDir string) (pdfPath string, logOutput string, err error) {
	if _, err := exec.LookPath("pdflatex"); err != nil {
		return "", "", &CompilationError{
			Message: "pdflatex not found in PATH; skipping PDF generation",
			Cause:   err,
		}
	}

	if err := os.MkdirAll(outDir, 0755); err != nil {
		return "", "", &CompilationError{
			Message: "failed to create output directory: " + outDir,
			Cause:   err,
		}
	}

	ctx, cancel := context.WithTimeout(ctx, CompilationTimeout)
	defer cancel()

	// nonstopmode prevents interactive prompts on errors
	cmd := exec.CommandContext(ctx, "pdflatex", "-interaction=nonstopmode", "-output-directory", outDir, texPath)

	var stdout, stderr strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	runErr := cmd.Run()
	logOutput = stdout.String() + stderr.String()

	texBase := filepath.Base(texPath)
	pdfPath = filepath.Join(outDir, strings.TrimSuffix(texBase, ".tex")+".pdf")
	if _, err := os.Stat(pdfPath); os.IsNotExist(err) {
		return "", logOutput, &CompilationError{
			Message:   "LaTeX compilation failed: PDF was not generated",
			LogOutput: logOutput,
			Cause:     runErr,
		}
	}

	// pdflatex can emit a usable PDF and still exit non-zero
	if runErr != nil {
		return pdfPath, logOutput, &CompilationError{
			Message:   "LaTeX compilation completed with errors (PDF may be incomplete)",
			LogOutput: logOutput,
			Cause:     runErr,
		}
	}

	return pdfPath, logOutput, nil
}

// CleanupAux removes pdflatex auxiliary files left next to the PDF.
func CleanupAux(outDir, outputID string) {
	for _, ext := range []string{".aux", ".log", ".out", ".toc"} {
		_ = os.Remove(filepath.Join(outDir, "resume_"+outputID+ext))
	}
}
