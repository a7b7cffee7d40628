// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/resume-genie/internal/db"
	"github.com/jonathan/resume-genie/internal/pipeline"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintIngestReport outputs a summary of one ingestion pass.
func (p *Printer) PrintIngestReport(report *pipeline.IngestReport) {
	if report == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Fetched:  %d\n", report.Fetched))
	sb.WriteString(fmt.Sprintf("Kept:     %d", report.Kept))
	if len(report.FailedBoards) > 0 {
		sb.WriteString(fmt.Sprintf("\nFailed:   %s", strings.Join(report.FailedBoards, ", ")))
	}

	p.printBox("INGESTION", sb.String())
}

// PrintRankedJobs outputs the top N jobs with scores and extracted skills.
func (p *Printer) PrintRankedJobs(jobs []db.Job) {
	if len(jobs) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Total jobs: %d\n\n", len(jobs)))

	count := min(len(jobs), maxItemsToShow)
	for i := 0; i < count; i++ {
		job := jobs[i]
		sb.WriteString(fmt.Sprintf("#%d  %s\n", i+1, job.Title))
		sb.WriteString(fmt.Sprintf("    Score: %d", job.Score))
		if job.RemoteFlag {
			sb.WriteString(" (remote)")
		}
		sb.WriteString("\n")
		if len(job.SkillsExtracted) > 0 {
			skills := strings.Join(job.SkillsExtracted, ", ")
			if len(skills) > 40 {
				skills = skills[:37] + "..."
			}
			sb.WriteString(fmt.Sprintf("    Skills: %s\n", skills))
		}
		if i < count-1 {
			sb.WriteString("\n")
		}
	}

	if len(jobs) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more jobs", len(jobs)-maxItemsToShow))
	}

	p.printBox("TOP RANKED JOBS", sb.String())
}

// PrintGenerationResult outputs where a generated package landed.
func (p *Printer) PrintGenerationResult(res *pipeline.GenerationResult) {
	if res == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Job:      %s\n", res.JobID))
	sb.WriteString(fmt.Sprintf("Package:  %s\n", res.PackageID))
	sb.WriteString(fmt.Sprintf("Artifact: %s\n", res.TexPath))
	if res.PDFPath != "" {
		sb.WriteString(fmt.Sprintf("PDF:      %s\n", res.PDFPath))
	}
	if res.Generated {
		sb.WriteString("Source:   text generation provider")
	} else {
		sb.WriteString("Source:   deterministic fallback")
	}

	p.printBox("APPLICATION PACKAGE", sb.String())
}

// PrintAgentReport outputs the outcome of an agent run.
func (p *Printer) PrintAgentReport(report *pipeline.AgentReport) {
	if report == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Considered: %d\n", report.Considered))
	sb.WriteString(fmt.Sprintf("Packaged:   %d", len(report.Results)))

	if len(report.Failures) > 0 {
		sb.WriteString(fmt.Sprintf("\n\nFound %d failures:\n", len(report.Failures)))
		for i, f := range report.Failures {
			msg := f.Err
			if len(msg) > 45 {
				msg = msg[:42] + "..."
			}
			sb.WriteString(fmt.Sprintf("⚠ %s\n", f.JobID))
			sb.WriteString(fmt.Sprintf("  %s", msg))
			if i < len(report.Failures)-1 {
				sb.WriteString("\n")
			}
		}
	}

	p.printBox("AGENT RUN", sb.String())
}
