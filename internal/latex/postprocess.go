package latex

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/jonathan/resume-genie/internal/db"
	"github.com/jonathan/resume-genie/internal/profile"
)

const (
	docStartMarker = `\documentclass`
	docEndMarker   = `\end{document}`
)

// incompatiblePackages are preamble lines known to break pdflatex runs on
// the output of some generation backends.
var incompatiblePackages = []string{
	`\usepackage[utf8x]{inputenc}`,
	`\usepackage{fontspec}`,
}

var (
	beginPattern = regexp.MustCompile(`\\begin\{([a-zA-Z*]+)\}`)
	endPattern   = regexp.MustCompile(`\\end\{([a-zA-Z*]+)\}`)
)

// Postprocess repairs a generated draft into a compilable document and
// derives the filesystem-safe output identifier from the job's id.
// Repair is best effort: a draft that cannot be fixed is still returned.
func Postprocess(draft string, p *profile.Profile, job *db.Job) (string, string) {
	text := stripLeadingProse(draft)
	text = removeIncompatiblePackages(text)
	text = truncateAfterEndMarker(text)
	text = balanceEnvironments(text)
	text = ensureEndMarker(text)
	text = substitutePlaceholders(text, p)
	return text, OutputID(job.ID)
}

// OutputID maps a job's external identifier to a filesystem-safe token:
// every non-alphanumeric character becomes an underscore, one for one.
// Distinct ids can collide ("a-b" and "a_b"); callers needing strict
// uniqueness must namespace externally.
func OutputID(jobID string) string {
	var sb strings.Builder
	sb.Grow(len(jobID))
	for _, r := range jobID {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			sb.WriteRune(r)
		} else {
			sb.WriteRune('_')
		}
	}
	return sb.String()
}

// stripLeadingProse drops commentary some backends emit before the
// document start. Text without the marker is left untouched.
func stripLeadingProse(text string) string {
	if idx := strings.Index(text, docStartMarker); idx > 0 {
		return text[idx:]
	}
	return text
}

func removeIncompatiblePackages(text string) string {
	lines := strings.Split(text, "\n")
	out := lines[:0]
	for _, line := range lines {
		if containsIncompatiblePackage(line) {
			continue
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}

func containsIncompatiblePackage(line string) bool {
	trimmed := strings.TrimSpace(line)
	for _, pkg := range incompatiblePackages {
		if strings.HasPrefix(trimmed, pkg) {
			return true
		}
	}
	return false
}

// truncateAfterEndMarker drops anything after the first document-end
// marker, which also collapses duplicate end markers to one.
func truncateAfterEndMarker(text string) string {
	if idx := strings.Index(text, docEndMarker); idx >= 0 {
		return text[:idx+len(docEndMarker)]
	}
	return text
}

// balanceEnvironments inserts missing \end{...} closers for environments
// opened more often than closed. Closers go immediately before the
// document-end marker, in reverse order of opening, or at the end of the
// text when no end marker exists yet. This is a counting heuristic, not a
// parser; it never removes anything.
func balanceEnvironments(text string) string {
	opens := beginPattern.FindAllStringSubmatch(text, -1)
	if len(opens) == 0 {
		return text
	}

	closeCounts := make(map[string]int)
	for _, m := range endPattern.FindAllStringSubmatch(text, -1) {
		closeCounts[m[1]]++
	}

	var missing []string
	openCounts := make(map[string]int)
	for _, m := range opens {
		env := m[1]
		if env == "document" {
			continue
		}
		openCounts[env]++
		if openCounts[env] > closeCounts[env] {
			// Close in reverse order of opening
			missing = append([]string{`\end{` + env + `}`}, missing...)
		}
	}
	if len(missing) == 0 {
		return text
	}

	closers := strings.Join(missing, "\n")
	if idx := strings.LastIndex(text, docEndMarker); idx >= 0 {
		return text[:idx] + closers + "\n" + text[idx:]
	}
	return text + "\n" + closers
}

func ensureEndMarker(text string) string {
	if strings.Contains(text, docEndMarker) {
		return text
	}
	return strings.TrimRight(text, "\n") + "\n" + docEndMarker + "\n"
}

// placeholderValues maps the generic tokens backends leave in templated
// output to the field that should replace them.
func substitutePlaceholders(text string, p *profile.Profile) string {
	if p == nil {
		return text
	}
	replacements := []struct {
		placeholder string
		value       string
	}{
		{"Your Name", p.Name},
		{"your.email@example.com", p.Email},
		{"(123) 456-7890", p.Phone},
		{"Your Phone", p.Phone},
	}
	for _, r := range replacements {
		if r.value != "" {
			text = strings.ReplaceAll(text, r.placeholder, Escape(r.value))
		}
	}
	return text
}
