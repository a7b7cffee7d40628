// Package analysis provides signal extraction, filtering and ranking for job postings.
package analysis

import (
	"regexp"
	"sort"
	"strings"

	"github.com/jonathan/resume-genie/internal/db"
)

// Fixed detection vocabularies. Extraction is a closed set by design;
// anything outside these patterns is not a signal.
var (
	skillPattern     = regexp.MustCompile(`(?i)\b(python|aws|terraform|docker|kubernetes|react|node|sql|go|java|typescript)\b`)
	timezonePattern  = regexp.MustCompile(`(?i)\b(pst|est|cst|gmt|utc|india|uae|uk)\b`)
	seniorityPattern = regexp.MustCompile(`(?i)\b(junior|mid|senior|lead|principal)\b`)
)

// Signals holds the structured facts derived from unstructured job text.
type Signals struct {
	Skills    []string
	Timezones []string
	Seniority string
	Remote    bool
}

// Extract derives signals from raw job text. It is a pure function: empty
// text yields zero-value signals, never an error, and re-running on the
// same text yields identical results.
func Extract(text string) Signals {
	return Signals{
		Skills:    matchSet(skillPattern, text),
		Timezones: matchSet(timezonePattern, text),
		Seniority: strings.ToLower(seniorityPattern.FindString(text)),
		Remote:    strings.Contains(strings.ToLower(text), "remote"),
	}
}

// Enrich applies extraction to a job's description in place.
func Enrich(job *db.Job) {
	sig := Extract(job.Description)
	job.SkillsExtracted = sig.Skills
	job.Timezones = sig.Timezones
	job.Seniority = sig.Seniority
	job.RemoteFlag = sig.Remote
}

// matchSet returns all matches lowercased, deduplicated and sorted.
// Sorting keeps output deterministic; callers treat the result as a set.
func matchSet(pattern *regexp.Regexp, text string) []string {
	seen := make(map[string]bool)
	out := []string{}
	for _, m := range pattern.FindAllString(text, -1) {
		m = strings.ToLower(m)
		if !seen[m] {
			seen[m] = true
			out = append(out, m)
		}
	}
	sort.Strings(out)
	return out
}
