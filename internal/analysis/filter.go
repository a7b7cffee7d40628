package analysis

import (
	"strings"

	"github.com/jonathan/resume-genie/internal/db"
)

// Preferences describes the user's filter policy. An empty Skills list
// places no skill constraint.
type Preferences struct {
	Skills     []string `json:"skills"`
	RemoteOnly bool     `json:"remote_only"`
}

// Filter returns the jobs that satisfy the preferences: the required-skill
// set must be empty or intersect the job's extracted skills, and when
// RemoteOnly is set the job must be remote. Input order is preserved.
func Filter(jobs []db.Job, prefs Preferences) []db.Job {
	required := make(map[string]bool, len(prefs.Skills))
	for _, s := range prefs.Skills {
		required[strings.ToLower(s)] = true
	}

	out := []db.Job{}
	for _, j := range jobs {
		if len(required) > 0 && !intersects(required, j.SkillsExtracted) {
			continue
		}
		if prefs.RemoteOnly && !j.RemoteFlag {
			continue
		}
		out = append(out, j)
	}
	return out
}

func intersects(required map[string]bool, skills []string) bool {
	for _, s := range skills {
		if required[strings.ToLower(s)] {
			return true
		}
	}
	return false
}
