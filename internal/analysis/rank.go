package analysis

import (
	"sort"

	"github.com/jonathan/resume-genie/internal/db"
)

// remoteBonus is added to the score of remote-friendly jobs.
const remoteBonus = 2

// Score computes a job's ranking score: one point per extracted skill plus
// a flat bonus for remote jobs. Recomputed on every ranking pass.
func Score(job db.Job) int {
	s := len(job.SkillsExtracted)
	if job.RemoteFlag {
		s += remoteBonus
	}
	return s
}

// Rank returns a copy of jobs with scores recomputed, ordered by score
// descending. The sort is stable: equal scores keep their input order.
func Rank(jobs []db.Job) []db.Job {
	ranked := make([]db.Job, len(jobs))
	copy(ranked, jobs)
	for i := range ranked {
		ranked[i].Score = Score(ranked[i])
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	return ranked
}

// TopN returns the first n jobs, or all of them when fewer exist.
func TopN(jobs []db.Job, n int) []db.Job {
	if n >= len(jobs) {
		return jobs
	}
	if n < 0 {
		n = 0
	}
	return jobs[:n]
}
