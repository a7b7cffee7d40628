package resume

import (
	"strings"

	"github.com/jonathan/resume-genie/internal/db"
	"github.com/jonathan/resume-genie/internal/profile"
)

// primaryStackSize caps the skills summarized in a cheat sheet.
const primaryStackSize = 5

// defaultSalaryExpectation is used when the profile states none.
const defaultSalaryExpectation = "Negotiable"

// CheatSheet is the quick-reference card stored alongside each generated
// resume, meant to be skimmed right before filling an application form.
type CheatSheet struct {
	JobID             string `json:"job_id"`
	YearsExperience   int    `json:"years_experience"`
	PrimaryStack      string `json:"primary_stack"`
	WorkAuth          string `json:"work_auth"`
	SalaryExpectation string `json:"salary_expectation"`
}

// BuildCheatSheet summarizes the profile for one job application. The
// primary stack is the first five distinct skills in authored order.
func BuildCheatSheet(p *profile.Profile, job *db.Job) CheatSheet {
	skills := p.DedupedSkills()
	if len(skills) > primaryStackSize {
		skills = skills[:primaryStackSize]
	}

	salary := p.SalaryExpect
	if salary == "" {
		salary = defaultSalaryExpectation
	}

	return CheatSheet{
		JobID:             job.ID,
		YearsExperience:   p.YearsExperience,
		PrimaryStack:      strings.Join(skills, ", "),
		WorkAuth:          p.WorkAuth,
		SalaryExpectation: salary,
	}
}
