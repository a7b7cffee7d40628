package resume

import (
	"testing"

	"github.com/jonathan/resume-genie/internal/db"
	"github.com/jonathan/resume-genie/internal/profile"
	"github.com/stretchr/testify/assert"
)

func TestBuildCheatSheet(t *testing.T) {
	p := fullProfile()
	p.WorkAuth = "US Citizen"
	p.SalaryExpect = "$180k"

	cs := BuildCheatSheet(p, &db.Job{ID: "remoteok-42"})

	assert.Equal(t, "remoteok-42", cs.JobID)
	assert.Equal(t, 10, cs.YearsExperience)
	assert.Equal(t, "Go, Python, AWS", cs.PrimaryStack)
	assert.Equal(t, "US Citizen", cs.WorkAuth)
	assert.Equal(t, "$180k", cs.SalaryExpectation)
}

func TestBuildCheatSheet_PrimaryStackTopFive(t *testing.T) {
	p := &profile.Profile{Skills: []string{"a", "b", "a", "c", "d", "e", "f"}}

	cs := BuildCheatSheet(p, &db.Job{ID: "j"})

	assert.Equal(t, "a, b, c, d, e", cs.PrimaryStack)
}

func TestBuildCheatSheet_DefaultSalary(t *testing.T) {
	cs := BuildCheatSheet(&profile.Profile{}, &db.Job{ID: "j"})

	assert.Equal(t, "Negotiable", cs.SalaryExpectation)
	assert.Empty(t, cs.PrimaryStack)
}
