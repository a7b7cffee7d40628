package analysis

import (
	"testing"

	"github.com/jonathan/resume-genie/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtract_Skills(t *testing.T) {
	sig := Extract("We use Python, AWS and terraform. PYTHON experience required.")

	assert.Equal(t, []string{"aws", "python", "terraform"}, sig.Skills)
}

func TestExtract_WholeWordOnly(t *testing.T) {
	// "Django" contains "go" but is not a whole-word match
	sig := Extract("Django and Golang shop")

	assert.Empty(t, sig.Skills)
}

func TestExtract_Timezones(t *testing.T) {
	sig := Extract("Overlap with PST or EST required, UK welcome")

	assert.Equal(t, []string{"est", "pst", "uk"}, sig.Timezones)
}

func TestExtract_SeniorityFirstOccurrenceWins(t *testing.T) {
	sig := Extract("Senior engineer, will mentor junior staff")

	assert.Equal(t, "senior", sig.Seniority)
}

func TestExtract_SeniorityAbsent(t *testing.T) {
	sig := Extract("Software engineer")

	assert.Empty(t, sig.Seniority)
}

func TestExtract_RemoteSubstring(t *testing.T) {
	assert.True(t, Extract("Fully Remote position").Remote)
	assert.True(t, Extract("work remotely").Remote)
	assert.False(t, Extract("on-site in Austin").Remote)
}

func TestExtract_EmptyText(t *testing.T) {
	sig := Extract("")

	assert.Empty(t, sig.Skills)
	assert.Empty(t, sig.Timezones)
	assert.Empty(t, sig.Seniority)
	assert.False(t, sig.Remote)
}

func TestExtract_Idempotent(t *testing.T) {
	text := "Remote Senior Python engineer with AWS and Docker, PST timezone"

	first := Extract(text)
	second := Extract(text)

	assert.Equal(t, first, second)
}

func TestExtract_VocabularyOnly(t *testing.T) {
	sig := Extract("Haskell, Erlang, COBOL wizardry in Mars timezone")

	assert.Empty(t, sig.Skills)
	assert.Empty(t, sig.Timezones)
}

func TestEnrich(t *testing.T) {
	job := &db.Job{ID: "j1", Description: "Remote senior python engineer, PST"}

	Enrich(job)

	require.Equal(t, []string{"python"}, job.SkillsExtracted)
	assert.Equal(t, []string{"pst"}, job.Timezones)
	assert.Equal(t, "senior", job.Seniority)
	assert.True(t, job.RemoteFlag)
}
