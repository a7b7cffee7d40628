package resume

import (
	"strings"
	"testing"

	"github.com/jonathan/resume-genie/internal/db"
	"github.com/jonathan/resume-genie/internal/profile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderFallback_ContainsEveryPopulatedField(t *testing.T) {
	p := fullProfile()

	doc := RenderFallback(p, promptJob(), nil)

	require.NotEmpty(t, doc)
	assert.Contains(t, doc, "Ada Lovelace")
	assert.Contains(t, doc, "ada@example.com")
	for _, skill := range p.DedupedSkills() {
		assert.Contains(t, doc, skill)
	}
	for _, e := range p.Experience {
		assert.Contains(t, doc, e.Role)
		assert.Contains(t, doc, e.Company)
		assert.Contains(t, doc, e.Description)
	}
	assert.Contains(t, doc, "University of London")
	assert.Contains(t, doc, "AWS SA")
	assert.Contains(t, doc, "Published first algorithm")
}

func TestRenderFallback_IsWellFormedLaTeX(t *testing.T) {
	doc := RenderFallback(fullProfile(), promptJob(), nil)

	assert.True(t, strings.HasPrefix(doc, `\documentclass`))
	assert.Equal(t, 1, strings.Count(doc, `\begin{document}`))
	assert.Equal(t, 1, strings.Count(doc, `\end{document}`))
	assert.Equal(t,
		strings.Count(doc, `\begin{itemize}`),
		strings.Count(doc, `\end{itemize}`))
}

func TestRenderFallback_EscapesSpecialCharacters(t *testing.T) {
	p := &profile.Profile{
		Name:   "R&D Lead",
		Skills: []string{"C#", "100% uptime"},
	}

	doc := RenderFallback(p, promptJob(), nil)

	assert.Contains(t, doc, `R\&D Lead`)
	assert.Contains(t, doc, `C\#`)
	assert.Contains(t, doc, `100\% uptime`)
	assert.NotContains(t, doc, "R&D")
}

func TestRenderFallback_OmitsEmptySections(t *testing.T) {
	p := &profile.Profile{Name: "Minimal", Email: "m@example.com"}

	doc := RenderFallback(p, promptJob(), nil)

	assert.NotContains(t, doc, `\section*{Experience}`)
	assert.NotContains(t, doc, `\section*{Certifications}`)
	assert.NotContains(t, doc, `\section*{Achievements}`)
	assert.Contains(t, doc, "Minimal")
}

func TestRenderFallback_RendersProjects(t *testing.T) {
	projects := []profile.Project{
		{Name: "genie", Description: "resume generator"},
	}

	doc := RenderFallback(fullProfile(), promptJob(), projects)

	assert.Contains(t, doc, `\section*{Relevant Projects}`)
	assert.Contains(t, doc, "genie")
	assert.Contains(t, doc, "resume generator")
}

func TestRenderFallback_NamesTargetRole(t *testing.T) {
	doc := RenderFallback(fullProfile(), &db.Job{ID: "j", Title: "SRE", Company: "Acme"}, nil)

	assert.Contains(t, doc, "Target: SRE at Acme")
}
