// Package resume composes tailored resume documents from the candidate
// profile and a job posting, with a deterministic fallback when no text
// generation backend is available.
package resume

import (
	"fmt"
	"strings"

	"github.com/jonathan/resume-genie/internal/db"
	"github.com/jonathan/resume-genie/internal/profile"
)

// maxDescriptionChars bounds the job description embedded in the prompt to
// respect provider input limits.
const maxDescriptionChars = 1500

// BuildPrompt assembles the generation prompt: job context, the full
// candidate profile, and relevant projects, with explicit instructions to
// use only the provided data and keep the LaTeX skeleton intact.
func BuildPrompt(p *profile.Profile, job *db.Job, projects []profile.Project) string {
	var sb strings.Builder

	sb.WriteString("You are an ATS optimization assistant. Generate a tailored one-page LaTeX resume.\n\n")

	fmt.Fprintf(&sb, "JOB TITLE: %s\n", job.Title)
	fmt.Fprintf(&sb, "COMPANY: %s\n", job.Company)
	fmt.Fprintf(&sb, "JOB DESCRIPTION:\n%s\n\n", truncate(job.Description, maxDescriptionChars))

	fmt.Fprintf(&sb, "CANDIDATE: %s\n", p.Name)
	if p.Email != "" || p.Phone != "" {
		fmt.Fprintf(&sb, "CONTACT: %s %s\n", p.Email, p.Phone)
	}
	if p.Summary != "" {
		fmt.Fprintf(&sb, "SUMMARY: %s\n", p.Summary)
	}
	fmt.Fprintf(&sb, "SKILLS: %s\n", strings.Join(p.DedupedSkills(), ", "))

	if len(p.Education) > 0 {
		sb.WriteString("EDUCATION:\n")
		for _, e := range p.Education {
			fmt.Fprintf(&sb, "- %s in %s, %s (%s - %s)\n", e.Degree, e.Field, e.Institution, e.StartDate, e.EndDate)
		}
	}

	if len(p.Experience) > 0 {
		sb.WriteString("EXPERIENCE:\n")
		for _, e := range p.Experience {
			fmt.Fprintf(&sb, "- %s at %s (%s - %s): %s\n", e.Role, e.Company, e.StartDate, e.EndDate, e.Description)
		}
	}

	if len(p.Certifications) > 0 {
		sb.WriteString("CERTIFICATIONS:\n")
		for _, c := range p.Certifications {
			fmt.Fprintf(&sb, "- %s (%s)\n", c.Name, c.Issuer)
		}
	}

	if len(p.Achievements) > 0 {
		fmt.Fprintf(&sb, "ACHIEVEMENTS: %s\n", strings.Join(p.Achievements, "; "))
	}

	if len(projects) > 0 {
		sb.WriteString("PROJECTS:\n")
		for _, pr := range projects {
			fmt.Fprintf(&sb, "- %s: %s\n", pr.Name, strings.Join(pr.TopBullets(), "; "))
		}
	}

	sb.WriteString("\nRules:\n")
	sb.WriteString("1. Use ONLY the candidate data provided above. Do not invent skills, employers or dates.\n")
	sb.WriteString("2. Preserve the structural skeleton of a standard LaTeX resume: \\documentclass preamble, ")
	sb.WriteString("\\begin{document} ... \\end{document}, one section per profile area.\n")
	sb.WriteString("3. Emphasize the skills and experience most relevant to the job description.\n")
	sb.WriteString("4. Output raw LaTeX only, no commentary.\n")

	return sb.String()
}

func truncate(text string, limit int) string {
	if len(text) <= limit {
		return text
	}
	return text[:limit]
}
