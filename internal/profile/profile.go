// Package profile manages the candidate master profile document.
package profile

// Profile is the process-wide candidate document read for every generation
// request. Skills keep their authored order and may contain duplicates;
// consumers that present skills should use DedupedSkills.
type Profile struct {
	Name            string          `json:"name,omitempty"`
	Email           string          `json:"email,omitempty"`
	Phone           string          `json:"phone,omitempty"`
	Location        string          `json:"location,omitempty"`
	Summary         string          `json:"summary,omitempty"`
	Skills          []string        `json:"skills,omitempty"`
	YearsExperience int             `json:"years_experience,omitempty"`
	Education       []Education     `json:"education,omitempty"`
	Experience      []Experience    `json:"experience,omitempty"`
	Certifications  []Certification `json:"certifications,omitempty"`
	Achievements    []string        `json:"achievements,omitempty"`
	Projects        []Project       `json:"projects,omitempty"`
	SalaryExpect    string          `json:"salary_expectation,omitempty"`
	WorkAuth        string          `json:"work_auth,omitempty"`
	GitHubUsername  string          `json:"github_username,omitempty"`
}

// Education is a single education entry.
type Education struct {
	Degree      string `json:"degree"`
	Field       string `json:"field,omitempty"`
	Institution string `json:"institution"`
	StartDate   string `json:"start_date,omitempty"`
	EndDate     string `json:"end_date,omitempty"`
	Location    string `json:"location,omitempty"`
	GPA         string `json:"gpa,omitempty"`
}

// Experience is a single work-experience entry.
type Experience struct {
	Role        string `json:"role"`
	Company     string `json:"company"`
	StartDate   string `json:"start_date,omitempty"`
	EndDate     string `json:"end_date,omitempty"`
	Description string `json:"description,omitempty"`
}

// Certification is a single certification entry.
type Certification struct {
	Name   string `json:"name"`
	Issuer string `json:"issuer,omitempty"`
	Date   string `json:"date,omitempty"`
	Link   string `json:"link,omitempty"`
}

// Project is a candidate project, either authored directly or imported from
// the GitHub scanner. At most two bullets are rendered per project.
type Project struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Language    string   `json:"language,omitempty"`
	Stars       int      `json:"stars,omitempty"`
	URL         string   `json:"url,omitempty"`
	Bullets     []string `json:"bullets,omitempty"`
}

// maxProjectBullets caps the bullets rendered for one project.
const maxProjectBullets = 2

// DedupedSkills returns the skill list with duplicates removed,
// preserving first-seen order.
func (p *Profile) DedupedSkills() []string {
	seen := make(map[string]bool, len(p.Skills))
	out := []string{}
	for _, s := range p.Skills {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}

// TopBullets returns at most two bullet points for the project, falling
// back to the description when no bullets were authored.
func (pr Project) TopBullets() []string {
	if len(pr.Bullets) > maxProjectBullets {
		return pr.Bullets[:maxProjectBullets]
	}
	if len(pr.Bullets) == 0 && pr.Description != "" {
		return []string{pr.Description}
	}
	return pr.Bullets
}
