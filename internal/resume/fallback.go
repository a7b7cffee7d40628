package resume

import (
	"strings"
	"text/template"

	"github.com/jonathan/resume-genie/internal/db"
	"github.com/jonathan/resume-genie/internal/latex"
	"github.com/jonathan/resume-genie/internal/profile"
)

// fallbackTemplate renders the offline resume document. Section order is
// fixed: target/contact, summary, skills, education, experience, projects,
// certifications, achievements. Every populated profile field appears.
const fallbackTemplate = `\documentclass[11pt]{article}
\usepackage[margin=0.75in]{geometry}
\usepackage{enumitem}
\pagestyle{empty}
\begin{document}

\begin{center}
{\LARGE \textbf{ {{- escape .Profile.Name }} }}\\[2pt]
Target: {{ escape .Job.Title }}{{ if .Job.Company }} at {{ escape .Job.Company }}{{ end }}\\
{{ escape .Profile.Email }}{{ if .Profile.Phone }} \textbar{} {{ escape .Profile.Phone }}{{ end }}{{ if .Profile.Location }} \textbar{} {{ escape .Profile.Location }}{{ end }}
\end{center}

{{ if .Profile.Summary }}\section*{Summary}
{{ escape .Profile.Summary }}
{{ end }}
{{- if .Skills }}\section*{Skills}
{{ joinEscaped .Skills ", " }}
{{ end }}
{{- if .Profile.Education }}\section*{Education}
\begin{itemize}[leftmargin=*]
{{- range .Profile.Education }}
\item \textbf{ {{- escape .Degree }}{{ if .Field }}, {{ escape .Field }}{{ end }} } --- {{ escape .Institution }}{{ if .StartDate }} ({{ escape .StartDate }} -- {{ escape .EndDate }}){{ end }}{{ if .GPA }}, GPA {{ escape .GPA }}{{ end }}
{{- end }}
\end{itemize}
{{ end }}
{{- if .Profile.Experience }}\section*{Experience}
\begin{itemize}[leftmargin=*]
{{- range .Profile.Experience }}
\item \textbf{ {{- escape .Role }} } at {{ escape .Company }}{{ if .StartDate }} ({{ escape .StartDate }} -- {{ escape .EndDate }}){{ end }}{{ if .Description }}: {{ escape .Description }}{{ end }}
{{- end }}
\end{itemize}
{{ end }}
{{- if .Projects }}\section*{Relevant Projects}
\begin{itemize}[leftmargin=*]
{{- range .Projects }}
\item \textbf{ {{- escape .Name }} }{{ range .TopBullets }} --- {{ escape . }}{{ end }}
{{- end }}
\end{itemize}
{{ end }}
{{- if .Profile.Certifications }}\section*{Certifications}
\begin{itemize}[leftmargin=*]
{{- range .Profile.Certifications }}
\item {{ escape .Name }}{{ if .Issuer }} ({{ escape .Issuer }}){{ end }}
{{- end }}
\end{itemize}
{{ end }}
{{- if .Profile.Achievements }}\section*{Achievements}
\begin{itemize}[leftmargin=*]
{{- range .Profile.Achievements }}
\item {{ escape . }}
{{- end }}
\end{itemize}
{{ end }}
\end{document}
`

var fallbackTmpl = template.Must(template.New("fallback").Funcs(template.FuncMap{
	"escape": latex.Escape,
	"joinEscaped": func(items []string, sep string) string {
		escaped := make([]string, len(items))
		for i, s := range items {
			escaped[i] = latex.Escape(s)
		}
		return strings.Join(escaped, sep)
	},
}).Parse(fallbackTemplate))

// fallbackData is the template context for offline rendering.
type fallbackData struct {
	Profile  *profile.Profile
	Job      *db.Job
	Skills   []string
	Projects []profile.Project
}

// RenderFallback deterministically renders a resume from profile data
// alone. It has no external dependencies and always succeeds.
func RenderFallback(p *profile.Profile, job *db.Job, projects []profile.Project) string {
	var sb strings.Builder
	err := fallbackTmpl.Execute(&sb, fallbackData{
		Profile:  p,
		Job:      job,
		Skills:   p.DedupedSkills(),
		Projects: projects,
	})
	if err != nil {
		// The template is static and the data plain structs; execution
		// cannot fail in practice. Keep the guarantee anyway.
		return "\\documentclass{article}\n\\begin{document}\nResume for " +
			latex.Escape(p.Name) + "\n\\end{document}\n"
	}
	return sb.String()
}
