package profile

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// profileSchema constrains the shape of the profile document. The schema is
// deliberately permissive about optional fields; it exists to reject
// structurally broken documents before they replace the current one.
const profileSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "name": {"type": "string"},
    "email": {"type": "string"},
    "phone": {"type": "string"},
    "location": {"type": "string"},
    "summary": {"type": "string"},
    "skills": {"type": "array", "items": {"type": "string"}},
    "years_experience": {"type": "integer", "minimum": 0},
    "education": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "degree": {"type": "string", "minLength": 1},
          "field": {"type": "string"},
          "institution": {"type": "string", "minLength": 1},
          "start_date": {"type": "string"},
          "end_date": {"type": "string"},
          "location": {"type": "string"},
          "gpa": {"type": "string"}
        },
        "required": ["degree", "institution"]
      }
    },
    "experience": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "role": {"type": "string", "minLength": 1},
          "company": {"type": "string", "minLength": 1},
          "start_date": {"type": "string"},
          "end_date": {"type": "string"},
          "description": {"type": "string"}
        },
        "required": ["role", "company"]
      }
    },
    "certifications": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "name": {"type": "string"},
          "issuer": {"type": "string"},
          "date": {"type": "string"},
          "link": {"type": "string"}
        },
        "required": ["name"]
      }
    },
    "achievements": {"type": "array", "items": {"type": "string"}},
    "projects": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "name": {"type": "string"},
          "description": {"type": "string"},
          "language": {"type": "string"},
          "stars": {"type": "integer"},
          "url": {"type": "string"},
          "bullets": {"type": "array", "items": {"type": "string"}, "maxItems": 2}
        },
        "required": ["name"]
      }
    },
    "salary_expectation": {"type": "string"},
    "work_auth": {"type": "string"},
    "github_username": {"type": "string"}
  }
}`

// ValidationError carries the individual schema violations found in a
// profile document.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid profile document: %s", strings.Join(e.Problems, "; "))
}

// ValidateDocument checks a JSON profile document against the embedded schema.
func ValidateDocument(doc []byte) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(profileSchema),
		gojsonschema.NewBytesLoader(doc),
	)
	if err != nil {
		return fmt.Errorf("failed to validate profile document: %w", err)
	}

	if !result.Valid() {
		problems := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			problems = append(problems, fmt.Sprintf("%s: %s", desc.Field(), desc.Description()))
		}
		return &ValidationError{Problems: problems}
	}
	return nil
}
