package schema

import (
	"fmt"
)

// Severity is the weight of a validation finding.
type Severity string

const (
	// SeverityError marks a violation that makes the document unusable.
	SeverityError Severity = "error"

	// SeverityWarning marks something worth fixing that does not block
	// resolution.
	SeverityWarning Severity = "warning"

	// SeverityInfo marks advisory notes.
	SeverityInfo Severity = "info"
)

// Finding is a single validation result. Path references the concrete
// document field ("operator_name", "shell_config.preferred_shell").
type Finding struct {
	Path       string   `json:"field_path" yaml:"field_path"`
	Severity   Severity `json:"severity" yaml:"severity"`
	Message    string   `json:"message" yaml:"message"`
	Suggestion string   `json:"suggestion,omitempty" yaml:"suggestion,omitempty"`
}

// ErrorFindings returns only the error-severity findings.
func ErrorFindings(findings []Finding) []Finding {
	var out []Finding
	for _, f := range findings {
		if f.Severity == SeverityError {
			out = append(out, f)
		}
	}
	return out
}

// HasErrors reports whether any finding is an error.
func HasErrors(findings []Finding) bool {
	for _, f := range findings {
		if f.Severity == SeverityError {
			return true
		}
	}
	return false
}

// ValidationError reports a document that failed validation. Findings holds
// the error-severity findings only; warnings and info travel with successful
// results instead.
type ValidationError struct {
	Operator string
	Findings []Finding
}

func (e *ValidationError) Error() string {
	if len(e.Findings) == 0 {
		return fmt.Sprintf("operator %q failed validation", e.Operator)
	}
	return fmt.Sprintf("operator %q failed validation with %d error(s): %s: %s",
		e.Operator, len(e.Findings), e.Findings[0].Path, e.Findings[0].Message)
}
