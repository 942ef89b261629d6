package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/arthur-debert/neosetup/pkg/errors"
	"github.com/arthur-debert/neosetup/pkg/schema"
)

// Report is the validation outcome for one operator.
type Report struct {
	Operator string           `json:"operator" yaml:"operator"`
	Valid    bool             `json:"valid" yaml:"valid"`
	Findings []schema.Finding `json:"findings" yaml:"findings"`
}

// NewReport builds a Report; an operator is valid when no finding is an
// error.
func NewReport(operator string, findings []schema.Finding) Report {
	return Report{
		Operator: operator,
		Valid:    !schema.HasErrors(findings),
		Findings: findings,
	}
}

// HasErrors reports whether any report carries an error finding.
func HasErrors(reports []Report) bool {
	for _, r := range reports {
		if !r.Valid {
			return true
		}
	}
	return false
}

// WriteReports writes validation reports in the requested format.
func WriteReports(w io.Writer, format Format, reports []Report) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, reports)
	case FormatYAML:
		return writeYAML(w, reports)
	case FormatJUnit:
		return writeJUnit(w, reports)
	case FormatTerminal:
		return writeReportsText(w, reports, true)
	default:
		return writeReportsText(w, reports, false)
	}
}

func writeJSON(w io.Writer, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.Wrap(err, errors.ErrInternal, "failed to encode JSON output")
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

func writeYAML(w io.Writer, v interface{}) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return errors.Wrap(err, errors.ErrInternal, "failed to encode YAML output")
	}
	return enc.Close()
}

func writeReportsText(w io.Writer, reports []Report, styled bool) error {
	for _, report := range reports {
		if err := writeReportText(w, report, styled); err != nil {
			return err
		}
	}

	if len(reports) > 1 {
		withErrors := 0
		for _, r := range reports {
			if !r.Valid {
				withErrors++
			}
		}
		summary := fmt.Sprintf("%d operators checked, %d with errors", len(reports), withErrors)
		if styled {
			summary = MutedStyle.Render(summary)
		}
		if _, err := fmt.Fprintln(w, summary); err != nil {
			return err
		}
	}
	return nil
}

func writeReportText(w io.Writer, report Report, styled bool) error {
	heading := report.Operator
	if styled {
		heading = TitleStyle.Render(heading)
	}

	if len(report.Findings) == 0 {
		ok := "ok"
		if styled {
			ok = SuccessStyle.Render("✓ ok")
		}
		_, err := fmt.Fprintf(w, "%s: %s\n", heading, ok)
		return err
	}

	if _, err := fmt.Fprintf(w, "%s: %s\n", heading, summarizeFindings(report.Findings)); err != nil {
		return err
	}

	for _, f := range report.Findings {
		for _, line := range findingLines(f, styled) {
			if _, err := fmt.Fprintln(w, line); err != nil {
				return err
			}
		}
	}
	return nil
}

// findingLines renders one finding as indented output lines.
func findingLines(f schema.Finding, styled bool) []string {
	var line string
	if styled {
		style := severityStyle(f.Severity)
		line = fmt.Sprintf("  %s %s: %s",
			style.Render(severityIndicator(f.Severity)),
			PathStyle.Render(f.Path),
			f.Message)
	} else {
		line = fmt.Sprintf("  %s: %s: %s", f.Severity, f.Path, f.Message)
	}

	lines := []string{line}
	if f.Suggestion != "" {
		suggestion := "      " + f.Suggestion
		if styled {
			suggestion = MutedStyle.Render(suggestion)
		}
		lines = append(lines, suggestion)
	}
	return lines
}

// summarizeFindings renders "2 errors, 1 warning" style counts.
func summarizeFindings(findings []schema.Finding) string {
	counts := map[schema.Severity]int{}
	for _, f := range findings {
		counts[f.Severity]++
	}

	var parts []string
	for _, sev := range []schema.Severity{schema.SeverityError, schema.SeverityWarning, schema.SeverityInfo} {
		n := counts[sev]
		switch {
		case n == 1:
			parts = append(parts, fmt.Sprintf("1 %s", sev))
		case n > 1:
			parts = append(parts, fmt.Sprintf("%d %ss", n, sev))
		}
	}
	return strings.Join(parts, ", ")
}
