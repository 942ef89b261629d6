// pkg/report/format_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Test format parsing and detection

package report_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/neosetup/pkg/report"
)

func TestFormatString(t *testing.T) {
	tests := []struct {
		format   report.Format
		expected string
	}{
		{report.FormatAuto, "auto"},
		{report.FormatTerminal, "term"},
		{report.FormatText, "text"},
		{report.FormatJSON, "json"},
		{report.FormatYAML, "yaml"},
		{report.FormatJUnit, "junit"},
		{report.Format(999), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.format.String())
		})
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected report.Format
		wantErr  bool
	}{
		{name: "parse auto", input: "auto", expected: report.FormatAuto},
		{name: "parse empty string as auto", input: "", expected: report.FormatAuto},
		{name: "parse term", input: "term", expected: report.FormatTerminal},
		{name: "parse terminal", input: "terminal", expected: report.FormatTerminal},
		{name: "parse text", input: "text", expected: report.FormatText},
		{name: "parse plain", input: "plain", expected: report.FormatText},
		{name: "parse json", input: "json", expected: report.FormatJSON},
		{name: "parse yaml", input: "yaml", expected: report.FormatYAML},
		{name: "parse yml", input: "yml", expected: report.FormatYAML},
		{name: "parse junit", input: "junit", expected: report.FormatJUnit},
		{name: "parse uppercase", input: "JSON", expected: report.FormatJSON},
		{name: "parse invalid format", input: "invalid", expected: report.FormatAuto, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			format, err := report.ParseFormat(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "unknown format")
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.expected, format)
			}
		})
	}
}

func TestDetectFormatNoColor(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	// A pipe is enough here: NO_COLOR short-circuits before any
	// terminal probing.
	r, w, err := os.Pipe()
	require.NoError(t, err)
	defer func() { _ = r.Close(); _ = w.Close() }()

	assert.Equal(t, report.FormatText, report.DetectFormat(w))
}

func TestDetectFormatPipe(t *testing.T) {
	t.Setenv("NO_COLOR", "")

	r, w, err := os.Pipe()
	require.NoError(t, err)
	defer func() { _ = r.Close(); _ = w.Close() }()

	// A pipe is not a terminal, so rich output is off.
	assert.Equal(t, report.FormatText, report.DetectFormat(w))
}

func TestResolveKeepsExplicitFormat(t *testing.T) {
	r, w, err := os.Pipe()
	require.NoError(t, err)
	defer func() { _ = r.Close(); _ = w.Close() }()

	assert.Equal(t, report.FormatJSON, report.Resolve(report.FormatJSON, w))
	assert.Equal(t, report.FormatText, report.Resolve(report.FormatAuto, w))
}
