// pkg/report/resolved_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Test resolved-configuration writers

package report_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/arthur-debert/neosetup/pkg/errors"
	"github.com/arthur-debert/neosetup/pkg/report"
	"github.com/arthur-debert/neosetup/pkg/resolver"
	"github.com/arthur-debert/neosetup/pkg/schema"
)

func sampleResolved() *resolver.Resolved {
	return &resolver.Resolved{
		Operator: resolver.Metadata{
			Name:        "jiveturkey",
			Version:     "2.1.0",
			Description: "Full-stack development environment",
		},
		Theme:      "matrix-theme",
		Chain:      []string{"base", "matrix", "jiveturkey"},
		ThemeChain: []string{"matrix-theme"},
		Sections: map[string]map[string]interface{}{
			"shell": {
				"preferred_shell": "zsh",
				"aliases":         map[string]interface{}{"gs": "git status"},
			},
			"tmux": {
				"prefix": "C-a",
			},
		},
		Findings: []schema.Finding{
			{
				Path:     "shell_config.oh_my_zsh_plugins",
				Severity: schema.SeverityWarning,
				Message:  "Large number of plugins (16) may slow shell startup",
			},
		},
	}
}

func TestWriteResolvedText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, report.WriteResolved(&buf, report.FormatText, sampleResolved()))

	out := buf.String()
	assert.Contains(t, out, "jiveturkey 2.1.0 Full-stack development environment")
	assert.Contains(t, out, "chain: base -> matrix -> jiveturkey")
	assert.Contains(t, out, "theme: matrix-theme")
	assert.Contains(t, out, "preferred_shell: zsh")
	assert.Contains(t, out, "findings: 1 warning")
	assert.Contains(t, out, "  warning: shell_config.oh_my_zsh_plugins:")
}

func TestWriteResolvedTextWithoutTheme(t *testing.T) {
	res := sampleResolved()
	res.Theme = ""
	res.ThemeChain = nil
	res.Findings = nil

	var buf bytes.Buffer
	require.NoError(t, report.WriteResolved(&buf, report.FormatText, res))

	out := buf.String()
	assert.NotContains(t, out, "theme:")
	assert.NotContains(t, out, "findings:")
}

func TestWriteResolvedJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, report.WriteResolved(&buf, report.FormatJSON, sampleResolved()))

	var decoded resolver.Resolved
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))

	assert.Equal(t, "jiveturkey", decoded.Operator.Name)
	assert.Equal(t, []string{"base", "matrix", "jiveturkey"}, decoded.Chain)
	assert.Equal(t, "zsh", decoded.Sections["shell"]["preferred_shell"])
}

func TestWriteResolvedYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, report.WriteResolved(&buf, report.FormatYAML, sampleResolved()))

	var decoded resolver.Resolved
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))

	assert.Equal(t, "matrix-theme", decoded.Theme)
	assert.Equal(t, "C-a", decoded.Sections["tmux"]["prefix"])
}

func TestWriteResolvedRejectsJUnit(t *testing.T) {
	var buf bytes.Buffer
	err := report.WriteResolved(&buf, report.FormatJUnit, sampleResolved())
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
	assert.Contains(t, err.Error(), "junit format only applies to validation reports")
}
