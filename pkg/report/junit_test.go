// pkg/report/junit_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Test JUnit XML rendering of validation reports

package report_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/beevik/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/neosetup/pkg/report"
	"github.com/arthur-debert/neosetup/pkg/schema"
)

func TestWriteReportsJUnit(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, report.WriteReports(&buf, report.FormatJUnit, sampleReports()))

	assert.True(t, strings.HasPrefix(buf.String(), "<?xml"))

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(buf.Bytes()))

	suites := doc.FindElements("//testsuite")
	require.Len(t, suites, 2)

	clean := suites[0]
	assert.Equal(t, "neosetup.matrix", clean.SelectAttrValue("name", ""))
	assert.Equal(t, "1", clean.SelectAttrValue("tests", ""))
	assert.Equal(t, "0", clean.SelectAttrValue("failures", ""))
	assert.Equal(t, "0", clean.SelectAttrValue("skipped", ""))

	// A clean operator still carries one passing case.
	cases := clean.SelectElements("testcase")
	require.Len(t, cases, 1)
	assert.Equal(t, "matrix", cases[0].SelectAttrValue("classname", ""))
	assert.Equal(t, "schema", cases[0].SelectAttrValue("name", ""))
	assert.Nil(t, cases[0].SelectElement("failure"))

	broken := suites[1]
	assert.Equal(t, "neosetup.jiveturkey", broken.SelectAttrValue("name", ""))
	assert.Equal(t, "2", broken.SelectAttrValue("tests", ""))
	assert.Equal(t, "1", broken.SelectAttrValue("failures", ""))
	assert.Equal(t, "1", broken.SelectAttrValue("skipped", ""))

	cases = broken.SelectElements("testcase")
	require.Len(t, cases, 2)

	assert.Equal(t, "operator_name", cases[0].SelectAttrValue("name", ""))
	failure := cases[0].SelectElement("failure")
	require.NotNil(t, failure)
	assert.Equal(t, "Required field 'operator_name' is missing",
		failure.SelectAttrValue("message", ""))
	assert.Equal(t, "error", failure.SelectAttrValue("type", ""))

	skipped := cases[1].SelectElement("skipped")
	require.NotNil(t, skipped)
	assert.Equal(t, "warning: Large number of plugins (16) may slow shell startup",
		skipped.SelectAttrValue("message", ""))
	assert.Nil(t, cases[1].SelectElement("failure"))
}

func TestWriteReportsJUnitFailureSuggestion(t *testing.T) {
	reports := []report.Report{
		report.NewReport("broken", []schema.Finding{
			{
				Path:       "extends",
				Severity:   schema.SeverityError,
				Message:    "Operator cannot extend itself",
				Suggestion: "Remove the self-reference from 'extends'",
			},
		}),
	}

	var buf bytes.Buffer
	require.NoError(t, report.WriteReports(&buf, report.FormatJUnit, reports))

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(buf.Bytes()))

	failure := doc.FindElement("//testcase/failure")
	require.NotNil(t, failure)
	assert.Equal(t, "Remove the self-reference from 'extends'", failure.Text())
}
