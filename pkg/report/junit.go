package report

import (
	"io"
	"strconv"

	"github.com/beevik/etree"

	"github.com/arthur-debert/neosetup/pkg/errors"
	"github.com/arthur-debert/neosetup/pkg/schema"
)

// writeJUnit renders validation reports as JUnit XML. Each operator maps
// to a testsuite; each finding to a testcase. Error findings become
// failures, warnings and info become skipped cases so CI surfaces them
// without failing the build. A clean operator contributes one passing
// "schema" case so the suite is never empty.
func writeJUnit(w io.Writer, reports []Report) error {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	suites := doc.CreateElement("testsuites")

	for _, report := range reports {
		suite := suites.CreateElement("testsuite")
		suite.CreateAttr("name", "neosetup."+report.Operator)

		failures := 0
		skipped := 0
		for _, f := range report.Findings {
			if f.Severity == schema.SeverityError {
				failures++
			} else {
				skipped++
			}
		}

		tests := len(report.Findings)
		if tests == 0 {
			tests = 1
		}
		suite.CreateAttr("tests", strconv.Itoa(tests))
		suite.CreateAttr("failures", strconv.Itoa(failures))
		suite.CreateAttr("skipped", strconv.Itoa(skipped))

		if len(report.Findings) == 0 {
			tc := suite.CreateElement("testcase")
			tc.CreateAttr("classname", report.Operator)
			tc.CreateAttr("name", "schema")
			continue
		}

		for _, f := range report.Findings {
			tc := suite.CreateElement("testcase")
			tc.CreateAttr("classname", report.Operator)
			tc.CreateAttr("name", f.Path)

			if f.Severity == schema.SeverityError {
				failure := tc.CreateElement("failure")
				failure.CreateAttr("message", f.Message)
				failure.CreateAttr("type", string(f.Severity))
				if f.Suggestion != "" {
					failure.SetText(f.Suggestion)
				}
			} else {
				skip := tc.CreateElement("skipped")
				skip.CreateAttr("message", string(f.Severity)+": "+f.Message)
			}
		}
	}

	doc.Indent(2)
	if _, err := doc.WriteTo(w); err != nil {
		return errors.Wrap(err, errors.ErrInternal, "failed to write JUnit output")
	}
	return nil
}
