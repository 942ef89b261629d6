package report

import (
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/arthur-debert/neosetup/pkg/errors"
	"github.com/arthur-debert/neosetup/pkg/resolver"
)

// WriteResolved writes a resolved operator configuration in the requested
// format.
func WriteResolved(w io.Writer, format Format, res *resolver.Resolved) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, res)
	case FormatYAML:
		return writeYAML(w, res)
	case FormatJUnit:
		return errors.New(errors.ErrInvalidInput,
			"junit format only applies to validation reports")
	case FormatTerminal:
		return writeResolvedText(w, res, true)
	default:
		return writeResolvedText(w, res, false)
	}
}

func writeResolvedText(w io.Writer, res *resolver.Resolved, styled bool) error {
	heading := res.Operator.Name
	if res.Operator.Version != "" {
		heading += " " + res.Operator.Version
	}
	if styled {
		heading = TitleStyle.Render(heading)
	}
	if res.Operator.Description != "" {
		desc := res.Operator.Description
		if styled {
			desc = MutedStyle.Render(desc)
		}
		heading += " " + desc
	}
	if _, err := fmt.Fprintln(w, heading); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(w, "chain: %s\n", strings.Join(res.Chain, " -> ")); err != nil {
		return err
	}
	if res.Theme != "" {
		if _, err := fmt.Fprintf(w, "theme: %s\n", strings.Join(res.ThemeChain, " -> ")); err != nil {
			return err
		}
	}

	if len(res.Sections) > 0 {
		data, err := yaml.Marshal(res.Sections)
		if err != nil {
			return errors.Wrap(err, errors.ErrInternal, "failed to encode sections")
		}
		if _, err := fmt.Fprintf(w, "\n%s", data); err != nil {
			return err
		}
	}

	if len(res.Findings) > 0 {
		if _, err := fmt.Fprintf(w, "\nfindings: %s\n", summarizeFindings(res.Findings)); err != nil {
			return err
		}
		for _, f := range res.Findings {
			for _, line := range findingLines(f, styled) {
				if _, err := fmt.Fprintln(w, line); err != nil {
					return err
				}
			}
		}
	}
	return nil
}
