package report

import (
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"

	"github.com/arthur-debert/neosetup/pkg/errors"
)

// Format represents the output format type
type Format int

const (
	// FormatAuto picks a format from the terminal's capabilities.
	FormatAuto Format = iota
	// FormatTerminal renders rich terminal output with colors and styling.
	FormatTerminal
	// FormatText renders plain text output without any styling.
	FormatText
	// FormatJSON renders machine-readable JSON output.
	FormatJSON
	// FormatYAML renders YAML output.
	FormatYAML
	// FormatJUnit renders validation findings as JUnit XML for CI.
	FormatJUnit
)

// String returns the string representation of the format
func (f Format) String() string {
	switch f {
	case FormatAuto:
		return "auto"
	case FormatTerminal:
		return "term"
	case FormatText:
		return "text"
	case FormatJSON:
		return "json"
	case FormatYAML:
		return "yaml"
	case FormatJUnit:
		return "junit"
	default:
		return "unknown"
	}
}

// ParseFormat parses a string into a Format value
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "auto", "":
		return FormatAuto, nil
	case "term", "terminal":
		return FormatTerminal, nil
	case "text", "plain":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "junit", "xml":
		return FormatJUnit, nil
	default:
		return FormatAuto, errors.Newf(errors.ErrInvalidInput, "unknown format: %s", s)
	}
}

// DetectFormat determines the appropriate output format from the
// environment and the terminal's capabilities.
func DetectFormat(output *os.File) Format {
	// Check if NO_COLOR is set
	if os.Getenv("NO_COLOR") != "" {
		return FormatText
	}

	// Check if we're being piped or redirected
	if !isatty.IsTerminal(output.Fd()) && !isatty.IsCygwinTerminal(output.Fd()) {
		return FormatText
	}

	// Check terminal color support
	if termenv.ColorProfile() == termenv.Ascii {
		return FormatText
	}

	return FormatTerminal
}

// Resolve replaces FormatAuto with the detected format for output.
func Resolve(f Format, output *os.File) Format {
	if f == FormatAuto {
		return DetectFormat(output)
	}
	return f
}
