// Package report presents resolution results and validation findings.
//
// It supports rich terminal output (lipgloss, severity-colored), plain
// text, JSON and YAML for scripting, and JUnit XML so CI systems can
// ingest validation runs. Format detection honors NO_COLOR, pipes, and
// the terminal's color capability.
package report
