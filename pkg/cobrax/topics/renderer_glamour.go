package topics

import (
	"github.com/charmbracelet/glamour"
)

// GlamourRenderer renders markdown topics with the glamour library.
// Non-markdown content passes through unchanged.
type GlamourRenderer struct {
	// Style is a glamour style name ("dark", "light", "notty") or a path
	// to a custom style file. Empty or "auto" detects from the terminal.
	Style string

	// Width wraps output at the given column. Zero leaves wrapping to
	// glamour.
	Width int
}

// NewGlamourRenderer returns a renderer with terminal auto-detection.
func NewGlamourRenderer() *GlamourRenderer {
	return &GlamourRenderer{Style: "auto"}
}

// Render implements Renderer. Rendering failures fall back to the raw
// content rather than erroring out of a help command.
func (r *GlamourRenderer) Render(content string, format string) string {
	if format != ".md" {
		return content
	}

	var options []glamour.TermRendererOption
	if r.Style != "" && r.Style != "auto" {
		options = append(options, glamour.WithStylePath(r.Style))
	} else {
		options = append(options, glamour.WithAutoStyle())
	}
	if r.Width > 0 {
		options = append(options, glamour.WithWordWrap(r.Width))
	}

	renderer, err := glamour.NewTermRenderer(options...)
	if err != nil {
		return content
	}

	rendered, err := renderer.Render(content)
	if err != nil {
		return content
	}
	return rendered
}
