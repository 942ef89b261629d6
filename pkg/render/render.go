package render

import (
	"os"
	"strings"
	"text/template"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/neosetup/pkg/errors"
	"github.com/arthur-debert/neosetup/pkg/logging"
	"github.com/arthur-debert/neosetup/pkg/registry"
	"github.com/arthur-debert/neosetup/pkg/resolver"
	"github.com/arthur-debert/neosetup/pkg/types"
)

// GeneratedMarker appears in the header comment of every rendered artifact.
// The apply step uses it to tell managed files from hand-written ones.
const GeneratedMarker = "Generated by neosetup"

// Artifact is one generated configuration file, ready to be written.
type Artifact struct {
	// Section names the configuration section that produced the file.
	Section string

	// File is the artifact's base file name, e.g. ".tmux.conf".
	File string

	// Mode is the permission the file should be written with.
	Mode os.FileMode

	// Content is the full file content.
	Content string
}

// SectionRenderer generates one artifact from one configuration section.
type SectionRenderer interface {
	// Section is the configuration section this renderer consumes.
	Section() string

	// File is the default artifact file name.
	File() string

	// Render produces the artifact content for a merged section.
	Render(op resolver.Metadata, section map[string]interface{}) (string, error)
}

// renderers holds every known SectionRenderer, keyed by section name.
var renderers = registry.New[SectionRenderer]()

func register(r SectionRenderer) {
	registry.MustRegister(renderers, r.Section(), r)
}

// Sections returns the section names that have a renderer, sorted.
func Sections() []string {
	return renderers.List()
}

// Options contains configuration for a Renderer.
type Options struct {
	// Files overrides the artifact file name per section. Sections not
	// present keep their renderer's default.
	Files map[string]string

	Logger zerolog.Logger
}

// Renderer generates artifacts from resolved operator configurations.
type Renderer struct {
	files  map[string]string
	logger zerolog.Logger
}

// New creates a new renderer instance
func New(opts Options) *Renderer {
	logger := opts.Logger
	if logger.GetLevel() == zerolog.Disabled {
		logger = logging.GetLogger("render")
	}

	return &Renderer{
		files:  opts.Files,
		logger: logger,
	}
}

// Render generates an artifact for every section of the resolved
// configuration that has a renderer, sorted by section name. Sections
// without a renderer are skipped.
func (r *Renderer) Render(res *resolver.Resolved) ([]Artifact, error) {
	var artifacts []Artifact
	for _, section := range renderers.List() {
		if _, ok := res.Sections[section]; !ok {
			continue
		}
		artifact, err := r.RenderSection(res, section)
		if err != nil {
			return nil, err
		}
		artifacts = append(artifacts, *artifact)
	}

	r.logger.Debug().
		Str("operator", res.Operator.Name).
		Int("artifacts", len(artifacts)).
		Msg("Rendered artifacts")
	return artifacts, nil
}

// RenderSection generates the artifact for a single section. The section
// must have a renderer; it may be named in section or document form
// ("shell" or "shell_config").
func (r *Renderer) RenderSection(res *resolver.Resolved, section string) (*Artifact, error) {
	section = normalizeSection(section)

	sr, err := renderers.Get(section)
	if err != nil {
		return nil, errors.Newf(errors.ErrNotFound,
			"no renderer for section '%s' (have: %s)", section, strings.Join(renderers.List(), ", "))
	}

	content, err := sr.Render(res.Operator, res.Section(section))
	if err != nil {
		return nil, err
	}

	file := r.files[section]
	if file == "" {
		file = sr.File()
	}

	r.logger.Debug().
		Str("operator", res.Operator.Name).
		Str("section", section).
		Str("file", file).
		Msg("Rendered section")

	return &Artifact{
		Section: section,
		File:    file,
		Mode:    0o644,
		Content: content,
	}, nil
}

func normalizeSection(name string) string {
	return strings.TrimSuffix(name, types.SectionSuffix)
}

// mustTemplate parses one embedded artifact template. The templates ship
// inside the binary, so a parse failure is a build defect.
func mustTemplate(name, text string) *template.Template {
	return template.Must(template.New(name).Funcs(template.FuncMap{
		"join":       strings.Join,
		"shellQuote": shellQuote,
	}).Parse(text))
}

// shellQuote single-quotes a value for shell consumption.
func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
