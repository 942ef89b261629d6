package render

import (
	"bytes"
	_ "embed"

	"github.com/arthur-debert/neosetup/pkg/errors"
	"github.com/arthur-debert/neosetup/pkg/resolver"
)

//go:embed templates/Brewfile.tmpl
var toolsTemplate string

var toolsTmpl = mustTemplate("Brewfile", toolsTemplate)

// Tool is one entry of a tools section list.
type Tool struct {
	Name        string `mapstructure:"name"`
	Description string `mapstructure:"description"`
}

// ToolsConfig is the typed view of a resolved tools section.
type ToolsConfig struct {
	EssentialTools   []Tool `mapstructure:"essential_tools"`
	ModernCLITools   []Tool `mapstructure:"modern_cli_tools"`
	DevelopmentTools []Tool `mapstructure:"development_tools"`
}

type toolGroup struct {
	Title string
	Tools []Tool
}

type toolsData struct {
	Operator string
	Version  string
	Groups   []toolGroup
}

type toolsRenderer struct{}

func init() {
	register(&toolsRenderer{})
}

func (r *toolsRenderer) Section() string { return "tools" }
func (r *toolsRenderer) File() string    { return "Brewfile" }

func (r *toolsRenderer) Render(op resolver.Metadata, section map[string]interface{}) (string, error) {
	var cfg ToolsConfig
	if err := decodeSection(r.Section(), section, &cfg); err != nil {
		return "", err
	}

	data := toolsData{
		Operator: op.Name,
		Version:  op.Version,
	}
	for _, group := range []toolGroup{
		{Title: "Essential tools", Tools: cfg.EssentialTools},
		{Title: "Modern CLI tools", Tools: cfg.ModernCLITools},
		{Title: "Development tools", Tools: cfg.DevelopmentTools},
	} {
		if len(group.Tools) > 0 {
			data.Groups = append(data.Groups, group)
		}
	}

	var buf bytes.Buffer
	if err := toolsTmpl.Execute(&buf, data); err != nil {
		return "", errors.Wrap(err, errors.ErrTemplateRender, "failed to render tools manifest")
	}
	return buf.String(), nil
}
