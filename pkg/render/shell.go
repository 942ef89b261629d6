package render

import (
	"bytes"
	_ "embed"

	"github.com/arthur-debert/neosetup/pkg/errors"
	"github.com/arthur-debert/neosetup/pkg/resolver"
)

//go:embed templates/neosetuprc.tmpl
var shellTemplate string

var shellTmpl = mustTemplate("neosetuprc", shellTemplate)

// ShellConfig is the typed view of a resolved shell section.
type ShellConfig struct {
	// PreferredShell is the shell the operator targets (bash, zsh, fish).
	PreferredShell string `mapstructure:"preferred_shell"`

	// Framework is the shell framework to wire up, or "none".
	Framework string `mapstructure:"framework"`

	OhMyZshTheme   string   `mapstructure:"oh_my_zsh_theme"`
	OhMyZshPlugins []string `mapstructure:"oh_my_zsh_plugins"`

	// Aliases maps alias names to their commands.
	Aliases map[string]string `mapstructure:"aliases"`

	// Environment maps variable names to exported values.
	Environment map[string]string `mapstructure:"environment"`

	// Paths are directories prepended to PATH, in declaration order.
	Paths []string `mapstructure:"paths"`
}

type shellData struct {
	Operator string
	Version  string
	ShellConfig
}

type shellRenderer struct{}

func init() {
	register(&shellRenderer{})
}

func (r *shellRenderer) Section() string { return "shell" }
func (r *shellRenderer) File() string    { return ".neosetuprc" }

func (r *shellRenderer) Render(op resolver.Metadata, section map[string]interface{}) (string, error) {
	var cfg ShellConfig
	if err := decodeSection(r.Section(), section, &cfg); err != nil {
		return "", err
	}

	data := shellData{
		Operator:    op.Name,
		Version:     op.Version,
		ShellConfig: cfg,
	}

	var buf bytes.Buffer
	if err := shellTmpl.Execute(&buf, data); err != nil {
		return "", errors.Wrap(err, errors.ErrTemplateRender, "failed to render shell configuration")
	}
	return buf.String(), nil
}
