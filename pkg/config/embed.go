package config

import (
	_ "embed"
	stderrors "errors"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/arthur-debert/neosetup/pkg/errors"
)

//go:embed embedded/defaults.toml
var defaultConfig []byte

// DefaultsContent returns the embedded defaults file verbatim.
func DefaultsContent() string {
	return string(defaultConfig)
}

// Defaults returns the built-in configuration before any file or
// environment overrides.
func Defaults() (*Config, error) {
	var cfg Config
	if err := toml.Unmarshal(defaultConfig, &cfg); err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "embedded defaults do not parse")
	}
	if err := postProcessConfig(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// rawBytesProvider implements koanf provider for raw bytes
type rawBytesProvider struct{ bytes []byte }

func (r *rawBytesProvider) ReadBytes() ([]byte, error) { return r.bytes, nil }
func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, stderrors.New("not implemented")
}

// GenerateConfigContent renders starter .neosetup.toml content: the defaults
// in canonical TOML with every assignment commented out, so the file changes
// nothing until a line is uncommented.
func GenerateConfigContent() (string, error) {
	cfg, err := Defaults()
	if err != nil {
		return "", err
	}
	data, err := toml.Marshal(cfg)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrInternal, "failed to render defaults as TOML")
	}

	var b strings.Builder
	b.WriteString("# neosetup configuration. Uncomment a setting to override the built-in\n")
	b.WriteString("# default shown on its line. See 'neosetup help config' for details.\n\n")

	for _, line := range strings.Split(strings.TrimRight(string(data), "\n"), "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed != "" && !strings.HasPrefix(trimmed, "[") {
			line = "# " + line
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String(), nil
}
