package config

import (
	"github.com/arthur-debert/neosetup/pkg/errors"
	"github.com/arthur-debert/neosetup/pkg/paths"
)

// Config is the application configuration after all layers are merged.
type Config struct {
	// DefaultOperator is resolved when no operator name is given.
	DefaultOperator string `koanf:"default_operator" toml:"default_operator"`

	Operators OperatorsConfig `koanf:"operators" toml:"operators"`
	Render    RenderConfig    `koanf:"render" toml:"render"`
	Apply     ApplyConfig     `koanf:"apply" toml:"apply"`
	Logging   LoggingConfig   `koanf:"logging" toml:"logging"`
}

// OperatorsConfig locates the operator definitions.
type OperatorsConfig struct {
	// Root is the operators directory. Empty means the default under the
	// config dir.
	Root string `koanf:"root" toml:"root"`
}

// RenderConfig controls artifact generation.
type RenderConfig struct {
	// OutputDir receives rendered artifacts. Empty means the default
	// under the data dir.
	OutputDir string `koanf:"output_dir" toml:"output_dir"`

	// Files maps a section name to its artifact filename.
	Files map[string]string `koanf:"files" toml:"files"`
}

// ApplyConfig controls how rendered artifacts are installed.
type ApplyConfig struct {
	// Target is the destination directory. Empty means the home
	// directory.
	Target string `koanf:"target" toml:"target"`

	// Backups keeps a copy of files that get replaced.
	Backups bool `koanf:"backups" toml:"backups"`

	// BackupDir receives those copies. Empty means the default under
	// the data dir.
	BackupDir string `koanf:"backup_dir" toml:"backup_dir"`
}

// LoggingConfig sets the default log verbosity. The command line -v flags
// can raise it.
type LoggingConfig struct {
	Verbosity int `koanf:"verbosity" toml:"verbosity"`
}

// postProcessConfig fills derived values after unmarshaling.
func postProcessConfig(cfg *Config) error {
	if cfg.Render.Files == nil {
		cfg.Render.Files = map[string]string{}
	}
	if cfg.Logging.Verbosity < 0 {
		cfg.Logging.Verbosity = 0
	}
	return nil
}

// Validate rejects values that would fail later in confusing places.
func (c *Config) Validate() error {
	if c.DefaultOperator != "" {
		if err := paths.ValidateOperatorName(c.DefaultOperator); err != nil {
			return errors.Wrapf(err, errors.ErrConfigValid,
				"default_operator %q is not a usable operator name", c.DefaultOperator)
		}
	}
	for section, filename := range c.Render.Files {
		if filename == "" {
			return errors.Newf(errors.ErrConfigValid,
				"render.files.%s must not be empty", section)
		}
	}
	return nil
}
