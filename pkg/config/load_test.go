package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "base", cfg.DefaultOperator)
	assert.Empty(t, cfg.Operators.Root)
	assert.Equal(t, ".neosetuprc", cfg.Render.Files["shell"])
	assert.Equal(t, ".tmux.conf", cfg.Render.Files["tmux"])
	assert.Equal(t, "Brewfile", cfg.Render.Files["tools"])
	assert.True(t, cfg.Apply.Backups)
	assert.Equal(t, 0, cfg.Logging.Verbosity)
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".neosetup.toml")
	content := `
default_operator = "matrix"

[operators]
root = "/srv/operators"

[render.files]
shell = ".zshrc"

[apply]
backups = false
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "matrix", cfg.DefaultOperator)
	assert.Equal(t, "/srv/operators", cfg.Operators.Root)
	assert.Equal(t, ".zshrc", cfg.Render.Files["shell"])
	assert.False(t, cfg.Apply.Backups)

	// Untouched keys keep their defaults.
	assert.Equal(t, ".tmux.conf", cfg.Render.Files["tmux"])
}

func TestLoadMissingFileIsFine(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.toml"))
	require.NoError(t, err)
	assert.Equal(t, "base", cfg.DefaultOperator)
}

func TestLoadMalformedFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".neosetup.toml")
	require.NoError(t, os.WriteFile(path, []byte("default_operator = [broken"), 0644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), path)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("NEOSETUP_DEFAULT_OPERATOR", "jiveturkey")
	t.Setenv("NEOSETUP_OPERATORS__ROOT", "/env/operators")
	t.Setenv("NEOSETUP_LOGGING__VERBOSITY", "2")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "jiveturkey", cfg.DefaultOperator)
	assert.Equal(t, "/env/operators", cfg.Operators.Root)
	assert.Equal(t, 2, cfg.Logging.Verbosity)
}

func TestLoadEnvBeatsFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".neosetup.toml")
	require.NoError(t, os.WriteFile(path, []byte(`default_operator = "matrix"`), 0644))
	t.Setenv("NEOSETUP_DEFAULT_OPERATOR", "jiveturkey")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "jiveturkey", cfg.DefaultOperator)
}

func TestValidate(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	cfg.DefaultOperator = "../escape"
	require.Error(t, cfg.Validate())

	cfg.DefaultOperator = "base"
	cfg.Render.Files["shell"] = ""
	require.Error(t, cfg.Validate())
}

func TestDefaults(t *testing.T) {
	cfg, err := Defaults()
	require.NoError(t, err)
	assert.Equal(t, "base", cfg.DefaultOperator)
	assert.Equal(t, ".neosetuprc", cfg.Render.Files["shell"])
	assert.True(t, cfg.Apply.Backups)
}

func TestGenerateConfigContent(t *testing.T) {
	content, err := GenerateConfigContent()
	require.NoError(t, err)

	// Assignments are commented out, table headers are kept.
	assert.Contains(t, content, "# default_operator")
	assert.Contains(t, content, "[render.files]")
	assert.NotContains(t, content, "\ndefault_operator")

	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		assert.True(t, strings.HasPrefix(trimmed, "["),
			"uncommented non-header line: %q", line)
	}

	// The generated file is valid TOML that changes nothing.
	dir := t.TempDir()
	path := filepath.Join(dir, ".neosetup.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "base", cfg.DefaultOperator)
}
