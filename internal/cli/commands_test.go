// internal/cli/commands_test.go
// TEST TYPE: Integration Test
// DEPENDENCIES: real filesystem via t.TempDir, full command wiring
// PURPOSE: Drive the CLI commands end to end against a temp operator store

package cli

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	neoerrors "github.com/arthur-debert/neosetup/pkg/errors"
	"github.com/arthur-debert/neosetup/pkg/operators"
	"github.com/arthur-debert/neosetup/pkg/paths"
	"github.com/arthur-debert/neosetup/pkg/resolver"
)

// setupTestEnv points every path the CLI touches at a fresh temp dir and
// returns the operators root.
func setupTestEnv(t *testing.T) string {
	t.Helper()

	tmp := t.TempDir()
	root := filepath.Join(tmp, "operators")
	require.NoError(t, os.MkdirAll(root, 0o755))

	t.Setenv(paths.EnvHome, tmp)
	t.Setenv(paths.EnvOperatorsRoot, root)
	t.Setenv(paths.EnvDataDir, filepath.Join(tmp, "data"))
	t.Setenv(paths.EnvConfigDir, filepath.Join(tmp, "config"))
	t.Setenv(paths.EnvCacheDir, filepath.Join(tmp, "cache"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(tmp, "state"))
	t.Setenv("NO_COLOR", "1")

	return root
}

func writeOperator(t *testing.T, root, name, doc string) {
	t.Helper()
	dir := filepath.Join(root, name)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, paths.VarsFileName), []byte(doc), 0o644))
}

// runCommand executes the CLI with the given arguments and captures both
// output streams.
func runCommand(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()

	var outBuf, errBuf bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&outBuf)
	cmd.SetErr(&errBuf)
	// A nil slice would make cobra fall back to os.Args.
	if args == nil {
		args = []string{}
	}
	cmd.SetArgs(args)
	err = cmd.Execute()
	return outBuf.String(), errBuf.String(), err
}

const matrixDoc = `operator_name: matrix
operator_version: 1.0.0
operator_description: Base development environment
extends: base
shell_config:
  preferred_shell: zsh
  oh_my_zsh_plugins:
    - git
  environment:
    EDITOR: vim
`

const jiveturkeyDoc = `operator_name: jiveturkey
operator_version: 2.1.0
operator_description: Full-stack development environment
extends: matrix
theme: matrix_theme
shell_config:
  oh_my_zsh_plugins:
    - docker
  aliases:
    gs: git status
tmux_config:
  prefix: C-a
`

const themeDoc = `operator_name: matrix_theme
operator_version: 1.0.0
operator_description: Green on black everywhere
operator_tags:
  - theme
shell_config:
  oh_my_zsh_theme: matrix
tmux_config:
  theme: matrix
`

const brokenDoc = `operator_name: broken
operator_version: not.a.version
operator_description: Broken on purpose
shell_config:
  preferred_shell: ksh
`

const orphanDoc = `operator_name: orphan
operator_version: 1.0.0
operator_description: Points at a parent that does not exist
extends: ghost
`

// seedStore writes the standard fixture operators.
func seedStore(t *testing.T, root string) {
	t.Helper()
	writeOperator(t, root, "matrix", matrixDoc)
	writeOperator(t, root, "jiveturkey", jiveturkeyDoc)
	writeOperator(t, root, "matrix_theme", themeDoc)
}

func TestListCommand(t *testing.T) {
	tests := []struct {
		name           string
		seed           bool
		expectedOutput []string
	}{
		{
			name: "empty store",
			expectedOutput: []string{
				"No operators found.",
				"neosetup init",
			},
		},
		{
			name: "operators with metadata",
			seed: true,
			expectedOutput: []string{
				"NAME", "VERSION", "EXTENDS", "THEME", "DESCRIPTION",
				"jiveturkey", "2.1.0", "matrix", "matrix_theme",
				"Full-stack development environment",
				"Base development environment",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := setupTestEnv(t)
			if tt.seed {
				seedStore(t, root)
			}

			stdout, _, err := runCommand(t, "list")
			require.NoError(t, err)
			for _, expected := range tt.expectedOutput {
				assert.Contains(t, stdout, expected)
			}
		})
	}
}

func TestListSkipsUnreadableOperators(t *testing.T) {
	root := setupTestEnv(t)
	writeOperator(t, root, "matrix", matrixDoc)
	writeOperator(t, root, "mangled", "aliases: [unclosed\n")

	stdout, stderr, err := runCommand(t, "list")
	require.NoError(t, err)
	assert.Contains(t, stdout, "matrix")
	assert.NotContains(t, stdout, "mangled")
	assert.Contains(t, stderr, "skipped 1 unreadable operator(s): mangled")
}

func TestResolveCommand(t *testing.T) {
	tests := []struct {
		name           string
		args           []string
		expectedOutput []string
		notExpected    []string
	}{
		{
			name: "full chain with theme",
			args: []string{"resolve", "jiveturkey"},
			expectedOutput: []string{
				"jiveturkey 2.1.0 Full-stack development environment",
				"chain: base -> matrix -> jiveturkey",
				"theme: matrix_theme",
				"preferred_shell: zsh",
				"- git",
				"- docker",
				"gs: git status",
				"EDITOR: vim",
				"oh_my_zsh_theme: matrix",
				"prefix: C-a",
			},
		},
		{
			name: "section scoping",
			args: []string{"resolve", "jiveturkey", "--section", "shell"},
			expectedOutput: []string{
				"preferred_shell: zsh",
			},
			notExpected: []string{
				"prefix: C-a",
			},
		},
		{
			name: "section accepts the document key form",
			args: []string{"resolve", "jiveturkey", "--section", "shell_config"},
			expectedOutput: []string{
				"preferred_shell: zsh",
			},
		},
		{
			name: "missing section resolves with a warning",
			args: []string{"resolve", "matrix", "--section", "docker"},
			expectedOutput: []string{
				"findings: 1 warning",
				"Operator 'matrix' has no 'docker' section",
			},
		},
		{
			name: "no argument falls back to the default operator",
			args: []string{"resolve"},
			expectedOutput: []string{
				"chain: base",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := setupTestEnv(t)
			seedStore(t, root)

			stdout, _, err := runCommand(t, tt.args...)
			require.NoError(t, err)
			for _, expected := range tt.expectedOutput {
				assert.Contains(t, stdout, expected)
			}
			for _, unexpected := range tt.notExpected {
				assert.NotContains(t, stdout, unexpected)
			}
		})
	}
}

func TestResolveJSONOutput(t *testing.T) {
	root := setupTestEnv(t)
	seedStore(t, root)

	stdout, _, err := runCommand(t, "resolve", "jiveturkey", "--format", "json")
	require.NoError(t, err)

	var res struct {
		Operator struct {
			Name    string `json:"name"`
			Version string `json:"version"`
		} `json:"operator"`
		Chain    []string                          `json:"chain"`
		Sections map[string]map[string]interface{} `json:"sections"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &res))
	assert.Equal(t, "jiveturkey", res.Operator.Name)
	assert.Equal(t, "2.1.0", res.Operator.Version)
	assert.Equal(t, []string{"base", "matrix", "jiveturkey"}, res.Chain)
	assert.Equal(t, "zsh", res.Sections["shell"]["preferred_shell"])
	assert.Equal(t, "matrix", res.Sections["tmux"]["theme"])
}

func TestResolveErrors(t *testing.T) {
	t.Run("unknown operator", func(t *testing.T) {
		root := setupTestEnv(t)
		seedStore(t, root)

		_, _, err := runCommand(t, "resolve", "ghost")
		require.Error(t, err)
		var notFound *operators.NotFoundError
		require.True(t, stderrors.As(err, &notFound))
		assert.Equal(t, "ghost", notFound.Name)
	})

	t.Run("missing parent", func(t *testing.T) {
		root := setupTestEnv(t)
		writeOperator(t, root, "orphan", orphanDoc)

		_, _, err := runCommand(t, "resolve", "orphan")
		require.Error(t, err)
		var missing *resolver.MissingParentError
		require.True(t, stderrors.As(err, &missing))
		assert.Equal(t, "orphan", missing.Operator)
		assert.Equal(t, "ghost", missing.Reference)
	})

	t.Run("inheritance cycle", func(t *testing.T) {
		root := setupTestEnv(t)
		writeOperator(t, root, "loop_a", `operator_name: loop_a
operator_version: 1.0.0
operator_description: First half of a loop
extends: loop_b
`)
		writeOperator(t, root, "loop_b", `operator_name: loop_b
operator_version: 1.0.0
operator_description: Second half of a loop
extends: loop_a
`)

		_, _, err := runCommand(t, "resolve", "loop_a")
		require.Error(t, err)
		var cycle *resolver.CircularDependencyError
		require.True(t, stderrors.As(err, &cycle))
		assert.Equal(t, []string{"loop_a", "loop_b", "loop_a"}, cycle.Cycle)
	})
}

func TestValidateCommand(t *testing.T) {
	t.Run("clean operator", func(t *testing.T) {
		root := setupTestEnv(t)
		seedStore(t, root)

		stdout, _, err := runCommand(t, "validate", "jiveturkey")
		require.NoError(t, err)
		assert.Contains(t, stdout, "jiveturkey: ok")
		// A single report gets no trailing summary line.
		assert.NotContains(t, stdout, "operators checked")
	})

	t.Run("schema errors fail the command", func(t *testing.T) {
		root := setupTestEnv(t)
		writeOperator(t, root, "broken", brokenDoc)

		stdout, _, err := runCommand(t, "validate", "broken")
		require.Error(t, err)
		assert.True(t, neoerrors.IsErrorCode(err, neoerrors.ErrSchemaInvalid))
		assert.Contains(t, stdout, "broken: 2 errors")
		assert.Contains(t, stdout, "error: operator_version")
		assert.Contains(t, stdout, "error: shell_config.preferred_shell")
	})

	t.Run("warnings do not fail the command", func(t *testing.T) {
		root := setupTestEnv(t)
		writeOperator(t, root, "plugged", `operator_name: plugged
operator_version: 1.0.0
operator_description: Too many plugins for comfort
shell_config:
  oh_my_zsh_plugins:
    - git
    - docker
    - kubectl
    - terraform
    - aws
    - gcloud
    - azure
    - node
    - npm
    - yarn
    - python
    - pip
    - golang
    - rust
    - ruby
    - rails
`)

		stdout, _, err := runCommand(t, "validate", "plugged")
		require.NoError(t, err)
		assert.Contains(t, stdout, "plugged: 1 warning")
		assert.Contains(t, stdout, "warning: shell_config.oh_my_zsh_plugins")
		assert.Contains(t, stdout, "Consider removing unused plugins")
	})

	t.Run("all operators with a summary", func(t *testing.T) {
		root := setupTestEnv(t)
		seedStore(t, root)
		writeOperator(t, root, "broken", brokenDoc)

		stdout, _, err := runCommand(t, "validate", "--all")
		require.Error(t, err)
		assert.True(t, neoerrors.IsErrorCode(err, neoerrors.ErrSchemaInvalid))
		assert.Contains(t, stdout, "matrix: ok")
		assert.Contains(t, stdout, "jiveturkey: ok")
		assert.Contains(t, stdout, "matrix_theme: ok")
		assert.Contains(t, stdout, "broken: 2 errors")
		assert.Contains(t, stdout, "4 operators checked, 1 with errors")
	})

	t.Run("missing parent becomes a finding", func(t *testing.T) {
		root := setupTestEnv(t)
		writeOperator(t, root, "orphan", orphanDoc)

		stdout, _, err := runCommand(t, "validate", "orphan")
		require.Error(t, err)
		assert.Contains(t, stdout, "orphan: 1 error")
		assert.Contains(t, stdout, "error: extends:")
		assert.Contains(t, stdout, `"ghost"`)
	})

	t.Run("no argument validates the default operator", func(t *testing.T) {
		setupTestEnv(t)

		stdout, _, err := runCommand(t, "validate")
		require.NoError(t, err)
		assert.Contains(t, stdout, "base: ok")
	})
}

func TestValidateJUnitOutput(t *testing.T) {
	root := setupTestEnv(t)
	seedStore(t, root)

	stdout, _, err := runCommand(t, "validate", "jiveturkey", "--format", "junit")
	require.NoError(t, err)
	assert.Contains(t, stdout, "<?xml")
	assert.Contains(t, stdout, "neosetup.jiveturkey")
}

func TestChainCommand(t *testing.T) {
	root := setupTestEnv(t)
	seedStore(t, root)

	stdout, _, err := runCommand(t, "chain", "jiveturkey")
	require.NoError(t, err)
	assert.Equal(t, "extends: base -> matrix -> jiveturkey\ntheme:   matrix_theme\n", stdout)

	stdout, _, err = runCommand(t, "chain", "matrix")
	require.NoError(t, err)
	assert.Equal(t, "extends: base -> matrix\n", stdout)
}

func TestRootFlagOverridesEnvironment(t *testing.T) {
	envRoot := setupTestEnv(t)
	writeOperator(t, envRoot, "from_env", `operator_name: from_env
operator_version: 1.0.0
operator_description: Lives in the environment root
`)

	flagRoot := filepath.Join(t.TempDir(), "operators")
	writeOperator(t, flagRoot, "from_flag", `operator_name: from_flag
operator_version: 1.0.0
operator_description: Lives in the flag root
`)

	stdout, _, err := runCommand(t, "list", "--root", flagRoot)
	require.NoError(t, err)
	assert.Contains(t, stdout, "from_flag")
	assert.NotContains(t, stdout, "from_env")
}

func TestConfigFileSetsDefaultOperator(t *testing.T) {
	root := setupTestEnv(t)
	seedStore(t, root)
	configDoc := "default_operator = \"jiveturkey\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(root, paths.AppConfigFile), []byte(configDoc), 0o644))

	stdout, _, err := runCommand(t, "chain")
	require.NoError(t, err)
	assert.Equal(t, "extends: base -> matrix -> jiveturkey\ntheme:   matrix_theme\n", stdout)
}

func TestEnvironmentSetsDefaultOperator(t *testing.T) {
	root := setupTestEnv(t)
	seedStore(t, root)
	t.Setenv("NEOSETUP_DEFAULT_OPERATOR", "matrix")

	stdout, _, err := runCommand(t, "chain")
	require.NoError(t, err)
	assert.Equal(t, "extends: base -> matrix\n", stdout)
}
