package paths

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name     string
		root     string
		env      map[string]string
		wantRoot string
	}{
		{
			name:     "explicit root wins",
			root:     "/ops",
			env:      map[string]string{EnvOperatorsRoot: "/ignored"},
			wantRoot: "/ops",
		},
		{
			name:     "env root when no explicit root",
			root:     "",
			env:      map[string]string{EnvOperatorsRoot: "/from-env"},
			wantRoot: "/from-env",
		},
		{
			name:     "config dir fallback",
			root:     "",
			env:      map[string]string{EnvConfigDir: "/cfg"},
			wantRoot: "/cfg/operators",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Clear the root override unless the case sets it
			t.Setenv(EnvOperatorsRoot, "")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			p, err := New(tt.root)
			require.NoError(t, err)
			assert.Equal(t, tt.wantRoot, p.OperatorsRoot())
		})
	}
}

func TestOperatorPaths(t *testing.T) {
	p, err := New("/ops")
	require.NoError(t, err)

	assert.Equal(t, "/ops/matrix", p.OperatorPath("matrix"))
	assert.Equal(t, "/ops/matrix/vars.yml", p.VarsFilePath("matrix"))
	assert.Equal(t, "/ops/.neosetup.toml", p.AppConfigPath())
}

func TestXDGDirOverrides(t *testing.T) {
	t.Setenv(EnvDataDir, "/data")
	t.Setenv(EnvCacheDir, "/cache")
	t.Setenv("XDG_STATE_HOME", "/state")

	p, err := New("/ops")
	require.NoError(t, err)

	assert.Equal(t, "/data", p.DataDir())
	assert.Equal(t, "/cache", p.CacheDir())
	assert.Equal(t, filepath.Join("/state", "neosetup"), p.StateDir())
	assert.Equal(t, filepath.Join("/data", "rendered"), p.RenderDir())
	assert.Equal(t, filepath.Join("/data", "backups"), p.BackupsDir())
	assert.Equal(t, filepath.Join("/state", "neosetup", "neosetup.log"), p.LogFilePath())
}

func TestNormalizePath(t *testing.T) {
	p, err := New("/ops")
	require.NoError(t, err)

	t.Run("cleans redundant elements", func(t *testing.T) {
		got, err := p.NormalizePath("/a/b/../c//d")
		require.NoError(t, err)
		assert.Equal(t, "/a/c/d", got)
	})

	t.Run("empty path is an error", func(t *testing.T) {
		_, err := p.NormalizePath("")
		assert.Error(t, err)
	})
}

func TestValidateOperatorName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple name", "matrix", false},
		{"with underscore", "jive_turkey", false},
		{"with digits", "op2", false},
		{"empty", "", true},
		{"path separator", "a/b", true},
		{"backslash", `a\b`, true},
		{"dot", ".", true},
		{"dotdot", "..", true},
		{"traversal attempt", "../etc", true},
		{"colon", "a:b", true},
		{"control character", "a\x01b", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateOperatorName(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestContainsPath(t *testing.T) {
	assert.True(t, ContainsPath("/a/b", "/a/b/c"))
	assert.True(t, ContainsPath("/a/b", "/a/b"))
	assert.False(t, ContainsPath("/a/b", "/a/bc"))
	assert.False(t, ContainsPath("/a/b", "/a"))
}

func TestExpandHome(t *testing.T) {
	t.Setenv("HOME", "/home/tester")

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"bare tilde", "~", "/home/tester"},
		{"tilde slash", "~/ops", "/home/tester/ops"},
		{"no tilde", "/abs/path", "/abs/path"},
		{"tilde user untouched", "~other/x", "~other/x"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandHome(tt.input))
		})
	}
}
