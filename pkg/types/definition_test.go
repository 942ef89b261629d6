package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSectionName(t *testing.T) {
	tests := []struct {
		name   string
		key    string
		want   string
		wantOK bool
	}{
		{
			name:   "shell section",
			key:    "shell_config",
			want:   "shell",
			wantOK: true,
		},
		{
			name:   "unknown section still counts",
			key:    "editor_config",
			want:   "editor",
			wantOK: true,
		},
		{
			name:   "metadata field is not a section",
			key:    "operator_name",
			wantOK: false,
		},
		{
			name:   "bare suffix is not a section",
			key:    "_config",
			wantOK: false,
		},
		{
			name:   "no suffix",
			key:    "extends",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := SectionName(tt.key)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDefinitionSectionNames(t *testing.T) {
	def := &Definition{
		Sections: map[string]map[string]any{
			"tmux":  {},
			"shell": {},
			"tools": {},
		},
	}

	assert.Equal(t, []string{"shell", "tmux", "tools"}, def.SectionNames())
	assert.True(t, def.HasSection("shell"))
	assert.False(t, def.HasSection("docker"))
}

func TestDefinitionIsRoot(t *testing.T) {
	assert.True(t, (&Definition{Name: "base"}).IsRoot())
	assert.False(t, (&Definition{Name: "matrix", Extends: "base"}).IsRoot())
}
