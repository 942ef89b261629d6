package render

import (
	"bytes"
	_ "embed"
	"fmt"
	"sort"
	"strings"

	"github.com/arthur-debert/neosetup/pkg/errors"
	"github.com/arthur-debert/neosetup/pkg/resolver"
)

//go:embed templates/tmux.conf.tmpl
var tmuxTemplate string

var tmuxTmpl = mustTemplate("tmux.conf", tmuxTemplate)

// TmuxConfig is the typed view of a resolved tmux section.
type TmuxConfig struct {
	// Theme picks one of the built-in status bar color schemes.
	Theme string `mapstructure:"theme"`

	// Prefix is the prefix key chord, e.g. "C-a".
	Prefix string `mapstructure:"prefix"`

	// Terminal sets default-terminal.
	Terminal string `mapstructure:"terminal"`

	// Settings and Timing hold tmux options under their document names
	// (base_index, escape_time, ...); they render as the corresponding
	// dashed option.
	Settings map[string]interface{} `mapstructure:"settings"`
	Timing   map[string]interface{} `mapstructure:"timing"`

	// Plugins maps plugin names to their tpm repositories.
	Plugins map[string]string `mapstructure:"plugins"`

	StatusBar TmuxStatusBar `mapstructure:"status_bar"`
}

// TmuxStatusBar positions the status bar.
type TmuxStatusBar struct {
	Position string `mapstructure:"position"`
	Justify  string `mapstructure:"justify"`
	Interval int    `mapstructure:"interval"`
}

// tmuxTheme is one built-in status bar color scheme.
type tmuxTheme struct {
	Name     string
	StatusBG string
	StatusFG string
	Accent   string
}

var tmuxThemes = map[string]tmuxTheme{
	"matrix":    {Name: "matrix", StatusBG: "black", StatusFG: "green", Accent: "brightgreen"},
	"nord":      {Name: "nord", StatusBG: "#2e3440", StatusFG: "#d8dee9", Accent: "#88c0d0"},
	"gruvbox":   {Name: "gruvbox", StatusBG: "#282828", StatusFG: "#ebdbb2", Accent: "#fabd2f"},
	"solarized": {Name: "solarized", StatusBG: "#002b36", StatusFG: "#839496", Accent: "#b58900"},
}

// escape_time is a server option; everything else is a session option.
var tmuxOptionScopes = map[string]string{
	"escape_time": "-s",
}

type tmuxData struct {
	Operator     string
	Version      string
	Prefix       string
	PrefixKey    string
	Terminal     string
	SettingLines []string
	TimingLines  []string
	StatusLines  []string
	ThemeStyle   *tmuxTheme
	Plugins      map[string]string
}

type tmuxRenderer struct{}

func init() {
	register(&tmuxRenderer{})
}

func (r *tmuxRenderer) Section() string { return "tmux" }
func (r *tmuxRenderer) File() string    { return ".tmux.conf" }

func (r *tmuxRenderer) Render(op resolver.Metadata, section map[string]interface{}) (string, error) {
	var cfg TmuxConfig
	if err := decodeSection(r.Section(), section, &cfg); err != nil {
		return "", err
	}

	data := tmuxData{
		Operator:     op.Name,
		Version:      op.Version,
		Prefix:       cfg.Prefix,
		PrefixKey:    strings.TrimPrefix(cfg.Prefix, "C-"),
		Terminal:     cfg.Terminal,
		SettingLines: tmuxOptionLines(cfg.Settings),
		TimingLines:  tmuxOptionLines(cfg.Timing),
		StatusLines:  tmuxStatusLines(cfg.StatusBar),
		Plugins:      cfg.Plugins,
	}
	if theme, ok := tmuxThemes[cfg.Theme]; ok {
		data.ThemeStyle = &theme
	}

	var buf bytes.Buffer
	if err := tmuxTmpl.Execute(&buf, data); err != nil {
		return "", errors.Wrap(err, errors.ErrTemplateRender, "failed to render tmux configuration")
	}
	return buf.String(), nil
}

// tmuxOptionLines renders a document option mapping as sorted "set" lines,
// translating key names (base_index -> base-index) and boolean values
// (true -> on).
func tmuxOptionLines(options map[string]interface{}) []string {
	if len(options) == 0 {
		return nil
	}

	keys := make([]string, 0, len(options))
	for key := range options {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	lines := make([]string, 0, len(keys))
	for _, key := range keys {
		scope := tmuxOptionScopes[key]
		if scope == "" {
			scope = "-g"
		}
		option := strings.ReplaceAll(key, "_", "-")
		lines = append(lines, fmt.Sprintf("set %s %s %s", scope, option, tmuxValue(options[key])))
	}
	return lines
}

func tmuxStatusLines(sb TmuxStatusBar) []string {
	var lines []string
	if sb.Position != "" {
		lines = append(lines, "set -g status-position "+sb.Position)
	}
	if sb.Justify != "" {
		lines = append(lines, "set -g status-justify "+sb.Justify)
	}
	if sb.Interval > 0 {
		lines = append(lines, fmt.Sprintf("set -g status-interval %d", sb.Interval))
	}
	return lines
}

func tmuxValue(v interface{}) string {
	switch val := v.(type) {
	case bool:
		if val {
			return "on"
		}
		return "off"
	case string:
		if strings.ContainsAny(val, " \t") {
			return fmt.Sprintf("%q", val)
		}
		return val
	default:
		return fmt.Sprint(val)
	}
}
