// Package topics adds a topic-based help system to a cobra application.
// Topics are markdown or plain-text files loaded from an fs.FS, so they can
// ship embedded in the binary; "app help <topic>" and "app help topics"
// work alongside the regular command help.
package topics

import (
	"fmt"
	"io"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/spf13/cobra"
)

// Topic is a single loaded help document.
type Topic struct {
	// Name is the lookup key: the file name without its extension.
	Name string

	// File is the source path inside the fs.FS.
	File string

	// Content is the raw document text.
	Content string
}

// Options configures a Manager.
type Options struct {
	// Extensions lists the file extensions loaded as topics. Defaults
	// to .md and .txt.
	Extensions []string

	// Renderer formats topic content for display. Defaults to
	// PlainRenderer.
	Renderer Renderer
}

// Manager holds the loaded topics and hooks them into a root command.
type Manager struct {
	topics     map[string]Topic
	extensions []string
	renderer   Renderer
	fallback   func(*cobra.Command, []string)
}

// New loads all topic files from the source filesystem.
func New(source fs.FS, opts Options) (*Manager, error) {
	m := &Manager{
		topics:     make(map[string]Topic),
		extensions: opts.Extensions,
		renderer:   opts.Renderer,
	}
	if len(m.extensions) == 0 {
		m.extensions = []string{".md", ".txt"}
	}
	if m.renderer == nil {
		m.renderer = &PlainRenderer{}
	}

	err := fs.WalkDir(source, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		ext := path.Ext(p)
		if !m.supported(ext) {
			return nil
		}

		content, err := fs.ReadFile(source, p)
		if err != nil {
			return fmt.Errorf("failed to read topic %s: %w", p, err)
		}

		name := strings.TrimSuffix(path.Base(p), ext)
		m.topics[name] = Topic{Name: name, File: p, Content: string(content)}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan topics: %w", err)
	}

	return m, nil
}

func (m *Manager) supported(ext string) bool {
	for _, e := range m.extensions {
		if ext == e {
			return true
		}
	}
	return false
}

// Get looks up a topic by name. Flag spellings are accepted: "--dry-run"
// finds the topic "dry-run", or "option-dry-run" when that exists instead.
func (m *Manager) Get(name string) (Topic, bool) {
	name = strings.TrimPrefix(name, "--")
	name = strings.TrimPrefix(name, "-")

	if topic, ok := m.topics[name]; ok {
		return topic, true
	}
	topic, ok := m.topics["option-"+name]
	return topic, ok
}

// Names returns the sorted names of all loaded topics.
func (m *Manager) Names() []string {
	names := make([]string, 0, len(m.topics))
	for name := range m.topics {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Render returns the topic formatted for terminal display.
func (m *Manager) Render(topic Topic) string {
	return m.renderer.Render(topic.Content, path.Ext(topic.File))
}

// WriteList writes the topic listing shown by "app help topics".
func (m *Manager) WriteList(w io.Writer, appName string) {
	names := m.Names()
	if len(names) == 0 {
		fmt.Fprintln(w, "No help topics available.")
		return
	}

	var options []string
	var general []string
	for _, name := range names {
		if strings.HasPrefix(name, "option-") {
			options = append(options, strings.TrimPrefix(name, "option-"))
		} else {
			general = append(general, name)
		}
	}

	fmt.Fprintln(w, "Available help topics:")
	for _, name := range general {
		fmt.Fprintf(w, "  %s\n", name)
	}
	if len(options) > 0 {
		fmt.Fprintln(w, "\nOption topics:")
		for _, name := range options {
			fmt.Fprintf(w, "  --%s\n", name)
		}
	}
	fmt.Fprintf(w, "\nUse %q to read about a specific topic.\n", appName+" help <topic>")
}

// Install replaces the root command's help command and help function with
// topic-aware versions. Unknown names fall through to the regular help.
func (m *Manager) Install(root *cobra.Command) {
	m.fallback = root.HelpFunc()

	helpCmd := &cobra.Command{
		Use:   "help [command or topic]",
		Short: "Help about any command or topic",
		Long: fmt.Sprintf(`Help provides help for any command or topic in the application.
Type %s help [command or topic] for full details.

To see all available help topics:
  %s help topics`, root.Name(), root.Name()),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			completions := []string{"topics"}
			for _, c := range root.Commands() {
				if !c.Hidden {
					completions = append(completions, c.Name())
				}
			}
			completions = append(completions, m.Names()...)
			return completions, cobra.ShellCompDirectiveNoFileComp
		},
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()

			if len(args) == 0 {
				m.fallback(root, []string{})
				return
			}
			if args[0] == "topics" {
				m.WriteList(out, root.Name())
				return
			}
			if topic, ok := m.Get(args[0]); ok {
				fmt.Fprint(out, m.Render(topic))
				return
			}
			if target, _, err := root.Find(args); err == nil && target != root {
				_ = target.Help()
				return
			}
			m.fallback(root, args)
		},
	}

	for _, cmd := range root.Commands() {
		if cmd.Name() == "help" {
			root.RemoveCommand(cmd)
			break
		}
	}
	root.AddCommand(helpCmd)

	root.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		if len(args) > 0 {
			if topic, ok := m.Get(args[0]); ok {
				fmt.Fprint(cmd.OutOrStdout(), m.Render(topic))
				return
			}
		}
		m.fallback(cmd, args)
	})
}

// Initialize loads topics from the source filesystem and installs them on
// the root command in one step.
func Initialize(root *cobra.Command, source fs.FS, opts Options) (*Manager, error) {
	m, err := New(source, opts)
	if err != nil {
		return nil, err
	}
	m.Install(root)
	return m, nil
}
