// pkg/cobrax/topics/topics_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Test the topic-based help system

package topics

import (
	"bytes"
	"testing"
	"testing/fstest"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSource() fstest.MapFS {
	return fstest.MapFS{
		"inheritance.md":    {Data: []byte("# Inheritance\n\nOperators form extends chains.")},
		"dry-run.txt":       {Data: []byte("Information about dry-run mode")},
		"option-force.md":   {Data: []byte("# Force\n\nReplace files neosetup does not manage.")},
		"nested/themes.md":  {Data: []byte("# Themes\n\nTheme overlays.")},
		"ignored/notes.rst": {Data: []byte("not a topic")},
	}
}

func TestNewScansSupportedExtensions(t *testing.T) {
	m, err := New(testSource(), Options{})
	require.NoError(t, err)

	assert.Equal(t, []string{"dry-run", "inheritance", "option-force", "themes"}, m.Names())
}

func TestNewCustomExtensions(t *testing.T) {
	m, err := New(testSource(), Options{Extensions: []string{".txt"}})
	require.NoError(t, err)

	assert.Equal(t, []string{"dry-run"}, m.Names())
}

func TestGet(t *testing.T) {
	m, err := New(testSource(), Options{})
	require.NoError(t, err)

	topic, ok := m.Get("inheritance")
	require.True(t, ok)
	assert.Equal(t, "inheritance.md", topic.File)
	assert.Contains(t, topic.Content, "extends chains")

	// Flag spellings resolve to the bare topic name.
	topic, ok = m.Get("--dry-run")
	require.True(t, ok)
	assert.Equal(t, "dry-run", topic.Name)

	// And to option-prefixed topics when only those exist.
	topic, ok = m.Get("--force")
	require.True(t, ok)
	assert.Equal(t, "option-force", topic.Name)

	_, ok = m.Get("missing")
	assert.False(t, ok)
}

func TestRenderPlain(t *testing.T) {
	m, err := New(testSource(), Options{})
	require.NoError(t, err)

	topic, ok := m.Get("dry-run")
	require.True(t, ok)
	assert.Equal(t, "Information about dry-run mode", m.Render(topic))
}

func TestWriteList(t *testing.T) {
	m, err := New(testSource(), Options{})
	require.NoError(t, err)

	var buf bytes.Buffer
	m.WriteList(&buf, "neosetup")

	out := buf.String()
	assert.Contains(t, out, "Available help topics:")
	assert.Contains(t, out, "  inheritance\n")
	assert.Contains(t, out, "  themes\n")
	assert.Contains(t, out, "Option topics:")
	assert.Contains(t, out, "  --force\n")
	assert.Contains(t, out, `"neosetup help <topic>"`)
}

func TestWriteListEmpty(t *testing.T) {
	m, err := New(fstest.MapFS{}, Options{})
	require.NoError(t, err)

	var buf bytes.Buffer
	m.WriteList(&buf, "neosetup")
	assert.Equal(t, "No help topics available.\n", buf.String())
}

func newTestRoot() (*cobra.Command, *bytes.Buffer) {
	root := &cobra.Command{Use: "testapp", Short: "Test application"}
	root.AddCommand(&cobra.Command{
		Use:   "resolve",
		Short: "Resolve things",
		Run:   func(cmd *cobra.Command, args []string) {},
	})

	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetErr(&buf)
	return root, &buf
}

func TestInstallHelpTopic(t *testing.T) {
	root, buf := newTestRoot()
	_, err := Initialize(root, testSource(), Options{})
	require.NoError(t, err)

	root.SetArgs([]string{"help", "inheritance"})
	require.NoError(t, root.Execute())

	assert.Contains(t, buf.String(), "Operators form extends chains.")
}

func TestInstallHelpTopicsListing(t *testing.T) {
	root, buf := newTestRoot()
	_, err := Initialize(root, testSource(), Options{})
	require.NoError(t, err)

	root.SetArgs([]string{"help", "topics"})
	require.NoError(t, root.Execute())

	out := buf.String()
	assert.Contains(t, out, "Available help topics:")
	assert.Contains(t, out, "inheritance")
	assert.Contains(t, out, `"testapp help <topic>"`)
}

func TestInstallHelpFallsBackToCommands(t *testing.T) {
	root, buf := newTestRoot()
	_, err := Initialize(root, testSource(), Options{})
	require.NoError(t, err)

	root.SetArgs([]string{"help", "resolve"})
	require.NoError(t, root.Execute())

	assert.Contains(t, buf.String(), "Resolve things")
}

func TestGlamourRendererPassthrough(t *testing.T) {
	r := NewGlamourRenderer()

	plain := "plain text content"
	assert.Equal(t, plain, r.Render(plain, ".txt"))

	rendered := r.Render("# Heading\n\nBody text.", ".md")
	assert.NotEmpty(t, rendered)
	assert.Contains(t, rendered, "Body text")
}
