package testutil

import (
	"path/filepath"
	"testing"

	"github.com/arthur-debert/neosetup/pkg/paths"
	"github.com/arthur-debert/neosetup/pkg/types"
)

// WriteOperator writes a vars.yml document for the named operator under
// root, creating the operator directory.
func WriteOperator(t *testing.T, fsys types.FS, root, name, doc string) {
	t.Helper()

	dir := filepath.Join(root, name)
	if err := fsys.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("creating operator dir %s: %v", dir, err)
	}
	path := filepath.Join(dir, paths.VarsFileName)
	if err := fsys.WriteFile(path, []byte(doc), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}
