package operators

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/arthur-debert/neosetup/pkg/errors"
	"github.com/arthur-debert/neosetup/pkg/logging"
	"github.com/arthur-debert/neosetup/pkg/paths"
	"github.com/arthur-debert/neosetup/pkg/types"
)

// DiskStore reads operator definitions from one directory per operator
// under a common root.
type DiskStore struct {
	root   string
	fs     types.FS
	logger zerolog.Logger
}

var _ types.Store = (*DiskStore)(nil)

// NewDiskStore creates a store rooted at the given operators directory.
func NewDiskStore(root string, filesystem types.FS) *DiskStore {
	return &DiskStore{
		root:   root,
		fs:     filesystem,
		logger: logging.GetLogger("operators.store"),
	}
}

// Root returns the operators root directory.
func (s *DiskStore) Root() string {
	return s.root
}

// Get loads the named operator's vars.yml document.
func (s *DiskStore) Get(name string) (*types.Definition, error) {
	s.logger.Trace().Str("operator", name).Msg("Loading operator definition")

	if err := paths.ValidateOperatorName(name); err != nil {
		return nil, err
	}

	path := filepath.Join(s.root, name, paths.VarsFileName)
	data, err := s.fs.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &NotFoundError{Name: name}
		}
		return nil, errors.Wrap(err, errors.ErrOperatorAccess, "cannot read operator definition").
			WithDetail("operator", name).
			WithDetail("path", path)
	}

	var raw map[string]interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigParse, "malformed operator document %s", path).
			WithDetail("operator", name)
	}

	def := ParseDefinition(name, raw)

	s.logger.Trace().
		Str("operator", name).
		Str("extends", def.Extends).
		Int("sections", len(def.Sections)).
		Msg("Loaded operator definition")

	return def, nil
}

// Has reports whether the named operator exists without decoding it.
func (s *DiskStore) Has(name string) bool {
	if paths.ValidateOperatorName(name) != nil {
		return false
	}
	_, err := s.fs.Stat(filepath.Join(s.root, name, paths.VarsFileName))
	return err == nil
}

// List returns the sorted names of all directories under the root that
// contain a vars.yml document. Hidden directories are skipped.
func (s *DiskStore) List() ([]string, error) {
	entries, err := s.fs.ReadDir(s.root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(err, errors.ErrNotFound, "operators root does not exist").
				WithDetail("path", s.root)
		}
		return nil, errors.Wrap(err, errors.ErrFileAccess, "cannot read operators root").
			WithDetail("path", s.root)
	}

	var names []string
	for _, entry := range entries {
		name := entry.Name()
		if !entry.IsDir() {
			continue
		}
		if paths.IsHiddenPath(name) {
			s.logger.Trace().Str("name", name).Msg("Skipping hidden directory")
			continue
		}
		if !s.Has(name) {
			s.logger.Trace().Str("name", name).Msg("Skipping directory without vars.yml")
			continue
		}
		names = append(names, name)
	}

	sort.Strings(names)

	s.logger.Debug().Int("count", len(names)).Msg("Listed operators")
	return names, nil
}
