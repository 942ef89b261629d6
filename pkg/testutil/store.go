package testutil

import (
	"sort"
	"sync"

	"github.com/arthur-debert/neosetup/pkg/operators"
	"github.com/arthur-debert/neosetup/pkg/types"
)

// MemoryStore is an in-memory types.Store for tests that need operator
// definitions without touching a filesystem.
//
// Unknown names get the same *operators.NotFoundError the disk store
// reports, so error branching behaves identically under test.
type MemoryStore struct {
	mu   sync.RWMutex
	defs map[string]*types.Definition

	// Error injection
	errorNames map[string]error
}

var _ types.Store = (*MemoryStore)(nil)

// NewMemoryStore creates a store holding the given definitions.
func NewMemoryStore(defs ...*types.Definition) *MemoryStore {
	s := &MemoryStore{
		defs:       make(map[string]*types.Definition),
		errorNames: make(map[string]error),
	}
	for _, def := range defs {
		s.Add(def)
	}
	return s
}

// Add stores a definition under its name, replacing any previous one.
func (s *MemoryStore) Add(def *types.Definition) *MemoryStore {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.defs[def.Name] = def
	return s
}

// AddDoc parses a raw operator document the way the disk store does and
// stores the result.
func (s *MemoryStore) AddDoc(name string, doc map[string]interface{}) *MemoryStore {
	return s.Add(operators.ParseDefinition(name, doc))
}

// WithError configures Get to fail for the named operator.
func (s *MemoryStore) WithError(name string, err error) *MemoryStore {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.errorNames[name] = err
	return s
}

// Get implements types.Store.
func (s *MemoryStore) Get(name string) (*types.Definition, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err, ok := s.errorNames[name]; ok {
		return nil, err
	}

	def, ok := s.defs[name]
	if !ok {
		return nil, &operators.NotFoundError{Name: name}
	}
	return def, nil
}

// Has implements types.Store.
func (s *MemoryStore) Has(name string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.defs[name]
	return ok
}

// List implements types.Store.
func (s *MemoryStore) List() ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.defs))
	for name := range s.defs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}
