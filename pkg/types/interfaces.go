package types

import (
	"io/fs"
)

// FS is the filesystem interface required for neosetup operations
type FS interface {
	// File operations
	Stat(name string) (fs.FileInfo, error)
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm fs.FileMode) error

	// Directory operations
	MkdirAll(path string, perm fs.FileMode) error
	ReadDir(name string) ([]fs.DirEntry, error)

	// Other operations
	Remove(name string) error
	RemoveAll(path string) error

	// Optional operations - implementations should check for support
	// For testing, Lstat can fall back to Stat
	Lstat(name string) (fs.FileInfo, error)
}

// Store provides access to operator definitions by name. Implementations
// report unknown names with *operators.NotFoundError so callers can branch
// with errors.As.
type Store interface {
	// Get returns the named operator definition.
	Get(name string) (*Definition, error)

	// Has reports whether the named operator exists without loading it.
	Has(name string) bool

	// List returns the names of all available operators, sorted.
	List() ([]string, error)
}
