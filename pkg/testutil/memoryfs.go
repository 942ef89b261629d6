package testutil

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
)

// MemoryFS implements types.FS with in-memory storage
type MemoryFS struct {
	mu    sync.RWMutex
	files map[string]*fileNode
	umask os.FileMode

	// Error injection
	errorPaths map[string]error

	// Statistics
	readCount  int
	writeCount int
}

// fileNode represents a file or directory in memory
type fileNode struct {
	name     string
	mode     os.FileMode
	modTime  time.Time
	content  []byte
	isDir    bool
	children map[string]*fileNode
}

// NewMemoryFS creates a new in-memory filesystem
func NewMemoryFS() *MemoryFS {
	root := &fileNode{
		name:     "/",
		mode:     0755 | os.ModeDir,
		modTime:  time.Now(),
		isDir:    true,
		children: make(map[string]*fileNode),
	}

	return &MemoryFS{
		files:      map[string]*fileNode{"/": root},
		umask:      0022,
		errorPaths: make(map[string]error),
	}
}

// normalizePath converts a path to absolute form
func (m *MemoryFS) normalizePath(path string) string {
	if !filepath.IsAbs(path) {
		path = "/" + path
	}
	return filepath.Clean(path)
}

// getNode retrieves a node at the given path
func (m *MemoryFS) getNode(path string) (*fileNode, error) {
	path = m.normalizePath(path)

	// Check for injected errors
	if err, ok := m.errorPaths[path]; ok {
		return nil, err
	}

	node, exists := m.files[path]
	if !exists {
		return nil, &fs.PathError{Op: "open", Path: path, Err: fs.ErrNotExist}
	}

	return node, nil
}

// getParentAndName splits a path into parent directory and filename
func (m *MemoryFS) getParentAndName(path string) (parent *fileNode, name string, err error) {
	path = m.normalizePath(path)
	dir := filepath.Dir(path)
	name = filepath.Base(path)

	parent, err = m.getNode(dir)
	if err != nil {
		return nil, "", err
	}

	if !parent.isDir {
		return nil, "", &fs.PathError{Op: "open", Path: dir, Err: errors.New("not a directory")}
	}

	return parent, name, nil
}

// ReadFile reads the entire file content
func (m *MemoryFS) ReadFile(name string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	m.readCount++

	node, err := m.getNode(name)
	if err != nil {
		return nil, err
	}

	if node.isDir {
		return nil, &fs.PathError{Op: "read", Path: name, Err: errors.New("is a directory")}
	}

	// Return a copy to prevent mutation
	content := make([]byte, len(node.content))
	copy(content, node.content)
	return content, nil
}

// WriteFile writes data to a file, creating it if necessary
func (m *MemoryFS) WriteFile(name string, data []byte, perm os.FileMode) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.writeCount++

	path := m.normalizePath(name)

	// Check for injected errors
	if err, ok := m.errorPaths[path]; ok {
		return err
	}

	parent, filename, err := m.getParentAndName(path)
	if err != nil {
		// Create parent directories if they don't exist
		if errors.Is(err, fs.ErrNotExist) {
			if err := m.mkdirAll(filepath.Dir(path), 0755); err != nil {
				return err
			}
			parent, filename, err = m.getParentAndName(path)
			if err != nil {
				return err
			}
		} else {
			return err
		}
	}

	// Create or update the file
	node := &fileNode{
		name:    filename,
		mode:    perm &^ m.umask,
		modTime: time.Now(),
		content: make([]byte, len(data)),
		isDir:   false,
	}
	copy(node.content, data)

	parent.children[filename] = node
	m.files[path] = node

	return nil
}

// Stat returns file info
func (m *MemoryFS) Stat(name string) (os.FileInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	node, err := m.getNode(name)
	if err != nil {
		return nil, err
	}

	return &fileInfo{node: node, name: filepath.Base(name)}, nil
}

// Lstat returns file info. MemoryFS has no symlinks, so this is Stat.
func (m *MemoryFS) Lstat(name string) (os.FileInfo, error) {
	return m.Stat(name)
}

// Remove removes a file or empty directory
func (m *MemoryFS) Remove(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	path := m.normalizePath(name)

	node, err := m.getNode(path)
	if err != nil {
		return err
	}

	// Can't remove non-empty directory
	if node.isDir && len(node.children) > 0 {
		return &fs.PathError{Op: "remove", Path: name, Err: errors.New("directory not empty")}
	}

	// Remove from parent
	parent, filename, err := m.getParentAndName(path)
	if err != nil {
		return err
	}

	delete(parent.children, filename)
	delete(m.files, path)

	return nil
}

// RemoveAll removes a file or directory recursively
func (m *MemoryFS) RemoveAll(path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	path = m.normalizePath(path)

	// Remove all descendants first
	toRemove := []string{}
	for p := range m.files {
		if strings.HasPrefix(p, path+"/") || p == path {
			toRemove = append(toRemove, p)
		}
	}

	// Remove from maps
	for _, p := range toRemove {
		delete(m.files, p)

		// Remove from parent's children
		if dir := filepath.Dir(p); dir != p {
			if parent, ok := m.files[dir]; ok && parent.isDir {
				delete(parent.children, filepath.Base(p))
			}
		}
	}

	return nil
}

// MkdirAll creates a directory and all necessary parents
func (m *MemoryFS) MkdirAll(path string, perm os.FileMode) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.mkdirAll(path, perm)
}

// mkdirAll is the internal implementation without locking
func (m *MemoryFS) mkdirAll(path string, perm os.FileMode) error {
	path = m.normalizePath(path)

	// Check if already exists
	if node, err := m.getNode(path); err == nil {
		if !node.isDir {
			return &fs.PathError{Op: "mkdir", Path: path, Err: errors.New("file exists")}
		}
		return nil
	}

	// Create all parents
	parts := strings.Split(path, "/")
	current := "/"
	currentNode := m.files["/"]

	for i := 1; i < len(parts); i++ {
		if parts[i] == "" {
			continue
		}

		next := filepath.Join(current, parts[i])

		if child, exists := currentNode.children[parts[i]]; exists {
			if !child.isDir {
				return &fs.PathError{Op: "mkdir", Path: next, Err: errors.New("not a directory")}
			}
			currentNode = child
			current = next
			continue
		}

		// Create new directory
		newDir := &fileNode{
			name:     parts[i],
			mode:     perm | os.ModeDir,
			modTime:  time.Now(),
			isDir:    true,
			children: make(map[string]*fileNode),
		}

		currentNode.children[parts[i]] = newDir
		m.files[next] = newDir

		currentNode = newDir
		current = next
	}

	return nil
}

// ReadDir reads a directory and returns its entries sorted by name,
// matching os.ReadDir behavior.
func (m *MemoryFS) ReadDir(name string) ([]fs.DirEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	m.readCount++

	node, err := m.getNode(name)
	if err != nil {
		return nil, err
	}

	if !node.isDir {
		return nil, &fs.PathError{Op: "readdir", Path: name, Err: errors.New("not a directory")}
	}

	entries := make([]fs.DirEntry, 0, len(node.children))
	for childName, child := range node.children {
		entries = append(entries, &dirEntry{
			name: childName,
			info: &fileInfo{node: child, name: childName},
		})
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	return entries, nil
}

// WithError configures the filesystem to return an error for a specific path
func (m *MemoryFS) WithError(path string, err error) *MemoryFS {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.errorPaths[m.normalizePath(path)] = err
	return m
}

// Stats returns filesystem operation statistics
func (m *MemoryFS) Stats() (reads, writes int) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.readCount, m.writeCount
}

// fileInfo implements os.FileInfo
type fileInfo struct {
	node *fileNode
	name string
}

func (fi *fileInfo) Name() string       { return fi.name }
func (fi *fileInfo) Size() int64        { return int64(len(fi.node.content)) }
func (fi *fileInfo) Mode() os.FileMode  { return fi.node.mode }
func (fi *fileInfo) ModTime() time.Time { return fi.node.modTime }
func (fi *fileInfo) IsDir() bool        { return fi.node.isDir }
func (fi *fileInfo) Sys() interface{}   { return fi.node }

// dirEntry implements fs.DirEntry
type dirEntry struct {
	name string
	info os.FileInfo
}

func (de *dirEntry) Name() string               { return de.name }
func (de *dirEntry) IsDir() bool                { return de.info.IsDir() }
func (de *dirEntry) Type() os.FileMode          { return de.info.Mode().Type() }
func (de *dirEntry) Info() (os.FileInfo, error) { return de.info, nil }
