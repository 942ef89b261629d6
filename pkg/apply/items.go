package apply

import (
	"io/fs"
	"time"
)

// Item types backing the staged operations.

type fileItem struct {
	path    string
	content []byte
	mode    fs.FileMode
}

func (f *fileItem) Path() string       { return f.path }
func (f *fileItem) Type() string       { return "file" }
func (f *fileItem) Content() []byte    { return f.content }
func (f *fileItem) Mode() fs.FileMode  { return f.mode }
func (f *fileItem) IsDir() bool        { return false }
func (f *fileItem) ModTime() time.Time { return time.Now() }
func (f *fileItem) Size() int64        { return int64(len(f.content)) }

type directoryItem struct {
	path string
	mode fs.FileMode
}

func (d *directoryItem) Path() string       { return d.path }
func (d *directoryItem) Type() string       { return "directory" }
func (d *directoryItem) Mode() fs.FileMode  { return d.mode }
func (d *directoryItem) IsDir() bool        { return true }
func (d *directoryItem) ModTime() time.Time { return time.Now() }
func (d *directoryItem) Size() int64        { return 0 }
