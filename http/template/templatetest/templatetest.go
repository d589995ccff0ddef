// Package templatetest keeps templates in memory so tests need no testdata directory.
package templatetest

import (
	"io/fs"
	"testing/fstest"

	"github.com/xy-planning-network/switchback/http/template"
)

// A FileMocker is one in-memory file.
type FileMocker struct {
	name string
	data []byte
}

// NewMockFile holds data under name.
func NewMockFile(name string, data []byte) FileMocker {
	return FileMocker{name: name, data: data}
}

// NewMockFS gathers files into an fs.FS.
// Directories are implied by the files' names.
func NewMockFS(files ...FileMocker) fs.FS {
	fsys := make(fstest.MapFS, len(files))
	for _, f := range files {
		fsys[f.name] = &fstest.MapFile{Data: f.data}
	}

	return fsys
}

// NewParser constructs a *template.Parse reading files.
func NewParser(files ...FileMocker) *template.Parse {
	return template.NewParser(template.WithFS(NewMockFS(files...)))
}

// NewViews constructs a *template.Views over files.
func NewViews(files []FileMocker, opts ...template.ViewsOptFn) *template.Views {
	return template.NewViews(NewParser(files...), opts...)
}
