package template

import (
	html "html/template"
	"io/fs"
	"maps"
	"os"
	"path"
	"sync"
)

const (
	// ErrTemplate is the template the package embeds for rendering unexpected errors.
	ErrTemplate = "tmpl/error.tmpl"

	// MaintenanceTemplate is the template the package embeds for rendering maintenance mode.
	MaintenanceTemplate = "tmpl/maintenance.tmpl"
)

// A Parser turns template files into an *html.Template able to call the functions added to it.
type Parser interface {
	AddFn(name string, fn any)
	Parse(fps ...string) (*html.Template, error)
}

// Parse is a Parser reading files from an fs.FS layered over the templates this package embeds.
type Parse struct {
	fs  fs.FS
	fns html.FuncMap
	mu  sync.RWMutex
}

// NewParser reads files from the fs.FS set by WithFS, or the working directory,
// then from the templates this package embeds.
func NewParser(opts ...ParserOptFn) *Parse {
	p := new(Parse)
	for _, apply := range opts {
		apply(p)
	}

	if p.fs == nil {
		p.fs = os.DirFS(".")
	}

	p.fs = newLayeredFS(p.fs, embedded)
	return p
}

// AddFn adds fn to the functions templates parsed afterwards can call.
// An empty name or nil fn is ignored.
func (p *Parse) AddFn(name string, fn any) {
	if name == "" || fn == nil {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.fns == nil {
		p.fns = html.FuncMap{}
	}
	p.fns[name] = fn
}

// Parse parses fps together, naming the result after the first.
// Empty paths are skipped.
func (p *Parse) Parse(fps ...string) (*html.Template, error) {
	files := make([]string, 0, len(fps))
	for _, fp := range fps {
		if fp != "" {
			files = append(files, fp)
		}
	}

	if len(files) == 0 {
		return nil, ErrNoFiles
	}

	p.mu.RLock()
	fns := maps.Clone(p.fns)
	p.mu.RUnlock()

	return html.New(path.Base(files[0])).Funcs(fns).ParseFS(p.fs, files...)
}

var _ Parser = new(Parse)
