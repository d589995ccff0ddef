package template

import (
	"fmt"
	html "html/template"
	"io"
	"path"
	"strings"
	"sync"
)

const defaultExt = ".tmpl"

// A View renders itself with the data provided.
// *html.Template is a View.
type View interface {
	Execute(w io.Writer, data any) error
}

// A ViewResolver turns the name of a view into a View.
type ViewResolver interface {
	FindView(name string) (View, error)
}

// Views resolves view names to templates in a directory,
// parsing them with a Parser.
//
// Views implements ViewResolver.
type Views struct {
	p       Parser
	dir     string
	ext     string
	layouts []string

	cache map[string]View
	mu    sync.RWMutex
}

// NewViews constructs a *Views parsing with p.
func NewViews(p Parser, opts ...ViewsOptFn) *Views {
	v := &Views{p: p, ext: defaultExt}
	for _, opt := range opts {
		opt(v)
	}

	return v
}

// FindView parses the template backing name,
// along with any layouts it is rendered within.
//
// Names are slash-separated paths relative to the Views directory, without extension.
// Names escaping that directory are not valid.
func (v *Views) FindView(name string) (View, error) {
	fp, err := v.filepath(name)
	if err != nil {
		return nil, err
	}

	if v.cache != nil {
		v.mu.RLock()
		view, ok := v.cache[fp]
		v.mu.RUnlock()
		if ok {
			return view, nil
		}
	}

	tmpl, err := v.p.Parse(append(append([]string{}, v.layouts...), fp)...)
	if err != nil {
		return nil, fmt.Errorf("cannot parse view %q: %w", name, err)
	}

	var view View = tmpl
	if len(v.layouts) > 0 {
		view = layoutView{tmpl: tmpl, name: path.Base(v.layouts[0])}
	}

	if v.cache != nil {
		v.mu.Lock()
		v.cache[fp] = view
		v.mu.Unlock()
	}

	return view, nil
}

func (v *Views) filepath(name string) (string, error) {
	name = strings.TrimPrefix(strings.TrimSpace(name), "/")
	if name == "" {
		return "", fmt.Errorf("%w", ErrNoFiles)
	}

	fp := path.Join(v.dir, name)
	if strings.HasPrefix(path.Clean(name), "..") {
		return "", fmt.Errorf("%w: %q leaves the views directory", ErrNotValid, name)
	}

	if path.Ext(fp) != v.ext {
		fp += v.ext
	}

	return fp, nil
}

// A layoutView executes the layout it was parsed with.
type layoutView struct {
	tmpl *html.Template
	name string
}

func (lv layoutView) Execute(w io.Writer, data any) error {
	return lv.tmpl.ExecuteTemplate(w, lv.name, data)
}

var _ ViewResolver = new(Views)
